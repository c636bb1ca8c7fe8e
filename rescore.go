package zabbrev

// RescoreOptimalParse is the heart of the system (§4.D): given a
// candidate set S (in insertion order — order matters for the DP
// tie-break) it recomputes every pattern's stale occurrence list,
// resets frequencies, runs Wagner's optimal-parse DP over every string,
// and returns either the total naive savings or, when reportBytes is
// set, the total corpus byte count after rounding and routine padding.
func RescoreOptimalParse(corpus *Corpus, alphabet *Alphabet, set []*Pattern, cfg Config, reportBytes bool) (int, error) {
	for _, p := range set {
		if !p.occValid {
			p.recomputeOccurrences(corpus)
		}
		p.Freq = 0
	}

	for _, sr := range corpus.Strings {
		possible := buildPossible(corpus, sr.ID, set)
		rescoreOneString(sr, alphabet, possible)
		walkChoices(sr, set)

		r := sr.roundingUnit(corpus.ZVersion, cfg.ForceR3)
		cost := int(sr.f[0])
		sr.lastCost = cost
		sr.roundingCost = (r - cost%r) % r
		sr.totalBytes = 2 * (cost + sr.roundingCost) / 3
	}

	if !reportBytes {
		total := 0
		for _, p := range set {
			total += naiveScore(p.Cost, p.Freq)
		}
		return total, nil
	}

	return totalBytesWithRoutines(corpus), nil
}

// buildPossible returns, for stringID, a dense array indexed by text
// offset: possible[i] is the list of patterns in set with a left-
// anchored occurrence at i, in set's own iteration order (so the DP's
// "most-recently-considered wins" tie-break is well defined).
func buildPossible(corpus *Corpus, stringID int, set []*Pattern) [][]*Pattern {
	n := len(corpus.Strings[stringID].Text)
	possible := make([][]*Pattern, n+1)
	for _, p := range set {
		for _, off := range p.occurrencesAt(corpus, stringID) {
			i := int(off)
			possible[i] = append(possible[i], p)
		}
	}
	return possible
}

// rescoreOneString runs the DP of §4.D over a single string, writing
// into its preallocated f/chosenAt scratch arrays. Ties prefer the
// greater-cost abbreviation, and among equal-cost ties the
// most-recently-considered pattern wins, matching set's iteration
// order (§4.D, §9 "Tie-break direction").
func rescoreOneString(sr *StringRecord, alphabet *Alphabet, possible [][]*Pattern) {
	t := sr.Text
	n := len(t)
	f := sr.f[:n+1]
	chosenAt := sr.chosenAt[:n]
	f[n] = 0

	for i := n - 1; i >= 0; i-- {
		f[i] = f[i+1] + uint32(alphabet.CostOf(t[i]))
		var chosen *Pattern
		for _, p := range possible[i] {
			klen := len(p.Key)
			if i+klen > n {
				continue
			}
			c := 2 + f[i+klen]
			switch {
			case c < f[i]:
				f[i] = c
				chosen = p
			case c == f[i] && (chosen == nil || p.Cost >= chosen.Cost):
				f[i] = c
				chosen = p
			}
		}
		chosenAt[i] = chosen
	}
	sr.f = f
	sr.chosenAt = chosenAt
}

// walkChoices walks sr's choice array left to right, incrementing the
// frequency of every non-overlapping chosen pattern exactly once and
// skipping positions that fall inside an already-applied abbreviation
// (§4.D step 4, invariant 3: freq(p) <= naive occurrence count).
func walkChoices(sr *StringRecord, set []*Pattern) {
	i := 0
	n := len(sr.Text)
	for i < n {
		p := sr.chosenAt[i]
		if p == nil {
			i++
			continue
		}
		p.Freq++
		i += len(p.Key)
	}
}

// totalBytesWithRoutines adds routine padding on top of each string's
// rounded byte cost (§4.D step 6): for every routine id known to the
// corpus — not just ids that happen to own an inline string, since most
// routines print nothing at all — the routine's code size plus the
// bytes of its inline strings is padded up to the next multiple of
// 2/4/8 depending on z-version.
func totalBytesWithRoutines(corpus *Corpus) int {
	total := 0
	routineBytes := make(map[int]int)
	for _, sr := range corpus.Strings {
		if sr.RoutineID >= 0 && sr.class == classInline {
			routineBytes[sr.RoutineID] += sr.totalBytes
			continue
		}
		total += sr.totalBytes
	}

	pad := 2
	switch {
	case corpus.ZVersion >= 8:
		pad = 8
	case corpus.ZVersion >= 4:
		pad = 4
	}

	for id := range corpus.RoutineSizes {
		size := corpus.RoutineSizes[id] + routineBytes[id]
		rem := size % pad
		if rem != 0 {
			size += pad - rem
		}
		total += size
		delete(routineBytes, id)
	}
	// Any routine id that owns inline strings but has no recorded code
	// size (malformed or partial transcript) still needs its inline
	// bytes padded and counted.
	for _, bytesUsed := range routineBytes {
		rem := bytesUsed % pad
		if rem != 0 {
			bytesUsed += pad - rem
		}
		total += bytesUsed
	}
	return total
}
