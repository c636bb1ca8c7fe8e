package zabbrev

import (
	"container/heap"
	"fmt"
)

// Refine runs the rounding-aware refinement of §4.F over sel.Best,
// mutating it (and sel.Residual) in place, until the configured
// compression level's budget is exhausted or no mutation improves
// total bytes. It returns the final total byte count.
func Refine(corpus *Corpus, alphabet *Alphabet, sel *SelectResult, cfg Config) (int, []string, error) {
	var trace []string
	note := func(format string, args ...any) {
		if cfg.Trace {
			trace = append(trace, fmt.Sprintf(format, args...))
		}
	}

	currentBytes, err := RescoreOptimalParse(corpus, alphabet, sel.Best, cfg, true)
	if err != nil {
		return 0, nil, err
	}

	if cfg.Level >= LevelBoundary {
		currentBytes, err = boundaryAdjustment(corpus, alphabet, sel.Best, cfg, currentBytes, note)
		if err != nil {
			return 0, nil, err
		}
	}

	if cfg.Level >= LevelNormal {
		currentBytes, err = replacementFromResidue(corpus, alphabet, sel, cfg, currentBytes, note)
		if err != nil {
			return 0, nil, err
		}
	}

	// The last rescore above may have scored a rejected trial; rescore
	// the committed set so every pattern's Freq describes it.
	currentBytes, err = RescoreOptimalParse(corpus, alphabet, sel.Best, cfg, true)
	if err != nil {
		return 0, nil, err
	}

	return currentBytes, trace, nil
}

// replacementFromResidue is §4.F's F1 stage: pop residual candidates
// and try swapping them into best wherever a subset/superset
// relationship with an existing member holds (Normal, level 2) or at
// every position (Maximum, level 3, for the first NumDeepPasses pops).
// A member displaced by a successful swap rejoins the residual heap.
func replacementFromResidue(corpus *Corpus, alphabet *Alphabet, sel *SelectResult, cfg Config, currentBytes int, note func(string, ...any)) (int, error) {
	maxLen := 0
	for _, p := range sel.Best {
		if len(p.Key) > maxLen {
			maxLen = len(p.Key)
		}
	}
	if maxLen > patternCutoff {
		maxLen = patternCutoff
	}
	maxLen += 2

	residualHeap := make(patternHeap, len(sel.Residual))
	copy(residualHeap, sel.Residual)
	heap.Init(&residualHeap)

	passes := 0
	for passes < cfg.NumPasses && residualHeap.Len() > 0 {
		q := heap.Pop(&residualHeap).(*Pattern)
		passes++
		if len(q.Key) > maxLen {
			continue
		}

		deep := cfg.Level == LevelMaximum && passes <= cfg.NumDeepPasses

		var (
			ok       bool
			displaced *Pattern
			err      error
		)
		if deep {
			ok, displaced, currentBytes, err = tryAllPositions(corpus, alphabet, sel.Best, q, cfg, currentBytes)
		} else {
			ok, displaced, currentBytes, err = tryRestrictedPositions(corpus, alphabet, sel.Best, q, cfg, currentBytes)
		}
		if err != nil {
			return 0, err
		}
		if ok {
			note("replaced residual %q into best, bytes now %d", q.Key, currentBytes)
			heap.Push(&residualHeap, displaced)
		}
	}

	sel.Residual = sel.Residual[:0]
	for residualHeap.Len() > 0 {
		sel.Residual = append(sel.Residual, heap.Pop(&residualHeap).(*Pattern))
	}
	return currentBytes, nil
}

// tryRestrictedPositions is the Normal (level 2) variant: only
// positions whose occupant is a subset or superset of q's key are
// tested, and the first improving swap is kept.
func tryRestrictedPositions(corpus *Corpus, alphabet *Alphabet, best []*Pattern, q *Pattern, cfg Config, bytesBefore int) (bool, *Pattern, int, error) {
	for i, cur := range best {
		if !(containsKey(cur.Key, q.Key) || containsKey(q.Key, cur.Key)) {
			continue
		}
		original := best[i]
		best[i] = q
		bytesAfter, err := RescoreOptimalParse(corpus, alphabet, best, cfg, true)
		if err != nil {
			best[i] = original
			return false, nil, bytesBefore, err
		}
		if bytesAfter < bytesBefore {
			return true, original, bytesAfter, nil
		}
		best[i] = original
	}
	return false, nil, bytesBefore, nil
}

// tryAllPositions is the Maximum (level 3) variant: every position is
// tried and the single best-improving swap (not just the first) is
// committed.
func tryAllPositions(corpus *Corpus, alphabet *Alphabet, best []*Pattern, q *Pattern, cfg Config, bytesBefore int) (bool, *Pattern, int, error) {
	bestIdx := -1
	bestBytes := bytesBefore

	for i := range best {
		original := best[i]
		best[i] = q
		bytesAfter, err := RescoreOptimalParse(corpus, alphabet, best, cfg, true)
		best[i] = original
		if err != nil {
			return false, nil, bytesBefore, err
		}
		if bytesAfter < bestBytes {
			bestBytes = bytesAfter
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return false, nil, bytesBefore, nil
	}
	displaced := best[bestIdx]
	best[bestIdx] = q
	return true, displaced, bestBytes, nil
}

// containsKey reports whether needle occurs as a substring of
// haystack (used for the Normal-level subset/superset test; both
// directions are checked by the caller).
func containsKey(haystack, needle string) bool {
	if len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

// boundaryAdjustment is §4.F's F2 stage: two outer passes trying, per
// selected pattern, to drop/add a leading or trailing space, then drop
// a leading or trailing character, then a leading or trailing pair of
// characters — keeping whichever mutation reduces total bytes.
func boundaryAdjustment(corpus *Corpus, alphabet *Alphabet, best []*Pattern, cfg Config, currentBytes int, note func(string, ...any)) (int, error) {
	for outer := 0; outer < 2; outer++ {
		for i := range best {
			var err error
			currentBytes, err = tryBoundaryMutations(corpus, alphabet, best, i, cfg, currentBytes, note)
			if err != nil {
				return 0, err
			}
		}
	}
	return currentBytes, nil
}

func tryBoundaryMutations(corpus *Corpus, alphabet *Alphabet, best []*Pattern, i int, cfg Config, currentBytes int, note func(string, ...any)) (int, error) {
	attemptMin := func(newKey string, minLen int) error {
		if len(newKey) < minLen {
			return nil
		}
		ok, newBytes, err := applyKeyMutation(corpus, alphabet, best, i, newKey, cfg, currentBytes)
		if err != nil {
			return err
		}
		if ok {
			note("boundary-adjusted %q bytes now %d", newKey, newBytes)
			currentBytes = newBytes
		}
		return nil
	}
	// attempt enforces the single-character-drop floor (§4.F: a key must
	// stay at least 2 characters long).
	attempt := func(newKey string) error { return attemptMin(newKey, 2) }
	// attemptPair enforces the two-character-drop floor (§4.F: dropping a
	// pair must keep the key at least 3 characters long, stricter than
	// the single-character floor).
	attemptPair := func(newKey string) error { return attemptMin(newKey, 3) }

	key := best[i].Key
	if len(key) > 0 && key[0] == SentinelSpace {
		if err := attempt(key[1:]); err != nil {
			return 0, err
		}
	} else {
		if err := attempt(string([]byte{SentinelSpace}) + key); err != nil {
			return 0, err
		}
	}

	key = best[i].Key
	if len(key) > 0 && key[len(key)-1] == SentinelSpace {
		if err := attempt(key[:len(key)-1]); err != nil {
			return 0, err
		}
	} else {
		if err := attempt(key + string([]byte{SentinelSpace})); err != nil {
			return 0, err
		}
	}

	key = best[i].Key
	if len(key) >= 2 {
		if err := attempt(key[1:]); err != nil {
			return 0, err
		}
	}
	key = best[i].Key
	if len(key) >= 2 {
		if err := attempt(key[:len(key)-1]); err != nil {
			return 0, err
		}
	}

	key = best[i].Key
	if len(key) >= 3 {
		if err := attemptPair(key[2:]); err != nil {
			return 0, err
		}
	}
	key = best[i].Key
	if len(key) >= 3 {
		if err := attemptPair(key[:len(key)-2]); err != nil {
			return 0, err
		}
	}

	return currentBytes, nil
}

// applyKeyMutation installs newKey on best[i] with a freshly
// recomputed cost (§9's rounding-cost Open Question is resolved here
// as always-recompute: correct for every mutation, and for the pure
// space add/drop case it agrees with the cheaper +-1 shortcut since
// ZstringCost(space) is always 1), rescans, and commits or restores
// based on total bytes.
func applyKeyMutation(corpus *Corpus, alphabet *Alphabet, best []*Pattern, i int, newKey string, cfg Config, bytesBefore int) (bool, int, error) {
	p := best[i]
	origKey, origCost := p.Key, p.Cost
	origOcc, origValid := p.occ, p.occValid

	p.Key = newKey
	p.Cost = alphabet.ZstringCost([]byte(newKey))
	p.invalidate()

	bytesAfter, err := RescoreOptimalParse(corpus, alphabet, best, cfg, true)
	if err != nil {
		p.Key, p.Cost = origKey, origCost
		p.occ, p.occValid = origOcc, origValid
		return false, bytesBefore, err
	}
	if bytesAfter < bytesBefore {
		return true, bytesAfter, nil
	}
	p.Key, p.Cost = origKey, origCost
	p.occ, p.occValid = origOcc, origValid
	return false, bytesBefore, nil
}
