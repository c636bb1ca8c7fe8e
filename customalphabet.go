package zabbrev

import "sort"

// BuildCustomAlphabet derives an A0/A1/A2 table from the corpus's own
// character-frequency histogram (§4.G): the 75 most frequent bytes,
// sentinels and the escape byte 27 excluded, fill the alphabet, most
// frequent first into A0, then A1, then A2. It reports the total raw
// cost delta against the standard alphabet and warns when the target
// z-machine version cannot use a custom alphabet at all.
func BuildCustomAlphabet(corpus *Corpus, cfg Config) (*Alphabet, int, []Warning, error) {
	if err := corpus.Validate(); err != nil {
		return nil, 0, nil, err
	}

	var warnings []Warning
	if cfg.ZVersion < 5 {
		warnings = append(warnings, Warning{
			Message: "custom alphabets require z-machine version 5 or later; -a has no effect below v5",
		})
	}

	counts := make(map[byte]int)
	for _, sr := range corpus.Strings {
		for _, b := range sr.Text {
			if isReservedAlphabetByte(b) {
				continue
			}
			counts[b]++
		}
	}

	type freqByte struct {
		b     byte
		count int
	}
	pool := make([]freqByte, 0, len(counts))
	for b, n := range counts {
		pool = append(pool, freqByte{b, n})
	}
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].count != pool[j].count {
			return pool[i].count > pool[j].count
		}
		return pool[i].b < pool[j].b // deterministic tie-break
	})

	const poolSize = 75
	if len(pool) > poolSize {
		pool = pool[:poolSize]
	}
	for len(pool) < poolSize {
		// Not enough distinct bytes in the corpus; pad with the
		// default alphabet so Set* below always sees full-length
		// slices. These padding slots rarely matter: their frequency
		// is zero, so they cost nothing to place anywhere.
		def := DefaultAlphabet()
		var fill byte
		switch {
		case len(pool) < 26:
			fill = def.A0[len(pool)]
		case len(pool) < 52:
			fill = def.A1[len(pool)-26]
		default:
			fill = def.A2[len(pool)-52]
		}
		pool = append(pool, freqByte{fill, 0})
	}

	oldCost := totalRawCost(corpus, DefaultAlphabet())

	alphabet := DefaultAlphabet()
	var a0, a1 [26]byte
	var a2 [23]byte
	for i := 0; i < 26; i++ {
		a0[i] = pool[i].b
	}
	for i := 0; i < 26; i++ {
		a1[i] = pool[26+i].b
	}
	for i := 0; i < 23; i++ {
		a2[i] = pool[52+i].b
	}
	if err := alphabet.SetA0(a0[:]); err != nil {
		return nil, 0, nil, err
	}
	if err := alphabet.SetA1(a1[:]); err != nil {
		return nil, 0, nil, err
	}
	if err := alphabet.SetA2(a2[:]); err != nil {
		return nil, 0, nil, err
	}

	newCost := totalRawCost(corpus, alphabet)
	return alphabet, oldCost - newCost, warnings, nil
}

func isReservedAlphabetByte(b byte) bool {
	switch b {
	case SentinelSpace, SentinelQuote, SentinelLF, 27:
		return true
	}
	return false
}

func totalRawCost(corpus *Corpus, alphabet *Alphabet) int {
	total := 0
	for _, sr := range corpus.Strings {
		total += alphabet.ZstringCost(sr.Text)
	}
	return total
}
