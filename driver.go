package zabbrev

// Result is the outcome of a full abbreviation-selection run (§5's
// Init -> Enumerated -> NaiveRanked -> Selected -> Refined -> Emitted
// state machine collapsed into a single call).
type Result struct {
	Abbreviations []*Pattern // final chosen abbreviations, selection order
	TotalBytes    int
	BytesSaved    int // versus the same corpus with no abbreviations at all
	Alphabet      *Alphabet
	Warnings      []Warning
	Trace         []string

	// LongDuplicates is populated only when cfg.OnlyRefactor short-
	// circuits straight past selection and refinement (§4.H).
	LongDuplicates []LongPattern
}

// Run drives the whole pipeline: optional custom-alphabet construction,
// suffix/LCP-array-backed candidate extraction, greedy selection with
// reinsertion, and rounding-aware refinement.
func Run(corpus *Corpus, cfg Config) (*Result, error) {
	if err := corpus.Validate(); err != nil {
		return nil, err
	}

	alphabet := DefaultAlphabet()
	var warnings []Warning

	switch {
	case cfg.Alphabet != nil:
		alphabet = cfg.Alphabet
	case cfg.BuildCustomAlphabet:
		built, _, w, err := BuildCustomAlphabet(corpus, cfg)
		if err != nil {
			return nil, err
		}
		alphabet = built
		warnings = append(warnings, w...)
	}

	candidates, longPatterns, err := ExtractPatterns(corpus, alphabet)
	if err != nil {
		return nil, err
	}

	if cfg.OnlyRefactor {
		return &Result{
			Alphabet:       alphabet,
			Warnings:       warnings,
			LongDuplicates: longPatterns,
		}, nil
	}

	baselineBytes, err := RescoreOptimalParse(corpus, alphabet, nil, cfg, true)
	if err != nil {
		return nil, err
	}

	sel, err := SelectAbbreviations(corpus, alphabet, candidates, cfg)
	if err != nil {
		return nil, err
	}

	totalBytes, trace, err := Refine(corpus, alphabet, sel, cfg)
	if err != nil {
		return nil, err
	}

	return &Result{
		Abbreviations: sel.Best,
		TotalBytes:    totalBytes,
		BytesSaved:    baselineBytes - totalBytes,
		Alphabet:      alphabet,
		Warnings:      warnings,
		Trace:         trace,
	}, nil
}
