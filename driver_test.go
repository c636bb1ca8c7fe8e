package zabbrev

import "testing"

func TestRunEndToEnd(t *testing.T) {
	c := mustCorpus(t,
		"the quick brown fox jumps over the lazy dog",
		"the quick brown fox runs over the lazy dog again",
		"the quick brown fox sleeps near the lazy dog",
	)
	cfg := DefaultConfig()
	cfg.N = 4

	result, err := Run(c, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Abbreviations) > cfg.N {
		t.Fatalf("len(Abbreviations) = %d, exceeds N = %d", len(result.Abbreviations), cfg.N)
	}
	if result.TotalBytes <= 0 {
		t.Fatalf("TotalBytes = %d, want > 0", result.TotalBytes)
	}
}

func TestRunOnlyRefactorShortCircuits(t *testing.T) {
	long := "supercalifragilisticexpialidocious" // > patternCutoff
	c := mustCorpus(t, long+" and "+long+" again")
	cfg := DefaultConfig()
	cfg.OnlyRefactor = true

	result, err := Run(c, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Abbreviations != nil {
		t.Fatalf("OnlyRefactor run produced Abbreviations, want none (selection skipped)")
	}
	if len(result.LongDuplicates) == 0 {
		t.Fatalf("expected at least one long-duplicate refactoring hint")
	}
}

func TestRunEmptyCorpus(t *testing.T) {
	c := NewCorpus(3)
	if _, err := Run(c, DefaultConfig()); err != ErrEmptyCorpus {
		t.Fatalf("Run on empty corpus: got %v, want ErrEmptyCorpus", err)
	}
}

func TestRunWithExplicitAlphabetOverride(t *testing.T) {
	c := mustCorpus(t, "hello world")
	cfg := DefaultConfig()
	cfg.Alphabet = DefaultAlphabet()

	result, err := Run(c, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Alphabet != cfg.Alphabet {
		t.Fatalf("Run did not use the explicitly supplied alphabet override")
	}
}
