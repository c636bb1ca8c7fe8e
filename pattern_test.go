package zabbrev

import "testing"

// S1 — the trivial repeat "the " has naive_score = 2*(4-2) - 3*ceil(6/3)
// = 4 - 6 = -2, so it must never be admitted as a candidate.
func TestExtractPatternsTrivialRepeatRejected(t *testing.T) {
	c := mustCorpus(t, "the cat sat", "the dog ran")
	a := DefaultAlphabet()

	candidates, _, err := ExtractPatterns(c, a)
	if err != nil {
		t.Fatalf("ExtractPatterns: %v", err)
	}
	if p, ok := candidates["the "]; ok {
		t.Fatalf(`"the " admitted with score %d, want rejected (naive_score <= 0)`, p.Savings)
	}
}

// S2 — "abcdabc" (freq 2, cost 7) has naive_score = 2*5 - 3*ceil(9/3) =
// 10 - 9 = 1 > 0 and must be admitted; "abcdabcd" (freq 2, cost 8)
// scores 2*6 - 3*ceil(10/3) = 0 and "abcd" alone (freq 3, cost 4)
// scores 3*2-6=0, so neither may be.
func TestExtractPatternsClearWinner(t *testing.T) {
	c := mustCorpus(t, "abcdabcdabcd")
	a := DefaultAlphabet()

	candidates, _, err := ExtractPatterns(c, a)
	if err != nil {
		t.Fatalf("ExtractPatterns: %v", err)
	}
	p, ok := candidates["abcdabc"]
	if !ok {
		t.Fatalf(`"abcdabc" not admitted as a candidate`)
	}
	if p.Savings != 1 {
		t.Fatalf(`"abcdabc" naive_score = %d, want 1`, p.Savings)
	}
	if _, ok := candidates["abcd"]; ok {
		t.Fatalf(`"abcd" admitted with naive_score 0, want rejected`)
	}
}

func TestNaiveScoreFormula(t *testing.T) {
	// cost=4, freq=2: 2*(4-2) - 3*ceil(6/3) = 4 - 6 = -2
	if got := naiveScore(4, 2); got != -2 {
		t.Fatalf("naiveScore(4,2) = %d, want -2", got)
	}
	// cost=8, freq=2: 2*6 - 3*ceil(10/3) = 12 - 12 = 0
	if got := naiveScore(8, 2); got != 0 {
		t.Fatalf("naiveScore(8,2) = %d, want 0", got)
	}
}

func TestExtractPatternsLongPatternCutoff(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyz" // 26 chars > patternCutoff(20)
	c := mustCorpus(t, long+long)
	a := DefaultAlphabet()

	candidates, longPatterns, err := ExtractPatterns(c, a)
	if err != nil {
		t.Fatalf("ExtractPatterns: %v", err)
	}
	for key := range candidates {
		if len(key) > patternCutoff {
			t.Fatalf("candidate %q exceeds patternCutoff %d", key, patternCutoff)
		}
	}
	foundMaximal := false
	for _, lp := range longPatterns {
		if lp.Key == long {
			foundMaximal = true
		}
	}
	if !foundMaximal {
		t.Fatalf("expected the maximal 26-char repeat in long-pattern report, got %+v", longPatterns)
	}
}

func TestDedupeLongPatternsSuppressesNestedDuplicates(t *testing.T) {
	h := &longPatternMaxHeap{
		{key: "abcdefghijklmnopqrstu", cost: 40, freq: 2},  // 21 chars
		{key: "bcdefghijklmnopqrstu", cost: 38, freq: 2},   // head (key[1:]) of the first
		{key: "abcdefghijklmnopqrst", cost: 38, freq: 2},   // tail of the first
	}
	out := dedupeLongPatterns(h)
	if len(out) != 1 {
		t.Fatalf("dedupeLongPatterns: got %d entries, want 1 (maximal only): %+v", len(out), out)
	}
	if out[0].Key != "abcdefghijklmnopqrstu" {
		t.Fatalf("dedupeLongPatterns kept %q, want the maximal repeat", out[0].Key)
	}
}

func TestContainsRejectedSeparatorAndAt(t *testing.T) {
	if !containsRejected([]byte("a@b")) {
		t.Fatalf("containsRejected: '@' not detected")
	}
	if !containsRejected([]byte{'a', gsaSeparator, 'b'}) {
		t.Fatalf("containsRejected: separator byte not detected")
	}
	if containsRejected([]byte("plain")) {
		t.Fatalf("containsRejected: false positive on plain text")
	}
}
