package zabbrev

import "testing"

func newPattern(key string, cost int) *Pattern {
	return &Pattern{Key: key, Cost: cost}
}

// S3 — for "xyxyxy" with candidates {"xy","xyx"} (each char costs 1 in
// the default alphabet), tiling with "xy" three times costs 6, no better
// than the unabbreviated 6; the optimal parse is "xyx", a literal "y",
// then "xy", for cost 2+1+2 = 5. Ties at offsets 0 and 2 go to the
// greater-cost "xyx".
func TestRescoreOptimalParseVsGreedy(t *testing.T) {
	c := mustCorpus(t, "xyxyxy")
	a := DefaultAlphabet()

	xy := newPattern("xy", a.ZstringCost([]byte("xy")))
	xyx := newPattern("xyx", a.ZstringCost([]byte("xyx")))
	set := []*Pattern{xy, xyx}

	cfg := DefaultConfig()
	cfg.ZVersion = 3
	if _, err := RescoreOptimalParse(c, a, set, cfg, false); err != nil {
		t.Fatalf("RescoreOptimalParse: %v", err)
	}

	sr := c.Strings[0]
	want := []*Pattern{xyx, nil, xyx, nil, xy, nil}
	for i, choice := range sr.chosenAt {
		if choice != want[i] {
			t.Fatalf("chosenAt[%d] = %v, want %v", i, choice, want[i])
		}
	}
	if sr.lastCost != 5 {
		t.Fatalf("lastCost = %d, want 5 (xyx + y + xy)", sr.lastCost)
	}
}

// Invariant 3: after an optimal-parse rescore, a pattern's Freq (actual
// non-overlapping uses) never exceeds its naive (overlap-counting)
// occurrence count.
func TestRescoreFrequencyNeverExceedsNaive(t *testing.T) {
	c := mustCorpus(t, "aaaaaa")
	a := DefaultAlphabet()
	p := newPattern("aa", a.ZstringCost([]byte("aa")))
	naiveOcc := 5 // "aaaaaa" has 5 overlapping occurrences of "aa"

	cfg := DefaultConfig()
	if _, err := RescoreOptimalParse(c, a, []*Pattern{p}, cfg, false); err != nil {
		t.Fatalf("RescoreOptimalParse: %v", err)
	}
	if p.Freq > naiveOcc {
		t.Fatalf("Freq = %d, exceeds naive occurrence count %d", p.Freq, naiveOcc)
	}
	if p.Freq != 3 {
		t.Fatalf("Freq = %d, want 3 (non-overlapping tiling of 6 chars by 2)", p.Freq)
	}
}

// Invariant 2 (monotone savings): widening the candidate set can only
// reduce (or hold steady) the optimal-parse byte total.
func TestRescoreMonotoneSavingsInSetSize(t *testing.T) {
	c := mustCorpus(t, "hello world hello there", "hello world again")
	a := DefaultAlphabet()
	cfg := DefaultConfig()

	small := []*Pattern{newPattern("hello", a.ZstringCost([]byte("hello")))}
	large := []*Pattern{
		newPattern("hello", a.ZstringCost([]byte("hello"))),
		newPattern(" world", a.ZstringCost([]byte(" world"))),
	}

	bytesSmall, err := RescoreOptimalParse(c, a, small, cfg, true)
	if err != nil {
		t.Fatalf("RescoreOptimalParse(small): %v", err)
	}
	bytesLarge, err := RescoreOptimalParse(c, a, large, cfg, true)
	if err != nil {
		t.Fatalf("RescoreOptimalParse(large): %v", err)
	}
	if bytesLarge > bytesSmall {
		t.Fatalf("widening the candidate set increased bytes: %d -> %d", bytesSmall, bytesLarge)
	}
}

// Invariant 5: rounded byte cost always lands on a multiple of R, and
// bytes = 2*(cost+rounding)/3.
func TestRoundingInvariant(t *testing.T) {
	c := mustCorpus(t, "abcde")
	a := DefaultAlphabet()
	cfg := DefaultConfig()
	cfg.ZVersion = 3

	if _, err := RescoreOptimalParse(c, a, nil, cfg, true); err != nil {
		t.Fatalf("RescoreOptimalParse: %v", err)
	}
	sr := c.Strings[0]
	r := sr.roundingUnit(c.ZVersion, cfg.ForceR3)
	if (sr.lastCost+sr.roundingCost)%r != 0 {
		t.Fatalf("(cost+rounding) mod R = %d, want 0", (sr.lastCost+sr.roundingCost)%r)
	}
	if want := 2 * (sr.lastCost + sr.roundingCost) / 3; sr.totalBytes != want {
		t.Fatalf("totalBytes = %d, want %d", sr.totalBytes, want)
	}
}

// §4.D step 6: a routine that prints nothing still has its code size
// padded and counted, even though no string record ever references it
// via RoutineID (the common case — most routines have no inline text).
func TestTotalBytesIncludesSilentRoutines(t *testing.T) {
	c := NewCorpus(3)
	if _, err := c.Add([]byte("hi"), false, false, -1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	c.RoutineSizes[7] = 51 // odd size, must round up to the next even byte under v3's pad of 2

	a := DefaultAlphabet()
	cfg := DefaultConfig()
	cfg.ZVersion = 3

	total, err := RescoreOptimalParse(c, a, nil, cfg, true)
	if err != nil {
		t.Fatalf("RescoreOptimalParse: %v", err)
	}
	stringBytes := c.Strings[0].totalBytes
	if want := stringBytes + 52; total != want {
		t.Fatalf("totalBytes = %d, want %d (string bytes %d + padded routine size 52)", total, want, stringBytes)
	}
}

// §9 "tie-break direction": among two candidates tying on cost, the
// selector must prefer the more-recently-considered one in set's
// iteration order, per §4.D's pseudocode.
func TestTieBreakPrefersLaterInIterationOrderOnEqualCost(t *testing.T) {
	c := mustCorpus(t, "abab")
	a := DefaultAlphabet()
	cfg := DefaultConfig()

	// Both "ab" patterns have identical cost; only iteration order
	// differs. The DP must consistently land on the one considered last
	// at each position, regardless of which *Pattern value it is.
	first := newPattern("ab", a.ZstringCost([]byte("ab")))
	second := newPattern("ab", a.ZstringCost([]byte("ab")))
	set := []*Pattern{first, second}

	if _, err := RescoreOptimalParse(c, a, set, cfg, false); err != nil {
		t.Fatalf("RescoreOptimalParse: %v", err)
	}
	// The two identical-key patterns share both occurrences; the later
	// one in iteration order must win both ties.
	if first.Freq != 0 || second.Freq != 2 {
		t.Fatalf("equal-cost ties: first=%d second=%d, want first=0 second=2", first.Freq, second.Freq)
	}
}
