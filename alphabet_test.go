package zabbrev

import "testing"

func TestDefaultAlphabetCostTiers(t *testing.T) {
	a := DefaultAlphabet()

	cases := []struct {
		b    byte
		want int
	}{
		{'a', 1},
		{' ', 1},
		{SentinelSpace, 1},
		{'A', 2},
		{'"', 2},
		{'\n', 2},
		{SentinelQuote, 2},
		{SentinelLF, 2},
		{'.', 2},
		{0xFF, 4}, // no alphabet membership
	}
	for _, c := range cases {
		if got := a.CostOf(c.b); got != c.want {
			t.Fatalf("CostOf(%q) = %d, want %d", c.b, got, c.want)
		}
	}
}

// Invariant 1: cost is additive in concatenation.
func TestZstringCostAdditive(t *testing.T) {
	a := DefaultAlphabet()
	x := []byte("hello")
	y := []byte("world")
	xy := append(append([]byte{}, x...), y...)

	if got, want := a.ZstringCost(xy), a.ZstringCost(x)+a.ZstringCost(y); got != want {
		t.Fatalf("ZstringCost(x++y) = %d, want %d", got, want)
	}
}

func TestSetAlphabetWrongLength(t *testing.T) {
	a := DefaultAlphabet()
	if err := a.SetA0([]byte("short")); err != ErrInvalidAlphabetLength {
		t.Fatalf("SetA0 with wrong length: got %v, want ErrInvalidAlphabetLength", err)
	}
	if err := a.SetA2([]byte("123456789012345678901234567890")); err != ErrInvalidAlphabetLength {
		t.Fatalf("SetA2 with wrong length: got %v, want ErrInvalidAlphabetLength", err)
	}
}

func TestSetAlphabetRebuildsMembership(t *testing.T) {
	a := DefaultAlphabet()
	if a.CostOf('q') != 1 {
		t.Fatalf("default alphabet: CostOf('q') = %d, want 1", a.CostOf('q'))
	}

	a0 := []byte("bcdefghijklmnopqrstuvwxyz#") // drop 'a', add '#'
	if err := a.SetA0(a0); err != nil {
		t.Fatalf("SetA0: %v", err)
	}
	if a.CostOf('a') != 4 {
		t.Fatalf("after SetA0 dropping 'a': CostOf('a') = %d, want 4", a.CostOf('a'))
	}
	if a.CostOf('#') != 1 {
		t.Fatalf("after SetA0 adding '#': CostOf('#') = %d, want 1", a.CostOf('#'))
	}
}
