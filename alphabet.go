package zabbrev

// Alphabet models the three Z-machine character tables (A0/A1/A2) used
// to classify each input character into a z-char cost tier, per §4.A.
// Default tables are grounded on the A0/A1/A2 tables of a real Z-machine
// interpreter (other_examples: DaveTCode-zmachine-golang's zstring.go),
// using the v2+ default punctuation table (a2_v2_default minus the
// escape, newline and quote slots; newline and quote are costed
// separately through their sentinels).
type Alphabet struct {
	A0 [26]byte
	A1 [26]byte
	A2 [23]byte

	// isA0Space and isA1A2QuoteLF are membership bitmaps over the 256
	// Latin-1 code points, rebuilt whenever the tables change (§4.A).
	// A character in isA0Space costs 1 z-char; one in isA1A2QuoteLF
	// costs 2; anything else costs 4 (10-bit literal escape).
	isA0Space     [256]bool
	isA1A2QuoteLF [256]bool
}

// DefaultAlphabet returns the standard A0 (lowercase)/A1 (uppercase)/A2
// (punctuation) tables.
func DefaultAlphabet() *Alphabet {
	a := &Alphabet{
		A0: [26]byte{'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z'},
		A1: [26]byte{'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z'},
		A2: [23]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '.', ',', '!', '?', '_', '#', '\'', '/', '\\', '-', ':', '(', ')'},
	}
	a.rebuild()
	return a
}

// SetA0, SetA1, SetA2 install explicit alphabet overrides (-a0/-a1/-a2,
// §6). A slice of the wrong length is rejected with
// ErrInvalidAlphabetLength and leaves the table unchanged; see the CLI's
// option-error handling (§7).
func (a *Alphabet) SetA0(s []byte) error { return setTable(a, s, 0) }
func (a *Alphabet) SetA1(s []byte) error { return setTable(a, s, 1) }
func (a *Alphabet) SetA2(s []byte) error { return setTable(a, s, 2) }

func setTable(a *Alphabet, s []byte, which int) error {
	switch which {
	case 0:
		if len(s) != len(a.A0) {
			return ErrInvalidAlphabetLength
		}
		copy(a.A0[:], s)
	case 1:
		if len(s) != len(a.A1) {
			return ErrInvalidAlphabetLength
		}
		copy(a.A1[:], s)
	case 2:
		if len(s) != len(a.A2) {
			return ErrInvalidAlphabetLength
		}
		copy(a.A2[:], s)
	}
	a.rebuild()
	return nil
}

// rebuild recomputes the two membership bitmaps from the current table
// contents plus the fixed sentinel set (space/quote/LF).
func (a *Alphabet) rebuild() {
	a.isA0Space = [256]bool{}
	a.isA1A2QuoteLF = [256]bool{}

	for _, b := range a.A0 {
		a.isA0Space[b] = true
	}
	a.isA0Space[' '] = true
	a.isA0Space[SentinelSpace] = true

	for _, b := range a.A1 {
		a.isA1A2QuoteLF[b] = true
	}
	for _, b := range a.A2 {
		a.isA1A2QuoteLF[b] = true
	}
	a.isA1A2QuoteLF['"'] = true
	a.isA1A2QuoteLF['\n'] = true
	a.isA1A2QuoteLF[SentinelQuote] = true
	a.isA1A2QuoteLF[SentinelLF] = true
}

// CostOf returns the z-char cost tier of a single Latin-1 byte: 1 for
// A0/space, 2 for A1/A2/quote/LF, 4 for everything else (10-bit escape).
func (a *Alphabet) CostOf(b byte) int {
	switch {
	case a.isA0Space[b]:
		return 1
	case a.isA1A2QuoteLF[b]:
		return 2
	default:
		return 4
	}
}

// ZstringCost sums CostOf over every byte of s (invariant 1: additive
// in concatenation because it is a plain per-byte sum).
func (a *Alphabet) ZstringCost(s []byte) int {
	total := 0
	for _, b := range s {
		total += a.CostOf(b)
	}
	return total
}
