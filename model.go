package zabbrev

import "fmt"

// Sentinel bytes substituted for raw characters on ingestion, per §3.
// All three are valid Latin-1 code points and are restored verbatim by
// the output adapters.
const (
	SentinelSpace = '·' // space -> · (A0 tier)
	SentinelQuote = '~'      // " -> ~ (A1/A2 tier)
	SentinelLF    = '^'      // \n -> ^ (A1/A2 tier)
)

// gsaSeparator is the byte used to join strings in the generalized
// suffix array (§4.B, §9): an ASCII control byte that cannot occur in
// input after sentinel substitution. gsaWideMarker stands in for any
// logical character outside the Latin-1 range (§4.B operates on a
// byte-per-character view); patterns containing either byte are
// rejected at extraction exactly like patterns containing the
// separator, so a wide-rune collision can never produce a bogus
// abbreviation.
const (
	gsaSeparator  = 0x0B
	gsaWideMarker = 0x01
)

// WideRuneMarker is the byte external adapters must substitute for any
// logical character outside the Latin-1 range when normalizing input
// (§4.B operates on a byte-per-character view). The core rejects it at
// pattern extraction exactly like the generalized-suffix separator.
const WideRuneMarker = gsaWideMarker

// stringClass captures the rounding-relevant classification of a string
// record, derived once from the Packed/ObjectDescription flags (§3).
type stringClass int

const (
	classInline stringClass = iota
	classPacked
	classObject
)

// StringRecord is one immutable text unit from the corpus plus the
// mutable per-pass scratch the optimal-parse rescorer (§4.D) reuses on
// every call without reallocating (§5, §9).
type StringRecord struct {
	ID                int
	Text              []byte // Latin-1 view; sentinels already substituted
	Packed            bool
	ObjectDescription bool
	RoutineID         int // -1 if the string is not grouped into a routine

	class stringClass

	// Scratch reused across every RescoreOptimalParse call. f[i] is the
	// minimum cost of encoding Text[i:]; chosenAt[i] is the pattern
	// chosen at i, or nil if Text[i] is emitted literally.
	f        []uint32
	chosenAt []*Pattern

	lastCost     int
	roundingCost int
	totalBytes   int
}

// NewStringRecord builds a string record and precomputes its rounding
// class and scratch arrays. text must already have sentinels applied.
func NewStringRecord(id int, text []byte, packed, objectDescription bool, routineID int) *StringRecord {
	sr := &StringRecord{
		ID:                id,
		Text:              text,
		Packed:            packed,
		ObjectDescription: objectDescription,
		RoutineID:         routineID,
		f:                 make([]uint32, len(text)+2),
		chosenAt:          make([]*Pattern, len(text)+1),
	}
	switch {
	case objectDescription:
		sr.class = classObject
	case packed:
		sr.class = classPacked
	default:
		sr.class = classInline
	}
	return sr
}

// roundingUnit returns R from §3's rounding formula for this string
// given the target z-machine version and an optional forced override
// (-r3 CLI flag, §6).
func (sr *StringRecord) roundingUnit(zVersion int, forceR3 bool) int {
	if forceR3 || !sr.Packed {
		return 3
	}
	switch {
	case zVersion <= 3:
		return 3
	case zVersion <= 7:
		return 6
	default:
		return 12
	}
}

// Corpus aggregates the string records and the data shared across a
// full selection run: the generalized text, its suffix/LCP arrays, and
// routine code sizes used by the routine-padding byte accounting (§4.D
// step 6).
type Corpus struct {
	Strings      []*StringRecord
	RoutineSizes map[int]int // routine id -> bytes of code excluding inline strings
	ZVersion     int

	gen     []byte   // generalized concatenation of all Text, separator-joined
	bounds  [][2]int // per-string [start,end) byte range inside gen
	sa      []int32
	lcp     []int32
	saBuilt bool
}

// NewCorpus creates an empty corpus targeting the given z-machine version.
func NewCorpus(zVersion int) *Corpus {
	return &Corpus{RoutineSizes: make(map[int]int), ZVersion: zVersion}
}

// Add appends a string record, assigning it the next sequential ID.
func (c *Corpus) Add(text []byte, packed, objectDescription bool, routineID int) (*StringRecord, error) {
	for _, b := range text {
		if b == gsaSeparator {
			return nil, fmt.Errorf("zabbrev: string %d: %w", len(c.Strings), ErrSeparatorCollision)
		}
	}
	sr := NewStringRecord(len(c.Strings), text, packed, objectDescription, routineID)
	c.Strings = append(c.Strings, sr)
	c.saBuilt = false
	return sr, nil
}

// Validate returns ErrEmptyCorpus if there is nothing to index, per
// §4.B's ingestion failure mode.
func (c *Corpus) Validate() error {
	if len(c.Strings) == 0 {
		return ErrEmptyCorpus
	}
	return nil
}
