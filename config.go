package zabbrev

// CompressionLevel controls which refinement stages run (§4.F, §6 -x).
type CompressionLevel int

const (
	LevelNone CompressionLevel = iota // -x0: no refinement
	LevelBoundary                     // -x1: boundary adjustment only
	LevelNormal                       // -x2: + replacement from residue (normal)
	LevelMaximum                      // -x3: + deep replacement pass
)

// Config carries every run parameter explicitly; the core never holds
// package-level state (§5, §9 "No global state in the core").
type Config struct {
	N int // abbreviation count, default 96

	ZVersion int
	ForceR3  bool // -r3: force rounding unit 3 regardless of version

	Level          CompressionLevel
	NumPasses      int // default 10000, -x2/-x3 first arg
	NumDeepPasses  int // default 1000, -x3 second arg

	ThrowBackLowScorers bool // -b

	BuildCustomAlphabet bool // -a

	// Alphabet, if non-nil, overrides both the default tables and
	// BuildCustomAlphabet with an explicit caller-supplied alphabet
	// (-a0/-a1/-a2).
	Alphabet *Alphabet

	OnlyRefactor bool // --onlyrefactor

	// Trace, if true, makes the driver collect human-readable
	// refinement trace lines into Result.Trace (§1 ambient stack: the
	// core never logs, it only records data the CLI may print).
	Trace bool
}

// DefaultConfig returns the CLI's documented defaults (§6).
func DefaultConfig() Config {
	return Config{
		N:             96,
		ZVersion:      3,
		Level:         LevelNormal,
		NumPasses:     10000,
		NumDeepPasses: 1000,
	}
}

// Warning is a non-fatal diagnostic surfaced as data rather than logged
// directly by the core (§7: option/encoding errors warn and fall back,
// never fatal).
type Warning struct {
	Message string
}
