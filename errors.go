package zabbrev

import "errors"

// Sentinel errors returned by the core. Per §7 of the design, input
// errors and internal invariant violations are the only ones that
// propagate out of Run; option and encoding errors are reported as
// Warnings instead and never fail the run.
var (
	// ErrEmptyCorpus is returned when a Corpus has no string records at all.
	ErrEmptyCorpus = errors.New("zabbrev: no data to index")

	// ErrSeparatorCollision is returned when ingested text already
	// contains the byte reserved for the generalized suffix array
	// separator (0x0B).
	ErrSeparatorCollision = errors.New("zabbrev: input contains reserved control byte")

	// ErrInvalidAlphabetLength is returned by explicit alphabet overrides
	// (-a0/-a1/-a2) when the supplied string has the wrong length. Per §7
	// this is an option error: callers should warn and fall back to
	// defaults rather than treat it as fatal.
	ErrInvalidAlphabetLength = errors.New("zabbrev: alphabet override has wrong length")

	// ErrInternalInvariant marks a bug: state that should be unreachable
	// given the algorithm's own guarantees (empty heap before first pick,
	// negative cost, etc).
	ErrInternalInvariant = errors.New("zabbrev: internal invariant violation")
)
