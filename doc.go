// Package zabbrev selects a near-optimal set of Z-machine abbreviation
// strings for interactive-fiction compilers (ZIL/ZAPF and Inform6).
//
// # Overview
//
// Z-machine text is packed three 5-bit z-characters per 16-bit word. A
// compiled story file may define up to N abbreviation strings (96 by
// convention), each referenced by a 2-z-character escape, to compress
// every other string in the game. zabbrev picks that set: it builds a
// generalized suffix array over the whole text corpus, enumerates every
// repeated substring with positive naive savings, runs Wagner's optimal-
// parse dynamic program to score candidate sets exactly, greedily fills
// N slots with reinsertion of under-performing picks, and finally
// mutates the chosen set to minimize bytes lost to the Z-machine's
// per-string byte-alignment padding.
//
// # When to Use zabbrev
//
// Call Run once per compiled story file, after extracting its text
// corpus with one of the internal/adapter readers (ZAP source,
// Inform6's gametext.txt transcript, or an Infodump+TXD disassembly).
// The result's Abbreviations can be handed to the matching adapter
// writer to emit ZAP .FSTR directives or Inform6 Abbreviate statements
// ready to feed back into the compiler.
//
// # When NOT to Use zabbrev
//
// zabbrev does not compile, assemble, or round-trip text to the 5-bit
// z-character stream; it only decides which strings make good
// abbreviations. It is not a general substring-compression library —
// the objective function (bytes after Z-machine rounding and routine
// padding) and the 2-z-character reference cost are specific to this
// target format.
//
// # Basic Usage
//
//	corpus, warnings, err := adapter.ReadZAPDir("game/", adapter.CharsetAuto)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg := zabbrev.DefaultConfig()
//	result, err := zabbrev.Run(corpus, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	adapter.WriteZAP(os.Stdout, result.Abbreviations)
//
// # Performance Characteristics
//
// Suffix-array construction and pattern extraction are near-linear in
// corpus size. The optimal-parse rescorer (RescoreOptimalParse) is
// invoked once per candidate considered during selection plus once per
// refinement mutation attempted, and its own cost is the sum over
// strings of that string's length times the number of candidates with
// an occurrence in it — this is the dominant cost of a run and the
// reason its per-string scratch arrays are preallocated once and never
// reallocated (§5 of the design: no allocation on the hot path).
//
// The whole package is single-threaded and holds no package-level
// state: every run parameter is explicit in a Config value passed to
// Run, and every mutable structure (suffix array, per-string scratch,
// pattern occurrence lists) is owned by the single in-flight run.
package zabbrev
