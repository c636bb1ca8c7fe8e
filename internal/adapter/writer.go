package adapter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	zabbrev "github.com/xyzzy-if/zabbrev"
)

// Dialect selects an output format (-o).
type Dialect int

const (
	DialectInput Dialect = iota // same dialect the corpus was read in
	DialectInform6
	DialectZAP
)

// ResolveDialect maps the -o argument (numeric or named) to a Dialect.
// An empty or unrecognized spec resolves to DialectInput, which the
// caller then breaks by falling back to whichever dialect the corpus
// was actually read in (§6 -o "default: same as input").
func ResolveDialect(spec string) Dialect {
	switch spec {
	case "1", "inform", "inform6":
		return DialectInform6
	case "2", "zap":
		return DialectZAP
	default:
		return DialectInput
	}
}

// Write dispatches to WriteInform6 or WriteZAP according to dialect,
// falling back to fallback when dialect is DialectInput.
func Write(w io.Writer, dialect Dialect, fallback Dialect, patterns []*zabbrev.Pattern) ([]zabbrev.Warning, error) {
	resolved := dialect
	if resolved == DialectInput {
		resolved = fallback
	}
	if resolved == DialectInform6 {
		return WriteInform6(w, patterns)
	}
	return nil, WriteZAP(w, patterns)
}

// WriteZAP emits patterns as a sequence of .FSTR lines followed by a
// WORDS:: reference list and a closing .ENDI, restoring the space,
// quote, and LF sentinels to their literal characters.
func WriteZAP(w io.Writer, patterns []*zabbrev.Pattern) error {
	bw := bufio.NewWriter(w)

	for i, p := range patterns {
		text := restoreSentinelsZAP(p.Key)
		text = strings.ReplaceAll(text, "\"", "\"\"")
		saved := zabbrev.NaiveScore(p.Cost, p.Freq)
		if _, err := fmt.Fprintf(bw, ".FSTR FSTR?%d,\"%s\" ; %d×%d, saved %d\n", i+1, text, p.Freq, p.Cost, saved); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(bw, "WORDS::"); err != nil {
		return err
	}
	for i := range patterns {
		if _, err := fmt.Fprintf(bw, "\tFSTR?%d\n", i+1); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw, ".ENDI"); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteInform6 emits patterns as Abbreviate directives, one per line,
// with a trailing comment giving frequency, cost, and savings. Any
// abbreviation exceeding Inform6's 64-character limit is reported both
// inline and in the returned warning list.
func WriteInform6(w io.Writer, patterns []*zabbrev.Pattern) ([]zabbrev.Warning, error) {
	bw := bufio.NewWriter(w)
	var warnings []zabbrev.Warning

	for _, p := range patterns {
		text := restoreSentinelsInform6(p.Key)
		if len(text) > 64 {
			msg := fmt.Sprintf("Warning: Abbreviation too long: %q (%d characters, limit 64)", text, len(text))
			warnings = append(warnings, zabbrev.Warning{Message: msg})
			if _, err := fmt.Fprintf(bw, "! %s\n", msg); err != nil {
				return warnings, err
			}
		}
		escaped := strings.ReplaceAll(text, "\"", "~")
		savings := zabbrev.NaiveScore(p.Cost, p.Freq)
		if _, err := fmt.Fprintf(bw, "Abbreviate \"%s\"; ! freq %d, cost %d, savings %d\n", escaped, p.Freq, p.Cost, savings); err != nil {
			return warnings, err
		}
	}

	return warnings, bw.Flush()
}
