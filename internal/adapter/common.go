package adapter

import (
	"strings"

	zabbrev "github.com/xyzzy-if/zabbrev"
)

// sentinelRaw substitutes the three literal characters that appear in
// ordinary game text (ZAP source, Infodump/TXD listings) with the
// engine's sentinel bytes.
func sentinelRaw(b byte) byte {
	switch b {
	case ' ':
		return zabbrev.SentinelSpace
	case '"':
		return zabbrev.SentinelQuote
	case '\n':
		return zabbrev.SentinelLF
	default:
		return b
	}
}

// sentinelInform6 substitutes the markers an Inform6 transcript already
// uses in place of quote and newline (^ and ~), plus plain space, with
// the engine's sentinel bytes.
func sentinelInform6(b byte) byte {
	switch b {
	case ' ':
		return zabbrev.SentinelSpace
	case '~':
		return zabbrev.SentinelQuote
	case '^':
		return zabbrev.SentinelLF
	default:
		return b
	}
}

func applySentinels(s string, subst func(byte) byte) []byte {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = subst(s[i])
	}
	return out
}

// addSentinelText normalizes a raw text fragment and appends it to the
// corpus as a new string record.
func addSentinelText(corpus *zabbrev.Corpus, text string, packed, objectDescription bool, routineID int, subst func(byte) byte) error {
	b := applySentinels(text, subst)
	_, err := corpus.Add(b, packed, objectDescription, routineID)
	return err
}

// restoreSentinelsZAP reverses sentinelRaw for output: the three
// sentinels become the literal characters ZAP source expects.
func restoreSentinelsZAP(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case zabbrev.SentinelSpace:
			sb.WriteByte(' ')
		case zabbrev.SentinelQuote:
			sb.WriteByte('"')
		case zabbrev.SentinelLF:
			sb.WriteByte('\n')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// restoreSentinelsInform6 reverses sentinelInform6: quote and newline
// come back as the Inform6 string-literal markers ~ and ^, exactly as
// they'd appear in source Inform6 ready to recompile.
func restoreSentinelsInform6(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case zabbrev.SentinelSpace:
			sb.WriteByte(' ')
		case zabbrev.SentinelQuote:
			sb.WriteByte('~')
		case zabbrev.SentinelLF:
			sb.WriteByte('^')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
