package adapter

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	zabbrev "github.com/xyzzy-if/zabbrev"
)

// metaclassArtifacts are the first four object-description lines
// Inform6 always emits before user-defined abbreviations can matter;
// they describe the built-in metaclasses and are dropped.
var metaclassArtifacts = map[string]bool{
	"Class":   true,
	"Object":  true,
	"Routine": true,
	"String":  true,
}

// ReadInform6 parses an Inform6 gametext.txt transcript, produced by
// `inform6 -r $TRANSCRIPT_FORMAT=1`, into a corpus. charset overrides
// the UTF-8/Latin-1 auto-detect (-c0/-cu/-c1); CharsetAuto detects.
func ReadInform6(data []byte, charset Charset) (*zabbrev.Corpus, []zabbrev.Warning, error) {
	isUTF8 := ResolveCharset(data, charset)
	latin1 := ToLatin1(data, isUTF8, zabbrev.WideRuneMarker)

	corpus := zabbrev.NewCorpus(3)
	var warnings []zabbrev.Warning

	objectCount := 0
	routineID := 0

	scanner := bufio.NewScanner(bytes.NewReader(latin1))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 2 || line[1] != ':' {
			continue
		}
		tag := line[0]
		text := line[2:]

		var err error
		switch tag {
		case 'I':
			handleInform6Metadata(corpus, text, &routineID)
		case 'G', 'V', 'S':
			err = addSentinelText(corpus, text, true, false, -1, sentinelInform6)
		case 'O':
			objectCount++
			if objectCount <= 4 && metaclassArtifacts[strings.TrimSpace(text)] {
				continue
			}
			err = addSentinelText(corpus, text, false, true, -1, sentinelInform6)
		case 'H':
			err = addSentinelText(corpus, text, false, false, routineID, sentinelInform6)
		case 'L', 'W':
			err = addSentinelText(corpus, text, false, false, -1, sentinelInform6)
		default:
			// A, D, X carry no indexed text.
		}
		if err != nil {
			return nil, warnings, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, err
	}
	if err := corpus.Validate(); err != nil {
		return nil, warnings, err
	}
	return corpus, warnings, nil
}

func handleInform6Metadata(corpus *zabbrev.Corpus, text string, routineID *int) {
	const versionMarker = "Compiled Z-machine version "
	if idx := strings.Index(text, versionMarker); idx >= 0 {
		rest := strings.TrimSpace(text[idx+len(versionMarker):])
		if v, err := strconv.Atoi(firstToken(rest)); err == nil {
			corpus.ZVersion = v
		}
		return
	}

	const sizeMarker = "without inline strings size:"
	if idx := strings.Index(text, sizeMarker); idx >= 0 {
		rest := strings.TrimSpace(text[idx+len(sizeMarker):])
		if n, err := strconv.Atoi(firstToken(rest)); err == nil {
			corpus.RoutineSizes[*routineID] = n
			*routineID++
		}
	}
}

// firstToken returns s, trimmed, up to (not including) the first space,
// comma, or closing bracket.
func firstToken(s string) string {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if r == ' ' || r == ']' || r == ',' {
			return s[:i]
		}
	}
	return s
}
