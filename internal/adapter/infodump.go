package adapter

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	zabbrev "github.com/xyzzy-if/zabbrev"
)

// ReadInfodumpTXD combines Infodump's object-description dump (-io)
// with TXD's disassembly (-ag): Infodump supplies object descriptions,
// TXD supplies PRINT/PRINT_RET text in the code area (inline) and the
// packed, high-memory string pool that follows "End of code".
func ReadInfodumpTXD(infodumpPath, txdPath string, charset Charset) (*zabbrev.Corpus, []zabbrev.Warning, error) {
	corpus := zabbrev.NewCorpus(3)
	var warnings []zabbrev.Warning

	infodumpData, err := os.ReadFile(infodumpPath)
	if err != nil {
		return nil, nil, err
	}
	if err := readInfodumpObjects(corpus, infodumpData, charset); err != nil {
		return nil, warnings, err
	}

	txdData, err := os.ReadFile(txdPath)
	if err != nil {
		return nil, nil, err
	}
	if err := readTXDStrings(corpus, txdData, charset); err != nil {
		return nil, warnings, err
	}

	if err := corpus.Validate(); err != nil {
		return nil, warnings, err
	}
	return corpus, warnings, nil
}

// readInfodumpObjects pulls the free-text "description" field out of
// every object block in an Infodump -io listing.
func readInfodumpObjects(corpus *zabbrev.Corpus, data []byte, charset Charset) error {
	isUTF8 := ResolveCharset(data, charset)
	latin1 := ToLatin1(data, isUTF8, zabbrev.WideRuneMarker)

	scanner := bufio.NewScanner(bytes.NewReader(latin1))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "Description:") {
			continue
		}
		text := strings.TrimSpace(strings.TrimPrefix(trimmed, "Description:"))
		text = strings.Trim(text, "\"")
		if text == "" {
			continue
		}
		if err := addSentinelText(corpus, text, false, true, -1, sentinelRaw); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// readTXDStrings reads a TXD -ag disassembly: PRINT/PRINT_RET operands
// up to "End of code" are inline strings, and every quoted literal
// after that marker belongs to the packed, high-memory string pool.
func readTXDStrings(corpus *zabbrev.Corpus, data []byte, charset Charset) error {
	isUTF8 := ResolveCharset(data, charset)
	latin1 := ToLatin1(data, isUTF8, zabbrev.WideRuneMarker)

	scanner := bufio.NewScanner(bytes.NewReader(latin1))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	pastCode := false
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if strings.Contains(trimmed, "End of code") {
			pastCode = true
			continue
		}

		if !pastCode {
			if !strings.HasPrefix(trimmed, "PRINT") {
				continue
			}
			if text, ok := extractQuoted(trimmed); ok {
				if err := addSentinelText(corpus, text, false, false, -1, sentinelRaw); err != nil {
					return err
				}
			}
			continue
		}

		if text, ok := extractQuoted(trimmed); ok {
			if err := addSentinelText(corpus, text, true, false, -1, sentinelRaw); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}
