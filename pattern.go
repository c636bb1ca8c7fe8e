package zabbrev

import (
	"bytes"
	"container/heap"
)

// patternCutoff is the maximum candidate length considered for
// abbreviation selection (§4.C). Longer repeats are routed to the
// long-pattern heap and surfaced only as refactoring hints.
const patternCutoff = 20

// Pattern is a candidate abbreviation (§3): a repeated substring with
// its z-char cost, its current frequency, and a lazily built,
// per-string list of left-anchored occurrence offsets.
type Pattern struct {
	Key string
	Cost int

	// Freq is mutated by the optimal-parse rescorer: reset to 0 at the
	// start of every RescoreOptimalParse call and incremented once per
	// non-overlapping use actually chosen by the DP (§4.D step 4). Until
	// the first rescore it holds the naive (overlap-counting) frequency
	// computed at extraction time.
	Freq int

	// Savings is the heap key: naive_score at extraction/admission time,
	// and the refreshed delta after a selector reinsertion (§4.E).
	Savings int

	occ      [][]int32 // occ[stringID], nil where the pattern does not occur
	occValid bool
}

// NaiveScore computes §3's naive_score formula: the savings of
// replacing every occurrence with a 2-z-char reference, minus the
// once-rounded storage cost of the abbreviation itself. Exported so
// callers reporting a pattern's final savings (the external adapters,
// after selection/refinement may have changed Cost or Freq) can
// recompute it from scratch instead of trusting a Pattern's stale
// Savings field, which is only a heap key refreshed during selection.
func NaiveScore(cost, freq int) int {
	return freq*(cost-2) - 3*ceilDiv(cost+2, 3)
}

func naiveScore(cost, freq int) int { return NaiveScore(cost, freq) }

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// containsRejected reports whether s contains the generalized-suffix
// separator, the wide-rune marker, or '@' (§3: a pattern "contains
// neither the inter-string separator nor @").
func containsRejected(s []byte) bool {
	for _, b := range s {
		if b == gsaSeparator || b == gsaWideMarker || b == '@' {
			return true
		}
	}
	return false
}

// LongPattern is a repeat longer than patternCutoff, reported only by
// the --onlyrefactor path (§4.H) as a refactoring hint, never admitted
// to abbreviation selection.
type LongPattern struct {
	Key  string
	Cost int
	Freq int
}

// longHeapEntry backs a max-heap ordered by key length (longest first).
type longHeapEntry struct {
	key  string
	cost int
	freq int
}

type longPatternMaxHeap []longHeapEntry

func (h longPatternMaxHeap) Len() int            { return len(h) }
func (h longPatternMaxHeap) Less(i, j int) bool  { return len(h[i].key) > len(h[j].key) }
func (h longPatternMaxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *longPatternMaxHeap) Push(x any)         { *h = append(*h, x.(longHeapEntry)) }
func (h *longPatternMaxHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// ExtractPatterns walks the corpus's LCP array once (§4.C), admitting
// every repeated substring with positive naive_score into candidates,
// and routing repeats longer than patternCutoff into a deduplicated
// long-pattern report.
func ExtractPatterns(corpus *Corpus, alphabet *Alphabet) (candidates map[string]*Pattern, longPatterns []LongPattern, err error) {
	if err := corpus.EnsureSuffixArray(); err != nil {
		return nil, nil, err
	}

	candidates = make(map[string]*Pattern)
	longHeap := &longPatternMaxHeap{}
	heap.Init(longHeap)
	seenLong := make(map[string]bool)

	n := len(corpus.sa)
	for i := 0; i < n-1; i++ {
		if corpus.gen[corpus.sa[i]] == gsaSeparator {
			continue
		}
		start := int(corpus.lcp[i])
		if start < 1 {
			start = 1
		}
		end := int(corpus.lcp[i+1])
		if end < start {
			continue
		}

		pos := int(corpus.sa[i])
		maxAvail := len(corpus.gen) - pos
		if end > maxAvail {
			end = maxAvail
		}

		for j := start; j <= end; j++ {
			key := corpus.gen[pos : pos+j]
			if containsRejected(key) {
				continue
			}
			cost := alphabet.ZstringCost(key)
			_, _, freq := corpus.RangeCount(i, j)

			if j > patternCutoff {
				ks := string(key)
				if !seenLong[ks] {
					seenLong[ks] = true
					heap.Push(longHeap, longHeapEntry{key: ks, cost: cost, freq: freq})
				}
				continue
			}

			ks := string(key)
			if _, ok := candidates[ks]; ok {
				continue
			}
			if score := naiveScore(cost, freq); score > 0 {
				candidates[ks] = &Pattern{Key: ks, Cost: cost, Freq: freq, Savings: score}
			}
		}
	}

	longPatterns = dedupeLongPatterns(longHeap)
	return candidates, longPatterns, nil
}

// dedupeLongPatterns pops the long-pattern heap longest-first, keeping
// a key only when no longer key popped before it has it as its head
// (key[1:]) or tail (key[:len-1]). covered records the head and tail of
// every popped key, accepted or dropped, so the repeats nested inside an
// accepted key are suppressed one character at a time and the
// refactoring-hint list reports only maximal repeats (§4.C).
func dedupeLongPatterns(h *longPatternMaxHeap) []LongPattern {
	covered := make(map[string]bool)
	var out []LongPattern
	for h.Len() > 0 {
		e := heap.Pop(h).(longHeapEntry)
		nested := covered[e.key]
		covered[e.key[1:]] = true
		covered[e.key[:len(e.key)-1]] = true
		if nested {
			continue
		}
		out = append(out, LongPattern{Key: e.key, Cost: e.cost, Freq: e.freq})
	}
	return out
}

// recomputeOccurrences rebuilds p's per-string occurrence vector by a
// direct left-anchored, overlap-counting scan of every string's text.
// Used instead of re-deriving from the corpus's suffix array because a
// pattern's key mutates during refinement (§4.F) while the generalized
// SA does not get rebuilt per mutation (§9: occurrence-list ownership).
func (p *Pattern) recomputeOccurrences(corpus *Corpus) {
	occ := make([][]int32, len(corpus.Strings))
	key := []byte(p.Key)
	for _, sr := range corpus.Strings {
		text := sr.Text
		if len(key) > len(text) {
			continue
		}
		var offs []int32
		for i := 0; i+len(key) <= len(text); i++ {
			if bytes.Equal(text[i:i+len(key)], key) {
				offs = append(offs, int32(i))
			}
		}
		if offs != nil {
			occ[sr.ID] = offs
		}
	}
	p.occ = occ
	p.occValid = true
}

// occurrencesAt returns p's occurrence offsets within string id,
// rebuilding the whole per-string vector first if stale.
func (p *Pattern) occurrencesAt(corpus *Corpus, stringID int) []int32 {
	if !p.occValid {
		p.recomputeOccurrences(corpus)
	}
	return p.occ[stringID]
}

// invalidate marks the occurrence list stale, forcing a rebuild on next
// access. Called whenever the refiner mutates a pattern's Key (§4.F).
func (p *Pattern) invalidate() {
	p.occValid = false
	p.occ = nil
}
