package zabbrev

import "container/heap"

// patternHeap is a max-heap of *Pattern keyed by Savings, modeled
// directly on the teacher's qsymHeap (train.go) — same five-method
// shape, adapted from FSST's min-heap-of-top-K to a max-heap-with-
// reinsertion, and tie-broken on Key for run-to-run determinism
// (§9 "the heap's tie-breaking between equal scores is unspecified but
// stable within a run").
type patternHeap []*Pattern

func (h patternHeap) Len() int { return len(h) }
func (h patternHeap) Less(i, j int) bool {
	if h[i].Savings != h[j].Savings {
		return h[i].Savings > h[j].Savings
	}
	return h[i].Key < h[j].Key
}
func (h patternHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *patternHeap) Push(x any)   { *h = append(*h, x.(*Pattern)) }
func (h *patternHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// SelectResult is the output of the heap-driven selector (§4.E).
type SelectResult struct {
	Best     []*Pattern // at most cfg.N patterns, in selection order
	Residual []*Pattern // everything else, available to the refiner
}

// SelectAbbreviations runs the greedy top-N selection with recomputed-
// savings reinsertion (§4.E, the "Wagner-MTR loop"): each candidate's
// true marginal contribution is measured by a full rescore of the
// tentative set, and a candidate that turns out to contribute less
// than the next-best residual is thrown back with its refreshed score.
func SelectAbbreviations(corpus *Corpus, alphabet *Alphabet, candidates map[string]*Pattern, cfg Config) (*SelectResult, error) {
	h := make(patternHeap, 0, len(candidates))
	for _, p := range candidates {
		h = append(h, p)
	}
	heap.Init(&h)

	oversample := 0
	if cfg.ThrowBackLowScorers {
		oversample = 5
	}
	target := cfg.N + oversample

	var best []*Pattern
	prevSavings := 0

	for len(best) < target && h.Len() > 0 {
		p := heap.Pop(&h).(*Pattern)
		best = append(best, p)

		currentSavings, err := RescoreOptimalParse(corpus, alphabet, best, cfg, false)
		if err != nil {
			return nil, err
		}
		delta := currentSavings - prevSavings

		if h.Len() > 0 && delta < h[0].Savings {
			best = best[:len(best)-1]
			p.Savings = delta
			heap.Push(&h, p)
			continue
		}

		prevSavings = currentSavings
		if cfg.ThrowBackLowScorers {
			var kept []*Pattern
			removedAny := false
			for _, q := range best {
				if q.Savings < delta && q != p {
					removedAny = true
					heap.Push(&h, q)
					continue
				}
				kept = append(kept, q)
			}
			if removedAny {
				best = kept
				prevSavings, err = RescoreOptimalParse(corpus, alphabet, best, cfg, false)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	// Trim back to exactly N, moving any oversample excess to the
	// residual heap (§4.E "After termination, trim best back to N").
	for len(best) > cfg.N {
		last := best[len(best)-1]
		best = best[:len(best)-1]
		heap.Push(&h, last)
	}

	residual := make([]*Pattern, h.Len())
	for i := range residual {
		residual[i] = heap.Pop(&h).(*Pattern)
	}

	return &SelectResult{Best: best, Residual: residual}, nil
}
