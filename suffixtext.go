package zabbrev

import "github.com/ulikunitz/lz/suffix"

// buildGeneralized concatenates every string's Text into one buffer
// joined (and terminated) by gsaSeparator, the 0x0B control byte that
// cannot occur in ingested text (§4.B, §9). It also records, for each
// string, the half-open [start,end) byte range of that string inside
// the generalized buffer.
func (c *Corpus) buildGeneralized() {
	total := 0
	for _, sr := range c.Strings {
		total += len(sr.Text) + 1 // +1 for the trailing separator
	}
	gen := make([]byte, 0, total)
	bounds := make([][2]int, len(c.Strings))
	for i, sr := range c.Strings {
		start := len(gen)
		gen = append(gen, sr.Text...)
		gen = append(gen, gsaSeparator)
		bounds[i] = [2]int{start, start + len(sr.Text)}
	}
	c.gen = gen
	c.bounds = bounds
}

// EnsureSuffixArray builds (or rebuilds, if the corpus changed) the
// generalized suffix array and LCP array, both produced by
// github.com/ulikunitz/lz/suffix — the same package the ulikunitz/lz
// greedy and optimizing suffix-array parsers (gsap.go/osap.go) use to
// sort their window and build its LCP table. suffix.LCP fills lcp in
// the index convention RangeCount and the pattern extractor (§4.C)
// expect: lcp[0] is unused, and for i>=1, lcp[i] is the length of the
// common prefix of the suffixes at sa[i-1] and sa[i].
func (c *Corpus) EnsureSuffixArray() error {
	if c.saBuilt {
		return nil
	}
	if err := c.Validate(); err != nil {
		return err
	}
	c.buildGeneralized()

	n := len(c.gen)
	sa := make([]int32, n)
	suffix.Sort(c.gen, sa)
	lcp := make([]int32, n)
	suffix.LCP(c.gen, sa, nil, lcp)

	c.sa, c.lcp = sa, lcp
	c.saBuilt = true
	return nil
}

// RangeCount returns the maximal contiguous suffix-array index range
// [lo,hi] around i such that every LCP value strictly between adjacent
// entries in the range is >= prefixLen, and the resulting occurrence
// count hi-lo+1 (§4.B). This counts overlapping occurrences, matching
// the non-overlap-aware enumeration stage; the optimal parse (§4.D)
// resolves overlaps when a pattern is actually used.
func (c *Corpus) RangeCount(i, prefixLen int) (lo, hi, count int) {
	lo, hi = i, i
	for lo > 0 && int(c.lcp[lo]) >= prefixLen {
		lo--
	}
	for hi+1 < len(c.sa) && int(c.lcp[hi+1]) >= prefixLen {
		hi++
	}
	return lo, hi, hi - lo + 1
}

// stringIDAt returns the id of the string owning generalized-buffer
// offset pos, via binary search over bounds (sorted by construction).
func (c *Corpus) stringIDAt(pos int) int {
	lo, hi := 0, len(c.bounds)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		b := c.bounds[mid]
		switch {
		case pos < b[0]:
			hi = mid - 1
		case pos >= b[1]+1: // past this string's text and its separator
			lo = mid + 1
		default:
			return mid
		}
	}
	return -1
}
