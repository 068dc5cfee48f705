package fmindex

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/viniciusth/rmq"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidUTF8 = errors.New("fmindex: invalid UTF-8 encoding in input text")
)

const (
	// 0x00 never appears in ordinary text and is smaller than every other
	// byte, so it is the default sentinel.
	defaultSentinel = 0x00
)

// IndexBuilder configures and builds an Index over a single text.
type IndexBuilder struct {
	text          string
	sentinel      byte
	useLCP        bool
	caseSensitive bool
	normalize     bool
}

func NewBuilder(text string) *IndexBuilder {
	return &IndexBuilder{
		text:          text,
		sentinel:      defaultSentinel,
		useLCP:        true,
		caseSensitive: false,
		normalize:     true,
	}
}

// Sentinel overrides the byte appended as the text terminator. It must be
// strictly smaller than every byte of the (transformed) text; Build fails
// otherwise.
func (b *IndexBuilder) Sentinel(c byte) *IndexBuilder {
	b.sentinel = c
	return b
}

// Skips the LCP array and its RMQ, making FindAll O(|P| * log n) instead of
// O(|P| + log n). Saves 2n extra integers of memory.
func (b *IndexBuilder) SkipLCP() *IndexBuilder {
	b.useLCP = false
	return b
}

// Makes the search case sensitive.
func (b *IndexBuilder) CaseSensitive() *IndexBuilder {
	b.caseSensitive = true
	return b
}

// Skips the normalization of the text with NFC.
func (b *IndexBuilder) SkipNormalization() *IndexBuilder {
	b.normalize = false
	return b
}

// Build transforms the text, appends the sentinel, and constructs every
// derived structure: suffix array, BWT, C-table, Occ table, and (unless
// skipped) the LCP array with an RMQ over it. The resulting Index is
// immutable and safe for concurrent queries.
func (b *IndexBuilder) Build() (*Index, error) {
	if !utf8.ValidString(b.text) {
		return nil, ErrInvalidUTF8
	}

	t := applyTransforms(b.text, b.caseSensitive, b.normalize)
	if strings.IndexByte(t, b.sentinel) >= 0 {
		return nil, ErrBadSentinel
	}
	text := append([]byte(t), b.sentinel)

	sa, err := BuildSuffixArray(text)
	if err != nil {
		return nil, err
	}
	bwt := BuildBWT(text, sa)

	var lcp []int
	var lcpRMQ *rmq.RMQHybridNaive[int]
	if b.useLCP && len(sa) > 1 {
		lcp = BuildLCPArray(sa, text)
		lcpRMQ = rmq.NewRMQHybridNaive(lcp)
	}

	return &Index{
		text:          text,
		sa:            sa,
		bwt:           bwt,
		ctab:          BuildCTable(bwt),
		occ:           BuildOccTable(bwt),
		lcp:           lcp,
		lcpRMQ:        lcpRMQ,
		caseSensitive: b.caseSensitive,
		normalize:     b.normalize,
	}, nil
}

// Index bundles a sentinel-terminated text with its suffix array, BWT, and
// FM-index tables. Offsets returned by queries refer to the transformed,
// sentinel-terminated text, available via Text.
type Index struct {
	text          []byte
	sa            []int
	bwt           []byte
	ctab          *CTable
	occ           *OccTable
	lcp           []int
	lcpRMQ        *rmq.RMQHybridNaive[int]
	caseSensitive bool
	normalize     bool
}

func applyTransforms(text string, caseSensitive bool, normalize bool) string {
	if !caseSensitive {
		text = strings.ToLower(text)
	}
	if normalize {
		text = norm.NFC.String(text)
	}
	return text
}

// Text returns the indexed text, including the trailing sentinel. The caller
// must not modify it.
func (idx *Index) Text() []byte { return idx.text }

// SuffixArray returns the suffix array. The caller must not modify it.
func (idx *Index) SuffixArray() []int { return idx.sa }

// BWT returns the Burrows-Wheeler string. The caller must not modify it.
func (idx *Index) BWT() []byte { return idx.bwt }

// FindAll returns every offset where pattern occurs, sorted ascending, using
// binary search over the suffix array. When the LCP array was built, the
// boundaries are found in O(|P| + log n) with an RMQ; otherwise each probe
// compares the pattern in full.
func (idx *Index) FindAll(pattern string) []int {
	p := []byte(applyTransforms(pattern, idx.caseSensitive, idx.normalize))
	if idx.lcpRMQ == nil {
		return FindAll(idx.text, idx.sa, p)
	}

	l, r := idx.findBoundaries(p)
	if l == -1 {
		return nil
	}
	offsets := append([]int(nil), idx.sa[l:r+1]...)
	sort.Ints(offsets)
	return offsets
}

// FindAllFM returns the same offsets as FindAll, located through backward
// search over the FM-index instead of the suffix array.
func (idx *Index) FindAllFM(pattern string) []int {
	p := []byte(applyTransforms(pattern, idx.caseSensitive, idx.normalize))
	return FMFindAll(p, idx.sa, idx.bwt, idx.ctab, idx.occ)
}

// Count returns the number of occurrences of pattern, straight from the
// backward-search range without touching the suffix array.
func (idx *Index) Count(pattern string) int {
	p := []byte(applyTransforms(pattern, idx.caseSensitive, idx.normalize))
	top, bottom := FMSearch(p, idx.bwt, idx.ctab, idx.occ)
	if top > bottom {
		return 0
	}
	return bottom - top + 1
}

// findBoundaries returns the inclusive suffix-array range [l, r] of suffixes
// that start with pattern, or (-1, -1) when there are none. It keeps the
// longest verified match (bestIdx, best) and uses the LCP RMQ to decide,
// without re-comparing, whether a probe can still match that prefix.
func (idx *Index) findBoundaries(pattern []byte) (int, int) {
	bestIdx, best, n := -1, -1, len(idx.sa)

	// expandBest extends the verified match at suffix-array slot i and
	// reports whether pattern <= the suffix at that slot.
	expandBest := func(i int) bool {
		suf := idx.sa[i]
		for best < len(pattern) && suf+best < n && pattern[best] == idx.text[suf+best] {
			best++
		}
		if best == len(pattern) {
			// p is a prefix of text[suf:]
			return true
		} else if suf+best == n {
			// p > text[suf:]
			return false
		} else {
			return pattern[best] < idx.text[suf+best]
		}
	}

	// find first index where pattern is a prefix
	l := sort.Search(n, func(i int) bool {
		if bestIdx == -1 {
			bestIdx = i
			best = 0
			return expandBest(i)
		}
		lcpLen := idx.lcp[idx.lcpRMQ.Query(min(bestIdx, i), max(bestIdx, i)-1)]
		if lcpLen < best {
			// Diverges from the verified prefix before position best, so it
			// compares against the pattern exactly as bestIdx's side does.
			return i > bestIdx
		}
		// Shares at least best bytes with the verified match, so the match
		// can be re-anchored here and extended.
		bestIdx = i
		return expandBest(i)
	})

	// Check if l has pattern as a prefix, otherwise we have no matches
	if l == n || best < len(pattern) {
		return -1, -1
	}

	// Last index where pattern is a prefix: suffixes keep the pattern prefix
	// exactly while their LCP with position l stays >= |pattern|.
	r := sort.Search(n-l, func(i int) bool {
		if i == 0 {
			return false // l itself is known to match
		}
		return idx.lcp[idx.lcpRMQ.Query(l, l+i-1)] < len(pattern)
	})

	return l, l + r - 1
}
