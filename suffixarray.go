package fmindex

import (
	"errors"
	"sort"
)

var (
	ErrEmptyText   = errors.New("fmindex: text is empty")
	ErrBadSentinel = errors.New("fmindex: text must end with a unique sentinel smaller than every other symbol")
)

// ValidateText checks the sentinel contract: the text is non-empty and its
// final byte is strictly smaller than every other byte, which also makes it
// unique. Construction correctness depends on this, so the builders fail fast
// instead of producing a silently wrong ordering.
func ValidateText(text []byte) error {
	if len(text) == 0 {
		return ErrEmptyText
	}
	sentinel := text[len(text)-1]
	for _, c := range text[:len(text)-1] {
		if c <= sentinel {
			return ErrBadSentinel
		}
	}
	return nil
}

// BuildSuffixArray builds the suffix array of text with prefix doubling:
// suffixes are sorted by their first 2k bytes each round, using the previous
// round's ranks as sort keys. O(n log^2 n) overall.
func BuildSuffixArray(text []byte) ([]int, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	n := len(text)
	sa := make([]int, n)
	rank := make([]int, n)
	for i := range text {
		sa[i] = i
		rank[i] = int(text[i])
	}
	if n == 1 {
		return sa, nil
	}

	// Offsets past the end get rank -1 so that shorter suffixes sort first,
	// consistent with the sentinel being the smallest symbol.
	rankAt := func(i, k int) int {
		if i+k < n {
			return rank[i+k]
		}
		return -1
	}

	tmp := make([]int, n)
	for k := 1; k < n; k *= 2 {
		sort.SliceStable(sa, func(a, b int) bool {
			i, j := sa[a], sa[b]
			if rank[i] != rank[j] {
				return rank[i] < rank[j]
			}
			return rankAt(i, k) < rankAt(j, k)
		})

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			prev, curr := sa[i-1], sa[i]
			tmp[curr] = tmp[prev]
			if rank[prev] != rank[curr] || rankAt(prev, k) != rankAt(curr, k) {
				tmp[curr]++
			}
		}
		copy(rank, tmp)

		// All suffixes distinguished, further rounds can't change the order.
		if rank[sa[n-1]] == n-1 {
			break
		}
	}

	return sa, nil
}
