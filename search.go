package fmindex

import (
	"bytes"
	"sort"
)

// LowerBound returns the smallest suffix-array index whose suffix is
// lexicographically >= pattern.
func LowerBound(text []byte, sa []int, pattern []byte) int {
	return sort.Search(len(sa), func(i int) bool {
		return bytes.Compare(text[sa[i]:], pattern) >= 0
	})
}

// UpperBound returns the smallest suffix-array index whose suffix, truncated
// to the pattern's length, is lexicographically > pattern. Together with
// LowerBound it brackets the suffixes that start with pattern.
func UpperBound(text []byte, sa []int, pattern []byte) int {
	return sort.Search(len(sa), func(i int) bool {
		suffix := text[sa[i]:]
		if len(suffix) > len(pattern) {
			suffix = suffix[:len(pattern)]
		}
		return bytes.Compare(suffix, pattern) > 0
	})
}

// FindAll returns every offset in text where pattern occurs, sorted
// ascending. Each candidate from the [LowerBound, UpperBound) range is
// verified against the text before being reported. The empty pattern matches
// every position. nil means no occurrences.
func FindAll(text []byte, sa []int, pattern []byte) []int {
	lo := LowerBound(text, sa, pattern)
	hi := UpperBound(text, sa, pattern)
	if lo >= hi {
		return nil
	}

	offsets := make([]int, 0, hi-lo)
	for _, pos := range sa[lo:hi] {
		end := pos + len(pattern)
		if end > len(text) {
			continue
		}
		if bytes.Equal(text[pos:end], pattern) {
			offsets = append(offsets, pos)
		}
	}
	sort.Ints(offsets)
	return offsets
}
