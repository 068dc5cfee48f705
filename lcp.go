package fmindex

// BuildLCPArray builds the LCP array with Kasai's algorithm in O(n) time.
// lcp[i] is the length of the longest common prefix of the suffixes at sa[i]
// and sa[i+1].
func BuildLCPArray(sa []int, text []byte) []int {
	rank := make([]int, len(sa))
	for i := range sa {
		rank[sa[i]] = i
	}

	lcp := make([]int, len(sa)-1)
	l := 0
	for i := range sa {
		if rank[i]+1 == len(sa) {
			l = 0
			continue
		}
		j := sa[rank[i]+1]
		for i+l < len(text) && j+l < len(text) && text[i+l] == text[j+l] {
			l++
		}
		lcp[rank[i]] = l
		if l > 0 {
			l--
		}
	}

	return lcp
}
