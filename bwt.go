package fmindex

// BuildBWT derives the Burrows-Wheeler string from text and its suffix array.
// BWT[i] is the byte preceding the suffix at sa[i], wrapping to the last byte
// of text when the suffix starts at 0. The result is a permutation of text's
// bytes.
func BuildBWT(text []byte, sa []int) []byte {
	bwt := make([]byte, len(sa))
	for i, pos := range sa {
		if pos == 0 {
			bwt[i] = text[len(text)-1]
		} else {
			bwt[i] = text[pos-1]
		}
	}
	return bwt
}
