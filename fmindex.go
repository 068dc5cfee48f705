package fmindex

import "sort"

// CTable maps each byte to the number of bytes in the BWT that are strictly
// smaller than it. Backed by byte-indexed arrays so backward search never
// hashes on the hot path.
type CTable struct {
	smaller [256]int
	counts  [256]int
}

// BuildCTable counts each byte of the BWT and accumulates the counts in byte
// order. O(n + sigma).
func BuildCTable(bwt []byte) *CTable {
	c := &CTable{}
	for _, sym := range bwt {
		c.counts[sym]++
	}
	total := 0
	for s := 0; s < 256; s++ {
		c.smaller[s] = total
		total += c.counts[s]
	}
	return c
}

// Lookup returns the number of BWT bytes smaller than sym and whether sym
// occurs in the BWT at all.
func (c *CTable) Lookup(sym byte) (int, bool) {
	return c.smaller[sym], c.counts[sym] > 0
}

// Count returns how many times sym occurs in the BWT.
func (c *CTable) Count(sym byte) int {
	return c.counts[sym]
}

// Symbols returns the distinct bytes of the BWT in sorted order.
func (c *CTable) Symbols() []byte {
	var syms []byte
	for s := 0; s < 256; s++ {
		if c.counts[s] > 0 {
			syms = append(syms, byte(s))
		}
	}
	return syms
}

// OccTable holds, for each distinct byte of the BWT, the prefix counts
// Occ[sym][i] = occurrences of sym in bwt[:i] for 0 <= i <= n. Rows are dense
// slices keyed by a small alphabet index, not a map.
type OccTable struct {
	rowOf [256]int
	rows  [][]int
}

// BuildOccTable builds the prefix-count rows in one pass over the BWT.
// O(n * sigma) time and space.
func BuildOccTable(bwt []byte) *OccTable {
	o := &OccTable{}
	for s := range o.rowOf {
		o.rowOf[s] = -1
	}

	var seen [256]bool
	for _, sym := range bwt {
		seen[sym] = true
	}
	next := 0
	for s := 0; s < 256; s++ {
		if seen[s] {
			o.rowOf[s] = next
			next++
		}
	}

	o.rows = make([][]int, next)
	for r := range o.rows {
		o.rows[r] = make([]int, len(bwt)+1)
	}
	for i, sym := range bwt {
		for r := range o.rows {
			o.rows[r][i+1] = o.rows[r][i]
		}
		o.rows[o.rowOf[sym]][i+1]++
	}
	return o
}

// Rank returns the number of occurrences of sym among the first i bytes of
// the BWT. Bytes absent from the BWT rank 0 everywhere.
func (o *OccTable) Rank(sym byte, i int) int {
	r := o.rowOf[sym]
	if r < 0 {
		return 0
	}
	return o.rows[r][i]
}

// FMSearch runs backward search over the BWT, consuming pattern bytes from
// last to first and narrowing (top, bottom) with the LF mapping
// top = C[c] + Occ[c][top], bottom = C[c] + Occ[c][bottom+1] - 1.
// The returned inclusive bounds index the conceptual suffix array; top >
// bottom means no occurrence. The occurrence count is bottom - top + 1
// otherwise. O(m) for a pattern of length m.
func FMSearch(pattern, bwt []byte, c *CTable, occ *OccTable) (top, bottom int) {
	top, bottom = 0, len(bwt)-1
	for i := len(pattern) - 1; i >= 0; i-- {
		sym := pattern[i]
		base, ok := c.Lookup(sym)
		if !ok {
			return 1, 0
		}
		top = base + occ.Rank(sym, top)
		bottom = base + occ.Rank(sym, bottom+1) - 1
		if top > bottom {
			return top, bottom
		}
	}
	return top, bottom
}

// FMFindAll maps FMSearch's range onto the suffix array and returns the
// occurrence offsets sorted ascending. For any text and pattern the result is
// identical to FindAll's. nil means no occurrences.
func FMFindAll(pattern []byte, sa []int, bwt []byte, c *CTable, occ *OccTable) []int {
	top, bottom := FMSearch(pattern, bwt, c, occ)
	if top > bottom {
		return nil
	}
	offsets := append([]int(nil), sa[top:bottom+1]...)
	sort.Ints(offsets)
	return offsets
}
