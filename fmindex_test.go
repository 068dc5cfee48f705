package fmindex

import (
	"bytes"
	"slices"
	"testing"
)

func buildFM(t testing.TB, text string) ([]int, []byte, *CTable, *OccTable) {
	t.Helper()
	sa := mustSA(t, text)
	bwt := BuildBWT([]byte(text), sa)
	return sa, bwt, BuildCTable(bwt), BuildOccTable(bwt)
}

func TestCTableBanana(t *testing.T) {
	_, _, ctab, _ := buildFM(t, "banana$")

	want := map[byte]int{'$': 0, 'a': 1, 'b': 4, 'n': 5}
	for sym, smaller := range want {
		got, ok := ctab.Lookup(sym)
		if !ok || got != smaller {
			t.Errorf("Lookup(%q) = (%d, %v), want (%d, true)", sym, got, ok, smaller)
		}
	}
	if _, ok := ctab.Lookup('x'); ok {
		t.Error("Lookup('x') reported a symbol absent from the BWT as present")
	}
	if got := ctab.Symbols(); string(got) != "$abn" {
		t.Errorf("Symbols() = %q, want %q", got, "$abn")
	}
}

func TestCTableOrdering(t *testing.T) {
	texts := []string{"banana$", "mississippi$", "abracadabra$", "$"}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			_, bwt, ctab, _ := buildFM(t, text)
			syms := ctab.Symbols()

			prev := -1
			for _, sym := range syms {
				smaller, _ := ctab.Lookup(sym)
				if smaller <= prev {
					t.Errorf("C[%q] = %d, not strictly above previous %d", sym, smaller, prev)
				}
				prev = smaller
			}

			last := syms[len(syms)-1]
			smaller, _ := ctab.Lookup(last)
			if smaller+ctab.Count(last) != len(bwt) {
				t.Errorf("C[%q] + count = %d, want %d", last, smaller+ctab.Count(last), len(bwt))
			}
		})
	}
}

func TestOccTable(t *testing.T) {
	texts := []string{"banana$", "mississippi$", "aaaa$"}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			_, bwt, ctab, occ := buildFM(t, text)
			n := len(bwt)

			for _, sym := range ctab.Symbols() {
				if got := occ.Rank(sym, 0); got != 0 {
					t.Errorf("Rank(%q, 0) = %d, want 0", sym, got)
				}
				for i := 1; i <= n; i++ {
					if occ.Rank(sym, i) < occ.Rank(sym, i-1) {
						t.Errorf("Rank(%q) decreases at %d", sym, i)
					}
				}
				if got := occ.Rank(sym, n); got != ctab.Count(sym) {
					t.Errorf("Rank(%q, n) = %d, want %d", sym, got, ctab.Count(sym))
				}
			}

			if got := occ.Rank('x', n); got != 0 {
				t.Errorf("Rank of absent symbol = %d, want 0", got)
			}
		})
	}
}

func TestFMSearchKnown(t *testing.T) {
	_, bwt, ctab, occ := buildFM(t, "banana$")

	tests := []struct {
		pattern     string
		top, bottom int
	}{
		{"ana", 2, 3},
		{"a", 1, 3},
		{"banana$", 4, 4},
		{"", 0, 6},
	}

	for _, tc := range tests {
		t.Run(tc.pattern, func(t *testing.T) {
			top, bottom := FMSearch([]byte(tc.pattern), bwt, ctab, occ)
			if top != tc.top || bottom != tc.bottom {
				t.Errorf("FMSearch(%q) = (%d, %d), want (%d, %d)", tc.pattern, top, bottom, tc.top, tc.bottom)
			}
		})
	}

	// Absent symbol and dead-end matches must end with top > bottom.
	for _, pattern := range []string{"xyz", "nab", "aa"} {
		if top, bottom := FMSearch([]byte(pattern), bwt, ctab, occ); top <= bottom {
			t.Errorf("FMSearch(%q) = (%d, %d), want top > bottom", pattern, top, bottom)
		}
	}
}

func TestFMFindAllMatchesFindAll(t *testing.T) {
	tests := []struct {
		text    string
		pattern string
	}{
		{"banana$", "ana"},
		{"banana$", "na"},
		{"banana$", "xyz"},
		{"banana$", ""},
		{"mississippi$", "issi"},
		{"mississippi$", "ss"},
		{"mississippi$", "i"},
		{"mississippi$", "mississippi$"},
		{"$", "$"},
	}

	for _, tc := range tests {
		t.Run(tc.text+"/"+tc.pattern, func(t *testing.T) {
			sa, bwt, ctab, occ := buildFM(t, tc.text)
			viaSA := FindAll([]byte(tc.text), sa, []byte(tc.pattern))
			viaFM := FMFindAll([]byte(tc.pattern), sa, bwt, ctab, occ)
			if !slices.Equal(viaSA, viaFM) {
				t.Errorf("paths disagree for %q in %q: sa=%v fm=%v", tc.pattern, tc.text, viaSA, viaFM)
			}
		})
	}
}

func FuzzSearchEquivalence(f *testing.F) {
	f.Add([]byte("banana"), []byte("ana"))
	f.Add([]byte("mississippi"), []byte("ss"))
	f.Add([]byte("aaaaaaa"), []byte("aa"))
	f.Add([]byte("abcabc"), []byte(""))

	f.Fuzz(func(t *testing.T, data, pattern []byte) {
		if len(data) > 1000 || len(pattern) > 100 {
			return
		}
		if bytes.IndexByte(data, 0) >= 0 || bytes.IndexByte(pattern, 0) >= 0 {
			return
		}
		text := append(append([]byte(nil), data...), 0)

		sa, err := BuildSuffixArray(text)
		if err != nil {
			t.Fatal(err)
		}
		bwt := BuildBWT(text, sa)
		ctab := BuildCTable(bwt)
		occ := BuildOccTable(bwt)

		want := naiveFindAll(text, pattern)
		viaSA := FindAll(text, sa, pattern)
		viaFM := FMFindAll(pattern, sa, bwt, ctab, occ)

		if !slices.Equal(viaSA, want) {
			t.Errorf("FindAll(%q, %q) = %v, want %v", text, pattern, viaSA, want)
		}
		if !slices.Equal(viaFM, want) {
			t.Errorf("FMFindAll(%q, %q) = %v, want %v", text, pattern, viaFM, want)
		}
	})
}
