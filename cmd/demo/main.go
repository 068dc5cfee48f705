package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/viniciusth/fmindex"
)

func main() {
	text := flag.String("text", "banana$", "text to index; must end with a sentinel smaller than every other byte")
	patterns := flag.String("patterns", "ana,na,ban,xyz", "comma-separated patterns to search for")
	flag.Parse()

	t := []byte(*text)
	sa, err := fmindex.BuildSuffixArray(t)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid text: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Text: %q\n\n", t)
	fmt.Printf("Suffix array: %v\n", sa)
	fmt.Println("Sorted suffixes:")
	for i, pos := range sa {
		fmt.Printf("  %d: %q\n", i, t[pos:])
	}

	bwt := fmindex.BuildBWT(t, sa)
	ctab := fmindex.BuildCTable(bwt)
	occ := fmindex.BuildOccTable(bwt)

	fmt.Printf("\nBWT: %q\n", bwt)
	fmt.Println("C-table:")
	for _, sym := range ctab.Symbols() {
		smaller, _ := ctab.Lookup(sym)
		fmt.Printf("  %q: %d\n", sym, smaller)
	}

	for _, p := range strings.Split(*patterns, ",") {
		pat := []byte(p)
		viaSA := fmindex.FindAll(t, sa, pat)
		viaFM := fmindex.FMFindAll(pat, sa, bwt, ctab, occ)
		if !slices.Equal(viaSA, viaFM) {
			fmt.Fprintf(os.Stderr, "search paths disagree for %q: sa=%v fm=%v\n", p, viaSA, viaFM)
			os.Exit(1)
		}
		if len(viaSA) == 0 {
			fmt.Printf("\n%q not found\n", p)
			continue
		}
		fmt.Printf("\n%q found at offsets %v (both search paths)\n", p, viaSA)
	}
}
