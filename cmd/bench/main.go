package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/viniciusth/fmindex"
)

type variant struct {
	name   string
	config func(*fmindex.IndexBuilder) *fmindex.IndexBuilder
	query  func(*fmindex.Index, string) []int
}

var variants = map[string]variant{
	"sa": {
		name:   "sa",
		config: func(b *fmindex.IndexBuilder) *fmindex.IndexBuilder { return b.SkipLCP() },
		query:  func(idx *fmindex.Index, p string) []int { return idx.FindAll(p) },
	},
	"sa_lcp": {
		name:   "sa_lcp",
		config: func(b *fmindex.IndexBuilder) *fmindex.IndexBuilder { return b },
		query:  func(idx *fmindex.Index, p string) []int { return idx.FindAll(p) },
	},
	"fm": {
		name:   "fm",
		config: func(b *fmindex.IndexBuilder) *fmindex.IndexBuilder { return b.SkipLCP() },
		query:  func(idx *fmindex.Index, p string) []int { return idx.FindAllFM(p) },
	},
}

type alphabetType string

const (
	alphabetSmall alphabetType = "small" // DNA-like, lots of repeats
	alphabetLarge alphabetType = "large" // full lowercase alphabet
)

type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{})}
	go func() {
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			if m.Alloc > mm.maxAlloc {
				mm.maxAlloc = m.Alloc
			}
			select {
			case <-mm.stop:
				return
			default:
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()
	return mm
}

func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	return mm.maxAlloc
}

func getCurrentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func measureBuild(text string, config func(*fmindex.IndexBuilder) *fmindex.IndexBuilder) (time.Duration, uint64, uint64, *fmindex.Index) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	builder := fmindex.NewBuilder(text).CaseSensitive().SkipNormalization()
	builder = config(builder)
	idx, err := builder.Build()
	if err != nil {
		panic(err)
	}
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	alloc := getCurrentAlloc()
	return dur, peak, alloc, idx
}

func measureQuery(idx *fmindex.Index, patterns []string, query func(*fmindex.Index, string) []int) (time.Duration, uint64, uint64) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	for _, p := range patterns {
		_ = query(idx, p)
	}
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	alloc := getCurrentAlloc()
	return dur, peak, alloc
}

func runBenchmark(v variant, n, p, q, runs int, alphabet alphabetType) {
	sigma := 26
	if alphabet == alphabetSmall {
		sigma = 4
	}
	for run := 0; run < runs; run++ {
		r := rand.New(rand.NewSource(int64(run)))
		raw := make([]byte, n)
		for i := range raw {
			raw[i] = byte(r.Intn(sigma) + 'a')
		}
		text := string(raw)

		bt, bp, ba, idx := measureBuild(text, v.config)

		patterns := make([]string, q)
		for i := range patterns {
			start := r.Intn(n - p + 1)
			patterns[i] = text[start : start+p]
		}
		qt, qp, qa := measureQuery(idx, patterns, v.query)

		fmt.Printf("%s,%d,%d,%d,%s,%.0f,%d,%d,%.0f,%d,%d\n",
			v.name, n, p, q, alphabet,
			float64(bt.Nanoseconds()), bp, ba,
			float64(qt.Nanoseconds()), qp, qa)
	}
}

func main() {
	variantName := flag.String("variant", "", "Variant to benchmark")
	n := flag.Int("n", 0, "Text length N")
	p := flag.Int("p", 0, "Pattern length P")
	q := flag.Int("q", 0, "Number of queries Q")
	runs := flag.Int("runs", 3, "Number of runs for averaging")
	a := flag.String("a", "large", "Alphabet: small or large")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *variantName == "" || *n <= 0 || *p <= 0 || *q <= 0 || *p > *n {
		fmt.Println("Usage: go run main.go -variant=<variant> -n=<N> -p=<P> -q=<Q> -a=<alphabet> [-runs=<runs>]")
		fmt.Println("Available variants:", variants)
		os.Exit(1)
	}

	v, ok := variants[*variantName]
	if !ok {
		fmt.Println("Invalid variant:", *variantName)
		os.Exit(1)
	}

	runBenchmark(v, *n, *p, *q, *runs, alphabetType(*a))
}
