// Command benchmark is a timing harness for relation construction and
// join evaluation: flag for configuration, time.Now/time.Since around
// each phase, runtime.GC between phases to keep allocations from one
// phase leaking into the next phase's numbers.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/kermit-go/kermit/coltrie"
	"github.com/kermit-go/kermit/cursor"
	"github.com/kermit-go/kermit/key"
	"github.com/kermit-go/kermit/nodetrie"
	"github.com/kermit-go/kermit/relation"
	"github.com/kermit-go/kermit/triejoin"
)

const usage = "USAGE: benchmark [-n=<rows per relation>] [-maxkey=<max key value>] [-layout=node|column]\n"

var (
	n       = flag.Int("n", 100000, "number of rows generated per relation")
	maxKey  = flag.Int("maxkey", 10000, "maximum generated key value")
	layout  = flag.String("layout", "column", "trie layout: node or column")
	seedArg = flag.Int64("seed", 1, "random seed")
)

func genChain(r *rand.Rand, rows, maxKey int) ([]key.Tuple, []key.Tuple) {
	left := make([]key.Tuple, rows)
	right := make([]key.Tuple, rows)
	for i := 0; i < rows; i++ {
		a := key.Int64(r.Intn(maxKey))
		b := key.Int64(r.Intn(maxKey))
		c := key.Int64(r.Intn(maxKey))
		left[i] = key.Tuple{a, b}
		right[i] = key.Tuple{b, c}
	}
	return left, right
}

func build(layoutName string, header relation.Header, tuples []key.Tuple) (cursor.TrieCursor, error) {
	switch layoutName {
	case "node":
		tr, err := nodetrie.FromTuples(header, tuples)
		if err != nil {
			return nil, err
		}
		return tr.Cursor(), nil
	case "column":
		tr, err := coltrie.FromTuples(header, tuples)
		if err != nil {
			return nil, err
		}
		return tr.Cursor(), nil
	default:
		return nil, fmt.Errorf("benchmark: unknown layout %q", layoutName)
	}
}

func timed(label string, fn func()) {
	runtime.GC()
	start := time.Now()
	fn()
	fmt.Printf("%-24s %v\n", label, time.Since(start))
}

func main() {
	flag.Parse()
	if *n <= 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	r := rand.New(rand.NewSource(*seedArg))
	var leftRows, rightRows []key.Tuple
	timed("generate", func() {
		leftRows, rightRows = genChain(r, *n, *maxKey)
	})

	leftHeader := relation.Header{Name: "left", Attrs: []string{"a", "b"}}
	rightHeader := relation.Header{Name: "right", Attrs: []string{"b", "c"}}

	var left, right cursor.TrieCursor
	timed("build left", func() {
		var err error
		left, err = build(*layout, leftHeader, leftRows)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	})
	timed("build right", func() {
		var err error
		right, err = build(*layout, rightHeader, rightRows)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	})

	var result int
	timed("join", func() {
		d, err := triejoin.NewDriver(
			[]string{"a", "b", "c"},
			[][]string{{"a", "b"}, {"b", "c"}},
			[]cursor.TrieCursor{left, right},
		)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		en := triejoin.Enumerate(d)
		for _, ok := en.Next(); ok; _, ok = en.Next() {
			result++
		}
	})

	fmt.Printf("result tuples: %d\n", result)
}
