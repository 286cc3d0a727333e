// Command join loads one or more CSV relations, runs a Datalog-style
// join query across them, and prints the resulting tuples. Thin glue
// over the core library: stdlib flag, a single usage string.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/kermit-go/kermit/datalog"
	"github.com/kermit-go/kermit/db"
	"github.com/kermit-go/kermit/key"
	"github.com/kermit-go/kermit/keydict"
)

const usage = "USAGE: join [-layout=node|column] -query=\"head(...) :- body(...), ...\" file.csv [file.csv ...]\n"

var (
	layout = flag.String("layout", "column", "trie layout: node or column")
	query  = flag.String("query", "", "datalog-style rule to evaluate against the loaded relations")
)

func main() {
	flag.Parse()
	files := flag.Args()
	if *query == "" || len(files) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var l db.Layout
	switch *layout {
	case "node":
		l = db.NodeTrie
	case "column":
		l = db.ColumnTrie
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	d := db.New("join")
	for _, f := range files {
		if _, err := d.LoadFile(f, l); err != nil {
			fmt.Fprintf(os.Stderr, "join: %v\n", err)
			os.Exit(1)
		}
	}

	q, err := datalog.Parse(*query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "join: %v\n", err)
		os.Exit(1)
	}
	plan := q.Plan()

	tuples, err := d.Join(plan.Vars, plan.RelNames, plan.RelVars)
	if err != nil {
		fmt.Fprintf(os.Stderr, "join: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s(%s)\n", q.Head.Name, strings.Join(plan.Vars, ", "))
	dict := d.Dictionary()
	for _, t := range tuples {
		fields := make([]string, len(t))
		for i, k := range t {
			fields[i] = render(dict, k)
		}
		fmt.Println(strings.Join(fields, ", "))
	}
}

// render prints k as the original string it was interned from, if dict
// recognizes it as one of its surrogates, or as k's own string form
// otherwise (an ordinary int64 key never handed to the dictionary).
func render(dict *keydict.Dictionary, k key.Key) string {
	if surrogate, ok := k.(key.Int64); ok {
		if s, found := dict.LookupString(surrogate); found {
			return s
		}
	}
	return k.String()
}
