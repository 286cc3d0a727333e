// Package ingest implements a relation builder: it
// accumulates tuples from explicit inserts or a tabular source and, on
// build, sorts and deduplicates them before handing them to a trie
// constructor. It also implements external file formats (CSV, and
// Parquet as a documented stub).
package ingest

import (
	"fmt"

	"github.com/kermit-go/kermit/key"
	"github.com/kermit-go/kermit/relation"
)

// Builder accumulates tuples for a single relation ahead of trie
// construction. It is not safe for concurrent use; build
// one Builder per goroutine and hand the finished tuples off.
type Builder struct {
	header relation.Header
	tuples []key.Tuple
}

// NewBuilder starts an empty builder for header.
func NewBuilder(header relation.Header) *Builder {
	return &Builder{header: header}
}

// Add appends tuple, rejecting any whose arity disagrees with the
// builder's header.
func (b *Builder) Add(tuple key.Tuple) error {
	if len(tuple) != b.header.Arity() {
		return fmt.Errorf("ingest: tuple arity %d does not match relation %q arity %d", len(tuple), b.header.Name, b.header.Arity())
	}
	b.tuples = append(b.tuples, tuple)
	return nil
}

// AddAll adds every tuple in tuples, stopping at the first arity
// mismatch.
func (b *Builder) AddAll(tuples []key.Tuple) error {
	for _, t := range tuples {
		if err := b.Add(t); err != nil {
			return err
		}
	}
	return nil
}

// Build sorts the accumulated tuples lexicographically and removes
// adjacent duplicates, returning the header
// unchanged and the deduplicated, sorted tuple set ready for a trie
// constructor.
func (b *Builder) Build() (relation.Header, []key.Tuple) {
	return b.header, relation.Dedup(b.tuples)
}

// Len reports how many tuples have been accumulated so far, before
// deduplication.
func (b *Builder) Len() int { return len(b.tuples) }
