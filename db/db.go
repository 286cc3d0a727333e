// Package db provides a name-addressed facade over the trie indices and
// triejoin driver: add relations by name, load them from tuples or files,
// and run a join by naming the participating relations and their shared
// variable ordering. It mirrors the database surface of original_source's
// kermit/src/db.rs, adapted to Go's two concrete trie layouts instead of
// a generic type parameter.
package db

import (
	"fmt"
	"sync"

	"github.com/kermit-go/kermit/coltrie"
	"github.com/kermit-go/kermit/cursor"
	"github.com/kermit-go/kermit/ingest"
	"github.com/kermit-go/kermit/key"
	"github.com/kermit-go/kermit/keydict"
	"github.com/kermit-go/kermit/nodetrie"
	"github.com/kermit-go/kermit/relation"
	"github.com/kermit-go/kermit/triejoin"
)

// Layout selects which physical trie representation a newly added
// relation uses.
type Layout int

const (
	NodeTrie Layout = iota
	ColumnTrie
)

// DB holds a set of named relations, each backed by either trie layout,
// and can run Leapfrog Triejoin queries across them.
type DB struct {
	name string
	dict *keydict.Dictionary

	mu        sync.RWMutex
	relations map[string]relation.Relation
}

// New returns an empty database named name.
func New(name string) *DB {
	return &DB{name: name, dict: keydict.New(), relations: make(map[string]relation.Relation)}
}

// Name returns the database's name.
func (d *DB) Name() string { return d.name }

// Dictionary returns the surrogate dictionary non-numeric CSV fields are
// interned into by LoadFile, so callers can reverse-lookup the original
// values bound in a join result.
func (d *DB) Dictionary() *keydict.Dictionary { return d.dict }

// AddRelation registers an empty relation with the given header and
// physical layout.
func (d *DB) AddRelation(header relation.Header, layout Layout) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.relations[header.Name]; exists {
		return fmt.Errorf("db: relation %q already exists", header.Name)
	}
	switch layout {
	case NodeTrie:
		d.relations[header.Name] = nodetrie.New(header)
	case ColumnTrie:
		d.relations[header.Name] = coltrie.New(header)
	default:
		return fmt.Errorf("db: unknown layout %d", layout)
	}
	return nil
}

// AddTuples inserts tuples into the named relation.
func (d *DB) AddTuples(name string, tuples []key.Tuple) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.relations[name]
	if !ok {
		return fmt.Errorf("db: no such relation %q", name)
	}
	if !r.InsertAll(tuples) {
		return relation.ErrArityMismatch
	}
	return nil
}

// LoadFile loads a relation from a CSV or Parquet file using
// the requested layout, adding it to the database under the name derived
// from the file.
func (d *DB) LoadFile(path string, layout Layout) (string, error) {
	header, tuples, err := ingest.LoadFile(path, d.dict)
	if err != nil {
		return "", err
	}
	if err := d.AddRelation(header, layout); err != nil {
		return "", err
	}
	if err := d.AddTuples(header.Name, tuples); err != nil {
		return "", err
	}
	return header.Name, nil
}

// Relation returns the named relation, if any.
func (d *DB) Relation(name string) (relation.Relation, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.relations[name]
	return r, ok
}

// Join runs a Leapfrog Triejoin across relNames under the
// global variable ordering vars, where relVars[i] lists the variables
// bound by relNames[i] in the same relative order they appear in vars. It
// returns the full enumeration of result tuples.
//
// The read lock is held for the whole enumeration, not just cursor
// construction: a cursor borrows its relation's backing slices directly
// (coltrie.data/interval, nodetrie's node.children), so an AddTuples on
// any joined relation racing a live scan would see or produce a
// reallocated or partially updated slice.
func (d *DB) Join(vars []string, relNames []string, relVars [][]string) ([]key.Tuple, error) {
	if len(relNames) != len(relVars) {
		return nil, fmt.Errorf("db: %d relation names but %d relVars", len(relNames), len(relVars))
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	cursors := make([]cursor.TrieCursor, len(relNames))
	for i, name := range relNames {
		r, ok := d.relations[name]
		if !ok {
			return nil, fmt.Errorf("db: no such relation %q", name)
		}
		c, ok := r.(interface{ Cursor() cursor.TrieCursor })
		if !ok {
			return nil, fmt.Errorf("db: relation %q does not support cursors", name)
		}
		cursors[i] = c.Cursor()
	}

	driver, err := triejoin.NewDriver(vars, relVars, cursors)
	if err != nil {
		return nil, err
	}
	en := triejoin.Enumerate(driver)
	var out []key.Tuple
	for tup, ok := en.Next(); ok; tup, ok = en.Next() {
		out = append(out, append(key.Tuple(nil), tup...))
	}
	return out, nil
}
