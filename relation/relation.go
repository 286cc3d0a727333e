// Package relation implements the Relation contract: a
// relation header plus tuple-set semantics with bulk and incremental
// insertion. Trie indices (nodetrie, coltrie) satisfy this contract in
// addition to exposing their cursor protocol.
package relation

import (
	"sort"

	"golang.org/x/xerrors"

	"github.com/kermit-go/kermit/key"
)

// ErrArityMismatch is returned when a tuple's length does not equal the
// relation's declared arity.
var ErrArityMismatch = xerrors.New("relation: tuple arity mismatch")

// Header describes a relation's name and its ordered attribute list. The
// arity is len(Attrs).
type Header struct {
	Name  string
	Attrs []string
}

// Arity returns the number of attributes in the header.
func (h Header) Arity() int { return len(h.Attrs) }

// Relation is the operational contract every relation representation
// (including every trie layout) must satisfy.
type Relation interface {
	// Header returns the relation's header.
	Header() Header
	// Insert adds tuple, returning false (without mutation) if its length
	// does not match the header's arity. Inserting a duplicate tuple is
	// idempotent and returns true.
	Insert(tuple key.Tuple) bool
	// InsertAll inserts tuples atomically on success: if any tuple has the
	// wrong arity, no tuple from the batch is inserted and false is
	// returned.
	InsertAll(tuples []key.Tuple) bool
	// Tuples returns every tuple currently in the relation, in ascending
	// lexicographic order.
	Tuples() []key.Tuple
	// Len returns the number of tuples currently in the relation.
	Len() int
}

// Dedup sorts tuples lexicographically and removes adjacent duplicates,
// matching the required observable behavior of from_tuples: the result is
// the same set of distinct tuples in the same sorted order regardless of
// which concrete Relation layout ends up holding the
// result.
func Dedup(tuples []key.Tuple) []key.Tuple {
	if len(tuples) == 0 {
		return nil
	}
	sorted := make([]key.Tuple, len(tuples))
	copy(sorted, tuples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Compare(sorted[j]) < 0 })

	out := sorted[:1]
	for _, t := range sorted[1:] {
		if !t.Equal(out[len(out)-1]) {
			out = append(out, t)
		}
	}
	return out
}
