// Package nodetrie implements the node-trie layout: a classical
// child-owning tree of ordered sibling lists, one level per attribute.
// It is the simpler of the two layouts to mutate; coltrie
// trades mutation simplicity for a cache-friendlier sequential scan on
// the leapfrog hot path.
package nodetrie

import (
	"github.com/kermit-go/kermit/key"
	"github.com/kermit-go/kermit/relation"
)

// Trie is the node-trie realization of relation.Relation. The zero value
// is not usable; construct with New or FromTuples.
type Trie struct {
	header relation.Header
	root   *node
	count  int
}

var _ relation.Relation = (*Trie)(nil)

// New returns an empty trie for header.
func New(header relation.Header) *Trie {
	return &Trie{header: header, root: &node{}}
}

// FromTuples builds a trie containing exactly the distinct tuples of
// tuples, sorting and deduplicating first so the result is independent
// of input order. A tuple
// whose length does not match header's arity aborts the whole build.
func FromTuples(header relation.Header, tuples []key.Tuple) (*Trie, error) {
	for _, t := range tuples {
		if len(t) != header.Arity() {
			return nil, relation.ErrArityMismatch
		}
	}
	tr := New(header)
	for _, t := range relation.Dedup(tuples) {
		tr.Insert(t)
	}
	return tr, nil
}

func (tr *Trie) Header() relation.Header { return tr.header }

func (tr *Trie) Len() int { return tr.count }

// Insert adds tuple. Inserting a duplicate is idempotent.
func (tr *Trie) Insert(tuple key.Tuple) bool {
	if len(tuple) != tr.header.Arity() {
		return false
	}
	if insertPath(tr.root, tuple) {
		tr.count++
	}
	return true
}

// InsertAll inserts tuples atomically on success: if any
// tuple has the wrong arity, nothing from the batch is inserted.
func (tr *Trie) InsertAll(tuples []key.Tuple) bool {
	for _, t := range tuples {
		if len(t) != tr.header.Arity() {
			return false
		}
	}
	for _, t := range tuples {
		tr.Insert(t)
	}
	return true
}

// insertPath descends from parent following tuple, creating the nodes
// needed, and reports whether a new tuple was added
// (false means tuple was already present).
func insertPath(parent *node, tuple key.Tuple) bool {
	n := parent
	for i := 0; i < len(tuple); i++ {
		idx, found := search(n.children, tuple[i])
		if found {
			n = n.children[idx]
			continue
		}
		n.children = insertChildAt(n.children, idx, chain(tuple[i:]))
		return true
	}
	return false
}

// Tuples returns every tuple in ascending lexicographic order.
func (tr *Trie) Tuples() []key.Tuple {
	var out []key.Tuple
	arity := tr.header.Arity()
	if arity == 0 {
		return out
	}
	var walk func(n *node, depth int, path key.Tuple)
	walk = func(n *node, depth int, path key.Tuple) {
		if depth == arity {
			cp := make(key.Tuple, len(path))
			copy(cp, path)
			out = append(out, cp)
			return
		}
		for _, c := range n.children {
			walk(c, depth+1, append(path, c.k))
		}
	}
	walk(tr.root, 0, nil)
	return out
}
