// Package coltrie implements the column-trie layout: N
// layers of flattened key arrays plus interval (offset) indices, rather
// than a pointer tree. It is the cache-friendlier layout for the leapfrog
// inner loop, which scans one level at a time sequentially.
//
// Layer d (1-indexed conceptually, 0-indexed here as L = d-1) holds
// data[L], the ordered keys at that layer, and interval[L], whose i-th
// entry is the start offset in data[L] of the children of the i-th node
// one layer up (layer L-1, or the implicit single root when L == 0).
// interval[0] always has exactly one entry, matching the single root.
package coltrie

import (
	"github.com/kermit-go/kermit/key"
	"github.com/kermit-go/kermit/relation"
)

// Trie is the column-trie realization of relation.Relation.
type Trie struct {
	header   relation.Header
	arity    int
	data     [][]key.Key
	interval [][]int
	count    int
}

var _ relation.Relation = (*Trie)(nil)

// New returns an empty trie for header. For the empty relation,
// interval[0] is initialized to [0]
// rather than left empty: the root always has exactly one (possibly
// empty) child window, so its interval entry always exists.
func New(header relation.Header) *Trie {
	arity := header.Arity()
	tr := &Trie{
		header:   header,
		arity:    arity,
		data:     make([][]key.Key, arity),
		interval: make([][]int, arity),
	}
	if arity > 0 {
		tr.interval[0] = []int{0}
	}
	return tr
}

// FromTuples builds a trie containing exactly the distinct tuples of
// tuples, matching nodetrie.FromTuples's contract and set semantics.
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

func (tr *Trie) Insert(tuple key.Tuple) bool {
	if len(tuple) != tr.arity {
		return false
	}
	if tr.insertPath(tuple) {
		tr.count++
	}
	return true
}

func (tr *Trie) InsertAll(tuples []key.Tuple) bool {
	for _, t := range tuples {
		if len(t) != tr.arity {
			return false
		}
	}
	for _, t := range tuples {
		tr.Insert(t)
	}
	return true
}

// window returns the half-open range in data[L] owned by the node at
// position p in layer L-1.
func (tr *Trie) window(L, p int) (start, end int) {
	start = tr.interval[L][p]
	if p+1 < len(tr.interval[L]) {
		end = tr.interval[L][p+1]
	} else {
		end = len(tr.data[L])
	}
	return
}

// insertPath implements the column-trie insertion algorithm.
// Once a miss occurs at some layer L, every subsequent layer's
// window is freshly spliced and therefore empty, so the same
// match-or-miss loop naturally continues the "straight-line chain"
// without a separate code path.
func (tr *Trie) insertPath(tuple key.Tuple) bool {
	p := 0
	inserted := false
	for L := 0; L < tr.arity; L++ {
		start, end := tr.window(L, p)
		idx, found := searchKeys(tr.data[L], start, end, tuple[L])
		if found {
			p = idx
			continue
		}
		inserted = true
		tr.data[L] = insertKeyAt(tr.data[L], idx, tuple[L])
		for i := p + 1; i < len(tr.interval[L]); i++ {
			tr.interval[L][i]++
		}
		if L+1 < tr.arity {
			newOffset := len(tr.data[L+1])
			if idx < len(tr.interval[L+1]) {
				newOffset = tr.interval[L+1][idx]
			}
			tr.interval[L+1] = insertIntAt(tr.interval[L+1], idx, newOffset)
		}
		p = idx
	}
	return inserted
}

func searchKeys(data []key.Key, start, end int, k key.Key) (idx int, found bool) {
	lo, hi := start, end
	for lo < hi {
		mid := (lo + hi) / 2
		switch c := data[mid].Compare(k); {
		case c == 0:
			return mid, true
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo, false
}

func insertKeyAt(s []key.Key, idx int, k key.Key) []key.Key {
	s = append(s, nil)
	copy(s[idx+1:], s[idx:])
	s[idx] = k
	return s
}

func insertIntAt(s []int, idx, v int) []int {
	s = append(s, 0)
	copy(s[idx+1:], s[idx:])
	s[idx] = v
	return s
}

// Tuples returns every tuple in ascending lexicographic order.
func (tr *Trie) Tuples() []key.Tuple {
	var out []key.Tuple
	if tr.arity == 0 {
		return out
	}
	var walk func(L, p int, path key.Tuple)
	walk = func(L, p int, path key.Tuple) {
		if L == tr.arity {
			cp := make(key.Tuple, len(path))
			copy(cp, path)
			out = append(out, cp)
			return
		}
		start, end := tr.window(L, p)
		for idx := start; idx < end; idx++ {
			walk(L+1, idx, append(path, tr.data[L][idx]))
		}
	}
	walk(0, 0, nil)
	return out
}
