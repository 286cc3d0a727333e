// Package triejoin implements the Leapfrog Triejoin driver and its
// enumeration adapter: a depth-wise composition of leapfrog.Intersect
// across a variable ordering, producing the natural join of the input
// relations projected onto that ordering.
package triejoin

import (
	"fmt"

	"github.com/kermit-go/kermit/internal/assert"

	"github.com/kermit-go/kermit/cursor"
	"github.com/kermit-go/kermit/key"
	"github.com/kermit-go/kermit/leapfrog"
)

// Driver holds the current depth and, at each depth, the active leapfrog
// intersect over the relations that constrain that depth's variable.
// A Driver's lifetime must not exceed that of every input cursor.
type Driver struct {
	vars       []string
	relVars    [][]string
	cursors    []cursor.TrieCursor
	s          [][]int // s[j] = S_{j+1}: relation indices binding vars[j]
	intersects []*leapfrog.Intersect
}

// NewDriver builds a driver for variable ordering vars, where relVars[i]
// lists the variables relation cursors[i] binds, in the same relative
// order they appear in vars (a prefix-consistent projection). An
// out-of-order or unknown-variable relVars[i] is a configuration error,
// reported immediately rather than discovered deep into a join.
func NewDriver(vars []string, relVars [][]string, cursors []cursor.TrieCursor) (*Driver, error) {
	if len(relVars) != len(cursors) {
		return nil, fmt.Errorf("triejoin: %d relVars but %d cursors", len(relVars), len(cursors))
	}
	varIndex := make(map[string]int, len(vars))
	for idx, v := range vars {
		varIndex[v] = idx
	}
	s := make([][]int, len(vars))
	for i, attrs := range relVars {
		last := -1
		for _, v := range attrs {
			j, ok := varIndex[v]
			if !ok {
				return nil, fmt.Errorf("triejoin: relation %d binds variable %q not present in the ordering", i, v)
			}
			if j <= last {
				return nil, fmt.Errorf("triejoin: relation %d's attribute order %v is not a prefix-consistent projection of the variable ordering", i, attrs)
			}
			last = j
			s[j] = append(s[j], i)
		}
	}
	for j, relIdxs := range s {
		if len(relIdxs) == 0 {
			return nil, fmt.Errorf("triejoin: variable %q is not bound by any relation", vars[j])
		}
	}
	return &Driver{vars: vars, relVars: relVars, cursors: cursors, s: s}, nil
}

// Depth returns the current depth, 0..len(vars).
func (d *Driver) Depth() int { return len(d.intersects) }

// Open descends from depth d to d+1. It opens every
// cursor in S_{d+1} and runs a fresh leapfrog intersect over them. If any
// cursor fails to open, or the fresh intersect has no match at all, the
// join has no extension at this prefix: Open rolls back any cursors it
// already opened for this attempt and returns (nil, false) without
// changing depth.
func (d *Driver) Open() (key.Key, bool) {
	depth := len(d.intersects)
	if depth >= len(d.vars) {
		return nil, false
	}
	relIdxs := d.s[depth]
	for attempt, i := range relIdxs {
		if !d.cursors[i].Open() {
			for _, j := range relIdxs[:attempt] {
				d.cursors[j].Up()
			}
			return nil, false
		}
	}
	linear := make([]cursor.LinearCursor, len(relIdxs))
	for k, i := range relIdxs {
		linear[k] = d.cursors[i]
	}
	it := leapfrog.New(linear)
	k, ok := it.Key()
	if !ok {
		for _, i := range relIdxs {
			d.cursors[i].Up()
		}
		return nil, false
	}
	d.intersects = append(d.intersects, it)
	return k, true
}

// Up ascends from depth d to d-1, restoring the parent
// intersect view. It fails at depth 0.
func (d *Driver) Up() bool {
	depth := len(d.intersects)
	if depth == 0 {
		return false
	}
	for _, i := range d.s[depth-1] {
		assert.That(d.cursors[i].Up(), "triejoin: cursor %d could not Up at depth %d though it was opened for this depth", i, depth)
	}
	d.intersects = d.intersects[:depth-1]
	return true
}

// Next advances the binding for the current depth's variable via the
// active intersect's NextMatch. It is a no-op returning
// (nil, false) at depth 0.
func (d *Driver) Next() (key.Key, bool) {
	depth := len(d.intersects)
	if depth == 0 {
		return nil, false
	}
	return d.intersects[depth-1].NextMatch()
}

// Key returns the current binding for the depth-d variable, or (nil,
// false) at depth 0 or if the active intersect is exhausted.
func (d *Driver) Key() (key.Key, bool) {
	if len(d.intersects) == 0 {
		return nil, false
	}
	return d.intersects[len(d.intersects)-1].Key()
}

// snapshot reads every depth's current key into a full-width tuple. Only
// valid to call when Depth() == len(vars): every active intersect is then
// guaranteed to hold a valid key (J1).
func (d *Driver) snapshot() key.Tuple {
	out := make(key.Tuple, len(d.intersects))
	for i, it := range d.intersects {
		k, ok := it.Key()
		assert.That(ok, "triejoin: snapshot at full depth found an exhausted intersect at position %d", i)
		out[i] = k
	}
	return out
}
