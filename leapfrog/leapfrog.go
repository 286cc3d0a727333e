// Package leapfrog implements the linear leapfrog intersection: given k
// linear cursors positioned over sorted key sets, it produces, in
// ascending order, exactly the keys present in every cursor, in
// worst-case-optimal comparison count.
package leapfrog

import (
	"sort"

	"github.com/kermit-go/kermit/internal/assert"

	"github.com/kermit-go/kermit/cursor"
	"github.com/kermit-go/kermit/key"
)

// Intersect holds the rotating state of a leapfrog intersection over a
// fixed set of cursors. Construct with New; the first
// match, if any, is available immediately via Key.
type Intersect struct {
	cursors []cursor.LinearCursor
	p       int
	done    bool
	current key.Key
	ok      bool
}

// New intersects cursors, leaving the first matching key (if any)
// available via Key. k == 1 passes the sole cursor through unchanged; k
// == 0 is the trivial empty universe and is never constructed by
// triejoin, but is handled here as an immediately-exhausted intersection
// rather than panicking.
func New(cursors []cursor.LinearCursor) *Intersect {
	it := &Intersect{cursors: append([]cursor.LinearCursor(nil), cursors...)}
	it.init()
	return it
}

func (it *Intersect) init() {
	if len(it.cursors) == 0 {
		it.done = true
		return
	}
	for _, c := range it.cursors {
		if c.AtEnd() {
			it.done = true
			return
		}
	}
	if len(it.cursors) > 1 {
		sort.Slice(it.cursors, func(i, j int) bool {
			ki, _ := it.cursors[i].Key()
			kj, _ := it.cursors[j].Key()
			return ki.Compare(kj) < 0
		})
	}
	it.search()
}

// search runs the unified leapfrog search step until
// either a match is found (set as the current key) or the intersection
// is exhausted.
func (it *Intersect) search() {
	if it.done {
		return
	}
	k := len(it.cursors)
	if k == 1 {
		it.current, it.ok = it.cursors[0].Key()
		it.done = !it.ok
		return
	}
	for {
		x, ok := it.cursors[it.p].Key()
		if !ok {
			it.done, it.ok = true, false
			return
		}
		prev := (it.p - 1 + k) % k
		xPrime, _ := it.cursors[prev].Key()

		if x.Compare(xPrime) == 0 {
			it.current, it.ok = x, true
			return
		}

		_, found, err := it.cursors[it.p].Seek(xPrime)
		assert.That(err == nil, "leapfrog: rotation invariant violated, seek target behind current key: %v", err)
		if !found {
			it.done, it.ok = true, false
			return
		}
		it.p = (it.p + 1) % k
	}
}

// Key returns the current matching key, or (nil, false) once the
// intersection is exhausted.
func (it *Intersect) Key() (key.Key, bool) { return it.current, it.ok }

// AtEnd reports whether the intersection is exhausted.
func (it *Intersect) AtEnd() bool { return it.done }

// NextMatch advances past the current match and runs the search step
// again to produce the next match.
func (it *Intersect) NextMatch() (key.Key, bool) {
	if it.done {
		return nil, false
	}
	k := len(it.cursors)
	if k == 1 {
		it.current, it.ok = it.cursors[0].Next()
		it.done = !it.ok
		return it.current, it.ok
	}
	if _, ok := it.cursors[it.p].Next(); !ok {
		it.done, it.ok = true, false
		return nil, false
	}
	it.p = (it.p + 1) % k
	it.search()
	return it.Key()
}
