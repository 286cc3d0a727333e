package triejoin

import "github.com/kermit-go/kermit/key"

// Enumerator wraps a Driver as a lazy, finite sequence of full-width
// tuples in strictly ascending lexicographic order under the driver's
// variable ordering. It is not restartable; construct a
// fresh Driver (cheap) if the join needs to be replayed.
type Enumerator struct {
	d         *Driver
	started   bool
	exhausted bool
}

// Enumerate wraps d as an Enumerator. d should be freshly constructed, at
// depth 0.
func Enumerate(d *Driver) *Enumerator {
	return &Enumerator{d: d}
}

// Next returns the next full tuple in the join result, or (nil, false)
// once the enumeration is complete.
func (e *Enumerator) Next() (key.Tuple, bool) {
	if e.exhausted {
		return nil, false
	}
	var ok bool
	if !e.started {
		e.started = true
		ok = e.descend()
	} else {
		ok = e.advance()
	}
	if !ok {
		e.exhausted = true
		return nil, false
	}
	return e.d.snapshot(), true
}

// descend opens down to full depth, backtracking (pop + next) whenever an
// Open finds no extension, until either a full-width tuple is reached or
// the whole search space is exhausted.
func (e *Enumerator) descend() bool {
	m := len(e.d.vars)
	for e.d.Depth() < m {
		if _, ok := e.d.Open(); ok {
			continue
		}
		if !e.backtrack() {
			return false
		}
	}
	return true
}

// backtrack pops one level and tries Next there; if Next is absent, pops
// again, repeating until a fresh binding is found or depth 0 is reached
// with nothing left.
func (e *Enumerator) backtrack() bool {
	for e.d.Depth() > 0 {
		if !e.d.Up() {
			return false
		}
		if e.d.Depth() == 0 {
			return false
		}
		if _, ok := e.d.Next(); ok {
			return true
		}
	}
	return false
}

// advance moves past the tuple just emitted and finds the next one.
func (e *Enumerator) advance() bool {
	if !e.backtrack() {
		return false
	}
	return e.descend()
}
