// Package assert provides the panic-with-diagnostic helper used across the
// core packages to guard state-machine invariants that must never be
// violated by well-behaved callers (as opposed to ordinary end-of-sequence
// conditions, which are returned as values, never panicked).
package assert

import "fmt"

// That panics with a formatted message if cond is false. It is reserved for
// programmer errors: a cursor method called out of protocol, an internal
// invariant broken by a bug. Ordinary control flow (end of sequence, no
// extension at this prefix) must never go through That.
func That(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
