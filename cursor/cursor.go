// Package cursor defines the two composable capability contracts that a
// trie index must expose: level-scan (LinearCursor) and
// vertical-navigation (TrieCursor, which embeds LinearCursor). Both
// nodetrie and coltrie implement TrieCursor; leapfrog only ever needs the
// LinearCursor facet of whatever it is handed.
package cursor

import (
	"golang.org/x/xerrors"

	"github.com/kermit-go/kermit/key"
)

// ErrInvalidSeek is returned by Seek when x is strictly less than the
// cursor's current key — a violation of Seek's precondition.
var ErrInvalidSeek = xerrors.New("cursor: seek target is less than current key")

// LinearCursor iterates the children of one trie node in ascending key
// order. Seek must use at most O(log n) comparisons; a linear
// scan is forbidden on performance grounds because leapfrog is the inner
// loop of the whole join.
type LinearCursor interface {
	// Key returns the current key, or (nil, false) if positioned past the
	// last sibling.
	Key() (key.Key, bool)
	// Next advances one step and returns the new Key().
	Next() (key.Key, bool)
	// Seek moves to the least key >= x. Precondition: x >= Key(). Violating
	// the precondition returns ErrInvalidSeek and leaves the cursor
	// unmoved.
	Seek(x key.Key) (key.Key, bool, error)
	// AtEnd reports whether the cursor is positioned past the last sibling.
	AtEnd() bool
}

// TrieCursor extends LinearCursor with vertical navigation between trie
// levels.
type TrieCursor interface {
	LinearCursor

	// Open descends into the first child of the node the cursor is
	// currently positioned at, becoming a linear cursor over that child's
	// children; the cursor moves from depth d to d+1. At depth 0, Open
	// descends into the first level-1 sibling (the first child of the
	// trie's implicit root). Open fails (returns false) if the current
	// node is a leaf (already at depth N) or the trie is empty at the
	// root.
	Open() bool
	// Up ascends one depth, restoring the linear position at depth d-1
	// that held before the matching Open. Up fails (returns false) at
	// depth 0, including when Open was never called; it does not panic.
	Up() bool
	// Depth returns the current depth, 0..N.
	Depth() int
}
