package nodetrie

import (
	"github.com/kermit-go/kermit/cursor"
	"github.com/kermit-go/kermit/key"
)

// frame is the linear-cursor state at one depth: the sibling list the
// cursor is scanning and its position within it.
type frame struct {
	siblings []*node
	pos      int
}

// Cursor is the node-trie's TrieCursor. Its lifetime must not exceed the
// Trie's; it borrows the trie read-only and is not
// thread-safe.
type Cursor struct {
	trie   *Trie
	frames []frame
}

var _ cursor.TrieCursor = (*Cursor)(nil)

// Cursor returns a fresh cursor positioned at depth 0.
func (tr *Trie) Cursor() cursor.TrieCursor {
	return &Cursor{trie: tr}
}

func (c *Cursor) Depth() int { return len(c.frames) }

func (c *Cursor) top() (*frame, bool) {
	if len(c.frames) == 0 {
		return nil, false
	}
	return &c.frames[len(c.frames)-1], true
}

// Open descends into the first child of the node currently addressed.
// At depth 0 it descends into the trie's level-1
// siblings.
func (c *Cursor) Open() bool {
	var siblings []*node
	if f, ok := c.top(); !ok {
		siblings = c.trie.root.children
	} else {
		if f.pos >= len(f.siblings) {
			return false
		}
		siblings = f.siblings[f.pos].children
	}
	if len(siblings) == 0 {
		return false
	}
	c.frames = append(c.frames, frame{siblings: siblings})
	return true
}

// Up ascends one depth, restoring the parent's linear position.
// It fails at depth 0.
func (c *Cursor) Up() bool {
	if len(c.frames) == 0 {
		return false
	}
	c.frames = c.frames[:len(c.frames)-1]
	return true
}

func (c *Cursor) Key() (key.Key, bool) {
	f, ok := c.top()
	if !ok || f.pos >= len(f.siblings) {
		return nil, false
	}
	return f.siblings[f.pos].k, true
}

func (c *Cursor) Next() (key.Key, bool) {
	if f, ok := c.top(); ok && f.pos < len(f.siblings) {
		f.pos++
	}
	return c.Key()
}

func (c *Cursor) Seek(x key.Key) (key.Key, bool, error) {
	f, ok := c.top()
	if !ok {
		return nil, false, nil
	}
	if f.pos < len(f.siblings) && x.Compare(f.siblings[f.pos].k) < 0 {
		return nil, false, cursor.ErrInvalidSeek
	}
	lo, hi := f.pos, len(f.siblings)
	for lo < hi {
		mid := (lo + hi) / 2
		if f.siblings[mid].k.Compare(x) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	f.pos = lo
	k, ok := c.Key()
	return k, ok, nil
}

func (c *Cursor) AtEnd() bool {
	f, ok := c.top()
	if !ok {
		return true
	}
	return f.pos >= len(f.siblings)
}
