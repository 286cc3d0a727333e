package coltrie

import (
	"github.com/kermit-go/kermit/cursor"
	"github.com/kermit-go/kermit/key"
)

// frame is the linear-cursor state at one depth: the layer being scanned,
// the window owned by the parent node, and the current absolute position.
type frame struct {
	layer      int
	start, end int
	pos        int
}

// Cursor is the column-trie's TrieCursor.
type Cursor struct {
	trie   *Trie
	frames []frame
}

var _ cursor.TrieCursor = (*Cursor)(nil)

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

// Open descends into the current node's children. At
// depth 0 it descends into the trie's layer-0 (level-1) window.
func (c *Cursor) Open() bool {
	var layer, parentPos int
	if f, ok := c.top(); !ok {
		layer, parentPos = 0, 0
	} else {
		if f.pos >= f.end {
			return false
		}
		layer, parentPos = f.layer+1, f.pos
		if layer >= c.trie.arity {
			return false
		}
	}
	start, end := c.trie.window(layer, parentPos)
	if start >= end {
		return false
	}
	c.frames = append(c.frames, frame{layer: layer, start: start, end: end, pos: start})
	return true
}

func (c *Cursor) Up() bool {
	if len(c.frames) == 0 {
		return false
	}
	c.frames = c.frames[:len(c.frames)-1]
	return true
}

func (c *Cursor) Key() (key.Key, bool) {
	f, ok := c.top()
	if !ok || f.pos >= f.end {
		return nil, false
	}
	return c.trie.data[f.layer][f.pos], true
}

func (c *Cursor) Next() (key.Key, bool) {
	if f, ok := c.top(); ok && f.pos < f.end {
		f.pos++
	}
	return c.Key()
}

func (c *Cursor) Seek(x key.Key) (key.Key, bool, error) {
	f, ok := c.top()
	if !ok {
		return nil, false, nil
	}
	data := c.trie.data[f.layer]
	if f.pos < f.end && x.Compare(data[f.pos]) < 0 {
		return nil, false, cursor.ErrInvalidSeek
	}
	lo, hi := f.pos, f.end
	for lo < hi {
		mid := (lo + hi) / 2
		if data[mid].Compare(x) < 0 {
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
	return f.pos >= f.end
}
