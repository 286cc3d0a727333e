package nodetrie

import "github.com/kermit-go/kermit/key"

// node is one vertex of the child-owning tree (node-trie
// layout). The root node's k is nil and is never read; root.children are
// the level-1 siblings. Every other node's k is the key bound at its
// depth, and its children (if any) are its strictly-increasing,
// duplicate-free sibling list one level down.
type node struct {
	k        key.Key
	children []*node
}

// search performs a binary search for k among siblings, returning the
// position where k is (found=true) or where it should be inserted
// (found=false). Siblings are kept strictly increasing, so
// this never scans linearly.
func search(siblings []*node, k key.Key) (idx int, found bool) {
	lo, hi := 0, len(siblings)
	for lo < hi {
		mid := (lo + hi) / 2
		switch c := siblings[mid].k.Compare(k); {
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

// insertChildAt inserts n into siblings at position idx, shifting later
// siblings right.
func insertChildAt(siblings []*node, idx int, n *node) []*node {
	siblings = append(siblings, nil)
	copy(siblings[idx+1:], siblings[idx:])
	siblings[idx] = n
	return siblings
}

// chain builds the straight-line run of nodes for the remaining suffix of
// a tuple being inserted past the point where the existing trie diverges
// from it, continuing the remaining suffix as a straight-line chain.
func chain(keys key.Tuple) *node {
	n := &node{k: keys[0]}
	if len(keys) > 1 {
		n.children = []*node{chain(keys[1:])}
	}
	return n
}
