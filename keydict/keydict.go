// Package keydict implements a heterogeneous key dictionary: relations
// over arbitrary Go values (strings, byte slices, composite records) are
// ingested by hashing each distinct
// value down to a single int64 surrogate with blake2b, so the trie core
// (key, cursor, leapfrog, triejoin) never has to know about anything but
// totally ordered int64 keys. A Dictionary is the inverse map back from
// surrogate to original value, needed to render results.
package keydict

import (
	"encoding/binary"
	"fmt"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/kermit-go/kermit/key"
)

// Dictionary interns arbitrary byte-string values as key.Int64 surrogates
// and recovers the original value given a surrogate. It is safe for
// concurrent use; surrogates are stable for the lifetime of the
// Dictionary but are not meaningful across Dictionary instances.
type Dictionary struct {
	mu      sync.RWMutex
	reverse map[key.Int64][]byte
}

// New returns an empty dictionary.
func New() *Dictionary {
	return &Dictionary{reverse: make(map[key.Int64][]byte)}
}

// Intern returns the int64 surrogate for value, computing it as the
// leading 8 bytes of blake2b-256(value) interpreted big-endian. Two
// distinct values hashing to the same surrogate is a dictionary
// collision; rather than silently merging two different entities into
// one trie key, Intern reports it as an error so the caller can widen
// the hash or fall back to a collision-resistant scheme.
func (d *Dictionary) Intern(value []byte) (key.Int64, error) {
	sum := blake2b.Sum256(value)
	k := key.Int64(int64(binary.BigEndian.Uint64(sum[:8])))

	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, ok := d.reverse[k]; ok {
		if string(existing) != string(value) {
			return 0, fmt.Errorf("keydict: surrogate collision for %q and %q", existing, value)
		}
		return k, nil
	}
	stored := append([]byte(nil), value...)
	d.reverse[k] = stored
	return k, nil
}

// InternString is a convenience wrapper around Intern for string values.
func (d *Dictionary) InternString(value string) (key.Int64, error) {
	return d.Intern([]byte(value))
}

// Lookup returns the original value interned for surrogate k, or
// (nil, false) if k was never produced by this Dictionary.
func (d *Dictionary) Lookup(k key.Int64) ([]byte, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.reverse[k]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

// LookupString is a convenience wrapper around Lookup for string values.
func (d *Dictionary) LookupString(k key.Int64) (string, bool) {
	v, ok := d.Lookup(k)
	if !ok {
		return "", false
	}
	return string(v), true
}

// Len returns the number of distinct values interned so far.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.reverse)
}
