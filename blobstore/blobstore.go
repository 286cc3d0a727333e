// Package blobstore implements a generic key/value blob store: a minimal
// KVStore contract plus an in-memory implementation, and a compact
// length-prefixed binary stream format for dumping a KVStore to a file and
// reading it back.
package blobstore

import (
	"bytes"
)

// KVReader reads byte-string values by byte-string key.
type KVReader interface {
	// Get retrieves the value for key, or nil if absent.
	Get(key []byte) []byte
	// Has reports whether key is present.
	Has(key []byte) bool
}

// KVWriter writes byte-string key/value pairs. Set with a nil or empty
// value deletes the key.
type KVWriter interface {
	Set(key, value []byte)
}

// KVIterator iterates a set of key/value pairs in unspecified order.
type KVIterator interface {
	Iterate(func(k, v []byte) bool)
}

// KVStore is a compound key/value blob store contract.
type KVStore interface {
	KVReader
	KVWriter
	KVIterator
}

// InMemory is a KVStore backed by a plain Go map, useful for tests and
// small staging tasks that do not need hive.go's badger-backed store
// (see ingest.Staging for that case).
type InMemory map[string][]byte

var _ KVStore = InMemory{}

// NewInMemory returns an empty in-memory KVStore.
func NewInMemory() KVStore {
	return make(InMemory)
}

func (m InMemory) Get(k []byte) []byte { return m[string(k)] }

func (m InMemory) Has(k []byte) bool {
	_, ok := m[string(k)]
	return ok
}

func (m InMemory) Set(k, v []byte) {
	if len(v) == 0 {
		delete(m, string(k))
		return
	}
	m[string(k)] = v
}

func (m InMemory) Iterate(fun func(k, v []byte) bool) {
	for k, v := range m {
		if !fun([]byte(k), v) {
			return
		}
	}
}

// Concat joins byte-string-like fragments into a single composite key.
func Concat(fragments ...[]byte) []byte {
	var buf bytes.Buffer
	for _, f := range fragments {
		buf.Write(f)
	}
	return buf.Bytes()
}

// ByteSize sums the key and value lengths of every entry in s.
func ByteSize(s KVIterator) int {
	total := 0
	s.Iterate(func(k, v []byte) bool {
		total += len(k) + len(v)
		return true
	})
	return total
}

// NumEntries counts the entries in s.
func NumEntries(s KVIterator) int {
	n := 0
	s.Iterate(func(_, _ []byte) bool {
		n++
		return true
	})
	return n
}
