package ingest

import (
	"encoding/binary"
	"fmt"

	"github.com/iotaledger/hive.go/core/kvstore"
	"github.com/iotaledger/hive.go/core/kvstore/mapdb"

	"github.com/kermit-go/kermit/key"
	"github.com/kermit-go/kermit/relation"
)

// Staging buffers tuples for one relation in a hive.go kvstore.KVStore
// ahead of the final sort+dedup+trie-build pass, so a Builder accumulating
// tuples from a slow or resumable source (a long-running scan, a crash-
// prone importer) does not have to hold every row in process memory at
// once.
//
// The default construction uses an in-memory mapdb.MapDB; callers that
// need durability across process restarts should pass a
// badger.New(db)-backed kvstore.KVStore instead (see
// github.com/iotaledger/hive.go/core/kvstore/badger).
type Staging struct {
	store  kvstore.KVStore
	arity  int
	next   uint64
	header relation.Header
}

// NewStaging opens a Staging buffer for header over an in-memory store.
func NewStaging(header relation.Header) *Staging {
	return &Staging{store: mapdb.NewMapDB(), arity: header.Arity(), header: header}
}

// NewStagingOn opens a Staging buffer for header over a caller-supplied
// KVStore (typically a badger-backed store for durability).
func NewStagingOn(store kvstore.KVStore, header relation.Header) *Staging {
	return &Staging{store: store, arity: header.Arity(), header: header}
}

// Stage appends tuple to the staging store, encoding each field as a
// fixed-width big-endian int64. It does not sort or deduplicate, and
// neither does Drain; that happens once, in Builder.Build.
func (s *Staging) Stage(tuple key.Tuple) error {
	if len(tuple) != s.arity {
		return fmt.Errorf("ingest: staged tuple arity %d does not match relation %q arity %d", len(tuple), s.header.Name, s.arity)
	}
	buf := make([]byte, 8*len(tuple))
	for i, k := range tuple {
		v, ok := k.(key.Int64)
		if !ok {
			return fmt.Errorf("ingest: staging only supports key.Int64 fields, got %T", k)
		}
		binary.BigEndian.PutUint64(buf[i*8:], uint64(int64(v)))
	}
	rowKey := make([]byte, 8)
	binary.BigEndian.PutUint64(rowKey, s.next)
	s.next++
	return s.store.Set(rowKey, buf)
}

// Drain reads every staged row back out, in no particular order (Builder
// sorts downstream), and returns them as tuples.
func (s *Staging) Drain() ([]key.Tuple, error) {
	out := make([]key.Tuple, 0, s.next)
	var iterErr error
	err := s.store.Iterate(nil, func(_ kvstore.Key, value kvstore.Value) bool {
		if len(value)%8 != 0 || len(value)/8 != s.arity {
			iterErr = fmt.Errorf("ingest: staged row has %d bytes, expected %d", len(value), 8*s.arity)
			return false
		}
		tuple := make(key.Tuple, s.arity)
		for i := 0; i < s.arity; i++ {
			tuple[i] = key.Int64(int64(binary.BigEndian.Uint64(value[i*8:])))
		}
		out = append(out, tuple)
		return true
	})
	if err != nil {
		return nil, err
	}
	if iterErr != nil {
		return nil, iterErr
	}
	return out, nil
}

// Len returns the number of tuples staged so far.
func (s *Staging) Len() int { return int(s.next) }
