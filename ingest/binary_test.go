package ingest_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kermit-go/kermit/ingest"
	"github.com/kermit-go/kermit/key"
	"github.com/kermit-go/kermit/relation"
)

func TestSaveAndLoadBinaryRoundTrip(t *testing.T) {
	header := relation.Header{Name: "edges", Attrs: []string{"a", "b"}}
	tuples := []key.Tuple{
		{key.Int64(1), key.Int64(2)},
		{key.Int64(3), key.Int64(4)},
	}
	path := filepath.Join(t.TempDir(), "edges.bin")

	n, err := ingest.SaveBinary(path, header, tuples)
	require.NoError(t, err)
	require.Positive(t, n)

	gotHeader, gotTuples, err := ingest.LoadBinary(path)
	require.NoError(t, err)
	require.Equal(t, header, gotHeader)
	require.Len(t, gotTuples, 2)
	require.True(t, gotTuples[0].Equal(tuples[0]))
	require.True(t, gotTuples[1].Equal(tuples[1]))
}

func TestSaveBinaryRejectsArityMismatch(t *testing.T) {
	header := relation.Header{Name: "r", Attrs: []string{"a", "b"}}
	path := filepath.Join(t.TempDir(), "r.bin")
	_, err := ingest.SaveBinary(path, header, []key.Tuple{{key.Int64(1)}})
	require.Error(t, err)
}
