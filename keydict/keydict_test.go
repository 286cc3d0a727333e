package keydict_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kermit-go/kermit/keydict"
)

func TestInternAndLookupRoundTrip(t *testing.T) {
	d := keydict.New()
	k, err := d.InternString("alice")
	require.NoError(t, err)

	v, ok := d.LookupString(k)
	require.True(t, ok)
	require.Equal(t, "alice", v)
}

func TestInternIsIdempotent(t *testing.T) {
	d := keydict.New()
	k1, err := d.InternString("bob")
	require.NoError(t, err)
	k2, err := d.InternString("bob")
	require.NoError(t, err)
	require.Equal(t, k1, k2)
	require.Equal(t, 1, d.Len())
}

func TestDistinctValuesGetDistinctSurrogates(t *testing.T) {
	d := keydict.New()
	k1, err := d.InternString("alice")
	require.NoError(t, err)
	k2, err := d.InternString("bob")
	require.NoError(t, err)
	require.NotEqual(t, k1, k2)
	require.Equal(t, 2, d.Len())
}

func TestLookupUnknownSurrogate(t *testing.T) {
	d := keydict.New()
	_, ok := d.Lookup(42)
	require.False(t, ok)
}
