package key_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kermit-go/kermit/key"
)

func TestInt64Order(t *testing.T) {
	require.True(t, key.Less(key.Int64(1), key.Int64(2)))
	require.False(t, key.Less(key.Int64(2), key.Int64(1)))
	require.True(t, key.Equal(key.Int64(5), key.Int64(5)))
}

func TestStringOrder(t *testing.T) {
	require.True(t, key.Less(key.String("a"), key.String("b")))
	require.True(t, key.Equal(key.String("x"), key.String("x")))
}

func TestTupleCompare(t *testing.T) {
	a := key.Tuple{key.Int64(1), key.Int64(2)}
	b := key.Tuple{key.Int64(1), key.Int64(3)}
	require.Negative(t, a.Compare(b))
	require.True(t, a.Equal(a.Clone()))
}
