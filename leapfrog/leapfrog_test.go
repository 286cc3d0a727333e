package leapfrog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kermit-go/kermit/coltrie"
	"github.com/kermit-go/kermit/cursor"
	"github.com/kermit-go/kermit/key"
	"github.com/kermit-go/kermit/leapfrog"
	"github.com/kermit-go/kermit/relation"
)

func header1() relation.Header { return relation.Header{Name: "R", Attrs: []string{"a"}} }

func tup1(v int64) key.Tuple { return key.Tuple{key.Int64(v)} }

func linearCursorOver(t *testing.T, vs ...int64) cursor.LinearCursor {
	t.Helper()
	tuples := make([]key.Tuple, len(vs))
	for i, v := range vs {
		tuples[i] = tup1(v)
	}
	tr, err := coltrie.FromTuples(header1(), tuples)
	require.NoError(t, err)
	c := tr.Cursor()
	require.True(t, c.Open())
	return c
}

func drain(it *leapfrog.Intersect) []int64 {
	var out []int64
	for k, ok := it.Key(); ok; k, ok = it.NextMatch() {
		out = append(out, int64(k.(key.Int64)))
	}
	return out
}

func TestIntersectTwoSets(t *testing.T) {
	a := linearCursorOver(t, 1, 2, 3)
	b := linearCursorOver(t, 1, 2, 3)
	it := leapfrog.New([]cursor.LinearCursor{a, b})
	require.Equal(t, []int64{1, 2, 3}, drain(it))
}

func TestIntersectExistentialSelfJoin(t *testing.T) {
	a := linearCursorOver(t, 1, 2, 3)
	b := linearCursorOver(t, 2, 3, 4)
	it := leapfrog.New([]cursor.LinearCursor{a, b})
	require.Equal(t, []int64{2, 3}, drain(it))
}

func TestIntersectEmpty(t *testing.T) {
	a := linearCursorOver(t, 1, 3, 5)
	b := linearCursorOver(t, 2, 4, 6)
	it := leapfrog.New([]cursor.LinearCursor{a, b})
	require.True(t, it.AtEnd())
	_, ok := it.Key()
	require.False(t, ok)
}

func TestIntersectSingleCursorPassthrough(t *testing.T) {
	a := linearCursorOver(t, 1, 2, 3)
	it := leapfrog.New([]cursor.LinearCursor{a})
	require.Equal(t, []int64{1, 2, 3}, drain(it))
}

func TestIntersectThreeWay(t *testing.T) {
	a := linearCursorOver(t, 1, 2, 3, 4)
	b := linearCursorOver(t, 2, 3, 4, 5)
	c := linearCursorOver(t, 2, 4, 6)
	it := leapfrog.New([]cursor.LinearCursor{a, b, c})
	require.Equal(t, []int64{2, 4}, drain(it))
}
