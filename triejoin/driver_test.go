package triejoin_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kermit-go/kermit/coltrie"
	"github.com/kermit-go/kermit/cursor"
	"github.com/kermit-go/kermit/key"
	"github.com/kermit-go/kermit/nodetrie"
	"github.com/kermit-go/kermit/relation"
	"github.com/kermit-go/kermit/triejoin"
)

func tuples(rows ...[]int64) []key.Tuple {
	out := make([]key.Tuple, len(rows))
	for i, r := range rows {
		t := make(key.Tuple, len(r))
		for j, v := range r {
			t[j] = key.Int64(v)
		}
		out[i] = t
	}
	return out
}

func col(t *testing.T, attrs []string, rows ...[]int64) cursor.TrieCursor {
	t.Helper()
	h := relation.Header{Name: "R", Attrs: attrs}
	tr, err := coltrie.FromTuples(h, tuples(rows...))
	require.NoError(t, err)
	return tr.Cursor()
}

func node(t *testing.T, attrs []string, rows ...[]int64) cursor.TrieCursor {
	t.Helper()
	h := relation.Header{Name: "R", Attrs: attrs}
	tr, err := nodetrie.FromTuples(h, tuples(rows...))
	require.NoError(t, err)
	return tr.Cursor()
}

func collect(t *testing.T, en *triejoin.Enumerator) []key.Tuple {
	t.Helper()
	var out []key.Tuple
	for tup, ok := en.Next(); ok; tup, ok = en.Next() {
		cp := append(key.Tuple(nil), tup...)
		out = append(out, cp)
	}
	return out
}

func tupleSet(rows ...[]int64) []key.Tuple { return tuples(rows...) }

func requireSameTuples(t *testing.T, want, got []key.Tuple) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	for i := range want {
		require.True(t, want[i].Equal(got[i]), "index %d: want %v got %v", i, want[i], got[i])
	}
}

// Unary equi-join: R(a) join S(a).
func TestUnaryEquiJoin(t *testing.T) {
	r := col(t, []string{"a"}, []int64{1}, []int64{2}, []int64{3})
	s := col(t, []string{"a"}, []int64{2}, []int64{3}, []int64{4})

	d, err := triejoin.NewDriver([]string{"a"}, [][]string{{"a"}, {"a"}}, []cursor.TrieCursor{r, s})
	require.NoError(t, err)
	got := collect(t, triejoin.Enumerate(d))
	requireSameTuples(t, tupleSet([]int64{2}, []int64{3}), got)
}

// Triangle query: R(a,b), S(b,c), T(a,c).
func TestTriangleJoin(t *testing.T) {
	r := col(t, []string{"a", "b"}, []int64{1, 2}, []int64{1, 3})
	s := col(t, []string{"b", "c"}, []int64{2, 9}, []int64{3, 9})
	tt := col(t, []string{"a", "c"}, []int64{1, 9})

	d, err := triejoin.NewDriver(
		[]string{"a", "b", "c"},
		[][]string{{"a", "b"}, {"b", "c"}, {"a", "c"}},
		[]cursor.TrieCursor{r, s, tt},
	)
	require.NoError(t, err)
	got := collect(t, triejoin.Enumerate(d))
	requireSameTuples(t, tupleSet([]int64{1, 2, 9}, []int64{1, 3, 9}), got)
}

// Chain query: R(a,b), S(b,c).
func TestChainJoin(t *testing.T) {
	r := col(t, []string{"a", "b"}, []int64{1, 10}, []int64{2, 20})
	s := col(t, []string{"b", "c"}, []int64{10, 100}, []int64{20, 200}, []int64{20, 201})

	d, err := triejoin.NewDriver(
		[]string{"a", "b", "c"},
		[][]string{{"a", "b"}, {"b", "c"}},
		[]cursor.TrieCursor{r, s},
	)
	require.NoError(t, err)
	got := collect(t, triejoin.Enumerate(d))
	requireSameTuples(t, tupleSet(
		[]int64{1, 10, 100},
		[]int64{2, 20, 200},
		[]int64{2, 20, 201},
	), got)
}

// Star query: three binary relations sharing a
// single center variable.
func TestStarJoin(t *testing.T) {
	r := col(t, []string{"center", "a"}, []int64{1, 11}, []int64{2, 21})
	s := col(t, []string{"center", "b"}, []int64{1, 12}, []int64{2, 22})
	tt := col(t, []string{"center", "c"}, []int64{1, 13}, []int64{2, 23})

	d, err := triejoin.NewDriver(
		[]string{"center", "a", "b", "c"},
		[][]string{{"center", "a"}, {"center", "b"}, {"center", "c"}},
		[]cursor.TrieCursor{r, s, tt},
	)
	require.NoError(t, err)
	got := collect(t, triejoin.Enumerate(d))
	requireSameTuples(t, tupleSet(
		[]int64{1, 11, 12, 13},
		[]int64{2, 21, 22, 23},
	), got)
}

// Existential self-join: R(a,b) join R(b,c).
func TestExistentialSelfJoin(t *testing.T) {
	rows := [][]int64{{1, 2}, {2, 3}, {3, 4}}
	left := col(t, []string{"a", "b"}, rows...)
	right := col(t, []string{"b", "c"}, rows...)

	d, err := triejoin.NewDriver(
		[]string{"a", "b", "c"},
		[][]string{{"a", "b"}, {"b", "c"}},
		[]cursor.TrieCursor{left, right},
	)
	require.NoError(t, err)
	got := collect(t, triejoin.Enumerate(d))
	requireSameTuples(t, tupleSet([]int64{1, 2, 3}, []int64{2, 3, 4}), got)
}

// Disjoint key ranges produce an empty join.
func TestEmptyJoin(t *testing.T) {
	r := col(t, []string{"a"}, []int64{1}, []int64{3}, []int64{5})
	s := col(t, []string{"a"}, []int64{2}, []int64{4}, []int64{6})

	d, err := triejoin.NewDriver([]string{"a"}, [][]string{{"a"}, {"a"}}, []cursor.TrieCursor{r, s})
	require.NoError(t, err)
	got := collect(t, triejoin.Enumerate(d))
	require.Empty(t, got)
}

// P6: a join across the two concrete trie layouts (one relation stored as
// a node-trie, the other a column-trie) must produce the same result as
// an all-column-trie join over the identical data.
func TestJoinAcrossLayouts(t *testing.T) {
	rRows := [][]int64{{1, 2}, {2, 3}}
	sRows := [][]int64{{2, 9}, {3, 9}}

	rCol := col(t, []string{"a", "b"}, rRows...)
	sCol := col(t, []string{"b", "c"}, sRows...)
	dCol, err := triejoin.NewDriver([]string{"a", "b", "c"}, [][]string{{"a", "b"}, {"b", "c"}}, []cursor.TrieCursor{rCol, sCol})
	require.NoError(t, err)
	want := collect(t, triejoin.Enumerate(dCol))

	rNode := node(t, []string{"a", "b"}, rRows...)
	sMixedCol := col(t, []string{"b", "c"}, sRows...)
	dMixed, err := triejoin.NewDriver([]string{"a", "b", "c"}, [][]string{{"a", "b"}, {"b", "c"}}, []cursor.TrieCursor{rNode, sMixedCol})
	require.NoError(t, err)
	got := collect(t, triejoin.Enumerate(dMixed))

	requireSameTuples(t, want, got)
}

// P7: two independent enumerations of the same driver configuration must
// produce identical, deterministic output.
func TestJoinDeterministic(t *testing.T) {
	build := func() *triejoin.Enumerator {
		r := col(t, []string{"a", "b"}, []int64{1, 2}, []int64{1, 3}, []int64{2, 5})
		s := col(t, []string{"b", "c"}, []int64{2, 9}, []int64{3, 9}, []int64{5, 9})
		d, err := triejoin.NewDriver([]string{"a", "b", "c"}, [][]string{{"a", "b"}, {"b", "c"}}, []cursor.TrieCursor{r, s})
		require.NoError(t, err)
		return triejoin.Enumerate(d)
	}
	first := collect(t, build())
	second := collect(t, build())
	requireSameTuples(t, first, second)
}

func TestNewDriverRejectsNonPrefixConsistentAttrs(t *testing.T) {
	r := col(t, []string{"b", "a"}, []int64{1, 2})
	_, err := triejoin.NewDriver([]string{"a", "b"}, [][]string{{"b", "a"}}, []cursor.TrieCursor{r})
	require.Error(t, err)
}

func TestNewDriverRejectsUnknownVariable(t *testing.T) {
	r := col(t, []string{"z"}, []int64{1})
	_, err := triejoin.NewDriver([]string{"a"}, [][]string{{"z"}}, []cursor.TrieCursor{r})
	require.Error(t, err)
}

func TestNewDriverRejectsUnboundVariable(t *testing.T) {
	r := col(t, []string{"a"}, []int64{1})
	_, err := triejoin.NewDriver([]string{"a", "b"}, [][]string{{"a"}}, []cursor.TrieCursor{r})
	require.Error(t, err)
}
