package datalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kermit-go/kermit/datalog"
)

func TestParseSimple(t *testing.T) {
	q, err := datalog.Parse("P(X) :- Q(X).")
	require.NoError(t, err)
	require.Equal(t, "P", q.Head.Name)
	require.Len(t, q.Head.Terms, 1)
	require.Equal(t, datalog.Var, q.Head.Terms[0].Kind)
	require.Equal(t, "X", q.Head.Terms[0].Name)
	require.Len(t, q.Body, 1)
	require.Equal(t, "Q", q.Body[0].Name)
}

func TestParseMultipleBodyPredicates(t *testing.T) {
	q, err := datalog.Parse("ancestor(X, Z) :- parent(X, Y), parent(Y, Z).")
	require.NoError(t, err)
	require.Equal(t, "ancestor", q.Head.Name)
	require.Len(t, q.Head.Terms, 2)
	require.Len(t, q.Body, 2)
	require.Equal(t, "parent", q.Body[0].Name)
	require.Equal(t, "parent", q.Body[1].Name)
}

func TestParseWithAtoms(t *testing.T) {
	q, err := datalog.Parse("likes(alice, X):- food(X), healthy(X).")
	require.NoError(t, err)
	require.Equal(t, datalog.Atom, q.Head.Terms[0].Kind)
	require.Equal(t, "alice", q.Head.Terms[0].Name)
	require.Equal(t, datalog.Var, q.Head.Terms[1].Kind)
}

func TestParseWithWhitespace(t *testing.T) {
	q, err := datalog.Parse("  P(X,Y)  :-  Q(X),R(Y)  .  ")
	require.NoError(t, err)
	require.Equal(t, "P", q.Head.Name)
	require.Len(t, q.Head.Terms, 2)
	require.Len(t, q.Body, 2)
}

func TestParseMinimalWhitespace(t *testing.T) {
	q, err := datalog.Parse("P(X,Y):-Q(X),R(Y).")
	require.NoError(t, err)
	require.Equal(t, "P", q.Head.Name)
}

func TestParseWithPlaceholder(t *testing.T) {
	q, err := datalog.Parse("result(X, _) :- relation(X, _).")
	require.NoError(t, err)
	require.Equal(t, datalog.Var, q.Head.Terms[0].Kind)
	require.Equal(t, datalog.Placeholder, q.Head.Terms[1].Kind)
	require.Equal(t, datalog.Placeholder, q.Body[0].Terms[1].Kind)
}

func TestParseInvalidNoDot(t *testing.T) {
	_, err := datalog.Parse("P(X) :- Q(X)")
	require.Error(t, err)
}

func TestParseInvalidNoArrow(t *testing.T) {
	_, err := datalog.Parse("P(X) Q(X).")
	require.Error(t, err)
}

func TestParseInvalidEmptyBody(t *testing.T) {
	_, err := datalog.Parse("P(X) :- .")
	require.Error(t, err)
}

func TestQueryVariablesAndRelVars(t *testing.T) {
	q, err := datalog.Parse("path(X, Z) :- edge(X, Y), edge(Y, Z).")
	require.NoError(t, err)
	require.Equal(t, []string{"X", "Y", "Z"}, q.Variables())
	require.Equal(t, [][]string{{"X", "Y"}, {"Y", "Z"}}, q.RelVars())
	require.Equal(t, []string{"edge", "edge"}, q.RelNames())
}
