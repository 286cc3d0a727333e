package datalog

// Plan describes everything triejoin.NewDriver needs to run q: the
// global variable ordering, the relation name bound to each body
// predicate, and each predicate's own variable projection.
//
// Variables orders variables by first occurrence across the body, which
// is not guaranteed to be a prefix-consistent projection for every
// predicate when a rule reuses variables out of position (e.g.
// "p(Y, X) :- ..., q(Y, X), r(X, Y)."); callers whose driver
// construction then fails on that account should rewrite the rule so
// each predicate's variables appear in a consistent relative order, the
// same constraint a hand-authored query already has to satisfy.
type Plan struct {
	Vars     []string
	RelNames []string
	RelVars  [][]string
}

// Plan derives a Plan from q, ready to hand to triejoin.NewDriver
// alongside one opened cursor per RelNames entry.
func (q Query) Plan() Plan {
	return Plan{
		Vars:     q.Variables(),
		RelNames: q.RelNames(),
		RelVars:  q.RelVars(),
	}
}
