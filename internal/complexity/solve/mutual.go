package solve

import (
	"complexity/internal/complexity/expr"
	"complexity/internal/complexity/recurrence"

	"modernc.org/mathutil"
)

// MutualComponent is one method's contribution to a strongly connected
// component of mutual recursion (spec §4.6 "Mutual Recurrence").
type MutualComponent struct {
	Name             string
	NonRecursiveWork expr.Expr
	CycleReductions  []recurrence.Term // the term(s) whose callee is also in the SCC
}

// Mutual composes the relations of every method in a call-graph SCC into
// a single combined recurrence and solves it via the standard path
// (Master, then Akra-Bazzi, then linear). Scale factors combine by
// multiplication across the cycle for divide reductions, and their
// reduction steps combine by GCD for subtractive reductions — the period
// at which the whole cycle returns to a comparable argument size.
func Mutual(components []MutualComponent, v *expr.Variable) (result Result, combined recurrence.Relation) {
	if len(components) == 0 {
		return notApplicable("empty strongly connected component", nil, nil), recurrence.Relation{}
	}

	var work expr.Expr = expr.NewConstant(0)
	combinedDivision := 1.0
	haveDivision := false
	reductions := make([]int64, 0)
	coefficient := 0.0

	for _, c := range components {
		if c.NonRecursiveWork != nil {
			work = expr.Plus(work, c.NonRecursiveWork)
		}
		for _, t := range c.CycleReductions {
			coefficient += t.Coefficient
			if t.Subtractive {
				reductions = append(reductions, int64(maxInt(1, int(t.Reduction))))
			} else if t.DivisionFactor > 0 {
				combinedDivision *= t.DivisionFactor
				haveDivision = true
			}
		}
	}

	var rel recurrence.Relation
	switch {
	case haveDivision:
		rel = recurrence.DivideAndConquer(coefficient, combinedDivision, work, v, expr.NewConstant(1))
	case len(reductions) > 0:
		period := reductions[0]
		for _, k := range reductions[1:] {
			period = mathutil.GCD(period, k)
		}
		rel = recurrence.Relation{
			Terms:    []recurrence.Term{{Coefficient: coefficient, Subtractive: true, Reduction: float64(period)}},
			Var:      v,
			Work:     work,
			BaseCase: expr.NewConstant(1),
		}
	default:
		return notApplicable("mutual recurrence has no recognizable reduction shape", nil, []string{"numeric unrolling"}), recurrence.Relation{}
	}

	return Solve(rel), rel
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
