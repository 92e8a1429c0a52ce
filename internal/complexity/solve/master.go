package solve

import (
	"math"

	"complexity/internal/complexity/classify"
	"complexity/internal/complexity/expr"
	"complexity/internal/complexity/recurrence"
)

const epsilon = 1e-9

// Master applies the Master Theorem to a relation with exactly one
// division term (spec §4.6). Falls back to NotApplicable, leaving the
// caller to try Akra-Bazzi, when the relation isn't well-formed or g(n)
// doesn't land cleanly in one of the three cases.
func Master(r recurrence.Relation) Result {
	if !r.WellFormedForMaster() {
		return notApplicable(
			"relation does not have exactly one term with a >= 1 and b > 1",
			[]string{"term count", "coefficient", "division factor"},
			[]string{"try Akra-Bazzi"},
		)
	}
	t := r.Terms[0]
	a, b := t.Coefficient, t.DivisionFactor
	d := math.Log(a) / math.Log(b)
	g := r.Work

	gClass := classify.Classify(g, r.Var)

	// Case 2 with k = 0 and d = 0: a constant g is Theta(n^0 * log^0 n).
	if gClass.Form == classify.FormConstant && math.Abs(d) < epsilon {
		return Result{Method: MethodMaster, Case: 2, Solution: expr.NewLogarithmic(1, 2, r.Var), Confidence: 1.0}
	}

	// Case 2: g = Theta(n^d * log^k n), k >= 0.
	if gClass.Form == classify.FormPolynomial || gClass.Form == classify.FormPolyLog || gClass.Form == classify.FormLogarithmic {
		polyDeg, logExp, ok := classify.TryExtractPolyLogForm(g, r.Var)
		if ok && math.Abs(polyDeg-d) < epsilon && logExp >= 0 {
			sol := expr.NewPolyLog(d, logExp+1, r.Var)
			return Result{Method: MethodMaster, Case: 2, Solution: sol, Confidence: 1.0}
		}
	}

	// Case 1: g = O(n^(d-eps)).
	if classify.IsBoundedByPolynomial(g, r.Var, d-epsilon) {
		sol := buildPolyLogSolution(d, 0, r.Var)
		return Result{Method: MethodMaster, Case: 1, Solution: sol, Confidence: 1.0}
	}

	// Case 3: g = Omega(n^(d+eps)) and regularity holds.
	if classify.DominatesPolynomial(g, r.Var, d+epsilon) {
		confidence := 1.0
		if !regularityHolds(a, b, g, r.Var) {
			confidence = 0.6 // "regularity unverified"
		}
		return Result{Method: MethodMaster, Case: 3, Solution: classify.Simplify(g), Confidence: confidence}
	}

	return notApplicable(
		"g(n) does not land in Master Theorem case 1, 2, or 3",
		[]string{"asymptotic comparison against n^d"},
		[]string{"try Akra-Bazzi", "numeric unrolling"},
	)
}

// buildPolyLogSolution renders Theta(n^d * log^logExp n). d = log_b(a) is
// frequently non-integer (e.g. T(n)=3T(n/2)+n has d=log2(3)~=1.585), so this
// always goes through PolyLog/Simplify rather than truncating d to an int
// Polynomial degree -- Simplify only collapses to Polynomial when d is
// actually integral.
func buildPolyLogSolution(d, logExp float64, v *expr.Variable) expr.Expr {
	return classify.Simplify(expr.NewPolyLog(d, logExp, v))
}

// regularityHolds checks a*g(n/b) <= c*g(n) for some c<1 structurally:
// true whenever g is a polynomial or polylog form, since then
// a*g(n/b) = a*(1/b)^deg * g(n), and the Master Theorem's case-3
// precondition a < b^d is exactly the condition guaranteeing such a c<1
// exists for these closed forms (spec §4.6 "verified structurally for
// polynomial and polylog g(n)").
func regularityHolds(a, b float64, g expr.Expr, v *expr.Variable) bool {
	polyDeg, _, ok := classify.TryExtractPolyLogForm(g, v)
	if !ok {
		return false
	}
	return a < math.Pow(b, polyDeg)
}
