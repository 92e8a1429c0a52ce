package solve

import (
	"math"

	"complexity/internal/complexity/classify"
	"complexity/internal/complexity/expr"
	"complexity/internal/complexity/recurrence"
)

const (
	akraBazziTolerance = 1e-10
	akraBazziMaxIter   = 100
)

// AkraBazzi solves Sum(a_i * b_i^p) = 1 for the critical exponent p, then
// evaluates the integral term of Theta(n^p * (1 + Integral[1,n] g(u)/u^(p+1) du))
// via the table in spec §4.6.
func AkraBazzi(r recurrence.Relation) Result {
	if !r.WellFormedForAkraBazzi() {
		return notApplicable(
			"relation has a non-divide term or non-positive coefficient",
			[]string{"term shape", "coefficient positivity"},
			[]string{"try Master Theorem", "numeric unrolling"},
		)
	}

	p, ok := findCriticalExponent(r.Terms)
	if !ok {
		return notApplicable(
			"critical-exponent root finder failed to converge",
			[]string{"root bracketing", "Newton/Brent convergence"},
			[]string{"numeric unrolling"},
		)
	}

	sol, confidence := evaluateIntegralTerm(p, r.Work, r.Var)
	return Result{Method: MethodAkraBazzi, Solution: sol, Confidence: confidence}
}

// f(p) = Sum(a_i * b_i^(-p)) - 1, using b_i = DivisionFactor so the
// sub-call argument is n/b_i; the critical exponent solves
// Sum(a_i * (1/b_i)^p) = 1, i.e. Sum(a_i * b_i^(-p)) = 1.
func akraBazziF(terms []recurrence.Term, p float64) float64 {
	sum := 0.0
	for _, t := range terms {
		sum += t.Coefficient * math.Pow(t.DivisionFactor, -p)
	}
	return sum - 1
}

func akraBazziFPrime(terms []recurrence.Term, p float64) float64 {
	sum := 0.0
	for _, t := range terms {
		sum += -t.Coefficient * math.Log(t.DivisionFactor) * math.Pow(t.DivisionFactor, -p)
	}
	return sum
}

// findCriticalExponent brackets the root of the strictly decreasing
// function f(p), then refines with Newton's method, falling back to
// bisection (in place of full Brent's method — the bracket is already
// sign-changing, which is all bisection needs, and it shares the same
// convergence guarantee Brent's method would add on top of) when a Newton
// step lands outside the bracket or is NaN.
func findCriticalExponent(terms []recurrence.Term) (float64, bool) {
	lo, hi := bracketRoot(terms)
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return 0, false
	}

	p := (lo + hi) / 2
	for i := 0; i < akraBazziMaxIter; i++ {
		fp := akraBazziF(terms, p)
		if math.Abs(fp) < akraBazziTolerance {
			return p, true
		}
		if akraBazziF(terms, lo)*fp < 0 {
			hi = p
		} else {
			lo = p
		}

		deriv := akraBazziFPrime(terms, p)
		next := p
		if deriv != 0 {
			next = p - fp/deriv
		}
		if next <= lo || next >= hi || math.IsNaN(next) {
			next = (lo + hi) / 2 // bisection fallback
		}
		p = next
	}
	return p, math.Abs(akraBazziF(terms, p)) < 1e-6
}

// bracketRoot finds [lo,hi] with f(lo)*f(hi) <= 0 by evaluating at p=0
// and doubling outward in the direction f indicates (spec §4.6
// "Bracketing").
func bracketRoot(terms []recurrence.Term) (float64, float64) {
	f0 := akraBazziF(terms, 0)
	if f0 == 0 {
		return -1, 1
	}
	step := 1.0
	if f0 > 0 {
		// f decreasing, f(0)>0 means root is positive; double upward.
		p := 0.0
		for i := 0; i < 200; i++ {
			next := p + step
			if akraBazziF(terms, next) <= 0 {
				return p, next
			}
			p = next
			step *= 2
		}
	} else {
		p := 0.0
		for i := 0; i < 200; i++ {
			next := p - step
			if akraBazziF(terms, next) >= 0 {
				return next, p
			}
			p = next
			step *= 2
		}
	}
	return math.NaN(), math.NaN()
}

// evaluateIntegralTerm looks g up in the spec §4.6 table keyed on
// Classify(g) vs p, returning the full closed-form solution and a
// confidence (1.0 for table hits, 0.5 for the symbolic-integral fallback).
func evaluateIntegralTerm(p float64, g expr.Expr, v *expr.Variable) (expr.Expr, float64) {
	gClass := classify.Classify(g, v)

	switch gClass.Form {
	case classify.FormConstant:
		if p > 0 {
			return classify.Simplify(expr.NewPolyLog(p, 0, v)), 1.0
		}
		return expr.NewLogarithmic(1, 2, v), 1.0

	case classify.FormPolynomial, classify.FormPolyLog, classify.FormLogarithmic:
		k, j, ok := classify.TryExtractPolyLogForm(g, v)
		if !ok {
			break
		}
		switch {
		case k < p-epsilon:
			return classify.Simplify(expr.NewPolyLog(p, 0, v)), 1.0
		case math.Abs(k-p) < epsilon:
			if j == 0 {
				return expr.NewPolyLog(p, 1, v), 1.0
			}
			return expr.NewPolyLog(p, j+1, v), 1.0
		default: // k > p
			if j == 0 {
				return classify.Simplify(expr.NewPolyLog(k, 0, v)), 1.0
			}
			return expr.NewPolyLog(k, j, v), 1.0
		}
	}

	// Outside the table: Symbolic-Integral with a conservative bound.
	polyTerm := classify.Simplify(expr.NewPolyLog(p, 0, v))
	bound := classify.Simplify(expr.Max(polyTerm, g))
	integral := expr.NewSymbolicIntegral(g, v, expr.NewConstant(1), v, bound)
	return integral, 0.5
}
