// Package recurrence turns detected recursion patterns into the
// normalized Recurrence Relation shape the solver consumes (C5): a list
// of (a_i, b_i) division-factor pairs, a non-recursive work expression,
// and a base case.
package recurrence

import "complexity/internal/complexity/expr"

// Term is one (coefficient, divisionFactor) pair, where divisionFactor =
// 1/scaleFactor (spec §3 "Recurrence Relation").
type Term struct {
	Coefficient    float64
	DivisionFactor float64 // b_i such that the sub-call argument is ~ n/b_i
	Subtractive    bool    // true when the reduction is n-k rather than n/b
	Reduction      float64 // the k in n-k, meaningful only when Subtractive
}

// Relation is the normalized recurrence: T(n) = sum(a_i * T(n/b_i or n-k)) + g(n).
type Relation struct {
	Terms    []Term
	Var      *expr.Variable
	Work     expr.Expr
	BaseCase expr.Expr
}

// FromExpr normalizes a C1 Recurrence expression into a Relation,
// inverting each term's ScaleFactor into a division factor.
func FromExpr(r *expr.Recurrence) Relation {
	terms := make([]Term, len(r.Terms))
	for i, t := range r.Terms {
		if t.ScaleFactor <= 0 || t.ScaleFactor > 1 {
			terms[i] = Term{Coefficient: t.Coefficient, Subtractive: true, Reduction: 1}
			continue
		}
		if t.ScaleFactor == 1 {
			// Non-reducing scale of exactly 1 is only meaningful for a
			// subtractive reduction (n-k); the argument expression itself
			// carries the actual k, which FromExpr does not have access to
			// here, so it is left as a unit reduction and refined by the
			// extractor before reaching the solver.
			terms[i] = Term{Coefficient: t.Coefficient, Subtractive: true, Reduction: 1}
			continue
		}
		terms[i] = Term{Coefficient: t.Coefficient, DivisionFactor: 1 / t.ScaleFactor}
	}
	return Relation{Terms: terms, Var: r.Var, Work: r.Work, BaseCase: r.BaseCase}
}

// DivideAndConquer builds the canonical T(n) = a*T(n/b) + g(n) relation
// (spec's named-factory convenience for the common single-term case).
func DivideAndConquer(a, b float64, work expr.Expr, v *expr.Variable, base expr.Expr) Relation {
	return Relation{
		Terms:    []Term{{Coefficient: a, DivisionFactor: b}},
		Var:      v,
		Work:     work,
		BaseCase: base,
	}
}

// Fibonacci builds T(n) = T(n-1) + T(n-2) + g(n).
func Fibonacci(work expr.Expr, v *expr.Variable, base expr.Expr) Relation {
	return Relation{
		Terms: []Term{
			{Coefficient: 1, Subtractive: true, Reduction: 1},
			{Coefficient: 1, Subtractive: true, Reduction: 2},
		},
		Var:      v,
		Work:     work,
		BaseCase: base,
	}
}

// Summation builds T(n) = T(n-1) + g(n), the shape behind simple linear
// accumulation recursions.
func Summation(work expr.Expr, v *expr.Variable, base expr.Expr) Relation {
	return Relation{
		Terms:    []Term{{Coefficient: 1, Subtractive: true, Reduction: 1}},
		Var:      v,
		Work:     work,
		BaseCase: base,
	}
}

// WellFormedForMaster reports whether the relation has exactly one term
// with a >= 1 and a valid division factor b > 1 (spec §3).
func (r Relation) WellFormedForMaster() bool {
	if len(r.Terms) != 1 {
		return false
	}
	t := r.Terms[0]
	return t.Coefficient >= 1 && !t.Subtractive && t.DivisionFactor > 1
}

// WellFormedForAkraBazzi reports whether every term is a valid divide
// reduction with positive coefficient (spec §3).
func (r Relation) WellFormedForAkraBazzi() bool {
	if len(r.Terms) == 0 {
		return false
	}
	for _, t := range r.Terms {
		if t.Subtractive || t.Coefficient <= 0 || t.DivisionFactor <= 1 {
			return false
		}
	}
	return true
}

// IsLinearSubtractive reports whether every term is a subtractive (n-k)
// reduction, the shape the companion-matrix/characteristic-polynomial
// solver handles.
func (r Relation) IsLinearSubtractive() bool {
	if len(r.Terms) == 0 {
		return false
	}
	for _, t := range r.Terms {
		if !t.Subtractive {
			return false
		}
	}
	return true
}
