// Package compose implements the bottom-up aggregation rules that
// combine per-statement complexities into a method-level bound (C7):
// sequential (sum, dominant summand survives), nested (multiply), and
// branching (max). Invocation resolution against the call graph and the
// standard-library table happens one layer up, in internal/analyzer,
// since it needs the cache and the table as collaborators this package
// must not import (it would invert the dependency graph in spec §2:
// C1 <- C2 <- {C3, C5, C6, C7}).
package compose

import (
	"complexity/internal/complexity/classify"
	"complexity/internal/complexity/expr"
)

// Sequential composes the complexities of a block of statements executed
// one after another: asymptotically the max of the summands, implemented
// as Plus followed by simplifier dominant-summand extraction (spec §4.5).
// Constants absorb (an empty or all-constant block collapses to O(1)).
func Sequential(parts []expr.Expr) expr.Expr {
	if len(parts) == 0 {
		return expr.NewConstant(1)
	}
	total := parts[0]
	for _, p := range parts[1:] {
		total = expr.Plus(total, p)
	}
	return classify.Simplify(total)
}

// Nested composes a loop's iteration count with its body's complexity by
// multiplication, respecting the algebra's identities: Variable*Variable
// = Polynomial(2), Variable*Logarithmic = PolyLog(1,1), PolyLog(a,j)*
// Variable = PolyLog(a+1,j), etc. — all handled by classify.Simplify's
// product-coalescing rule (spec §4.5).
func Nested(iterationCount, body expr.Expr) expr.Expr {
	return classify.Simplify(expr.Multiply(iterationCount, body))
}

// Branching composes if/else or switch arms as their Max (spec §4.5):
// branches with an unknown taken-frequency are all considered taken, so
// callers should pass every syntactically reachable arm, not just a
// most-likely one.
func Branching(arms []expr.Expr) expr.Expr {
	if len(arms) == 0 {
		return expr.NewConstant(1)
	}
	total := arms[0]
	for _, a := range arms[1:] {
		total = expr.Max(total, a)
	}
	return classify.Simplify(total)
}

// ConservativeFallback implements the §7 error-handling policy for a
// solver returning NotApplicable: `max(n · g(n), g(n))`.
func ConservativeFallback(n, g expr.Expr) expr.Expr {
	return classify.Simplify(expr.Max(expr.Multiply(n, g), g))
}
