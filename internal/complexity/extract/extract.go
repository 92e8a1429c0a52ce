// Package extract implements the pattern extractor (C3): infers
// per-loop iteration bounds, detects recursive calls and their
// argument-reduction shape, and recognizes amortized and parallel idioms
// from an abstract syntax tree plus semantic lookup.
package extract

import (
	"complexity/internal/complexity/expr"
	"complexity/internal/semantic"
)

// Pattern tags the shape a loop bound was inferred to follow (spec §3
// "Loop Bound").
type Pattern string

const (
	PatternLinear      Pattern = "Linear"
	PatternLogarithmic Pattern = "Logarithmic"
	PatternQuadratic   Pattern = "Quadratic"
	PatternUnknown     Pattern = "Unknown"
)

// LoopBound is the normalized shape of one loop's iteration behavior.
type LoopBound struct {
	Lower   expr.Expr
	Upper   expr.Expr
	Step    expr.Expr
	Pattern Pattern
	Exact   bool
}

// IterationCount derives the expression C1 algebra term for how many
// times the loop body runs (spec §3 "IterationCount is derived").
func (b LoopBound) IterationCount(v *expr.Variable) expr.Expr {
	switch b.Pattern {
	case PatternLinear:
		if b.Upper != nil {
			return b.Upper
		}
		return v
	case PatternLogarithmic:
		return expr.NewLogarithmic(1, 2, v)
	case PatternQuadratic:
		return expr.NewPolynomial(map[int]float64{2: 1}, v)
	default:
		if b.Upper != nil {
			return b.Upper
		}
		return v
	}
}

// Context carries the shared, read-only state a single method's
// extraction pass needs: the semantic model for callee resolution, the
// canonical variable this method's dominant parameter maps to, and the
// containing function's own symbol (for direct-recursion detection).
type Context struct {
	Model    *semantic.Model
	Var      *expr.Variable
	Function *semantic.Symbol
}

// RecursiveCall is one detected self (or mutual) invocation and its
// argument-reduction classification (spec §4.3 "Recursion detection").
type RecursiveCall struct {
	Callee      string
	Reduction   ReductionKind
	ScaleFactor float64 // meaningful when Reduction == ReductionScaled
	Subtracted  float64 // meaningful when Reduction == ReductionDecreasing
}

type ReductionKind string

const (
	ReductionNonReducing ReductionKind = "non-reducing" // same variable passed through, flagged as a problem
	ReductionScaled      ReductionKind = "scaled"        // n/k or n>>k
	ReductionDecreasing  ReductionKind = "decreasing"     // n-k
	ReductionUnknown     ReductionKind = "unknown"
)
