package classify

import (
	"math"

	"complexity/internal/complexity/expr"
)

// Simplify applies the algebraic identities from the expression algebra
// (spec §4.1 equivalence rules) plus the dominant-summand extraction from
// Plus/Max chains; a Multiply keeps both factors (its identities applied
// and polylog factors coalesced) rather than losing one to dominant-term
// extraction (spec §4.2). It is
// idempotent: Simplify(Simplify(e)) renders identically to Simplify(e).
func Simplify(e expr.Expr) expr.Expr {
	switch x := e.(type) {
	case *expr.Polynomial:
		return simplifyPolynomial(x)
	case *expr.PolyLog:
		return simplifyPolyLog(x)
	case *expr.LogOf:
		return expr.NewLogOf(Simplify(x.Inner), x.Base)
	case *expr.Power:
		return simplifyPower(x)
	case *expr.BinaryOp:
		return simplifyBinaryOp(x)
	case *expr.Amortized:
		return expr.NewAmortized(Simplify(x.AmortizedCost), Simplify(x.WorstCase), x.Method, x.PotentialFnName)
	case *expr.Memory:
		return simplifyMemory(x)
	case *expr.Parallel:
		return expr.NewParallel(Simplify(x.Inner), simplifyOrNil(x.Expected), simplifyOrNil(x.Worst))
	case *expr.Probabilistic:
		return expr.NewProbabilistic(Simplify(x.Inner), simplifyOrNil(x.Expected), simplifyOrNil(x.Worst))
	default:
		return e
	}
}

func simplifyOrNil(e expr.Expr) expr.Expr {
	if e == nil {
		return nil
	}
	return Simplify(e)
}

// simplifyPolynomial collapses `Polynomial of degree 1` to `Linear`, and
// `Linear(1,v)` further to `Variable(v)` (spec §4.1 normalization).
func simplifyPolynomial(p *expr.Polynomial) expr.Expr {
	switch p.Degree() {
	case 0:
		c := p.Coefficients[0]
		return expr.NewConstant(c)
	case 1:
		coef := p.Coefficients[1]
		if coef == 1 {
			return p.Var
		}
		return expr.NewLinear(coef, p.Var)
	default:
		return p
	}
}

// simplifyPolyLog collapses the degenerate PolyLog shapes into their
// equivalence-class representative (spec §3 "Equivalence classes must
// compare equal under Classify"). The Polynomial collapse only applies
// when PolyDegree is integral: a fractional degree (e.g. an Akra-Bazzi
// critical exponent) has no Polynomial representative and must stay a
// PolyLog/Power-shaped O(n^p), never get truncated to O(n^floor(p)).
func simplifyPolyLog(p *expr.PolyLog) expr.Expr {
	switch {
	case p.LogExponent == 0 && p.PolyDegree == math.Trunc(p.PolyDegree):
		return simplifyPolynomial(expr.NewPolynomial(map[int]float64{int(p.PolyDegree): 1}, p.Var))
	case p.LogExponent == 0:
		return p
	case p.PolyDegree == 0:
		if p.LogExponent == 1 {
			return expr.NewLogarithmic(1, 2, p.Var)
		}
		return p
	default:
		return p
	}
}

func simplifyPower(p *expr.Power) expr.Expr {
	base := Simplify(p.Base)
	if p.Exponent == 1 {
		return base
	}
	return expr.NewPower(base, p.Exponent)
}

func simplifyMemory(m *expr.Memory) expr.Expr {
	allocs := make([]expr.Allocation, len(m.Allocations))
	for i, a := range m.Allocations {
		allocs[i] = expr.Allocation{Site: a.Site, Size: simplifyOrNil(a.Size)}
	}
	flags := make([]expr.MemoryFlag, 0, len(m.Flags))
	for f := range m.Flags {
		flags = append(flags, f)
	}
	return expr.NewMemory(Simplify(m.Total), simplifyOrNil(m.Stack), simplifyOrNil(m.Heap), simplifyOrNil(m.Auxiliary), flags, allocs)
}

// simplifyBinaryOp applies x+0=x, x*1=x, x*0=0, max(x,x)=x/min(x,x)=x,
// coalesces polylog factors under Multiply, and for Plus/Max extracts the
// asymptotic dominant summand; Multiply is preserved as-is once its
// identities are applied, per spec §4.2.
func simplifyBinaryOp(b *expr.BinaryOp) expr.Expr {
	l := Simplify(b.Left)
	r := Simplify(b.Right)

	switch b.Op {
	case expr.OpPlus:
		if isZero(l) {
			return r
		}
		if isZero(r) {
			return l
		}
		return pickDominant(l, r, false)
	case expr.OpMultiply:
		if isZero(l) || isZero(r) {
			return expr.NewConstant(0)
		}
		if isOne(l) {
			return r
		}
		if isOne(r) {
			return l
		}
		return coalescePolyLogProduct(l, r)
	case expr.OpMax:
		if expr.Equal(l, r) {
			return l
		}
		return pickDominant(l, r, false)
	case expr.OpMin:
		if expr.Equal(l, r) {
			return l
		}
		return pickDominant(l, r, true)
	}
	return expr.NewBinaryOp(b.Op, l, r)
}

func isZero(e expr.Expr) bool {
	c, ok := e.(*expr.Constant)
	return ok && c.Value == 0
}

func isOne(e expr.Expr) bool {
	c, ok := e.(*expr.Constant)
	return ok && c.Value == 1
}

func varOf(exprs ...expr.Expr) *expr.Variable {
	for _, e := range exprs {
		for name := range e.FreeVariables() {
			return expr.NewVariable(name, expr.KindInputSize)
		}
	}
	return nil
}

// pickDominant returns the asymptotically larger operand (or smaller, if
// wantMin), breaking ties by preserving the first operand (spec §4.2
// "Ordering. Ties preserve the first operand.").
func pickDominant(l, r expr.Expr, wantMin bool) expr.Expr {
	v := varOf(l, r)
	cl := Classify(l, v)
	cr := Classify(r, v)
	cmp := Compare(cl, cr)
	if wantMin {
		if cmp <= 0 {
			return l
		}
		return r
	}
	if cmp >= 0 {
		return l
	}
	return r
}

// coalescePolyLogProduct merges `n^a * log^j * n^b * log^k` shaped products
// into `n^(a+b) * log^(j+k)` (spec §4.2), recognizing operands that are
// themselves polynomial/log/polylog classified expressions over the same
// variable; anything else is left as a plain Multiply.
func coalescePolyLogProduct(l, r expr.Expr) expr.Expr {
	v := varOf(l, r)
	if v == nil {
		return expr.Multiply(l, r)
	}
	cl := Classify(l, v)
	cr := Classify(r, v)
	if !isPolyLogFamily(cl.Form) || !isPolyLogFamily(cr.Form) {
		return expr.Multiply(l, r)
	}
	polyDeg := polyDegreeOf(cl) + polyDegreeOf(cr)
	logExp := logExponentOf(cl) + logExponentOf(cr)
	coef := cl.Coefficient * cr.Coefficient
	if coef == 0 {
		coef = 1
	}
	switch {
	case logExp == 0 && polyDeg == math.Trunc(polyDeg):
		return Simplify(expr.NewPolynomial(map[int]float64{int(polyDeg): coef}, v))
	case logExp == 0:
		return expr.NewPolyLog(polyDeg, 0, v)
	case polyDeg == 0 && logExp == 1:
		return expr.NewLogarithmic(coef, 2, v)
	default:
		return expr.NewPolyLog(polyDeg, logExp, v)
	}
}

func isPolyLogFamily(f Form) bool {
	return f == FormConstant || f == FormPolynomial || f == FormLogarithmic || f == FormPolyLog
}
