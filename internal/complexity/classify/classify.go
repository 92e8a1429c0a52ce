// Package classify implements the expression classifier and simplifier
// (C2): normalizing expressions to a canonical shape, extracting the
// dominant term, deciding polynomial degree and polylog form, and
// comparing two expressions asymptotically.
package classify

import (
	"complexity/internal/complexity/expr"
)

// Form is the coarse asymptotic family an expression classifies into.
type Form string

const (
	FormConstant    Form = "Constant"
	FormPolynomial  Form = "Polynomial"
	FormLogarithmic Form = "Logarithmic"
	FormPolyLog     Form = "PolyLog"
	FormExponential Form = "Exponential"
	FormFactorial   Form = "Factorial"
	FormUnknown     Form = "Unknown"
)

// Classification is the result of Classify: a form tag plus the
// parameters needed to compare two classifications asymptotically.
type Classification struct {
	Form            Form
	PrimaryParam    float64 // polynomial degree, or exponential base
	LogExponent     float64
	Coefficient     float64
	Var             *expr.Variable
}

// Classify reduces an expression to its dominant asymptotic form with
// respect to variable v. Sums and maxes reduce to the dominant summand's
// classification; products add polynomial degrees and log exponents.
func Classify(e expr.Expr, v *expr.Variable) Classification {
	switch x := e.(type) {
	case *expr.Constant:
		return Classification{Form: FormConstant, Coefficient: x.Value}
	case *expr.Variable:
		return Classification{Form: FormPolynomial, PrimaryParam: 1, Coefficient: 1, Var: x}
	case *expr.Linear:
		return Classification{Form: FormPolynomial, PrimaryParam: 1, Coefficient: x.Coefficient, Var: x.Var}
	case *expr.Polynomial:
		return Classification{Form: FormPolynomial, PrimaryParam: float64(x.Degree()), Coefficient: leadingCoef(x), Var: x.Var}
	case *expr.Logarithmic:
		return Classification{Form: FormLogarithmic, LogExponent: 1, Coefficient: x.Coefficient, Var: x.Var}
	case *expr.LogOf:
		inner := Classify(x.Inner, v)
		return Classification{Form: FormLogarithmic, LogExponent: 1, Coefficient: 1, Var: inner.Var}
	case *expr.PolyLog:
		if x.LogExponent == 0 {
			return Classification{Form: FormPolynomial, PrimaryParam: x.PolyDegree, Coefficient: 1, Var: x.Var}
		}
		if x.PolyDegree == 0 {
			return Classification{Form: FormLogarithmic, LogExponent: x.LogExponent, Coefficient: 1, Var: x.Var}
		}
		return Classification{Form: FormPolyLog, PrimaryParam: x.PolyDegree, LogExponent: x.LogExponent, Coefficient: 1, Var: x.Var}
	case *expr.Exponential:
		return Classification{Form: FormExponential, PrimaryParam: x.Base, Coefficient: 1, Var: x.Var}
	case *expr.Factorial:
		return Classification{Form: FormFactorial, Var: x.Var}
	case *expr.Power:
		base := Classify(x.Base, v)
		switch base.Form {
		case FormPolynomial:
			return Classification{Form: FormPolynomial, PrimaryParam: base.PrimaryParam * x.Exponent, Coefficient: 1, Var: base.Var}
		case FormLogarithmic:
			return Classification{Form: FormLogarithmic, LogExponent: base.LogExponent * x.Exponent, Coefficient: 1, Var: base.Var}
		default:
			return base
		}
	case *expr.BinaryOp:
		return classifyBinaryOp(x, v)
	case *expr.Amortized:
		return Classify(x.AmortizedCost, v)
	case *expr.Memory:
		return Classify(x.Total, v)
	case *expr.Parallel:
		if x.Expected != nil {
			return Classify(x.Expected, v)
		}
		return Classify(x.Inner, v)
	case *expr.Probabilistic:
		if x.Expected != nil {
			return Classify(x.Expected, v)
		}
		return Classify(x.Inner, v)
	case *expr.SymbolicIntegral:
		return Classify(x.AsymptoticBound, v)
	default:
		return Classification{Form: FormUnknown}
	}
}

func leadingCoef(p *expr.Polynomial) float64 {
	if c, ok := p.Coefficients[p.Degree()]; ok {
		return c
	}
	return 1
}

func classifyBinaryOp(b *expr.BinaryOp, v *expr.Variable) Classification {
	l := Classify(b.Left, v)
	r := Classify(b.Right, v)
	switch b.Op {
	case expr.OpPlus, expr.OpMax:
		if Compare(l, r) >= 0 {
			return l
		}
		return r
	case expr.OpMin:
		if Compare(l, r) <= 0 {
			return l
		}
		return r
	case expr.OpMultiply:
		return multiplyClassifications(l, r)
	}
	return Classification{Form: FormUnknown}
}

// multiplyClassifications implements the product rule: polynomial degrees
// add, log exponents add, and an exponential or factorial factor absorbs
// the other operand (spec §4.2 "Products add exponents").
func multiplyClassifications(l, r Classification) Classification {
	if l.Form == FormFactorial || r.Form == FormFactorial {
		if l.Form == FormFactorial {
			return l
		}
		return r
	}
	if l.Form == FormExponential || r.Form == FormExponential {
		if l.Form == FormExponential {
			return l
		}
		return r
	}
	if l.Form == FormConstant {
		r.Coefficient *= l.Coefficient
		return r
	}
	if r.Form == FormConstant {
		l.Coefficient *= r.Coefficient
		return l
	}
	out := Classification{Coefficient: l.Coefficient * r.Coefficient}
	out.Var = l.Var
	if out.Var == nil {
		out.Var = r.Var
	}
	polyDeg := polyDegreeOf(l) + polyDegreeOf(r)
	logExp := logExponentOf(l) + logExponentOf(r)
	switch {
	case logExp == 0:
		out.Form = FormPolynomial
		out.PrimaryParam = polyDeg
	case polyDeg == 0:
		out.Form = FormLogarithmic
		out.LogExponent = logExp
	default:
		out.Form = FormPolyLog
		out.PrimaryParam = polyDeg
		out.LogExponent = logExp
	}
	return out
}

func polyDegreeOf(c Classification) float64 {
	switch c.Form {
	case FormPolynomial, FormPolyLog:
		return c.PrimaryParam
	}
	return 0
}

func logExponentOf(c Classification) float64 {
	switch c.Form {
	case FormLogarithmic, FormPolyLog:
		return c.LogExponent
	}
	return 0
}

// familyRank groups Constant/Logarithmic/Polynomial/PolyLog into one
// "polynomial family" band (spec §4.2 "Ordering": these four all compare
// by effective polynomial degree, then log exponent — a PolyLog is not
// categorically above every Polynomial, e.g. n² dominates n*log n even
// though the latter is a PolyLog and the former a plain Polynomial).
// Exponential, Factorial, and Unknown stay in their own bands above it.
func familyRank(f Form) int {
	switch f {
	case FormConstant, FormLogarithmic, FormPolynomial, FormPolyLog:
		return 0
	case FormExponential:
		return 1
	case FormFactorial:
		return 2
	default: // FormUnknown: incomparable/maximal, never silently loses a max/min reduction.
		return 3
	}
}

// polyFamilyDegreeLogExp reduces any polynomial-family classification to
// the (effective degree, log exponent) pair Compare ranks on, so
// Constant/Logarithmic/Polynomial/PolyLog are all comparable on the same
// two-key order regardless of which concrete Form produced them.
func polyFamilyDegreeLogExp(c Classification) (degree, logExp float64) {
	switch c.Form {
	case FormConstant:
		return 0, 0
	case FormLogarithmic:
		return 0, c.LogExponent
	case FormPolynomial:
		return c.PrimaryParam, 0
	case FormPolyLog:
		return c.PrimaryParam, c.LogExponent
	}
	return 0, 0
}

// Compare returns -1, 0, or 1 according to whether a is asymptotically
// smaller than, equivalent to, or larger than b. Within the polynomial
// family, degree is compared first and log exponent only breaks ties
// between equal degrees, so n² beats n*log n (degree 2 > degree 1) even
// though n*log n is a PolyLog and n² a plain Polynomial.
func Compare(a, b Classification) int {
	ra, rb := familyRank(a.Form), familyRank(b.Form)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case 0: // polynomial family
		da, ja := polyFamilyDegreeLogExp(a)
		db, jb := polyFamilyDegreeLogExp(b)
		if c := cmpFloat(da, db); c != 0 {
			return c
		}
		return cmpFloat(ja, jb)
	case 1: // Exponential
		return cmpFloat(a.PrimaryParam, b.PrimaryParam)
	default: // Factorial, Unknown
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// TryExtractPolynomialDegree succeeds when e classifies as a pure
// polynomial (no log factor), returning the degree.
func TryExtractPolynomialDegree(e expr.Expr, v *expr.Variable) (degree float64, ok bool) {
	c := Classify(e, v)
	if c.Form != FormPolynomial {
		return 0, false
	}
	return c.PrimaryParam, true
}

// TryExtractPolyLogForm succeeds when e classifies as Polynomial,
// Logarithmic, or PolyLog, returning (polyDegree, logExponent).
func TryExtractPolyLogForm(e expr.Expr, v *expr.Variable) (polyDegree, logExponent float64, ok bool) {
	c := Classify(e, v)
	switch c.Form {
	case FormPolynomial:
		return c.PrimaryParam, 0, true
	case FormLogarithmic:
		return 0, c.LogExponent, true
	case FormPolyLog:
		return c.PrimaryParam, c.LogExponent, true
	default:
		return 0, 0, false
	}
}

// IsBoundedByPolynomial reports whether e grows no faster than n^d.
func IsBoundedByPolynomial(e expr.Expr, v *expr.Variable, d float64) bool {
	c := Classify(e, v)
	switch c.Form {
	case FormConstant, FormLogarithmic:
		return true
	case FormPolynomial:
		return c.PrimaryParam <= d
	case FormPolyLog:
		return c.PrimaryParam < d
	default:
		return false
	}
}

// DominatesPolynomial reports whether e grows strictly faster than n^d.
func DominatesPolynomial(e expr.Expr, v *expr.Variable, d float64) bool {
	c := Classify(e, v)
	switch c.Form {
	case FormExponential, FormFactorial:
		return true
	case FormPolynomial:
		return c.PrimaryParam > d
	case FormPolyLog:
		return c.PrimaryParam >= d
	default:
		return false
	}
}
