package expr

import (
	"testing"
)

func n() *Variable { return NewVariable("n", KindInputSize) }

func TestFreeVariablesBasic(t *testing.T) {
	tests := []struct {
		name string
		e    Expr
		want []string
	}{
		{"constant", NewConstant(1), nil},
		{"variable", n(), []string{"n"}},
		{"linear", NewLinear(3, n()), []string{"n"}},
		{"polynomial", NewPolynomial(map[int]float64{2: 1}, n()), []string{"n"}},
		{"binary", Plus(n(), NewConstant(1)), []string{"n"}},
		{"power of constant base", NewPower(NewConstant(2), 3), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.e.FreeVariables()
			if len(got) != len(tt.want) {
				t.Fatalf("FreeVariables() = %v, want %v", got, tt.want)
			}
			for _, w := range tt.want {
				if !got[w] {
					t.Errorf("missing free variable %q in %v", w, got)
				}
			}
		})
	}
}

func TestSymbolicIntegralExcludesBoundVariable(t *testing.T) {
	x := NewVariable("x", KindGeneric)
	integral := NewSymbolicIntegral(
		Multiply(n(), x),
		x,
		NewConstant(1),
		n(),
		n(),
	)
	fv := integral.FreeVariables()
	if fv["x"] {
		t.Errorf("bound variable x leaked into free variables: %v", fv)
	}
	if !fv["n"] {
		t.Errorf("expected n free, got %v", fv)
	}
}

// Substitute should be the identity when the target variable does not
// occur free in the expression (spec invariant 1).
func TestSubstituteIdentityWhenNotFree(t *testing.T) {
	m := NewVariable("m", KindInputSize)
	e := NewLinear(2, m)
	got := e.Substitute("n", NewConstant(5))
	if !Equal(got, e) {
		t.Errorf("Substitute on non-free variable changed expression: got %v want %v", got, e)
	}
}

func TestSubstituteVariableForVariable(t *testing.T) {
	m := NewVariable("m", KindInputSize)
	got := n().Substitute("n", m)
	if !Equal(got, m) {
		t.Errorf("Substitute(n, m) = %v, want %v", got, m)
	}
}

func TestSubstitutePolynomialIntoConstant(t *testing.T) {
	poly := NewPolynomial(map[int]float64{2: 1, 0: 3}, n())
	got := poly.Substitute("n", NewConstant(4))
	val, ok := got.Evaluate(map[string]float64{})
	if !ok {
		t.Fatalf("expected closed evaluation after substituting constant, got not-ok")
	}
	if val != 19 {
		t.Errorf("substituted polynomial evaluated to %v, want 19", val)
	}
}

func TestEvaluateLinear(t *testing.T) {
	e := NewLinear(3, n())
	val, ok := e.Evaluate(map[string]float64{"n": 10})
	if !ok || val != 30 {
		t.Errorf("Evaluate = %v, %v; want 30, true", val, ok)
	}
}

func TestEvaluateMissingVariableIsUndefined(t *testing.T) {
	e := NewLinear(3, n())
	_, ok := e.Evaluate(map[string]float64{})
	if ok {
		t.Errorf("expected Evaluate to be undefined for missing free variable")
	}
}

func TestEvaluatePolynomialDegree(t *testing.T) {
	poly := NewPolynomial(map[int]float64{2: 1}, n())
	val, ok := poly.Evaluate(map[string]float64{"n": 5})
	if !ok || val != 25 {
		t.Errorf("Evaluate = %v, %v; want 25, true", val, ok)
	}
}

func TestRecurrenceUnrollBoundedByN(t *testing.T) {
	// T(n) = 2T(n/2) + n, T(1) = 1 — mergesort shape.
	rec := NewRecurrence(
		[]RecurrenceTerm{{Coefficient: 2, Argument: NewLinear(0.5, n()), ScaleFactor: 0.5}},
		n(),
		NewLinear(1, n()),
		NewConstant(1),
	)
	val, ok := rec.Evaluate(map[string]float64{"n": 8})
	if !ok {
		t.Fatalf("expected unrolled recurrence to evaluate for small n")
	}
	if val <= 0 {
		t.Errorf("expected positive cost, got %v", val)
	}
}

func TestRecurrenceUnrollUndefinedPastLimit(t *testing.T) {
	rec := NewRecurrence(
		[]RecurrenceTerm{{Coefficient: 1, Argument: NewLinear(1, n()), ScaleFactor: 1}},
		n(),
		NewConstant(1),
		NewConstant(1),
	)
	_, ok := rec.Evaluate(map[string]float64{"n": 1000})
	if ok {
		t.Errorf("expected recurrence evaluation to decline n > maxUnrollN")
	}
}

func TestRenderCommonShapes(t *testing.T) {
	tests := []struct {
		name string
		e    Expr
		want string
	}{
		{"constant", NewConstant(1), "O(1)"},
		{"linear", NewLinear(1, n()), "O(n)"},
		{"quadratic", NewPolynomial(map[int]float64{2: 1}, n()), "O(n²)"},
		{"cubic", NewPolynomial(map[int]float64{3: 1}, n()), "O(n³)"},
		{"log", NewLogarithmic(1, 2, n()), "O(log n)"},
		{"nlogn", NewPolyLog(1, 1, n()), "O(n log n)"},
		{"exponential base2", NewExponential(2, n()), "O(2^n)"},
		{"factorial", NewFactorial(n()), "O(n!)"},
		{"plus", Plus(NewConstant(1), n()), "O(1 + n)"},
		{"max", Max(n(), NewPolynomial(map[int]float64{2: 1}, n())), "O(max(n, n²))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEqualIsCommutativeForBinaryOp(t *testing.T) {
	a := Plus(NewConstant(1), n())
	b := Plus(n(), NewConstant(1))
	if !Equal(a, b) {
		t.Errorf("expected Plus(1, n) to equal Plus(n, 1)")
	}
}

func TestEqualDistinguishesDegree(t *testing.T) {
	sq := NewPolynomial(map[int]float64{2: 1}, n())
	cube := NewPolynomial(map[int]float64{3: 1}, n())
	if Equal(sq, cube) {
		t.Errorf("expected distinct-degree polynomials to be unequal")
	}
}

func TestAcceptDispatchesToVisitor(t *testing.T) {
	var seen []string
	v := &recordingVisitor{BaseVisitor: BaseVisitor{}, record: func(name string) { seen = append(seen, name) }}
	exprs := []Expr{NewConstant(1), n(), NewFactorial(n())}
	for _, e := range exprs {
		e.Accept(v)
	}
	if len(seen) != len(exprs) {
		t.Fatalf("expected %d visits, got %d (%v)", len(exprs), len(seen), seen)
	}
}

type recordingVisitor struct {
	BaseVisitor
	record func(string)
}

func (r *recordingVisitor) VisitConstant(e *Constant) any  { r.record("constant"); return nil }
func (r *recordingVisitor) VisitVariable(e *Variable) any  { r.record("variable"); return nil }
func (r *recordingVisitor) VisitFactorial(e *Factorial) any { r.record("factorial"); return nil }
