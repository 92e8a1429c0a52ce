package classify

import (
	"testing"

	"complexity/internal/complexity/expr"
)

func n() *expr.Variable { return expr.NewVariable("n", expr.KindInputSize) }

func TestClassifyBasicForms(t *testing.T) {
	tests := []struct {
		name string
		e    expr.Expr
		want Form
	}{
		{"constant", expr.NewConstant(5), FormConstant},
		{"variable", n(), FormPolynomial},
		{"quadratic", expr.NewPolynomial(map[int]float64{2: 1}, n()), FormPolynomial},
		{"log", expr.NewLogarithmic(1, 2, n()), FormLogarithmic},
		{"nlogn", expr.NewPolyLog(1, 1, n()), FormPolyLog},
		{"exponential", expr.NewExponential(2, n()), FormExponential},
		{"factorial", expr.NewFactorial(n()), FormFactorial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.e, n())
			if got.Form != tt.want {
				t.Errorf("Classify(%v) form = %v, want %v", tt.name, got.Form, tt.want)
			}
		})
	}
}

// PolyLog with logExponent=0 must be equivalent to Polynomial, and
// polyDegree=0 with logExponent>0 must be equivalent to Logarithmic (spec
// §3 equivalence-class invariant).
func TestPolyLogDegenerateFormsCollapse(t *testing.T) {
	asPoly := expr.NewPolyLog(2, 0, n())
	quadratic := expr.NewPolynomial(map[int]float64{2: 1}, n())
	if Classify(asPoly, n()).Form != FormPolynomial {
		t.Errorf("PolyLog(2, 0) should classify as Polynomial")
	}
	if Compare(Classify(asPoly, n()), Classify(quadratic, n())) != 0 {
		t.Errorf("PolyLog(2,0) should compare equal to Polynomial(2)")
	}

	asLog := expr.NewPolyLog(0, 3, n())
	if Classify(asLog, n()).Form != FormLogarithmic {
		t.Errorf("PolyLog(0, 3) should classify as Logarithmic")
	}
}

func TestClassifySumTakesDominantSummand(t *testing.T) {
	sum := expr.Plus(n(), expr.NewPolynomial(map[int]float64{2: 1}, n()))
	got := Classify(sum, n())
	if got.Form != FormPolynomial || got.PrimaryParam != 2 {
		t.Errorf("Classify(n + n^2) = %+v, want Polynomial degree 2", got)
	}
}

// A plain Polynomial must outrank a PolyLog of lower degree: n^2 dominates
// n*log n even though n*log n is the PolyLog-shaped operand.
func TestCompareDegreeBeatsPolyLogBand(t *testing.T) {
	quadratic := Classify(expr.NewPolynomial(map[int]float64{2: 1}, n()), n())
	nLogN := Classify(expr.NewPolyLog(1, 1, n()), n())
	if Compare(quadratic, nLogN) <= 0 {
		t.Errorf("expected n^2 to compare greater than n*log n, got Compare=%d", Compare(quadratic, nLogN))
	}
	sum := expr.Plus(expr.NewPolynomial(map[int]float64{2: 1}, n()), expr.NewPolyLog(1, 1, n()))
	if got := Simplify(sum); got.Render() != "O(n²)" {
		t.Errorf("Simplify(n^2 + n*log n) = %q, want O(n²) as the dominant summand", got.Render())
	}
}

func TestClassifyProductAddsPolynomialDegrees(t *testing.T) {
	product := expr.Multiply(n(), n())
	got := Classify(product, n())
	if got.Form != FormPolynomial || got.PrimaryParam != 2 {
		t.Errorf("Classify(n * n) = %+v, want Polynomial degree 2", got)
	}
}

func TestClassifyProductAddsLogExponents(t *testing.T) {
	product := expr.Multiply(
		expr.NewPolyLog(1, 1, n()),
		expr.NewLogarithmic(1, 2, n()),
	)
	got := Classify(product, n())
	if got.Form != FormPolyLog || got.PrimaryParam != 1 || got.LogExponent != 2 {
		t.Errorf("Classify((n log n) * log n) = %+v, want PolyLog(1, 2)", got)
	}
}

func TestCompareOrdering(t *testing.T) {
	constant := Classify(expr.NewConstant(1), n())
	logarithmic := Classify(expr.NewLogarithmic(1, 2, n()), n())
	linear := Classify(n(), n())
	polylog := Classify(expr.NewPolyLog(1, 1, n()), n())
	exponential := Classify(expr.NewExponential(2, n()), n())
	factorial := Classify(expr.NewFactorial(n()), n())

	chain := []Classification{constant, logarithmic, linear, polylog, exponential, factorial}
	for i := 0; i < len(chain)-1; i++ {
		if Compare(chain[i], chain[i+1]) >= 0 {
			t.Errorf("expected element %d to be strictly less than element %d", i, i+1)
		}
	}
}

func TestIsBoundedAndDominatesPolynomial(t *testing.T) {
	quadratic := expr.NewPolynomial(map[int]float64{2: 1}, n())
	if !IsBoundedByPolynomial(quadratic, n(), 2) {
		t.Errorf("n^2 should be bounded by polynomial degree 2")
	}
	if IsBoundedByPolynomial(quadratic, n(), 1) {
		t.Errorf("n^2 should not be bounded by polynomial degree 1")
	}
	if !DominatesPolynomial(quadratic, n(), 1) {
		t.Errorf("n^2 should dominate polynomial degree 1")
	}
	exponential := expr.NewExponential(2, n())
	if !DominatesPolynomial(exponential, n(), 1000) {
		t.Errorf("2^n should dominate any polynomial degree")
	}
}

func TestTryExtractPolynomialDegree(t *testing.T) {
	cubic := expr.NewPolynomial(map[int]float64{3: 1}, n())
	d, ok := TryExtractPolynomialDegree(cubic, n())
	if !ok || d != 3 {
		t.Errorf("TryExtractPolynomialDegree(n^3) = %v, %v; want 3, true", d, ok)
	}
	_, ok = TryExtractPolynomialDegree(expr.NewLogarithmic(1, 2, n()), n())
	if ok {
		t.Errorf("expected log n to fail polynomial degree extraction")
	}
}

func TestSimplifyIdentities(t *testing.T) {
	if got := Simplify(expr.Multiply(n(), expr.NewConstant(1))); !expr.Equal(got, n()) {
		t.Errorf("Simplify(n * 1) = %v, want n", got.Render())
	}
	if got := Simplify(expr.Plus(n(), expr.NewConstant(0))); !expr.Equal(got, n()) {
		t.Errorf("Simplify(n + 0) = %v, want n", got.Render())
	}
	if got := Simplify(expr.Multiply(n(), expr.NewConstant(0))); got.Render() != "O(1)" {
		t.Errorf("Simplify(n * 0) = %v, want O(1)", got.Render())
	}
	if got := Simplify(expr.Max(n(), n())); !expr.Equal(got, n()) {
		t.Errorf("Simplify(max(n,n)) = %v, want n", got.Render())
	}
}

func TestSimplifyDegreeOneCollapsesToVariable(t *testing.T) {
	poly := expr.NewPolynomial(map[int]float64{1: 1}, n())
	got := Simplify(poly)
	if _, ok := got.(*expr.Variable); !ok {
		t.Errorf("Simplify(Polynomial degree 1, coef 1) = %T, want *Variable", got)
	}
}

func TestSimplifyPlusExtractsDominantSummand(t *testing.T) {
	sum := expr.Plus(n(), expr.NewPolynomial(map[int]float64{2: 1}, n()))
	got := Simplify(sum)
	if got.Render() != "O(n²)" {
		t.Errorf("Simplify(n + n^2) = %v, want O(n²)", got.Render())
	}
}

func TestSimplifyIsIdempotent(t *testing.T) {
	e := expr.Plus(expr.Multiply(n(), expr.NewConstant(1)), expr.NewPolynomial(map[int]float64{2: 1}, n()))
	once := Simplify(e)
	twice := Simplify(once)
	if once.Render() != twice.Render() {
		t.Errorf("Simplify not idempotent: %v vs %v", once.Render(), twice.Render())
	}
}

func TestSimplifyCoalescesPolyLogProduct(t *testing.T) {
	product := expr.Multiply(n(), expr.NewLogarithmic(1, 2, n()))
	got := Simplify(product)
	if got.Render() != "O(n log n)" {
		t.Errorf("Simplify(n * log n) = %v, want O(n log n)", got.Render())
	}
}

func TestTryExtractPolyLogForm(t *testing.T) {
	nlogn := expr.NewPolyLog(1, 1, n())
	p, l, ok := TryExtractPolyLogForm(nlogn, n())
	if !ok || p != 1 || l != 1 {
		t.Errorf("TryExtractPolyLogForm(n log n) = %v, %v, %v; want 1, 1, true", p, l, ok)
	}
}
