package compose

import (
	"testing"

	"complexity/internal/complexity/expr"
)

func n() *expr.Variable { return expr.NewVariable("n", expr.KindInputSize) }

func TestSequentialTakesDominantSummand(t *testing.T) {
	parts := []expr.Expr{
		expr.NewConstant(1),
		n(),
		expr.NewPolynomial(map[int]float64{2: 1}, n()),
	}
	got := Sequential(parts)
	if got.Render() != "O(n²)" {
		t.Errorf("Sequential() = %v, want O(n²)", got.Render())
	}
}

func TestNestedLoopMultipliesToQuadratic(t *testing.T) {
	got := Nested(n(), n())
	if got.Render() != "O(n²)" {
		t.Errorf("Nested(n, n) = %v, want O(n²)", got.Render())
	}
}

func TestNestedLoopWithLogBodyIsPolyLog(t *testing.T) {
	got := Nested(n(), expr.NewLogarithmic(1, 2, n()))
	if got.Render() != "O(n log n)" {
		t.Errorf("Nested(n, log n) = %v, want O(n log n)", got.Render())
	}
}

func TestBranchingTakesMax(t *testing.T) {
	arms := []expr.Expr{n(), expr.NewPolynomial(map[int]float64{2: 1}, n())}
	got := Branching(arms)
	if got.Render() != "O(n²)" {
		t.Errorf("Branching() = %v, want O(n²)", got.Render())
	}
}

func TestConservativeFallback(t *testing.T) {
	got := ConservativeFallback(n(), expr.NewConstant(1))
	if got.Render() != "O(n)" {
		t.Errorf("ConservativeFallback(n, 1) = %v, want O(n)", got.Render())
	}
}
