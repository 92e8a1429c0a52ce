package solve

import (
	"testing"

	"complexity/internal/complexity/expr"
	"complexity/internal/complexity/recurrence"
)

func n() *expr.Variable { return expr.NewVariable("n", expr.KindInputSize) }

// Mergesort: T(n) = 2T(n/2) + n -> Theta(n log n), Master case 2.
func TestMasterCase2Mergesort(t *testing.T) {
	rel := recurrence.DivideAndConquer(2, 2, expr.NewLinear(1, n()), n(), expr.NewConstant(1))
	res := Master(rel)
	if res.Method != MethodMaster || res.Case != 2 {
		t.Fatalf("expected Master case 2, got %+v", res)
	}
	if got := res.Solution.Render(); got != "O(n log n)" {
		t.Errorf("Solution.Render() = %v, want O(n log n)", got)
	}
}

// Binary search: T(n) = T(n/2) + O(1) -> Theta(log n), Master case 2.
func TestMasterCase2BinarySearch(t *testing.T) {
	rel := recurrence.DivideAndConquer(1, 2, expr.NewConstant(1), n(), expr.NewConstant(1))
	res := Master(rel)
	if res.Method != MethodMaster || res.Case != 2 {
		t.Fatalf("expected Master case 2, got %+v", res)
	}
}

// T(n) = 3T(n/2) + n^2 -> g dominates (d = log2(3) ~= 1.58 < 2), case 3.
func TestMasterCase3(t *testing.T) {
	rel := recurrence.DivideAndConquer(3, 2, expr.NewPolynomial(map[int]float64{2: 1}, n()), n(), expr.NewConstant(1))
	res := Master(rel)
	if res.Method != MethodMaster || res.Case != 3 {
		t.Fatalf("expected Master case 3, got %+v", res)
	}
}

func TestAkraBazziTwoUnequalSplits(t *testing.T) {
	// T(n) = T(n/3) + T(2n/3) + n, a classic non-Master-applicable shape.
	rel := recurrence.Relation{
		Terms: []recurrence.Term{
			{Coefficient: 1, DivisionFactor: 3},
			{Coefficient: 1, DivisionFactor: 1.5},
		},
		Var:      n(),
		Work:     expr.NewLinear(1, n()),
		BaseCase: expr.NewConstant(1),
	}
	res := AkraBazzi(rel)
	if res.Method != MethodAkraBazzi {
		t.Fatalf("expected Akra-Bazzi result, got %+v", res)
	}
	if res.Solution == nil {
		t.Fatalf("expected non-nil solution")
	}
}

// Fibonacci: T(n) = T(n-1) + T(n-2) -> dominant root is the golden ratio,
// so the solution should be an exponential growth term.
func TestLinearFibonacci(t *testing.T) {
	rel := recurrence.Fibonacci(expr.NewConstant(1), n(), expr.NewConstant(1))
	res := Linear(rel)
	if res.Method != MethodLinear {
		t.Fatalf("expected linear result, got %+v", res)
	}
	if _, ok := res.Solution.(*expr.Exponential); !ok {
		t.Errorf("expected exponential solution for Fibonacci, got %T (%v)", res.Solution, res.Solution.Render())
	}
}

func TestSolveDispatchesToMaster(t *testing.T) {
	rel := recurrence.DivideAndConquer(2, 2, expr.NewLinear(1, n()), n(), expr.NewConstant(1))
	res := Solve(rel)
	if res.Method != MethodMaster {
		t.Errorf("Solve() picked %v, want master", res.Method)
	}
}

func TestMasterRejectsMultiTermRelation(t *testing.T) {
	rel := recurrence.Relation{
		Terms: []recurrence.Term{
			{Coefficient: 1, DivisionFactor: 3},
			{Coefficient: 1, DivisionFactor: 1.5},
		},
		Var:  n(),
		Work: expr.NewLinear(1, n()),
	}
	res := Master(rel)
	if res.Method != MethodNotApplicable {
		t.Errorf("expected Master to decline a two-term relation, got %+v", res)
	}
}
