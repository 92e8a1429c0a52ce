package extract

import (
	"testing"

	"complexity/internal/complexity/classify"
	"complexity/internal/complexity/expr"
	"complexity/internal/parser"
	"complexity/internal/semantic"
)

func n() *expr.Variable { return expr.NewVariable("n", expr.KindInputSize) }

func numLit(f float64) *parser.Literal { return &parser.Literal{Value: f} }

func TestInferForBoundLogarithmicOnShift(t *testing.T) {
	f := &parser.ForStmt{
		Update: &parser.Assign{Name: "i", Value: &parser.Binary{
			Left: &parser.Variable{Name: "i"}, Operator: ">>", Right: numLit(1),
		}},
	}
	got := InferForBound(f, Context{Var: n()})
	if got.Pattern != PatternLogarithmic {
		t.Errorf("InferForBound() pattern = %v, want Logarithmic", got.Pattern)
	}
}

func TestInferForBoundLinearOnSimpleCondition(t *testing.T) {
	f := &parser.ForStmt{
		Condition: &parser.Binary{
			Left: &parser.Variable{Name: "i"}, Operator: "<", Right: &parser.Variable{Name: "n"},
		},
		Update: &parser.Assign{Name: "i", Value: &parser.Binary{
			Left: &parser.Variable{Name: "i"}, Operator: "+", Right: numLit(1),
		}},
	}
	got := InferForBound(f, Context{Var: n()})
	if got.Pattern != PatternLinear {
		t.Errorf("InferForBound() pattern = %v, want Linear", got.Pattern)
	}
}

func TestInferForInBoundIsLinear(t *testing.T) {
	f := &parser.ForInStmt{Variable: "x", Collection: &parser.Variable{Name: "items"}}
	got := InferForInBound(f, Context{Var: n()})
	if got.Pattern != PatternLinear {
		t.Errorf("InferForInBound() pattern = %v, want Linear", got.Pattern)
	}
}

func TestInferWhileBoundHalvingIsLogarithmic(t *testing.T) {
	w := &parser.WhileStmt{
		Condition: &parser.Binary{Left: &parser.Variable{Name: "i"}, Operator: "<", Right: &parser.Variable{Name: "n"}},
		Body: []parser.Stmt{
			&parser.AssignmentStmt{Name: "i", Value: &parser.Binary{
				Left: &parser.Variable{Name: "i"}, Operator: "*", Right: numLit(2),
			}},
		},
	}
	got := InferWhileBound(w, Context{Var: n()})
	if got.Pattern != PatternLogarithmic {
		t.Errorf("InferWhileBound() pattern = %v, want Logarithmic", got.Pattern)
	}
}

func TestDetectRecursiveCallsScaled(t *testing.T) {
	fn := &semantic.Symbol{Name: "fib", Params: []string{"n"}}
	model := semantic.NewModel([]parser.Stmt{
		&parser.FunctionStmt{Name: "fib", Params: []string{"n"}},
	})
	body := []parser.Stmt{
		&parser.ExpressionStmt{Expr: &parser.CallExpr{
			Callee: &parser.Variable{Name: "fib"},
			Args: []parser.Expr{&parser.Binary{
				Left: &parser.Variable{Name: "n"}, Operator: "/", Right: numLit(2),
			}},
		}},
	}
	calls := DetectRecursiveCalls(Context{Model: model, Function: fn}, body)
	if len(calls) != 1 {
		t.Fatalf("DetectRecursiveCalls() = %v, want 1 call", calls)
	}
	if calls[0].Reduction != ReductionScaled || calls[0].ScaleFactor != 2 {
		t.Errorf("got %+v, want scaled by 2", calls[0])
	}
}

func TestDetectRecursiveCallsDecreasing(t *testing.T) {
	fn := &semantic.Symbol{Name: "fact", Params: []string{"n"}}
	model := semantic.NewModel([]parser.Stmt{
		&parser.FunctionStmt{Name: "fact", Params: []string{"n"}},
	})
	body := []parser.Stmt{
		&parser.ExpressionStmt{Expr: &parser.CallExpr{
			Callee: &parser.Variable{Name: "fact"},
			Args: []parser.Expr{&parser.Binary{
				Left: &parser.Variable{Name: "n"}, Operator: "-", Right: numLit(1),
			}},
		}},
	}
	calls := DetectRecursiveCalls(Context{Model: model, Function: fn}, body)
	if len(calls) != 1 || calls[0].Reduction != ReductionDecreasing || calls[0].Subtracted != 1 {
		t.Fatalf("got %+v, want decreasing by 1", calls)
	}
}

func TestDetectRecursiveCallsNonReducingFlagged(t *testing.T) {
	fn := &semantic.Symbol{Name: "loopy", Params: []string{"n"}}
	model := semantic.NewModel([]parser.Stmt{
		&parser.FunctionStmt{Name: "loopy", Params: []string{"n"}},
	})
	body := []parser.Stmt{
		&parser.ExpressionStmt{Expr: &parser.CallExpr{
			Callee: &parser.Variable{Name: "loopy"},
			Args:   []parser.Expr{&parser.Variable{Name: "n"}},
		}},
	}
	calls := DetectRecursiveCalls(Context{Model: model, Function: fn}, body)
	if len(calls) != 1 || calls[0].Reduction != ReductionNonReducing {
		t.Fatalf("got %+v, want non-reducing", calls)
	}
}

func TestDetectAmortizedDynamicArrayDoubling(t *testing.T) {
	body := []parser.Stmt{
		&parser.IfStmt{
			Condition: &parser.Binary{Left: &parser.Variable{Name: "size"}, Operator: "==", Right: &parser.Variable{Name: "capacity"}},
			Then: []parser.Stmt{
				&parser.AssignmentStmt{Name: "capacity", Value: &parser.Binary{
					Left: &parser.Variable{Name: "capacity"}, Operator: "*", Right: numLit(2),
				}},
			},
		},
	}
	amortized, ok := DetectAmortized(body, n())
	if !ok {
		t.Fatal("DetectAmortized() did not match dynamic-array doubling")
	}
	if amortized.Method != expr.MethodAccounting {
		t.Errorf("Method = %v, want accounting", amortized.Method)
	}
}

func TestDetectAmortizedNoMatch(t *testing.T) {
	body := []parser.Stmt{
		&parser.ExpressionStmt{Expr: &parser.Literal{Value: 1.0}},
	}
	if _, ok := DetectAmortized(body, n()); ok {
		t.Error("DetectAmortized() matched a body with no recognized idiom")
	}
}

func TestDetectSpawnAwait(t *testing.T) {
	body := []parser.Stmt{
		&parser.ExpressionStmt{Expr: &parser.AwaitExpr{Value: &parser.SpawnExpr{
			Call: &parser.CallExpr{Callee: &parser.Variable{Name: "work"}},
		}}},
	}
	if !DetectSpawn(body) {
		t.Error("DetectSpawn() = false, want true")
	}
}

func TestDetectProbabilisticRNGCall(t *testing.T) {
	body := []parser.Stmt{
		&parser.ExpressionStmt{Expr: &parser.CallExpr{Callee: &parser.Variable{Name: "random"}}},
	}
	if !DetectProbabilistic(body) {
		t.Error("DetectProbabilistic() = false, want true")
	}
}

func TestWrapParallelNoSpawnPassesThrough(t *testing.T) {
	cost := n()
	got := WrapParallel(nil, cost)
	if got != expr.Expr(cost) {
		t.Errorf("WrapParallel() with no spawn should pass cost through unchanged")
	}
}

// A numeric-literal loop bound must contribute a Constant(1) multiplier,
// not Constant(0): 1*body = body (preserving a nested O(n) body), where
// 0*body would collapse any wrapped work down to O(1).
func TestInferForBoundNumericLiteralPreservesNestedBody(t *testing.T) {
	f := &parser.ForStmt{
		Condition: &parser.Binary{
			Left: &parser.Variable{Name: "i"}, Operator: "<", Right: numLit(3),
		},
	}
	got := InferForBound(f, Context{Var: n()})
	if got.Pattern != PatternLinear {
		t.Fatalf("InferForBound() pattern = %v, want Linear", got.Pattern)
	}
	iterations := got.IterationCount(n())
	if iterations.Render() != "O(1)" {
		t.Fatalf("IterationCount() = %v, want O(1)", iterations.Render())
	}
	nested := expr.Multiply(iterations, n())
	if got, want := classify.Simplify(nested).Render(), "O(n)"; got != want {
		t.Errorf("Simplify(iterationCount * n) = %v, want %v (body complexity must survive)", got, want)
	}
}

func TestIterationCountLogarithmic(t *testing.T) {
	b := LoopBound{Pattern: PatternLogarithmic}
	got := b.IterationCount(n())
	if got.Render() != "O(log n)" {
		t.Errorf("IterationCount() = %v, want O(log n)", got.Render())
	}
}
