package analyzer

import (
	"context"
	"testing"

	"complexity/internal/parser"
	"complexity/internal/semantic"
)

func numLit(f float64) *parser.Literal { return &parser.Literal{Value: f} }

func resolve(t *testing.T, model *semantic.Model, name string) *semantic.Symbol {
	t.Helper()
	sym, ok := model.Resolve(name)
	if !ok {
		t.Fatalf("model.Resolve(%q) failed", name)
	}
	return sym
}

func linearLoop(name string, body []parser.Stmt) *parser.FunctionStmt {
	return &parser.FunctionStmt{
		Name:   name,
		Params: []string{"n"},
		Body: []parser.Stmt{
			&parser.ForStmt{
				Init: &parser.LetStmt{Name: "i", Expr: numLit(0)},
				Condition: &parser.Binary{
					Left: &parser.Variable{Name: "i"}, Operator: "<", Right: &parser.Variable{Name: "n"},
				},
				Update: &parser.Assign{Name: "i", Value: &parser.Binary{
					Left: &parser.Variable{Name: "i"}, Operator: "+", Right: numLit(1),
				}},
				Body: body,
			},
		},
	}
}

func TestAnalyzeDocumentLinearLoopIsLinear(t *testing.T) {
	fn := linearLoop("sumAll", []parser.Stmt{
		&parser.ExpressionStmt{Expr: &parser.Literal{Value: 0.0}},
	})
	program := []parser.Stmt{fn}
	sess := NewSession(DefaultOptions())
	doc := sess.AnalyzeDocument(context.Background(), "t.sn", program, nil, nil)
	if len(doc.Methods) != 1 {
		t.Fatalf("AnalyzeDocument() returned %d methods, want 1", len(doc.Methods))
	}
	got := doc.Methods[0]
	if got.TimeComplexity != "O(n)" {
		t.Errorf("TimeComplexity = %q, want %q", got.TimeComplexity, "O(n)")
	}
	if got.Confidence <= 0 {
		t.Errorf("Confidence = %v, want > 0", got.Confidence)
	}
}

func TestAnalyzeMethodNestedLoopIsQuadratic(t *testing.T) {
	fn := linearLoop("pairs", []parser.Stmt{
		&parser.ForStmt{
			Init: &parser.LetStmt{Name: "j", Expr: numLit(0)},
			Condition: &parser.Binary{
				Left: &parser.Variable{Name: "j"}, Operator: "<", Right: &parser.Variable{Name: "n"},
			},
			Update: &parser.Assign{Name: "j", Value: &parser.Binary{
				Left: &parser.Variable{Name: "j"}, Operator: "+", Right: numLit(1),
			}},
		},
	})
	model := semantic.NewModel([]parser.Stmt{fn})
	sym := resolve(t, model, "pairs")

	sess := NewSession(DefaultOptions())
	res := sess.AnalyzeMethod(context.Background(), "t.sn", sym, model, "")
	if res.TimeComplexity != "O(n²)" {
		t.Errorf("TimeComplexity = %q, want O(n²)", res.TimeComplexity)
	}
}

func TestAnalyzeMethodDivideAndConquerRecursionSolves(t *testing.T) {
	fn := &parser.FunctionStmt{
		Name:   "mergeSort",
		Params: []string{"n"},
		Body: []parser.Stmt{
			&parser.ExpressionStmt{Expr: &parser.CallExpr{
				Callee: &parser.Variable{Name: "mergeSort"},
				Args: []parser.Expr{&parser.Binary{
					Left: &parser.Variable{Name: "n"}, Operator: "/", Right: numLit(2),
				}},
			}},
			&parser.ExpressionStmt{Expr: &parser.CallExpr{
				Callee: &parser.Variable{Name: "mergeSort"},
				Args: []parser.Expr{&parser.Binary{
					Left: &parser.Variable{Name: "n"}, Operator: "/", Right: numLit(2),
				}},
			}},
			&parser.ForStmt{
				Condition: &parser.Binary{Left: &parser.Variable{Name: "i"}, Operator: "<", Right: &parser.Variable{Name: "n"}},
				Update: &parser.Assign{Name: "i", Value: &parser.Binary{
					Left: &parser.Variable{Name: "i"}, Operator: "+", Right: numLit(1),
				}},
			},
		},
	}
	model := semantic.NewModel([]parser.Stmt{fn})
	sym := resolve(t, model, "mergeSort")

	sess := NewSession(DefaultOptions())
	res := sess.AnalyzeMethod(context.Background(), "t.sn", sym, model, "")
	if res.Confidence <= 0 {
		t.Fatalf("expected a non-zero confidence, got %v (tooltip=%q)", res.Confidence, res.Tooltip)
	}
}

func TestAnalyzeMethodMutualRecursionSharesResult(t *testing.T) {
	isEven := &parser.FunctionStmt{
		Name:   "isEven",
		Params: []string{"n"},
		Body: []parser.Stmt{
			&parser.ReturnStmt{Value: &parser.CallExpr{
				Callee: &parser.Variable{Name: "isOdd"},
				Args: []parser.Expr{&parser.Binary{
					Left: &parser.Variable{Name: "n"}, Operator: "-", Right: numLit(1),
				}},
			}},
		},
	}
	isOdd := &parser.FunctionStmt{
		Name:   "isOdd",
		Params: []string{"n"},
		Body: []parser.Stmt{
			&parser.ReturnStmt{Value: &parser.CallExpr{
				Callee: &parser.Variable{Name: "isEven"},
				Args: []parser.Expr{&parser.Binary{
					Left: &parser.Variable{Name: "n"}, Operator: "-", Right: numLit(1),
				}},
			}},
		},
	}
	program := []parser.Stmt{isEven, isOdd}
	sess := NewSession(DefaultOptions())
	doc := sess.AnalyzeDocument(context.Background(), "t.sn", program, nil, nil)
	if len(doc.Methods) != 2 {
		t.Fatalf("AnalyzeDocument() returned %d methods, want 2", len(doc.Methods))
	}
	if doc.Methods[0].TimeComplexity == "" || doc.Methods[1].TimeComplexity == "" {
		t.Fatalf("expected both mutually recursive methods to receive a rendered bound")
	}
}

func TestAnalyzeMethodStubReturnsConstant(t *testing.T) {
	fn := &parser.FunctionStmt{
		Name: "noop",
		Body: []parser.Stmt{&parser.ReturnStmt{Value: numLit(0)}},
	}
	model := semantic.NewModel([]parser.Stmt{fn})
	sym := resolve(t, model, "noop")

	sess := NewSession(DefaultOptions())
	res := sess.AnalyzeMethod(context.Background(), "t.sn", sym, model, "")
	if res.TimeComplexity != "O(1)" {
		t.Errorf("TimeComplexity = %q, want O(1)", res.TimeComplexity)
	}
}

func TestAnalyzeMethodIncompleteThrowIsFlagged(t *testing.T) {
	fn := &parser.FunctionStmt{
		Name: "todo",
		Body: []parser.Stmt{&parser.ThrowStmt{Value: &parser.Literal{Value: "not implemented"}}},
	}
	model := semantic.NewModel([]parser.Stmt{fn})
	sym := resolve(t, model, "todo")

	sess := NewSession(DefaultOptions())
	res := sess.AnalyzeMethod(context.Background(), "t.sn", sym, model, "")
	if !res.RequiresReview {
		t.Errorf("expected an incomplete-body method to require review")
	}
}

func TestAnalyzeMethodUnresolvedCallWarnsButStillRenders(t *testing.T) {
	fn := &parser.FunctionStmt{
		Name:   "caller",
		Params: []string{"n"},
		Body: []parser.Stmt{
			&parser.ExpressionStmt{Expr: &parser.CallExpr{
				Callee: &parser.Variable{Name: "somethingExternal"},
				Args:   []parser.Expr{&parser.Variable{Name: "n"}},
			}},
		},
	}
	model := semantic.NewModel([]parser.Stmt{fn})
	sym := resolve(t, model, "caller")

	sess := NewSession(DefaultOptions())
	res := sess.AnalyzeMethod(context.Background(), "t.sn", sym, model, "")
	if res.TimeComplexity == "" {
		t.Errorf("expected a rendered bound even for an unresolved external call")
	}
}

func TestIncrementalCacheSkipsUnchangedMethod(t *testing.T) {
	fn := linearLoop("sumAll", nil)
	model := semantic.NewModel([]parser.Stmt{fn})
	sym := resolve(t, model, "sumAll")

	sess := NewSession(DefaultOptions())
	first := sess.AnalyzeMethod(context.Background(), "t.sn", sym, model, "")
	second := sess.AnalyzeMethod(context.Background(), "t.sn", sym, model, "")
	if first.TimeComplexity != second.TimeComplexity {
		t.Errorf("cached re-analysis changed result: %q vs %q", first.TimeComplexity, second.TimeComplexity)
	}
}
