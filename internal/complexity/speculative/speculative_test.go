package speculative

import (
	"testing"

	"complexity/internal/parser"
)

func TestDetectNotImplementedThrowIsIncomplete(t *testing.T) {
	fn := &parser.FunctionStmt{
		Name: "f",
		Body: []parser.Stmt{
			&parser.ThrowStmt{Value: &parser.Literal{Value: "not implemented"}},
		},
	}
	d := Detect(fn, "")
	if !d.Incomplete {
		t.Fatal("expected Incomplete = true")
	}
	if d.Confidence > 0.2 {
		t.Errorf("confidence = %v, want <= 0.2", d.Confidence)
	}
}

// Seed scenario #6 (spec §8): `throw NotImplementedException()` has no
// string-literal message at all -- it's a constructor call -- so the
// detector must match the thrown type's name, not just literal text.
func TestDetectNotImplementedConstructorThrowIsIncomplete(t *testing.T) {
	fn := &parser.FunctionStmt{
		Name: "f",
		Body: []parser.Stmt{
			&parser.ThrowStmt{Value: &parser.CallExpr{
				Callee: &parser.Variable{Name: "NotImplementedException"},
			}},
		},
	}
	d := Detect(fn, "")
	if !d.Incomplete {
		t.Fatal("expected Incomplete = true")
	}
	if d.Confidence > 0.2 {
		t.Errorf("confidence = %v, want <= 0.2", d.Confidence)
	}
}

func TestDetectEmptyBodyIsIncomplete(t *testing.T) {
	fn := &parser.FunctionStmt{Name: "f", Body: nil}
	d := Detect(fn, "")
	if !d.Incomplete {
		t.Fatal("expected an empty body to be flagged incomplete (likely marker)")
	}
}

func TestDetectStubConstantReturn(t *testing.T) {
	fn := &parser.FunctionStmt{
		Name: "f",
		Body: []parser.Stmt{
			&parser.ReturnStmt{Value: &parser.Literal{Value: 0.0}},
		},
	}
	d := Detect(fn, "")
	if !d.IsStub {
		t.Fatal("expected IsStub = true")
	}
	if d.Confidence != 0.3 {
		t.Errorf("confidence = %v, want 0.3", d.Confidence)
	}
}

func TestDetectTodoCommentLowersConfidence(t *testing.T) {
	fn := &parser.FunctionStmt{
		Name: "f",
		Body: []parser.Stmt{
			&parser.ReturnStmt{Value: &parser.Variable{Name: "x"}},
		},
	}
	d := Detect(fn, "// TODO: handle edge case")
	if !d.Incomplete {
		t.Fatal("expected a TODO comment to flag incomplete")
	}
	if d.Confidence >= 0.95 {
		t.Errorf("confidence = %v, want reduced from baseline", d.Confidence)
	}
}

func TestReadContractParsesAnnotation(t *testing.T) {
	e, ok := ReadContract(`[Complexity("O(n log n)")]`)
	if !ok {
		t.Fatal("expected contract to parse")
	}
	if got := e.Render(); got != "O(n log n)" {
		t.Errorf("Render() = %v, want O(n log n)", got)
	}
}

func TestDetectContractBeatsHeuristic(t *testing.T) {
	fn := &parser.FunctionStmt{Name: "f", Body: []parser.Stmt{
		&parser.ReturnStmt{Value: &parser.Variable{Name: "x"}},
	}}
	d := Detect(fn, `[Complexity("O(n^2)")]`)
	if d.Contract == nil {
		t.Fatal("expected contract to be set")
	}
	if d.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", d.Confidence)
	}
}

func TestUncertaintyTrackerFlagsPropertyCall(t *testing.T) {
	fn := &parser.FunctionStmt{
		Name: "f",
		Body: []parser.Stmt{
			&parser.ExpressionStmt{Expr: &parser.CallExpr{
				Callee: &parser.PropertyExpr{Object: &parser.Variable{Name: "shape"}, Property: "Area"},
			}},
		},
	}
	d := Detect(fn, "")
	if !d.HasUncertainty {
		t.Fatal("expected HasUncertainty = true")
	}
	if len(d.Dependencies) != 1 || d.Dependencies[0] != "shape.Area" {
		t.Errorf("Dependencies = %v, want [shape.Area]", d.Dependencies)
	}
}
