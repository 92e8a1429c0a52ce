package complexity

import (
	"testing"

	"complexity/internal/complexity/callgraph"
	"complexity/internal/complexity/expr"
	"complexity/internal/semantic"
)

func TestCanonicalVariableMintsDistinctNames(t *testing.T) {
	ctx := NewContext(semantic.NewModel(nil), callgraph.New())
	first := ctx.CanonicalVariable("a")
	second := ctx.CanonicalVariable("b")
	if first.Name == second.Name {
		t.Errorf("expected distinct canonical variables, got %v and %v", first.Name, second.Name)
	}
	if again := ctx.CanonicalVariable("a"); again != first {
		t.Error("CanonicalVariable() should return the same variable for a repeated symbol")
	}
}

func TestWithMethodIncrementsDepthWithoutMutatingParent(t *testing.T) {
	root := NewContext(semantic.NewModel(nil), callgraph.New())
	child := root.WithMethod("f")
	if root.callDepth != 0 {
		t.Errorf("parent callDepth mutated: %v", root.callDepth)
	}
	if child.callDepth != 1 {
		t.Errorf("child callDepth = %v, want 1", child.callDepth)
	}
}

func TestAtMaxDepth(t *testing.T) {
	ctx := NewContext(semantic.NewModel(nil), callgraph.New())
	ctx.MaxCallDepth = 1
	child := ctx.WithMethod("f")
	if !child.AtMaxDepth() {
		t.Error("expected AtMaxDepth() to be true once depth reaches MaxCallDepth")
	}
}

func TestLoopBoundRoundTrip(t *testing.T) {
	ctx := NewContext(semantic.NewModel(nil), callgraph.New())
	n := expr.NewVariable("n", expr.KindInputSize)
	ctx.SetLoopBound("loop-1", n)
	got, ok := ctx.LoopBound("loop-1")
	if !ok || got != expr.Expr(n) {
		t.Errorf("LoopBound() = %v, %v, want n, true", got, ok)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	root := NewContext(semantic.NewModel(nil), callgraph.New())
	root.CanonicalVariable("a")
	child := root.WithMethod("f")
	child.CanonicalVariable("b")
	if _, ok := root.canonicalVars["b"]; ok {
		t.Error("child's canonical variable leaked into parent")
	}
}
