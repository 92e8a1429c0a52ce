package extract

import (
	"complexity/internal/complexity/expr"
	"complexity/internal/parser"
)

// rngCallNames are the callees recognized as randomness sources (spec §4.6
// "Probabilistic detection"): a call to one of these, anywhere in the
// body, is enough to flag the method's cost as probabilistic rather than
// deterministic.
var rngCallNames = map[string]bool{
	"random": true, "rand": true, "shuffle": true, "randomInt": true, "randomFloat": true,
}

// DetectSpawn reports whether the body contains a SpawnExpr or an AwaitExpr,
// the syntax used to launch work concurrently (spec §4.6 "Parallel
// detection"). When found, WrapParallel wraps the cost in expr.Parallel with
// both the worst and the expected case equal to the sequential inner cost.
func DetectSpawn(body []parser.Stmt) bool {
	found := false
	walkStmts(body, func(e parser.Expr) {
		switch e.(type) {
		case *parser.SpawnExpr, *parser.AwaitExpr:
			found = true
		}
	})
	return found
}

// DetectProbabilistic reports whether the body calls a recognized
// randomness source.
func DetectProbabilistic(body []parser.Stmt) bool {
	found := false
	walkStmts(body, func(e parser.Expr) {
		call, ok := e.(*parser.CallExpr)
		if !ok {
			return
		}
		switch callee := call.Callee.(type) {
		case *parser.Variable:
			if rngCallNames[callee.Name] {
				found = true
			}
		case *parser.PropertyExpr:
			if rngCallNames[callee.Property] {
				found = true
			}
		}
	})
	return found
}

// WrapParallel wraps a sequential cost in expr.Parallel when spawn/await
// syntax was detected in the body that produced it. Per spec §4.6, the
// worst case keeps the sequential cost (no speedup guaranteed if the
// runtime serializes on contention); the expected case is also the
// sequential cost: no fan-out degree is inferred and no speedup is applied.
func WrapParallel(body []parser.Stmt, sequential expr.Expr) expr.Expr {
	if !DetectSpawn(body) {
		return sequential
	}
	return expr.NewParallel(sequential, sequential, sequential)
}

// WrapProbabilistic wraps a sequential cost in expr.Probabilistic when a
// randomness-source call was detected. The expected case is left equal to
// the deterministic estimate (a distribution-specific expectation requires
// information this syntactic pass does not have); the worst case is the
// same sequential cost, since nothing here bounds the tail.
func WrapProbabilistic(body []parser.Stmt, sequential expr.Expr) expr.Expr {
	if !DetectProbabilistic(body) {
		return sequential
	}
	return expr.NewProbabilistic(sequential, sequential, sequential)
}
