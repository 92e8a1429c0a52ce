package extract

import (
	"complexity/internal/complexity/expr"
	"complexity/internal/parser"
)

// logarithmicUpdateOps are the update-step shapes that signal a
// logarithmic loop (spec §4.3 "Inspect the update step first:
// multiply/divide-assign or shift-assign").
var logarithmicUpdateOps = map[string]bool{"*": true, "/": true, "<<": true, ">>": true}

// InferForBound classifies a counter-style for-loop per spec §4.3.
func InferForBound(f *parser.ForStmt, ctx Context) LoopBound {
	if op, ok := updateOperator(f.Update); ok && logarithmicUpdateOps[op] {
		return LoopBound{Pattern: PatternLogarithmic, Exact: false}
	}
	return boundFromCondition(f.Condition, ctx)
}

// InferWhileBound classifies a while-loop per spec §4.3: a halving/
// doubling update inside the body against the loop variable yields
// Logarithmic; a `i != j` with a subtractive body yields Logarithmic
// (gcd-style); anything else falls back to Linear.
func InferWhileBound(w *parser.WhileStmt, ctx Context) LoopBound {
	if cond, ok := w.Condition.(*parser.Binary); ok {
		if cond.Operator == "!=" && bodyHasSubtraction(w.Body) {
			return LoopBound{Pattern: PatternLogarithmic, Exact: false}
		}
	}
	if bodyHasLogUpdate(w.Body) {
		return LoopBound{Pattern: PatternLogarithmic, Exact: false}
	}
	return boundFromCondition(w.Condition, ctx)
}

// InferDoWhileBound treats a do-while identically to a while loop for
// bound-inference purposes; the "runs at least once" distinction affects
// exactness only, not the asymptotic pattern.
func InferDoWhileBound(d *parser.DoWhileStmt, ctx Context) LoopBound {
	return InferWhileBound(&parser.WhileStmt{Condition: d.Condition, Body: d.Body}, ctx)
}

// InferForInBound classifies a for-each loop as Linear in the collection
// variable (spec §4.3 "For-each over a collection -> Linear in the
// collection variable").
func InferForInBound(f *parser.ForInStmt, ctx Context) LoopBound {
	return LoopBound{Pattern: PatternLinear, Upper: ctx.Var, Exact: true}
}

// boundFromCondition inspects a for/while condition's upper bound (spec
// §4.3 "Inspect the condition next"): `i < bound`/`i <= bound` where
// bound is a simple identifier mapped in the context yields Linear with
// that variable; `bound.Length`/`bound.Count` yields Linear with the
// canonical n; a numeric literal yields Constant; anything else is
// Unknown.
func boundFromCondition(cond parser.Expr, ctx Context) LoopBound {
	bin, ok := cond.(*parser.Binary)
	if !ok || (bin.Operator != "<" && bin.Operator != "<=") {
		return LoopBound{Pattern: PatternUnknown, Upper: ctx.Var}
	}
	switch rhs := bin.Right.(type) {
	case *parser.Literal:
		if _, isNum := rhs.Value.(float64); isNum {
			// A numeric-literal bound runs a constant number of times, so
			// its IterationCount multiplier must be Constant(1) (1*body =
			// body under the x*1=x identity) rather than Constant(0), which
			// would collapse any nested body down to O(1) regardless of
			// what it actually does.
			return LoopBound{Pattern: PatternLinear, Upper: expr.NewConstant(1), Exact: true}
		}
	case *parser.Variable:
		return LoopBound{Pattern: PatternLinear, Upper: expr.NewVariable(rhs.Name, expr.KindInputSize), Exact: true}
	case *parser.PropertyExpr:
		if rhs.Property == "Length" || rhs.Property == "Count" || rhs.Property == "length" || rhs.Property == "count" {
			return LoopBound{Pattern: PatternLinear, Upper: ctx.Var, Exact: true}
		}
	}
	return LoopBound{Pattern: PatternUnknown, Upper: ctx.Var}
}

// updateOperator extracts the binary operator driving a for-loop's update
// expression, once it has been desugared to `Assign{Value: Binary{...}}`
// by the compound-assignment grammar (see internal/parser's assignment()).
func updateOperator(update parser.Expr) (string, bool) {
	assign, ok := update.(*parser.Assign)
	if !ok {
		return "", false
	}
	bin, ok := assign.Value.(*parser.Binary)
	if !ok {
		return "", false
	}
	return bin.Operator, true
}

func bodyHasLogUpdate(body []parser.Stmt) bool {
	for _, s := range body {
		if a, ok := s.(*parser.AssignmentStmt); ok {
			if bin, ok := a.Value.(*parser.Binary); ok && logarithmicUpdateOps[bin.Operator] {
				return true
			}
		}
	}
	return false
}

func bodyHasSubtraction(body []parser.Stmt) bool {
	for _, s := range body {
		if a, ok := s.(*parser.AssignmentStmt); ok {
			if bin, ok := a.Value.(*parser.Binary); ok && bin.Operator == "-" {
				return true
			}
		}
	}
	return false
}
