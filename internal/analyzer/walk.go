package analyzer

import (
	"fmt"

	"complexity/internal/complexity"
	"complexity/internal/complexity/callgraph"
	"complexity/internal/complexity/compose"
	"complexity/internal/complexity/expr"
	"complexity/internal/complexity/extract"
	"complexity/internal/parser"
	"complexity/internal/semantic"
	"complexity/internal/stdlibtable"
)

// walker computes the bottom-up structural cost of one method body (C7
// composition over C3-extracted loop bounds), resolving non-recursive
// invocations against either the document's call-graph cache (for
// already-analyzed callees) or the standard-library table (for built-ins
// and property-access calls). Calls back to its own method, or to another
// member of its mutual-recursion SCC, are deliberately excluded from the
// returned cost — those are folded into a Relation and solved separately
// by the caller (see structuralResult / analyzeCycle).
type walker struct {
	model        *semantic.Model
	table        *stdlibtable.Table
	cache        *callgraph.ResultCache
	selfName     string
	v            *expr.Variable
	cycleMembers map[string]bool

	warnings            []string
	confidencePenalties []complexity.Confidence
}

func newWalker(model *semantic.Model, table *stdlibtable.Table, cache *callgraph.ResultCache, selfName string, v *expr.Variable) *walker {
	return &walker{model: model, table: table, cache: cache, selfName: selfName, v: v}
}

func (w *walker) ectx() extract.Context {
	return extract.Context{Var: w.v}
}

func (w *walker) stmts(body []parser.Stmt) expr.Expr {
	parts := make([]expr.Expr, 0, len(body))
	for _, s := range body {
		parts = append(parts, w.stmt(s))
	}
	return compose.Sequential(parts)
}

// stmt dispatches one statement to the Sequential/Nested/Branching rule
// matching its shape (spec §4.5). Array indexing, property access, and
// literal evaluation are treated as O(1) per the analyzed grammar's
// resolved Open Question — only loops, recursion, and calls introduce
// growth.
func (w *walker) stmt(s parser.Stmt) expr.Expr {
	switch st := s.(type) {
	case *parser.ExpressionStmt:
		return w.exprCost(st.Expr)
	case *parser.LetStmt:
		return w.exprCost(st.Expr)
	case *parser.AssignmentStmt:
		return w.exprCost(st.Value)
	case *parser.IndexAssignmentStmt:
		return w.sumExprs(st.Object, st.Index, st.Value)
	case *parser.PrintStmt:
		return w.exprCost(st.Expr)
	case *parser.ReturnStmt:
		return w.exprCost(st.Value)
	case *parser.IfStmt:
		cond := w.exprCost(st.Condition)
		thenCost := w.stmts(st.Then)
		elseCost := expr.Expr(expr.NewConstant(1))
		if len(st.Else) > 0 {
			elseCost = w.stmts(st.Else)
		}
		branch := compose.Branching([]expr.Expr{thenCost, elseCost})
		return compose.Sequential([]expr.Expr{cond, branch})
	case *parser.WhileStmt:
		bound := extract.InferWhileBound(st, w.ectx())
		return compose.Nested(bound.IterationCount(w.v), w.stmts(st.Body))
	case *parser.DoWhileStmt:
		bound := extract.InferDoWhileBound(st, w.ectx())
		return compose.Nested(bound.IterationCount(w.v), w.stmts(st.Body))
	case *parser.ForStmt:
		bound := extract.InferForBound(st, w.ectx())
		return compose.Nested(bound.IterationCount(w.v), w.stmts(st.Body))
	case *parser.ForInStmt:
		bound := extract.InferForInBound(st, w.ectx())
		return compose.Nested(bound.IterationCount(w.v), w.stmts(st.Body))
	case *parser.BreakStmt:
		return expr.NewConstant(1)
	case *parser.ContinueStmt:
		return expr.NewConstant(1)
	case *parser.TryStmt:
		arms := []expr.Expr{w.stmts(st.TryBlock)}
		if len(st.CatchBlock) > 0 {
			arms = append(arms, w.stmts(st.CatchBlock))
		}
		branch := compose.Branching(arms)
		if len(st.FinallyBlock) > 0 {
			return compose.Sequential([]expr.Expr{branch, w.stmts(st.FinallyBlock)})
		}
		return branch
	case *parser.ThrowStmt:
		return w.exprCost(st.Value)
	case *parser.MatchStmt:
		valCost := w.exprCost(st.Value)
		arms := make([]expr.Expr, 0, len(st.Cases))
		for _, c := range st.Cases {
			arms = append(arms, w.stmts(c.Body))
		}
		return compose.Sequential([]expr.Expr{valCost, compose.Branching(arms)})
	default:
		return expr.NewConstant(1)
	}
}

// sumExprs composes the costs of a fixed set of subexpressions alongside
// an O(1) baseline for the statement shape itself (e.g. an index
// assignment's own bookkeeping).
func (w *walker) sumExprs(exprs ...parser.Expr) expr.Expr {
	parts := []expr.Expr{expr.NewConstant(1)}
	for _, e := range exprs {
		if e != nil {
			parts = append(parts, w.exprCost(e))
		}
	}
	return compose.Sequential(parts)
}

// exprCost recurses into an expression for embedded call sites; every
// variant besides CallExpr and the few control-flow-shaped expressions
// (IfExpr, BlockExpr) is asymptotically free on its own and only
// contributes whatever its subexpressions contribute.
func (w *walker) exprCost(e parser.Expr) expr.Expr {
	if e == nil {
		return expr.NewConstant(1)
	}
	switch x := e.(type) {
	case *parser.Binary:
		return w.sumExprs(x.Left, x.Right)
	case *parser.Literal:
		return expr.NewConstant(1)
	case *parser.Variable:
		return expr.NewConstant(1)
	case *parser.Assign:
		return w.exprCost(x.Value)
	case *parser.CallExpr:
		return w.callCost(x)
	case *parser.IfExpr:
		cond := w.exprCost(x.Cond)
		branch := compose.Branching([]expr.Expr{w.exprCost(x.ThenBranch), w.exprCost(x.ElseBranch)})
		return compose.Sequential([]expr.Expr{cond, branch})
	case *parser.BlockExpr:
		return w.stmts(x.Stmts)
	case *parser.ArrayExpr:
		parts := []expr.Expr{expr.NewConstant(1)}
		for _, el := range x.Elements {
			parts = append(parts, w.exprCost(el))
		}
		return compose.Sequential(parts)
	case *parser.MapExpr:
		parts := []expr.Expr{expr.NewConstant(1)}
		for _, v := range x.Values {
			parts = append(parts, w.exprCost(v))
		}
		return compose.Sequential(parts)
	case *parser.IndexExpr:
		return w.sumExprs(x.Object, x.Index)
	case *parser.SetIndexExpr:
		return w.sumExprs(x.Object, x.Index, x.Value)
	case *parser.UnaryExpr:
		return w.exprCost(x.Operand)
	case *parser.LogicalExpr:
		return w.sumExprs(x.Left, x.Right)
	case *parser.InterpolationExpr:
		parts := []expr.Expr{expr.NewConstant(1)}
		for _, p := range x.Parts {
			parts = append(parts, w.exprCost(p))
		}
		return compose.Sequential(parts)
	case *parser.LambdaExpr:
		return expr.NewConstant(1) // defining a closure does not invoke it
	case *parser.PropertyExpr:
		return w.exprCost(x.Object)
	case *parser.SpawnExpr:
		return w.exprCost(x.Call)
	case *parser.AwaitExpr:
		return w.exprCost(x.Value)
	default:
		return expr.NewConstant(1)
	}
}

// callCost resolves one call site's cost (spec §4.5 "invocation"): a
// self/cycle call is excluded (handled by the recurrence path), a
// resolved sibling function substitutes its cached cost and folds in its
// confidence, a property-access call resolves against the standard-
// library table, and anything else falls back to the table's conservative
// O(n) entry with a warning.
func (w *walker) callCost(call *parser.CallExpr) expr.Expr {
	parts := []expr.Expr{expr.NewConstant(1)}
	for _, a := range call.Args {
		parts = append(parts, w.exprCost(a))
	}
	argsCost := compose.Sequential(parts)

	switch callee := call.Callee.(type) {
	case *parser.Variable:
		name := callee.Name
		if name == w.selfName {
			return argsCost
		}
		if w.cycleMembers != nil && w.cycleMembers[name] {
			return argsCost
		}
		if cached, ok := w.cache.Get(name); ok {
			if entry, ok2 := cached.(cachedEntry); ok2 {
				w.confidencePenalties = append(w.confidencePenalties, entry.Confidence)
				return compose.Sequential([]expr.Expr{argsCost, entry.Expr})
			}
		}
		if _, ok := w.model.Resolve(name); ok {
			w.warnings = append(w.warnings, fmt.Sprintf("unresolved forward call to %s", name))
			return compose.Sequential([]expr.Expr{argsCost, w.v})
		}
		fallback := w.table.Lookup("", name, len(call.Args))
		if fallback.Provenance == stdlibtable.ProvenanceHeuristic {
			w.warnings = append(w.warnings, fmt.Sprintf("unresolved call to %s", name))
		}
		return compose.Sequential([]expr.Expr{argsCost, fallback.Complexity})
	case *parser.PropertyExpr:
		entry := w.table.LookupByMethod(callee.Property, len(call.Args))
		if entry.Provenance == stdlibtable.ProvenanceHeuristic {
			w.confidencePenalties = append(w.confidencePenalties, complexity.ConfidenceUncertainty)
		} else {
			w.confidencePenalties = append(w.confidencePenalties, complexity.ConfidenceBCLResolved)
		}
		objCost := w.exprCost(callee.Object)
		return compose.Sequential([]expr.Expr{argsCost, objCost, entry.Complexity})
	default:
		w.warnings = append(w.warnings, "call through a computed callee")
		return compose.Sequential([]expr.Expr{argsCost, w.v})
	}
}

// callSite is one resolved (calleeName, argument list) pair, used by the
// call-graph builder and the mutual-recursion reducer, both of which only
// care about direct name calls rather than the full expression shape.
type callSite struct {
	Callee string
	Args   []parser.Expr
}

// walkCalls visits every call expression reachable from body whose callee
// is a bare name (property-access calls are not edges in the call
// graph — they resolve against the standard-library table instead).
func walkCalls(body []parser.Stmt, visit func(*callSite)) {
	walkExprsInStmts(body, func(e parser.Expr) {
		call, ok := e.(*parser.CallExpr)
		if !ok {
			return
		}
		v, ok := call.Callee.(*parser.Variable)
		if !ok {
			return
		}
		visit(&callSite{Callee: v.Name, Args: call.Args})
	})
}

func walkCallNames(body []parser.Stmt, visit func(name string)) {
	walkCalls(body, func(c *callSite) { visit(c.Callee) })
}

// walkExprsInStmts is a plain recursive descent over the concrete
// statement/expression shapes (mirroring internal/complexity/extract's
// own walkStmts), kept local here since that helper is unexported and
// this package needs the same traversal for call-graph and cycle-term
// extraction rather than recursive-call classification.
func walkExprsInStmts(stmts []parser.Stmt, visit func(parser.Expr)) {
	for _, s := range stmts {
		walkExprsInStmt(s, visit)
	}
}

func walkExprsInStmt(s parser.Stmt, visit func(parser.Expr)) {
	switch st := s.(type) {
	case *parser.ExpressionStmt:
		walkExprTree(st.Expr, visit)
	case *parser.LetStmt:
		walkExprTree(st.Expr, visit)
	case *parser.AssignmentStmt:
		walkExprTree(st.Value, visit)
	case *parser.IndexAssignmentStmt:
		walkExprTree(st.Object, visit)
		walkExprTree(st.Index, visit)
		walkExprTree(st.Value, visit)
	case *parser.PrintStmt:
		walkExprTree(st.Expr, visit)
	case *parser.ReturnStmt:
		walkExprTree(st.Value, visit)
	case *parser.IfStmt:
		walkExprTree(st.Condition, visit)
		walkExprsInStmts(st.Then, visit)
		walkExprsInStmts(st.Else, visit)
	case *parser.WhileStmt:
		walkExprTree(st.Condition, visit)
		walkExprsInStmts(st.Body, visit)
	case *parser.DoWhileStmt:
		walkExprTree(st.Condition, visit)
		walkExprsInStmts(st.Body, visit)
	case *parser.ForStmt:
		walkExprTree(st.Condition, visit)
		walkExprTree(st.Update, visit)
		walkExprsInStmts(st.Body, visit)
	case *parser.ForInStmt:
		walkExprTree(st.Collection, visit)
		walkExprsInStmts(st.Body, visit)
	case *parser.TryStmt:
		walkExprsInStmts(st.TryBlock, visit)
		walkExprsInStmts(st.CatchBlock, visit)
		walkExprsInStmts(st.FinallyBlock, visit)
	case *parser.ThrowStmt:
		walkExprTree(st.Value, visit)
	case *parser.MatchStmt:
		walkExprTree(st.Value, visit)
		for _, c := range st.Cases {
			walkExprsInStmts(c.Body, visit)
		}
	case *parser.FunctionStmt:
		walkExprsInStmts(st.Body, visit)
	}
}

func walkExprTree(e parser.Expr, visit func(parser.Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch ex := e.(type) {
	case *parser.Binary:
		walkExprTree(ex.Left, visit)
		walkExprTree(ex.Right, visit)
	case *parser.Assign:
		walkExprTree(ex.Value, visit)
	case *parser.CallExpr:
		walkExprTree(ex.Callee, visit)
		for _, a := range ex.Args {
			walkExprTree(a, visit)
		}
	case *parser.IfExpr:
		walkExprTree(ex.Cond, visit)
		walkExprTree(ex.ThenBranch, visit)
		walkExprTree(ex.ElseBranch, visit)
	case *parser.BlockExpr:
		walkExprsInStmts(ex.Stmts, visit)
	case *parser.ArrayExpr:
		for _, el := range ex.Elements {
			walkExprTree(el, visit)
		}
	case *parser.MapExpr:
		for _, v := range ex.Values {
			walkExprTree(v, visit)
		}
	case *parser.IndexExpr:
		walkExprTree(ex.Object, visit)
		walkExprTree(ex.Index, visit)
	case *parser.SetIndexExpr:
		walkExprTree(ex.Object, visit)
		walkExprTree(ex.Index, visit)
		walkExprTree(ex.Value, visit)
	case *parser.UnaryExpr:
		walkExprTree(ex.Operand, visit)
	case *parser.LogicalExpr:
		walkExprTree(ex.Left, visit)
		walkExprTree(ex.Right, visit)
	case *parser.LambdaExpr:
		walkExprTree(ex.Body, visit)
	case *parser.PropertyExpr:
		walkExprTree(ex.Object, visit)
	case *parser.SpawnExpr:
		walkExprTree(ex.Call, visit)
	case *parser.AwaitExpr:
		walkExprTree(ex.Value, visit)
	}
}
