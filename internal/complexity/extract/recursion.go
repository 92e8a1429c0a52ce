package extract

import (
	"complexity/internal/parser"
)

// DetectRecursiveCalls walks a function body for direct calls back to the
// containing function and classifies how the argument changes relative to
// the matching parameter (spec §4.3 "Recursion detection"): non-reducing
// (same variable, unmodified), scaled (n/k, n>>k), decreasing (n-k), or
// unknown (anything else, e.g. a computed or unrelated argument).
func DetectRecursiveCalls(ctx Context, body []parser.Stmt) []RecursiveCall {
	if ctx.Function == nil {
		return nil
	}
	var calls []RecursiveCall
	walkStmts(body, func(e parser.Expr) {
		call, ok := e.(*parser.CallExpr)
		if !ok {
			return
		}
		callee, ok := call.Callee.(*parser.Variable)
		if !ok {
			return
		}
		if !ctx.Model.IsRecursiveCall(ctx.Function, callee.Name) {
			return
		}
		calls = append(calls, classifyCall(callee.Name, ctx.Function.Params, call.Args))
	})
	return calls
}

func classifyCall(callee string, params []string, args []parser.Expr) RecursiveCall {
	if len(params) == 0 || len(args) == 0 {
		return RecursiveCall{Callee: callee, Reduction: ReductionUnknown}
	}
	// The dominant-size parameter is assumed to be the first one, matching
	// how Context.Var is seeded from the function's primary input.
	param := params[0]
	arg := args[0]
	switch a := arg.(type) {
	case *parser.Variable:
		if a.Name == param {
			return RecursiveCall{Callee: callee, Reduction: ReductionNonReducing}
		}
		return RecursiveCall{Callee: callee, Reduction: ReductionUnknown}
	case *parser.Binary:
		left, leftIsParam := a.Left.(*parser.Variable)
		if !leftIsParam || left.Name != param {
			return RecursiveCall{Callee: callee, Reduction: ReductionUnknown}
		}
		switch a.Operator {
		case "/":
			if lit, ok := a.Right.(*parser.Literal); ok {
				if f, ok := lit.Value.(float64); ok && f != 0 {
					return RecursiveCall{Callee: callee, Reduction: ReductionScaled, ScaleFactor: f}
				}
			}
		case ">>":
			if lit, ok := a.Right.(*parser.Literal); ok {
				if f, ok := lit.Value.(float64); ok {
					return RecursiveCall{Callee: callee, Reduction: ReductionScaled, ScaleFactor: pow2(f)}
				}
			}
		case "-":
			if lit, ok := a.Right.(*parser.Literal); ok {
				if f, ok := lit.Value.(float64); ok {
					return RecursiveCall{Callee: callee, Reduction: ReductionDecreasing, Subtracted: f}
				}
			}
		}
	}
	return RecursiveCall{Callee: callee, Reduction: ReductionUnknown}
}

func pow2(shift float64) float64 {
	result := 1.0
	for i := 0; i < int(shift); i++ {
		result *= 2
	}
	return result
}

// walkStmts recursively visits every expression reachable from a statement
// list, invoking visit on each one. It is a plain recursive descent over
// the concrete statement/expression shapes rather than the ExprVisitor/
// StmtVisitor interfaces, matching the type-switch style already used in
// internal/formatter and in this module's classify/compose packages.
func walkStmts(stmts []parser.Stmt, visit func(parser.Expr)) {
	for _, s := range stmts {
		walkStmt(s, visit)
	}
}

func walkStmt(s parser.Stmt, visit func(parser.Expr)) {
	switch st := s.(type) {
	case *parser.ExpressionStmt:
		walkExpr(st.Expr, visit)
	case *parser.LetStmt:
		walkExpr(st.Expr, visit)
	case *parser.AssignmentStmt:
		walkExpr(st.Value, visit)
	case *parser.IndexAssignmentStmt:
		walkExpr(st.Object, visit)
		walkExpr(st.Index, visit)
		walkExpr(st.Value, visit)
	case *parser.PrintStmt:
		walkExpr(st.Expr, visit)
	case *parser.ReturnStmt:
		walkExpr(st.Value, visit)
	case *parser.IfStmt:
		walkExpr(st.Condition, visit)
		walkStmts(st.Then, visit)
		walkStmts(st.Else, visit)
	case *parser.WhileStmt:
		walkExpr(st.Condition, visit)
		walkStmts(st.Body, visit)
	case *parser.DoWhileStmt:
		walkExpr(st.Condition, visit)
		walkStmts(st.Body, visit)
	case *parser.ForStmt:
		walkExpr(st.Condition, visit)
		walkExpr(st.Update, visit)
		walkStmts(st.Body, visit)
	case *parser.ForInStmt:
		walkExpr(st.Collection, visit)
		walkStmts(st.Body, visit)
	case *parser.TryStmt:
		walkStmts(st.TryBlock, visit)
		walkStmts(st.CatchBlock, visit)
		walkStmts(st.FinallyBlock, visit)
	case *parser.ThrowStmt:
		walkExpr(st.Value, visit)
	case *parser.MatchStmt:
		walkExpr(st.Value, visit)
		for _, c := range st.Cases {
			walkStmts(c.Body, visit)
		}
	case *parser.FunctionStmt:
		walkStmts(st.Body, visit)
	}
}

func walkExpr(e parser.Expr, visit func(parser.Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch ex := e.(type) {
	case *parser.Binary:
		walkExpr(ex.Left, visit)
		walkExpr(ex.Right, visit)
	case *parser.Assign:
		walkExpr(ex.Value, visit)
	case *parser.CallExpr:
		walkExpr(ex.Callee, visit)
		for _, a := range ex.Args {
			walkExpr(a, visit)
		}
	case *parser.IfExpr:
		walkExpr(ex.Cond, visit)
		walkExpr(ex.ThenBranch, visit)
		walkExpr(ex.ElseBranch, visit)
	case *parser.BlockExpr:
		walkStmts(ex.Stmts, visit)
	case *parser.ArrayExpr:
		for _, el := range ex.Elements {
			walkExpr(el, visit)
		}
	case *parser.MapExpr:
		for _, v := range ex.Values {
			walkExpr(v, visit)
		}
	case *parser.IndexExpr:
		walkExpr(ex.Object, visit)
		walkExpr(ex.Index, visit)
	case *parser.SetIndexExpr:
		walkExpr(ex.Object, visit)
		walkExpr(ex.Index, visit)
		walkExpr(ex.Value, visit)
	case *parser.UnaryExpr:
		walkExpr(ex.Operand, visit)
	case *parser.LogicalExpr:
		walkExpr(ex.Left, visit)
		walkExpr(ex.Right, visit)
	case *parser.LambdaExpr:
		walkExpr(ex.Body, visit)
	case *parser.PropertyExpr:
		walkExpr(ex.Object, visit)
	case *parser.SpawnExpr:
		walkExpr(ex.Call, visit)
	case *parser.AwaitExpr:
		walkExpr(ex.Value, visit)
	}
}
