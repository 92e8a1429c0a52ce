package extract

import (
	"complexity/internal/complexity/expr"
	"complexity/internal/parser"
)

// AmortizedPattern names one of the recognized amortized idioms (spec §4.4
// "Amortized pattern heuristics"), in descending match priority: a body
// matching more than one shape is tagged with the first one found below.
type AmortizedPattern string

const (
	AmortizedUnionFind     AmortizedPattern = "union-find-path-compression"
	AmortizedDynamicArray  AmortizedPattern = "dynamic-array-doubling"
	AmortizedHashRehash    AmortizedPattern = "hash-rehash"
	AmortizedBinaryCounter AmortizedPattern = "binary-counter"
	AmortizedMultipop      AmortizedPattern = "multipop"
	AmortizedNone          AmortizedPattern = ""
)

// amortizedPriority lists detectors in the order they are tried; union-find
// and dynamic-array doubling are checked first since their bodies can also
// incidentally resemble the weaker heuristics below them.
var amortizedPriority = []func([]parser.Stmt) bool{
	isUnionFindPathCompression,
	isDynamicArrayDoubling,
	isHashRehash,
	isBinaryCounter,
	isMultipop,
}

var amortizedNames = []AmortizedPattern{
	AmortizedUnionFind,
	AmortizedDynamicArray,
	AmortizedHashRehash,
	AmortizedBinaryCounter,
	AmortizedMultipop,
}

// DetectAmortized inspects a function body for one of the recognized
// amortized-cost idioms and, if found, returns the *expr.Amortized wrapper
// with the per-operation amortized cost for that shape (spec §4.4).
func DetectAmortized(body []parser.Stmt, v *expr.Variable) (*expr.Amortized, bool) {
	for i, detector := range amortizedPriority {
		if detector(body) {
			return buildAmortized(amortizedNames[i], v), true
		}
	}
	return nil, false
}

func buildAmortized(p AmortizedPattern, v *expr.Variable) *expr.Amortized {
	switch p {
	case AmortizedUnionFind:
		return expr.NewAmortized(expr.NewInverseAckermann(v), v, expr.MethodPotential, "rank")
	case AmortizedDynamicArray:
		return expr.NewAmortized(expr.NewConstant(1), v, expr.MethodAccounting, "unused-capacity")
	case AmortizedHashRehash:
		return expr.NewAmortized(expr.NewConstant(1), v, expr.MethodAccounting, "load-factor-slack")
	case AmortizedBinaryCounter:
		return expr.NewAmortized(expr.NewConstant(1), v, expr.MethodAggregate, "set-bit-count")
	case AmortizedMultipop:
		return expr.NewAmortized(expr.NewConstant(1), v, expr.MethodAggregate, "stack-size")
	default:
		return nil
	}
}

// isUnionFindPathCompression recognizes the path-compression shape
// parent[x] = find(parent[x]): some one-argument call whose argument is an
// index expression, plus a statement directly in body that assigns a call
// result to an indexed element. It does not check that the two are the
// same call, nor that they sit inside a while loop.
func isUnionFindPathCompression(body []parser.Stmt) bool {
	found := false
	walkStmts(body, func(e parser.Expr) {
		call, ok := e.(*parser.CallExpr)
		if !ok || len(call.Args) != 1 {
			return
		}
		if _, ok := call.Args[0].(*parser.IndexExpr); !ok {
			return
		}
		found = true
	})
	if !found {
		return false
	}
	for _, s := range body {
		if ias, ok := s.(*parser.IndexAssignmentStmt); ok {
			if _, ok := ias.Value.(*parser.CallExpr); ok {
				return true
			}
		}
	}
	return false
}

// isDynamicArrayDoubling recognizes a capacity check followed by doubling
// the backing store's size: `if size == capacity { capacity = capacity * 2 }`.
func isDynamicArrayDoubling(body []parser.Stmt) bool {
	for _, s := range body {
		ifs, ok := s.(*parser.IfStmt)
		if !ok {
			continue
		}
		if _, ok := ifs.Condition.(*parser.Binary); !ok {
			continue
		}
		for _, inner := range ifs.Then {
			if a, ok := inner.(*parser.AssignmentStmt); ok {
				if bin, ok := a.Value.(*parser.Binary); ok && bin.Operator == "*" {
					if lit, ok := bin.Right.(*parser.Literal); ok {
						if f, ok := lit.Value.(float64); ok && f == 2 {
							return true
						}
					}
				}
			}
		}
	}
	return false
}

// isHashRehash recognizes a load-factor guard (`count / capacity` compared
// against a threshold) guarding a rehash call.
func isHashRehash(body []parser.Stmt) bool {
	for _, s := range body {
		ifs, ok := s.(*parser.IfStmt)
		if !ok {
			continue
		}
		bin, ok := ifs.Condition.(*parser.Binary)
		if !ok {
			continue
		}
		if _, ok := bin.Left.(*parser.Binary); !ok {
			continue
		}
		for _, inner := range ifs.Then {
			if es, ok := inner.(*parser.ExpressionStmt); ok {
				if call, ok := es.Expr.(*parser.CallExpr); ok {
					if callee, ok := call.Callee.(*parser.Variable); ok && containsFold(callee.Name, "rehash") {
						return true
					}
				}
			}
		}
	}
	return false
}

// isBinaryCounter recognizes a carry-propagation loop: a while loop directly
// in body whose own body assigns the literal 0 to an indexed element
// (clearing a carried bit). The loop condition and any index update are
// not inspected.
func isBinaryCounter(body []parser.Stmt) bool {
	for _, s := range body {
		w, ok := s.(*parser.WhileStmt)
		if !ok {
			continue
		}
		for _, inner := range w.Body {
			if ias, ok := inner.(*parser.IndexAssignmentStmt); ok {
				if lit, ok := ias.Value.(*parser.Literal); ok {
					if f, ok := lit.Value.(float64); ok && f == 0 {
						return true
					}
				}
			}
		}
	}
	return false
}

// isMultipop recognizes a pop operation: any call anywhere in the body
// whose function or method name contains "pop". The surrounding loop
// structure is not inspected. The amortized tag rests on each element
// being pushed at most once, so total pops are bounded by total pushes.
func isMultipop(body []parser.Stmt) bool {
	found := false
	walkStmts(body, func(e parser.Expr) {
		call, ok := e.(*parser.CallExpr)
		if !ok {
			return
		}
		if callee, ok := call.Callee.(*parser.Variable); ok && containsFold(callee.Name, "pop") {
			found = true
		}
		if p, ok := call.Callee.(*parser.PropertyExpr); ok && containsFold(p.Property, "pop") {
			found = true
		}
	})
	return found
}

func containsFold(haystack, needle string) bool {
	h, n := []rune(haystack), []rune(needle)
	if len(n) > len(h) {
		return false
	}
	lower := func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}
	for i := 0; i+len(n) <= len(h); i++ {
		match := true
		for j := range n {
			if lower(h[i+j]) != lower(n[j]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
