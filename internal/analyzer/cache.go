package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"complexity/internal/parser"
)

// IncrementalCache memoizes a method's MethodResult by its source-text
// content hash (spec §4.8 "Incremental mode": "re-analysis re-uses cached
// sub-results for methods whose source text is unchanged"). It is safe
// for concurrent use since a Session may be shared across concurrent
// per-document analyses (spec §5).
type IncrementalCache struct {
	mu      sync.RWMutex
	results map[string]cacheRecord
}

type cacheRecord struct {
	hash   string
	result MethodResult
}

// NewIncrementalCache builds an empty cache.
func NewIncrementalCache() *IncrementalCache {
	return &IncrementalCache{results: make(map[string]cacheRecord)}
}

// Get returns the cached result for methodName if its stored content hash
// still matches hash, i.e. the method's body has not changed since it was
// last analyzed.
func (c *IncrementalCache) Get(methodName, hash string) (MethodResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.results[methodName]
	if !ok || rec.hash != hash {
		return MethodResult{}, false
	}
	return rec.result, true
}

// Put stores result under methodName keyed by the content hash it was
// computed from.
func (c *IncrementalCache) Put(methodName, hash string, result MethodResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[methodName] = cacheRecord{hash: hash, result: result}
}

// Invalidate drops any cached result for methodName, forcing the next
// analysis to recompute it regardless of content hash.
func (c *IncrementalCache) Invalidate(methodName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results, methodName)
}

// ContentHash derives a stable digest of a function's shape: its
// signature and the structural outline of its body. It deliberately does
// not hash Go pointer identity or field order, only a canonical textual
// rendering, so that two parses of identical source text hash identically
// even though they are different *parser.FunctionStmt instances.
func ContentHash(fn *parser.FunctionStmt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "fn %s(%s)", fn.Name, strings.Join(fn.Params, ","))
	canonicalizeStmts(&b, fn.Body)
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func canonicalizeStmts(b *strings.Builder, stmts []parser.Stmt) {
	b.WriteByte('{')
	for _, s := range stmts {
		canonicalizeStmt(b, s)
	}
	b.WriteByte('}')
}

// canonicalizeStmt and canonicalizeExpr write a compact, deterministic
// outline of one AST node. They cover every shape walkExprsInStmt/
// walkExprTree does; an unrecognized shape still contributes its Go type
// name so the hash changes if the grammar grows a new node kind.
func canonicalizeStmt(b *strings.Builder, s parser.Stmt) {
	switch st := s.(type) {
	case *parser.ExpressionStmt:
		b.WriteString("E(")
		canonicalizeExpr(b, st.Expr)
		b.WriteByte(')')
	case *parser.LetStmt:
		fmt.Fprintf(b, "L(%s=", st.Name)
		canonicalizeExpr(b, st.Expr)
		b.WriteByte(')')
	case *parser.AssignmentStmt:
		fmt.Fprintf(b, "A(%s=", st.Name)
		canonicalizeExpr(b, st.Value)
		b.WriteByte(')')
	case *parser.IndexAssignmentStmt:
		b.WriteString("IA(")
		canonicalizeExpr(b, st.Object)
		canonicalizeExpr(b, st.Index)
		canonicalizeExpr(b, st.Value)
		b.WriteByte(')')
	case *parser.PrintStmt:
		b.WriteString("P(")
		canonicalizeExpr(b, st.Expr)
		b.WriteByte(')')
	case *parser.ReturnStmt:
		b.WriteString("R(")
		canonicalizeExpr(b, st.Value)
		b.WriteByte(')')
	case *parser.IfStmt:
		b.WriteString("IF(")
		canonicalizeExpr(b, st.Condition)
		canonicalizeStmts(b, st.Then)
		canonicalizeStmts(b, st.Else)
		b.WriteByte(')')
	case *parser.WhileStmt:
		b.WriteString("W(")
		canonicalizeExpr(b, st.Condition)
		canonicalizeStmts(b, st.Body)
		b.WriteByte(')')
	case *parser.DoWhileStmt:
		b.WriteString("DW(")
		canonicalizeStmts(b, st.Body)
		canonicalizeExpr(b, st.Condition)
		b.WriteByte(')')
	case *parser.ForStmt:
		b.WriteString("F(")
		canonicalizeStmt(b, st.Init)
		canonicalizeExpr(b, st.Condition)
		canonicalizeExpr(b, st.Update)
		canonicalizeStmts(b, st.Body)
		b.WriteByte(')')
	case *parser.ForInStmt:
		fmt.Fprintf(b, "FI(%s,", st.Variable)
		canonicalizeExpr(b, st.Collection)
		canonicalizeStmts(b, st.Body)
		b.WriteByte(')')
	case *parser.BreakStmt:
		b.WriteString("BRK")
	case *parser.ContinueStmt:
		b.WriteString("CONT")
	case *parser.TryStmt:
		b.WriteString("TRY(")
		canonicalizeStmts(b, st.TryBlock)
		canonicalizeStmts(b, st.CatchBlock)
		canonicalizeStmts(b, st.FinallyBlock)
		b.WriteByte(')')
	case *parser.ThrowStmt:
		b.WriteString("THR(")
		canonicalizeExpr(b, st.Value)
		b.WriteByte(')')
	case *parser.MatchStmt:
		b.WriteString("M(")
		canonicalizeExpr(b, st.Value)
		for _, c := range st.Cases {
			canonicalizeExpr(b, c.Pattern)
			canonicalizeStmts(b, c.Body)
		}
		b.WriteByte(')')
	case *parser.FunctionStmt:
		fmt.Fprintf(b, "FN(%s(%s)", st.Name, strings.Join(st.Params, ","))
		canonicalizeStmts(b, st.Body)
		b.WriteByte(')')
	case nil:
		b.WriteString("_")
	default:
		fmt.Fprintf(b, "?%T", st)
	}
}

func canonicalizeExpr(b *strings.Builder, e parser.Expr) {
	if e == nil {
		b.WriteString("_")
		return
	}
	switch x := e.(type) {
	case *parser.Binary:
		b.WriteString("(")
		canonicalizeExpr(b, x.Left)
		b.WriteString(x.Operator)
		canonicalizeExpr(b, x.Right)
		b.WriteString(")")
	case *parser.Literal:
		fmt.Fprintf(b, "%v", x.Value)
	case *parser.Variable:
		b.WriteString(x.Name)
	case *parser.Assign:
		fmt.Fprintf(b, "%s=", x.Name)
		canonicalizeExpr(b, x.Value)
	case *parser.CallExpr:
		canonicalizeExpr(b, x.Callee)
		b.WriteByte('(')
		for _, a := range x.Args {
			canonicalizeExpr(b, a)
			b.WriteByte(',')
		}
		b.WriteByte(')')
	case *parser.IfExpr:
		b.WriteString("if(")
		canonicalizeExpr(b, x.Cond)
		canonicalizeExpr(b, x.ThenBranch)
		canonicalizeExpr(b, x.ElseBranch)
		b.WriteByte(')')
	case *parser.BlockExpr:
		canonicalizeStmts(b, x.Stmts)
	case *parser.ArrayExpr:
		b.WriteByte('[')
		for _, el := range x.Elements {
			canonicalizeExpr(b, el)
			b.WriteByte(',')
		}
		b.WriteByte(']')
	case *parser.MapExpr:
		b.WriteByte('{')
		for i, v := range x.Values {
			if i < len(x.Keys) {
				canonicalizeExpr(b, x.Keys[i])
			}
			b.WriteByte(':')
			canonicalizeExpr(b, v)
			b.WriteByte(',')
		}
		b.WriteByte('}')
	case *parser.IndexExpr:
		canonicalizeExpr(b, x.Object)
		b.WriteByte('[')
		canonicalizeExpr(b, x.Index)
		b.WriteByte(']')
	case *parser.SetIndexExpr:
		canonicalizeExpr(b, x.Object)
		b.WriteByte('[')
		canonicalizeExpr(b, x.Index)
		b.WriteString("]=")
		canonicalizeExpr(b, x.Value)
	case *parser.UnaryExpr:
		b.WriteString(x.Operator)
		canonicalizeExpr(b, x.Operand)
	case *parser.LogicalExpr:
		canonicalizeExpr(b, x.Left)
		b.WriteString(x.Operator)
		canonicalizeExpr(b, x.Right)
	case *parser.InterpolationExpr:
		for _, p := range x.Parts {
			canonicalizeExpr(b, p)
		}
	case *parser.LambdaExpr:
		fmt.Fprintf(b, "fn(%s)=>", strings.Join(x.Params, ","))
		canonicalizeExpr(b, x.Body)
	case *parser.PropertyExpr:
		canonicalizeExpr(b, x.Object)
		b.WriteByte('.')
		b.WriteString(x.Property)
	case *parser.SpawnExpr:
		b.WriteString("spawn ")
		canonicalizeExpr(b, x.Call)
	case *parser.AwaitExpr:
		b.WriteString("await ")
		canonicalizeExpr(b, x.Value)
	default:
		fmt.Fprintf(b, "?%T", x)
	}
}
