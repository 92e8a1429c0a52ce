package complexity

import (
	"strconv"

	"complexity/internal/complexity/callgraph"
	"complexity/internal/complexity/expr"
	"complexity/internal/semantic"
)

// Context is the scoped, immutable-by-convention record threaded through
// one method's analysis pass (spec §5 "Shared resources": "the
// canonical-variable counter lives in the per-method Analysis Context and
// is copied on derivation"). Callers derive a child context with With*
// rather than mutating a shared one, so concurrent per-document analyses
// never race on it.
type Context struct {
	Model           *semantic.Model
	Graph           *callgraph.Graph
	Cache           *callgraph.ResultCache
	Method          string
	canonicalVars   map[string]*expr.Variable
	loopBounds      map[string]expr.Expr
	varCounter      int
	MaxCallDepth    int
	callDepth       int
}

// NewContext builds a root context for analyzing one document's call
// graph with the given semantic model.
func NewContext(model *semantic.Model, graph *callgraph.Graph) *Context {
	return &Context{
		Model:         model,
		Graph:         graph,
		Cache:         callgraph.NewResultCache(),
		canonicalVars: make(map[string]*expr.Variable),
		loopBounds:    make(map[string]expr.Expr),
		MaxCallDepth:  10,
	}
}

// clone produces a shallow copy with independent maps, so a derived
// context's writes never leak back into its parent.
func (c *Context) clone() *Context {
	vars := make(map[string]*expr.Variable, len(c.canonicalVars))
	for k, v := range c.canonicalVars {
		vars[k] = v
	}
	bounds := make(map[string]expr.Expr, len(c.loopBounds))
	for k, v := range c.loopBounds {
		bounds[k] = v
	}
	return &Context{
		Model:         c.Model,
		Graph:         c.Graph,
		Cache:         c.Cache,
		Method:        c.Method,
		canonicalVars: vars,
		loopBounds:    bounds,
		varCounter:    c.varCounter,
		MaxCallDepth:  c.MaxCallDepth,
		callDepth:     c.callDepth,
	}
}

// WithMethod derives a context scoped to analyzing the named method, one
// level deeper in the call stack.
func (c *Context) WithMethod(name string) *Context {
	child := c.clone()
	child.Method = name
	child.callDepth = c.callDepth + 1
	return child
}

// AtMaxDepth reports whether this context has already reached the
// configured inter-procedural walk limit (spec §6 `max-call-depth`).
func (c *Context) AtMaxDepth() bool {
	return c.callDepth >= c.MaxCallDepth
}

// CanonicalVariable returns the canonical size variable bound to a
// parameter symbol, minting a fresh one (n, n1, n2, ...) on first use so
// that every method gets a consistently named input-size variable.
func (c *Context) CanonicalVariable(symbol string) *expr.Variable {
	if v, ok := c.canonicalVars[symbol]; ok {
		return v
	}
	name := "n"
	if c.varCounter > 0 {
		name = "n" + strconv.Itoa(c.varCounter)
	}
	v := expr.NewVariable(name, expr.KindInputSize)
	c.canonicalVars[symbol] = v
	c.varCounter++
	return v
}

// LoopBound records the inferred iteration-count expression for a loop
// keyed by its source position or a caller-chosen tag, so C7 composition
// can look it up without re-running C3 extraction.
func (c *Context) LoopBound(tag string) (expr.Expr, bool) {
	e, ok := c.loopBounds[tag]
	return e, ok
}

// SetLoopBound stores the inferred bound for later composition.
func (c *Context) SetLoopBound(tag string, bound expr.Expr) {
	c.loopBounds[tag] = bound
}
