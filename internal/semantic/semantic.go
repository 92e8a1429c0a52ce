// Package semantic resolves identifiers and invocations appearing in a
// parsed method body back to their declarations, playing the role spec §6
// calls the "semantic lookup service" — here implemented directly over the
// parser's own AST rather than treated as an external collaborator, since
// the source, its declarations, and its call sites all live in the same
// parsed unit.
package semantic

import "complexity/internal/parser"

// Symbol identifies a declared function/method by name and parameter list.
type Symbol struct {
	Name    string
	Params  []string
	Program *parser.FunctionStmt
}

// Model is a resolved view over one parsed compilation unit: every
// top-level function declaration, indexed by name, plus helpers to
// resolve a callee name and classify a call as direct recursion.
type Model struct {
	functions map[string]*Symbol
}

// NewModel builds a Model by scanning top-level statements for function
// declarations. Nested/local functions are intentionally not indexed here
// — recursion detection (C3) only needs top-level callee resolution.
func NewModel(program []parser.Stmt) *Model {
	m := &Model{functions: make(map[string]*Symbol)}
	for _, stmt := range program {
		if fn, ok := stmt.(*parser.FunctionStmt); ok {
			m.functions[fn.Name] = &Symbol{Name: fn.Name, Params: fn.Params, Program: fn}
		}
	}
	return m
}

// Resolve looks up a callee name, returning its Symbol and whether it was
// found (built-ins and unresolved names return ok=false).
func (m *Model) Resolve(name string) (*Symbol, bool) {
	sym, ok := m.functions[name]
	return sym, ok
}

// IsRecursiveCall reports whether a call from within method `caller` to
// callee name `callee` is direct recursion (spec §4.3 "the callee equals
// the containing method").
func (m *Model) IsRecursiveCall(caller *Symbol, callee string) bool {
	return caller != nil && caller.Name == callee
}

// Functions returns every indexed top-level function symbol, in
// declaration order is not guaranteed (map iteration) — callers that need
// a stable order should sort by Name.
func (m *Model) Functions() []*Symbol {
	out := make([]*Symbol, 0, len(m.functions))
	for _, s := range m.functions {
		out = append(out, s)
	}
	return out
}
