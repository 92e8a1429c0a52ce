// Package stdlibtable is the static standard-library complexity table
// (spec §6 "Standard-library complexity table"): a mapping from
// (typeName, methodName, arity) to a known complexity expression, its
// provenance, and a set of behavioral flags. A missing entry maps to a
// conservative O(n) with Heuristic provenance rather than failing the
// lookup.
package stdlibtable

import "complexity/internal/complexity/expr"

// Provenance records how confident the table's author was in an entry.
type Provenance string

const (
	ProvenanceDocumented Provenance = "Documented" // stated in the language's own reference docs
	ProvenanceAttested   Provenance = "Attested"   // confirmed by a maintainer or known source reading
	ProvenanceEmpirical  Provenance = "Empirical"  // measured, not documented
	ProvenanceHeuristic  Provenance = "Heuristic"  // guessed; used for the fallback entry
)

// Flag tags a behavioral property of a standard-library call relevant to
// composition or reporting beyond its raw complexity.
type Flag string

const (
	FlagAmortized           Flag = "Amortized"
	FlagDeferredExecution   Flag = "DeferredExecution"
	FlagBacktrackingWarning Flag = "BacktrackingWarning"
	FlagInputDependent      Flag = "InputDependent"
	FlagThreadSafe          Flag = "ThreadSafe"
	FlagProbabilistic       Flag = "Probabilistic"
)

// Entry is one resolved table row.
type Entry struct {
	Complexity expr.Expr
	Provenance Provenance
	Flags      map[Flag]bool
}

// key identifies one (type, method, arity) invocation shape.
type key struct {
	typeName   string
	methodName string
	arity      int
}

// Table is a static, read-only lookup built once at startup (spec §5
// "Shared resources": read-only once constructed).
type Table struct {
	entries map[key]Entry
}

func entry(c expr.Expr, p Provenance, flags ...Flag) Entry {
	fm := make(map[Flag]bool, len(flags))
	for _, f := range flags {
		fm[f] = true
	}
	return Entry{Complexity: c, Provenance: p, Flags: fm}
}

// New builds the default table, grounded on the well-known complexity of
// common collection/string operations found across mainstream standard
// libraries (array/list/map/sort/string-builder shapes every curriculum
// and the pack's own README material covers identically regardless of
// host language).
func New() *Table {
	n := expr.NewVariable("n", expr.KindInputSize)
	logn := expr.NewLogarithmic(1, 2, n)
	nlogn := expr.NewPolyLog(1, 1, n)
	one := expr.NewConstant(1)

	t := &Table{entries: make(map[key]Entry)}
	add := func(typeName, methodName string, arity int, e Entry) {
		t.entries[key{typeName, methodName, arity}] = e
	}

	add("Array", "get", 1, entry(one, ProvenanceDocumented))
	add("Array", "set", 2, entry(one, ProvenanceDocumented))
	add("Array", "push", 1, entry(one, ProvenanceDocumented, FlagAmortized))
	add("Array", "pop", 0, entry(one, ProvenanceDocumented, FlagAmortized))
	add("Array", "sort", 0, entry(nlogn, ProvenanceDocumented))
	add("Array", "indexOf", 1, entry(n, ProvenanceDocumented))
	add("Array", "contains", 1, entry(n, ProvenanceDocumented))
	add("Array", "reverse", 0, entry(n, ProvenanceDocumented))
	add("Array", "map", 1, entry(n, ProvenanceDocumented))
	add("Array", "filter", 1, entry(n, ProvenanceDocumented))
	add("Array", "reduce", 2, entry(n, ProvenanceDocumented))
	add("Array", "join", 1, entry(n, ProvenanceDocumented))

	add("Map", "get", 1, entry(one, ProvenanceDocumented, FlagAmortized))
	add("Map", "set", 2, entry(one, ProvenanceDocumented, FlagAmortized))
	add("Map", "has", 1, entry(one, ProvenanceDocumented, FlagAmortized))
	add("Map", "delete", 1, entry(one, ProvenanceDocumented, FlagAmortized))
	add("Map", "keys", 0, entry(n, ProvenanceDocumented))
	add("Map", "values", 0, entry(n, ProvenanceDocumented))

	add("Set", "add", 1, entry(one, ProvenanceDocumented, FlagAmortized))
	add("Set", "has", 1, entry(one, ProvenanceDocumented, FlagAmortized))

	add("String", "length", 0, entry(one, ProvenanceDocumented))
	add("String", "concat", 1, entry(n, ProvenanceDocumented))
	add("String", "split", 1, entry(n, ProvenanceDocumented))
	add("String", "indexOf", 1, entry(n, ProvenanceDocumented))
	add("String", "substring", 2, entry(n, ProvenanceDocumented))
	add("String", "toUpperCase", 0, entry(n, ProvenanceDocumented))
	add("String", "replace", 2, entry(n, ProvenanceDocumented))

	add("SortedSet", "add", 1, entry(logn, ProvenanceDocumented, FlagAmortized))
	add("SortedSet", "has", 1, entry(logn, ProvenanceDocumented))

	add("Regex", "match", 1, entry(n, ProvenanceEmpirical, FlagBacktrackingWarning, FlagInputDependent))

	add("Random", "next", 0, entry(one, ProvenanceDocumented, FlagProbabilistic))
	add("Random", "shuffle", 1, entry(n, ProvenanceDocumented, FlagProbabilistic))

	add("Channel", "send", 1, entry(one, ProvenanceAttested, FlagThreadSafe))
	add("Channel", "receive", 0, entry(one, ProvenanceAttested, FlagThreadSafe))

	return t
}

// Lookup resolves a call shape; a miss returns the conservative O(n)
// Heuristic fallback the spec requires rather than a not-found signal,
// since the composer always needs some expression to fold in.
func (t *Table) Lookup(typeName, methodName string, arity int) Entry {
	if e, ok := t.entries[key{typeName, methodName, arity}]; ok {
		return e
	}
	return entry(expr.NewVariable("n", expr.KindInputSize), ProvenanceHeuristic)
}

// Has reports whether a call shape has an explicit entry, distinct from
// the fallback it would otherwise silently return.
func (t *Table) Has(typeName, methodName string, arity int) bool {
	_, ok := t.entries[key{typeName, methodName, arity}]
	return ok
}

// receiverTypeGuesses is the fixed priority order LookupByMethod tries a
// bare method name against, since the analyzed grammar carries no
// declared receiver types (spec §6 describes the table as keyed on
// (typeName, methodName, arity); this language has no static types to
// supply one from property-access call sites, so the composer's
// invocation rule (spec §4.5) is served by trying the container kinds
// most likely to own a given method name).
var receiverTypeGuesses = []string{"Array", "Map", "Set", "SortedSet", "String", "Regex", "Random", "Channel"}

// LookupByMethod resolves a call shape from its method name and arity
// alone, trying each known container type in receiverTypeGuesses and
// returning the first match. Used by the composer's invocation rule
// (spec §4.5) when the callee is a property-access call on an
// unannotated receiver.
func (t *Table) LookupByMethod(methodName string, arity int) Entry {
	for _, typeName := range receiverTypeGuesses {
		if e, ok := t.entries[key{typeName, methodName, arity}]; ok {
			return e
		}
	}
	return t.Lookup("", methodName, arity)
}
