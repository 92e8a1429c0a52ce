// Package analyzer is the driver (new, spec §2 "Flow") that wires C1-C8
// together behind the two entry points external callers use:
// AnalyzeMethod for one function and AnalyzeDocument for every top-level
// function in a parsed program. It owns the call-graph-ordered traversal,
// the per-method speculative gate, the confidence bookkeeping, and the §5
// cancellation/timeout/ordering rules; the algebra, pattern extraction,
// and solvers themselves stay collaborators it calls into, never
// reimplements.
package analyzer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"complexity/internal/complexity"
	"complexity/internal/complexity/callgraph"
	"complexity/internal/complexity/classify"
	"complexity/internal/complexity/expr"
	"complexity/internal/oracle"
	"complexity/internal/parser"
	"complexity/internal/semantic"
	"complexity/internal/stdlibtable"
)

// Options is the configuration surface spec §6 names under "Configuration
// recognized". Zero-value Options is invalid; start from DefaultOptions.
type Options struct {
	AnalysisTimeout       time.Duration
	PerMethodTimeout      time.Duration
	MinConfidenceToEmit   complexity.Confidence
	MaxCallDepth          int
	ShowSpaceComplexity   bool
	ShowConfidence        bool
	UseSymbolicMathOracle bool
}

// DefaultOptions matches spec §6's stated defaults.
func DefaultOptions() Options {
	return Options{
		AnalysisTimeout:     500 * time.Millisecond,
		PerMethodTimeout:    100 * time.Millisecond,
		MinConfidenceToEmit: 0.3,
		MaxCallDepth:        10,
	}
}

// Location is a file/line pointer, the minimal token-span a method result
// carries (spec §6).
type Location struct {
	File string
	Line int
}

// MethodResult is the §6 "Emitted to callers: Method result" shape.
type MethodResult struct {
	MethodName      string
	FileLocation    Location
	TimeComplexity  string
	SpaceComplexity string // empty unless Options.ShowSpaceComplexity
	Confidence      float64
	IsAmortized     bool
	IsProbabilistic bool
	DominantTerm    string
	Tooltip         string
	RequiresReview  bool
	ReviewReason    string

	expr       expr.Expr // underlying algebra term, for substitution by callers in the same document
	confidence complexity.Confidence
}

// DocumentResult is the §6 "Emitted to callers: Document result" shape.
type DocumentResult struct {
	SessionID         string // Session.ID this result was produced under, for log/cache correlation
	Methods           []MethodResult
	Aggregate         string // max over methods, rendered
	Diagnostics       []AnalysisError
	IncompleteRegions []string
}

// Session bundles the collaborators one or more document analyses need:
// the stdlib table and an optional symbolic-math oracle client (both
// external per spec §6), the configuration surface, and the incremental
// cache (spec §4.8 "Incremental mode"). A Session holds no other mutable
// state, so the same Session may be shared across concurrent per-document
// analyses (spec §5 "Parallelism across documents is permissible at the
// driver level").
type Session struct {
	// ID opaquely identifies one analysis session (one editor session, one
	// CLI invocation) so repeated incremental runs can be correlated in
	// logs and cache entries; it carries no semantic meaning of its own.
	ID      string
	Options Options
	Table   *stdlibtable.Table
	Oracle  oracle.Client
	Cache   *IncrementalCache
}

// NewSession builds a Session with the default stdlib table and no oracle
// client; the table-driven fallback paths work regardless.
func NewSession(opts Options) *Session {
	return &Session{ID: uuid.NewString(), Options: opts, Table: stdlibtable.New(), Cache: NewIncrementalCache()}
}

// AnalyzeMethod runs the full per-method pipeline for a single function
// already resolved against model, without the document-level ordering or
// progress reporting AnalyzeDocument adds.
func (s *Session) AnalyzeMethod(ctx context.Context, file string, sym *semantic.Symbol, model *semantic.Model, comments string) MethodResult {
	graph := callgraph.New()
	graph.AddNode(sym.Name)
	cache := callgraph.NewResultCache()
	res, _ := s.analyzeOne(ctx, file, sym, model, graph, cache, comments)
	return res
}

// AnalyzeDocument walks every top-level function of an already-parsed
// program in call-graph order (spec §5: "method results are emitted in
// topological order ... within an SCC, results are emitted simultaneously
// after mutual-recurrence solving"), emitting progress events on cb.
func (s *Session) AnalyzeDocument(ctx context.Context, file string, program []parser.Stmt, comments map[string]string, cb Callback) DocumentResult {
	cb.emit(Event{Kind: EventStarted})
	deadline := time.Now().Add(s.Options.AnalysisTimeout)

	model := semantic.NewModel(program)
	graph := buildCallGraph(model)
	cache := callgraph.NewResultCache()

	processOrder, acyclic := graph.TopoSort()
	if !acyclic {
		processOrder = condensationOrder(graph)
	}
	total := len(processOrder)

	var results []MethodResult
	var diagnostics []AnalysisError
	var incomplete []string

	cb.emit(Event{Kind: EventPhaseStarted, Phase: "analyze"})

	done := 0
	for _, name := range processOrder {
		select {
		case <-ctx.Done():
			diagnostics = append(diagnostics, NewBudgetExceeded(file, "analysis-timeout"))
			return s.finish(results, diagnostics, incomplete, cb)
		default:
		}
		if time.Now().After(deadline) {
			diagnostics = append(diagnostics, NewBudgetExceeded(file, "analysis-timeout"))
			break
		}

		sym, ok := model.Resolve(name)
		if !ok {
			continue
		}

		methodCtx, cancel := context.WithTimeout(ctx, s.Options.PerMethodTimeout)
		res, diag := s.analyzeOne(methodCtx, file, sym, model, graph, cache, comments[sym.Name])
		cancel()

		if diag != nil {
			diagnostics = append(diagnostics, *diag)
		}
		if res.ReviewReason == reasonIncomplete {
			incomplete = append(incomplete, sym.Name)
		}
		results = append(results, res)

		done++
		cb.emit(Event{Kind: EventProgress, Completed: done, Total: total, Current: sym.Name})
	}

	cb.emit(Event{Kind: EventPhaseCompleted, Phase: "analyze"})
	return s.finish(results, diagnostics, incomplete, cb)
}

func (s *Session) finish(results []MethodResult, diagnostics []AnalysisError, incomplete []string, cb Callback) DocumentResult {
	cb.emit(Event{Kind: EventCompleted})
	return DocumentResult{
		SessionID:         s.ID,
		Methods:           results,
		Aggregate:         aggregate(results),
		Diagnostics:       diagnostics,
		IncompleteRegions: incomplete,
	}
}

const reasonIncomplete = "incomplete code"

func (s *Session) buildResult(file string, sym *semantic.Symbol, e expr.Expr, conf complexity.Confidence, amortized, probabilistic bool, source string) MethodResult {
	cls := classify.Classify(e, canonicalVariable())
	space := ""
	if s.Options.ShowSpaceComplexity {
		space = e.Render()
	}
	requiresReview := !conf.MeetsThreshold(s.Options.MinConfidenceToEmit)
	reason := ""
	if requiresReview {
		reason = fmt.Sprintf("confidence %.2f below threshold %.2f (%s)", float64(conf.Clamp()), float64(s.Options.MinConfidenceToEmit.Clamp()), source)
	}
	return MethodResult{
		MethodName:      sym.Name,
		FileLocation:    Location{File: file, Line: sym.Program.Line},
		TimeComplexity:  e.Render(),
		SpaceComplexity: space,
		Confidence:      float64(conf.Clamp()),
		IsAmortized:     amortized,
		IsProbabilistic: probabilistic,
		DominantTerm:    string(cls.Form),
		Tooltip:         fmt.Sprintf("%s: %s", source, e.Render()),
		RequiresReview:  requiresReview,
		ReviewReason:    reason,
		expr:            e,
		confidence:      conf,
	}
}

func canonicalVariable() *expr.Variable {
	return expr.NewVariable("n", expr.KindInputSize)
}

func aggregate(results []MethodResult) string {
	var dominant expr.Expr
	for _, r := range results {
		if r.expr == nil {
			continue
		}
		if dominant == nil {
			dominant = r.expr
			continue
		}
		dominant = expr.Max(dominant, r.expr)
	}
	if dominant == nil {
		return "O(1)"
	}
	return classify.Simplify(dominant).Render()
}

func sortedFunctions(model *semantic.Model) []string {
	fns := model.Functions()
	names := make([]string, 0, len(fns))
	for _, f := range fns {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// buildCallGraph walks every top-level function body for invocations of
// other top-level functions, recording one edge per call site (spec
// §4.4).
func buildCallGraph(model *semantic.Model) *callgraph.Graph {
	g := callgraph.New()
	for _, name := range sortedFunctions(model) {
		fn, _ := model.Resolve(name)
		g.AddNode(fn.Name)
		walkCallNames(fn.Program.Body, func(callee string) {
			if _, ok := model.Resolve(callee); ok {
				g.AddEdge(fn.Name, callee)
			}
		})
	}
	return g
}

// condensationOrder linearizes a cyclic graph by flattening its SCCs in
// discovery order: mutual recursion within one component is resolved as a
// unit by analyzeCycle before any member's individual result is read, so
// the order members are first visited in only decides which member's
// analysis triggers the shared SCC solve.
func condensationOrder(g *callgraph.Graph) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range g.SCCs() {
		names := append([]string(nil), c...)
		sort.Strings(names)
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}
