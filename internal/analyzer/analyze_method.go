package analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"complexity/internal/complexity"
	"complexity/internal/complexity/callgraph"
	"complexity/internal/complexity/classify"
	"complexity/internal/complexity/compose"
	"complexity/internal/complexity/expr"
	"complexity/internal/complexity/extract"
	"complexity/internal/complexity/recurrence"
	"complexity/internal/complexity/solve"
	"complexity/internal/complexity/speculative"
	"complexity/internal/oracle"
	"complexity/internal/semantic"
)

// cachedEntry is what gets stored in a callgraph.ResultCache: just enough
// for a caller elsewhere in the same document to substitute this method's
// cost and confidence into its own composition, without re-deriving it.
type cachedEntry struct {
	Expr       expr.Expr
	Confidence complexity.Confidence
}

// analyzeOne runs the full per-method pipeline (spec §2 "Flow") for one
// function: the incremental cache first (spec §4.8 "Incremental mode"),
// then the speculative gate (C8), then either the SCC-wide mutual
// recurrence solve or the ordinary structural walk, folding the result
// into the shared call-graph cache so later callers in this document can
// substitute it.
func (s *Session) analyzeOne(ctx context.Context, file string, sym *semantic.Symbol, model *semantic.Model, graph *callgraph.Graph, cache *callgraph.ResultCache, comments string) (MethodResult, *AnalysisError) {
	hash := ContentHash(sym.Program)
	if cached, ok := s.Cache.Get(sym.Name, hash); ok {
		cache.Put(sym.Name, cachedEntry{Expr: cached.expr, Confidence: cached.confidence})
		return cached, nil
	}

	select {
	case <-ctx.Done():
		return s.timeoutResult(file, sym), nil // never cached: a partial result must not poison later lookups
	default:
	}

	det := speculative.Detect(sym.Program, comments)

	var result MethodResult
	switch {
	case det.Contract != nil:
		result = s.buildResult(file, sym, det.Contract, det.Confidence, false, false, "complexity contract")
	case det.Incomplete:
		result = s.incompleteResult(file, sym, det)
	case det.IsStub:
		result = s.buildResult(file, sym, expr.NewConstant(1), det.Confidence, false, false, "stub body")
	default:
		result = s.structuralResult(ctx, file, sym, model, graph, cache, det)
	}

	cache.Put(sym.Name, cachedEntry{Expr: result.expr, Confidence: result.confidence})
	s.Cache.Put(sym.Name, hash, result)
	return result, nil
}

func (s *Session) timeoutResult(file string, sym *semantic.Symbol) MethodResult {
	n := canonicalVariable()
	r := s.buildResult(file, sym, n, 0, false, false, "timeout")
	r.RequiresReview = true
	r.ReviewReason = "timeout"
	return r
}

func (s *Session) incompleteResult(file string, sym *semantic.Symbol, det speculative.Detection) MethodResult {
	r := s.buildResult(file, sym, expr.NewConstant(1), det.Confidence, false, false, reasonIncomplete)
	r.RequiresReview = true
	r.ReviewReason = reasonIncomplete
	return r
}

// structuralResult runs C3 pattern extraction plus C7 composition over one
// method body, solving any recursion found (direct via C5/C6, mutual via
// an SCC-wide reduction) before applying the C4.6 parallel/probabilistic
// wrappers and the C4.4 amortized detector, and finally C2's simplifier.
func (s *Session) structuralResult(ctx context.Context, file string, sym *semantic.Symbol, model *semantic.Model, graph *callgraph.Graph, cache *callgraph.ResultCache, det speculative.Detection) MethodResult {
	v := canonicalVariable()

	if scc, cyclic := cyclicComponent(graph, sym.Name); cyclic {
		return s.analyzeCycle(file, sym, scc, model, graph, cache, det)
	}

	w := newWalker(model, s.Table, cache, sym.Name, v)
	body := w.stmts(sym.Program.Body)
	confidence := det.Confidence

	ectx := extract.Context{Model: model, Var: v, Function: sym}
	recCalls := extract.DetectRecursiveCalls(ectx, sym.Program.Body)

	final := body
	solverTag := ""
	switch {
	case len(recCalls) == 0:
		// no recursion; body already carries the full structural cost
	case hasUnsolvableReduction(recCalls):
		final = compose.ConservativeFallback(v, body)
		confidence = confidence.Compose(0.5)
		w.warnings = append(w.warnings, "non-reducing recurrence")
	default:
		rel := buildRelation(recCalls, body, v)
		res := solve.Solve(rel)
		if res.Method == solve.MethodNotApplicable {
			final = compose.ConservativeFallback(v, body)
			w.warnings = append(w.warnings, res.Reason)
		} else {
			final = res.Solution
			confidence = confidence.Compose(complexity.Confidence(res.Confidence))
			solverTag = string(res.Method)
			if refined, refConf, ok := s.consultOracle(ctx, res, rel, v); ok {
				final = refined
				confidence = det.Confidence.Compose(complexity.Confidence(refConf))
				solverTag = string(res.Method) + "+oracle"
			}
		}
	}

	final = extract.WrapParallel(sym.Program.Body, final)
	final = extract.WrapProbabilistic(sym.Program.Body, final)

	isAmortized := false
	if amort, ok := extract.DetectAmortized(sym.Program.Body, v); ok {
		final = amort
		isAmortized = true
	}

	final = classify.Simplify(final)
	isProbabilistic := extract.DetectProbabilistic(sym.Program.Body)

	for _, penalty := range w.confidencePenalties {
		confidence = confidence.Compose(penalty)
	}

	result := s.buildResult(file, sym, final, confidence, isAmortized, isProbabilistic, "structural analysis")
	if solverTag != "" {
		result.Tooltip = fmt.Sprintf("%s (solved via %s)", result.Tooltip, solverTag)
	}
	if len(w.warnings) > 0 && !result.RequiresReview {
		result.RequiresReview = true
		result.ReviewReason = w.warnings[0]
	}
	return result
}

// consultOracle offers a hard Akra-Bazzi integral that fell outside
// evaluateIntegralTerm's closed-form table to the optional symbolic-math
// subprocess (spec §6 "Optional symbolic-math subprocess") before
// settling for the conservative Symbolic-Integral bound. It is a no-op
// whenever the oracle is disabled or absent, the solver already produced
// a closed form (confidence 1.0, meaning the table matched), or the
// subprocess itself fails — in every one of those cases the caller keeps
// the table-driven solution untouched, per spec §7 "Oracle failure ...
// treated as recoverable; the table-driven evaluator is used."
func (s *Session) consultOracle(ctx context.Context, res solve.Result, rel recurrence.Relation, v *expr.Variable) (expr.Expr, float64, bool) {
	if !s.Options.UseSymbolicMathOracle || s.Oracle == nil {
		return nil, 0, false
	}
	if res.Method != solve.MethodAkraBazzi || res.Confidence >= 1.0 {
		return nil, 0, false
	}
	integral, ok := res.Solution.(*expr.SymbolicIntegral)
	if !ok {
		return nil, 0, false
	}

	req := oracle.Request{Type: "akra-bazzi-integral", G: integral.Integrand.Render(), P: recurrenceSummary(rel), Variable: v.Name}
	resp, ok := oracle.EvaluateWithFallback(ctx, s.Oracle, req)
	if !ok || resp.FullSolutionAsymptotic == "" {
		return nil, 0, false
	}

	// The oracle narrows uncertainty about the bound; the core keeps its
	// own conservative expression (so Evaluate/Substitute/FreeVariables
	// still work over it) rather than parsing the subprocess's free-form
	// closed-form text back into the algebra, and raises confidence to
	// reflect an external solver having corroborated it.
	return res.Solution, 0.8, true
}

// recurrenceSummary renders a Relation's terms as the "a_i*T(n/b_i)" shape
// the oracle's JSON request carries in its P field, giving the subprocess
// the same a_i/b_i pairs evaluateIntegralTerm already solved the critical
// exponent from.
func recurrenceSummary(rel recurrence.Relation) string {
	var sb strings.Builder
	for i, t := range rel.Terms {
		if i > 0 {
			sb.WriteString(" + ")
		}
		if t.Subtractive {
			fmt.Fprintf(&sb, "%gT(n-%g)", t.Coefficient, t.Reduction)
		} else {
			fmt.Fprintf(&sb, "%gT(n/%g)", t.Coefficient, t.DivisionFactor)
		}
	}
	return sb.String()
}

// cyclicComponent reports the strongly connected component containing
// name, if any, per spec §4.4's SCC-based mutual-recursion detection.
func cyclicComponent(g *callgraph.Graph, name string) ([]string, bool) {
	for _, c := range g.SCCs() {
		if !g.IsCyclicSCC(c) {
			continue
		}
		for _, n := range c {
			if n == name {
				sorted := append([]string(nil), c...)
				sort.Strings(sorted)
				return sorted, true
			}
		}
	}
	return nil, false
}

// analyzeCycle solves every member of one mutual-recursion SCC as a unit
// (spec §4.6 "Mutual Recurrence"), caching each member's result before
// returning the one the caller actually asked for.
func (s *Session) analyzeCycle(file string, sym *semantic.Symbol, scc []string, model *semantic.Model, graph *callgraph.Graph, cache *callgraph.ResultCache, det speculative.Detection) MethodResult {
	v := canonicalVariable()
	members := make(map[string]bool, len(scc))
	for _, n := range scc {
		members[n] = true
	}

	components := make([]solve.MutualComponent, 0, len(scc))
	for _, name := range scc {
		memberSym, ok := model.Resolve(name)
		if !ok {
			continue
		}
		w := newWalker(model, s.Table, cache, name, v)
		w.cycleMembers = members
		work := w.stmts(memberSym.Program.Body)
		reductions := cycleReductions(memberSym, members)
		components = append(components, solve.MutualComponent{
			Name:             name,
			NonRecursiveWork: work,
			CycleReductions:  reductions,
		})
	}

	res, _ := solve.Mutual(components, v)

	var final expr.Expr
	confidence := det.Confidence
	if res.Method == solve.MethodNotApplicable {
		final = compose.ConservativeFallback(v, expr.NewVariable("n", expr.KindInputSize))
		confidence = confidence.Compose(0.4)
	} else {
		final = res.Solution
		confidence = confidence.Compose(complexity.Confidence(res.Confidence))
	}
	final = classify.Simplify(final)

	var result MethodResult
	for _, name := range scc {
		memberSym, ok := model.Resolve(name)
		if !ok {
			continue
		}
		r := s.buildResult(file, memberSym, final, confidence, false, false, "mutual recursion")
		cache.Put(name, cachedEntry{Expr: r.expr, Confidence: r.confidence})
		s.Cache.Put(name, ContentHash(memberSym.Program), r)
		if name == sym.Name {
			result = r
		}
	}
	return result
}

// cycleReductions classifies every call from sym's body that targets
// another member of its own strongly connected component, mirroring
// extract.DetectRecursiveCalls' argument-reduction classification but for
// inter-member calls rather than pure self-recursion.
func cycleReductions(sym *semantic.Symbol, members map[string]bool) []recurrence.Term {
	var terms []recurrence.Term
	if len(sym.Params) == 0 {
		return terms
	}
	param := sym.Params[0]
	walkCalls(sym.Program.Body, func(call *callSite) {
		if !members[call.Callee] || len(call.Args) == 0 {
			return
		}
		terms = append(terms, classifyCycleArg(param, call.Args[0])...)
	})
	return terms
}
