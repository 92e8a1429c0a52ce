// Package speculative implements the speculative layer (C8): detecting
// incomplete code, stub bodies, explicit complexity contracts, and
// polymorphic-call uncertainty, and folding all four into the confidence
// score attached to a method result (spec §4.8).
package speculative

import (
	"regexp"
	"strings"

	"complexity/internal/complexity"
	"complexity/internal/complexity/expr"
	"complexity/internal/parser"
)

// Marker is one recognized incompleteness signal.
type Marker string

const (
	MarkerNotImplementedThrow Marker = "not-implemented-throw" // definite
	MarkerNotSupportedThrow   Marker = "not-supported-throw"    // likely
	MarkerEmptyBody           Marker = "empty-body"             // likely
	MarkerBareReturn          Marker = "bare-return"             // likely
	MarkerTodoComment         Marker = "todo-comment"            // likely
)

// Detection is the outcome of running the speculative passes over one
// method body.
type Detection struct {
	Incomplete    bool
	Markers       []Marker
	IsStub        bool
	Contract      expr.Expr // non-nil when a complexity contract was parsed
	HasUncertainty bool
	Dependencies  []string // "TypeName.MemberName" for each polymorphic call site
	Confidence    complexity.Confidence
}

var todoPattern = regexp.MustCompile(`(?i)\b(TODO|FIXME|HACK|XXX|UNDONE)\b`)

// contractPattern matches a doc-comment or annotation complexity phrase:
// `[Complexity("O(n log n)")]`, or the bare phrase `O(...)` anywhere in a
// comment.
var contractPattern = regexp.MustCompile(`O\(\s*([a-zA-Z0-9_^*+\s.log]+?)\s*\)`)

// Detect runs the three ordered detectors plus the uncertainty tracker
// over a function body (spec §4.8). sourceComments is the raw comment
// text associated with the method (line/block comments the grammar
// discards at the lexical stage, so callers must supply it separately —
// see internal/lexer/scanner.go's "ignore comments" branch).
func Detect(fn *parser.FunctionStmt, sourceComments string) Detection {
	if contract, ok := ReadContract(sourceComments); ok {
		d := Detection{Contract: contract, Confidence: complexity.ConfidenceContract}
		d.applyUncertainty(fn)
		return d
	}

	if markers := incompleteMarkers(fn, sourceComments); len(markers) > 0 {
		d := Detection{Incomplete: true, Markers: markers, Confidence: incompleteConfidence(markers)}
		d.applyUncertainty(fn)
		return d
	}

	if IsStub(fn) {
		d := Detection{IsStub: true, Confidence: complexity.ConfidenceStub}
		d.applyUncertainty(fn)
		return d
	}

	d := Detection{Confidence: complexity.ConfidenceStructural}
	d.applyUncertainty(fn)
	return d
}

// incompleteMarkers collects every incompleteness signal found in a
// method's body or its comments. A "not implemented" throw, when it is
// the body's only statement, is the definite marker; everything else is a
// "likely" marker. Any marker, definite or likely, flags the method
// incomplete; each likely marker lowers confidence by the TODO penalty.
func incompleteMarkers(fn *parser.FunctionStmt, comments string) []Marker {
	var markers []Marker
	if isNotImplementedThrow(fn.Body) {
		markers = append(markers, MarkerNotImplementedThrow)
	}
	if isNotSupportedThrow(fn.Body) {
		markers = append(markers, MarkerNotSupportedThrow)
	}
	if len(fn.Body) == 0 {
		markers = append(markers, MarkerEmptyBody)
	}
	if isSingleBareReturn(fn.Body) {
		markers = append(markers, MarkerBareReturn)
	}
	if todoPattern.MatchString(comments) {
		markers = append(markers, MarkerTodoComment)
	}
	return markers
}

func incompleteConfidence(markers []Marker) complexity.Confidence {
	for _, m := range markers {
		if m == MarkerNotImplementedThrow {
			return complexity.ConfidenceIncomplete
		}
	}
	c := complexity.ConfidenceStructural
	for range markers {
		c = c.WithTODOPenalty()
	}
	return c
}

func isNotImplementedThrow(body []parser.Stmt) bool {
	return len(body) == 1 && throwMessageContains(body[0], "not implemented")
}

func isNotSupportedThrow(body []parser.Stmt) bool {
	for _, s := range body {
		if throwMessageContains(s, "not supported") {
			return true
		}
	}
	return false
}

// throwMessageContains matches a throw statement against phrase two ways:
// a string literal message (`throw "not implemented"`), or the callee
// name of a thrown constructor call (`throw NotImplementedException()`,
// which parses as a bare CallExpr — this grammar has no dedicated `new`
// expression). Type names carry no spaces, so the callee check strips
// them from phrase before comparing ("not implemented" -> "notimplemented"
// is a substring of "notimplementedexception").
func throwMessageContains(s parser.Stmt, phrase string) bool {
	t, ok := s.(*parser.ThrowStmt)
	if !ok {
		return false
	}
	if lit, ok := t.Value.(*parser.Literal); ok {
		if text, ok := lit.Value.(string); ok && strings.Contains(strings.ToLower(text), phrase) {
			return true
		}
	}
	if call, ok := t.Value.(*parser.CallExpr); ok {
		name := calleeName(call.Callee)
		normalizedPhrase := strings.ReplaceAll(phrase, " ", "")
		if name != "" && strings.Contains(strings.ToLower(name), normalizedPhrase) {
			return true
		}
	}
	return false
}

// calleeName extracts the identifier a call expression dispatches through,
// so a thrown exception's constructor name can be matched the same way a
// string message would be.
func calleeName(e parser.Expr) string {
	switch c := e.(type) {
	case *parser.Variable:
		return c.Name
	case *parser.PropertyExpr:
		return c.Property
	}
	return ""
}

func isSingleBareReturn(body []parser.Stmt) bool {
	if len(body) != 1 {
		return false
	}
	ret, ok := body[0].(*parser.ReturnStmt)
	return ok && ret.Value == nil
}

// IsStub recognizes spec §4.8's stub shapes: a constant/default/null
// return, an expression-bodied literal return, or a body whose only
// non-return statement increments a counter-like field.
func IsStub(fn *parser.FunctionStmt) bool {
	if len(fn.Body) == 0 {
		return false
	}
	if len(fn.Body) == 1 {
		if ret, ok := fn.Body[0].(*parser.ReturnStmt); ok {
			if _, isLit := ret.Value.(*parser.Literal); isLit {
				return true
			}
			if ret.Value == nil {
				return true
			}
		}
	}
	if len(fn.Body) == 2 {
		if isCounterIncrement(fn.Body[0]) {
			if _, ok := fn.Body[1].(*parser.ReturnStmt); ok {
				return true
			}
		}
	}
	return false
}

func isCounterIncrement(s parser.Stmt) bool {
	a, ok := s.(*parser.AssignmentStmt)
	if !ok {
		return false
	}
	bin, ok := a.Value.(*parser.Binary)
	if !ok || bin.Operator != "+" {
		return false
	}
	lhs, ok := bin.Left.(*parser.Variable)
	return ok && lhs.Name == a.Name
}

// ReadContract parses a `[Complexity("...")]` annotation or a doc-comment
// `O(...)` phrase out of raw comment text into a C1 expression, per spec
// §4.8's small grammar (`O( ... )`, `n log n`, `n^k`).
func ReadContract(comments string) (expr.Expr, bool) {
	matches := contractPattern.FindStringSubmatch(comments)
	if matches == nil {
		return nil, false
	}
	return parseContractBody(strings.TrimSpace(matches[1]))
}

func parseContractBody(body string) (expr.Expr, bool) {
	n := expr.NewVariable("n", expr.KindInputSize)
	normalized := strings.ToLower(strings.ReplaceAll(body, " ", ""))
	switch normalized {
	case "1":
		return expr.NewConstant(1), true
	case "n":
		return n, true
	case "nlogn":
		return expr.NewPolyLog(1, 1, n), true
	case "logn":
		return expr.NewLogarithmic(1, 2, n), true
	case "n^2", "n2", "n*n":
		return expr.NewPolynomial(map[int]float64{2: 1}, n), true
	case "n^3", "n3":
		return expr.NewPolynomial(map[int]float64{3: 1}, n), true
	case "2^n":
		return expr.NewExponential(2, n), true
	}
	return nil, false
}

// applyUncertainty runs the fourth pass: scanning the body's calls for
// polymorphic targets. Since this grammar has no interface/virtual
// keyword to check statically, a call through a property access
// (`object.Method(...)`) is treated as the polymorphic-call heuristic —
// a direct top-level function call is assumed statically resolved, a
// method call through an object reference is assumed potentially
// dispatched dynamically. See DESIGN.md for why this stands in for the
// spec's interface/abstract/virtual-non-sealed check.
func (d *Detection) applyUncertainty(fn *parser.FunctionStmt) {
	deps := polymorphicCallSites(fn.Body)
	if len(deps) == 0 {
		return
	}
	d.HasUncertainty = true
	d.Dependencies = deps
	for range deps {
		d.Confidence = d.Confidence.WithPolymorphicPenalty()
	}
}

func polymorphicCallSites(body []parser.Stmt) []string {
	var sites []string
	seen := make(map[string]bool)
	var walk func(parser.Stmt)
	var walkExpr func(parser.Expr)
	walkExpr = func(e parser.Expr) {
		if e == nil {
			return
		}
		if call, ok := e.(*parser.CallExpr); ok {
			if prop, ok := call.Callee.(*parser.PropertyExpr); ok {
				site := propertyReceiverName(prop) + "." + prop.Property
				if !seen[site] {
					seen[site] = true
					sites = append(sites, site)
				}
			}
			walkExpr(call.Callee)
			for _, a := range call.Args {
				walkExpr(a)
			}
		}
		switch ex := e.(type) {
		case *parser.Binary:
			walkExpr(ex.Left)
			walkExpr(ex.Right)
		case *parser.PropertyExpr:
			walkExpr(ex.Object)
		case *parser.IfExpr:
			walkExpr(ex.Cond)
			walkExpr(ex.ThenBranch)
			walkExpr(ex.ElseBranch)
		case *parser.UnaryExpr:
			walkExpr(ex.Operand)
		case *parser.LogicalExpr:
			walkExpr(ex.Left)
			walkExpr(ex.Right)
		}
	}
	walk = func(s parser.Stmt) {
		switch st := s.(type) {
		case *parser.ExpressionStmt:
			walkExpr(st.Expr)
		case *parser.ReturnStmt:
			walkExpr(st.Value)
		case *parser.LetStmt:
			walkExpr(st.Expr)
		case *parser.AssignmentStmt:
			walkExpr(st.Value)
		case *parser.IfStmt:
			walkExpr(st.Condition)
			for _, inner := range st.Then {
				walk(inner)
			}
			for _, inner := range st.Else {
				walk(inner)
			}
		case *parser.WhileStmt:
			walkExpr(st.Condition)
			for _, inner := range st.Body {
				walk(inner)
			}
		case *parser.ForStmt:
			for _, inner := range st.Body {
				walk(inner)
			}
		case *parser.ForInStmt:
			for _, inner := range st.Body {
				walk(inner)
			}
		}
	}
	for _, s := range body {
		walk(s)
	}
	return sites
}

func propertyReceiverName(p *parser.PropertyExpr) string {
	if v, ok := p.Object.(*parser.Variable); ok {
		return v.Name
	}
	return "unknown"
}
