// Package solve implements the theorem solvers (C6): Master Theorem
// cases 1-3 with a structural regularity check, Akra-Bazzi with
// critical-exponent root finding and a table-driven integral evaluator,
// a linear recurrence solver via the characteristic polynomial, and a
// mutual-recurrence reducer over a call-graph SCC.
package solve

import (
	"complexity/internal/complexity/expr"
	"complexity/internal/complexity/recurrence"
)

// Method tags which solver path produced a Result.
type Method string

const (
	MethodMaster        Method = "master"
	MethodAkraBazzi      Method = "akra-bazzi"
	MethodLinear         Method = "linear"
	MethodNotApplicable  Method = "not-applicable"
)

// Result is the solver's outcome: exactly one of MasterApplicable,
// AkraBazziApplicable, LinearSolved, or NotApplicable (spec §4.6).
type Result struct {
	Method     Method
	Solution   expr.Expr // nil when Method == MethodNotApplicable
	Case       int       // Master Theorem case 1-3, or 0 if not Master
	Confidence float64

	Reason            string   // set when NotApplicable
	ViolatedConditions []string
	Suggestions       []string
}

func notApplicable(reason string, violated, suggestions []string) Result {
	return Result{Method: MethodNotApplicable, Reason: reason, ViolatedConditions: violated, Suggestions: suggestions}
}

// Solve tries each solver in order of applicability — Master Theorem
// first (narrowest, most precise), then Akra-Bazzi (broader divide-and-
// conquer shapes), then the linear/characteristic-polynomial solver for
// purely subtractive relations — and returns the first applicable
// result, or the last NotApplicable if none apply (spec §2 flow: "If a
// recurrence is present, C5 normalizes it and C6 solves it").
func Solve(r recurrence.Relation) Result {
	if r.WellFormedForMaster() {
		if res := Master(r); res.Method != MethodNotApplicable {
			return res
		}
	}
	if r.WellFormedForAkraBazzi() {
		if res := AkraBazzi(r); res.Method != MethodNotApplicable {
			return res
		}
	}
	if r.IsLinearSubtractive() {
		return Linear(r)
	}
	return notApplicable(
		"relation matches no solver's precondition shape",
		[]string{"Master well-formedness", "Akra-Bazzi well-formedness", "linear subtractive shape"},
		[]string{"numeric unrolling"},
	)
}
