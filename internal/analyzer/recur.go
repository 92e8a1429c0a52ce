package analyzer

import (
	"complexity/internal/complexity/expr"
	"complexity/internal/complexity/extract"
	"complexity/internal/complexity/recurrence"
	"complexity/internal/parser"
)

// hasUnsolvableReduction reports whether any detected recursive call's
// argument reduction could not be classified into a scaled or decreasing
// shape, meaning no solver can be trusted with the resulting relation
// (spec §7 "non-reducing recurrence" boundary behavior).
func hasUnsolvableReduction(calls []extract.RecursiveCall) bool {
	for _, c := range calls {
		if c.Reduction == extract.ReductionNonReducing || c.Reduction == extract.ReductionUnknown {
			return true
		}
	}
	return false
}

// buildRelation turns a method's classified recursive calls into the
// normalized Relation C6's solvers consume (spec §4.3 -> §4.6): each
// scaled call becomes a divide term, each decreasing call a subtractive
// term, and the method's own non-recursive structural cost becomes the
// relation's work term g(n).
func buildRelation(calls []extract.RecursiveCall, work expr.Expr, v *expr.Variable) recurrence.Relation {
	terms := make([]recurrence.Term, 0, len(calls))
	for _, c := range calls {
		switch c.Reduction {
		case extract.ReductionScaled:
			terms = append(terms, recurrence.Term{Coefficient: 1, DivisionFactor: c.ScaleFactor})
		case extract.ReductionDecreasing:
			terms = append(terms, recurrence.Term{Coefficient: 1, Subtractive: true, Reduction: c.Subtracted})
		}
	}
	return recurrence.Relation{Terms: terms, Var: v, Work: work, BaseCase: expr.NewConstant(1)}
}

// classifyCycleArg mirrors the argument-reduction classification
// extract.DetectRecursiveCalls applies to self-calls, but for a call
// whose callee is a different member of the same mutual-recursion SCC:
// param is the dominant parameter name of the calling method, and arg is
// the corresponding argument expression at one such call site.
func classifyCycleArg(param string, arg parser.Expr) []recurrence.Term {
	bin, ok := arg.(*parser.Binary)
	if !ok {
		return nil
	}
	left, ok := bin.Left.(*parser.Variable)
	if !ok || left.Name != param {
		return nil
	}
	lit, ok := bin.Right.(*parser.Literal)
	if !ok {
		return nil
	}
	f, ok := lit.Value.(float64)
	if !ok {
		return nil
	}
	switch bin.Operator {
	case "/":
		if f != 0 {
			return []recurrence.Term{{Coefficient: 1, DivisionFactor: f}}
		}
	case ">>":
		return []recurrence.Term{{Coefficient: 1, DivisionFactor: pow2Local(f)}}
	case "-":
		return []recurrence.Term{{Coefficient: 1, Subtractive: true, Reduction: f}}
	}
	return nil
}

func pow2Local(shift float64) float64 {
	result := 1.0
	for i := 0; i < int(shift); i++ {
		result *= 2
	}
	return result
}
