package expr

import "sort"

// rank gives every variant a position in the asymptotic total order (spec
// §4.2 "Ordering"): Constant < Logarithmic < Polynomial(d) < PolyLog <
// Exponential(base) < Factorial. Used both to sort BinaryOp operands for
// canonical comparison and, together with the numeric tiebreaker, to
// compare two expressions asymptotically (DominatesPolynomial et al. live
// in the classify package; this is purely the ordering primitive).
func rank(e Expr) (class int, key float64) {
	switch v := e.(type) {
	case *Constant:
		return 0, v.Value
	case *Logarithmic:
		return 1, v.Coefficient
	case *LogOf:
		return 1, 1
	case *Variable:
		return 2, 1
	case *Linear:
		return 2, v.Coefficient
	case *Polynomial:
		return 2, float64(v.Degree())
	case *PolyLog:
		return 3, v.PolyDegree
	case *Exponential:
		return 4, v.Base
	case *Factorial:
		return 5, 1
	case *Power:
		return 3, v.Exponent
	case *InverseAckermann:
		return 1, 0.5
	default:
		return 6, 0
	}
}

// Less reports whether a strictly precedes b in asymptotic rank, used to sort
// BinaryOp operands into canonical order before structural comparison
// (spec §4.1 "both operands are sorted by a total order on variants").
func Less(a, b Expr) bool {
	ca, ka := rank(a)
	cb, kb := rank(b)
	if ca != cb {
		return ca < cb
	}
	return ka < kb
}

// SortOperands returns operands of a commutative BinaryOp in canonical
// order, ties preserving original order (stable).
func SortOperands(operands []Expr) []Expr {
	out := make([]Expr, len(operands))
	copy(out, operands)
	sort.SliceStable(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}

// Equal is structural equality after normalization (spec §4.1
// "Equivalence"). It does not itself normalize — callers should run
// classify.Simplify first; Equal then compares the closed variant shapes
// field by field, treating BinaryOp as commutative (operands compared in
// sorted order).
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch x := a.(type) {
	case *Constant:
		y, ok := b.(*Constant)
		return ok && x.Value == y.Value
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *Linear:
		y, ok := b.(*Linear)
		return ok && x.Coefficient == y.Coefficient && varEq(x.Var, y.Var)
	case *Polynomial:
		y, ok := b.(*Polynomial)
		if !ok || !varEq(x.Var, y.Var) || len(x.Coefficients) != len(y.Coefficients) {
			return false
		}
		for d, c := range x.Coefficients {
			if y.Coefficients[d] != c {
				return false
			}
		}
		return true
	case *Logarithmic:
		y, ok := b.(*Logarithmic)
		return ok && x.Coefficient == y.Coefficient && varEq(x.Var, y.Var)
	case *LogOf:
		y, ok := b.(*LogOf)
		return ok && Equal(x.Inner, y.Inner)
	case *PolyLog:
		y, ok := b.(*PolyLog)
		return ok && x.PolyDegree == y.PolyDegree && x.LogExponent == y.LogExponent && varEq(x.Var, y.Var)
	case *Exponential:
		y, ok := b.(*Exponential)
		return ok && x.Base == y.Base && varEq(x.Var, y.Var)
	case *Factorial:
		y, ok := b.(*Factorial)
		return ok && varEq(x.Var, y.Var)
	case *Power:
		y, ok := b.(*Power)
		return ok && x.Exponent == y.Exponent && Equal(x.Base, y.Base)
	case *InverseAckermann:
		y, ok := b.(*InverseAckermann)
		return ok && varEq(x.Var, y.Var)
	case *BinaryOp:
		y, ok := b.(*BinaryOp)
		if !ok || x.Op != y.Op {
			return false
		}
		if x.Op == OpPlus || x.Op == OpMultiply || x.Op == OpMax || x.Op == OpMin {
			xs := SortOperands([]Expr{x.Left, x.Right})
			ys := SortOperands([]Expr{y.Left, y.Right})
			return Equal(xs[0], ys[0]) && Equal(xs[1], ys[1])
		}
		return Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	default:
		return false
	}
}

func varEq(a, b *Variable) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name
}
