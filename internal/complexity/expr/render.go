package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Render produces the canonical Big-O string for an expression (spec
// §4.1). Composite operations render as `O(a + b)` / `O(a · b)`; picking
// the dominant summand out of a Plus/Max chain is the simplifier's job
// (C2), not the renderer's — Render always shows exactly what it is given.

func renderVar(v *Variable) string {
	if v == nil {
		return "n"
	}
	return v.Name
}

func (c *Constant) Render() string { return "O(1)" }

func (x *Variable) Render() string { return fmt.Sprintf("O(%s)", renderVar(x)) }

func (l *Linear) Render() string { return fmt.Sprintf("O(%s)", renderVar(l.Var)) }

func (p *Polynomial) Render() string {
	d := p.Degree()
	switch d {
	case 0:
		return "O(1)"
	case 1:
		return fmt.Sprintf("O(%s)", renderVar(p.Var))
	case 2:
		return fmt.Sprintf("O(%s²)", renderVar(p.Var))
	case 3:
		return fmt.Sprintf("O(%s³)", renderVar(p.Var))
	default:
		return fmt.Sprintf("O(%s^%d)", renderVar(p.Var), d)
	}
}

func (l *Logarithmic) Render() string { return fmt.Sprintf("O(log %s)", renderVar(l.Var)) }

func (l *LogOf) Render() string {
	inner := l.Inner.Render()
	return fmt.Sprintf("O(log(%s))", stripO(inner))
}

func stripO(s string) string {
	s = strings.TrimPrefix(s, "O(")
	s = strings.TrimSuffix(s, ")")
	return s
}

func formatExponent(e float64) string {
	s := strconv.FormatFloat(e, 'f', -1, 64)
	// Cap at 3 decimals, as spec requires for O(n^p).
	if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 > 3 {
		s = strconv.FormatFloat(e, 'f', 3, 64)
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

func (p *PolyLog) Render() string {
	v := renderVar(p.Var)
	switch {
	case p.LogExponent == 0:
		return renderPolyDegree(v, p.PolyDegree)
	case p.PolyDegree == 0:
		if p.LogExponent == 1 {
			return fmt.Sprintf("O(log %s)", v)
		}
		return fmt.Sprintf("O(log^%s %s)", formatExponent(p.LogExponent), v)
	default:
		polyPart := stripO(renderPolyDegree(v, p.PolyDegree))
		if p.LogExponent == 1 {
			return fmt.Sprintf("O(%s log %s)", polyPart, v)
		}
		return fmt.Sprintf("O(%s log^%s %s)", polyPart, formatExponent(p.LogExponent), v)
	}
}

func renderPolyDegree(v string, d float64) string {
	switch d {
	case 0:
		return "O(1)"
	case 1:
		return fmt.Sprintf("O(%s)", v)
	case 2:
		return fmt.Sprintf("O(%s²)", v)
	case 3:
		return fmt.Sprintf("O(%s³)", v)
	default:
		return fmt.Sprintf("O(%s^%s)", v, formatExponent(d))
	}
}

func (e *Exponential) Render() string {
	v := renderVar(e.Var)
	if e.Base == 2 {
		return fmt.Sprintf("O(2^%s)", v)
	}
	return fmt.Sprintf("O(%s^%s)", formatExponent(e.Base), v)
}

func (f *Factorial) Render() string { return fmt.Sprintf("O(%s!)", renderVar(f.Var)) }

func (p *Power) Render() string {
	inner := stripO(p.Base.Render())
	return fmt.Sprintf("O(%s^%s)", inner, formatExponent(p.Exponent))
}

func (a *InverseAckermann) Render() string { return fmt.Sprintf("O(α(%s))", renderVar(a.Var)) }

func (b *BinaryOp) Render() string {
	l := stripO(b.Left.Render())
	r := stripO(b.Right.Render())
	switch b.Op {
	case OpPlus:
		return fmt.Sprintf("O(%s + %s)", l, r)
	case OpMultiply:
		return fmt.Sprintf("O(%s · %s)", l, r)
	case OpMax:
		return fmt.Sprintf("O(max(%s, %s))", l, r)
	case OpMin:
		return fmt.Sprintf("O(min(%s, %s))", l, r)
	}
	return "O(?)"
}

func (s *SymbolicIntegral) Render() string { return s.AsymptoticBound.Render() }

func (r *Recurrence) Render() string {
	return fmt.Sprintf("O(recurrence over %s, unsolved)", renderVar(r.Var))
}

func (a *Amortized) Render() string {
	return fmt.Sprintf("%s amortized (worst %s)", a.AmortizedCost.Render(), a.WorstCase.Render())
}

func (m *Memory) Render() string { return m.Total.Render() }

func (p *Parallel) Render() string {
	if p.Expected != nil {
		return p.Expected.Render()
	}
	return p.Inner.Render()
}

func (p *Probabilistic) Render() string {
	if p.Expected != nil {
		return p.Expected.Render()
	}
	return p.Inner.Render()
}
