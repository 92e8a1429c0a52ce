package expr

import "math"

// Evaluate returns a non-negative real, or ok=false when the expression is
// "undefined" at this assignment (spec §3 invariant 2): a free variable is
// missing from assign, or the expression needs the solver (an unsolved
// Recurrence falls back to unrolling for n<=100, else undefined).

func (c *Constant) Evaluate(assign map[string]float64) (float64, bool) { return c.Value, true }

func evalVar(v *Variable, assign map[string]float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	val, ok := assign[v.Name]
	return val, ok
}

func (x *Variable) Evaluate(assign map[string]float64) (float64, bool) { return evalVar(x, assign) }

func (l *Linear) Evaluate(assign map[string]float64) (float64, bool) {
	v, ok := evalVar(l.Var, assign)
	if !ok {
		return 0, false
	}
	return l.Coefficient * v, true
}

func (p *Polynomial) Evaluate(assign map[string]float64) (float64, bool) {
	v, ok := evalVar(p.Var, assign)
	if !ok {
		return 0, false
	}
	sum := 0.0
	for deg, coef := range p.Coefficients {
		sum += coef * math.Pow(v, float64(deg))
	}
	return sum, true
}

func (l *Logarithmic) Evaluate(assign map[string]float64) (float64, bool) {
	v, ok := evalVar(l.Var, assign)
	if !ok || v <= 0 {
		return 0, false
	}
	return l.Coefficient * logBase(v, l.Base), true
}

func logBase(x, base float64) float64 {
	if base <= 1 {
		return math.Log2(x)
	}
	return math.Log(x) / math.Log(base)
}

func (l *LogOf) Evaluate(assign map[string]float64) (float64, bool) {
	v, ok := l.Inner.Evaluate(assign)
	if !ok || v <= 0 {
		return 0, false
	}
	return logBase(v, l.Base), true
}

func (p *PolyLog) Evaluate(assign map[string]float64) (float64, bool) {
	v, ok := evalVar(p.Var, assign)
	if !ok || v <= 0 {
		return 0, false
	}
	val := math.Pow(v, p.PolyDegree)
	if p.LogExponent != 0 {
		val *= math.Pow(logBase(v, 0), p.LogExponent)
	}
	return val, true
}

func (e *Exponential) Evaluate(assign map[string]float64) (float64, bool) {
	v, ok := evalVar(e.Var, assign)
	if !ok {
		return 0, false
	}
	return math.Pow(e.Base, v), true
}

func (f *Factorial) Evaluate(assign map[string]float64) (float64, bool) {
	v, ok := evalVar(f.Var, assign)
	if !ok || v < 0 {
		return 0, false
	}
	n := int(v)
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}
	return result, true
}

func (p *Power) Evaluate(assign map[string]float64) (float64, bool) {
	base, ok := p.Base.Evaluate(assign)
	if !ok {
		return 0, false
	}
	return math.Pow(base, p.Exponent), true
}

func (a *InverseAckermann) Evaluate(assign map[string]float64) (float64, bool) {
	v, ok := evalVar(a.Var, assign)
	if !ok || v < 1 {
		return 0, false
	}
	// alpha(n) grows so slowly that for all practical n it is <= 4; this is
	// a reporting convenience, not a claim of exactness.
	for k := 1; k <= 5; k++ {
		if v < towerOf2(k) {
			return float64(k), true
		}
	}
	return 5, true
}

func towerOf2(k int) float64 {
	v := 2.0
	for i := 1; i < k; i++ {
		v = math.Pow(2, v)
	}
	return v
}

func (b *BinaryOp) Evaluate(assign map[string]float64) (float64, bool) {
	l, lok := b.Left.Evaluate(assign)
	r, rok := b.Right.Evaluate(assign)
	if !lok || !rok {
		return 0, false
	}
	switch b.Op {
	case OpPlus:
		return l + r, true
	case OpMultiply:
		return l * r, true
	case OpMax:
		return math.Max(l, r), true
	case OpMin:
		return math.Min(l, r), true
	}
	return 0, false
}

func (s *SymbolicIntegral) Evaluate(assign map[string]float64) (float64, bool) {
	// The closed integral is never computed numerically by the core; the
	// oracle (external collaborator) or the table in solve/akrabazzi.go
	// produces a closed asymptotic term instead. Numeric evaluation falls
	// back to the conservative bound.
	return s.AsymptoticBound.Evaluate(assign)
}

func (r *Recurrence) Evaluate(assign map[string]float64) (float64, bool) {
	v, ok := evalVar(r.Var, assign)
	if !ok {
		return 0, false
	}
	return unrollRecurrence(r, v, assign, 0)
}

const maxUnrollN = 100

func unrollRecurrence(r *Recurrence, n float64, assign map[string]float64, depth int) (float64, bool) {
	if n > maxUnrollN {
		return 0, false // prefer the solver path for large n
	}
	if depth > 200 {
		return 0, false
	}
	if r.BaseCase != nil && n <= 1 {
		return r.BaseCase.Evaluate(withVar(assign, r.Var.Name, n))
	}
	work, ok := r.Work.Evaluate(withVar(assign, r.Var.Name, n))
	if !ok {
		return 0, false
	}
	total := work
	for _, t := range r.Terms {
		argAssign := withVar(assign, r.Var.Name, n)
		arg, ok := t.Argument.Evaluate(argAssign)
		if !ok {
			return 0, false
		}
		sub, ok := unrollRecurrence(r, arg, assign, depth+1)
		if !ok {
			return 0, false
		}
		total += t.Coefficient * sub
	}
	return total, true
}

func withVar(assign map[string]float64, name string, val float64) map[string]float64 {
	out := make(map[string]float64, len(assign)+1)
	for k, v := range assign {
		out[k] = v
	}
	out[name] = val
	return out
}

func (a *Amortized) Evaluate(assign map[string]float64) (float64, bool) {
	return a.AmortizedCost.Evaluate(assign)
}

func (m *Memory) Evaluate(assign map[string]float64) (float64, bool) {
	return m.Total.Evaluate(assign)
}

func (p *Parallel) Evaluate(assign map[string]float64) (float64, bool) {
	if p.Expected != nil {
		return p.Expected.Evaluate(assign)
	}
	return p.Inner.Evaluate(assign)
}

func (p *Probabilistic) Evaluate(assign map[string]float64) (float64, bool) {
	if p.Expected != nil {
		return p.Expected.Evaluate(assign)
	}
	return p.Inner.Evaluate(assign)
}
