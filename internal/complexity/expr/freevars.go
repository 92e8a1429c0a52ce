package expr

func union(sets ...map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, s := range sets {
		for k := range s {
			out[k] = true
		}
	}
	return out
}

func single(name string) map[string]bool {
	if name == "" {
		return map[string]bool{}
	}
	return map[string]bool{name: true}
}

func varOf(v *Variable) map[string]bool {
	if v == nil {
		return map[string]bool{}
	}
	return single(v.Name)
}

func (c *Constant) FreeVariables() map[string]bool { return map[string]bool{} }
func (x *Variable) FreeVariables() map[string]bool { return varOf(x) }
func (l *Linear) FreeVariables() map[string]bool   { return varOf(l.Var) }
func (p *Polynomial) FreeVariables() map[string]bool { return varOf(p.Var) }
func (l *Logarithmic) FreeVariables() map[string]bool { return varOf(l.Var) }
func (l *LogOf) FreeVariables() map[string]bool      { return l.Inner.FreeVariables() }
func (p *PolyLog) FreeVariables() map[string]bool    { return varOf(p.Var) }
func (e *Exponential) FreeVariables() map[string]bool { return varOf(e.Var) }
func (f *Factorial) FreeVariables() map[string]bool  { return varOf(f.Var) }
func (p *Power) FreeVariables() map[string]bool      { return p.Base.FreeVariables() }
func (a *InverseAckermann) FreeVariables() map[string]bool { return varOf(a.Var) }

func (b *BinaryOp) FreeVariables() map[string]bool {
	return union(b.Left.FreeVariables(), b.Right.FreeVariables())
}

func (s *SymbolicIntegral) FreeVariables() map[string]bool {
	fv := union(s.Integrand.FreeVariables(), s.Lower.FreeVariables(), s.Upper.FreeVariables())
	if s.BoundVar != nil {
		delete(fv, s.BoundVar.Name)
	}
	return fv
}

func (r *Recurrence) FreeVariables() map[string]bool {
	fv := map[string]bool{}
	for _, t := range r.Terms {
		fv = union(fv, t.Argument.FreeVariables())
	}
	fv = union(fv, r.Work.FreeVariables())
	if r.BaseCase != nil {
		fv = union(fv, r.BaseCase.FreeVariables())
	}
	return fv
}

func (a *Amortized) FreeVariables() map[string]bool {
	return union(a.AmortizedCost.FreeVariables(), a.WorstCase.FreeVariables())
}

func (m *Memory) FreeVariables() map[string]bool {
	fv := union(m.Total.FreeVariables(), nonNilFV(m.Stack), nonNilFV(m.Heap), nonNilFV(m.Auxiliary))
	for _, al := range m.Allocations {
		fv = union(fv, nonNilFV(al.Size))
	}
	return fv
}

func nonNilFV(e Expr) map[string]bool {
	if e == nil {
		return map[string]bool{}
	}
	return e.FreeVariables()
}

func (p *Parallel) FreeVariables() map[string]bool {
	return union(p.Inner.FreeVariables(), nonNilFV(p.Expected), nonNilFV(p.Worst))
}

func (p *Probabilistic) FreeVariables() map[string]bool {
	return union(p.Inner.FreeVariables(), nonNilFV(p.Expected), nonNilFV(p.Worst))
}
