package expr

// Visitor is the one polymorphic boundary the expression algebra exposes
// (spec §9): double-dispatch over the closed variant set, exhaustively
// covered. Adding a new case here is the only way to add a new kind of
// complexity term.
type Visitor interface {
	VisitConstant(*Constant) any
	VisitVariable(*Variable) any
	VisitLinear(*Linear) any
	VisitPolynomial(*Polynomial) any
	VisitLogarithmic(*Logarithmic) any
	VisitLogOf(*LogOf) any
	VisitPolyLog(*PolyLog) any
	VisitExponential(*Exponential) any
	VisitFactorial(*Factorial) any
	VisitPower(*Power) any
	VisitInverseAckermann(*InverseAckermann) any
	VisitBinaryOp(*BinaryOp) any
	VisitSymbolicIntegral(*SymbolicIntegral) any
	VisitRecurrence(*Recurrence) any
	VisitAmortized(*Amortized) any
	VisitMemory(*Memory) any
	VisitParallel(*Parallel) any
	VisitProbabilistic(*Probabilistic) any
}

func (c *Constant) Accept(v Visitor) any          { return v.VisitConstant(c) }
func (x *Variable) Accept(v Visitor) any          { return v.VisitVariable(x) }
func (l *Linear) Accept(v Visitor) any            { return v.VisitLinear(l) }
func (p *Polynomial) Accept(v Visitor) any        { return v.VisitPolynomial(p) }
func (l *Logarithmic) Accept(v Visitor) any       { return v.VisitLogarithmic(l) }
func (l *LogOf) Accept(v Visitor) any             { return v.VisitLogOf(l) }
func (p *PolyLog) Accept(v Visitor) any           { return v.VisitPolyLog(p) }
func (e *Exponential) Accept(v Visitor) any       { return v.VisitExponential(e) }
func (f *Factorial) Accept(v Visitor) any         { return v.VisitFactorial(f) }
func (p *Power) Accept(v Visitor) any             { return v.VisitPower(p) }
func (a *InverseAckermann) Accept(v Visitor) any  { return v.VisitInverseAckermann(a) }
func (b *BinaryOp) Accept(v Visitor) any          { return v.VisitBinaryOp(b) }
func (s *SymbolicIntegral) Accept(v Visitor) any  { return v.VisitSymbolicIntegral(s) }
func (r *Recurrence) Accept(v Visitor) any        { return v.VisitRecurrence(r) }
func (a *Amortized) Accept(v Visitor) any         { return v.VisitAmortized(a) }
func (m *Memory) Accept(v Visitor) any            { return v.VisitMemory(m) }
func (p *Parallel) Accept(v Visitor) any          { return v.VisitParallel(p) }
func (p *Probabilistic) Accept(v Visitor) any     { return v.VisitProbabilistic(p) }

// BaseVisitor can be embedded to satisfy Visitor while only overriding the
// cases a particular pass cares about; unimplemented cases return nil.
type BaseVisitor struct{}

func (BaseVisitor) VisitConstant(*Constant) any                   { return nil }
func (BaseVisitor) VisitVariable(*Variable) any                   { return nil }
func (BaseVisitor) VisitLinear(*Linear) any                       { return nil }
func (BaseVisitor) VisitPolynomial(*Polynomial) any                { return nil }
func (BaseVisitor) VisitLogarithmic(*Logarithmic) any              { return nil }
func (BaseVisitor) VisitLogOf(*LogOf) any                         { return nil }
func (BaseVisitor) VisitPolyLog(*PolyLog) any                      { return nil }
func (BaseVisitor) VisitExponential(*Exponential) any              { return nil }
func (BaseVisitor) VisitFactorial(*Factorial) any                  { return nil }
func (BaseVisitor) VisitPower(*Power) any                          { return nil }
func (BaseVisitor) VisitInverseAckermann(*InverseAckermann) any    { return nil }
func (BaseVisitor) VisitBinaryOp(*BinaryOp) any                    { return nil }
func (BaseVisitor) VisitSymbolicIntegral(*SymbolicIntegral) any    { return nil }
func (BaseVisitor) VisitRecurrence(*Recurrence) any                { return nil }
func (BaseVisitor) VisitAmortized(*Amortized) any                  { return nil }
func (BaseVisitor) VisitMemory(*Memory) any                        { return nil }
func (BaseVisitor) VisitParallel(*Parallel) any                    { return nil }
func (BaseVisitor) VisitProbabilistic(*Probabilistic) any          { return nil }
