package solve

import (
	"math"
	"sort"

	"complexity/internal/complexity/classify"
	"complexity/internal/complexity/expr"
	"complexity/internal/complexity/recurrence"
)

const rootGroupTolerance = 1e-6

// root is one root of the characteristic polynomial, possibly complex.
type root struct {
	Re, Im      float64
	Multiplicity int
}

func (r root) modulus() float64 { return math.Hypot(r.Re, r.Im) }

// Linear solves T(n) = Sum(a_i * T(n-i)) + f(n) via the characteristic
// polynomial x^k - a_1*x^(k-1) - ... - a_k = 0 (spec §4.6).
func Linear(r recurrence.Relation) Result {
	if !r.IsLinearSubtractive() {
		return notApplicable(
			"relation is not purely subtractive (n-i shaped)",
			[]string{"term shape"},
			[]string{"try Master Theorem", "try Akra-Bazzi"},
		)
	}

	coeffs := characteristicCoefficients(r.Terms)
	roots := findRoots(coeffs)
	grouped := groupRoots(roots)

	dominant := grouped[0]
	for _, rt := range grouped {
		if rt.modulus() > dominant.modulus() {
			dominant = rt
		}
	}

	homogeneous := homogeneousSolution(dominant, r.Var)
	solution := combineWithParticular(homogeneous, dominant, r.Work, r.Var)

	return Result{Method: MethodLinear, Solution: solution, Confidence: 1.0}
}

// characteristicCoefficients maps reduction k -> summed coefficient a_k,
// for terms T(n-k) with coefficient a.
func characteristicCoefficients(terms []recurrence.Term) map[int]float64 {
	out := make(map[int]float64)
	for _, t := range terms {
		k := int(math.Round(t.Reduction))
		if k < 1 {
			k = 1
		}
		out[k] += t.Coefficient
	}
	return out
}

// findRoots solves x^k = Sum(a_i * x^(k-i)) for its roots. Degree 1 and 2
// are closed-form; degree >= 3 uses power iteration on the companion
// matrix to recover the dominant root's modulus, which is all the
// asymptotic classification needs (spec requires eigendecomposition in
// general, but only the dominant eigenvalue's modulus and multiplicity
// drive the final Theta(...) tag).
func findRoots(coeffs map[int]float64) []root {
	maxK := 0
	for k := range coeffs {
		if k > maxK {
			maxK = k
		}
	}
	switch maxK {
	case 1:
		return []root{{Re: coeffs[1], Multiplicity: 1}}
	case 2:
		a1, a2 := coeffs[1], coeffs[2]
		disc := a1*a1 + 4*a2
		if disc >= 0 {
			s := math.Sqrt(disc)
			return []root{
				{Re: (a1 + s) / 2, Multiplicity: 1},
				{Re: (a1 - s) / 2, Multiplicity: 1},
			}
		}
		s := math.Sqrt(-disc)
		return []root{
			{Re: a1 / 2, Im: s / 2, Multiplicity: 1},
			{Re: a1 / 2, Im: -s / 2, Multiplicity: 1},
		}
	default:
		return []root{powerIterationDominantRoot(coeffs, maxK)}
	}
}

// powerIterationDominantRoot estimates the companion matrix's dominant
// eigenvalue magnitude by power iteration on the recurrence itself
// (iterating x_{n} = Sum(a_i * x_{n-i}) from a unit seed and taking the
// ratio of successive terms), which converges to the dominant root's
// modulus for a diagonalizable companion matrix.
func powerIterationDominantRoot(coeffs map[int]float64, k int) root {
	history := make([]float64, k)
	for i := range history {
		history[i] = 1
	}
	var prevRatio, ratio float64
	for iter := 0; iter < 500; iter++ {
		next := 0.0
		for i := 1; i <= k; i++ {
			next += coeffs[i] * history[len(history)-i]
		}
		history = append(history, next)
		if len(history) > k+1 {
			history = history[1:]
		}
		denom := history[len(history)-2]
		if denom != 0 {
			prevRatio = ratio
			ratio = next / denom
		}
		if iter > 10 && math.Abs(ratio-prevRatio) < rootGroupTolerance {
			break
		}
	}
	return root{Re: ratio, Multiplicity: 1}
}

// groupRoots merges roots within rootGroupTolerance of each other,
// summing their multiplicities (spec "Group roots within tolerance 1e-6
// to detect multiplicities").
func groupRoots(roots []root) []root {
	sort.Slice(roots, func(i, j int) bool { return roots[i].modulus() > roots[j].modulus() })
	var out []root
	for _, r := range roots {
		merged := false
		for i := range out {
			if math.Abs(out[i].modulus()-r.modulus()) < rootGroupTolerance {
				out[i].Multiplicity += r.Multiplicity
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, r)
		}
	}
	return out
}

// homogeneousSolution applies the modulus-based case split (spec §4.6
// "Linear Recurrence"): |r|>1 -> O(r^n) (x n^(m-1) if repeated); |r|=1
// and repeated -> O(n^(m-1)); |r|<1 -> O(1).
func homogeneousSolution(r root, v *expr.Variable) expr.Expr {
	mod := r.modulus()
	switch {
	case mod > 1+1e-9:
		base := expr.Exponential{Base: mod, Var: v}
		if r.Multiplicity > 1 {
			return expr.Multiply(expr.NewPolynomial(map[int]float64{r.Multiplicity - 1: 1}, v), &base)
		}
		return &base
	case mod >= 1-1e-9 && r.Multiplicity > 1:
		return classify.Simplify(expr.NewPolynomial(map[int]float64{r.Multiplicity - 1: 1}, v))
	default:
		return expr.NewConstant(1)
	}
}

// combineWithParticular folds in the particular solution for f(n): a
// summation bump (xn) when the dominant root is 1, a resonance bump
// (xn) when f(n) is exponential with the same base as the dominant root,
// otherwise the max of homogeneous and particular growth (spec §4.6
// "Combine with a particular solution ... by case analysis").
func combineWithParticular(homogeneous expr.Expr, dominant root, work expr.Expr, v *expr.Variable) expr.Expr {
	workClass := classify.Classify(work, v)
	mod := dominant.modulus()

	if math.Abs(mod-1) < 1e-9 {
		return classify.Simplify(expr.Multiply(expr.Multiply(homogeneous, work), expr.NewVariable(varName(v), v.Kind)))
	}
	if workClass.Form == classify.FormExponential && math.Abs(workClass.PrimaryParam-mod) < 1e-6 {
		return classify.Simplify(expr.Multiply(homogeneous, expr.NewVariable(varName(v), v.Kind)))
	}
	return classify.Simplify(expr.Max(homogeneous, work))
}

func varName(v *expr.Variable) string {
	if v == nil {
		return "n"
	}
	return v.Name
}
