package roots

import "math"

// Sample is one evaluation of the target function.
type Sample struct {
	X, F float64
}

// Bracket is an ordered triple x0 < x1 < x2 whose ends straddle a sign
// change. Brackets are values; each refinement step builds a new one.
type Bracket struct {
	Lo, Mid, Hi Sample
}

// Valid reports whether the ordering and sign-change invariants hold.
func (b Bracket) Valid() bool {
	return b.Lo.X < b.Mid.X && b.Mid.X < b.Hi.X && b.Lo.F*b.Hi.F <= 0
}

func (b Bracket) Width() float64 {
	return b.Hi.X - b.Lo.X
}

// Contains reports whether x lies within [Lo.X, Hi.X].
func (b Bracket) Contains(x float64) bool {
	return x >= b.Lo.X && x <= b.Hi.X
}

// Converged reports whether any sample is within eps of zero or the two
// sub-intervals have collapsed, (x2-x1)(x1-x0) <= eps^2.
func (b Bracket) Converged(eps float64) bool {
	if math.Abs(b.Lo.F) <= eps || math.Abs(b.Mid.F) <= eps || math.Abs(b.Hi.F) <= eps {
		return true
	}
	return (b.Hi.X-b.Mid.X)*(b.Mid.X-b.Lo.X) <= eps*eps
}

// Best returns the sample with the smallest |f|.
func (b Bracket) Best() Sample {
	best := b.Mid
	for _, s := range [...]Sample{b.Lo, b.Hi} {
		if math.Abs(s.F) < math.Abs(best.F) {
			best = s
		}
	}
	return best
}

// BisectionPoint returns the midpoint of whichever sub-interval holds the
// sign change.
func (b Bracket) BisectionPoint() float64 {
	if b.Lo.F*b.Mid.F > 0 {
		return (b.Mid.X + b.Hi.X) / 2
	}
	return (b.Lo.X + b.Mid.X) / 2
}

// InverseQuadratic fits x as a quadratic in f through the three samples and
// returns its value at f = 0. The result may be non-finite when two samples
// share a function value.
func (b Bracket) InverseQuadratic() float64 {
	x0, x1, x2 := b.Lo.X, b.Mid.X, b.Hi.X
	f0, f1, f2 := b.Lo.F, b.Mid.F, b.Hi.F
	return x0*f1*f2/(f0-f1)/(f0-f2) +
		x1*f2*f0/(f1-f0)/(f1-f2) +
		x2*f0*f1/(f2-f0)/(f2-f1)
}

// Interpolate returns the inverse quadratic estimate when it can advance the
// search: finite, inside the bracket and distinct from every sample.
func (b Bracket) Interpolate() (float64, bool) {
	x := b.InverseQuadratic()
	if math.IsNaN(x) || math.IsInf(x, 0) || !b.Contains(x) {
		return x, false
	}
	if x == b.Lo.X || x == b.Mid.X || x == b.Hi.X {
		return x, false
	}
	return x, true
}

// Narrow folds a new sample inside the bracket into it. Of the four known
// samples it keeps the narrowest ordered triple that still straddles a sign
// change; the current bracket is always a candidate, so the result is valid
// whenever b is.
func (b Bracket) Narrow(c Sample) Bracket {
	pts := [4]Sample{b.Lo, b.Mid, b.Hi, c}
	// insertion sort by x; c is the only element out of place
	for i := 3; i > 0 && pts[i].X < pts[i-1].X; i-- {
		pts[i], pts[i-1] = pts[i-1], pts[i]
	}

	best := b
	for drop := 0; drop < 4; drop++ {
		var tri [3]Sample
		k := 0
		for i, p := range pts {
			if i != drop {
				tri[k] = p
				k++
			}
		}
		cand := Bracket{Lo: tri[0], Mid: tri[1], Hi: tri[2]}
		if cand.Valid() && cand.Width() < best.Width() {
			best = cand
		}
	}
	return best
}
