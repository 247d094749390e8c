package optim

import "math"

// Sample is one evaluation of the objective.
type Sample struct {
	X, F float64
}

// Bracket holds x0 < x1 < x2 with f(x1) no smaller than either end once
// bracketing has succeeded. Updates return a new Bracket.
type Bracket struct {
	Lo, Mid, Hi Sample
}

// Valid reports whether the centre dominates both ends.
func (b Bracket) Valid() bool {
	return b.Lo.X < b.Mid.X && b.Mid.X < b.Hi.X && b.Mid.F >= b.Lo.F && b.Mid.F >= b.Hi.F
}

// Uphill reports whether the right end is the higher one, which is the
// direction Shift moves in.
func (b Bracket) Uphill() bool {
	return b.Hi.F > b.Lo.F
}

// Shift slides the triple one position toward the higher end; s is the new
// outer sample on that side.
func (b Bracket) Shift(s Sample) Bracket {
	if s.X > b.Hi.X {
		return Bracket{Lo: b.Mid, Mid: b.Hi, Hi: s}
	}
	return Bracket{Lo: s, Mid: b.Lo, Hi: b.Mid}
}

// BisectionPoint is the midpoint between the centre and whichever end has
// the smaller value.
func (b Bracket) BisectionPoint() float64 {
	if b.Lo.F > b.Hi.F {
		return (b.Mid.X + b.Hi.X) / 2
	}
	return (b.Lo.X + b.Mid.X) / 2
}

// Insert folds a sample lying strictly between the ends into the bracket
// while keeping the centre the highest of the three.
func (b Bracket) Insert(s Sample) Bracket {
	if s.X < b.Mid.X {
		if s.F < b.Mid.F {
			return Bracket{Lo: s, Mid: b.Mid, Hi: b.Hi}
		}
		return Bracket{Lo: b.Lo, Mid: s, Hi: b.Mid}
	}
	if s.F < b.Mid.F {
		return Bracket{Lo: b.Lo, Mid: b.Mid, Hi: s}
	}
	return Bracket{Lo: b.Mid, Mid: s, Hi: b.Hi}
}

// Vertex returns the abscissa of the parabola through the three samples.
// It is NaN when the samples are collinear.
func (b Bracket) Vertex() float64 {
	x0, x1, x2 := b.Lo.X, b.Mid.X, b.Hi.X
	f0, f1, f2 := b.Lo.F, b.Mid.F, b.Hi.F
	num := (x1-x0)*(x1-x0)*(f1-f2) - (x1-x2)*(x1-x2)*(f1-f0)
	den := (x1-x0)*(f1-f2) - (x1-x2)*(f1-f0)
	v := x1 - num/den/2
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

func (b Bracket) Contains(x float64) bool {
	return x >= b.Lo.X && x <= b.Hi.X
}

// Estimate resolves a vertex estimate against the bracket. A vertex outside
// [Lo.X, Hi.X], NaN included, falls back to the centre and is reported as
// clamped.
func (b Bracket) Estimate(vertex float64) (x float64, clamped bool) {
	if b.Contains(vertex) {
		return vertex, false
	}
	return b.Mid.X, true
}
