// Package quad computes definite integrals with composite Simpson's rule,
// refined by repeated halving of the step and accelerated with Aitken's
// correction for the O(h^4) error of Simpson's rule.
package quad

import (
	"math"

	"github.com/san-kum/calculus/internal/dynamo"
)

const (
	DefaultEpsilon        = 1e-12
	DefaultMaxRefinements = 20

	// aitkenFactor is 2^4 - 1: halving h shrinks Simpson's error 16-fold.
	aitkenFactor = 15
)

type Options struct {
	Epsilon        float64
	MaxRefinements int
}

func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon, MaxRefinements: DefaultMaxRefinements}
}

// Point is one quadrature sample. Weight is 0.5 at both ends, 2 for points
// added by the latest refinement and 1 for older interior points.
type Point struct {
	X      float64
	F      float64
	Weight float64
}

type Result struct {
	Xi           float64 `json:"xi"`
	Xf           float64 `json:"xf"`
	Integral     float64 `json:"integral"`
	Subdivisions int     `json:"subdivisions"`
	Epsilon      float64 `json:"epsilon"`
}

func (o Options) Validate() error {
	if !(o.Epsilon > 0) {
		return &dynamo.ConfigError{Field: "epsilon", Value: o.Epsilon, Reason: "must be positive"}
	}
	if o.MaxRefinements < 2 {
		return &dynamo.ConfigError{Field: "max_refinements", Value: float64(o.MaxRefinements), Reason: "must be at least 2"}
	}
	return nil
}

// Integrate returns the integral of f from xi to xf. It stops once two
// consecutive accelerated estimates agree to within opts.Epsilon and fails
// with a ConvergenceError after opts.MaxRefinements halvings.
func Integrate(f dynamo.Func1, xi, xf float64, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	fi, err := f.At(xi)
	if err != nil {
		return nil, err
	}
	ff, err := f.At(xf)
	if err != nil {
		return nil, err
	}
	pts := []Point{{X: xi, F: fi, Weight: 0.5}, {X: xf, F: ff, Weight: 0.5}}

	dx := xf - xi
	number := 1
	simpson := math.NaN()
	accel := math.NaN()

	for refinement := 1; refinement <= opts.MaxRefinements; refinement++ {
		dx /= 2
		number *= 2

		pts, err = refine(f, pts, dx)
		if err != nil {
			return nil, err
		}

		sum := 0.0
		for _, p := range pts {
			sum += p.F * p.Weight
		}
		simpsonNew := sum * 2 * dx / 3

		accelNew := simpsonNew
		if !math.IsNaN(simpson) {
			accelNew += (simpsonNew - simpson) / aitkenFactor
		}

		if !math.IsNaN(accel) && math.Abs(accelNew-accel) <= opts.Epsilon {
			return &Result{
				Xi:           xi,
				Xf:           xf,
				Integral:     accelNew,
				Subdivisions: number,
				Epsilon:      opts.Epsilon,
			}, nil
		}
		simpson, accel = simpsonNew, accelNew
	}

	return nil, &dynamo.ConvergenceError{Op: "converge on the integral", Steps: opts.MaxRefinements}
}

// refine inserts a midpoint after every point but the last. Midpoints get
// weight 2, every other interior point drops to 1, and the ends keep 0.5.
func refine(f dynamo.Func1, pts []Point, dx float64) ([]Point, error) {
	out := make([]Point, 0, 2*len(pts)-1)
	last := len(pts) - 1
	for i, p := range pts {
		if i > 0 && i < last {
			p.Weight = 1
		}
		out = append(out, p)
		if i == last {
			break
		}
		x := p.X + dx
		y, err := f.At(x)
		if err != nil {
			return nil, err
		}
		out = append(out, Point{X: x, F: y, Weight: 2})
	}
	return out, nil
}
