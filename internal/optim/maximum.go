// Package optim locates local maxima of functions of one variable.
//
// FindMax walks outward from a starting point until it holds three points
// whose centre is highest, then bisects toward the peak and watches
// successive parabolic vertex estimates for convergence. To find a minimum,
// negate the function.
package optim

import (
	"math"

	"github.com/san-kum/calculus/internal/dynamo"
)

const (
	DefaultEpsilon         = 1e-5
	DefaultInitialWidth    = 0.1
	DefaultGrowth          = 1.6
	DefaultMaxBracketSteps = 30
	DefaultMaxSteps        = 50
)

type Options struct {
	Epsilon         float64
	InitialWidth    float64
	Growth          float64
	MaxBracketSteps int
	MaxSteps        int
}

func DefaultOptions() Options {
	return Options{
		Epsilon:         DefaultEpsilon,
		InitialWidth:    DefaultInitialWidth,
		Growth:          DefaultGrowth,
		MaxBracketSteps: DefaultMaxBracketSteps,
		MaxSteps:        DefaultMaxSteps,
	}
}

type Result struct {
	Xi           float64 `json:"xi"`
	X            float64 `json:"x"`
	F            float64 `json:"f"`
	BracketSteps int     `json:"bracket_steps"`
	MaxSteps     int     `json:"max_steps"`
	Epsilon      float64 `json:"epsilon"`
	// Clamped is set when the last vertex estimate fell outside the bracket
	// and the bracket centre was reported instead.
	Clamped bool `json:"clamped,omitempty"`
}

// FindMax searches for a local maximum starting at xi. The maximum found is
// not necessarily the one closest to xi.
func FindMax(f dynamo.Func1, xi float64, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	b, bracketSteps, err := bracket(f, xi, opts)
	if err != nil {
		return nil, err
	}

	steps := 0
	prev, cur := math.Inf(-1), math.Inf(1)
	for !(math.Abs(prev-cur) <= opts.Epsilon) {
		if steps > opts.MaxSteps {
			return nil, &dynamo.ConvergenceError{Op: "locate a bracketed max", Steps: opts.MaxSteps}
		}
		x := b.BisectionPoint()
		fx, err := f.At(x)
		if err != nil {
			return nil, err
		}
		b = b.Insert(Sample{x, fx})
		prev, cur = cur, b.Vertex()
		steps++
	}

	res := &Result{
		Xi:           xi,
		BracketSteps: bracketSteps,
		MaxSteps:     steps,
		Epsilon:      opts.Epsilon,
	}
	res.X, res.Clamped = b.Estimate(cur)
	if res.F, err = f.At(res.X); err != nil {
		return nil, err
	}
	return res, nil
}

func bracket(f dynamo.Func1, xi float64, opts Options) (Bracket, int, error) {
	step := opts.InitialWidth
	var b Bracket
	var err error
	for i, x := range [...]float64{xi - step/2, xi, xi + step/2} {
		s := Sample{X: x}
		if s.F, err = f.At(x); err != nil {
			return b, 0, err
		}
		switch i {
		case 0:
			b.Lo = s
		case 1:
			b.Mid = s
		case 2:
			b.Hi = s
		}
	}

	steps := 0
	for b.Mid.F < b.Lo.F || b.Mid.F < b.Hi.F {
		step *= opts.Growth
		x := b.Lo.X - step
		if b.Uphill() {
			x = b.Hi.X + step
		}
		fx, err := f.At(x)
		if err != nil {
			return b, steps, err
		}
		b = b.Shift(Sample{x, fx})
		steps++
		if steps > opts.MaxBracketSteps {
			return b, steps, &dynamo.ConvergenceError{Op: "bracket a max", Steps: opts.MaxBracketSteps}
		}
	}
	return b, steps, nil
}

func (o Options) Validate() error {
	switch {
	case o.Epsilon <= 0:
		return &dynamo.ConfigError{Field: "epsilon", Value: o.Epsilon, Reason: "must be positive"}
	case o.InitialWidth <= 0:
		return &dynamo.ConfigError{Field: "initial_width", Value: o.InitialWidth, Reason: "must be positive"}
	case o.Growth <= 1:
		return &dynamo.ConfigError{Field: "growth", Value: o.Growth, Reason: "must exceed 1"}
	case o.MaxBracketSteps <= 0:
		return &dynamo.ConfigError{Field: "max_bracket_steps", Value: float64(o.MaxBracketSteps), Reason: "must be positive"}
	case o.MaxSteps <= 0:
		return &dynamo.ConfigError{Field: "max_steps", Value: float64(o.MaxSteps), Reason: "must be positive"}
	}
	return nil
}
