// Package roots finds a root of a function of one variable. The search first
// grows an interval around the starting point until the function changes
// sign across it, then shrinks it by alternating bisection with inverse
// quadratic interpolation.
package roots

import (
	"math"

	"github.com/san-kum/calculus/internal/dynamo"
)

const (
	DefaultEpsilon         = 1e-12
	DefaultInitialWidth    = 0.1
	DefaultGrowth          = 1.6
	DefaultMaxBracketSteps = 30
	DefaultMaxRootSteps    = 20
)

type Options struct {
	Epsilon         float64
	InitialWidth    float64
	Growth          float64
	MaxBracketSteps int
	MaxRootSteps    int
}

func DefaultOptions() Options {
	return Options{
		Epsilon:         DefaultEpsilon,
		InitialWidth:    DefaultInitialWidth,
		Growth:          DefaultGrowth,
		MaxBracketSteps: DefaultMaxBracketSteps,
		MaxRootSteps:    DefaultMaxRootSteps,
	}
}

type Result struct {
	Xi           float64 `json:"xi"`
	X            float64 `json:"x"`
	BracketSteps int     `json:"bracket_steps"`
	RootSteps    int     `json:"root_steps"`
	Epsilon      float64 `json:"epsilon"`
}

type phase int

const (
	phaseInterpolate phase = iota
	phaseBisect
)

func (p phase) next() phase {
	if p == phaseBisect {
		return phaseInterpolate
	}
	return phaseBisect
}

// Find searches for a root starting at xi. Note that the root found is not
// necessarily the one closest to xi.
func Find(f dynamo.Func1, xi float64, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	lo, hi, bracketSteps, err := bracket(f, xi, opts)
	if err != nil {
		return nil, err
	}

	xm := (lo.X + hi.X) / 2
	fm, err := f.At(xm)
	if err != nil {
		return nil, err
	}
	b := Bracket{Lo: lo, Mid: Sample{xm, fm}, Hi: hi}

	steps := 0
	p := phaseBisect
	for !b.Converged(opts.Epsilon) {
		p = p.next()
		if steps > opts.MaxRootSteps {
			return nil, &dynamo.ConvergenceError{Op: "locate a bracketed root", Steps: opts.MaxRootSteps}
		}

		var xc float64
		switch p {
		case phaseBisect:
			xc = b.BisectionPoint()
		case phaseInterpolate:
			var ok bool
			if xc, ok = b.Interpolate(); !ok {
				// uncounted; the next pass bisects
				continue
			}
		}

		fc, err := f.At(xc)
		if err != nil {
			return nil, err
		}
		b = b.Narrow(Sample{xc, fc})
		steps++
	}

	return &Result{
		Xi:           xi,
		X:            b.Best().X,
		BracketSteps: bracketSteps,
		RootSteps:    steps,
		Epsilon:      opts.Epsilon,
	}, nil
}

// bracket grows [xi-w/2, xi+w/2] geometrically, always moving the end with
// the smaller |f|, until f changes sign across it.
func bracket(f dynamo.Func1, xi float64, opts Options) (lo, hi Sample, steps int, err error) {
	step := opts.InitialWidth
	lo.X = xi - step/2
	hi.X = xi + step/2
	if lo.F, err = f.At(lo.X); err != nil {
		return
	}
	if hi.F, err = f.At(hi.X); err != nil {
		return
	}

	for lo.F*hi.F > 0 {
		step *= opts.Growth
		if math.Abs(lo.F) < math.Abs(hi.F) {
			lo.X -= step
			if lo.F, err = f.At(lo.X); err != nil {
				return
			}
		} else {
			hi.X += step
			if hi.F, err = f.At(hi.X); err != nil {
				return
			}
		}
		steps++
		if steps > opts.MaxBracketSteps {
			err = &dynamo.ConvergenceError{Op: "bracket a root", Steps: opts.MaxBracketSteps}
			return
		}
	}
	return
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
	case o.MaxRootSteps <= 0:
		return &dynamo.ConfigError{Field: "max_root_steps", Value: float64(o.MaxRootSteps), Reason: "must be positive"}
	}
	return nil
}
