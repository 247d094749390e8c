// Package diff estimates a function and its first three derivatives at a
// point from finite differences.
//
// The center point is sampled only if the function exists there. When it
// does not (a removable singularity such as sin(x)/x at 0), the reported
// values are the limits obtained from the four neighbouring samples alone.
package diff

import (
	"errors"

	"github.com/san-kum/calculus/internal/dynamo"
)

const DefaultStep = 0.001

// Branch records which stencil was used for f and f''.
type Branch int

const (
	// Nonsingular uses f(x) directly.
	Nonsingular Branch = iota
	// Singular excludes the center point entirely.
	Singular
)

func (b Branch) String() string {
	if b == Singular {
		return "singular"
	}
	return "nonsingular"
}

type Options struct {
	Step float64
}

func DefaultOptions() Options {
	return Options{Step: DefaultStep}
}

// Result holds f, f', f'' and f''' at X.
type Result struct {
	X           float64    `json:"x"`
	Nonsingular bool       `json:"nonsingular"`
	Derivs      [4]float64 `json:"derivs"`
	Branch      Branch     `json:"-"`
}

func (o Options) Validate() error {
	if !(o.Step > 0) {
		return &dynamo.ConfigError{Field: "step", Value: o.Step, Reason: "must be positive"}
	}
	return nil
}

// offsets of the off-center samples, in units of the step.
var offsets = [4]float64{2, 1, -1, -2}

// Differentiate samples f at x±dx and x±2dx, plus x itself when possible.
// A failure at any off-center point is returned as an EvalError; a failure
// at x only switches to the Singular branch.
func Differentiate(f dynamo.Func1, x float64, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	dx := opts.Step

	var fs [4]float64
	for i, k := range offsets {
		y, err := f.At(x + k*dx)
		if err != nil {
			return nil, err
		}
		fs[i] = y
	}
	f2, f1, fm1, fm2 := fs[0], fs[1], fs[2], fs[3]

	branch := Nonsingular
	f0, err := f.At(x)
	if err != nil {
		if !errors.Is(err, dynamo.ErrEval) {
			return nil, err
		}
		branch = Singular
	}

	res := &Result{X: x, Nonsingular: branch == Nonsingular, Branch: branch}
	switch branch {
	case Nonsingular:
		res.Derivs[0] = f0
		res.Derivs[2] = (f1 - 2*f0 + fm1) / dx / dx
	case Singular:
		res.Derivs[0] = (f1 + fm1) / 2
		res.Derivs[2] = (f2 - f1 - fm1 + fm2) / 3 / dx / dx
	}
	res.Derivs[1] = (f1 - fm1) / 2 / dx
	res.Derivs[3] = (f2 - fm2 - 2*f1 + 2*fm1) / 2 / dx / dx / dx

	return res, nil
}
