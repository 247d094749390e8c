package dynamo

import "math"

// Func1 evaluates a function of one variable.
type Func1 func(x float64) (float64, error)

// Func2 evaluates a function of x and time t.
type Func2 func(x, t float64) (float64, error)

// Func3 evaluates a function of x, time t and velocity v.
type Func3 func(x, t, v float64) (float64, error)

// At evaluates f at x and wraps any failure in an EvalError naming x.
func (f Func1) At(x float64) (float64, error) {
	y, err := f(x)
	if err != nil {
		return 0, evalErr(err, Coord{"x", x})
	}
	return y, nil
}

// At evaluates f at (x, t).
func (f Func2) At(x, t float64) (float64, error) {
	y, err := f(x, t)
	if err != nil {
		return 0, evalErr(err, Coord{"x", x}, Coord{"t", t})
	}
	return y, nil
}

// At evaluates f at (x, t, v).
func (f Func3) At(x, t, v float64) (float64, error) {
	y, err := f(x, t, v)
	if err != nil {
		return 0, evalErr(err, Coord{"x", x}, Coord{"t", t}, Coord{"v", v})
	}
	return y, nil
}

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is an ODE right-hand side. Derive may fail when the underlying
// expression cannot be evaluated at the requested point.
type System interface {
	Derive(x State, t float64) (State, error)
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) (State, error)
}

// Grid is a uniform time grid from 0 to Tf split into Nt steps.
type Grid struct {
	Tf float64
	Nt int
}

// Dt returns the step length.
func (g Grid) Dt() float64 {
	return g.Tf / float64(g.Nt)
}

// Time returns t_i. It is computed as i*tf/nt rather than accumulated so the
// last sample lands exactly on Tf.
func (g Grid) Time(i int) float64 {
	return float64(i) * g.Tf / float64(g.Nt)
}

// Validate reports a ConfigError for a non-positive step count.
func (g Grid) Validate() error {
	if g.Nt <= 0 {
		return &ConfigError{Field: "nt", Value: float64(g.Nt), Reason: "number of timesteps must be positive"}
	}
	if math.IsNaN(g.Tf) || math.IsInf(g.Tf, 0) {
		return &ConfigError{Field: "tf", Value: g.Tf, Reason: "final time must be finite"}
	}
	return nil
}
