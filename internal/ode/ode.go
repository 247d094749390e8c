// Package ode integrates first- and second-order initial value problems on a
// uniform time grid with classical RK4.
package ode

import (
	"context"

	"github.com/san-kum/calculus/internal/dynamo"
	"github.com/san-kum/calculus/internal/integrators"
	"github.com/san-kum/calculus/internal/sim"
)

// Result1 is the trajectory of dx/dt = f(x, t).
type Result1 struct {
	Xi float64   `json:"xi"`
	Tf float64   `json:"tf"`
	Nt int       `json:"nt"`
	Xs []float64 `json:"xs"`
}

// Result2 is the trajectory of d2x/dt2 = a(x, t, v).
type Result2 struct {
	Xi float64   `json:"xi"`
	Vi float64   `json:"vi"`
	Tf float64   `json:"tf"`
	Nt int       `json:"nt"`
	Xs []float64 `json:"xs"`
	Vs []float64 `json:"vs"`
}

// first adapts a rate function to a one-dimensional system.
type first struct {
	f dynamo.Func2
}

func (s first) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	dx, err := s.f.At(x[0], t)
	if err != nil {
		return nil, err
	}
	return dynamo.State{dx}, nil
}

func (first) StateDim() int { return 1 }

// second reduces x'' = a(x, t, v) to the system (x, v)' = (v, a).
type second struct {
	a dynamo.Func3
}

func (s second) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	acc, err := s.a.At(x[0], t, x[1])
	if err != nil {
		return nil, err
	}
	return dynamo.State{x[1], acc}, nil
}

func (second) StateDim() int { return 2 }

// Solve1 integrates dx/dt = f(x, t) from x(0) = xi to tf in nt steps.
func Solve1(ctx context.Context, f dynamo.Func2, xi, tf float64, nt int, observers ...sim.Observer) (*Result1, error) {
	traj, err := run(ctx, first{f}, dynamo.State{xi}, dynamo.Grid{Tf: tf, Nt: nt}, observers)
	if err != nil {
		return nil, err
	}
	return &Result1{Xi: xi, Tf: tf, Nt: nt, Xs: traj.Component(0)}, nil
}

// Solve2 integrates d2x/dt2 = a(x, t, v) from x(0) = xi, v(0) = vi to tf in
// nt steps.
func Solve2(ctx context.Context, a dynamo.Func3, xi, vi, tf float64, nt int, observers ...sim.Observer) (*Result2, error) {
	traj, err := run(ctx, second{a}, dynamo.State{xi, vi}, dynamo.Grid{Tf: tf, Nt: nt}, observers)
	if err != nil {
		return nil, err
	}
	return &Result2{Xi: xi, Vi: vi, Tf: tf, Nt: nt, Xs: traj.Component(0), Vs: traj.Component(1)}, nil
}

func run(ctx context.Context, sys dynamo.System, x0 dynamo.State, grid dynamo.Grid, observers []sim.Observer) (*sim.Result, error) {
	s := sim.New(sys, integrators.NewRK4())
	for _, o := range observers {
		s.AddObserver(o)
	}
	return s.Run(ctx, x0, grid)
}

// Trajectory returns the solution as time-stamped one-component states.
func (r *Result1) Trajectory() *sim.Result {
	g := dynamo.Grid{Tf: r.Tf, Nt: r.Nt}
	out := &sim.Result{Times: make([]float64, len(r.Xs)), States: make([]dynamo.State, len(r.Xs))}
	for i, x := range r.Xs {
		out.Times[i] = g.Time(i)
		out.States[i] = dynamo.State{x}
	}
	return out
}

// Params lists the scalar inputs of the run.
func (r *Result1) Params() map[string]float64 {
	return map[string]float64{"xi": r.Xi, "tf": r.Tf, "nt": float64(r.Nt)}
}

// Trajectory returns the solution as time-stamped (x, v) states.
func (r *Result2) Trajectory() *sim.Result {
	g := dynamo.Grid{Tf: r.Tf, Nt: r.Nt}
	out := &sim.Result{Times: make([]float64, len(r.Xs)), States: make([]dynamo.State, len(r.Xs))}
	for i := range r.Xs {
		out.Times[i] = g.Time(i)
		out.States[i] = dynamo.State{r.Xs[i], r.Vs[i]}
	}
	return out
}

func (r *Result2) Params() map[string]float64 {
	return map[string]float64{"xi": r.Xi, "vi": r.Vi, "tf": r.Tf, "nt": float64(r.Nt)}
}

// Trajectory is implemented by both ODE results.
type Trajectory interface {
	Trajectory() *sim.Result
	Params() map[string]float64
}
