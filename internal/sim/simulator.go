package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/calculus/internal/dynamo"
)

var errNotFinite = errors.New("state is not finite")

type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	observers  []Observer
}

func New(dyn dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{dyn: dyn, integrator: integrator}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 at t = 0 across grid. Step times are computed as
// i*tf/nt rather than accumulated, so the last sample lands on tf. The
// context is checked once per step; on cancellation the partial trajectory
// is returned together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, grid dynamo.Grid) (*Result, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if len(x0) != s.dyn.StateDim() {
		return nil, fmt.Errorf("initial state has %d components, system expects %d", len(x0), s.dyn.StateDim())
	}

	result := &Result{
		Times:  make([]float64, 0, grid.Nt+1),
		States: make([]dynamo.State, 0, grid.Nt+1),
	}

	x := x0.Clone()
	dt := grid.Dt()
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, 0)

	for i := 0; i < grid.Nt; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := grid.Time(i)
		newX, err := s.integrator.Step(s.dyn, x, t, dt)
		if err != nil {
			return nil, err
		}
		if !newX.IsValid() {
			return nil, &dynamo.EvalError{Point: []dynamo.Coord{{Name: "t", Value: grid.Time(i + 1)}}, Err: errNotFinite}
		}

		x = newX
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, grid.Time(i+1))

		for _, obs := range s.observers {
			obs.OnStep(i+1, grid.Time(i+1), x)
		}
	}

	return result, nil
}
