package sim

import "github.com/san-kum/calculus/internal/dynamo"

// Result is a trajectory sampled on a uniform grid. States[i] is the state at
// Times[i]; both hold nt+1 entries and Times[0] is zero.
type Result struct {
	Times  []float64
	States []dynamo.State
}

// Component returns the i-th state component along the trajectory.
func (r *Result) Component(i int) []float64 {
	out := make([]float64, len(r.States))
	for k, s := range r.States {
		out[k] = s[i]
	}
	return out
}

// Observer is notified after every accepted step.
type Observer interface {
	OnStep(step int, t float64, x dynamo.State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, t float64, x dynamo.State)

func (f ObserverFunc) OnStep(step int, t float64, x dynamo.State) { f(step, t, x) }
