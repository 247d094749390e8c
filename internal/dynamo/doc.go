// Package dynamo provides the primitives shared by the numerical solvers.
//
// The package defines the black-box function types the solvers evaluate and
// the state vector used by the ODE integrators:
//
//   - [Func1], [Func2], [Func3]: point-wise oracles f(x), f(x, t), f(x, t, v)
//   - [State]: vector representing ODE state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step integrator interface
//
// It also defines the error kinds every solver returns: [ErrParse],
// [ErrEval], [ErrConfig] and [ErrConvergence]. Use errors.Is to classify and
// errors.As to recover the typed error carrying context.
//
// # Example
//
//	f := dynamo.Func1(func(x float64) (float64, error) { return x * x, nil })
//	y, err := f.At(2)
//
// # Thread Safety
//
// Nothing in this package holds mutable state. Solvers built on it may be
// called from multiple goroutines as long as the supplied functions are safe
// for concurrent use.
package dynamo
