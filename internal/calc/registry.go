package calc

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/calculus/internal/diff"
	"github.com/san-kum/calculus/internal/dynamo"
	"github.com/san-kum/calculus/internal/ode"
	"github.com/san-kum/calculus/internal/optim"
	"github.com/san-kum/calculus/internal/quad"
	"github.com/san-kum/calculus/internal/roots"
)

var ErrUnknownSolver = errors.New("unknown solver")

// Solver describes one calculator operation. Params are the positional
// argument names; the last one is always the expression, which may only
// refer to Vars.
type Solver struct {
	Name   string
	Short  string
	Params []string
	Vars   []string
	run    func(ctx context.Context, c *Calculator, nums []float64, f string) (any, error)
}

// Usage renders the positional arguments, e.g. "<xi> <xf> <f>".
func (s *Solver) Usage() string {
	out := ""
	for i, p := range s.Params {
		if i > 0 {
			out += " "
		}
		out += "<" + p + ">"
	}
	return out
}

type Registry struct {
	solvers map[string]*Solver
}

func NewRegistry() *Registry {
	r := &Registry{solvers: make(map[string]*Solver)}

	r.Register(&Solver{
		Name:   "diff",
		Short:  "value and first three derivatives at a point",
		Params: []string{"x", "f"},
		Vars:   []string{"x"},
		run: func(_ context.Context, c *Calculator, n []float64, f string) (any, error) {
			return diff.Differentiate(c.eval.Bind1(f), n[0], c.cfg.DiffOptions())
		},
	})
	r.Register(&Solver{
		Name:   "integrate",
		Short:  "definite integral between two limits",
		Params: []string{"xi", "xf", "f"},
		Vars:   []string{"x"},
		run: func(_ context.Context, c *Calculator, n []float64, f string) (any, error) {
			return quad.Integrate(c.eval.Bind1(f), n[0], n[1], c.cfg.QuadOptions())
		},
	})
	r.Register(&Solver{
		Name:   "root",
		Short:  "a root near a starting point",
		Params: []string{"xi", "f"},
		Vars:   []string{"x"},
		run: func(_ context.Context, c *Calculator, n []float64, f string) (any, error) {
			return roots.Find(c.eval.Bind1(f), n[0], c.cfg.RootOptions())
		},
	})
	r.Register(&Solver{
		Name:   "max",
		Short:  "a local maximum near a starting point",
		Params: []string{"xi", "f"},
		Vars:   []string{"x"},
		run: func(_ context.Context, c *Calculator, n []float64, f string) (any, error) {
			fn := c.eval.Bind1(f)
			if starts := c.cfg.MaxFinding.Starts; len(starts) > 0 {
				return optim.Scan(fn, append([]float64{n[0]}, starts...), c.cfg.MaxOptions())
			}
			return optim.FindMax(fn, n[0], c.cfg.MaxOptions())
		},
	})
	r.Register(&Solver{
		Name:   "ode",
		Short:  "trajectory of dx/dt = f(x, t)",
		Params: []string{"xi", "tf", "nt", "f"},
		Vars:   []string{"x", "t"},
		run: func(ctx context.Context, c *Calculator, n []float64, f string) (any, error) {
			nt, err := c.timesteps(n[2])
			if err != nil {
				return nil, err
			}
			return ode.Solve1(ctx, c.eval.Bind2(f), n[0], n[1], nt)
		},
	})
	r.Register(&Solver{
		Name:   "ode2",
		Short:  "trajectory of d2x/dt2 = f(x, t, v)",
		Params: []string{"xi", "vi", "tf", "nt", "f"},
		Vars:   []string{"x", "t", "v"},
		run: func(ctx context.Context, c *Calculator, n []float64, f string) (any, error) {
			nt, err := c.timesteps(n[3])
			if err != nil {
				return nil, err
			}
			return ode.Solve2(ctx, c.eval.Bind3(f), n[0], n[1], n[2], nt)
		},
	})

	return r
}

func (r *Registry) Register(s *Solver) {
	r.solvers[s.Name] = s
}

func (r *Registry) Get(name string) (*Solver, error) {
	s, ok := r.solvers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSolver, name)
	}
	return s, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.solvers))
	for name := range r.solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// timesteps converts a parsed nt literal to a step count.
func (c *Calculator) timesteps(v float64) (int, error) {
	if v != float64(int64(v)) {
		return 0, &dynamo.ConfigError{Field: "nt", Value: v, Reason: "number of timesteps must be an integer"}
	}
	if v <= 0 {
		return 0, &dynamo.ConfigError{Field: "nt", Value: v, Reason: "number of timesteps must be positive"}
	}
	if limit := c.cfg.ODE.MaxTimesteps; v > float64(limit) {
		return 0, &dynamo.ConfigError{Field: "nt", Value: v, Reason: fmt.Sprintf("exceeds ode.max_timesteps (%d)", limit)}
	}
	return int(v), nil
}
