// Package calc is the request layer between user input and the solvers. It
// turns positional string arguments into numbers and a checked expression,
// runs the named solver with options from the active configuration, and
// logs the outcome.
package calc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/calculus/internal/config"
	"github.com/san-kum/calculus/internal/diff"
	"github.com/san-kum/calculus/internal/dynamo"
	"github.com/san-kum/calculus/internal/expr"
	"github.com/san-kum/calculus/internal/ode"
	"github.com/san-kum/calculus/internal/optim"
	"github.com/san-kum/calculus/internal/quad"
	"github.com/san-kum/calculus/internal/roots"
)

// Outcome is a successful solver run.
type Outcome struct {
	Solver     string
	Expression string
	Args       []string
	Result     any
	Elapsed    time.Duration
}

type Calculator struct {
	registry *Registry
	eval     *expr.Evaluator
	cfg      *config.Config
	logger   *slog.Logger
}

// New builds a Calculator. A nil cfg means config.DefaultConfig and a nil
// logger means slog.Default.
func New(cfg *config.Config, logger *slog.Logger) *Calculator {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{
		registry: NewRegistry(),
		eval:     expr.New(),
		cfg:      cfg,
		logger:   logger,
	}
}

func (c *Calculator) Registry() *Registry   { return c.registry }
func (c *Calculator) Config() *config.Config { return c.cfg }

// Run parses args for the named solver and executes it.
func (c *Calculator) Run(ctx context.Context, solver string, args []string) (*Outcome, error) {
	s, err := c.registry.Get(solver)
	if err != nil {
		return nil, err
	}
	if len(args) != len(s.Params) {
		return nil, fmt.Errorf("%w: %s expects %d arguments %s, got %d",
			dynamo.ErrConfig, s.Name, len(s.Params), s.Usage(), len(args))
	}

	last := len(args) - 1
	nums := make([]float64, last)
	for i, a := range args[:last] {
		if nums[i], err = expr.ParseLiteral(a); err != nil {
			return nil, err
		}
	}
	f := args[last]
	if err := c.eval.Check(f, s.Vars...); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := s.run(ctx, c, nums, f)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Debug("solver failed", "solver", s.Name, "f", f, "elapsed", elapsed, "err", err)
		return nil, err
	}

	attrs := append([]any{"solver", s.Name, "f", f, "elapsed", elapsed}, stepAttrs(res)...)
	c.logger.Debug("solver finished", attrs...)

	return &Outcome{
		Solver:     s.Name,
		Expression: f,
		Args:       append([]string(nil), args...),
		Result:     res,
		Elapsed:    elapsed,
	}, nil
}

func stepAttrs(res any) []any {
	switch r := res.(type) {
	case *diff.Result:
		return []any{"branch", r.Branch.String()}
	case *quad.Result:
		return []any{"subdivisions", r.Subdivisions}
	case *roots.Result:
		return []any{"bracket_steps", r.BracketSteps, "root_steps", r.RootSteps}
	case *optim.Result:
		return []any{"bracket_steps", r.BracketSteps, "max_steps", r.MaxSteps}
	case *ode.Result1:
		return []any{"nt", r.Nt}
	case *ode.Result2:
		return []any{"nt", r.Nt}
	}
	return nil
}
