package calc

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/calculus/internal/config"
	"github.com/san-kum/calculus/internal/diff"
	"github.com/san-kum/calculus/internal/dynamo"
	"github.com/san-kum/calculus/internal/ode"
	"github.com/san-kum/calculus/internal/optim"
	"github.com/san-kum/calculus/internal/quad"
	"github.com/san-kum/calculus/internal/roots"
)

func newTestCalculator(t *testing.T, cfg *config.Config) (*Calculator, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(cfg, logger), &buf
}

func TestRunPresets(t *testing.T) {
	c, _ := newTestCalculator(t, nil)
	ctx := context.Background()

	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		t.Run(name, func(t *testing.T) {
			out, err := c.Run(ctx, p.Solver, p.Args)
			require.NoError(t, err)
			assert.Equal(t, p.Solver, out.Solver)
			assert.Equal(t, p.Args[len(p.Args)-1], out.Expression)
		})
	}
}

func TestRunExampleValues(t *testing.T) {
	c, _ := newTestCalculator(t, nil)
	ctx := context.Background()

	out, err := c.Run(ctx, "diff", []string{"1", "2x + 3/(x^4+5)"})
	require.NoError(t, err)
	d := out.Result.(*diff.Result)
	assert.True(t, d.Nonsingular)
	assert.InDelta(t, 2.5, d.Derivs[0], 1e-12)
	assert.InDelta(t, 5.0/3, d.Derivs[1], 1e-5)

	out, err = c.Run(ctx, "integrate", []string{"1", "6", "2x + 3/(x^4+5)"})
	require.NoError(t, err)
	assert.InDelta(t, 35.415, out.Result.(*quad.Result).Integral, 6e-3)

	out, err = c.Run(ctx, "root", []string{"1", "2x - 3/(x^4+5)"})
	require.NoError(t, err)
	assert.InDelta(t, 0.29955, out.Result.(*roots.Result).X, 1e-4)

	out, err = c.Run(ctx, "max", []string{"1", "sin(x) + x/2"})
	require.NoError(t, err)
	m := out.Result.(*optim.Result)
	assert.InDelta(t, 2.0944, m.X, 1e-3)
	assert.InDelta(t, 1.9132, m.F, 1e-4)

	out, err = c.Run(ctx, "ode", []string{"1", "2", "10", "2x - t - 2"})
	require.NoError(t, err)
	r1 := out.Result.(*ode.Result1)
	assert.InDelta(t, -11.391, r1.Xs[10], 2e-3)

	out, err = c.Run(ctx, "ode2", []string{"0", "1", "4", "10", "-2x - v + 3t"})
	require.NoError(t, err)
	r2 := out.Result.(*ode.Result2)
	assert.InDelta(t, 5.315, r2.Xs[10], 6e-3)
	assert.InDelta(t, 1.575, r2.Vs[10], 6e-3)
}

func TestRunErrors(t *testing.T) {
	c, _ := newTestCalculator(t, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		solver string
		args   []string
		kind   error
	}{
		{"bad literal", "diff", []string{"one", "x"}, dynamo.ErrParse},
		{"bad expression", "diff", []string{"1", "x +* 2"}, dynamo.ErrParse},
		{"wrong variable", "root", []string{"1", "x - t"}, dynamo.ErrParse},
		{"arity", "integrate", []string{"1", "x"}, dynamo.ErrConfig},
		{"zero nt", "ode", []string{"1", "2", "0", "x"}, dynamo.ErrConfig},
		{"fractional nt", "ode2", []string{"0", "1", "4", "2.5", "x"}, dynamo.ErrConfig},
		{"singular integrand", "integrate", []string{"-1", "1", "1/x"}, dynamo.ErrEval},
		{"no root", "root", []string{"0", "x^2 + 1"}, dynamo.ErrConvergence},
		{"unknown solver", "solve", []string{"1"}, ErrUnknownSolver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Run(ctx, tt.solver, tt.args)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestRunUsesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ODE.MaxTimesteps = 5
	c, _ := newTestCalculator(t, cfg)

	_, err := c.Run(context.Background(), "ode", []string{"1", "2", "10", "2x - t - 2"})
	var ce *dynamo.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "nt", ce.Field)

	cfg = config.DefaultConfig()
	cfg.MaxFinding.Starts = []float64{-2.5, 2.5}
	c, _ = newTestCalculator(t, cfg)
	out, err := c.Run(context.Background(), "max", []string{"-1.5", "exp(0 - (x+2)^2) + 2exp(0 - (x-2)^2)"})
	require.NoError(t, err)
	assert.InDelta(t, 2, out.Result.(*optim.Result).X, 1e-3)
}

func TestRunLogs(t *testing.T) {
	c, buf := newTestCalculator(t, nil)

	_, err := c.Run(context.Background(), "root", []string{"1", "2x - 3/(x^4+5)"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "solver finished")
	assert.Contains(t, buf.String(), "solver=root")
	assert.Contains(t, buf.String(), "root_steps=")

	buf.Reset()
	_, err = c.Run(context.Background(), "root", []string{"0", "x^2 + 1"})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "solver failed")
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"diff", "integrate", "max", "ode", "ode2", "root"}, r.List())

	s, err := r.Get("ode2")
	require.NoError(t, err)
	assert.Equal(t, "<xi> <vi> <tf> <nt> <f>", s.Usage())
	assert.Equal(t, []string{"x", "t", "v"}, s.Vars)

	_, err = r.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownSolver)
}
