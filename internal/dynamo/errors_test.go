package dynamo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{&ParseError{Input: "1+"}, ErrParse},
		{&EvalError{Point: []Coord{{"x", 1}}}, ErrEval},
		{&ConfigError{Field: "nt", Value: 0, Reason: "must be positive"}, ErrConfig},
		{&ConvergenceError{Op: "bracket a root", Steps: 30}, ErrConvergence},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("solver: %w", tc.err)
		assert.ErrorIs(t, wrapped, tc.kind, tc.err.Error())
	}
}

func TestFuncAtWrapsPoint(t *testing.T) {
	boom := errors.New("division by zero")
	f := Func2(func(x, t float64) (float64, error) { return 0, boom })

	_, err := f.At(1.5, 0.25)
	require.Error(t, err)

	var ee *EvalError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, []Coord{{"x", 1.5}, {"t", 0.25}}, ee.Point)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "cannot evaluate function at x: 1.5, t: 0.25: division by zero", err.Error())
}

func TestFuncAtKeepsExistingEvalError(t *testing.T) {
	inner := &EvalError{Point: []Coord{{"x", 3}}}
	f := Func1(func(x float64) (float64, error) { return 0, inner })

	_, err := f.At(7)
	var ee *EvalError
	require.ErrorAs(t, err, &ee)
	assert.Same(t, inner, ee)
}

func TestGrid(t *testing.T) {
	g := Grid{Tf: 2, Nt: 10}
	require.NoError(t, g.Validate())
	assert.InDelta(t, 0.2, g.Dt(), 1e-15)
	assert.Equal(t, 2.0, g.Time(10))

	err := Grid{Tf: 1, Nt: 0}.Validate()
	assert.ErrorIs(t, err, ErrConfig)
}

func TestParallelFor(t *testing.T) {
	n := 1000
	hits := make([]int, n)
	ParallelFor(n, 10, func(start, end int) {
		for i := start; i < end; i++ {
			hits[i]++
		}
	})
	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}
