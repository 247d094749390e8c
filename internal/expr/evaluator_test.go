package expr

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/calculus/internal/dynamo"
)

func TestEval1(t *testing.T) {
	ev := New()

	got, err := ev.Eval1("2x + 3/(x^4+5)", 1)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got, 1e-15)

	got, err = ev.Eval1("sin(x) + x/2", math.Pi/2)
	require.NoError(t, err)
	assert.InDelta(t, 1+math.Pi/4, got, 1e-15)

	got, err = ev.Eval1("pow(x, 3) + sqrt(abs(x)) + ln(e)", -4)
	require.NoError(t, err)
	assert.InDelta(t, -64+2+1, got, 1e-12)
}

func TestEval2And3(t *testing.T) {
	ev := New()

	got, err := ev.Eval2("2x - t - 2", 1, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, got, 1e-15)

	got, err = ev.Eval3("-2x - v + 3t", 1, 2, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, got, 1e-15)
}

func TestEvalNonFiniteIsError(t *testing.T) {
	ev := New()

	_, err := ev.Eval1("1/x", 0)
	assert.Error(t, err)

	_, err = ev.Eval1("sin(x)/x", 0)
	assert.Error(t, err)

	_, err = ev.Eval1("sqrt(x)", -1)
	assert.Error(t, err)
}

func TestBindWrapsThroughFuncAt(t *testing.T) {
	ev := New()
	f := ev.Bind1("1/x")

	_, err := f.At(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, dynamo.ErrEval)
	assert.Contains(t, err.Error(), "x: 0")
}

func TestCheck(t *testing.T) {
	ev := New()

	assert.NoError(t, ev.Check("2x+pi", "x"))
	assert.NoError(t, ev.Check("-2x - v + 3t", "x", "t", "v"))

	err := ev.Check("2x - t", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, dynamo.ErrParse)
	assert.Contains(t, err.Error(), "[t]")

	err = ev.Check("2x +* )", "x")
	assert.ErrorIs(t, err, dynamo.ErrParse)
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1", 1},
		{"-2.5", -2.5},
		{"1e-3", 0.001},
		{"pi/2", math.Pi / 2},
		{"2^10", 1024},
		{"10", 10},
	}
	for _, tt := range tests {
		got, err := ParseLiteral(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-12, tt.in)
	}

	for _, bad := range []string{"", "x+1", "1/0", "abc(", "1.2.3"} {
		_, err := ParseLiteral(bad)
		assert.ErrorIs(t, err, dynamo.ErrParse, bad)
	}
}

func TestEvaluatorConcurrentUse(t *testing.T) {
	ev := New()
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := ev.Eval1("x^2 + 1", float64(i+j)); err != nil {
					errs[i] = err
					return
				}
			}
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}
