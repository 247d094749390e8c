package viz

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/calculus/internal/diff"
	"github.com/san-kum/calculus/internal/ode"
	"github.com/san-kum/calculus/internal/optim"
	"github.com/san-kum/calculus/internal/quad"
	"github.com/san-kum/calculus/internal/roots"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		result any
		want   []string
	}{
		{"diff", &diff.Result{X: 1, Nonsingular: true, Derivs: [4]float64{2.5, 1, 2, 3}}, []string{"derivatives", "f'''", "2.5", "nonsingular"}},
		{"quad", &quad.Result{Xi: 1, Xf: 6, Integral: 35.4, Subdivisions: 64}, []string{"integral", "35.4", "64"}},
		{"roots", &roots.Result{X: 0.2995}, []string{"root", "0.2995"}},
		{"optim", &optim.Result{X: 2.09, F: 1.91, Clamped: true}, []string{"maximum", "1.91", "centre"}},
		{"ode", &ode.Result1{Nt: 2, Xs: []float64{1, 2, 3}}, []string{"x(tf)", "[1, 2, 3]"}},
		{"ode2", &ode.Result2{Nt: 1, Xs: []float64{0, 5}, Vs: []float64{1, 2}}, []string{"v(tf)", "[1, 2]"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(tt.result)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected %q in output:\n%s", w, out)
				}
			}
		})
	}
}

func TestJoinNumsElides(t *testing.T) {
	vs := make([]float64, 20)
	for i := range vs {
		vs[i] = float64(i)
	}
	out := joinNums(vs)
	if !strings.Contains(out, "12 more") || !strings.HasPrefix(out, "[0, 1, 2, 3") || !strings.HasSuffix(out, "19]") {
		t.Errorf("unexpected elision %q", out)
	}
}

func TestRenderError(t *testing.T) {
	if out := RenderError(errors.New("boom")); !strings.Contains(out, "boom") {
		t.Errorf("expected message in %q", out)
	}
}

func TestPlotTrajectory(t *testing.T) {
	r := &ode.Result2{Xs: []float64{0, 1, 4, 9}, Vs: []float64{1, 2, 3, 4}}
	out := PlotTrajectory(TrajectorySeries(r), 30, 5)
	if !strings.Contains(out, "x(t)") || !strings.Contains(out, "v(t)") {
		t.Errorf("expected both captions in plot:\n%s", out)
	}
	if TrajectorySeries(&roots.Result{}) != nil {
		t.Error("expected no series for a non-trajectory result")
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("expected flat line, got %q", got)
	}
	if out := SparklineChart([]float64{1, 2, 3}, 10); !strings.Contains(out, "█") {
		t.Errorf("expected a full bar for the maximum, got %q", out)
	}
}
