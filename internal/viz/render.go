package viz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/calculus/internal/diff"
	"github.com/san-kum/calculus/internal/ode"
	"github.com/san-kum/calculus/internal/optim"
	"github.com/san-kum/calculus/internal/quad"
	"github.com/san-kum/calculus/internal/roots"
)

// num formats a float the way results are shown: shortest exact form.
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type row struct{ label, value string }

func block(title string, rows []row) string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.label))
	}
	var sb strings.Builder
	sb.WriteString(Title.Render(title))
	for _, r := range rows {
		sb.WriteString("\n")
		sb.WriteString(Label.Render(fmt.Sprintf("%-*s", width, r.label)))
		sb.WriteString("  ")
		sb.WriteString(Value.Render(r.value))
	}
	return sb.String()
}

// Render formats a solver result as a text block. Unknown types fall back to
// their %+v form.
func Render(result any) string {
	switch r := result.(type) {
	case *diff.Result:
		names := [4]string{"f", "f'", "f''", "f'''"}
		rows := []row{{"x", num(r.X)}, {"branch", r.Branch.String()}}
		for i, d := range r.Derivs {
			rows = append(rows, row{names[i], num(d)})
		}
		return block("derivatives", rows)
	case *quad.Result:
		return block("integral", []row{
			{"xi", num(r.Xi)},
			{"xf", num(r.Xf)},
			{"integral", num(r.Integral)},
			{"subdivisions", strconv.Itoa(r.Subdivisions)},
			{"epsilon", num(r.Epsilon)},
		})
	case *roots.Result:
		return block("root", []row{
			{"xi", num(r.Xi)},
			{"x", num(r.X)},
			{"bracket steps", strconv.Itoa(r.BracketSteps)},
			{"root steps", strconv.Itoa(r.RootSteps)},
			{"epsilon", num(r.Epsilon)},
		})
	case *optim.Result:
		rows := []row{
			{"xi", num(r.Xi)},
			{"x", num(r.X)},
			{"f", num(r.F)},
			{"bracket steps", strconv.Itoa(r.BracketSteps)},
			{"max steps", strconv.Itoa(r.MaxSteps)},
			{"epsilon", num(r.Epsilon)},
		}
		if r.Clamped {
			rows = append(rows, row{"note", "vertex left the bracket; reporting its centre"})
		}
		return block("maximum", rows)
	case *ode.Result1:
		return block("ode", []row{
			{"xi", num(r.Xi)},
			{"tf", num(r.Tf)},
			{"nt", strconv.Itoa(r.Nt)},
			{"x(tf)", num(r.Xs[len(r.Xs)-1])},
			{"xs", joinNums(r.Xs)},
			{"trend", SparklineChart(r.Xs, 40)},
		})
	case *ode.Result2:
		return block("ode2", []row{
			{"xi", num(r.Xi)},
			{"vi", num(r.Vi)},
			{"tf", num(r.Tf)},
			{"nt", strconv.Itoa(r.Nt)},
			{"x(tf)", num(r.Xs[len(r.Xs)-1])},
			{"v(tf)", num(r.Vs[len(r.Vs)-1])},
			{"xs", joinNums(r.Xs)},
			{"vs", joinNums(r.Vs)},
		})
	}
	return fmt.Sprintf("%+v", result)
}

// joinNums lists values, eliding the middle of long series.
func joinNums(vs []float64) string {
	const edge = 4
	parts := make([]string, 0, 2*edge+1)
	if len(vs) <= 2*edge+1 {
		for _, v := range vs {
			parts = append(parts, num(v))
		}
	} else {
		for _, v := range vs[:edge] {
			parts = append(parts, num(v))
		}
		parts = append(parts, fmt.Sprintf("… %d more …", len(vs)-2*edge))
		for _, v := range vs[len(vs)-edge:] {
			parts = append(parts, num(v))
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func RenderError(err error) string {
	return Failure.Render("error: ") + err.Error()
}

// Series is one named curve for PlotTrajectory.
type Series struct {
	Name   string
	Values []float64
}

// PlotTrajectory draws each series as its own asciigraph chart.
func PlotTrajectory(series []Series, width, height int) string {
	var sb strings.Builder
	for i, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(asciigraph.Plot(s.Values,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(s.Name),
		))
	}
	return sb.String()
}

// TrajectorySeries extracts the curves of an ODE result.
func TrajectorySeries(result any) []Series {
	switch r := result.(type) {
	case *ode.Result1:
		return []Series{{Name: "x(t)", Values: r.Xs}}
	case *ode.Result2:
		return []Series{{Name: "x(t)", Values: r.Xs}, {Name: "v(t)", Values: r.Vs}}
	}
	return nil
}
