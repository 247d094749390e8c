package analysis

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/calculus/internal/sim"
)

type Point struct{ X, Y float64 }

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []Point
}

// NewPhasePortrait projects a trajectory onto components xIdx and yIdx.
func NewPhasePortrait(traj *sim.Result, xIdx, yIdx int) (*PhasePortrait2D, error) {
	if err := checkIndices(traj, xIdx, yIdx); err != nil {
		return nil, err
	}

	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, len(traj.States)),
	}
	for _, s := range traj.States {
		portrait.Points = append(portrait.Points, Point{X: s[xIdx], Y: s[yIdx]})
	}
	return portrait, nil
}

// TimeSeries pairs every sample time with component idx.
func TimeSeries(traj *sim.Result, idx int) ([]Point, error) {
	if err := checkIndices(traj, idx); err != nil {
		return nil, err
	}
	pts := make([]Point, len(traj.States))
	for i, s := range traj.States {
		pts[i] = Point{X: traj.Times[i], Y: s[idx]}
	}
	return pts, nil
}

func checkIndices(traj *sim.Result, idx ...int) error {
	if traj == nil || len(traj.States) == 0 {
		return fmt.Errorf("empty trajectory")
	}
	dim := len(traj.States[0])
	for _, i := range idx {
		if i < 0 || i >= dim {
			return fmt.Errorf("component %d out of range for %d-dimensional state", i, dim)
		}
	}
	return nil
}

// Bounds returns the extent of pts widened by pad on each side, as a
// fraction of the range. A degenerate range is treated as 1.
func Bounds(pts []Point, pad float64) (minX, maxX, minY, maxY float64) {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	minX, maxX = floats.Min(xs), floats.Max(xs)
	minY, maxY = floats.Min(ys), floats.Max(ys)

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	return minX - rangeX*pad, maxX + rangeX*pad, minY - rangeY*pad, maxY + rangeY*pad
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX, minY, maxY := Bounds(portrait.Points, 0.1)
	rangeX := maxX - minX
	rangeY := maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// axes, where they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// NewSection records (xIdx, yIdx) wherever component crossIdx passes
// upward through threshold, interpolating linearly between samples.
func NewSection(traj *sim.Result, crossIdx int, threshold float64, xIdx, yIdx int) (*PhasePortrait2D, error) {
	if err := checkIndices(traj, crossIdx, xIdx, yIdx); err != nil {
		return nil, err
	}

	section := &PhasePortrait2D{XIndex: xIdx, YIndex: yIdx}
	for i := 1; i < len(traj.States); i++ {
		prev, curr := traj.States[i-1], traj.States[i]
		if !(prev[crossIdx] < threshold && curr[crossIdx] >= threshold) {
			continue
		}
		frac := (threshold - prev[crossIdx]) / (curr[crossIdx] - prev[crossIdx])
		section.Points = append(section.Points, Point{
			X: prev[xIdx] + frac*(curr[xIdx]-prev[xIdx]),
			Y: prev[yIdx] + frac*(curr[yIdx]-prev[yIdx]),
		})
	}
	return section, nil
}
