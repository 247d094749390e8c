package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/calculus/internal/analysis"
)

// TrajectoryToSVG creates an SVG from trajectory data
func TrajectoryToSVG(points []analysis.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX, minY, maxY := analysis.Bounds(points, 0.1)
	rangeX := maxX - minX
	rangeY := maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// zero lines
	if minY <= 0 && maxY >= 0 {
		y := float64(height) - (0-minY)/rangeY*float64(height)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-width="1"/>
`, y, width, y))
	}
	if minX <= 0 && maxX >= 0 {
		x := (0 - minX) / rangeX * float64(width)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="#444466" stroke-width="1"/>
`, x, x, height))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))
	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// WriteSVG renders points with TrajectoryToSVG and writes the result to path.
func WriteSVG(path string, points []analysis.Point, width, height int, strokeColor string) error {
	svg := TrajectoryToSVG(points, width, height, strokeColor)
	if svg == "" {
		return fmt.Errorf("need at least two points to draw a trajectory")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
