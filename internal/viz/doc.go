// Package viz renders solver results for the terminal.
//
// [Render] formats any solver result as a styled text block, [RenderError]
// formats a failure, and [PlotTrajectory] draws ODE solutions with
// asciigraph. Styles are shared with the interactive TUI.
package viz
