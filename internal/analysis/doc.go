// Package analysis inspects saved ODE trajectories.
//
//   - [NewPhasePortrait]: one state component against another, typically x–v
//   - [NewSection]: points where a component crosses a threshold upward
//   - [PhasePortraitToASCII]: a character plot of either
package analysis
