package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/calculus/internal/analysis"
	"github.com/san-kum/calculus/internal/export"
	"github.com/san-kum/calculus/internal/viz"
)

const (
	svgWidth  = 640
	svgHeight = 480
	svgStroke = "#2a9d8f"
)

func runsCommand() *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "inspect saved ODE trajectories",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  noArgs,
		RunE:  listRuns,
	}
	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a run's metadata and samples",
		Args:  exactArgs(1),
		RunE:  showRun,
	}
	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot each state component against time",
		Args:  exactArgs(1),
		RunE:  plotRun,
	}
	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "x-v phase portrait of a second-order run",
		Args:  exactArgs(1),
		RunE:  phaseRun,
	}
	phaseCmd.Flags().Float64Var(&section, "section", 0, "only plot upward crossings of x through this value")
	svgCmd := &cobra.Command{
		Use:   "svg [run_id] [file]",
		Short: "export a run as an svg path",
		Args:  exactArgs(2),
		RunE:  svgRun,
	}
	rmCmd := &cobra.Command{
		Use:   "rm [run_id]",
		Short: "delete a run",
		Args:  exactArgs(1),
		RunE:  removeRun,
	}

	runsCmd.AddCommand(listCmd, showCmd, plotCmd, phaseCmd, svgCmd, rmCmd)
	return runsCmd
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := newStore().List()
	if err != nil {
		return err
	}
	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tSTEPS\tEXPRESSION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Expression,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := newStore()
	if jsonOutput() {
		return st.Export(args[0], cmd.OutOrStdout())
	}

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "run: %s\n", meta.ID)
	fmt.Fprintf(w, "kind: %s\n", meta.Kind)
	fmt.Fprintf(w, "expression: %s\n", meta.Expression)
	fmt.Fprintf(w, "saved: %s\n\n", meta.Timestamp.Format("2006-01-02 15:04:05"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(meta.Columns, "\t")))
	for i, t := range traj.Times {
		row := []string{fmt.Sprintf("%.6g", t)}
		for _, v := range traj.States[i] {
			row = append(row, fmt.Sprintf("%.10g", v))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := newStore()
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(traj.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	var series []viz.Series
	for i, col := range meta.Columns[1:] {
		series = append(series, viz.Series{Name: col + "(t)", Values: traj.Component(i)})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "run: %s\n", meta.ID)
	fmt.Fprintf(w, "expression: %s\n", meta.Expression)
	fmt.Fprintf(w, "samples: %d\n\n", len(traj.States))
	fmt.Fprintln(w, viz.PlotTrajectory(series, cfg.Output.PlotWidth, cfg.Output.PlotHeight))
	return nil
}

func phaseRun(cmd *cobra.Command, args []string) error {
	traj, err := newStore().LoadStates(args[0])
	if err != nil {
		return err
	}

	var portrait *analysis.PhasePortrait2D
	if cmd.Flags().Changed("section") {
		portrait, err = analysis.NewSection(traj, 0, section, 0, 1)
	} else {
		portrait, err = analysis.NewPhasePortrait(traj, 0, 1)
	}
	if err != nil {
		return err
	}
	if len(portrait.Points) == 0 {
		return fmt.Errorf("no points to plot")
	}

	fmt.Fprintln(cmd.OutOrStdout(), analysis.PhasePortraitToASCII(portrait, cfg.Output.PlotWidth, cfg.Output.PlotHeight))
	return nil
}

// svgRun draws the x-v portrait of second-order runs and x(t) otherwise.
func svgRun(cmd *cobra.Command, args []string) error {
	traj, err := newStore().LoadStates(args[0])
	if err != nil {
		return err
	}

	var points []analysis.Point
	if len(traj.States) > 0 && len(traj.States[0]) >= 2 {
		portrait, err := analysis.NewPhasePortrait(traj, 0, 1)
		if err != nil {
			return err
		}
		points = portrait.Points
	} else if points, err = analysis.TimeSeries(traj, 0); err != nil {
		return err
	}

	if err := export.WriteSVG(args[1], points, svgWidth, svgHeight, svgStroke); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[1])
	return nil
}

func removeRun(cmd *cobra.Command, args []string) error {
	if err := newStore().Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}
