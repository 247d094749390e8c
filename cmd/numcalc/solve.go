package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/calculus/internal/calc"
	"github.com/san-kum/calculus/internal/config"
	"github.com/san-kum/calculus/internal/ode"
	"github.com/san-kum/calculus/internal/viz"
)

// solverCommands builds one command per registered solver.
func solverCommands() []*cobra.Command {
	reg := calc.NewRegistry()
	var cmds []*cobra.Command
	for _, name := range reg.List() {
		s, _ := reg.Get(name)
		cmd := &cobra.Command{
			Use:   s.Name + " " + s.Usage(),
			Short: s.Short,
			Long: fmt.Sprintf("%s.\n\nThe last argument is an expression in %v; numeric arguments may also be\nconstant expressions such as pi/2.",
				s.Short, s.Vars),
			Args: exactArgs(len(s.Params)),
			RunE: func(cmd *cobra.Command, args []string) error {
				return solve(cmd, s.Name, args)
			},
		}
		switch s.Name {
		case "max":
			cmd.Flags().Float64SliceVar(&starts, "starts", nil, "extra starting points; the highest maximum wins")
		case "ode", "ode2":
			cmd.Flags().BoolVar(&save, "save", false, "store the trajectory as a run")
			cmd.Flags().BoolVar(&plot, "plot", false, "plot the trajectory")
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func solve(cmd *cobra.Command, solver string, args []string) error {
	if cmd.Flags().Changed("starts") {
		cfg.MaxFinding.Starts = starts
	}

	out, err := newCalculator().Run(cmd.Context(), solver, args)
	if err != nil {
		return err
	}

	var runID string
	traj, isTraj := out.Result.(ode.Trajectory)
	if isTraj && (save || cfg.ODE.Save) {
		runID, err = newStore().Save(out.Solver, out.Expression, traj.Params(), traj.Trajectory())
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
	}

	if err := printOutcome(cmd, out, runID); err != nil {
		return err
	}
	if isTraj && plot && !jsonOutput() {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), viz.PlotTrajectory(viz.TrajectorySeries(out.Result),
			cfg.Output.PlotWidth, cfg.Output.PlotHeight))
	}
	return nil
}

func listExamples(cmd *cobra.Command, args []string) error {
	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), config.Presets)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOLVER\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, p.Solver, p.Description)
	}
	return w.Flush()
}

func runExample(cmd *cobra.Command, args []string) error {
	p := config.GetPreset(args[0])
	if p == nil {
		return usageError{fmt.Errorf("unknown example: %s (available: %v)", args[0], config.ListPresets())}
	}

	if !jsonOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", viz.Title.Render(p.Description))
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", viz.Subtle.Render("expected: "+p.Expected))
	}
	return solve(cmd, p.Solver, p.Args)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil && !force {
		return usageError{fmt.Errorf("%s already exists (use --force to overwrite)", path)}
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
