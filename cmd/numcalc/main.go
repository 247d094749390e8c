package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/calculus/internal/calc"
	"github.com/san-kum/calculus/internal/config"
	"github.com/san-kum/calculus/internal/storage"
	"github.com/san-kum/calculus/internal/tui"
)

var (
	configFile string
	format     string
	verbose    bool
	dataDir    string

	// solver flags
	starts []float64
	save   bool
	plot   bool

	// runs flags
	section float64
	force   bool

	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		reportError(rootCmd, err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	cfg, logger = nil, nil

	rootCmd := &cobra.Command{
		Use:           "numcalc",
		Short:         "numerical calculus toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())}
			}
			return nil
		},
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(newCalculator())
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&format, "format", config.DefaultFormat, "output format: text or json")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "run storage directory")

	for _, c := range solverCommands() {
		rootCmd.AddCommand(c)
	}

	examplesCmd := &cobra.Command{
		Use:   "examples",
		Short: "list worked examples",
		Args:  noArgs,
		RunE:  listExamples,
	}
	exampleCmd := &cobra.Command{
		Use:   "example [name]",
		Short: "run a worked example",
		Args:  exactArgs(1),
		RunE:  runExample,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write the active configuration as yaml",
		Args:  exactArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive calculator",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(newCalculator())
		},
	}

	rootCmd.AddCommand(examplesCmd, exampleCmd, configCmd, tuiCmd, runsCommand())
	return rootCmd
}

// setup installs the logger and resolves the active configuration. Flags
// the user set explicitly win over the config file.
func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Debug("config loaded", "path", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("format") || configFile == "" {
		cfg.Output.Format = format
	}
	if flags.Changed("data") || configFile == "" {
		cfg.Output.DataDir = dataDir
	}
	return cfg.Validate()
}

func newCalculator() *calc.Calculator {
	return calc.New(cfg, logger)
}

func newStore() *storage.Store {
	return storage.New(cfg.Output.DataDir).WithLogger(logger)
}

// usageError marks errors caused by how the command was invoked.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func isUsage(err error) bool {
	var u usageError
	return errors.As(err, &u)
}

func noArgs(cmd *cobra.Command, args []string) error {
	return exactArgs(0)(cmd, args)
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{fmt.Errorf("%s: %w", cmd.CommandPath(), err)}
		}
		return nil
	}
}
