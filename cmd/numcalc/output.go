package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/san-kum/calculus/internal/calc"
	"github.com/san-kum/calculus/internal/dynamo"
	"github.com/san-kum/calculus/internal/viz"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

type outcomeJSON struct {
	Solver     string   `json:"solver"`
	Expression string   `json:"expression"`
	Args       []string `json:"args"`
	Result     any      `json:"result"`
	ElapsedMS  float64  `json:"elapsed_ms"`
	RunID      string   `json:"run_id,omitempty"`
}

type failureJSON struct {
	Message string `json:"message"`
}

func jsonOutput() bool {
	return cfg != nil && cfg.Output.Format == "json"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printOutcome(cmd *cobra.Command, out *calc.Outcome, runID string) error {
	w := cmd.OutOrStdout()
	if jsonOutput() {
		return writeJSON(w, outcomeJSON{
			Solver:     out.Solver,
			Expression: out.Expression,
			Args:       out.Args,
			Result:     out.Result,
			ElapsedMS:  float64(out.Elapsed.Microseconds()) / 1000,
			RunID:      runID,
		})
	}

	fmt.Fprintln(w, viz.Render(out.Result))
	if runID != "" {
		fmt.Fprintf(w, "saved run %s\n", runID)
	}
	return nil
}

// reportError writes err in the active format. JSON failures go to stdout so
// that scripted callers always get one document.
func reportError(cmd *cobra.Command, err error) {
	if jsonOutput() {
		writeJSON(cmd.OutOrStdout(), failureJSON{Message: err.Error()})
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), viz.RenderError(err))
}

// exitCode is 2 when the input was unusable and 1 when a solver ran but
// failed.
func exitCode(err error) int {
	switch {
	case isUsage(err),
		errors.Is(err, dynamo.ErrConfig),
		errors.Is(err, dynamo.ErrParse),
		errors.Is(err, calc.ErrUnknownSolver):
		return exitUsage
	}
	return exitFailure
}
