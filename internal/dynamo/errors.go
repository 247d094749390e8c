package dynamo

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by the solvers.
var (
	// ErrParse indicates a malformed numeric literal.
	ErrParse = errors.New("calculus: parse error")

	// ErrEval indicates the function could not be evaluated at a required point.
	ErrEval = errors.New("calculus: evaluation error")

	// ErrConfig indicates an invalid structural parameter such as a step count.
	ErrConfig = errors.New("calculus: invalid configuration")

	// ErrConvergence indicates bracketing or refinement exceeded its iteration cap.
	ErrConvergence = errors.New("calculus: no convergence")
)

// ParseError reports a literal that could not be turned into a number.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot parse %q as a number: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("cannot parse %q as a number", e.Input)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }
func (e *ParseError) Unwrap() error        { return e.Err }

// Coord is one named coordinate of an evaluation point.
type Coord struct {
	Name  string
	Value float64
}

// EvalError reports the point at which the oracle failed.
type EvalError struct {
	Point []Coord
	Err   error
}

func (e *EvalError) Error() string {
	parts := make([]string, len(e.Point))
	for i, c := range e.Point {
		parts[i] = fmt.Sprintf("%s: %g", c.Name, c.Value)
	}
	msg := "cannot evaluate function at " + strings.Join(parts, ", ")
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EvalError) Is(target error) bool { return target == ErrEval }
func (e *EvalError) Unwrap() error        { return e.Err }

func evalErr(err error, point ...Coord) error {
	var ee *EvalError
	if errors.As(err, &ee) {
		return err
	}
	return &EvalError{Point: point, Err: err}
}

// ConfigError reports an invalid structural parameter.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s = %g: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// ConvergenceError reports an iteration cap that was hit.
type ConvergenceError struct {
	Op    string // e.g. "bracket a root"
	Steps int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("unable to %s within %d steps", e.Op, e.Steps)
}

func (e *ConvergenceError) Is(target error) bool { return target == ErrConvergence }
