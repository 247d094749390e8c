// Package expr evaluates user-supplied expressions point-wise. It is the
// black-box oracle behind every solver: the solvers only ever see the
// dynamo.Func closures returned by the Bind methods.
package expr

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/Knetic/govaluate"

	"github.com/san-kum/calculus/internal/dynamo"
)

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// Evaluator compiles expressions once and evaluates them many times. It is
// safe for concurrent use.
type Evaluator struct {
	mu    sync.RWMutex
	cache map[string]*govaluate.EvaluableExpression
}

func New() *Evaluator {
	return &Evaluator{cache: make(map[string]*govaluate.EvaluableExpression)}
}

func (e *Evaluator) compile(expression string) (*govaluate.EvaluableExpression, error) {
	e.mu.RLock()
	compiled, ok := e.cache[expression]
	e.mu.RUnlock()
	if ok {
		return compiled, nil
	}

	compiled, err := compile(expression)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[expression] = compiled
	e.mu.Unlock()
	return compiled, nil
}

func compile(expression string) (*govaluate.EvaluableExpression, error) {
	normalized, err := Normalize(expression)
	if err != nil {
		return nil, err
	}
	if normalized == "" {
		return nil, errors.New("empty expression")
	}
	return govaluate.NewEvaluableExpressionWithFunctions(normalized, functions)
}

// variables lists the distinct parameter names referenced by compiled.
func variables(compiled *govaluate.EvaluableExpression) []string {
	seen := make(map[string]bool)
	var names []string
	for _, tok := range compiled.Tokens() {
		if tok.Kind != govaluate.VARIABLE {
			continue
		}
		name, ok := tok.Value.(string)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// Check compiles expression and verifies it only refers to the given
// variables (plus the constants pi and e). Syntax problems are reported as
// ParseError.
func (e *Evaluator) Check(expression string, vars ...string) error {
	compiled, err := e.compile(expression)
	if err != nil {
		return &dynamo.ParseError{Input: expression, Err: err}
	}
	allowed := make(map[string]bool, len(vars))
	for _, v := range vars {
		allowed[v] = true
	}
	var unknown []string
	for _, name := range variables(compiled) {
		if _, ok := constants[name]; ok || allowed[name] {
			continue
		}
		unknown = append(unknown, name)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &dynamo.ParseError{Input: expression, Err: fmt.Errorf("unknown variable(s) %v, expected a function of %v", unknown, vars)}
	}
	return nil
}

func (e *Evaluator) eval(expression string, params map[string]interface{}) (float64, error) {
	compiled, err := e.compile(expression)
	if err != nil {
		return 0, err
	}
	for name, value := range constants {
		if _, ok := params[name]; !ok {
			params[name] = value
		}
	}
	return evaluate(compiled, params)
}

func evaluate(compiled *govaluate.EvaluableExpression, params map[string]interface{}) (float64, error) {
	raw, err := compiled.Evaluate(params)
	if err != nil {
		return 0, err
	}
	v, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("expression did not evaluate to a number: %T", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("result is %v", v)
	}
	return v, nil
}

func (e *Evaluator) Eval1(expression string, x float64) (float64, error) {
	return e.eval(expression, map[string]interface{}{"x": x})
}

func (e *Evaluator) Eval2(expression string, x, t float64) (float64, error) {
	return e.eval(expression, map[string]interface{}{"x": x, "t": t})
}

func (e *Evaluator) Eval3(expression string, x, t, v float64) (float64, error) {
	return e.eval(expression, map[string]interface{}{"x": x, "t": t, "v": v})
}

func (e *Evaluator) Bind1(expression string) dynamo.Func1 {
	return func(x float64) (float64, error) { return e.Eval1(expression, x) }
}

func (e *Evaluator) Bind2(expression string) dynamo.Func2 {
	return func(x, t float64) (float64, error) { return e.Eval2(expression, x, t) }
}

func (e *Evaluator) Bind3(expression string) dynamo.Func3 {
	return func(x, t, v float64) (float64, error) { return e.Eval3(expression, x, t, v) }
}

// ParseLiteral evaluates a constant expression such as "1e-3", "pi/2" or
// "-2". It does not use an Evaluator cache and accepts no variables.
func ParseLiteral(s string) (float64, error) {
	compiled, err := compile(s)
	if err != nil {
		return 0, &dynamo.ParseError{Input: s, Err: err}
	}
	for _, name := range variables(compiled) {
		if _, ok := constants[name]; !ok {
			return 0, &dynamo.ParseError{Input: s, Err: fmt.Errorf("unexpected variable %q", name)}
		}
	}
	params := make(map[string]interface{}, len(constants))
	for name, value := range constants {
		params[name] = value
	}
	v, err := evaluate(compiled, params)
	if err != nil {
		return 0, &dynamo.ParseError{Input: s, Err: err}
	}
	return v, nil
}
