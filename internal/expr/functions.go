package expr

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

var functions = map[string]govaluate.ExpressionFunction{
	"sin":   unary("sin", math.Sin),
	"cos":   unary("cos", math.Cos),
	"tan":   unary("tan", math.Tan),
	"asin":  unary("asin", math.Asin),
	"acos":  unary("acos", math.Acos),
	"atan":  unary("atan", math.Atan),
	"sinh":  unary("sinh", math.Sinh),
	"cosh":  unary("cosh", math.Cosh),
	"tanh":  unary("tanh", math.Tanh),
	"exp":   unary("exp", math.Exp),
	"log":   unary("log", math.Log),
	"ln":    unary("ln", math.Log),
	"log10": unary("log10", math.Log10),
	"sqrt":  unary("sqrt", math.Sqrt),
	"abs":   unary("abs", math.Abs),
	"floor": unary("floor", math.Floor),
	"ceil":  unary("ceil", math.Ceil),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(args))
		}
		base, err := toFloat("pow", args[0])
		if err != nil {
			return nil, err
		}
		exp, err := toFloat("pow", args[1])
		if err != nil {
			return nil, err
		}
		return math.Pow(base, exp), nil
	},
}

func unary(name string, fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		x, err := toFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	}
}

func toFloat(name string, v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	default:
		return 0, fmt.Errorf("%s: argument is not a number: %T", name, v)
	}
}
