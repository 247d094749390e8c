package config

import "sort"

// Preset is a worked example: a solver invocation with its known answer.
type Preset struct {
	Solver      string
	Args        []string
	Description string
	Expected    string
}

var Presets = map[string]*Preset{
	"derivative": {
		Solver:      "diff",
		Args:        []string{"1", "2x + 3/(x^4+5)"},
		Description: "derivatives of 2x + 3/(x^4+5) at x = 1",
		Expected:    "derivs ≈ [2.5, 1.666..., -0.555..., 1.111...]",
	},
	"singular": {
		Solver:      "diff",
		Args:        []string{"0", "sin(x)/x"},
		Description: "sin(x)/x at its removable singularity",
		Expected:    "nonsingular = false, f ≈ 1",
	},
	"integral": {
		Solver:      "integrate",
		Args:        []string{"1", "6", "2x + 3/(x^4+5)"},
		Description: "integral of 2x + 3/(x^4+5) from 1 to 6",
		Expected:    "integral ≈ 35.41...",
	},
	"root": {
		Solver:      "root",
		Args:        []string{"1", "2x - 3/(x^4+5)"},
		Description: "root of 2x - 3/(x^4+5) searching from x = 1",
		Expected:    "x ≈ 0.2995...",
	},
	"maximum": {
		Solver:      "max",
		Args:        []string{"1", "sin(x) + x/2"},
		Description: "local maximum of sin(x) + x/2 searching from x = 1",
		Expected:    "(x, f) ≈ (2.094..., 1.913...)",
	},
	"ode": {
		Solver:      "ode",
		Args:        []string{"1", "2", "10", "2x - t - 2"},
		Description: "dx/dt = 2x - t - 2 with x(0) = 1 over t in [0, 2]",
		Expected:    "x(2) ≈ -11.39...",
	},
	"ode2": {
		Solver:      "ode2",
		Args:        []string{"0", "1", "4", "10", "-2x - v + 3t"},
		Description: "d2x/dt2 = -2x - v + 3t with x(0) = 0, v(0) = 1 over t in [0, 4]",
		Expected:    "x(4) ≈ 5.31..., v(4) ≈ 1.57...",
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetFor returns the first preset, by name, that exercises solver.
func PresetFor(solver string) *Preset {
	for _, name := range ListPresets() {
		if p := Presets[name]; p.Solver == solver {
			return p
		}
	}
	return nil
}
