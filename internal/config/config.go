package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/calculus/internal/diff"
	"github.com/san-kum/calculus/internal/dynamo"
	"github.com/san-kum/calculus/internal/optim"
	"github.com/san-kum/calculus/internal/quad"
	"github.com/san-kum/calculus/internal/roots"
)

const (
	DefaultMaxTimesteps = 1_000_000
	DefaultFormat       = "text"
	DefaultDataDir      = ".numcalc"
	DefaultPlotWidth    = 70
	DefaultPlotHeight   = 15
)

type Config struct {
	Differentiation DifferentiationConfig `yaml:"differentiation"`
	Integration     IntegrationConfig     `yaml:"integration"`
	RootFinding     RootFindingConfig     `yaml:"root_finding"`
	MaxFinding      MaxFindingConfig      `yaml:"max_finding"`
	ODE             ODEConfig             `yaml:"ode"`
	Output          OutputConfig          `yaml:"output"`
}

type DifferentiationConfig struct {
	Step float64 `yaml:"step"`
}

type IntegrationConfig struct {
	Epsilon        float64 `yaml:"epsilon"`
	MaxRefinements int     `yaml:"max_refinements"`
}

type RootFindingConfig struct {
	Epsilon         float64 `yaml:"epsilon"`
	InitialWidth    float64 `yaml:"initial_width"`
	Growth          float64 `yaml:"growth"`
	MaxBracketSteps int     `yaml:"max_bracket_steps"`
	MaxRootSteps    int     `yaml:"max_root_steps"`
}

type MaxFindingConfig struct {
	Epsilon         float64   `yaml:"epsilon"`
	InitialWidth    float64   `yaml:"initial_width"`
	Growth          float64   `yaml:"growth"`
	MaxBracketSteps int       `yaml:"max_bracket_steps"`
	MaxSteps        int       `yaml:"max_steps"`
	Starts          []float64 `yaml:"starts,omitempty"`
}

type ODEConfig struct {
	// MaxTimesteps bounds nt so a typo cannot allocate an enormous trajectory.
	MaxTimesteps int  `yaml:"max_timesteps"`
	Save         bool `yaml:"save"`
}

type OutputConfig struct {
	Format     string `yaml:"format"`
	DataDir    string `yaml:"data_dir"`
	PlotWidth  int    `yaml:"plot_width"`
	PlotHeight int    `yaml:"plot_height"`
}

func DefaultConfig() *Config {
	return &Config{
		Differentiation: DifferentiationConfig{Step: diff.DefaultStep},
		Integration: IntegrationConfig{
			Epsilon:        quad.DefaultEpsilon,
			MaxRefinements: quad.DefaultMaxRefinements,
		},
		RootFinding: RootFindingConfig{
			Epsilon:         roots.DefaultEpsilon,
			InitialWidth:    roots.DefaultInitialWidth,
			Growth:          roots.DefaultGrowth,
			MaxBracketSteps: roots.DefaultMaxBracketSteps,
			MaxRootSteps:    roots.DefaultMaxRootSteps,
		},
		MaxFinding: MaxFindingConfig{
			Epsilon:         optim.DefaultEpsilon,
			InitialWidth:    optim.DefaultInitialWidth,
			Growth:          optim.DefaultGrowth,
			MaxBracketSteps: optim.DefaultMaxBracketSteps,
			MaxSteps:        optim.DefaultMaxSteps,
		},
		ODE: ODEConfig{MaxTimesteps: DefaultMaxTimesteps},
		Output: OutputConfig{
			Format:     DefaultFormat,
			DataDir:    DefaultDataDir,
			PlotWidth:  DefaultPlotWidth,
			PlotHeight: DefaultPlotHeight,
		},
	}
}

// Load overlays the YAML file at path on DefaultConfig and validates the
// result. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) DiffOptions() diff.Options {
	return diff.Options{Step: c.Differentiation.Step}
}

func (c *Config) QuadOptions() quad.Options {
	return quad.Options{Epsilon: c.Integration.Epsilon, MaxRefinements: c.Integration.MaxRefinements}
}

func (c *Config) RootOptions() roots.Options {
	r := c.RootFinding
	return roots.Options{
		Epsilon:         r.Epsilon,
		InitialWidth:    r.InitialWidth,
		Growth:          r.Growth,
		MaxBracketSteps: r.MaxBracketSteps,
		MaxRootSteps:    r.MaxRootSteps,
	}
}

func (c *Config) MaxOptions() optim.Options {
	m := c.MaxFinding
	return optim.Options{
		Epsilon:         m.Epsilon,
		InitialWidth:    m.InitialWidth,
		Growth:          m.Growth,
		MaxBracketSteps: m.MaxBracketSteps,
		MaxSteps:        m.MaxSteps,
	}
}

// Validate checks every section. The returned ConfigError names the field
// with its section prefix, e.g. "root_finding.growth".
func (c *Config) Validate() error {
	checks := []struct {
		section string
		err     error
	}{
		{"differentiation", c.DiffOptions().Validate()},
		{"integration", c.QuadOptions().Validate()},
		{"root_finding", c.RootOptions().Validate()},
		{"max_finding", c.MaxOptions().Validate()},
		{"ode", c.ODE.validate()},
		{"output", c.Output.validate()},
	}
	for _, ch := range checks {
		if ch.err != nil {
			return inSection(ch.section, ch.err)
		}
	}
	return nil
}

func (o ODEConfig) validate() error {
	if o.MaxTimesteps <= 0 {
		return &dynamo.ConfigError{Field: "max_timesteps", Value: float64(o.MaxTimesteps), Reason: "must be positive"}
	}
	return nil
}

func (o OutputConfig) validate() error {
	switch o.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: output.format must be text or json, got %q", dynamo.ErrConfig, o.Format)
	}
	if o.PlotWidth <= 0 {
		return &dynamo.ConfigError{Field: "plot_width", Value: float64(o.PlotWidth), Reason: "must be positive"}
	}
	if o.PlotHeight <= 0 {
		return &dynamo.ConfigError{Field: "plot_height", Value: float64(o.PlotHeight), Reason: "must be positive"}
	}
	return nil
}

func inSection(section string, err error) error {
	var ce *dynamo.ConfigError
	if !errors.As(err, &ce) {
		return err
	}
	out := *ce
	out.Field = section + "." + ce.Field
	return &out
}
