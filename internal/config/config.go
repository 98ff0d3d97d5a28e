package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/slayoo/odesys/internal/ode"
)

const (
	DefaultX0      = 0.0
	DefaultXend    = 10.0
	DefaultDx0     = 0.01
	DefaultTolIter = 1e-12
	DefaultIterMax = 20
)

type Config struct {
	Method  string `yaml:"method"`
	Problem string `yaml:"problem"`

	// Adaptive mode: span plus initial step size. When Grid is set it
	// takes precedence and the run uses predefined mode.
	X0   float64   `yaml:"x0"`
	Xend float64   `yaml:"xend"`
	Dx0  float64   `yaml:"dx0"`
	Grid []float64 `yaml:"grid,omitempty"`

	// Y0 overrides the problem's default initial condition when set.
	Y0 []float64 `yaml:"y0,omitempty"`

	TolIter float64 `yaml:"tol_iter"`
	IterMax int     `yaml:"iter_max"`

	// Extra options passed through to the stepper; unrecognized keys
	// are warned about at run time, never rejected.
	Options map[string]float64 `yaml:"options,omitempty"`

	Output OutputConfig `yaml:"output"`
}

type OutputConfig struct {
	Path   string `yaml:"path,omitempty"`
	Format string `yaml:"format,omitempty"` // json or csv
	Plot   bool   `yaml:"plot"`
}

func DefaultConfig() *Config {
	return &Config{
		Method:  "rk4",
		Problem: "decay",
		X0:      DefaultX0,
		Xend:    DefaultXend,
		Dx0:     DefaultDx0,
		TolIter: DefaultTolIter,
		IterMax: DefaultIterMax,
		Output:  OutputConfig{Format: "json", Plot: true},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
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

func (c *Config) Validate() error {
	if len(c.Grid) == 0 {
		if c.Dx0 <= 0 {
			return fmt.Errorf("dx0 must be positive, got %g", c.Dx0)
		}
		if c.Xend <= c.X0 {
			return fmt.Errorf("xend (%g) must exceed x0 (%g)", c.Xend, c.X0)
		}
	}
	if c.TolIter <= 0 {
		return fmt.Errorf("tol_iter must be positive, got %g", c.TolIter)
	}
	if c.IterMax <= 0 {
		return fmt.Errorf("iter_max must be positive, got %d", c.IterMax)
	}
	return nil
}

// StepperOptions assembles the ode.Options for the configured run. The
// Newton knobs are attached only when the method recognizes them (BDF2);
// the other steppers recognize no options and would warn about them.
func (c *Config) StepperOptions(withNewtonOpts bool) ode.Options {
	opts := ode.Options{}
	if withNewtonOpts {
		opts[ode.OptTolIter] = c.TolIter
		opts[ode.OptIterMax] = float64(c.IterMax)
	}
	for k, v := range c.Options {
		opts[k] = v
	}
	return opts
}
