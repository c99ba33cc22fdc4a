// Package config loads and saves the YAML run configuration used by
// cmd/odeint: which System and Stepper to bind, Driver tuning, and the
// sampling window.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTolerance   = 1e-6
	DefaultStepSize    = 0.01
	DefaultMaxSteps    = 10000
	DefaultMinStepsize = 1e-8
	DefaultTimeStep    = 0.1
)

// Config is the on-disk shape of a run: which System and Stepper to bind,
// the Driver tuning, and the sampling window passed to
// Sampler.GetSolutionAtPoints.
type Config struct {
	System     string             `yaml:"system"`
	Stepper    string             `yaml:"stepper"`
	Mode       string             `yaml:"mode"` // "fixed" or "adaptive"
	Parameters map[string]float64 `yaml:"parameters"`

	InitialState []float64 `yaml:"initial_state"`
	T0           float64   `yaml:"t0"`
	T1           float64   `yaml:"t1"`
	T2           float64   `yaml:"t2"`
	TimeStep     float64   `yaml:"time_step"`

	Tuning  Tuning  `yaml:"tuning"`
	Sampler Sampling `yaml:"sampler"`
}

// Tuning mirrors the Driver setters of internal/ode.
type Tuning struct {
	Tolerance   float64 `yaml:"tolerance"`
	StepSize    float64 `yaml:"step_size"`
	MaxSteps    int     `yaml:"max_steps"`
	MinStepsize float64 `yaml:"min_stepsize"`
}

// Sampling mirrors internal/sampler.Options.
type Sampling struct {
	MaxChange float64   `yaml:"max_change"`
	MinStep   float64   `yaml:"min_step"`
	MaxPoints int       `yaml:"max_points"`
	Adaptive  bool      `yaml:"adaptive"`
	XMin      []float64 `yaml:"x_min"`
	XMax      []float64 `yaml:"x_max"`
}

// DefaultConfig returns a runnable configuration for the decay system
// under RK4.
func DefaultConfig() *Config {
	return &Config{
		System:       "decay",
		Stepper:      "rk4",
		Mode:         "fixed",
		Parameters:   map[string]float64{},
		InitialState: []float64{1.0},
		T0:           0,
		T1:           0,
		T2:           10.0,
		TimeStep:     DefaultTimeStep,
		Tuning: Tuning{
			Tolerance:   DefaultTolerance,
			StepSize:    DefaultStepSize,
			MaxSteps:    DefaultMaxSteps,
			MinStepsize: DefaultMinStepsize,
		},
	}
}

// Load reads path as YAML over DefaultConfig, so a partial file only
// overrides the fields it sets.
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

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
