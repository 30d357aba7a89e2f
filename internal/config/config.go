package config

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/san-kum/eigensim/internal/eigen"
	"github.com/san-kum/eigensim/internal/grid"
	"github.com/san-kum/eigensim/internal/potentials"
	"github.com/san-kum/eigensim/internal/quantum"
	"github.com/san-kum/eigensim/internal/solver"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPotential = "harmonic"
	DefaultK         = 4
	DefaultMin       = -10.0
	DefaultMax       = 10.0
	DefaultCount     = 500
)

type Config struct {
	Potential   string             `yaml:"potential"`
	Params      map[string]float64 `yaml:"params,omitempty"`
	Axes        []grid.Axis        `yaml:"axes"`
	K           int                `yaml:"k"`
	Target      float64            `yaml:"target"`
	Vectors     bool               `yaml:"vectors"`
	Observables bool               `yaml:"observables"`
	Method      string             `yaml:"method"`
	Solver      eigen.Options      `yaml:",inline"`
}

func DefaultConfig() *Config {
	return &Config{
		Potential: DefaultPotential,
		Axes:      []grid.Axis{{Min: DefaultMin, Max: DefaultMax, Count: DefaultCount}},
		K:         DefaultK,
		Method:    solver.DefaultMethod,
		Solver:    eigen.DefaultOptions(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Params = maps.Clone(c.Params)
	out.Axes = slices.Clone(c.Axes)
	return &out
}

// Validate checks the fields that do not need a grid.
func (c *Config) Validate() error {
	if _, err := potentials.New(c.Potential); err != nil {
		return quantum.Invalid("%v", err)
	}
	if len(c.Axes) == 0 {
		return quantum.Invalid("config has no axes")
	}
	for d, a := range c.Axes {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("axis %d: %w", d, err)
		}
	}
	if c.K < 1 {
		return quantum.Invalid("k must be positive, got %d", c.K)
	}
	return nil
}

// Model builds the configured potential with its parameters applied.
func (c *Config) Model() (potentials.Model, error) {
	m, err := potentials.New(c.Potential)
	if err != nil {
		return nil, err
	}
	if err := potentials.Apply(m, c.Params); err != nil {
		return nil, err
	}
	return m, nil
}

// Problem converts the config into a solver request.
func (c *Config) Problem() (solver.Problem, error) {
	if err := c.Validate(); err != nil {
		return solver.Problem{}, err
	}
	m, err := c.Model()
	if err != nil {
		return solver.Problem{}, err
	}
	return solver.Problem{
		Axes:        slices.Clone(c.Axes),
		Potential:   m,
		K:           c.K,
		Target:      c.Target,
		Vectors:     c.Vectors,
		Observables: c.Observables,
		Method:      c.Method,
		Options:     c.Solver,
	}, nil
}
