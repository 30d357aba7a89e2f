package potentials

import (
	"fmt"
	"sort"

	"github.com/san-kum/eigensim/internal/quantum"
)

// Model is a named, tunable potential.
type Model interface {
	quantum.Potential
	quantum.Configurable
}

var models = map[string]func() Model{
	"box":        func() Model { return NewBox() },
	"harmonic":   func() Model { return NewHarmonic(1) },
	"doublewell": func() Model { return NewDoubleWell() },
	"finitewell": func() Model { return NewFiniteWell() },
	"coulomb":    func() Model { return NewSoftCoulomb() },
	"morse":      func() Model { return NewMorse() },
}

var descriptions = map[string]string{
	"box":        "particle in a box (Dirichlet walls)",
	"harmonic":   "harmonic oscillator",
	"doublewell": "bistable quartic well",
	"finitewell": "finite square well",
	"coulomb":    "softened hydrogen-like attraction",
	"morse":      "anharmonic Morse bond",
}

// New returns a fresh model with default parameters.
func New(name string) (Model, error) {
	fn, ok := models[name]
	if !ok {
		return nil, fmt.Errorf("unknown potential: %s", name)
	}
	return fn(), nil
}

// Names lists the registered models alphabetically.
func Names() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line summary of a model.
func Describe(name string) string { return descriptions[name] }

// Apply sets every parameter in params on m.
func Apply(m quantum.Configurable, params map[string]float64) error {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := m.SetParam(k, params[k]); err != nil {
			return err
		}
	}
	return nil
}

func unknownParam(model, name string) error {
	return quantum.Invalid("%s has no parameter %q", model, name)
}

func radius2(r []float64) float64 {
	s := 0.0
	for _, x := range r {
		s += x * x
	}
	return s
}
