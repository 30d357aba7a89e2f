package config

import (
	"sort"

	"github.com/san-kum/eigensim/internal/eigen"
	"github.com/san-kum/eigensim/internal/grid"
)

func axes(lo, hi float64, count, dims int) []grid.Axis {
	out := make([]grid.Axis, dims)
	for d := range out {
		out[d] = grid.Axis{Min: lo, Max: hi, Count: count}
	}
	return out
}

var Presets = map[string]map[string]*Config{
	"harmonic": {
		"1d": {
			Potential: "harmonic", Params: map[string]float64{"k0": 1},
			Axes: axes(-10, 10, 500, 1), K: 6, Method: "lanczos", Solver: eigen.DefaultOptions(),
		},
		"2d": {
			Potential: "harmonic", Params: map[string]float64{"k0": 1, "k1": 1},
			Axes: axes(-6, 6, 60, 2), K: 6, Vectors: true, Method: "lanczos", Solver: eigen.DefaultOptions(),
		},
		"3d": {
			Potential: "harmonic", Params: map[string]float64{"k0": 1, "k1": 1, "k2": 1},
			Axes: axes(-5, 5, 24, 3), K: 10, Method: "lanczos", Solver: eigen.DefaultOptions(),
		},
		"anisotropic": {
			Potential: "harmonic", Params: map[string]float64{"k0": 1, "k1": 4},
			Axes: axes(-6, 6, 60, 2), K: 8, Method: "lanczos", Solver: eigen.DefaultOptions(),
		},
	},
	"doublewell": {
		"tunnel": {
			Potential: "doublewell", Params: map[string]float64{"A": 1, "B": 4},
			Axes: axes(-5, 5, 400, 1), K: 4, Vectors: true, Method: "bisect", Solver: eigen.DefaultOptions(),
		},
		"shallow": {
			Potential: "doublewell", Params: map[string]float64{"A": 0.5, "B": 1},
			Axes: axes(-4, 4, 300, 1), K: 4, Vectors: true, Method: "lanczos", Solver: eigen.DefaultOptions(),
		},
	},
	"box": {
		"1d": {
			Potential: "box", Axes: axes(0, 1, 200, 1), K: 5, Vectors: true,
			Method: "bisect", Solver: eigen.DefaultOptions(),
		},
		"2d": {
			Potential: "box", Axes: axes(0, 1, 50, 2), K: 6, Vectors: true,
			Method: "lanczos", Solver: eigen.DefaultOptions(),
		},
	},
	"finitewell": {
		"shallow": {
			Potential: "finitewell", Params: map[string]float64{"depth": 10, "width": 2},
			Axes: axes(-6, 6, 400, 1), K: 3, Target: -10, Vectors: true, Method: "lanczos", Solver: eigen.DefaultOptions(),
		},
	},
	"coulomb": {
		"hydrogen": {
			Potential: "coulomb", Params: map[string]float64{"Z": 1, "soft": 1},
			Axes: axes(-10, 10, 21, 3), K: 5, Target: -1, Method: "lanczos", Solver: eigen.DefaultOptions(),
		},
	},
	"morse": {
		"bond": {
			Potential: "morse", Params: map[string]float64{"D": 16, "A": 1, "R0": 0},
			Axes: axes(-3, 12, 600, 1), K: 4, Target: -16, Vectors: true, Method: "bisect", Solver: eigen.DefaultOptions(),
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(potential, preset string) *Config {
	byName, ok := Presets[potential]
	if !ok {
		return nil
	}
	cfg, ok := byName[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(potential string) []string {
	byName, ok := Presets[potential]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
