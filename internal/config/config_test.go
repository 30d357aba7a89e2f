package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/san-kum/eigensim/internal/grid"
	"github.com/san-kum/eigensim/internal/quantum"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Potential != "harmonic" {
		t.Errorf("expected potential harmonic, got %s", cfg.Potential)
	}
	if cfg.K <= 0 {
		t.Error("k should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("doublewell", "tunnel")
	cfg.Target = 1.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoad_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "potential: morse\naxes:\n  - {min: -2, max: 10, count: 100}\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Potential != "morse" || cfg.K != DefaultK || cfg.Solver.Tol == 0 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if want := (grid.Axis{Min: -2, Max: 10, Count: 100}); cfg.Axes[0] != want {
		t.Errorf("expected axis %v, got %v", want, cfg.Axes[0])
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("k: [1, 2"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestPresets_BuildProblems(t *testing.T) {
	for potential, byName := range Presets {
		for name := range byName {
			p, err := GetPreset(potential, name).Problem()
			if err != nil {
				t.Errorf("%s/%s: %v", potential, name, err)
				continue
			}
			if p.Potential.Name() != potential {
				t.Errorf("%s/%s: built %s", potential, name, p.Potential.Name())
			}
		}
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	a := GetPreset("harmonic", "1d")
	a.Params["k0"] = 100
	a.Axes[0].Count = 3
	b := GetPreset("harmonic", "1d")
	if b.Params["k0"] != 1 || b.Axes[0].Count != 500 {
		t.Error("preset was mutated through a returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("harmonic", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "1d") != nil {
		t.Error("expected nil for nonexistent potential")
	}
}

func TestListPresets(t *testing.T) {
	got := ListPresets("harmonic")
	want := []string{"1d", "2d", "3d", "anisotropic"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent potential")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown potential", func(c *Config) { c.Potential = "yukawa" }},
		{"no axes", func(c *Config) { c.Axes = nil }},
		{"short axis", func(c *Config) { c.Axes[0].Count = 1 }},
		{"zero k", func(c *Config) { c.K = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, quantum.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestProblem_UnknownParam(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params = map[string]float64{"omega": 2}
	if _, err := cfg.Problem(); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
