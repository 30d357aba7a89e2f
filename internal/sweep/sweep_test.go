package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/eigensim/internal/config"
	"github.com/san-kum/eigensim/internal/grid"
	"github.com/san-kum/eigensim/internal/quantum"
)

func harmonicConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Axes = []grid.Axis{{Min: -8, Max: 8, Count: 200}}
	cfg.K = 2
	cfg.Method = "dense"
	return cfg
}

func TestSweep_InputOrder(t *testing.T) {
	values := []float64{9, 1, 4}
	points, err := Sweep(context.Background(), harmonicConfig(), "k0", values, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != len(values) {
		t.Fatalf("expected %d points, got %d", len(values), len(points))
	}
	for i, p := range points {
		if p.Value != values[i] {
			t.Errorf("point %d: expected value %f, got %f", i, values[i], p.Value)
		}
		want := math.Sqrt(values[i])
		if got := p.Spectrum.Values[0]; math.Abs(got-want)/want > 0.01 {
			t.Errorf("k0=%f: expected ground state %f, got %f", values[i], want, got)
		}
	}
}

func TestSweep_UnknownParam(t *testing.T) {
	if _, err := Sweep(context.Background(), harmonicConfig(), "omega", []float64{1}, 0); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestSweep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Sweep(ctx, harmonicConfig(), "k0", []float64{1, 2}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGridSearch(t *testing.T) {
	gs := NewGridSearch([]string{"k0"}, [][]float64{{0.25, 1, 4, 9}})
	best, dist, err := gs.Search(context.Background(), harmonicConfig(), 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if best["k0"] != 4 {
		t.Errorf("expected k0=4, got %v", best)
	}
	if dist > 0.01 {
		t.Errorf("expected distance below 0.01, got %f", dist)
	}
}

func TestGridSearch_TwoParams(t *testing.T) {
	cfg := harmonicConfig()
	cfg.Axes = []grid.Axis{{Min: -6, Max: 6, Count: 30}, {Min: -6, Max: 6, Count: 30}}
	gs := NewGridSearch([]string{"k0", "k1"}, [][]float64{{1}, {1, 4, 9}})
	// the second level is 4 for k=(1,1), 5 for (1,4) and 6 for (1,9).
	best, _, err := gs.Search(context.Background(), cfg, 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if best["k0"] != 1 || best["k1"] != 4 {
		t.Errorf("expected k0=1 k1=4, got %v", best)
	}
}

func TestGridSearch_NothingSolvable(t *testing.T) {
	gs := NewGridSearch([]string{"omega"}, [][]float64{{1}})
	if _, _, err := gs.Search(context.Background(), harmonicConfig(), 0, 1); err == nil {
		t.Error("expected error when every combination fails")
	}
}

func TestGridSearch_NegativeLevel(t *testing.T) {
	gs := NewGridSearch([]string{"k0"}, [][]float64{{1, 4}})
	cfg := harmonicConfig()
	cfg.Axes = []grid.Axis{{Min: -6, Max: 6, Count: 40}}
	_, _, err := gs.Search(context.Background(), cfg, -1, 1)
	if !errors.Is(err, quantum.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
