package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/eigensim/internal/grid"
)

func TestLevels(t *testing.T) {
	values := []float64{7.01, 2.99, 5.0, 4.99, 5.01, 6.99, 7.0}
	got := Levels(values, 0.05)
	want := []struct {
		energy float64
		g      int
	}{{2.99, 1}, {5.0, 3}, {7.0, 3}}

	if len(got) != len(want) {
		t.Fatalf("expected %d levels, got %+v", len(want), got)
	}
	for i, w := range want {
		if got[i].Degeneracy != w.g || math.Abs(got[i].Energy-w.energy) > 1e-9 {
			t.Errorf("level %d: expected %v, got %+v", i, w, got[i])
		}
	}
	if math.Abs(got[1].Spread-0.02) > 1e-9 {
		t.Errorf("expected spread 0.02, got %f", got[1].Spread)
	}
	if Levels(nil, 1) != nil {
		t.Error("expected nil for no values")
	}
}

func TestCompareAnalytic(t *testing.T) {
	cs := CompareAnalytic([]float64{0.99, 3.03, 0.1}, []float64{1, 3, 0, 9})
	if len(cs) != 3 {
		t.Fatalf("expected 3 comparisons, got %d", len(cs))
	}
	if math.Abs(cs[0].RelError-0.01) > 1e-12 {
		t.Errorf("expected 1%% error, got %f", cs[0].RelError)
	}
	if math.Abs(cs[2].RelError-0.1) > 1e-12 {
		t.Errorf("expected absolute error for zero level, got %f", cs[2].RelError)
	}
	if math.Abs(MaxRelError(cs)-0.1) > 1e-12 {
		t.Errorf("unexpected max error %f", MaxRelError(cs))
	}
}

func TestMomentum_GaussianStaysGaussian(t *testing.T) {
	const n = 512
	dx := 40.0 / (n - 1)
	psi := make([]float64, n)
	for i := range psi {
		x := -20 + float64(i)*dx
		psi[i] = math.Exp(-x * x / 2)
	}

	k, density, err := Momentum(psi, dx)
	if err != nil {
		t.Fatal(err)
	}
	if k[n/2] != 0 {
		t.Fatalf("expected k=0 at the center, got %f", k[n/2])
	}
	for i := 1; i < n; i++ {
		if k[i] <= k[i-1] {
			t.Fatalf("k not ascending at %d", i)
		}
	}

	for _, off := range []int{1, 5, 10} {
		ratio := density[n/2+off] / density[n/2]
		want := math.Exp(-k[n/2+off] * k[n/2+off])
		if math.Abs(ratio-want) > 1e-6 {
			t.Errorf("k=%f: expected ratio %g, got %g", k[n/2+off], want, ratio)
		}
		if math.Abs(density[n/2+off]-density[n/2-off]) > 1e-10 {
			t.Errorf("density not symmetric at offset %d", off)
		}
	}

	dk := k[1] - k[0]
	total := 0.0
	for _, d := range density {
		total += d * dk
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("expected unit norm, got %f", total)
	}
}

func TestMomentum_Rejects(t *testing.T) {
	if _, _, err := Momentum([]float64{1}, 0.1); err == nil {
		t.Error("expected error for a single sample")
	}
	if _, _, err := Momentum([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for zero spacing")
	}
}

func TestDensity(t *testing.T) {
	g, _ := grid.New(grid.Axis{Min: 0, Max: 1, Count: 3}) // dx = 0.5
	d, err := Density(g, []float64{1, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d[0]-1) > 1e-12 || d[2] != 0 {
		t.Errorf("unexpected density %v", d)
	}
	if _, err := Density(g, []float64{1}); err == nil {
		t.Error("expected mismatch error")
	}
}
