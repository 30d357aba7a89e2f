package eigen

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/eigensim/internal/grid"
	"github.com/san-kum/eigensim/internal/operator"
	"github.com/san-kum/eigensim/internal/quantum"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func harmonic(t *testing.T, axes ...grid.Axis) *operator.CSR {
	t.Helper()
	g, err := grid.New(axes...)
	if err != nil {
		t.Fatal(err)
	}
	v := grid.Sample(g, quantum.PotentialFunc(func(r []float64) float64 {
		s := 0.0
		for _, x := range r {
			s += x * x
		}
		return s
	}))
	h, err := operator.Hamiltonian(g, v, 1)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func solve(t *testing.T, name string, h *operator.CSR, k int, sigma float64, vectors bool) *Result {
	t.Helper()
	m, err := New(name, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	res, err := m.Solve(context.Background(), h, k, sigma, vectors)
	if err != nil {
		t.Fatalf("%s solve failed: %v", name, err)
	}
	return res
}

func TestBandLU_MatchesDenseSolve(t *testing.T) {
	h := harmonic(t, grid.Axis{Min: -3, Max: 3, Count: 6}, grid.Axis{Min: -2, Max: 2, Count: 5})
	n, _ := h.Dims()
	sigma := 3.7

	lu, err := FactorizeBand(h, sigma)
	if err != nil {
		t.Fatal(err)
	}
	b := make([]float64, n)
	for i := range b {
		b[i] = math.Sin(float64(i) + 0.5)
	}
	x := make([]float64, n)
	lu.SolveTo(x, b)

	a := mat.DenseCopyOf(h)
	for i := 0; i < n; i++ {
		a.Set(i, i, a.At(i, i)-sigma)
	}
	var want mat.VecDense
	if err := want.SolveVec(a, mat.NewVecDense(n, b)); err != nil {
		t.Fatal(err)
	}
	for i := range x {
		if math.Abs(x[i]-want.AtVec(i)) > 1e-9*(1+math.Abs(want.AtVec(i))) {
			t.Fatalf("x[%d] = %v, want %v", i, x[i], want.AtVec(i))
		}
	}
}

func TestBandLU_SingularShift(t *testing.T) {
	_, err := FactorizeBand(operator.Laplacian1D(3, 1), 2)
	if !errors.Is(err, quantum.ErrSingularShift) {
		t.Errorf("expected ErrSingularShift, got %v", err)
	}
}

func TestMethods_Agree(t *testing.T) {
	h := harmonic(t, grid.Axis{Min: -6, Max: 6, Count: 80})
	ref := solve(t, "dense", h, 5, 4, false)
	for _, name := range []string{"lanczos", "bisect"} {
		got := solve(t, name, h, 5, 4, false)
		for i := range ref.Values {
			if math.Abs(got.Values[i]-ref.Values[i]) > 1e-8 {
				t.Errorf("%s value %d = %v, dense %v", name, i, got.Values[i], ref.Values[i])
			}
		}
	}
}

func TestLanczos_FindsDegenerateStates(t *testing.T) {
	ax := grid.Axis{Min: -5, Max: 5, Count: 14}
	h := harmonic(t, ax, ax)
	ref := solve(t, "dense", h, 6, 0, false)
	got := solve(t, "lanczos", h, 6, 0, false)
	for i := range ref.Values {
		if math.Abs(got.Values[i]-ref.Values[i]) > 1e-8 {
			t.Errorf("value %d = %v, dense %v", i, got.Values[i], ref.Values[i])
		}
	}
	// levels 1, 2, 3 of the isotropic oscillator: 1 + 2 + 3 states
	if math.Abs(got.Values[1]-got.Values[2]) > 1e-8 {
		t.Errorf("first excited level split: %v", got.Values[1:3])
	}
}

func TestMethods_VectorsAreEigenvectors(t *testing.T) {
	h := harmonic(t, grid.Axis{Min: -5, Max: 5, Count: 60})
	n, _ := h.Dims()
	for _, name := range Methods() {
		res := solve(t, name, h, 3, 0, true)
		r, c := res.Vectors.Dims()
		if r != n || c != 3 {
			t.Fatalf("%s vectors are %dx%d", name, r, c)
		}
		hv := make([]float64, n)
		for j, lambda := range res.Values {
			v := mat.Col(nil, j, res.Vectors)
			if math.Abs(floats.Norm(v, 2)-1) > 1e-9 {
				t.Errorf("%s vector %d not normalised", name, j)
			}
			h.MulVecTo(hv, v)
			floats.AddScaled(hv, -lambda, v)
			if resid := floats.Norm(hv, 2); resid > 1e-6*math.Max(1, math.Abs(lambda)) {
				t.Errorf("%s residual %d = %g", name, j, resid)
			}
		}
	}
}

func TestLanczos_Deterministic(t *testing.T) {
	ax := grid.Axis{Min: -4, Max: 4, Count: 10}
	h := harmonic(t, ax, ax)
	a := solve(t, "lanczos", h, 4, 1, true)
	b := solve(t, "lanczos", h, 4, 1, true)
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			t.Errorf("run to run difference at %d: %v vs %v", i, a.Values[i], b.Values[i])
		}
	}
	if !mat.Equal(a.Vectors, b.Vectors) {
		t.Error("eigenvectors differ between identical runs")
	}
}

func TestSolve_RejectsBadRequests(t *testing.T) {
	h := operator.Laplacian1D(4, 1)
	for _, name := range Methods() {
		m, _ := New(name, Options{})
		for _, k := range []int{0, 5} {
			if _, err := m.Solve(context.Background(), h, k, 0, false); !errors.Is(err, quantum.ErrInvalidArgument) {
				t.Errorf("%s k=%d: expected ErrInvalidArgument, got %v", name, k, err)
			}
		}
	}

	if _, err := New("arpack", Options{}); !errors.Is(err, quantum.ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}

	dense, _ := New("dense", Options{DenseLimit: 3})
	if _, err := dense.Solve(context.Background(), h, 1, 0, false); !errors.Is(err, quantum.ErrInvalidArgument) {
		t.Errorf("dense limit: got %v", err)
	}

	ax := grid.Axis{Min: 0, Max: 1, Count: 3}
	bisect, _ := New("bisect", Options{})
	if _, err := bisect.Solve(context.Background(), harmonic(t, ax, ax), 1, 0, false); !errors.Is(err, quantum.ErrInvalidArgument) {
		t.Errorf("bisect on 2D operator: got %v", err)
	}
}

func TestLanczos_WholeSpace(t *testing.T) {
	h := operator.Laplacian1D(5, 1)
	res := solve(t, "lanczos", h, 5, 0.1, false)
	for j, v := range res.Values {
		want := 2 - 2*math.Cos(float64(j+1)*math.Pi/6)
		if math.Abs(v-want) > 1e-10 {
			t.Errorf("value %d = %v, want %v", j, v, want)
		}
	}
}

func TestLanczos_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m, _ := New("lanczos", DefaultOptions())
	if _, err := m.Solve(ctx, operator.Laplacian1D(10, 1), 2, 0, false); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestShiftedCG_MatchesBandLU(t *testing.T) {
	h := harmonic(t, grid.Axis{Min: -3, Max: 3, Count: 7}, grid.Axis{Min: -3, Max: 3, Count: 7}, grid.Axis{Min: -3, Max: 3, Count: 7})
	n, _ := h.Dims()
	sigma := -0.5

	lu, err := FactorizeBand(h, sigma)
	if err != nil {
		t.Fatal(err)
	}
	b := make([]float64, n)
	for i := range b {
		b[i] = math.Cos(0.3 * float64(i))
	}
	want := make([]float64, n)
	lu.SolveTo(want, b)

	cg := NewShiftedCG(h, sigma, 1e-13)
	got := make([]float64, n)
	if err := cg.SolveTo(got, b); err != nil {
		t.Fatal(err)
	}
	if cg.Iterations == 0 {
		t.Error("expected iterations to be counted")
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9*(1+math.Abs(want[i])) {
			t.Fatalf("x[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestShiftedCG_Indefinite(t *testing.T) {
	cg := NewShiftedCG(operator.Laplacian1D(10, 1), 2.5, 1e-12)
	b := make([]float64, 10)
	b[0] = 1
	if err := cg.SolveTo(make([]float64, 10), b); err == nil {
		t.Error("expected an error for a shift inside the spectrum")
	}
}

func TestLanczos_IterativeInverse(t *testing.T) {
	h := harmonic(t, grid.Axis{Min: -5, Max: 5, Count: 12}, grid.Axis{Min: -5, Max: 5, Count: 12})
	opts := DefaultOptions()
	opts.BandLimit = 4

	inv, err := newShiftInverse(h, 0, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !inv.iterative() {
		t.Fatal("expected conjugate gradients for a band wider than the limit")
	}

	tests := []struct {
		name  string
		sigma float64
	}{
		{"below spectrum", 0},
		{"inside spectrum", 4.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := solve(t, "dense", h, 2, tt.sigma, false)
			m, err := New("lanczos", opts)
			if err != nil {
				t.Fatal(err)
			}
			got, err := m.Solve(context.Background(), h, 2, tt.sigma, false)
			if err != nil {
				t.Fatal(err)
			}
			for i := range ref.Values {
				if math.Abs(got.Values[i]-ref.Values[i]) > 1e-8 {
					t.Errorf("value %d = %v, dense %v", i, got.Values[i], ref.Values[i])
				}
			}
		})
	}
}

func TestLanczos_NoConvergence(t *testing.T) {
	h := harmonic(t, grid.Axis{Min: -8, Max: 8, Count: 200})
	m, err := New("lanczos", Options{MaxKrylov: 2, MaxRestarts: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Solve(context.Background(), h, 4, 0, false); !errors.Is(err, quantum.ErrNoConvergence) {
		t.Errorf("expected ErrNoConvergence, got %v", err)
	}
}
