package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/eigensim/internal/grid"
	"github.com/san-kum/eigensim/internal/quantum"
	"gonum.org/v1/gonum/floats"
)

// Momentum returns the momentum-space density |φ(k)|² of a 1D state sampled
// with spacing dx. k is ascending with zero at index len/2, and the density
// integrates to one over k.
func Momentum(psi []float64, dx float64) (k, density []float64, err error) {
	n := len(psi)
	if n < 2 {
		return nil, nil, quantum.Invalid("momentum needs at least 2 samples, got %d", n)
	}
	if dx <= 0 {
		return nil, nil, quantum.Invalid("spacing must be positive, got %g", dx)
	}

	spectrum := fft.FFTReal(psi)
	dk := 2 * math.Pi / (float64(n) * dx)
	k = make([]float64, n)
	density = make([]float64, n)
	half := n / 2
	for i := range k {
		f := i - half
		j := (f + n) % n
		k[i] = float64(f) * dk
		a := cmplx.Abs(spectrum[j])
		density[i] = a * a
	}

	total := floats.Sum(density) * dk
	if total > 0 {
		floats.Scale(1/total, density)
	}
	return k, density, nil
}

// Density returns ψ² normalized so that Σ density·dV = 1 over the grid.
func Density(g *grid.Grid, psi []float64) ([]float64, error) {
	if len(psi) != g.Size() {
		return nil, quantum.ErrDimensionMismatch
	}
	out := make([]float64, len(psi))
	for i, v := range psi {
		out[i] = v * v
	}
	total := floats.Sum(out) * g.CellVolume()
	if total > 0 {
		floats.Scale(1/total, out)
	}
	return out, nil
}
