package eigen

import (
	"context"
	"errors"
	"math"
	"math/rand"

	"github.com/san-kum/eigensim/internal/operator"
	"github.com/san-kum/eigensim/internal/quantum"
	"gonum.org/v1/gonum/floats"
)

const pivmin = 1e-290

// Bisect handles tridiagonal operators (1D grids). Sturm counts locate each
// eigenvalue to machine precision; eigenvectors come from inverse iteration.
type Bisect struct {
	opts Options
}

func (b *Bisect) Name() string { return "bisect" }

func (b *Bisect) Solve(ctx context.Context, h *operator.CSR, k int, sigma float64, vectors bool) (*Result, error) {
	n, err := checkRequest(h, k)
	if err != nil {
		return nil, err
	}
	if bw := h.Bandwidth(); bw > 1 {
		return nil, quantum.Invalid("bisect needs a tridiagonal operator, bandwidth is %d", bw)
	}

	diag := h.Diagonal()
	off := make([]float64, n-1)
	for i := range off {
		off[i] = h.At(i+1, i)
	}
	lo, hi := gershgorin(diag, off)

	// The k nearest values sit among the k below and the k above sigma.
	below := sturm(diag, off, sigma)
	first, last := max(0, below-k), min(n-1, below+k-1)

	ps := make([]pair, 0, last-first+1)
	for j := first; j <= last; j++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ps = append(ps, pair{value: bisectIndex(diag, off, j, lo, hi)})
	}
	ps = nearest(ps, k, sigma)

	if vectors {
		rng := rand.New(rand.NewSource(b.opts.Seed))
		for i := range ps {
			v, err := inverseIteration(h, ps[i].value, rng)
			if err != nil {
				return nil, err
			}
			ps[i].vector = v
		}
	}
	return assemble(ps, n, vectors), nil
}

// sturm counts the eigenvalues strictly below x.
func sturm(diag, off []float64, x float64) int {
	count := 0
	prev := 1.0
	for i := range diag {
		d := diag[i] - x
		if i > 0 {
			d -= off[i-1] * off[i-1] / prev
		}
		if math.Abs(d) < pivmin {
			d = -pivmin
		}
		if d < 0 {
			count++
		}
		prev = d
	}
	return count
}

// gershgorin bounds the spectrum of a symmetric tridiagonal matrix.
func gershgorin(diag, off []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, d := range diag {
		r := 0.0
		if i > 0 {
			r += math.Abs(off[i-1])
		}
		if i < len(off) {
			r += math.Abs(off[i])
		}
		lo = math.Min(lo, d-r)
		hi = math.Max(hi, d+r)
	}
	pad := 2 * 0x1p-52 * (math.Abs(lo) + math.Abs(hi))
	return lo - pad - pivmin, hi + pad + pivmin
}

// bisectIndex returns eigenvalue number j (0-based, ascending).
func bisectIndex(diag, off []float64, j int, lo, hi float64) float64 {
	for iter := 0; iter < 256; iter++ {
		mid := lo + (hi-lo)/2
		if mid == lo || mid == hi {
			break
		}
		if sturm(diag, off, mid) > j {
			hi = mid
		} else {
			lo = mid
		}
		if hi-lo <= 2*0x1p-52*math.Max(math.Abs(lo), math.Abs(hi)) {
			break
		}
	}
	return lo + (hi-lo)/2
}

// inverseIteration recovers the eigenvector of an isolated eigenvalue.
// The shift is nudged off lambda and widened if the factorisation still
// reports it as singular.
func inverseIteration(h *operator.CSR, lambda float64, rng *rand.Rand) ([]float64, error) {
	n, _ := h.Dims()
	delta := 1e-10 * math.Max(1, math.Abs(lambda))
	var lu *BandLU
	var err error
	for attempt := 0; attempt < 4; attempt++ {
		lu, err = FactorizeBand(h, lambda+delta)
		if !errors.Is(err, quantum.ErrSingularShift) {
			break
		}
		delta *= 100
	}
	if err != nil {
		return nil, err
	}

	v := make([]float64, n)
	for i := range v {
		v[i] = rng.NormFloat64()
	}
	for step := 0; step < 3; step++ {
		lu.SolveTo(v, v)
		floats.Scale(1/floats.Norm(v, 2), v)
	}
	return v, nil
}
