package eigen

import (
	"fmt"
	"math"

	"github.com/san-kum/eigensim/internal/operator"
	"github.com/san-kum/eigensim/internal/quantum"
)

// BandLU is an LU factorisation with partial pivoting of H - σI for a
// banded H. Row interchanges widen the upper band to kl+ku.
type BandLU struct {
	n, kl, ku int
	w         int
	u         []float64
	l         []float64
	piv       []int
}

// FactorizeBand factors h - sigma·I. A pivot that vanishes to working
// precision yields ErrSingularShift.
func FactorizeBand(h *operator.CSR, sigma float64) (*BandLU, error) {
	n, c := h.Dims()
	if n != c {
		return nil, quantum.ErrDimensionMismatch
	}
	bw := h.Bandwidth()
	f := &BandLU{
		n:   n,
		kl:  bw,
		ku:  bw,
		w:   3*bw + 1,
		piv: make([]int, n),
	}
	f.u = make([]float64, n*f.w)
	f.l = make([]float64, n*f.kl)

	var anorm float64
	h.DoNonZero(func(i, j int, v float64) {
		if i == j {
			v -= sigma
		}
		f.set(i, j, v)
	})
	for i := 0; i < n; i++ {
		if h.At(i, i) == 0 {
			f.set(i, i, -sigma)
		}
		var row float64
		for j := max(0, i-f.kl); j <= min(n-1, i+f.ku); j++ {
			row += math.Abs(f.at(i, j))
		}
		anorm = max(anorm, row)
	}

	tiny := anorm * 0x1p-52
	for k := 0; k < n; k++ {
		last := min(n-1, k+f.kl)
		right := min(n-1, k+f.kl+f.ku)

		p, best := k, math.Abs(f.at(k, k))
		for i := k + 1; i <= last; i++ {
			if a := math.Abs(f.at(i, k)); a > best {
				p, best = i, a
			}
		}
		if best <= tiny {
			return nil, fmt.Errorf("%w: zero pivot at row %d for shift %g", quantum.ErrSingularShift, k, sigma)
		}
		f.piv[k] = p
		if p != k {
			for j := k; j <= right; j++ {
				a, b := f.at(k, j), f.at(p, j)
				f.set(k, j, b)
				f.set(p, j, a)
			}
		}

		pivot := f.at(k, k)
		for i := k + 1; i <= last; i++ {
			m := f.at(i, k) / pivot
			f.l[k*f.kl+i-k-1] = m
			if m == 0 {
				continue
			}
			for j := k + 1; j <= right; j++ {
				f.set(i, j, f.at(i, j)-m*f.at(k, j))
			}
		}
	}
	return f, nil
}

func (f *BandLU) at(i, j int) float64 { return f.u[i*f.w+j-i+f.kl] }

func (f *BandLU) set(i, j int, v float64) { f.u[i*f.w+j-i+f.kl] = v }

// Size is the order of the factored matrix.
func (f *BandLU) Size() int { return f.n }

// SolveTo writes the solution of (H - σI) x = b into dst. dst and b may alias.
func (f *BandLU) SolveTo(dst, b []float64) {
	if len(dst) != f.n || len(b) != f.n {
		panic("eigen: vector length does not match factorisation")
	}
	if &dst[0] != &b[0] {
		copy(dst, b)
	}
	n := f.n
	for k := 0; k < n; k++ {
		if p := f.piv[k]; p != k {
			dst[k], dst[p] = dst[p], dst[k]
		}
		xk := dst[k]
		if xk == 0 {
			continue
		}
		for i := k + 1; i <= min(n-1, k+f.kl); i++ {
			dst[i] -= f.l[k*f.kl+i-k-1] * xk
		}
	}
	for i := n - 1; i >= 0; i-- {
		s := dst[i]
		for j := i + 1; j <= min(n-1, i+f.kl+f.ku); j++ {
			s -= f.at(i, j) * dst[j]
		}
		dst[i] = s / f.at(i, i)
	}
}
