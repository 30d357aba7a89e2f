package eigen

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/eigensim/internal/operator"
	"github.com/san-kum/eigensim/internal/quantum"
	"gonum.org/v1/gonum/floats"
)

var errIndefinite = errors.New("eigen: shifted operator is not positive definite")

// ShiftedCG solves (H - σI)x = b with conjugate gradients. It converges when
// H - σI is positive definite, that is when σ lies below the spectrum; an
// indefinite operator is reported as soon as a search direction exposes it.
type ShiftedCG struct {
	h       *operator.CSR
	sigma   float64
	tol     float64
	maxIter int

	x, r, p, ap []float64
	Iterations  int
}

func NewShiftedCG(h *operator.CSR, sigma, tol float64) *ShiftedCG {
	n, _ := h.Dims()
	return &ShiftedCG{
		h:       h,
		sigma:   sigma,
		tol:     tol,
		maxIter: max(2*n, 100),
		x:       make([]float64, n),
		r:       make([]float64, n),
		p:       make([]float64, n),
		ap:      make([]float64, n),
	}
}

func (s *ShiftedCG) apply(dst, x []float64) {
	s.h.MulVecTo(dst, x)
	floats.AddScaled(dst, -s.sigma, x)
}

// SolveTo writes the solution of (H - σI)x = b into dst. dst and b may alias.
func (s *ShiftedCG) SolveTo(dst, b []float64) error {
	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		for i := range dst {
			dst[i] = 0
		}
		return nil
	}
	for i := range s.x {
		s.x[i] = 0
	}
	copy(s.r, b)
	copy(s.p, b)
	rr := floats.Dot(s.r, s.r)
	goal := s.tol * bnorm

	for it := 0; it < s.maxIter; it++ {
		s.apply(s.ap, s.p)
		s.Iterations++
		pap := floats.Dot(s.p, s.ap)
		if pap <= 0 || math.IsNaN(pap) {
			return errIndefinite
		}
		alpha := rr / pap
		floats.AddScaled(s.x, alpha, s.p)
		floats.AddScaled(s.r, -alpha, s.ap)
		next := floats.Dot(s.r, s.r)
		if math.Sqrt(next) <= goal {
			copy(dst, s.x)
			return nil
		}
		floats.AddScaledTo(s.p, s.r, next/rr, s.p)
		rr = next
	}
	return fmt.Errorf("%w: conjugate gradients stalled after %d steps", quantum.ErrNoConvergence, s.maxIter)
}

// shiftInverse applies (H - σI)⁻¹ for lanczos. Operators with a band wider
// than the limit go through conjugate gradients; when that fails the banded
// LU takes over for the rest of the solve.
type shiftInverse struct {
	h     *operator.CSR
	sigma float64
	lu    *BandLU
	cg    *ShiftedCG
}

func newShiftInverse(h *operator.CSR, sigma float64, opts Options) (*shiftInverse, error) {
	inv := &shiftInverse{h: h, sigma: sigma}
	if h.Bandwidth() > opts.BandLimit {
		inv.cg = NewShiftedCG(h, sigma, math.Min(opts.Tol, DefaultTol)*1e-2)
		return inv, nil
	}
	lu, err := FactorizeBand(h, sigma)
	if err != nil {
		return nil, err
	}
	inv.lu = lu
	return inv, nil
}

func (inv *shiftInverse) SolveTo(dst, b []float64) error {
	if inv.cg != nil {
		if err := inv.cg.SolveTo(dst, b); err == nil {
			return nil
		}
		lu, err := FactorizeBand(inv.h, inv.sigma)
		if err != nil {
			return err
		}
		inv.cg, inv.lu = nil, lu
	}
	inv.lu.SolveTo(dst, b)
	return nil
}

// iterative reports whether the inverse still runs on conjugate gradients.
func (inv *shiftInverse) iterative() bool { return inv.cg != nil }
