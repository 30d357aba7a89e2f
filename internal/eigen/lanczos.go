package eigen

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/san-kum/eigensim/internal/operator"
	"github.com/san-kum/eigensim/internal/quantum"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// checkEvery is how many Lanczos steps pass between Ritz extractions.
const checkEvery = 4

// Lanczos is the shift-invert Lanczos back end. Eigenvalues of H nearest σ
// are the largest-magnitude eigenvalues θ of (H - σI)⁻¹, with λ = σ + 1/θ.
//
// A single Krylov space holds only one direction per degenerate eigenspace,
// so converged Ritz pairs are locked and the iteration restarts from a fresh
// vector orthogonal to everything locked. It stops once k pairs are locked
// and a restart finds nothing closer to σ than the k-th of them.
type Lanczos struct {
	opts Options
}

func (l *Lanczos) Name() string { return "lanczos" }

type ritz struct {
	theta  float64
	vector []float64
}

func (l *Lanczos) Solve(ctx context.Context, h *operator.CSR, k int, sigma float64, vectors bool) (*Result, error) {
	n, err := checkRequest(h, k)
	if err != nil {
		return nil, err
	}
	inv, err := newShiftInverse(h, sigma, l.opts)
	if err != nil {
		return nil, err
	}

	maxRestarts := l.opts.MaxRestarts
	if maxRestarts <= 0 {
		maxRestarts = 4*k + 16
	}
	it := &krylov{
		inv:   inv,
		n:     n,
		rng:   rand.New(rand.NewSource(l.opts.Seed)),
		tol:   l.opts.Tol,
		limit: l.opts.MaxKrylov,
	}

	var locked []ritz
	restarts := 0
	for len(locked) < n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if restarts > maxRestarts {
			return nil, fmt.Errorf("%w: %d restarts, %d of %d pairs locked", quantum.ErrNoConvergence, restarts, len(locked), k)
		}

		want := max(1, k-len(locked))
		found, exhausted, err := it.run(ctx, locked, want)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			if exhausted {
				break
			}
			return nil, fmt.Errorf("%w: no Ritz pair converged within %d Lanczos steps", quantum.ErrNoConvergence, it.limit)
		}
		if len(locked) >= k && math.Abs(found[0].theta) <= kthTheta(locked, k)*(1+1e-9) {
			break
		}
		locked = append(locked, found...)
		restarts++
	}

	ps := make([]pair, len(locked))
	tmp := make([]float64, n)
	for i, r := range locked {
		h.MulVecTo(tmp, r.vector)
		ps[i] = pair{value: floats.Dot(r.vector, tmp), vector: r.vector}
	}
	res := assemble(nearest(ps, k, sigma), n, vectors)
	res.Applications = it.applications
	res.Restarts = restarts
	return res, nil
}

// kthTheta is the k-th largest |θ| among the locked pairs.
func kthTheta(locked []ritz, k int) float64 {
	mags := make([]float64, len(locked))
	for i, r := range locked {
		mags[i] = math.Abs(r.theta)
	}
	slices.Sort(mags)
	return mags[len(mags)-k]
}

type krylov struct {
	inv          *shiftInverse
	n            int
	rng          *rand.Rand
	tol          float64
	limit        int
	applications int
}

// run performs one Lanczos cycle deflated against locked. It returns the
// converged Ritz pairs that lead the |θ| ordering, largest first; at least
// want of them unless the cycle hit its step limit or spanned an invariant
// subspace. The flag reports that the deflated space is used up.
func (it *krylov) run(ctx context.Context, locked []ritz, want int) ([]ritz, bool, error) {
	space := it.n - len(locked)
	q := make([]float64, it.n)
	for i := range q {
		q[i] = it.rng.NormFloat64()
	}
	orthogonalize(q, locked, nil)
	nrm := floats.Norm(q, 2)
	if nrm < 1e-12 {
		return nil, true, nil
	}
	floats.Scale(1/nrm, q)

	basis := [][]float64{q}
	var alpha, beta []float64
	for {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		j := len(basis) - 1
		w := make([]float64, it.n)
		if err := it.inv.SolveTo(w, basis[j]); err != nil {
			return nil, false, err
		}
		it.applications++

		alpha = append(alpha, floats.Dot(w, basis[j]))
		orthogonalize(w, locked, basis)
		b := floats.Norm(w, 2)
		beta = append(beta, b)

		m := len(basis)
		invariant := b <= 1e-12*math.Abs(alpha[j])+1e-300
		done := invariant || m >= space || m >= it.limit
		if done || (m >= want && m%checkEvery == 0) {
			found, err := ritzPairs(alpha, beta, basis, it.tol, invariant || m >= space)
			if err != nil {
				return nil, false, err
			}
			if len(found) >= want || done {
				return found, m >= space, nil
			}
		}

		floats.Scale(1/b, w)
		basis = append(basis, w)
	}
}

// orthogonalize removes the components of v along the locked vectors and
// the basis, twice, which keeps the Krylov vectors orthogonal to working
// precision.
func orthogonalize(v []float64, locked []ritz, basis [][]float64) {
	for pass := 0; pass < 2; pass++ {
		for _, r := range locked {
			floats.AddScaled(v, -floats.Dot(r.vector, v), r.vector)
		}
		for _, q := range basis {
			floats.AddScaled(v, -floats.Dot(q, v), q)
		}
	}
}

// ritzPairs solves the projected tridiagonal problem and returns the leading
// converged pairs in descending |θ|.
func ritzPairs(alpha, beta []float64, basis [][]float64, tol float64, exact bool) ([]ritz, error) {
	m := len(alpha)
	t := mat.NewSymDense(m, nil)
	for i := 0; i < m; i++ {
		t.SetSym(i, i, alpha[i])
		if i+1 < m {
			t.SetSym(i, i+1, beta[i])
		}
	}
	var es mat.EigenSym
	if ok := es.Factorize(t, true); !ok {
		return nil, fmt.Errorf("%w: tridiagonal Ritz problem", quantum.ErrNoConvergence)
	}
	thetas := es.Values(nil)
	var s mat.Dense
	es.VectorsTo(&s)

	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmpFloat(math.Abs(thetas[b]), math.Abs(thetas[a]))
	})

	last := beta[m-1]
	var found []ritz
	for _, idx := range order {
		th := thetas[idx]
		resid := math.Abs(last * s.At(m-1, idx))
		if !exact && resid > tol*math.Abs(th) {
			break
		}
		v := make([]float64, len(basis[0]))
		for j := 0; j < m; j++ {
			floats.AddScaled(v, s.At(j, idx), basis[j])
		}
		floats.Scale(1/floats.Norm(v, 2), v)
		found = append(found, ritz{theta: th, vector: v})
	}
	return found, nil
}
