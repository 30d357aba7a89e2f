package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/eigensim/internal/eigen"
	"github.com/san-kum/eigensim/internal/grid"
	"github.com/san-kum/eigensim/internal/logging"
	"github.com/san-kum/eigensim/internal/metrics"
	"github.com/san-kum/eigensim/internal/operator"
	"github.com/san-kum/eigensim/internal/quantum"
	"gonum.org/v1/gonum/mat"
)

// Solve returns the K eigenvalues of the discretized Hamiltonian closest to
// p.Target. Malformed problems fail before any matrix is assembled.
func Solve(ctx context.Context, p Problem) (*Spectrum, error) {
	start := time.Now()
	log := logging.Logger()

	name := p.Method
	if name == "" {
		name = DefaultMethod
	}

	g, err := validate(p)
	if err != nil {
		return nil, &quantum.SolveError{Method: name, Stage: "validate", Wrapped: err}
	}
	method, err := eigen.New(name, p.Options)
	if err != nil {
		return nil, &quantum.SolveError{Stage: "validate", Wrapped: err}
	}

	values := p.Values
	if values == nil {
		values = grid.Sample(g, p.Potential)
	}

	scale := p.KineticScale
	if scale == 0 {
		scale = 1
	}
	h, err := operator.Hamiltonian(g, values, scale)
	if err != nil {
		return nil, &quantum.SolveError{Method: name, Stage: "assemble", Wrapped: err}
	}
	log.Debug("assembled hamiltonian",
		"shape", g.Shape(), "size", g.Size(), "nnz", h.NNZ(), "bandwidth", h.Bandwidth())

	needVectors := p.Vectors || p.Observables
	res, err := method.Solve(ctx, h, p.K, p.Target, needVectors)
	if err != nil {
		return nil, &quantum.SolveError{Method: name, Stage: "eigensolve", Wrapped: err}
	}

	sp := &Spectrum{
		Values:       res.Values,
		Grid:         g,
		Metrics:      map[string]float64{},
		Method:       name,
		Applications: res.Applications,
		Restarts:     res.Restarts,
	}
	if p.Observables {
		ms := metrics.Standard(g, h)
		for i := range res.Values {
			metrics.Measure(ms, mat.Col(nil, i, res.Vectors), i, sp.Metrics)
		}
	}
	if p.Vectors {
		sp.Vectors = res.Vectors
		sp.Coords = g.Coords()
	}
	sp.Elapsed = time.Since(start)

	log.Debug("solved",
		"method", name, "k", p.K, "target", p.Target,
		"applications", res.Applications, "restarts", res.Restarts, "elapsed", sp.Elapsed)
	return sp, nil
}

func validate(p Problem) (*grid.Grid, error) {
	g, err := grid.New(p.Axes...)
	if err != nil {
		return nil, err
	}
	if p.K < 1 || p.K > g.Size() {
		return nil, quantum.Invalid("K=%d outside [1, %d]", p.K, g.Size())
	}
	switch {
	case p.Values != nil && len(p.Values) != g.Size():
		return nil, fmt.Errorf("%w: %d potential values for %d grid points",
			quantum.ErrDimensionMismatch, len(p.Values), g.Size())
	case p.Values == nil && p.Potential == nil:
		return nil, quantum.Invalid("no potential")
	}
	return g, nil
}
