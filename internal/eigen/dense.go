package eigen

import (
	"context"
	"fmt"

	"github.com/san-kum/eigensim/internal/operator"
	"github.com/san-kum/eigensim/internal/quantum"
	"gonum.org/v1/gonum/mat"
)

// Dense diagonalises the whole operator with gonum and keeps the k values
// nearest σ. Memory grows as n², so it refuses operators above DenseLimit.
type Dense struct {
	opts Options
}

func (d *Dense) Name() string { return "dense" }

func (d *Dense) Solve(ctx context.Context, h *operator.CSR, k int, sigma float64, vectors bool) (*Result, error) {
	n, err := checkRequest(h, k)
	if err != nil {
		return nil, err
	}
	if n > d.opts.DenseLimit {
		return nil, quantum.Invalid("dense solver limited to %d grid points, got %d", d.opts.DenseLimit, n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var es mat.EigenSym
	if ok := es.Factorize(h.SymDense(), vectors); !ok {
		return nil, fmt.Errorf("%w: dense symmetric eigendecomposition", quantum.ErrNoConvergence)
	}
	values := es.Values(nil)

	var ev mat.Dense
	if vectors {
		es.VectorsTo(&ev)
	}
	ps := make([]pair, n)
	for i, v := range values {
		ps[i] = pair{value: v}
		if vectors {
			ps[i].vector = mat.Col(nil, i, &ev)
		}
	}
	return assemble(nearest(ps, k, sigma), n, vectors), nil
}
