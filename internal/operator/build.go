package operator

import (
	"github.com/san-kum/eigensim/internal/grid"
	"github.com/san-kum/eigensim/internal/quantum"
)

// Identity returns the n×n identity.
func Identity(n int) *CSR {
	es := make([]Entry, n)
	for i := range es {
		es[i] = Entry{Row: i, Col: i, Value: 1}
	}
	return NewCOO(n, n, es).ToCSR()
}

// Diagonal returns a square matrix with values on the main diagonal.
func Diagonal(values []float64) *CSR {
	n := len(values)
	es := make([]Entry, 0, n)
	for i, v := range values {
		es = append(es, Entry{Row: i, Col: i, Value: v})
	}
	return NewCOO(n, n, es).ToCSR()
}

// Laplacian1D is the negative second-difference stencil on n points with
// spacing dx. Rows at the ends have no wraparound term, which imposes
// Dirichlet boundaries.
func Laplacian1D(n int, dx float64) *CSR {
	c := 1 / (dx * dx)
	es := make([]Entry, 0, 3*n)
	for i := 0; i < n; i++ {
		es = append(es, Entry{Row: i, Col: i, Value: 2 * c})
		if i > 0 {
			es = append(es, Entry{Row: i, Col: i - 1, Value: -c})
		}
		if i < n-1 {
			es = append(es, Entry{Row: i, Col: i + 1, Value: -c})
		}
	}
	return NewCOO(n, n, es).ToCSR()
}

// Kron is the Kronecker product a ⊗ b.
func Kron(a, b *CSR) *CSR {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	ea, eb := a.Entries(), b.Entries()
	es := make([]Entry, 0, len(ea)*len(eb))
	for _, x := range ea {
		for _, y := range eb {
			es = append(es, Entry{
				Row:   x.Row*rb + y.Row,
				Col:   x.Col*cb + y.Col,
				Value: x.Value * y.Value,
			})
		}
	}
	return NewCOO(ra*rb, ca*cb, es).ToCSR()
}

// Add sums matrices of equal shape.
func Add(ms ...*CSR) *CSR {
	r, c := ms[0].Dims()
	var es []Entry
	for _, m := range ms {
		mr, mc := m.Dims()
		if mr != r || mc != c {
			panic("operator: shape mismatch in Add")
		}
		es = append(es, m.Entries()...)
	}
	return NewCOO(r, c, es).ToCSR()
}

// KronSum is a ⊗ I_b + I_a ⊗ b for square a and b.
func KronSum(a, b *CSR) *CSR {
	na, _ := a.Dims()
	nb, _ := b.Dims()
	return Add(Kron(a, Identity(nb)), Kron(Identity(na), b))
}

// KronSumAll folds KronSum over ops from the left, so ops[0] acts on the
// outermost (slowest) index.
func KronSumAll(ops ...*CSR) *CSR {
	acc := ops[0]
	for _, op := range ops[1:] {
		acc = KronSum(acc, op)
	}
	return acc
}

// Kinetic returns scale·(-∇²) on g.
func Kinetic(g *grid.Grid, scale float64) *CSR {
	ops := make([]*CSR, g.Dims())
	for d := range ops {
		a := g.Axis(d)
		ops[d] = Laplacian1D(a.Count, a.Step())
	}
	k := KronSumAll(ops...)
	if scale != 1 {
		k = k.Scale(scale)
	}
	return k
}

// Hamiltonian returns scale·(-∇²) + diag(potential). potential must be in
// the grid's flat order, e.g. as produced by grid.Sample.
func Hamiltonian(g *grid.Grid, potential []float64, scale float64) (*CSR, error) {
	if len(potential) != g.Size() {
		return nil, quantum.ErrDimensionMismatch
	}
	return Add(Kinetic(g, scale), Diagonal(potential)), nil
}
