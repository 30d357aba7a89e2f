package operator

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var _ mat.Matrix = (*CSR)(nil)

// CSR is a compressed sparse row matrix. It is never mutated after
// construction.
type CSR struct {
	rows, cols int
	indptr     []int
	ind        []int
	data       []float64
}

func (m *CSR) Dims() (int, int) { return m.rows, m.cols }

func (m *CSR) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(mat.ErrIndexOutOfRange)
	}
	lo, hi := m.indptr[i], m.indptr[i+1]
	k := lo + sort.SearchInts(m.ind[lo:hi], j)
	if k < hi && m.ind[k] == j {
		return m.data[k]
	}
	return 0
}

func (m *CSR) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// NNZ is the number of stored non-zero values.
func (m *CSR) NNZ() int { return len(m.data) }

// DoNonZero calls fn for every stored value in row-major order.
func (m *CSR) DoNonZero(fn func(i, j int, v float64)) {
	for i := 0; i < m.rows; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			fn(i, m.ind[k], m.data[k])
		}
	}
}

// Entries returns the stored values as a fresh entry list.
func (m *CSR) Entries() []Entry {
	es := make([]Entry, 0, len(m.data))
	m.DoNonZero(func(i, j int, v float64) {
		es = append(es, Entry{Row: i, Col: j, Value: v})
	})
	return es
}

// MulVecTo computes dst = m x.
func (m *CSR) MulVecTo(dst, x []float64) {
	if len(x) != m.cols || len(dst) != m.rows {
		panic(mat.ErrShape)
	}
	for i := 0; i < m.rows; i++ {
		var s float64
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			s += m.data[k] * x[m.ind[k]]
		}
		dst[i] = s
	}
}

// Diagonal returns the main diagonal.
func (m *CSR) Diagonal() []float64 {
	n := min(m.rows, m.cols)
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i] = m.At(i, i)
	}
	return d
}

// Bandwidth is the largest |i-j| over the stored values.
func (m *CSR) Bandwidth() int {
	bw := 0
	m.DoNonZero(func(i, j int, _ float64) {
		if d := i - j; d > bw {
			bw = d
		} else if -d > bw {
			bw = -d
		}
	})
	return bw
}

// IsSymmetric reports whether m equals its transpose within tol.
func (m *CSR) IsSymmetric(tol float64) bool {
	if m.rows != m.cols {
		return false
	}
	sym := true
	m.DoNonZero(func(i, j int, v float64) {
		if sym && math.Abs(v-m.At(j, i)) > tol {
			sym = false
		}
	})
	return sym
}

// Scale returns s*m.
func (m *CSR) Scale(s float64) *CSR {
	out := &CSR{
		rows:   m.rows,
		cols:   m.cols,
		indptr: append([]int(nil), m.indptr...),
		ind:    append([]int(nil), m.ind...),
		data:   make([]float64, len(m.data)),
	}
	for k, v := range m.data {
		out.data[k] = s * v
	}
	return out
}

// SymDense copies a symmetric m into a dense gonum matrix.
func (m *CSR) SymDense() *mat.SymDense {
	if m.rows != m.cols {
		panic(mat.ErrShape)
	}
	d := mat.NewSymDense(m.rows, nil)
	m.DoNonZero(func(i, j int, v float64) {
		if i <= j {
			d.SetSym(i, j, v)
		}
	})
	return d
}
