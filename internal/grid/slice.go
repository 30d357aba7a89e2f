package grid

import (
	"github.com/san-kum/eigensim/internal/quantum"
)

// Line extracts the values of vec along axis while the other axes stay at
// the indices given in fixed. fixed[axis] is ignored.
func (g *Grid) Line(vec []float64, axis int, fixed []int) ([]float64, error) {
	if err := g.checkSlice(vec, fixed, axis); err != nil {
		return nil, err
	}
	idx := append([]int(nil), fixed...)
	n := g.axes[axis].Count
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		idx[axis] = i
		out[i] = vec[g.Index(idx)]
	}
	return out, nil
}

// Slice2D extracts a plane spanned by axes a (rows) and b (columns) with the
// remaining axis held at fixed.
func (g *Grid) Slice2D(vec []float64, a, b int, fixed []int) ([][]float64, error) {
	if err := g.checkSlice(vec, fixed, a); err != nil {
		return nil, err
	}
	if b < 0 || b >= len(g.axes) || b == a {
		return nil, quantum.Invalid("slice axes %d and %d", a, b)
	}
	idx := append([]int(nil), fixed...)
	rows, cols := g.axes[a].Count, g.axes[b].Count
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		idx[a] = i
		for j := 0; j < cols; j++ {
			idx[b] = j
			out[i][j] = vec[g.Index(idx)]
		}
	}
	return out, nil
}

func (g *Grid) checkSlice(vec []float64, fixed []int, axis int) error {
	if len(vec) != g.size {
		return quantum.ErrDimensionMismatch
	}
	if len(fixed) != len(g.axes) {
		return quantum.Invalid("need %d fixed indices, got %d", len(g.axes), len(fixed))
	}
	if axis < 0 || axis >= len(g.axes) {
		return quantum.Invalid("axis %d out of range", axis)
	}
	for d, f := range fixed {
		if d != axis && (f < 0 || f >= g.axes[d].Count) {
			return quantum.Invalid("index %d out of range on axis %d", f, d)
		}
	}
	return nil
}
