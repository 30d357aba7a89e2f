package grid

import (
	"github.com/san-kum/eigensim/internal/quantum"
)

// MaxDims is the highest supported dimensionality.
const MaxDims = 3

// Grid is an immutable tensor product of axes.
type Grid struct {
	axes    []Axis
	coords  [][]float64
	strides []int
	size    int
}

// New validates the axes and builds the grid.
func New(axes ...Axis) (*Grid, error) {
	if len(axes) == 0 || len(axes) > MaxDims {
		return nil, quantum.Invalid("grid needs 1 to %d axes, got %d", MaxDims, len(axes))
	}
	g := &Grid{
		axes:    make([]Axis, len(axes)),
		coords:  make([][]float64, len(axes)),
		strides: make([]int, len(axes)),
	}
	copy(g.axes, axes)

	size := 1
	for d := len(axes) - 1; d >= 0; d-- {
		if err := axes[d].Validate(); err != nil {
			return nil, err
		}
		g.strides[d] = size
		size *= axes[d].Count
		g.coords[d] = axes[d].Points()
	}
	g.size = size
	return g, nil
}

// Dims is the number of axes.
func (g *Grid) Dims() int { return len(g.axes) }

// Size is the total number of grid points.
func (g *Grid) Size() int { return g.size }

// Axis returns axis d.
func (g *Grid) Axis(d int) Axis { return g.axes[d] }

// Axes returns a copy of the axes.
func (g *Grid) Axes() []Axis {
	out := make([]Axis, len(g.axes))
	copy(out, g.axes)
	return out
}

// Shape returns the point count per axis.
func (g *Grid) Shape() []int {
	out := make([]int, len(g.axes))
	for d, a := range g.axes {
		out[d] = a.Count
	}
	return out
}

// Steps returns the spacing per axis.
func (g *Grid) Steps() []float64 {
	out := make([]float64, len(g.axes))
	for d, a := range g.axes {
		out[d] = a.Step()
	}
	return out
}

// CellVolume is the product of the axis steps.
func (g *Grid) CellVolume() float64 {
	v := 1.0
	for _, a := range g.axes {
		v *= a.Step()
	}
	return v
}

// Strides returns the flat-index stride of each axis.
func (g *Grid) Strides() []int {
	out := make([]int, len(g.strides))
	copy(out, g.strides)
	return out
}

// Coords returns the coordinate array of every axis.
func (g *Grid) Coords() [][]float64 {
	out := make([][]float64, len(g.coords))
	for d, c := range g.coords {
		out[d] = append([]float64(nil), c...)
	}
	return out
}

// Index flattens per-axis indices.
func (g *Grid) Index(multi []int) int {
	i := 0
	for d, m := range multi {
		i += m * g.strides[d]
	}
	return i
}

// Unflatten writes the per-axis indices of flat index i into dst.
func (g *Grid) Unflatten(i int, dst []int) []int {
	if len(dst) < len(g.axes) {
		dst = make([]int, len(g.axes))
	}
	dst = dst[:len(g.axes)]
	for d, s := range g.strides {
		dst[d] = i / s
		i %= s
	}
	return dst
}

// Point writes the coordinates of flat index i into dst.
func (g *Grid) Point(i int, dst []float64) []float64 {
	if len(dst) < len(g.axes) {
		dst = make([]float64, len(g.axes))
	}
	dst = dst[:len(g.axes)]
	for d, s := range g.strides {
		dst[d] = g.coords[d][i/s]
		i %= s
	}
	return dst
}

// Center returns the per-axis indices closest to the middle of the grid.
func (g *Grid) Center() []int {
	out := make([]int, len(g.axes))
	for d, a := range g.axes {
		out[d] = a.Count / 2
	}
	return out
}

// Sample evaluates pot at every grid point in flat order.
func Sample(g *Grid, pot quantum.Potential) []float64 {
	values := make([]float64, g.size)
	r := make([]float64, len(g.axes))
	for i := range values {
		values[i] = pot.Eval(g.Point(i, r))
	}
	return values
}
