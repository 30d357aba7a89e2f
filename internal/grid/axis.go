package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/eigensim/internal/quantum"
)

// Axis is an evenly spaced coordinate range including both end points.
type Axis struct {
	Min   float64 `yaml:"min" json:"min"`
	Max   float64 `yaml:"max" json:"max"`
	Count int     `yaml:"count" json:"count"`
}

// Validate reports whether a step size can be derived for the axis.
func (a Axis) Validate() error {
	if a.Count < 2 {
		return quantum.Invalid("axis needs at least 2 points, got %d", a.Count)
	}
	if !(a.Max > a.Min) {
		return quantum.Invalid("axis max %g must exceed min %g", a.Max, a.Min)
	}
	return nil
}

// Step is the spacing between neighbouring points.
func (a Axis) Step() float64 {
	return (a.Max - a.Min) / float64(a.Count-1)
}

// Points returns the coordinates of the axis. The last point is Max exactly.
func (a Axis) Points() []float64 {
	pts := make([]float64, a.Count)
	h := a.Step()
	for i := range pts {
		pts[i] = a.Min + float64(i)*h
	}
	pts[a.Count-1] = a.Max
	return pts
}

func (a Axis) String() string {
	return fmt.Sprintf("%g:%g:%d", a.Min, a.Max, a.Count)
}

// ParseAxis reads an axis written as "min:max:count".
func ParseAxis(s string) (Axis, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return Axis{}, quantum.Invalid("axis %q: want min:max:count", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Axis{}, quantum.Invalid("axis %q: min: %v", s, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Axis{}, quantum.Invalid("axis %q: max: %v", s, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return Axis{}, quantum.Invalid("axis %q: count: %v", s, err)
	}
	a := Axis{Min: lo, Max: hi, Count: n}
	if err := a.Validate(); err != nil {
		return Axis{}, err
	}
	return a, nil
}
