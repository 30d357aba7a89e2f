package potentials

import "math"

// Box has no potential; the grid's Dirichlet walls confine the particle.
type Box struct{}

func NewBox() *Box { return &Box{} }

func (b *Box) Name() string                          { return "box" }
func (b *Box) Eval([]float64) float64                { return 0 }
func (b *Box) GetParams() map[string]float64         { return map[string]float64{} }
func (b *Box) SetParam(name string, _ float64) error { return unknownParam(b.Name(), name) }

// FiniteWell is -Depth inside the cube |r_d| < Width/2 and zero outside.
type FiniteWell struct {
	Depth, Width float64
}

func NewFiniteWell() *FiniteWell {
	return &FiniteWell{Depth: 20, Width: 2}
}

func (w *FiniteWell) Name() string { return "finitewell" }

func (w *FiniteWell) Eval(r []float64) float64 {
	for _, x := range r {
		if math.Abs(x) >= w.Width/2 {
			return 0
		}
	}
	return -w.Depth
}

func (w *FiniteWell) GetParams() map[string]float64 {
	return map[string]float64{"depth": w.Depth, "width": w.Width}
}

func (w *FiniteWell) SetParam(n string, v float64) error {
	switch n {
	case "depth":
		w.Depth = v
	case "width":
		w.Width = v
	default:
		return unknownParam(w.Name(), n)
	}
	return nil
}
