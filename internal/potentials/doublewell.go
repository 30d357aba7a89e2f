package potentials

// DoubleWell is the bistable potential A(|r|² - B)² with minima at |r| = √B.
type DoubleWell struct {
	A, B float64
}

func NewDoubleWell() *DoubleWell {
	return &DoubleWell{A: 1.0, B: 4.0}
}

func (d *DoubleWell) Name() string { return "doublewell" }

func (d *DoubleWell) Eval(r []float64) float64 {
	u := radius2(r) - d.B
	return d.A * u * u
}

func (d *DoubleWell) GetParams() map[string]float64 {
	return map[string]float64{"A": d.A, "B": d.B}
}

func (d *DoubleWell) SetParam(n string, v float64) error {
	switch n {
	case "A":
		d.A = v
	case "B":
		d.B = v
	default:
		return unknownParam(d.Name(), n)
	}
	return nil
}
