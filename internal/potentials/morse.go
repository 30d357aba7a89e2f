package potentials

import "math"

// Morse is D(1 - e^{-A(|r|-R0)})² - D, with its minimum -D at |r| = R0.
type Morse struct {
	D, A, R0 float64
}

func NewMorse() *Morse {
	return &Morse{D: 16, A: 1, R0: 0}
}

func (m *Morse) Name() string { return "morse" }

func (m *Morse) Eval(r []float64) float64 {
	var x float64
	if len(r) == 1 {
		x = r[0]
	} else {
		x = math.Sqrt(radius2(r))
	}
	e := 1 - math.Exp(-m.A*(x-m.R0))
	return m.D*e*e - m.D
}

// Levels returns the 1D bound states -(√D - A(n+½))². Other dimensions
// have no closed form and yield nil.
func (m *Morse) Levels(n, dims int) []float64 {
	if dims != 1 {
		return nil
	}
	var out []float64
	for q := 0; q < n; q++ {
		s := math.Sqrt(m.D) - m.A*(float64(q)+0.5)
		if s <= 0 {
			break
		}
		out = append(out, -s*s)
	}
	return out
}

func (m *Morse) GetParams() map[string]float64 {
	return map[string]float64{"D": m.D, "A": m.A, "R0": m.R0}
}

func (m *Morse) SetParam(n string, v float64) error {
	switch n {
	case "D":
		m.D = v
	case "A":
		m.A = v
	case "R0":
		m.R0 = v
	default:
		return unknownParam(m.Name(), n)
	}
	return nil
}
