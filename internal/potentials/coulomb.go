package potentials

import "math"

// SoftCoulomb is -Z/√(|r|² + Soft²). The softening keeps the grid point at
// the origin finite.
type SoftCoulomb struct {
	Z, Soft float64
}

func NewSoftCoulomb() *SoftCoulomb {
	return &SoftCoulomb{Z: 2, Soft: 0.1}
}

func (c *SoftCoulomb) Name() string { return "coulomb" }

func (c *SoftCoulomb) Eval(r []float64) float64 {
	return -c.Z / math.Sqrt(radius2(r)+c.Soft*c.Soft)
}

func (c *SoftCoulomb) GetParams() map[string]float64 {
	return map[string]float64{"Z": c.Z, "soft": c.Soft}
}

func (c *SoftCoulomb) SetParam(n string, v float64) error {
	switch n {
	case "Z":
		c.Z = v
	case "soft":
		c.Soft = v
	default:
		return unknownParam(c.Name(), n)
	}
	return nil
}
