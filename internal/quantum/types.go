package quantum

// Potential is an energy landscape sampled one grid point at a time.
// r holds one coordinate per axis, in axis order.
type Potential interface {
	Name() string
	Eval(r []float64) float64
}

// Configurable potentials expose their parameters by name.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Analytic potentials know their exact spectrum. Levels returns the lowest
// n energies (with multiplicity) of the continuum problem in dims dimensions.
type Analytic interface {
	Levels(n, dims int) []float64
}

// PotentialFunc adapts a plain function to the Potential interface.
type PotentialFunc func(r []float64) float64

func (f PotentialFunc) Name() string { return "func" }

func (f PotentialFunc) Eval(r []float64) float64 { return f(r) }
