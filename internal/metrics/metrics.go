// Package metrics measures observables of discretized eigenstates.
//
// A [Metric] observes one state vector at a time in the grid's flat order.
// States are treated as normalized by their discrete 2-norm, so every
// expectation value is Σ p_i·f(r_i) with p_i = ψ_i²/Σψ².
package metrics

import (
	"fmt"

	"github.com/san-kum/eigensim/internal/grid"
	"github.com/san-kum/eigensim/internal/operator"
	"gonum.org/v1/gonum/floats"
)

type Metric interface {
	Name() string
	Observe(psi []float64)
	Value() float64
	Reset()
}

// Norm is the discrete 2-norm squared, Σψ².
type Norm struct {
	name  string
	value float64
}

func NewNorm() *Norm { return &Norm{name: "norm"} }

func (n *Norm) Name() string          { return n.name }
func (n *Norm) Observe(psi []float64) { n.value = floats.Dot(psi, psi) }
func (n *Norm) Value() float64        { return n.value }
func (n *Norm) Reset()                { n.value = 0 }

// Position is ⟨r_d⟩ along one axis.
type Position struct {
	name  string
	g     *grid.Grid
	axis  int
	power int
	value float64
}

func NewPosition(g *grid.Grid, axis int) *Position {
	return &Position{name: fmt.Sprintf("mean_%s", axisName(axis)), g: g, axis: axis, power: 1}
}

// NewSpread measures ⟨r_d²⟩.
func NewSpread(g *grid.Grid, axis int) *Position {
	return &Position{name: fmt.Sprintf("mean_%s2", axisName(axis)), g: g, axis: axis, power: 2}
}

func (p *Position) Name() string { return p.name }

func (p *Position) Observe(psi []float64) {
	total := floats.Dot(psi, psi)
	if total == 0 {
		p.value = 0
		return
	}
	r := make([]float64, p.g.Dims())
	sum := 0.0
	for i, v := range psi {
		x := p.g.Point(i, r)[p.axis]
		if p.power == 2 {
			x *= x
		}
		sum += v * v * x
	}
	p.value = sum / total
}

func (p *Position) Value() float64 { return p.value }
func (p *Position) Reset()         { p.value = 0 }

// Energy is the Rayleigh quotient ψᵀHψ/ψᵀψ.
type Energy struct {
	name  string
	h     *operator.CSR
	work  []float64
	value float64
}

func NewEnergy(h *operator.CSR) *Energy {
	n, _ := h.Dims()
	return &Energy{name: "energy", h: h, work: make([]float64, n)}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(psi []float64) {
	total := floats.Dot(psi, psi)
	if total == 0 {
		e.value = 0
		return
	}
	e.h.MulVecTo(e.work, psi)
	e.value = floats.Dot(psi, e.work) / total
}

func (e *Energy) Value() float64 { return e.value }
func (e *Energy) Reset()         { e.value = 0 }

// Participation is the inverse participation ratio Σp_i². It is 1 for a
// state on a single grid point and 1/n for a uniform one.
type Participation struct {
	name  string
	value float64
}

func NewParticipation() *Participation { return &Participation{name: "ipr"} }

func (p *Participation) Name() string { return p.name }

func (p *Participation) Observe(psi []float64) {
	total := floats.Dot(psi, psi)
	if total == 0 {
		p.value = 0
		return
	}
	sum := 0.0
	for _, v := range psi {
		q := v * v / total
		sum += q * q
	}
	p.value = sum
}

func (p *Participation) Value() float64 { return p.value }
func (p *Participation) Reset()         { p.value = 0 }

// Standard returns the usual observables for states on g under h.
func Standard(g *grid.Grid, h *operator.CSR) []Metric {
	ms := []Metric{NewNorm(), NewEnergy(h), NewParticipation()}
	for d := 0; d < g.Dims(); d++ {
		ms = append(ms, NewPosition(g, d), NewSpread(g, d))
	}
	return ms
}

// Measure evaluates every metric on psi and stores the results in out
// under "<name>[index]".
func Measure(ms []Metric, psi []float64, index int, out map[string]float64) {
	for _, m := range ms {
		m.Reset()
		m.Observe(psi)
		out[fmt.Sprintf("%s[%d]", m.Name(), index)] = m.Value()
	}
}

func axisName(d int) string {
	if d < 3 {
		return string("xyz"[d])
	}
	return fmt.Sprintf("r%d", d)
}
