package solver

import (
	"time"

	"github.com/san-kum/eigensim/internal/eigen"
	"github.com/san-kum/eigensim/internal/grid"
	"github.com/san-kum/eigensim/internal/quantum"
	"gonum.org/v1/gonum/mat"
)

const DefaultMethod = "lanczos"

// Problem describes one eigenvalue request.
type Problem struct {
	Axes []grid.Axis
	// Potential is sampled at every grid point. Ignored when Values is set.
	Potential quantum.Potential
	// Values is a precomputed potential in the grid's flat order.
	Values []float64
	// K is the number of eigenvalues closest to Target.
	K      int
	Target float64
	// Vectors requests eigenvectors, coordinates and the grid in the result.
	Vectors bool
	// Observables measures norm, positions, energy and IPR per state.
	Observables bool
	Method      string
	Options     eigen.Options
	// KineticScale multiplies -∇². Zero means 1.
	KineticScale float64
}

// Spectrum is the result of a solve. Values are ascending.
type Spectrum struct {
	Values []float64
	// Vectors is size×K, column i belonging to Values[i]; nil unless requested.
	Vectors *mat.Dense
	// Coords holds the coordinate array of each axis when vectors are requested.
	Coords [][]float64
	Grid   *grid.Grid
	// Metrics holds observables keyed "<name>[i]".
	Metrics map[string]float64

	Method       string
	Applications int
	Restarts     int
	Elapsed      time.Duration
}

// State returns eigenvector i as a fresh slice, or nil without vectors.
func (s *Spectrum) State(i int) []float64 {
	if s.Vectors == nil {
		return nil
	}
	return mat.Col(nil, i, s.Vectors)
}

// Len returns the number of eigenvalues.
func (s *Spectrum) Len() int { return len(s.Values) }
