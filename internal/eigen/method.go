package eigen

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/san-kum/eigensim/internal/operator"
	"github.com/san-kum/eigensim/internal/quantum"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultTol        = 1e-10
	DefaultMaxKrylov  = 300
	DefaultSeed       = 1
	DefaultDenseLimit = 4096
	DefaultBandLimit  = 256
)

// Options tunes the back ends. Zero values fall back to the defaults.
type Options struct {
	Tol         float64 `yaml:"tol" json:"tol"`
	MaxKrylov   int     `yaml:"max_krylov" json:"max_krylov"`
	MaxRestarts int     `yaml:"max_restarts" json:"max_restarts"`
	Seed        int64   `yaml:"seed" json:"seed"`
	DenseLimit  int     `yaml:"dense_limit" json:"dense_limit"`
	// BandLimit is the widest band lanczos factors directly; wider
	// operators are inverted with conjugate gradients.
	BandLimit   int     `yaml:"band_limit" json:"band_limit"`
}

func DefaultOptions() Options {
	return Options{
		Tol:        DefaultTol,
		MaxKrylov:  DefaultMaxKrylov,
		Seed:       DefaultSeed,
		DenseLimit: DefaultDenseLimit,
		BandLimit:  DefaultBandLimit,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Tol <= 0 {
		o.Tol = d.Tol
	}
	if o.MaxKrylov <= 0 {
		o.MaxKrylov = d.MaxKrylov
	}
	if o.Seed == 0 {
		o.Seed = d.Seed
	}
	if o.DenseLimit <= 0 {
		o.DenseLimit = d.DenseLimit
	}
	if o.BandLimit <= 0 {
		o.BandLimit = d.BandLimit
	}
	return o
}

// Result holds the eigenpairs in ascending order of eigenvalue.
type Result struct {
	Values []float64
	// Vectors is n×k with column i belonging to Values[i]; nil unless requested.
	Vectors *mat.Dense
	// Applications counts operator applications (solves for lanczos).
	Applications int
	Restarts     int
}

// Method is an eigensolver back end for symmetric operators.
type Method interface {
	Name() string
	Solve(ctx context.Context, h *operator.CSR, k int, sigma float64, vectors bool) (*Result, error)
}

var registry = map[string]func(Options) Method{
	"lanczos": func(o Options) Method { return &Lanczos{opts: o.withDefaults()} },
	"dense":   func(o Options) Method { return &Dense{opts: o.withDefaults()} },
	"bisect":  func(o Options) Method { return &Bisect{opts: o.withDefaults()} },
}

// New returns the named back end.
func New(name string, opts Options) (Method, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", quantum.ErrUnknownMethod, name)
	}
	return fn(opts), nil
}

// Methods lists the registered back ends.
func Methods() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkRequest(h *operator.CSR, k int) (int, error) {
	r, c := h.Dims()
	if r != c {
		return 0, fmt.Errorf("%w: operator is %dx%d", quantum.ErrDimensionMismatch, r, c)
	}
	if k < 1 || k > r {
		return 0, quantum.Invalid("requested %d eigenvalues from a %dx%d operator", k, r, r)
	}
	return r, nil
}

// pair is one eigenpair candidate.
type pair struct {
	value  float64
	vector []float64
}

// nearest keeps the k pairs closest to sigma and returns them sorted by value.
// Ties in distance go to the lower eigenvalue.
func nearest(ps []pair, k int, sigma float64) []pair {
	out := slices.Clone(ps)
	slices.SortStableFunc(out, func(a, b pair) int {
		da, db := math.Abs(a.value-sigma), math.Abs(b.value-sigma)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return cmpFloat(a.value, b.value)
	})
	if len(out) > k {
		out = out[:k]
	}
	slices.SortStableFunc(out, func(a, b pair) int { return cmpFloat(a.value, b.value) })
	return out
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func assemble(ps []pair, n int, vectors bool) *Result {
	res := &Result{Values: make([]float64, len(ps))}
	for i, p := range ps {
		res.Values[i] = p.value
	}
	if vectors {
		res.Vectors = mat.NewDense(n, len(ps), nil)
		for i, p := range ps {
			fixSign(p.vector)
			res.Vectors.SetCol(i, p.vector)
		}
	}
	return res
}

// fixSign makes the largest-magnitude component positive.
func fixSign(v []float64) {
	best := 0
	for i := range v {
		if math.Abs(v[i]) > math.Abs(v[best])+1e-12 {
			best = i
		}
	}
	if v[best] < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}
}
