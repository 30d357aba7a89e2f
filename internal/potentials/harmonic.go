package potentials

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Harmonic is V = Σ K[d]·r_d². Axes beyond len(K) reuse the last constant.
type Harmonic struct {
	K []float64
}

func NewHarmonic(k ...float64) *Harmonic {
	if len(k) == 0 {
		k = []float64{1}
	}
	return &Harmonic{K: append([]float64(nil), k...)}
}

func (h *Harmonic) Name() string { return "harmonic" }

func (h *Harmonic) k(d int) float64 {
	if d < len(h.K) {
		return h.K[d]
	}
	return h.K[len(h.K)-1]
}

func (h *Harmonic) Eval(r []float64) float64 {
	v := 0.0
	for d, x := range r {
		v += h.k(d) * x * x
	}
	return v
}

// Levels lists Σ (2n_d + 1)·√K[d] in ascending order.
func (h *Harmonic) Levels(n, dims int) []float64 {
	if n <= 0 || dims <= 0 {
		return nil
	}
	var out []float64
	quanta := make([]int, dims)
	var walk func(d int)
	walk = func(d int) {
		if d == dims {
			e := 0.0
			for i, q := range quanta {
				e += float64(2*q+1) * math.Sqrt(h.k(i))
			}
			out = append(out, e)
			return
		}
		for q := 0; q < n; q++ {
			quanta[d] = q
			walk(d + 1)
		}
	}
	walk(0)
	sort.Float64s(out)
	return out[:n]
}

func (h *Harmonic) GetParams() map[string]float64 {
	p := make(map[string]float64, len(h.K))
	for d, k := range h.K {
		p["k"+strconv.Itoa(d)] = k
	}
	return p
}

// SetParam accepts "k" for every axis or "k0", "k1", "k2" for one axis.
func (h *Harmonic) SetParam(name string, value float64) error {
	if name == "k" {
		for d := range h.K {
			h.K[d] = value
		}
		return nil
	}
	d, err := strconv.Atoi(strings.TrimPrefix(name, "k"))
	if !strings.HasPrefix(name, "k") || err != nil || d < 0 || d > 2 {
		return unknownParam(h.Name(), name)
	}
	for len(h.K) <= d {
		h.K = append(h.K, h.K[len(h.K)-1])
	}
	h.K[d] = value
	return nil
}
