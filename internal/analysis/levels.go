package analysis

import (
	"math"
	"slices"
)

// Level is a group of eigenvalues within tolerance of each other.
type Level struct {
	Energy     float64
	Degeneracy int
	// Spread is the distance between the highest and lowest member.
	Spread float64
}

// Levels groups values whose distance to the lowest member of the current
// group is at most tol. Energy is the mean of the group.
func Levels(values []float64, tol float64) []Level {
	if len(values) == 0 {
		return nil
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var out []Level
	first, sum, count := sorted[0], 0.0, 0
	flush := func(last float64) {
		out = append(out, Level{Energy: sum / float64(count), Degeneracy: count, Spread: last - first})
	}
	prev := sorted[0]
	for _, v := range sorted {
		if v-first > tol {
			flush(prev)
			first, sum, count = v, 0, 0
		}
		sum += v
		count++
		prev = v
	}
	flush(prev)
	return out
}

// Comparison holds one computed level next to its exact value.
type Comparison struct {
	Numeric  float64
	Exact    float64
	AbsError float64
	// RelError is AbsError/|Exact|, or AbsError when Exact is zero.
	RelError float64
}

// CompareAnalytic pairs values with exact levels in order. The result is as
// long as the shorter input.
func CompareAnalytic(values, exact []float64) []Comparison {
	n := min(len(values), len(exact))
	out := make([]Comparison, n)
	for i := range out {
		abs := math.Abs(values[i] - exact[i])
		rel := abs
		if exact[i] != 0 {
			rel = abs / math.Abs(exact[i])
		}
		out[i] = Comparison{Numeric: values[i], Exact: exact[i], AbsError: abs, RelError: rel}
	}
	return out
}

// MaxRelError returns the largest relative error in cs.
func MaxRelError(cs []Comparison) float64 {
	worst := 0.0
	for _, c := range cs {
		worst = math.Max(worst, c.RelError)
	}
	return worst
}
