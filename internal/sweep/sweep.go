// Package sweep runs families of solves over potential parameters.
package sweep

import (
	"context"
	"fmt"
	"runtime"

	"github.com/san-kum/eigensim/internal/config"
	"github.com/san-kum/eigensim/internal/logging"
	"github.com/san-kum/eigensim/internal/solver"
	"golang.org/x/sync/errgroup"
)

// Point is one solve of a sweep.
type Point struct {
	Value    float64
	Spectrum *solver.Spectrum
}

// Sweep solves base once per value of param. Solves run concurrently on up
// to workers goroutines (0 means GOMAXPROCS) and come back in input order.
// The first failure cancels the remaining solves.
func Sweep(ctx context.Context, base *config.Config, param string, values []float64, workers int) ([]Point, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	problems := make([]solver.Problem, len(values))
	for i, v := range values {
		p, err := problemWith(base, map[string]float64{param: v})
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", param, v, err)
		}
		problems[i] = p
	}

	points := make([]Point, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range problems {
		i := i
		g.Go(func() error {
			sp, err := solver.Solve(ctx, problems[i])
			if err != nil {
				return fmt.Errorf("%s=%g: %w", param, values[i], err)
			}
			points[i] = Point{Value: values[i], Spectrum: sp}
			logging.Logger().Debug("sweep point", "param", param, "value", values[i], "e0", sp.Values[0])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func problemWith(base *config.Config, params map[string]float64) (solver.Problem, error) {
	cfg := base.Clone()
	if cfg.Params == nil {
		cfg.Params = map[string]float64{}
	}
	for k, v := range params {
		cfg.Params[k] = v
	}
	return cfg.Problem()
}
