package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/eigensim/internal/config"
	"github.com/san-kum/eigensim/internal/quantum"
	"github.com/san-kum/eigensim/internal/solver"
)

// GridSearch tries every combination of parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search returns the parameters whose eigenvalue at index level (ascending
// among the K returned) lies closest to target, and that distance.
// Combinations that fail to solve are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	level int,
	target float64,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("grid search: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}
	if level < 0 {
		return nil, 0, quantum.Invalid("grid search: level %d is negative", level)
	}
	cfg := base.Clone()
	if cfg.K <= level {
		cfg.K = level + 1
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, map[string]float64{}, func(params map[string]float64) error {
		p, err := problemWith(cfg, params)
		if err != nil {
			return nil
		}
		sp, err := solver.Solve(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		}
		dist := math.Abs(sp.Values[level] - target)
		if dist < best {
			best = dist
			bestParams = make(map[string]float64, len(params))
			for k, v := range params {
				bestParams[k] = v
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, errors.New("grid search: no combination could be solved")
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	visit func(map[string]float64) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		return visit(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, visit); err != nil {
			return err
		}
	}
	return nil
}
