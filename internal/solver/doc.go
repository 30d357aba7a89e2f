// Package solver computes the low-lying spectrum of -∇² + V on a grid.
//
// [Solve] discretizes each axis with the three-point stencil, combines the
// axes with a Kronecker sum, adds the potential sampled in the grid's flat
// order and hands the sparse Hamiltonian to a shift-invert eigensolver:
//
//	sp, err := solver.Solve(ctx, solver.Problem{
//		Axes:      []grid.Axis{{Min: -10, Max: 10, Count: 500}},
//		Potential: potentials.NewHarmonic(1),
//		K:         4,
//	})
//
// Units are chosen so that ħ²/2m = 1; for V = x² the levels are 1, 3, 5, ...
//
// Solve keeps no state between calls and is safe for concurrent use as long
// as the Potential is.
package solver
