// Package quantum provides core types for stationary Schrödinger problems.
//
// The package defines the vocabulary shared by the grid, the operator
// assembly, the solver and the named potentials:
//
//   - [Potential]: energy landscape evaluated at a single grid point
//   - [Configurable]: runtime parameter access for named potentials
//   - [Analytic]: closed-form energy levels when they are known
//   - [SolveError]: failure context carried up to the caller
//
// Units follow ħ²/2m = 1, so the Hamiltonian is -∇² + V.
//
// # Example
//
//	pot := potentials.NewHarmonic(1)
//	sp, err := solver.Solve(ctx, solver.Problem{
//	    Axes:      []grid.Axis{{Min: -10, Max: 10, Count: 500}},
//	    Potential: pot,
//	    K:         4,
//	})
package quantum
