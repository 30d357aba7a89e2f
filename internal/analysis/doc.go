// Package analysis post-processes computed spectra and states.
//
//   - [Levels]: groups eigenvalues into degenerate levels
//   - [CompareAnalytic]: deviations from a closed-form spectrum
//   - [Momentum]: momentum-space density of a 1D state
//   - [Density]: probability density of a state on its grid
//
// # Degeneracy
//
// Discretization splits some exactly degenerate levels slightly, so the
// grouping tolerance should exceed the expected discretization error:
//
//	for _, lvl := range analysis.Levels(sp.Values, 1e-3) {
//	    fmt.Printf("E=%.4f g=%d\n", lvl.Energy, lvl.Degeneracy)
//	}
package analysis
