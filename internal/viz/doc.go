// Package viz renders spectra and eigenstates in the terminal.
//
//   - [EigenTable]: lipgloss table of eigenvalues, exact levels and observables
//   - [PlotLine]: asciigraph plot of a state along one axis
//   - [DensityMap]: dithered braille image of a 2D density slice
//   - [Browser]: Bubble Tea program stepping through stored states
//
// # Key Bindings
//
//	h/l, ←/→ - previous/next state
//	a        - cycle plot axis
//	d        - toggle density map (2D and 3D grids)
//	s        - square the state (probability) in line plots
//	t        - cycle color themes
//	q        - quit
package viz
