// Package potentials provides model energy landscapes for the solver.
//
// Each model implements [quantum.Potential] and [quantum.Configurable]:
//
//   - [Box]: no potential, the grid walls confine the particle
//   - [Harmonic]: anisotropic oscillator Σ k_d r_d²
//   - [DoubleWell]: bistable A(|r|² - B)²
//   - [FiniteWell]: square well of given depth and width
//   - [SoftCoulomb]: softened attraction -Z/√(|r|² + a²)
//   - [Morse]: anharmonic bond D(1 - e^{-A(|r|-R0)})² - D
//
// Models with closed-form spectra also implement [quantum.Analytic]:
//
//	pot := potentials.NewHarmonic(1, 1, 1)
//	levels := pot.Levels(10, 3) // 3, 5, 5, 5, 7, ...
package potentials
