// Package eigen finds eigenvalues of sparse symmetric operators nearest a
// target energy σ.
//
// Three back ends are registered:
//
//   - "lanczos": shift-invert Lanczos on (H - σI)⁻¹ with full
//     re-orthogonalisation, locking and deflated restarts (default)
//     (H - σI)⁻¹ comes from a banded LU, or from conjugate gradients once
//     the band is wider than Options.BandLimit
//   - "dense": gonum's symmetric eigensolver on the full matrix, for small
//     problems and cross-checks
//   - "bisect": Sturm-sequence bisection for tridiagonal (1D) operators
//
// All methods are deterministic: identical input gives identical output.
//
//	m, _ := eigen.New("lanczos", eigen.DefaultOptions())
//	res, err := m.Solve(ctx, h, 6, 0, true)
package eigen
