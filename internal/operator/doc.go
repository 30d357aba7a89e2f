// Package operator assembles sparse finite-difference Hamiltonians.
//
// Matrices are built once from an immutable list of (row, col, value)
// entries ([COO]) and converted to compressed rows ([CSR]) for solving.
// Multi-dimensional kinetic operators are Kronecker sums of 1D stencils:
//
//	KronSum(A, B) = A ⊗ I_b + I_a ⊗ B
//
// Folding [KronSumAll] left over the axes makes axis 0 the outermost
// factor, which is exactly the row-major order of package grid.
package operator
