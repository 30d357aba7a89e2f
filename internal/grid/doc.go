// Package grid describes uniform tensor-product grids in one to three
// dimensions and owns the single flattening order used everywhere else.
//
// A point with per-axis indices (i0, i1, i2) lives at flat index
//
//	i0*N1*N2 + i1*N2 + i2
//
// i.e. row-major, axis 0 outermost and the last axis fastest. Potential
// sampling ([Sample]) and the Kronecker-sum operator assembly in package
// operator both derive their ordering from [Grid.Strides], so the two can
// never disagree.
package grid
