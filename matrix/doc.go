// Package matrix provides the dense numeric substrate for relation matrices.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and
//     copy-based submatrix extraction (Induced).
//   - Relation-friendly kernels: Transpose, StackRows, RowSums, ColSums and
//     MatVec, plus MatVecPropagate, a matrix-vector product that keeps a
//     single ±Inf or NaN source value from contaminating unrelated rows.
//   - Central validators (ValidateNotNil, ValidateVecLen, ValidateNonNegative).
//
// All kernels allocate a fresh result and never mutate their operands.
// Loops run in fixed i→j order so results are bit-for-bit reproducible.
package matrix
