// SPDX-License-Identifier: MIT
// Package matrix provides the small set of operations relation matrices need:
// transpose, matrix-vector products, vertical stacking and row/column sums.
// All functions perform strict fail-fast validation and return clear errors
// on dimension mismatches.
//
// Notes:
//   - All kernels use the central validators and wrap sentinels via matrixErrorf.
//   - Fast-paths operate directly on *Dense flat buffers; a generic At/Set
//     fallback keeps any Matrix implementation usable.

package matrix

import (
	"fmt"
)

// ZeroSum is the initial accumulator value for dot-products and sums.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opMatVecP   = "MatVecPropagate"
	opStackRows = "StackRows"
	opRowSums   = "RowSums"
	opColSums   = "ColSums"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Transpose returns a new matrix t with t[j,i] = m[i,j].
//
// Implementation:
//   - Stage 1: ValidateNotNil(m); allocate c×r result (zero-area allowed).
//   - Stage 2: Dense fast-path over flat buffers; otherwise At/Set fallback.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := newDenseZeroOK(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	// Fast-path: read row-major, write column-major.
	if d, ok := m.(*Dense); ok {
		var i, j int
		for i = 0; i < rows; i++ {
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = d.data[i*cols+j]
			}
		}
		return res, nil
	}

	// Fallback: interface loop.
	var i, j int
	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
//
// Notes:
//   - Ordinary IEEE arithmetic: 0*Inf yields NaN. Use MatVecPropagate when x
//     may carry missing or infinite values.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	// Validate m is not nil.
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	// Validate x is not nil and match with number of columns
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows) // allocate exactly rows outputs

	// Fast-path: *Dense allows flat, row-major dot-products.
	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ { // iterate rows deterministically
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j] // accumulate a(i,j)*x(j)
			}
			y[i] = acc
		}

		return y, nil
	}

	// Fallback: interface-based dot-products via At.
	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		y[i] = ZeroSum
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// StackRows concatenates matrices vertically: the rows of parts[0], then the
// rows of parts[1], and so on.
//
// Implementation:
//   - Stage 1: validate non-empty input, non-nil parts and equal column counts.
//   - Stage 2: copy each part's rows into the result in order.
//
// Errors:
//   - ErrNilMatrix if parts is empty or contains nil.
//   - ErrDimensionMismatch when column counts differ.
//
// Complexity:
//   - Time O(Σr*c), Space O(Σr*c).
func StackRows(parts ...Matrix) (*Dense, error) {
	if len(parts) == 0 {
		return nil, matrixErrorf(opStackRows, ErrNilMatrix)
	}
	cols, total := -1, 0
	for k, p := range parts {
		if err := ValidateNotNil(p); err != nil {
			return nil, matrixErrorf(opStackRows, fmt.Errorf("part %d: %w", k, err))
		}
		if cols >= 0 && p.Cols() != cols {
			return nil, matrixErrorf(opStackRows, fmt.Errorf("part %d has %d cols, want %d: %w", k, p.Cols(), cols, ErrDimensionMismatch))
		}
		cols = p.Cols()
		total += p.Rows()
	}
	res, err := newDenseZeroOK(total, cols)
	if err != nil {
		return nil, matrixErrorf(opStackRows, err)
	}

	offset := 0
	for _, p := range parts {
		if d, ok := p.(*Dense); ok {
			copy(res.data[offset*cols:], d.data) // whole block in one copy
		} else {
			for i := 0; i < p.Rows(); i++ {
				for j := 0; j < cols; j++ {
					v, e := p.At(i, j)
					if e != nil {
						return nil, matrixErrorf(opStackRows, e)
					}
					res.data[(offset+i)*cols+j] = v
				}
			}
		}
		offset += p.Rows()
	}

	return res, nil
}

// RowSums returns s[i] = Σ_j m[i,j].
// Complexity: Time O(r*c), Space O(r).
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opRowSums, err)
	}
	out := make([]float64, m.Rows())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opRowSums, err)
			}
			out[i] += v
		}
	}

	return out, nil
}

// ColSums returns s[j] = Σ_i m[i,j].
// Complexity: Time O(r*c), Space O(c).
func ColSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opColSums, err)
	}
	out := make([]float64, m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opColSums, err)
			}
			out[j] += v
		}
	}

	return out, nil
}
