// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Matrix-vector product with explicit special-value containment, used to
//     contract one slice of a labeled array with a relation matrix.
//
// Special-value policy (per source entry x[j]):
//   - x[j] = ±Inf: every non-zero m[i,j] is replaced by x[j] itself and x[j]
//     is read as 1, so row i receives exactly ±Inf (not m[i,j]*Inf). Rows with
//     m[i,j] == 0 receive 0*1 = 0 instead of 0*Inf = NaN.
//   - x[j] = NaN: every non-zero m[i,j] is replaced by NaN and x[j] is read as
//     0, so related rows become NaN and unrelated rows receive a clean 0.
//   - Everything else: ordinary multiply-and-sum.
//
// The ±Inf rule deliberately ignores the magnitude of m[i,j]; it is kept
// literally for relations with weights outside {0,1} as well.

package matrix

import (
	"fmt"
	"math"
)

// effective returns the (relation, source) operand pair used for one product
// term under the special-value policy above.
func effective(mv, xv float64) (float64, float64) {
	switch {
	case math.IsInf(xv, 0):
		if mv != 0 {
			mv = xv
		}
		return mv, 1
	case math.IsNaN(xv):
		if mv != 0 {
			mv = math.NaN()
		}
		return mv, 0
	default:
		return mv, xv
	}
}

// finite reports whether x holds no NaN or ±Inf.
func finite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MatVecPropagate computes y = m * x with the special-value policy documented
// at the top of this file.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols(). x is never modified.
// Fast-path: an all-finite x is delegated to MatVec; otherwise *Dense
// performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVecPropagate(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVecP, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVecP, err)
	}
	if finite(x) {
		return MatVec(m, x)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	var i, j int
	var acc, mv, xv float64
	if d, ok := m.(*Dense); ok {
		var base int
		for i = 0; i < rows; i++ {
			acc = ZeroSum
			base = i * cols
			for j = 0; j < cols; j++ {
				mv, xv = effective(d.data[base+j], x[j])
				acc += mv * xv
			}
			y[i] = acc
		}

		return y, nil
	}

	var err error
	for i = 0; i < rows; i++ {
		acc = ZeroSum
		for j = 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVecP, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			mv, xv = effective(mv, x[j])
			acc += mv * xv
		}
		y[i] = acc
	}

	return y, nil
}
