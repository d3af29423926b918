// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/regroup/matrix"
)

// ExampleMatVecPropagate shows how a missing source value only reaches the
// targets related to it.
func ExampleMatVecPropagate() {
	m, _ := matrix.NewDenseFromRows([][]float64{
		{1, 1, 0},
		{0, 0, 1},
	})
	y, _ := matrix.MatVecPropagate(m, []float64{math.NaN(), 2, 3})
	fmt.Println(y)
	// Output:
	// [NaN 3]
}
