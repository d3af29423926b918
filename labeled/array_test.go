// SPDX-License-Identifier: MIT

package labeled_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/regroup/labeled"
)

// fixture is a 2 regions × 2 years × 3 variables cube holding 0..11.
func fixture(t *testing.T) *labeled.Array {
	t.Helper()
	values := make([]float64, 12)
	for i := range values {
		values[i] = float64(i)
	}
	x, err := labeled.NewWithValues(
		labeled.NewAxis("region", "FR", "DE"),
		labeled.NewAxis("year", "2020", "2021"),
		labeled.NewAxis("variable", "a", "b", "c"),
		values,
	)
	require.NoError(t, err)
	return x
}

func TestArrayStorageOrder(t *testing.T) {
	t.Parallel()
	x := fixture(t)
	s, tt, d := x.Dims()
	assert.Equal(t, [3]int{2, 2, 3}, [3]int{s, tt, d})
	assert.Equal(t, 12, x.Size())

	v, err := x.At(1, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 8.0, v) // ((1*2)+0)*3 + 2

	v, err = x.Get("DE", "2021", "a")
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)

	_, err = x.At(2, 0, 0)
	assert.ErrorIs(t, err, labeled.ErrOutOfRange)
	_, err = x.Get("IT", "2020", "a")
	assert.ErrorIs(t, err, labeled.ErrUnknownLabel)
}

func TestArrayValuesLength(t *testing.T) {
	t.Parallel()
	_, err := labeled.NewWithValues(labeled.NewAxis("r", "a"), labeled.NewAxis("t", "1"), labeled.NewAxis("d", "v"), []float64{1, 2})
	assert.ErrorIs(t, err, labeled.ErrValuesLength)
}

func TestArraySetAndClone(t *testing.T) {
	t.Parallel()
	x := fixture(t)
	x.Notes = []string{"n"}
	x.Meta.Lineage = []string{"load"}
	c := x.Clone()
	require.NoError(t, c.SetByLabel("FR", "2020", "a", 100))
	c.Notes[0] = "changed"
	c.Meta.Lineage[0] = "changed"

	v, err := x.Get("FR", "2020", "a")
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
	assert.Equal(t, []string{"n"}, x.Notes)
	assert.Equal(t, []string{"load"}, x.Meta.Lineage)

	noted := x.AddNote("second")
	assert.Equal(t, []string{"n", "second"}, noted.Notes)
	assert.Equal(t, []string{"n"}, x.Notes)
}

func TestArrayTotalsAndNaN(t *testing.T) {
	t.Parallel()
	x := fixture(t)
	assert.Equal(t, 66.0, x.Total())
	assert.False(t, x.HasNaN())
	require.NoError(t, x.Set(0, 0, 0, math.NaN()))
	assert.True(t, x.HasNaN())
}

func TestAxisPanicsOnInvalidID(t *testing.T) {
	t.Parallel()
	x := fixture(t)
	assert.Panics(t, func() { x.Axis(labeled.AxisID(4)) })
	assert.Equal(t, 0, x.Len(labeled.AxisID(4)))
}
