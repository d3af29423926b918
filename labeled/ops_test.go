// SPDX-License-Identifier: MIT

package labeled_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/regroup/labeled"
)

func TestLaneAndSetLane(t *testing.T) {
	t.Parallel()
	x := fixture(t)

	// Spatial lane at (year 2021, variable b).
	lane, err := x.Lane(labeled.Spatial, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 10}, lane)

	// Data lane at (FR, 2021).
	lane, err = x.Lane(labeled.Data, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4, 5}, lane)

	require.NoError(t, x.SetLane(labeled.Temporal, 1, 2, []float64{-1, -2}))
	v, err := x.Get("DE", "2021", "c")
	require.NoError(t, err)
	assert.Equal(t, -2.0, v)

	assert.ErrorIs(t, x.SetLane(labeled.Temporal, 0, 0, []float64{1}), labeled.ErrValuesLength)
	_, err = x.Lane(labeled.Spatial, 5, 0)
	assert.ErrorIs(t, err, labeled.ErrOutOfRange)
}

func TestSelectLabelsReorders(t *testing.T) {
	t.Parallel()
	x := fixture(t)
	y, err := x.SelectLabels(labeled.Data, labeled.Labels("c", "a"))
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, labeled.Strings(y.Axis(labeled.Data).Labels))
	v, err := y.Get("DE", "2020", "c")
	require.NoError(t, err)
	assert.Equal(t, 8.0, v)

	_, err = x.SelectLabels(labeled.Data, labeled.Labels("z"))
	assert.ErrorIs(t, err, labeled.ErrUnknownLabel)
}

func TestReshapeAndRelabel(t *testing.T) {
	t.Parallel()
	x := fixture(t)
	x.Notes = []string{"n"}
	y, err := x.Reshape(labeled.Spatial, labeled.NewAxis("bloc", "EU"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, y.Total())
	assert.Equal(t, []string{"n"}, y.Notes)
	assert.Equal(t, 1, y.Len(labeled.Spatial))

	r, err := x.Relabel(labeled.Temporal, labeled.Labels("y1", "y2"))
	require.NoError(t, err)
	assert.Equal(t, x.Values(), r.Values())
	assert.Equal(t, []string{"y1", "y2"}, labeled.Strings(r.Axis(labeled.Temporal).Labels))

	_, err = x.Relabel(labeled.Temporal, labeled.Labels("only"))
	assert.ErrorIs(t, err, labeled.ErrAxisMismatch)
}

func TestMulAlignsAndBroadcasts(t *testing.T) {
	t.Parallel()
	x := fixture(t)
	// Regions in reverse order, one year, one variable: broadcast on both.
	w, err := labeled.NewWithValues(
		labeled.NewAxis("region", "DE", "FR"),
		labeled.NewAxis("year", "any"),
		labeled.NewAxis("variable", "w"),
		[]float64{10, 2},
	)
	require.NoError(t, err)

	y, err := x.Mul(w)
	require.NoError(t, err)
	v, err := y.Get("FR", "2021", "c")
	require.NoError(t, err)
	assert.Equal(t, 5.0*2, v)
	v, err = y.Get("DE", "2020", "a")
	require.NoError(t, err)
	assert.Equal(t, 6.0*10, v)

	bad, err := labeled.NewWithValues(
		labeled.NewAxis("region", "DE", "IT"),
		labeled.NewAxis("year", "any"),
		labeled.NewAxis("variable", "w"),
		[]float64{1, 1},
	)
	require.NoError(t, err)
	_, err = x.Mul(bad)
	assert.ErrorIs(t, err, labeled.ErrAxisMismatch)
}

func TestMapLeavesInput(t *testing.T) {
	t.Parallel()
	x := fixture(t)
	y := x.Map(func(v float64) float64 { return v * 2 })
	assert.Equal(t, 132.0, y.Total())
	assert.Equal(t, 66.0, x.Total())
}

func TestCopyMeta(t *testing.T) {
	t.Parallel()
	from := fixture(t)
	from.Meta = labeled.Meta{Unit: "kt", Lineage: []string{"load"}}
	to := fixture(t)
	labeled.CopyMeta(from, to, "step")
	assert.Equal(t, "kt", to.Meta.Unit)
	assert.Equal(t, []string{"load", "step"}, to.Meta.Lineage)
	assert.Equal(t, []string{"load"}, from.Meta.Lineage)
}
