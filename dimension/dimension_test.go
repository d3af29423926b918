// SPDX-License-Identifier: MIT

package dimension_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/regroup/dimension"
	"github.com/katalvlaran/regroup/labeled"
	"github.com/katalvlaran/regroup/relation"
)

func compoundArray(t *testing.T, data labeled.Axis) *labeled.Array {
	t.Helper()
	x, err := labeled.New(labeled.NewAxis("region", "r1", "r2"), labeled.NewAxis("year", "2020"), data)
	require.NoError(t, err)
	return x
}

func TestParse(t *testing.T) {
	t.Parallel()
	cases := map[string]dimension.Spec{
		"1":         dimension.Whole(labeled.Spatial),
		"temporal":  dimension.Whole(labeled.Temporal),
		" Data ":    dimension.Whole(labeled.Data),
		"3.2":       {Axis: labeled.Data, Sub: 2},
		"spatial.1": {Axis: labeled.Spatial, Sub: 1},
	}
	for in, want := range cases {
		got, err := dimension.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "4", "3.0", "3.x", "product"} {
		_, err := dimension.Parse(bad)
		assert.ErrorIs(t, err, dimension.ErrInvalidSpec, bad)
	}
	assert.Equal(t, "3.2", dimension.Spec{Axis: labeled.Data, Sub: 2}.String())
	assert.Equal(t, "1", dimension.Whole(labeled.Spatial).String())
}

func TestResolveAndNormalize(t *testing.T) {
	t.Parallel()
	x := compoundArray(t, labeled.NewCompoundAxis("product", []string{"sector", "kind"}, "a.x", "a.y", "b.x"))

	got, err := dimension.Resolve(x, "kind")
	require.NoError(t, err)
	assert.Equal(t, dimension.Spec{Axis: labeled.Data, Sub: 2}, got)
	assert.True(t, got.IsSub())

	got, err = dimension.Resolve(x, "region")
	require.NoError(t, err)
	assert.Equal(t, dimension.Whole(labeled.Spatial), got)

	// A sub-dimension of a plain axis collapses to the whole axis.
	got, err = dimension.Resolve(x, "1.1")
	require.NoError(t, err)
	assert.Equal(t, dimension.Whole(labeled.Spatial), got)

	_, err = dimension.Resolve(x, "3.3")
	assert.ErrorIs(t, err, dimension.ErrInvalidSpec)
	_, err = dimension.Resolve(x, "nothing")
	assert.ErrorIs(t, err, dimension.ErrInvalidSpec)
}

func TestSubLabels(t *testing.T) {
	t.Parallel()
	axis := labeled.NewAxis("product", "a.x", "a.y", "b.x", "b.y")
	assert.Equal(t, []string{"a", "b"}, labeled.Strings(dimension.SubLabels(axis, 1)))
	assert.Equal(t, []string{"x", "y"}, labeled.Strings(dimension.SubLabels(axis, 2)))
	assert.Len(t, dimension.SubLabels(axis, 0), 4)
}

func TestExpandBlockDiagonal(t *testing.T) {
	t.Parallel()
	axis := labeled.NewAxis("product", "a.x", "a.y", "b.x", "b.y")
	rel, err := relation.FromRows([]string{"z"}, []string{"x", "y"}, [][]float64{{1, 1}})
	require.NoError(t, err)

	res, err := dimension.Expand(axis, 2, rel, false)
	require.NoError(t, err)
	r := res.Relation
	assert.Equal(t, []string{"a.z", "b.z"}, labeled.Strings(r.Rows))
	assert.Equal(t, []string{"a.x", "a.y", "b.x", "b.y"}, labeled.Strings(r.Cols))
	for j, want := range []float64{1, 1, 0, 0} {
		assert.Equal(t, want, r.At(0, j))
	}
	for j, want := range []float64{0, 0, 1, 1} {
		assert.Equal(t, want, r.At(1, j))
	}
	assert.Empty(t, res.Dropped)
}

func TestExpandTransposedAndFirstComponent(t *testing.T) {
	t.Parallel()
	axis := labeled.NewAxis("product", "a.x", "a.y", "b.x", "b.y")
	// Sources on the rows: Align transposes.
	rel, err := relation.FromRows([]string{"a", "b"}, []string{"ab"}, [][]float64{{1}, {1}})
	require.NoError(t, err)

	res, err := dimension.Expand(axis, 1, rel, false)
	require.NoError(t, err)
	assert.True(t, res.Transposed)
	assert.Equal(t, []string{"ab.x", "ab.y"}, labeled.Strings(res.Relation.Rows))
	assert.Equal(t, 1.0, res.Relation.At(0, 0))
	assert.Equal(t, 1.0, res.Relation.At(0, 2))
	assert.Equal(t, 0.0, res.Relation.At(0, 1))
}

func TestExpandIncompleteGrid(t *testing.T) {
	t.Parallel()
	axis := labeled.NewAxis("product", "a.x", "a.y", "b.x")
	rel, err := relation.FromRows([]string{"p", "q"}, []string{"x", "y"}, [][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)

	res, err := dimension.Expand(axis, 2, rel, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.p", "a.q", "b.p"}, labeled.Strings(res.Relation.Rows))
}

func TestExpandPartial(t *testing.T) {
	t.Parallel()
	axis := labeled.NewAxis("product", "a.x", "a.y", "a.w")
	rel, err := relation.FromRows([]string{"z"}, []string{"x", "y", "v"}, [][]float64{{1, 1, 1}})
	require.NoError(t, err)

	_, err = dimension.Expand(axis, 2, rel, false)
	require.ErrorIs(t, err, relation.ErrMappingResolution)

	res, err := dimension.Expand(axis, 2, rel, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.w"}, labeled.Strings(res.Dropped))
	assert.Equal(t, []string{"a.x", "a.y"}, labeled.Strings(res.Relation.Cols))
}

func TestExpandUnnamedTargets(t *testing.T) {
	t.Parallel()
	axis := labeled.NewAxis("product", "a.x", "a.y")
	rel, err := relation.FromRows(nil, []string{"x", "y"}, [][]float64{{1, 1}})
	require.NoError(t, err)
	_, err = dimension.Expand(axis, 2, rel, false)
	assert.ErrorIs(t, err, dimension.ErrUnnamedTargets)
}

func TestExpandTableExplicitMatchesExpand(t *testing.T) {
	t.Parallel()
	axis := labeled.NewAxis("product", "a.x", "a.y", "b.x", "b.y")
	rel, err := relation.FromRows([]string{"x", "y"}, []string{"z"}, [][]float64{{1}, {1}})
	require.NoError(t, err)

	want, err := dimension.Expand(axis, 2, rel, false)
	require.NoError(t, err)
	got, err := dimension.ExpandTable(axis, 2, relation.Explicit{Relation: rel}, relation.BuildConfig{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.Transposed)

	whole, err := relation.FromRows([]string{"all"}, nil, [][]float64{{1, 1, 1, 1}})
	require.NoError(t, err)
	res, err := dimension.ExpandTable(axis, 0, relation.Explicit{Relation: whole}, relation.BuildConfig{})
	require.NoError(t, err)
	assert.Equal(t, labeled.Strings(axis.Labels), labeled.Strings(res.Relation.Cols))

	_, err = dimension.ExpandTable(axis, 3, relation.Explicit{Relation: rel}, relation.BuildConfig{})
	assert.ErrorIs(t, err, dimension.ErrInvalidSpec)
}

func TestExpandTable(t *testing.T) {
	t.Parallel()
	axis := labeled.NewAxis("product", "a.x", "a.y", "b.x", "b.y")
	table := relation.Table{
		Header:  []string{"kind", "group"},
		Records: [][]string{{"x", "g"}, {"y", "g"}},
	}
	res, err := dimension.ExpandTable(axis, 2, table, relation.BuildConfig{})
	require.NoError(t, err)
	assert.Equal(t, "kind", res.From)
	assert.Equal(t, "group", res.To)
	assert.Equal(t, []string{"a.g", "b.g"}, labeled.Strings(res.Relation.Rows))
}
