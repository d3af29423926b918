// SPDX-License-Identifier: MIT

package relation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/regroup/labeled"
	"github.com/katalvlaran/regroup/matrix"
	"github.com/katalvlaran/regroup/relation"
)

// countries maps four countries onto blocs and macro regions.
var countries = relation.Table{
	Header: []string{"iso", "bloc", "macro"},
	Records: [][]string{
		{"FR", "West", "EU"},
		{"DE", "West", "EU"},
		{"PL", "East", "EU"},
		{"CZ", "East", "EU"},
	},
}

func TestBuildAutoColumns(t *testing.T) {
	t.Parallel()
	res, err := relation.Build(countries, labeled.Labels("DE", "FR", "CZ", "PL"), relation.BuildConfig{})
	require.NoError(t, err)
	assert.Equal(t, "iso", res.From)
	assert.Equal(t, "bloc", res.To)
	assert.Empty(t, res.Ambiguous)

	r := res.Relation
	assert.Equal(t, []string{"West", "East"}, labeled.Strings(r.Rows))
	assert.Equal(t, []string{"DE", "FR", "CZ", "PL"}, labeled.Strings(r.Cols))
	assert.Equal(t, []float64{1, 1, 0, 0}, row(t, r, 0))
	assert.Equal(t, []float64{0, 0, 1, 1}, row(t, r, 1))
}

func TestBuildToDefaults(t *testing.T) {
	t.Parallel()
	// From is the last column: To is the previous one.
	res, err := relation.Build(countries, labeled.Labels("EU"), relation.BuildConfig{})
	require.NoError(t, err)
	assert.Equal(t, "macro", res.From)
	assert.Equal(t, "bloc", res.To)
	assert.Equal(t, []string{"West", "East"}, labeled.Strings(res.Relation.Rows))

	// Single column: identity on itself.
	single := relation.Table{Header: []string{"iso"}, Records: [][]string{{"FR"}, {"DE"}}}
	res, err = relation.Build(single, labeled.Labels("FR", "DE"), relation.BuildConfig{})
	require.NoError(t, err)
	assert.Equal(t, "iso", res.To)
	assert.Equal(t, []string{"FR", "DE"}, labeled.Strings(res.Relation.Rows))
}

func TestBuildExplicitColumnsAndComposite(t *testing.T) {
	t.Parallel()
	source := labeled.Labels("FR", "DE", "PL", "CZ")
	res, err := relation.Build(countries, source, relation.BuildConfig{From: "iso", To: "bloc+macro"})
	require.NoError(t, err)
	assert.Equal(t, "bloc+macro", res.To)
	assert.Equal(t, []string{"West", "East", "EU"}, labeled.Strings(res.Relation.Rows))
	assert.Equal(t, []float64{1, 1, 1, 1}, row(t, res.Relation, 2))

	_, err = relation.Build(countries, source, relation.BuildConfig{From: "iso", To: "bloc+nope"})
	assert.ErrorIs(t, err, relation.ErrMappingResolution)
	_, err = relation.Build(countries, source, relation.BuildConfig{From: "code"})
	assert.ErrorIs(t, err, relation.ErrMappingResolution)
}

func TestBuildAmbiguousFrom(t *testing.T) {
	t.Parallel()
	table := relation.Table{
		Header:  []string{"a", "b", "c"},
		Records: [][]string{{"x", "y", "T"}, {"y", "x", "T"}},
	}
	res, err := relation.Build(table, labeled.Labels("x", "y"), relation.BuildConfig{})
	require.NoError(t, err)
	assert.Equal(t, "a", res.From)
	assert.Equal(t, []string{"b"}, res.Ambiguous)
}

func TestBuildExactModeMismatch(t *testing.T) {
	t.Parallel()
	_, err := relation.Build(countries, labeled.Labels("FR", "DE", "IT"), relation.BuildConfig{})
	require.ErrorIs(t, err, relation.ErrMappingResolution)

	_, err = relation.Build(countries, labeled.Labels("FR", "DE", "IT"), relation.BuildConfig{From: "iso"})
	require.ErrorIs(t, err, relation.ErrMappingResolution)
	assert.Contains(t, err.Error(), "IT")
}

func TestBuildPartial(t *testing.T) {
	t.Parallel()
	source := labeled.Labels("FR", "DE", "IT", "ES")
	res, err := relation.Build(countries, source, relation.BuildConfig{Partial: true})
	require.NoError(t, err)
	assert.Equal(t, "iso", res.From)
	assert.Equal(t, []string{"IT", "ES"}, labeled.Strings(res.Dropped))
	assert.Equal(t, []string{"FR", "DE"}, labeled.Strings(res.Relation.Cols))
	assert.Equal(t, []string{"West"}, labeled.Strings(res.Relation.Rows), "East has no source left")

	_, err = relation.Build(countries, labeled.Labels("US"), relation.BuildConfig{Partial: true, From: "iso"})
	assert.ErrorIs(t, err, relation.ErrPartialRelation)
}

func TestBuildExplicitSource(t *testing.T) {
	t.Parallel()
	r, err := relation.FromRows([]string{"T"}, []string{"a", "b"}, [][]float64{{1, 2}})
	require.NoError(t, err)
	res, err := relation.Build(relation.Explicit{Relation: r}, labeled.Labels("b", "a"), relation.BuildConfig{})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1}, row(t, res.Relation, 0))

	_, err = relation.Build(relation.Explicit{}, labeled.Labels("a"), relation.BuildConfig{})
	assert.ErrorIs(t, err, relation.ErrMappingResolution)
}

func TestBuildRejectsNegativeLiteralRelation(t *testing.T) {
	t.Parallel()
	m, err := matrix.NewDenseFromRows([][]float64{{1, -1}})
	require.NoError(t, err)
	// A literal bypasses New, so the entries are checked again on use.
	r := relation.Relation{Rows: labeled.Labels("T"), Cols: labeled.Labels("a", "b"), M: m}

	_, err = relation.Build(relation.Explicit{Relation: r}, labeled.Labels("a", "b"), relation.BuildConfig{})
	require.ErrorIs(t, err, relation.ErrMappingResolution)
	assert.ErrorIs(t, err, relation.ErrInvalidRelation)
	assert.ErrorIs(t, err, matrix.ErrNegativeEntry)

	_, err = relation.Align(r, labeled.Labels("a", "b"), false)
	assert.ErrorIs(t, err, relation.ErrInvalidRelation)
}

func TestResolveFileRef(t *testing.T) {
	t.Parallel()
	calls := 0
	loader := relation.LoaderFunc(func(ref relation.FileRef) (relation.Table, error) {
		calls++
		if ref.Path == "missing.csv" {
			return relation.Table{}, errors.New("no such file")
		}
		return countries, nil
	})

	src, err := relation.Resolve(relation.FileRef{Path: "countries.csv"}, loader)
	require.NoError(t, err)
	assert.IsType(t, relation.Table{}, src)

	_, err = relation.Resolve(relation.FileRef{Path: "missing.csv"}, loader)
	assert.ErrorIs(t, err, relation.ErrMappingResolution)
	assert.Equal(t, 2, calls)

	_, err = relation.Resolve(relation.FileRef{Path: "x"}, nil)
	assert.ErrorIs(t, err, relation.ErrMappingResolution)
	_, err = relation.Resolve(nil, loader)
	assert.ErrorIs(t, err, relation.ErrMappingResolution)
}

func TestTableValidation(t *testing.T) {
	t.Parallel()
	source := labeled.Labels("a")
	cases := map[string]relation.Table{
		"no columns":   {},
		"blank column": {Header: []string{"a", " "}, Records: [][]string{{"a", "b"}}},
		"dup column":   {Header: []string{"a", "a"}, Records: [][]string{{"a", "b"}}},
		"no records":   {Header: []string{"a", "b"}},
		"ragged":       {Header: []string{"a", "b"}, Records: [][]string{{"a"}}},
	}
	for name, tb := range cases {
		_, err := relation.Build(tb, source, relation.BuildConfig{})
		assert.ErrorIs(t, err, relation.ErrMappingResolution, name)
	}
}

func row(t *testing.T, r relation.Relation, i int) []float64 {
	t.Helper()
	out := make([]float64, r.NCols())
	for j := range out {
		out[j] = r.At(i, j)
	}
	return out
}
