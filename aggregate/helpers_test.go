// SPDX-License-Identifier: MIT

package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/regroup/labeled"
	"github.com/katalvlaran/regroup/relation"
)

const tol = 1e-12

// cube builds a spatial × temporal × data array from plain labels; values
// are in storage order (data fastest).
func cube(t *testing.T, regions, years, vars []string, values ...float64) *labeled.Array {
	t.Helper()
	x, err := labeled.NewWithValues(
		labeled.NewAxis("region", regions...),
		labeled.NewAxis("year", years...),
		labeled.NewAxis("variable", vars...),
		values,
	)
	require.NoError(t, err)
	return x
}

// regional builds a one-year, one-variable array over regions.
func regional(t *testing.T, regions []string, values ...float64) *labeled.Array {
	t.Helper()
	return cube(t, regions, []string{"2020"}, []string{"v"}, values...)
}

// at reads a cell by labels.
func at(t *testing.T, x *labeled.Array, s, tl, d string) float64 {
	t.Helper()
	v, err := x.Get(s, tl, d)
	require.NoError(t, err)
	return v
}

// mapping builds a two-column table from (from, to) pairs.
func mapping(from, to string, pairs ...string) relation.Table {
	tb := relation.Table{Header: []string{from, to}}
	for i := 0; i+1 < len(pairs); i += 2 {
		tb.Records = append(tb.Records, []string{pairs[i], pairs[i+1]})
	}
	return tb
}

// axisLabels returns the joined labels of axis a.
func axisLabels(x *labeled.Array, a labeled.AxisID) []string {
	return labeled.Strings(x.Axis(a).Labels)
}

// attr returns the value following key in slog-style attrs.
func attr(attrs []any, key string) any {
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i] == key {
			return attrs[i+1]
		}
	}
	return nil
}
