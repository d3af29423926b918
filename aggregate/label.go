// SPDX-License-Identifier: MIT

package aggregate

import (
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/regroup/labeled"
	"github.com/katalvlaran/regroup/relation"
)

// outputLabels names the rows of rel.
//   - Named rows are used as they are.
//   - Unnamed rows on the spatial axis get the centroid position of their
//     sources over order (default: the axis order), as decimal text.
//   - Unnamed rows on any other axis are ErrLabeling.
//
// Duplicates are then made unique with positional suffixes; compound labels
// carry the suffix on component sub (1-based, 0 = last component).
func outputLabels(rel relation.Relation, a labeled.AxisID, sub int, axis labeled.Axis, order []string) ([]labeled.Label, error) {
	var labels []labeled.Label
	switch {
	case rel.Rows != nil:
		labels = append(labels, rel.Rows...)
	case a == labeled.Spatial:
		var err error
		if labels, err = centroidLabels(rel, axis, order); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s axis relation has no target names", ErrLabeling, a)
	}
	return dedupe(labels, sub-1), nil
}

// centroidLabels labels row i with round(Σ r_ij·pos_j / Σ r_ij), pos_j being
// the 1-based position of source j in order.
func centroidLabels(rel relation.Relation, axis labeled.Axis, order []string) ([]labeled.Label, error) {
	if len(order) == 0 {
		order = labeled.Strings(axis.Labels)
	}
	pos := make(map[string]int, len(order))
	for k, r := range order {
		if _, dup := pos[r]; !dup {
			pos[r] = k + 1
		}
	}
	colPos := make([]float64, rel.NCols())
	for j, l := range rel.Cols {
		p, ok := pos[l.String()]
		if !ok {
			return nil, fmt.Errorf("%w: region %q missing from region order", ErrLabeling, l.String())
		}
		colPos[j] = float64(p)
	}

	labels := make([]labeled.Label, rel.NRows())
	for i := range labels {
		row, err := rel.M.Row(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLabeling, err)
		}
		var num, den float64
		for j, p := range colPos {
			v := row[j]
			num += v * p
			den += v
		}
		if den == 0 {
			return nil, fmt.Errorf("%w: unnamed target row %d relates no region", ErrLabeling, i)
		}
		labels[i] = labeled.NewLabel(strconv.Itoa(int(math.Round(num / den))))
	}
	return labels, nil
}

// dedupe makes repeated labels unique with their 1-based position. Plain
// labels gain a ".<position>" component; compound labels keep their depth
// and get "-<position>" appended to component k (the last one when k < 0).
func dedupe(labels []labeled.Label, k int) []labeled.Label {
	count := make(map[string]int, len(labels))
	for _, l := range labels {
		count[l.String()]++
	}
	out := make([]labeled.Label, len(labels))
	for i, l := range labels {
		pos := strconv.Itoa(i + 1)
		switch {
		case count[l.String()] == 1:
			out[i] = l
		case l.IsCompound():
			c := k
			if c < 0 || c >= l.Depth() {
				c = l.Depth() - 1
			}
			out[i] = l.With(c, l.Part(c)+"-"+pos)
		default:
			out[i] = labeled.NewLabel(append(l.Parts(), pos)...)
		}
	}
	return out
}
