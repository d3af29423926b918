// SPDX-License-Identifier: MIT

package relation

import (
	"fmt"

	"github.com/katalvlaran/regroup/labeled"
	"github.com/katalvlaran/regroup/matrix"
)

// Result is an aligned relation plus the diagnostics of its construction.
//   - Relation: columns equal (partial: a subset of) the source axis, in axis order.
//   - Dropped: axis labels outside the relation (partial mode only).
//   - From, To: mapping columns used (Table sources only).
//   - Ambiguous: other mapping columns that qualified as From; the first
//     qualifying column was used.
type Result struct {
	Relation   Relation
	Dropped    []labeled.Label
	Transposed bool
	From, To   string
	Ambiguous  []string
}

// Align orients rel so that its columns are the source axis and reorders
// them to the axis order.
//
// Orientation: columns are tried first, then rows (transpose). Positional
// relations (nil Cols) are oriented by count alone.
//
// Entries must be finite and non-negative (ErrInvalidRelation).
//
// Exact mode rejects any difference between the column set and the axis set.
// Partial mode keeps the overlap, reports the axis labels outside it as
// Dropped, and discards rows left all-zero.
func Align(rel Relation, axis []labeled.Label, partial bool) (Result, error) {
	if rel.M == nil {
		return Result{}, fmt.Errorf("%w: nil matrix", ErrInvalidRelation)
	}
	if err := matrix.ValidateNonNegative(rel.M); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidRelation, err)
	}
	n := len(axis)
	var res Result

	if rel.Cols == nil {
		switch {
		case rel.NCols() == n:
			rel.Cols = cloneLabels(axis)
		case rel.NRows() == n:
			t, err := rel.Transpose()
			if err != nil {
				return Result{}, err
			}
			if t.Cols == nil {
				t.Cols = cloneLabels(axis)
			}
			rel, res.Transposed = t, true
		default:
			return Result{}, fmt.Errorf("%w: %d×%d relation against %d labels", ErrShapeMismatch, rel.NRows(), rel.NCols(), n)
		}
	}

	axisSet := labelSet(axis)
	if partial {
		return alignPartial(rel, axis, axisSet, res)
	}

	switch {
	case sameSet(rel.Cols, axisSet, n):
	case !res.Transposed && rel.Rows != nil && sameSet(rel.Rows, axisSet, n) && firstDuplicate(rel.Rows) == "":
		t, err := rel.Transpose()
		if err != nil {
			return Result{}, err
		}
		rel, res.Transposed = t, true
	default:
		if rel.NCols() != n && rel.NRows() != n {
			return Result{}, fmt.Errorf("%w: %d×%d relation against %d labels", ErrShapeMismatch, rel.NRows(), rel.NCols(), n)
		}
		colSet := labelSet(rel.Cols)
		return Result{}, fmt.Errorf("%w: labels missing in relation [%s], labels missing in data [%s]",
			ErrMappingResolution, listLabels(missing(axis, colSet)), listLabels(missing(rel.Cols, axisSet)))
	}

	colIdx := rel.Cols
	pos := make(map[string]int, len(colIdx))
	for j, l := range colIdx {
		pos[l.String()] = j
	}
	idx := make([]int, n)
	for k, l := range axis {
		idx[k] = pos[l.String()]
	}
	aligned, err := rel.induce(allIndices(rel.NRows()), idx)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidRelation, err)
	}
	res.Relation = aligned
	return res, nil
}

func alignPartial(rel Relation, axis []labeled.Label, axisSet map[string]struct{}, res Result) (Result, error) {
	oc := overlap(rel.Cols, axisSet)
	or := 0
	if !res.Transposed && rel.Rows != nil && firstDuplicate(rel.Rows) == "" {
		or = overlap(rel.Rows, axisSet)
	}
	if oc == 0 && or == 0 {
		return Result{}, fmt.Errorf("%w: relation labels share nothing with %d data labels", ErrPartialRelation, len(axis))
	}
	if or > oc {
		t, err := rel.Transpose()
		if err != nil {
			return Result{}, err
		}
		rel, res.Transposed = t, true
	}

	pos := make(map[string]int, rel.NCols())
	for j, l := range rel.Cols {
		pos[l.String()] = j
	}
	idx := make([]int, 0, len(axis))
	for _, l := range axis {
		if j, ok := pos[l.String()]; ok {
			idx = append(idx, j)
		} else {
			res.Dropped = append(res.Dropped, l)
		}
	}
	restricted, err := rel.induce(allIndices(rel.NRows()), idx)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidRelation, err)
	}
	restricted, err = restricted.DropZeroRows()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidRelation, err)
	}
	if restricted.NRows() == 0 {
		return Result{}, fmt.Errorf("%w: every target row is empty after restriction", ErrPartialRelation)
	}
	res.Relation = restricted
	return res, nil
}

func sameSet(ls []labeled.Label, set map[string]struct{}, n int) bool {
	if len(ls) != n {
		return false
	}
	return overlap(ls, set) == n && firstDuplicate(ls) == ""
}

func overlap(ls []labeled.Label, set map[string]struct{}) int {
	n := 0
	for _, l := range ls {
		if _, ok := set[l.String()]; ok {
			n++
		}
	}
	return n
}
