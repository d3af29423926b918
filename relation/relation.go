// SPDX-License-Identifier: MIT

package relation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/regroup/labeled"
	"github.com/katalvlaran/regroup/matrix"
)

// Relation is a labeled relation matrix.
//   - Rows: target labels, or nil when the targets are unnamed. Duplicates are
//     tolerated here (composite targets may repeat a label) and resolved when
//     the output axis is labeled.
//   - Cols: source labels, unique, or nil for a positional relation whose
//     columns follow the source axis order.
//   - M: len(Rows)×len(Cols) non-negative entries.
type Relation struct {
	Rows []labeled.Label
	Cols []labeled.Label
	M    *matrix.Dense
}

// New validates and assembles a Relation. rows and cols may be nil.
func New(rows, cols []labeled.Label, m *matrix.Dense) (Relation, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return Relation{}, fmt.Errorf("%w: %w", ErrInvalidRelation, err)
	}
	if rows != nil && len(rows) != m.Rows() {
		return Relation{}, fmt.Errorf("%w: %d row labels for %d rows", ErrInvalidRelation, len(rows), m.Rows())
	}
	if cols != nil && len(cols) != m.Cols() {
		return Relation{}, fmt.Errorf("%w: %d column labels for %d columns", ErrInvalidRelation, len(cols), m.Cols())
	}
	if dup := firstDuplicate(cols); dup != "" {
		return Relation{}, fmt.Errorf("%w: duplicate column %q", ErrInvalidRelation, dup)
	}
	if err := matrix.ValidateNonNegative(m); err != nil {
		return Relation{}, fmt.Errorf("%w: %w", ErrInvalidRelation, err)
	}
	return Relation{
		Rows: cloneLabels(rows),
		Cols: cloneLabels(cols),
		M:    m.Clone().(*matrix.Dense),
	}, nil
}

// FromRows builds a Relation from literal values; rows or cols may be nil.
func FromRows(rows, cols []string, values [][]float64) (Relation, error) {
	m, err := matrix.NewDenseFromRows(values)
	if err != nil {
		return Relation{}, fmt.Errorf("%w: %w", ErrInvalidRelation, err)
	}
	var rl, cl []labeled.Label
	if rows != nil {
		rl = labeled.Labels(rows...)
	}
	if cols != nil {
		cl = labeled.Labels(cols...)
	}
	return New(rl, cl, m)
}

// NRows returns the number of target rows.
func (r Relation) NRows() int { return r.M.Rows() }

// NCols returns the number of source columns.
func (r Relation) NCols() int { return r.M.Cols() }

// Transpose swaps targets and sources.
func (r Relation) Transpose() (Relation, error) {
	t, err := matrix.Transpose(r.M)
	if err != nil {
		return Relation{}, fmt.Errorf("%w: %w", ErrInvalidRelation, err)
	}
	if dup := firstDuplicate(r.Rows); dup != "" {
		return Relation{}, fmt.Errorf("%w: cannot transpose, duplicate row %q", ErrInvalidRelation, dup)
	}
	return Relation{Rows: cloneLabels(r.Cols), Cols: cloneLabels(r.Rows), M: t}, nil
}

// At returns entry (i,j); it panics on out-of-range indices like a slice.
func (r Relation) At(i, j int) float64 {
	v, err := r.M.At(i, j)
	if err != nil {
		panic(err)
	}
	return v
}

// induce restricts the relation to the given row and column positions.
func (r Relation) induce(rowIdx, colIdx []int) (Relation, error) {
	m, err := r.M.Induced(rowIdx, colIdx)
	if err != nil {
		return Relation{}, err
	}
	out := Relation{M: m}
	if r.Rows != nil {
		out.Rows = make([]labeled.Label, len(rowIdx))
		for k, i := range rowIdx {
			out.Rows[k] = r.Rows[i]
		}
	}
	if r.Cols != nil {
		out.Cols = make([]labeled.Label, len(colIdx))
		for k, j := range colIdx {
			out.Cols[k] = r.Cols[j]
		}
	}
	return out, nil
}

// DropZeroRows removes rows whose entries are all zero.
func (r Relation) DropZeroRows() (Relation, error) {
	sums, err := matrix.RowSums(r.M)
	if err != nil {
		return Relation{}, err
	}
	keep := make([]int, 0, len(sums))
	for i, s := range sums {
		if s != 0 {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(sums) {
		return r, nil
	}
	return r.induce(keep, allIndices(r.NCols()))
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func cloneLabels(ls []labeled.Label) []labeled.Label {
	if ls == nil {
		return nil
	}
	return append([]labeled.Label(nil), ls...)
}

func firstDuplicate(ls []labeled.Label) string {
	seen := make(map[string]struct{}, len(ls))
	for _, l := range ls {
		if _, ok := seen[l.String()]; ok {
			return l.String()
		}
		seen[l.String()] = struct{}{}
	}
	return ""
}

// labelSet indexes joined labels.
func labelSet(ls []labeled.Label) map[string]struct{} {
	set := make(map[string]struct{}, len(ls))
	for _, l := range ls {
		set[l.String()] = struct{}{}
	}
	return set
}

// missing returns the labels of want absent from have, sorted.
func missing(want []labeled.Label, have map[string]struct{}) []string {
	var out []string
	for _, l := range want {
		if _, ok := have[l.String()]; !ok {
			out = append(out, l.String())
		}
	}
	sort.Strings(out)
	return out
}

// listLabels renders at most a handful of labels for error messages.
func listLabels(ls []string) string {
	const max = 10
	if len(ls) <= max {
		return strings.Join(ls, ", ")
	}
	return strings.Join(ls[:max], ", ") + fmt.Sprintf(", ... (%d more)", len(ls)-max)
}
