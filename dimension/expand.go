// SPDX-License-Identifier: MIT

package dimension

import (
	"fmt"

	"github.com/katalvlaran/regroup/labeled"
	"github.com/katalvlaran/regroup/matrix"
	"github.com/katalvlaran/regroup/relation"
)

// Expand lifts rel, defined on component sub (1-based) of the compound axis
// labels, into a relation over the full axis.
//
// The axis labels are grouped by context, i.e. every component but sub, in
// first-appearance order. Each context receives a copy of rel: one output row
// per (context, target) whose label is the context's first axis label with
// component sub replaced by the target. The columns are the axis labels in
// axis order. Orientation and reconciliation of rel against the distinct
// sub-labels follow relation.Align; in partial mode Dropped lists the full
// axis labels whose component is outside rel.
//
// Rows of a context that reach none of its labels (incomplete label grids)
// are omitted unless the target row of rel is itself empty.
//
// sub == 0 is the plain relation.Align against the axis labels.
func Expand(axis labeled.Axis, sub int, rel relation.Relation, partial bool) (relation.Result, error) {
	if sub == 0 {
		return relation.Align(rel, axis.Labels, partial)
	}
	if sub < 0 || sub > axis.Depth() {
		return relation.Result{}, fmt.Errorf("sub-dimension %d of %d: %w", sub, axis.Depth(), ErrInvalidSpec)
	}
	res, err := relation.Align(rel, SubLabels(axis, sub), partial)
	if err != nil {
		return relation.Result{}, err
	}
	return lift(axis, sub-1, res, partial)
}

// lift replicates the aligned sub-level relation res across the contexts of
// component k.
func lift(axis labeled.Axis, k int, res relation.Result, partial bool) (relation.Result, error) {
	r := res.Relation
	if r.Rows == nil {
		return relation.Result{}, ErrUnnamedTargets
	}
	nr := r.NRows()

	compIdx := make(map[string]int, r.NCols())
	for j, l := range r.Cols {
		compIdx[l.String()] = j
	}

	// Contexts in first-appearance order, each with a representative label.
	ctxIdx := make(map[string]int)
	var reps []labeled.Label
	var cols []labeled.Label
	var colCtx, colComp []int
	var dropped []labeled.Label
	for _, l := range axis.Labels {
		q, ok := compIdx[l.Part(k)]
		if !ok {
			dropped = append(dropped, l)
			continue
		}
		key := l.Without(k).String()
		c, seen := ctxIdx[key]
		if !seen {
			c = len(reps)
			ctxIdx[key] = c
			reps = append(reps, l)
		}
		cols = append(cols, l)
		colCtx = append(colCtx, c)
		colComp = append(colComp, q)
	}

	rowSums, err := matrix.RowSums(r.M)
	if err != nil {
		return relation.Result{}, fmt.Errorf("%w: %w", relation.ErrInvalidRelation, err)
	}
	values := make([][]float64, 0, len(reps)*nr)
	var rows []labeled.Label
	for c, rep := range reps {
		for i := 0; i < nr; i++ {
			row := make([]float64, len(cols))
			var sum float64
			for j := range cols {
				if colCtx[j] != c {
					continue
				}
				row[j] = r.At(i, colComp[j])
				sum += row[j]
			}
			if sum == 0 && rowSums[i] != 0 {
				continue
			}
			values = append(values, row)
			rows = append(rows, rep.With(k, r.Rows[i].String()))
		}
	}
	if len(values) == 0 {
		return relation.Result{}, fmt.Errorf("%w: expanded relation is empty", relation.ErrPartialRelation)
	}
	m, err := matrix.NewDenseFromRows(values)
	if err != nil {
		return relation.Result{}, fmt.Errorf("%w: %w", relation.ErrInvalidRelation, err)
	}

	out := relation.Result{
		Relation:   relation.Relation{Rows: rows, Cols: cols, M: m},
		Dropped:    dropped,
		Transposed: res.Transposed,
		From:       res.From,
		To:         res.To,
		Ambiguous:  res.Ambiguous,
	}
	if partial {
		if out.Relation, err = out.Relation.DropZeroRows(); err != nil {
			return relation.Result{}, fmt.Errorf("%w: %w", relation.ErrInvalidRelation, err)
		}
	}
	return out, nil
}

// ExpandTable builds the relation described by src on component sub of axis
// and lifts it to the full axis. FileRef sources are loaded first; explicit
// relations go through Expand, tables are matched against the distinct
// sub-labels.
func ExpandTable(axis labeled.Axis, sub int, src relation.Source, cfg relation.BuildConfig) (relation.Result, error) {
	if sub < 0 || sub > axis.Depth() {
		return relation.Result{}, fmt.Errorf("sub-dimension %d of %d: %w", sub, axis.Depth(), ErrInvalidSpec)
	}
	resolved, err := relation.Resolve(src, cfg.Loader)
	if err != nil {
		return relation.Result{}, err
	}
	if e, ok := resolved.(relation.Explicit); ok {
		return Expand(axis, sub, e.Relation, cfg.Partial)
	}
	if sub == 0 {
		return relation.Build(resolved, axis.Labels, cfg)
	}
	built, err := relation.Build(resolved, SubLabels(axis, sub), cfg)
	if err != nil {
		return relation.Result{}, err
	}
	return lift(axis, sub-1, built, cfg.Partial)
}
