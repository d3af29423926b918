// SPDX-License-Identifier: MIT

package relation

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/regroup/labeled"
	"github.com/katalvlaran/regroup/matrix"
)

// TargetSeparator joins several target columns into one composite target.
const TargetSeparator = "+"

// BuildConfig selects mapping columns and the reconciliation mode.
//   - From: source column; "" auto-detects it from the source labels.
//   - To: target column, or "A+B" for stacked targets; "" picks the column
//     next to From (the previous one when From is last, From itself when it
//     is the only column).
//   - Partial: keep only the overlap of mapping and source labels.
//   - Loader: resolves FileRef sources.
type BuildConfig struct {
	From    string
	To      string
	Partial bool
	Loader  Loader
}

// Build resolves src and returns a relation whose columns follow source.
func Build(src Source, source []labeled.Label, cfg BuildConfig) (Result, error) {
	if len(source) == 0 {
		return Result{}, fmt.Errorf("%w: empty source axis", ErrMappingResolution)
	}
	resolved, err := Resolve(src, cfg.Loader)
	if err != nil {
		return Result{}, err
	}
	switch s := resolved.(type) {
	case Explicit:
		return Align(s.Relation, source, cfg.Partial)
	case Table:
		return fromTable(s, source, cfg)
	default:
		return Result{}, fmt.Errorf("%w: unsupported source %T", ErrMappingResolution, resolved)
	}
}

func fromTable(t Table, source []labeled.Label, cfg BuildConfig) (Result, error) {
	if err := t.validate(); err != nil {
		return Result{}, err
	}
	sourceSet := labelSet(source)

	var res Result
	from := -1
	if strings.TrimSpace(cfg.From) != "" {
		c, err := t.column(cfg.From)
		if err != nil {
			return Result{}, err
		}
		from = c
	} else {
		c, others, err := detectFrom(t, sourceSet, cfg.Partial)
		if err != nil {
			return Result{}, err
		}
		from, res.Ambiguous = c, others
	}
	res.From = t.Header[from]

	targets, err := targetColumns(t, from, cfg.To)
	if err != nil {
		return Result{}, err
	}
	names := make([]string, len(targets))
	for i, c := range targets {
		names[i] = t.Header[c]
	}
	res.To = strings.Join(names, TargetSeparator)

	// Reconcile source labels with the mapping's from-column.
	fromVals := labeled.Labels(t.distinct(from)...)
	fromSet := labelSet(fromVals)
	kept := make([]labeled.Label, 0, len(source))
	for _, l := range source {
		if _, ok := fromSet[l.String()]; ok {
			kept = append(kept, l)
		} else {
			res.Dropped = append(res.Dropped, l)
		}
	}
	if cfg.Partial {
		if len(kept) == 0 {
			return Result{}, fmt.Errorf("%w: column %q shares nothing with %d data labels", ErrPartialRelation, res.From, len(source))
		}
	} else if len(res.Dropped) > 0 || len(fromVals) != len(source) {
		return Result{}, fmt.Errorf("%w: column %q: labels missing in mapping [%s], labels missing in data [%s]",
			ErrMappingResolution, res.From, listLabels(missing(source, fromSet)), listLabels(missing(fromVals, sourceSet)))
	}

	parts := make([]Relation, 0, len(targets))
	for _, c := range targets {
		part, err := tableRelation(t, from, c, kept)
		if err != nil {
			return Result{}, err
		}
		parts = append(parts, part)
	}
	rel, err := stack(parts)
	if err != nil {
		return Result{}, err
	}
	if cfg.Partial {
		if rel, err = rel.DropZeroRows(); err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrInvalidRelation, err)
		}
		if rel.NRows() == 0 {
			return Result{}, fmt.Errorf("%w: every target row is empty after restriction", ErrPartialRelation)
		}
	}
	res.Relation = rel
	return res, nil
}

// detectFrom picks the first column whose distinct values equal the source
// labels (partial: contain them; failing that, the first column with the
// largest non-empty overlap). The other qualifying columns are returned too.
func detectFrom(t Table, sourceSet map[string]struct{}, partial bool) (int, []string, error) {
	var qualified []int
	bestOverlap, best := 0, -1
	for c := range t.Header {
		vals := labeled.Labels(t.distinct(c)...)
		ov := overlap(vals, sourceSet)
		switch {
		case !partial && ov == len(sourceSet) && len(vals) == len(sourceSet):
			qualified = append(qualified, c)
		case partial && ov == len(sourceSet):
			qualified = append(qualified, c)
		}
		if ov > bestOverlap {
			bestOverlap, best = ov, c
		}
	}
	if len(qualified) == 0 && partial && best >= 0 {
		qualified = []int{best}
	}
	if len(qualified) == 0 {
		return -1, nil, fmt.Errorf("%w: no mapping column matches the %d data labels", ErrMappingResolution, len(sourceSet))
	}
	others := make([]string, 0, len(qualified)-1)
	for _, c := range qualified[1:] {
		others = append(others, t.Header[c])
	}
	return qualified[0], others, nil
}

// targetColumns resolves the To specifier into column indices.
func targetColumns(t Table, from int, to string) ([]int, error) {
	if strings.TrimSpace(to) == "" {
		switch {
		case len(t.Header) == 1:
			return []int{from}, nil
		case from == len(t.Header)-1:
			return []int{from - 1}, nil
		default:
			return []int{from + 1}, nil
		}
	}
	var cols []int
	for _, name := range strings.Split(to, TargetSeparator) {
		c, err := t.column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// tableRelation builds the 0/1 relation between the from and to columns,
// restricted to the kept source labels (columns, in source order). Target
// rows appear in first-appearance order.
func tableRelation(t Table, from, to int, kept []labeled.Label) (Relation, error) {
	colPos := make(map[string]int, len(kept))
	for j, l := range kept {
		colPos[l.String()] = j
	}
	rowPos := make(map[string]int)
	var rows []labeled.Label
	type cell struct{ i, j int }
	var ones []cell
	for _, rec := range t.Records {
		j, ok := colPos[rec[from]]
		if !ok {
			continue
		}
		i, seen := rowPos[rec[to]]
		if !seen {
			i = len(rows)
			rowPos[rec[to]] = i
			rows = append(rows, labeled.ParseLabel(rec[to]))
		}
		ones = append(ones, cell{i, j})
	}
	if len(rows) == 0 {
		return Relation{}, fmt.Errorf("%w: column %q maps none of the data labels", ErrMappingResolution, t.Header[to])
	}
	m, err := matrix.NewDense(len(rows), len(kept))
	if err != nil {
		return Relation{}, fmt.Errorf("%w: %w", ErrInvalidRelation, err)
	}
	for _, c := range ones {
		_ = m.Set(c.i, c.j, 1) // indices come from the maps above
	}
	return Relation{Rows: rows, Cols: cloneLabels(kept), M: m}, nil
}

// stack concatenates relations sharing the same columns.
func stack(parts []Relation) (Relation, error) {
	if len(parts) == 1 {
		return parts[0], nil
	}
	ms := make([]matrix.Matrix, len(parts))
	var rows []labeled.Label
	for i, p := range parts {
		ms[i] = p.M
		rows = append(rows, p.Rows...)
	}
	m, err := matrix.StackRows(ms...)
	if err != nil {
		return Relation{}, fmt.Errorf("%w: %w", ErrInvalidRelation, err)
	}
	return Relation{Rows: rows, Cols: cloneLabels(parts[0].Cols), M: m}, nil
}
