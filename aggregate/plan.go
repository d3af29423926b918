// SPDX-License-Identifier: MIT

package aggregate

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/regroup/dimension"
	"github.com/katalvlaran/regroup/labeled"
	"github.com/katalvlaran/regroup/matrix"
	"github.com/katalvlaran/regroup/relation"
	"github.com/katalvlaran/regroup/report"
)

// plan is a relation resolved against one input: the full-axis relation
// (columns are source labels in axis order) and the labels of the output axis.
type plan struct {
	spec   dimension.Spec // as requested; contraction runs on spec.Axis
	axis   labeled.Axis   // input axis
	rel    relation.Relation
	labels []labeled.Label
}

// newPlan resolves src for x under o, emits the construction diagnostics and
// derives the output labels.
func newPlan(x *labeled.Array, src relation.Source, o Options) (*plan, error) {
	spec, err := resolveSpec(x, o)
	if err != nil {
		return nil, err
	}
	axis := x.Axis(spec.Axis)

	res, err := dimension.ExpandTable(axis, spec.Sub, src, o.buildConfig())
	if err != nil {
		return nil, classify(err)
	}
	if len(res.Ambiguous) > 0 {
		o.reporter.Report(report.Warn, "several mapping columns match the source labels; using the first",
			"used", res.From, "also", res.Ambiguous)
	}
	if len(res.Dropped) > 0 {
		o.reporter.Report(report.Info, "partial relation: labels excluded from aggregation",
			"axis", spec.String(), "count", len(res.Dropped), "labels", labeled.Strings(res.Dropped))
	}
	lost, err := unmapped(res.Relation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMappingResolution, err)
	}
	if len(lost) > 0 {
		o.reporter.Report(report.Warn, "source labels map to no target; their values are not carried over",
			"axis", spec.String(), "labels", lost)
	}
	o.reporter.Report(report.Debug, "relation resolved", "axis", spec.String(),
		"from", res.From, "to", res.To, "transposed", res.Transposed,
		"targets", res.Relation.NRows(), "sources", res.Relation.NCols())

	labels, err := outputLabels(res.Relation, spec.Axis, spec.Sub, axis, o.regionOrder)
	if err != nil {
		return nil, err
	}
	return &plan{spec: spec, axis: axis, rel: res.Relation, labels: labels}, nil
}

// resolveSpec returns the requested axis or sub-dimension for x.
func resolveSpec(x *labeled.Array, o Options) (dimension.Spec, error) {
	if o.spec != nil {
		s, err := dimension.Normalize(x, *o.spec)
		if err != nil {
			return dimension.Spec{}, fmt.Errorf("%w: %w", ErrMappingResolution, err)
		}
		return s, nil
	}
	s, err := dimension.Resolve(x, o.dim)
	if err != nil {
		return dimension.Spec{}, fmt.Errorf("%w: %w", ErrMappingResolution, err)
	}
	return s, nil
}

// classify maps lower-level failures onto this package's taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, dimension.ErrUnnamedTargets):
		return fmt.Errorf("%w: %w", ErrLabeling, err)
	case errors.Is(err, relation.ErrInvalidRelation):
		return fmt.Errorf("%w: %w", ErrMappingResolution, err)
	default:
		return err
	}
}

// transposed returns the plan running the relation backwards: from the
// output labels to the source labels.
func (p *plan) transposed() (*plan, error) {
	t, err := matrix.Transpose(p.rel.M)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWeightValidation, err)
	}
	axis := p.axis.Clone()
	axis.Labels = append([]labeled.Label(nil), p.labels...)
	return &plan{
		spec:   dimension.Whole(p.spec.Axis),
		axis:   axis,
		rel:    relation.Relation{Rows: p.rel.Cols, Cols: p.labels, M: t},
		labels: append([]labeled.Label(nil), p.rel.Cols...),
	}, nil
}

// sources returns the labels the plan consumes, in contraction order.
func (p *plan) sources() []labeled.Label { return p.rel.Cols }

// unmapped returns the source labels whose relation column is all zero.
func unmapped(rel relation.Relation) ([]string, error) {
	sums, err := matrix.ColSums(rel.M)
	if err != nil {
		return nil, err
	}
	var out []string
	for j, v := range sums {
		if v == 0 && rel.Cols != nil {
			out = append(out, rel.Cols[j].String())
		}
	}
	return out, nil
}
