// SPDX-License-Identifier: MIT

package aggregate

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/regroup/dimension"
	"github.com/katalvlaran/regroup/labeled"
	"github.com/katalvlaran/regroup/relation"
	"github.com/katalvlaran/regroup/report"
)

// granularity tells whether a weight is given per source or per target label.
type granularity int

const (
	atSource granularity = iota // weighted mean
	atTarget                    // proportional disaggregation
)

func (g granularity) String() string {
	if g == atTarget {
		return "target"
	}
	return "source"
}

// weightMatch is a detected weight axis.
//   - sub: component of the weight's axis whose values are the keys (0 = whole labels).
//   - level: component of the aggregated axis the keys refer to (0 = full labels).
type weightMatch struct {
	sub   int
	role  granularity
	level int
}

// AggregateWeighted aggregates x with weight w.
//
// A weight at source granularity yields the weighted mean of every target:
//
//	y = aggregate(x·w) · 1/(aggregate(w)+ε)
//
// A weight at target granularity distributes every source proportionally:
//
//	y = aggregate(x · 1/(aggregateᵀ(w)+ε)) · w
//
// where aggregateᵀ runs the relation from targets back to sources. The
// unweighted contraction runs exactly twice.
//
// Weight axis: pinned with WithWeightDim or detected on the weight's axis of
// the aggregated family, by comparing its labels (or the values of one of its
// sub-dimensions) with the source and target labels of the relation. When the
// whole axis and one of its sub-dimensions both qualify, the whole axis wins;
// any other ambiguity is an error. The other two weight axes must carry the
// input's labels or have length 1 (broadcast).
//
// Validation: negative entries follow WithNegativeWeights; NaN entries are
// rejected unless WithMixed is set, in which case every lane along the weight
// axis must be entirely NaN (summed instead of weighted) or free of NaN.
//
// Errors: those of Aggregate, plus ErrWeightValidation.
func AggregateWeighted(x *labeled.Array, src relation.Source, w *labeled.Array, opts ...Option) (*labeled.Array, error) {
	if x == nil {
		return nil, fmt.Errorf("%s: input: %w", opWeighted, ErrInputType)
	}
	if w == nil {
		return nil, fmt.Errorf("%s: weight: %w", opWeighted, ErrInputType)
	}
	o := gatherOptions(opts...)
	p, err := newPlan(x, src, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opWeighted, err)
	}
	m, err := detectWeight(w, p, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opWeighted, err)
	}
	o.reporter.Report(report.Debug, "weight axis detected",
		"axis", p.spec.Axis.String(), "component", m.sub, "granularity", m.role.String())

	if err = checkBroadcast(x, w, p.spec.Axis); err != nil {
		return nil, fmt.Errorf("%s: %w", opWeighted, err)
	}
	wa, err := alignWeight(w, p, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opWeighted, err)
	}
	if err = checkWeightValues(wa, p.spec.Axis, o); err != nil {
		return nil, fmt.Errorf("%s: %w", opWeighted, err)
	}
	y, err := weighted(x, wa, p, m.role, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opWeighted, err)
	}
	return y, nil
}

// weighted runs the two contractions; wa is aligned with the plan.
func weighted(x, wa *labeled.Array, p *plan, role granularity, o Options) (*labeled.Array, error) {
	norm := p
	if role == atTarget {
		var err error
		if norm, err = p.transposed(); err != nil {
			return nil, err
		}
	}
	wsum, err := aggregate(wa, norm, o)
	if err != nil {
		return nil, fmt.Errorf("weight sum: %w", err)
	}
	eps := o.eps
	w2 := wsum.Map(func(v float64) float64 { return 1 / (v + eps) })
	raw := wa
	if o.mixed {
		w2 = w2.Map(nanToOne)
		raw = wa.Map(nanToOne)
	}

	pre, post := raw, w2
	if role == atTarget {
		pre, post = w2, raw
	}
	xs, err := x.SelectLabels(p.spec.Axis, p.sources())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMappingResolution, err)
	}
	scaled, err := xs.Mul(pre)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWeightValidation, err)
	}
	num, err := aggregate(scaled, p, o)
	if err != nil {
		return nil, err
	}
	y, err := num.Mul(post)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWeightValidation, err)
	}
	return y, nil
}

func nanToOne(v float64) float64 {
	if math.IsNaN(v) {
		return 1
	}
	return v
}

// weightTarget is one label set a weight axis may match.
type weightTarget struct {
	role  granularity
	level int
	set   map[string]struct{}
}

// weightTargets lists the label sets of the plan: full source and target
// labels, plus their components when a sub-dimension is aggregated.
func (p *plan) weightTargets() []weightTarget {
	ts := []weightTarget{
		{role: atSource, set: stringSet(labeled.Strings(p.rel.Cols))},
		{role: atTarget, set: stringSet(labeled.Strings(p.labels))},
	}
	if p.spec.IsSub() {
		k := p.spec.Sub - 1
		ts = append(ts,
			weightTarget{role: atSource, level: p.spec.Sub, set: stringSet(parts(p.rel.Cols, k))},
			weightTarget{role: atTarget, level: p.spec.Sub, set: stringSet(parts(p.rel.Rows, k))},
		)
	}
	return ts
}

// matches reports whether keys cover t: the same set, or for source labels in
// partial mode, a superset.
func (t weightTarget) matches(keys []string, partial bool) bool {
	have := stringSet(keys)
	for k := range t.set {
		if _, ok := have[k]; !ok {
			return false
		}
	}
	if partial && t.role == atSource {
		return true
	}
	return len(have) == len(t.set)
}

// detectWeight finds the weight axis and its role.
func detectWeight(w *labeled.Array, p *plan, o Options) (weightMatch, error) {
	a := p.spec.Axis
	waxis := w.Axis(a)
	subs := []int{0}
	for s := 1; waxis.Depth() > 1 && s <= waxis.Depth(); s++ {
		subs = append(subs, s)
	}
	if strings.TrimSpace(o.weightDim) != "" {
		ws, err := dimension.Resolve(w, o.weightDim)
		if err != nil {
			return weightMatch{}, fmt.Errorf("%w: %w", ErrWeightValidation, err)
		}
		if ws.Axis != a {
			return weightMatch{}, fmt.Errorf("%w: weight dimension %s is not on the aggregated %s axis", ErrWeightValidation, ws, a)
		}
		subs = []int{ws.Sub}
	}

	targets := p.weightTargets()
	var found []weightMatch
	for _, s := range subs {
		keys, ok := axisKeys(waxis, s)
		if !ok {
			continue
		}
		for _, t := range targets {
			if t.matches(keys, o.partial) {
				found = append(found, weightMatch{sub: s, role: t.role, level: t.level})
			}
		}
	}

	switch len(found) {
	case 0:
		return weightMatch{}, fmt.Errorf("%w: weight labels on the %s axis align with neither the source nor the target labels", ErrWeightValidation, a)
	case 1:
		return found[0], nil
	}
	var whole []weightMatch
	for _, m := range found {
		if m.sub == 0 {
			whole = append(whole, m)
		}
	}
	if len(whole) == 1 {
		return whole[0], nil
	}
	desc := make([]string, len(found))
	for i, m := range found {
		desc[i] = fmt.Sprintf("component %d at %s granularity", m.sub, m.role)
	}
	return weightMatch{}, fmt.Errorf("%w: ambiguous weight axis (%s); use WithWeightDim", ErrWeightValidation, strings.Join(desc, "; "))
}

// axisKeys returns the lookup keys of an axis: its labels (sub == 0) or the
// values of one component, which must then be unique.
func axisKeys(axis labeled.Axis, sub int) ([]string, bool) {
	if sub == 0 {
		return labeled.Strings(axis.Labels), true
	}
	keys := parts(axis.Labels, sub-1)
	if len(stringSet(keys)) != len(keys) {
		return nil, false
	}
	return keys, true
}

// checkBroadcast requires the other two weight axes to carry the input's
// label set or length 1.
func checkBroadcast(x, w *labeled.Array, a labeled.AxisID) error {
	for _, b := range a.Others() {
		if w.Len(b) == 1 {
			continue
		}
		want := stringSet(labeled.Strings(x.Axis(b).Labels))
		got := labeled.Strings(w.Axis(b).Labels)
		if len(got) != len(want) {
			return fmt.Errorf("%w: %s axis has %d labels, input has %d", ErrWeightValidation, b, len(got), len(want))
		}
		for _, l := range got {
			if _, ok := want[l]; !ok {
				return fmt.Errorf("%w: %s label %q not in input", ErrWeightValidation, b, l)
			}
		}
	}
	return nil
}

// alignWeight returns w with its aggregated axis rewritten to the plan's
// source labels (atSource) or output labels (atTarget).
func alignWeight(w *labeled.Array, p *plan, m weightMatch) (*labeled.Array, error) {
	a := p.spec.Axis
	labels, raw := p.rel.Cols, p.rel.Cols
	if m.role == atTarget {
		labels, raw = p.labels, p.rel.Rows
	}
	keys, _ := axisKeys(w.Axis(a), m.sub)
	pos := make(map[string]int, len(keys))
	for i, k := range keys {
		pos[k] = i
	}
	idx := make([]int, len(labels))
	for i, l := range labels {
		key := l.String()
		if m.level > 0 {
			key = raw[i].Part(m.level - 1)
		}
		j, ok := pos[key]
		if !ok {
			return nil, fmt.Errorf("%w: no weight for %q", ErrWeightValidation, key)
		}
		idx[i] = j
	}

	out, err := w.Reshape(a, outputAxis(&plan{axis: p.axis, labels: labels}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWeightValidation, err)
	}
	others := a.Others()
	vals := make([]float64, len(idx))
	for i := 0; i < w.Len(others[0]); i++ {
		for j := 0; j < w.Len(others[1]); j++ {
			lane, err := w.Lane(a, i, j)
			if err != nil {
				return nil, err
			}
			for k, q := range idx {
				vals[k] = lane[q]
			}
			if err = out.SetLane(a, i, j, vals); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// checkWeightValues applies the negative-weight policy and the NaN rules.
func checkWeightValues(wa *labeled.Array, a labeled.AxisID, o Options) error {
	var neg, nan int
	for _, v := range wa.Values() {
		switch {
		case math.IsNaN(v):
			nan++
		case v < 0:
			neg++
		}
	}
	if neg > 0 {
		switch o.negative {
		case Stop:
			return fmt.Errorf("%w: %d negative entries", ErrWeightValidation, neg)
		case Warn:
			o.reporter.Report(report.Warn, "weight has negative entries", "count", neg)
		}
	}
	if nan == 0 {
		return nil
	}
	if !o.mixed {
		return fmt.Errorf("%w: %d missing entries (enable mixed aggregation to sum those slices)", ErrWeightValidation, nan)
	}
	others := a.Others()
	for i := 0; i < wa.Len(others[0]); i++ {
		for j := 0; j < wa.Len(others[1]); j++ {
			lane, err := wa.Lane(a, i, j)
			if err != nil {
				return err
			}
			missing := 0
			for _, v := range lane {
				if math.IsNaN(v) {
					missing++
				}
			}
			if missing > 0 && missing < len(lane) {
				return fmt.Errorf("%w: weight slice (%s %d, %s %d) is partially missing",
					ErrWeightValidation, others[0], i, others[1], j)
			}
		}
	}
	return nil
}

func parts(ls []labeled.Label, k int) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Part(k)
	}
	return out
}

func stringSet(ss []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		set[s] = struct{}{}
	}
	return set
}

