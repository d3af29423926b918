// SPDX-License-Identifier: MIT

package aggregate

import (
	"fmt"

	"github.com/katalvlaran/regroup/labeled"
	"github.com/katalvlaran/regroup/matrix"
)

// aggregate is the unweighted contraction: for every slice of the two other
// axes, the lane along the plan's axis is multiplied by the relation matrix.
//
// Implementation:
//   - Stage 1: restrict x to the plan's source labels in relation column
//     order (partial mode drops the excluded labels here).
//   - Stage 2: allocate the output with the aggregated axis relabeled.
//   - Stage 3: one matrix.MatVecPropagate per (other-axis) slice.
//   - Stage 4: append the provenance note and refresh metadata.
//
// Complexity: O(targets × sources × other-axis cells).
func aggregate(x *labeled.Array, p *plan, o Options) (*labeled.Array, error) {
	a := p.spec.Axis
	in, err := x.SelectLabels(a, p.sources())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMappingResolution, err)
	}
	out, err := in.Reshape(a, outputAxis(p))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLabeling, err)
	}

	others := a.Others()
	var lane, y []float64
	for i := 0; i < in.Len(others[0]); i++ {
		for j := 0; j < in.Len(others[1]); j++ {
			if lane, err = in.Lane(a, i, j); err != nil {
				return nil, err
			}
			if y, err = matrix.MatVecPropagate(p.rel.M, lane); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
			}
			if err = out.SetLane(a, i, j, y); err != nil {
				return nil, err
			}
		}
	}

	step := fmt.Sprintf("aggregated %s from %d to %d labels", a, x.Len(a), len(p.labels))
	out.Notes = append(out.Notes, step)
	o.metaCopier(x, out, step)
	return out, nil
}

// outputAxis keeps the input axis name and, when the label depth still
// matches, its sub-dimension names.
func outputAxis(p *plan) labeled.Axis {
	axis := labeled.Axis{Name: p.axis.Name, Labels: append([]labeled.Label(nil), p.labels...)}
	if len(p.axis.SubNames) > 0 && len(p.labels) > 0 && p.labels[0].Depth() == len(p.axis.SubNames) {
		axis.SubNames = append([]string(nil), p.axis.SubNames...)
	}
	return axis
}
