// SPDX-License-Identifier: MIT

package aggregate

import (
	"fmt"

	"github.com/katalvlaran/regroup/labeled"
	"github.com/katalvlaran/regroup/relation"
)

// Aggregate contracts the selected axis of x through the relation described
// by src and returns a new array; x is not modified.
//
// Implementation:
//   - Stage 1: resolve the axis (WithDim / WithSpec) and build the relation
//     (mapping columns, orientation, partial mode, sub-dimension expansion).
//   - Stage 2: derive the output labels.
//   - Stage 3: contract every slice of the other two axes.
//
// Errors: ErrInputType, ErrMappingResolution, ErrShapeMismatch, ErrLabeling,
// ErrPartialRelation.
//
// Complexity: O(targets × sources × other-axis cells).
func Aggregate(x *labeled.Array, src relation.Source, opts ...Option) (*labeled.Array, error) {
	if x == nil {
		return nil, fmt.Errorf("%s: %w", opAggregate, ErrInputType)
	}
	o := gatherOptions(opts...)
	p, err := newPlan(x, src, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opAggregate, err)
	}
	y, err := aggregate(x, p, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opAggregate, err)
	}
	return y, nil
}

// Apply aggregates x without weighting when w is nil and with w otherwise.
func Apply(x *labeled.Array, src relation.Source, w *labeled.Array, opts ...Option) (*labeled.Array, error) {
	if w == nil {
		return Aggregate(x, src, opts...)
	}
	return AggregateWeighted(x, src, w, opts...)
}
