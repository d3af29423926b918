// SPDX-License-Identifier: MIT

package aggregate

import (
	"errors"

	"github.com/katalvlaran/regroup/relation"
)

// Sentinel errors, matched with errors.Is. The relation-level sentinels are
// the relation package's own values, so either name matches.
var (
	// ErrInputType indicates a missing input or weight array.
	ErrInputType = errors.New("aggregate: input is not a labeled array")

	// ErrMappingResolution indicates an unreadable mapping, an unmatched or
	// missing source column, or label sets that fail to reconcile.
	ErrMappingResolution = relation.ErrMappingResolution

	// ErrShapeMismatch indicates a relation matrix whose dimensions fit
	// neither orientation of the target axis.
	ErrShapeMismatch = relation.ErrShapeMismatch

	// ErrLabeling indicates that no labels can be derived for the aggregated axis.
	ErrLabeling = errors.New("aggregate: cannot label aggregated axis")

	// ErrWeightValidation indicates an unusable weight array.
	ErrWeightValidation = errors.New("aggregate: invalid weight")

	// ErrPartialRelation indicates an empty overlap in partial mode.
	ErrPartialRelation = relation.ErrPartialRelation
)

// Operation tags used in wrapped errors.
const (
	opAggregate = "Aggregate"
	opWeighted  = "AggregateWeighted"
)
