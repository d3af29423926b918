// SPDX-License-Identifier: MIT

package relation

import "errors"

var (
	// ErrMappingResolution covers unreadable or missing mapping sources, a
	// missing or unmatched source column, and label sets that fail to
	// reconcile outside partial mode.
	ErrMappingResolution = errors.New("relation: mapping cannot be resolved")

	// ErrShapeMismatch indicates relation dimensions that fit neither
	// orientation of the target axis.
	ErrShapeMismatch = errors.New("relation: shape fits neither orientation")

	// ErrPartialRelation indicates an empty overlap between relation and
	// axis labels in partial mode.
	ErrPartialRelation = errors.New("relation: no overlap between relation and labels")

	// ErrInvalidRelation indicates a malformed relation value (nil matrix,
	// label counts that disagree with the matrix, duplicate columns,
	// negative entries).
	ErrInvalidRelation = errors.New("relation: invalid relation matrix")
)
