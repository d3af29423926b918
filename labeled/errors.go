// SPDX-License-Identifier: MIT

package labeled

import "errors"

// Sentinel errors for array construction and access. Messages are prefixed
// with "labeled: "; callers match with errors.Is.
var (
	// ErrEmptyAxis indicates an axis without labels.
	ErrEmptyAxis = errors.New("labeled: axis has no labels")

	// ErrDuplicateLabel indicates a label occurring twice on one axis.
	ErrDuplicateLabel = errors.New("labeled: duplicate label")

	// ErrUnknownAxis indicates an axis id outside {1,2,3}.
	ErrUnknownAxis = errors.New("labeled: unknown axis")

	// ErrUnknownLabel indicates a label lookup that found nothing.
	ErrUnknownLabel = errors.New("labeled: unknown label")

	// ErrOutOfRange indicates a positional index outside an axis.
	ErrOutOfRange = errors.New("labeled: index out of range")

	// ErrValuesLength indicates a value slice that does not match the cube size.
	ErrValuesLength = errors.New("labeled: values length mismatch")

	// ErrAxisMismatch indicates operands whose axes can neither be aligned
	// nor broadcast.
	ErrAxisMismatch = errors.New("labeled: axes do not align")

	// ErrSubNames indicates sub-dimension names inconsistent with label depth.
	ErrSubNames = errors.New("labeled: sub-dimension names do not match label depth")
)
