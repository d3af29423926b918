// SPDX-License-Identifier: MIT

package mapfile

import "errors"

var (
	// ErrUnsupportedFormat indicates a file extension with no reader.
	ErrUnsupportedFormat = errors.New("mapfile: unsupported format")

	// ErrEmpty indicates a file without a header or without records.
	ErrEmpty = errors.New("mapfile: empty mapping")

	// ErrMalformed indicates content that does not form a rectangular table.
	ErrMalformed = errors.New("mapfile: malformed mapping")
)
