// SPDX-License-Identifier: MIT

package relation

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/regroup/matrix"
)

// Source is the tagged variant of relation specifications:
// Explicit, Table or FileRef.
type Source interface {
	isSource()
}

// Explicit is a ready relation matrix.
type Explicit struct {
	Relation Relation
}

// Table is a mapping table. Header names the columns; every record has
// len(Header) cells.
type Table struct {
	Header  []string
	Records [][]string
}

// FileRef names a mapping stored outside the process. It is turned into a
// Table by a Loader before any numeric work.
type FileRef struct {
	Path string
}

func (Explicit) isSource() {}
func (Table) isSource()    {}
func (FileRef) isSource()  {}

// Loader resolves a FileRef into a Table.
type Loader interface {
	Load(ref FileRef) (Table, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ref FileRef) (Table, error)

// Load implements Loader.
func (f LoaderFunc) Load(ref FileRef) (Table, error) { return f(ref) }

// Resolve replaces a FileRef by the Table its loader returns; other sources
// are returned unchanged.
func Resolve(src Source, loader Loader) (Source, error) {
	switch s := src.(type) {
	case nil:
		return nil, fmt.Errorf("%w: no relation source", ErrMappingResolution)
	case FileRef:
		if loader == nil {
			return nil, fmt.Errorf("%w: no loader for %q", ErrMappingResolution, s.Path)
		}
		t, err := loader.Load(s)
		if err != nil {
			return nil, fmt.Errorf("%w: load %q: %w", ErrMappingResolution, s.Path, err)
		}
		return t, nil
	case Explicit:
		if s.Relation.M == nil {
			return nil, fmt.Errorf("%w: explicit relation without matrix", ErrMappingResolution)
		}
		if err := matrix.ValidateNonNegative(s.Relation.M); err != nil {
			return nil, fmt.Errorf("%w: %w: %w", ErrMappingResolution, ErrInvalidRelation, err)
		}
		return s, nil
	default:
		return src, nil
	}
}

// validate checks the table is rectangular with unique, non-empty column names.
func (t Table) validate() error {
	if len(t.Header) == 0 {
		return fmt.Errorf("%w: mapping has no columns", ErrMappingResolution)
	}
	seen := make(map[string]struct{}, len(t.Header))
	for _, h := range t.Header {
		h = strings.TrimSpace(h)
		if h == "" {
			return fmt.Errorf("%w: mapping has an unnamed column", ErrMappingResolution)
		}
		if _, dup := seen[h]; dup {
			return fmt.Errorf("%w: mapping column %q appears twice", ErrMappingResolution, h)
		}
		seen[h] = struct{}{}
	}
	if len(t.Records) == 0 {
		return fmt.Errorf("%w: mapping has no records", ErrMappingResolution)
	}
	for i, r := range t.Records {
		if len(r) != len(t.Header) {
			return fmt.Errorf("%w: record %d has %d cells, want %d", ErrMappingResolution, i, len(r), len(t.Header))
		}
	}
	return nil
}

// column returns the index of the named column.
func (t Table) column(name string) (int, error) {
	name = strings.TrimSpace(name)
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: mapping has no column %q (have %s)", ErrMappingResolution, name, strings.Join(t.Header, ", "))
}

// distinct returns the distinct values of column c in first-appearance order.
func (t Table) distinct(c int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.Records {
		v := r[c]
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
