// SPDX-License-Identifier: MIT

// Package dimension normalizes axis specifiers and expands relations defined
// on one sub-dimension of a compound axis into full-axis relations.
package dimension

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/regroup/labeled"
)

var (
	// ErrInvalidSpec indicates an unparseable or out-of-range specifier.
	ErrInvalidSpec = errors.New("dimension: invalid dimension specifier")

	// ErrUnnamedTargets indicates a sub-dimension relation without target
	// labels; the full-axis labels cannot be rebuilt without them.
	ErrUnnamedTargets = errors.New("dimension: sub-dimension relation has no target labels")
)

// Spec addresses a whole axis (Sub == 0) or one component of its compound
// labels (Sub is 1-based).
type Spec struct {
	Axis labeled.AxisID
	Sub  int
}

// Whole addresses axis a as a whole.
func Whole(a labeled.AxisID) Spec { return Spec{Axis: a} }

// IsSub reports whether s addresses a sub-dimension.
func (s Spec) IsSub() bool { return s.Sub > 0 }

// String renders "3" or "3.2".
func (s Spec) String() string {
	if s.Sub > 0 {
		return fmt.Sprintf("%d.%d", int(s.Axis), s.Sub)
	}
	return strconv.Itoa(int(s.Axis))
}

// Parse reads "1", "2", "3", "3.2", "spatial", "temporal", "data" or
// "data.2". Names of sub-dimensions need an array; see Resolve.
func Parse(s string) (Spec, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	head, tail, hasSub := strings.Cut(s, ".")
	var a labeled.AxisID
	switch head {
	case "1", "spatial":
		a = labeled.Spatial
	case "2", "temporal":
		a = labeled.Temporal
	case "3", "data":
		a = labeled.Data
	default:
		return Spec{}, fmt.Errorf("%q: %w", s, ErrInvalidSpec)
	}
	if !hasSub {
		return Whole(a), nil
	}
	sub, err := strconv.Atoi(tail)
	if err != nil || sub < 1 {
		return Spec{}, fmt.Errorf("%q: bad sub-dimension: %w", s, ErrInvalidSpec)
	}
	return Spec{Axis: a, Sub: sub}, nil
}

// Resolve parses s against x: besides the forms accepted by Parse it accepts
// axis names and sub-dimension names declared on x's axes. The result is
// normalized with Normalize.
func Resolve(x *labeled.Array, s string) (Spec, error) {
	if spec, err := Parse(s); err == nil {
		return Normalize(x, spec)
	}
	name := strings.TrimSpace(s)
	var found []Spec
	for _, a := range labeled.AxisIDs {
		axis := x.Axis(a)
		if axis.Name != "" && axis.Name == name {
			found = append(found, Whole(a))
		}
		for k, sn := range axis.SubNames {
			if sn == name {
				found = append(found, Spec{Axis: a, Sub: k + 1})
			}
		}
	}
	switch len(found) {
	case 0:
		return Spec{}, fmt.Errorf("%q: no axis or sub-dimension of that name: %w", s, ErrInvalidSpec)
	case 1:
		return Normalize(x, found[0])
	default:
		return Spec{}, fmt.Errorf("%q: name is ambiguous (%d matches): %w", s, len(found), ErrInvalidSpec)
	}
}

// Normalize validates s against x and collapses a sub-dimension of a
// single-component axis into the whole axis.
func Normalize(x *labeled.Array, s Spec) (Spec, error) {
	if !s.Axis.Valid() {
		return Spec{}, fmt.Errorf("axis %d: %w", int(s.Axis), ErrInvalidSpec)
	}
	if s.Sub == 0 {
		return s, nil
	}
	depth := x.Axis(s.Axis).Depth()
	if s.Sub < 0 || s.Sub > depth {
		return Spec{}, fmt.Errorf("%s: axis has %d components: %w", s, depth, ErrInvalidSpec)
	}
	if depth == 1 {
		return Whole(s.Axis), nil
	}
	return s, nil
}

// SubLabels returns the distinct values of component sub (1-based) over the
// axis labels, in first-appearance order. sub == 0 returns the labels.
func SubLabels(axis labeled.Axis, sub int) []labeled.Label {
	if sub == 0 {
		return append([]labeled.Label(nil), axis.Labels...)
	}
	seen := make(map[string]struct{})
	var out []labeled.Label
	for _, l := range axis.Labels {
		p := l.Part(sub - 1)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, labeled.NewLabel(p))
	}
	return out
}
