// SPDX-License-Identifier: MIT

package labeled

import "fmt"

// AxisID identifies one of the three orthogonal axes. The numeric values are
// part of the public surface ("1", "2", "3" in dimension specifiers).
type AxisID int

const (
	// Spatial is the region/cell axis.
	Spatial AxisID = 1
	// Temporal is the time axis.
	Temporal AxisID = 2
	// Data is the variable/category axis.
	Data AxisID = 3
)

// AxisIDs lists the axes in storage order.
var AxisIDs = [3]AxisID{Spatial, Temporal, Data}

// Valid reports whether a is one of Spatial, Temporal, Data.
func (a AxisID) Valid() bool { return a >= Spatial && a <= Data }

// String returns "spatial", "temporal" or "data".
func (a AxisID) String() string {
	switch a {
	case Spatial:
		return "spatial"
	case Temporal:
		return "temporal"
	case Data:
		return "data"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Others returns the two axes different from a, in storage order.
func (a AxisID) Others() [2]AxisID {
	switch a {
	case Spatial:
		return [2]AxisID{Temporal, Data}
	case Temporal:
		return [2]AxisID{Spatial, Data}
	default:
		return [2]AxisID{Spatial, Temporal}
	}
}

// Axis is one labeled dimension of an Array.
//   - Name is informational ("region", "year", ...).
//   - SubNames optionally names the components of compound labels; when set,
//     its length must equal the depth of every label.
type Axis struct {
	Name     string
	SubNames []string
	Labels   []Label
}

// NewAxis builds an axis from joined label strings.
func NewAxis(name string, labels ...string) Axis {
	return Axis{Name: name, Labels: Labels(labels...)}
}

// NewCompoundAxis builds an axis whose labels have named components.
func NewCompoundAxis(name string, subNames []string, labels ...string) Axis {
	return Axis{Name: name, SubNames: append([]string(nil), subNames...), Labels: Labels(labels...)}
}

// Len returns the number of labels.
func (a Axis) Len() int { return len(a.Labels) }

// Depth returns the number of components of the axis labels (1 for plain labels).
func (a Axis) Depth() int {
	if len(a.SubNames) > 0 {
		return len(a.SubNames)
	}
	if len(a.Labels) == 0 {
		return 0
	}
	return a.Labels[0].Depth()
}

// Index maps joined labels to positions.
func (a Axis) Index() map[string]int {
	idx := make(map[string]int, len(a.Labels))
	for i, l := range a.Labels {
		idx[l.String()] = i
	}
	return idx
}

// Clone returns a deep copy of the axis.
func (a Axis) Clone() Axis {
	return Axis{
		Name:     a.Name,
		SubNames: append([]string(nil), a.SubNames...),
		Labels:   append([]Label(nil), a.Labels...),
	}
}

// validate checks non-emptiness, uniqueness and SubNames consistency.
func (a Axis) validate(id AxisID) error {
	if len(a.Labels) == 0 {
		return fmt.Errorf("%s axis: %w", id, ErrEmptyAxis)
	}
	seen := make(map[string]struct{}, len(a.Labels))
	for _, l := range a.Labels {
		if _, dup := seen[l.String()]; dup {
			return fmt.Errorf("%s axis: %q: %w", id, l.String(), ErrDuplicateLabel)
		}
		seen[l.String()] = struct{}{}
		if len(a.SubNames) > 0 && l.Depth() != len(a.SubNames) {
			return fmt.Errorf("%s axis: %q has %d components, %d names: %w", id, l.String(), l.Depth(), len(a.SubNames), ErrSubNames)
		}
	}
	return nil
}
