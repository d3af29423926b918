// SPDX-License-Identifier: MIT

package labeled

import (
	"fmt"
	"math"
)

// Meta carries unit and lineage bookkeeping. The engine never interprets it;
// it is refreshed through a MetaCopier.
type Meta struct {
	Unit    string
	Lineage []string
}

// Array is a dense spatial × temporal × data cube.
// Storage is flat with offset ((s*T)+t)*D + d.
type Array struct {
	axes  [3]Axis
	data  []float64
	Notes []string
	Meta  Meta
}

// New allocates a zero-filled array over the given axes.
// Each axis must be non-empty with unique labels.
func New(spatial, temporal, data Axis) (*Array, error) {
	axes := [3]Axis{spatial.Clone(), temporal.Clone(), data.Clone()}
	for k, a := range axes {
		if err := a.validate(AxisIDs[k]); err != nil {
			return nil, err
		}
	}
	n := axes[0].Len() * axes[1].Len() * axes[2].Len()
	return &Array{axes: axes, data: make([]float64, n)}, nil
}

// NewWithValues allocates an array and copies values in storage order
// (data axis fastest, spatial slowest).
func NewWithValues(spatial, temporal, data Axis, values []float64) (*Array, error) {
	x, err := New(spatial, temporal, data)
	if err != nil {
		return nil, err
	}
	if len(values) != len(x.data) {
		return nil, fmt.Errorf("got %d values for %d cells: %w", len(values), len(x.data), ErrValuesLength)
	}
	copy(x.data, values)
	return x, nil
}

// Dims returns the three axis lengths.
func (x *Array) Dims() (s, t, d int) {
	return x.axes[0].Len(), x.axes[1].Len(), x.axes[2].Len()
}

// Size returns the number of cells.
func (x *Array) Size() int { return len(x.data) }

// Axis returns a copy of axis a. It panics on an invalid id, which is a
// programmer error; use AxisID.Valid on external input.
func (x *Array) Axis(a AxisID) Axis {
	if !a.Valid() {
		panic(fmt.Sprintf("labeled: Axis(%d): invalid axis id", int(a)))
	}
	return x.axes[a-1].Clone()
}

// Len returns the length of axis a (0 for an invalid id).
func (x *Array) Len(a AxisID) int {
	if !a.Valid() {
		return 0
	}
	return x.axes[a-1].Len()
}

// offset converts a coordinate triple into a flat offset.
func (x *Array) offset(s, t, d int) int {
	return (s*x.axes[1].Len()+t)*x.axes[2].Len() + d
}

func (x *Array) inRange(s, t, d int) bool {
	return s >= 0 && s < x.axes[0].Len() &&
		t >= 0 && t < x.axes[1].Len() &&
		d >= 0 && d < x.axes[2].Len()
}

// At returns the value at positional coordinates.
func (x *Array) At(s, t, d int) (float64, error) {
	if !x.inRange(s, t, d) {
		return 0, fmt.Errorf("At(%d,%d,%d): %w", s, t, d, ErrOutOfRange)
	}
	return x.data[x.offset(s, t, d)], nil
}

// Set stores v at positional coordinates.
func (x *Array) Set(s, t, d int, v float64) error {
	if !x.inRange(s, t, d) {
		return fmt.Errorf("Set(%d,%d,%d): %w", s, t, d, ErrOutOfRange)
	}
	x.data[x.offset(s, t, d)] = v
	return nil
}

func (x *Array) coords(sl, tl, dl string) (int, int, int, error) {
	want := [3]string{sl, tl, dl}
	var pos [3]int
	for k := range x.axes {
		i, ok := x.axes[k].Index()[want[k]]
		if !ok {
			return 0, 0, 0, fmt.Errorf("%s axis %q: %w", AxisIDs[k], want[k], ErrUnknownLabel)
		}
		pos[k] = i
	}
	return pos[0], pos[1], pos[2], nil
}

// Get returns the value addressed by joined labels.
func (x *Array) Get(sl, tl, dl string) (float64, error) {
	s, t, d, err := x.coords(sl, tl, dl)
	if err != nil {
		return 0, err
	}
	return x.data[x.offset(s, t, d)], nil
}

// SetByLabel stores v at the cell addressed by joined labels.
func (x *Array) SetByLabel(sl, tl, dl string, v float64) error {
	s, t, d, err := x.coords(sl, tl, dl)
	if err != nil {
		return err
	}
	x.data[x.offset(s, t, d)] = v
	return nil
}

// Values returns a copy of the flat storage.
func (x *Array) Values() []float64 {
	return append([]float64(nil), x.data...)
}

// Total sums every cell; NaN and ±Inf propagate.
func (x *Array) Total() float64 {
	var sum float64
	for _, v := range x.data {
		sum += v
	}
	return sum
}

// HasNaN reports whether any cell is NaN.
func (x *Array) HasNaN() bool {
	for _, v := range x.data {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy including notes and metadata.
func (x *Array) Clone() *Array {
	out := &Array{
		data:  append([]float64(nil), x.data...),
		Notes: append([]string(nil), x.Notes...),
		Meta:  Meta{Unit: x.Meta.Unit, Lineage: append([]string(nil), x.Meta.Lineage...)},
	}
	for k := range x.axes {
		out.axes[k] = x.axes[k].Clone()
	}
	return out
}

// AddNote returns a copy of x with note appended to Notes.
func (x *Array) AddNote(note string) *Array {
	out := x.Clone()
	out.Notes = append(out.Notes, note)
	return out
}
