// SPDX-License-Identifier: MIT

package labeled

import (
	"fmt"
	"strings"
)

// Reshape returns a zero-filled array in which axis a is replaced by axis;
// the other two axes, notes and metadata are copied from x.
func (x *Array) Reshape(a AxisID, axis Axis) (*Array, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("Reshape(%d): %w", int(a), ErrUnknownAxis)
	}
	axes := x.axes
	axes[a-1] = axis
	out, err := New(axes[0], axes[1], axes[2])
	if err != nil {
		return nil, err
	}
	out.Notes = append([]string(nil), x.Notes...)
	out.Meta = Meta{Unit: x.Meta.Unit, Lineage: append([]string(nil), x.Meta.Lineage...)}
	return out, nil
}

// lanePos returns the flat offsets of the lane along axis a at positions
// (i, j) of the two other axes (in storage order).
func (x *Array) lanePos(a AxisID, i, j int) ([]int, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("lane(%d): %w", int(a), ErrUnknownAxis)
	}
	o := a.Others()
	if i < 0 || i >= x.Len(o[0]) || j < 0 || j >= x.Len(o[1]) {
		return nil, fmt.Errorf("lane %s (%d,%d): %w", a, i, j, ErrOutOfRange)
	}
	n := x.Len(a)
	pos := make([]int, n)
	var c [3]int
	c[o[0]-1], c[o[1]-1] = i, j
	for k := 0; k < n; k++ {
		c[a-1] = k
		pos[k] = x.offset(c[0], c[1], c[2])
	}
	return pos, nil
}

// Lane returns a copy of the values along axis a for positions (i, j) of the
// two other axes, taken in storage order (see AxisID.Others).
func (x *Array) Lane(a AxisID, i, j int) ([]float64, error) {
	pos, err := x.lanePos(a, i, j)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(pos))
	for k, p := range pos {
		out[k] = x.data[p]
	}
	return out, nil
}

// SetLane overwrites the lane addressed like Lane. It mutates x and is meant
// for arrays under construction.
func (x *Array) SetLane(a AxisID, i, j int, vals []float64) error {
	pos, err := x.lanePos(a, i, j)
	if err != nil {
		return err
	}
	if len(vals) != len(pos) {
		return fmt.Errorf("SetLane %s: %d values for %d cells: %w", a, len(vals), len(pos), ErrValuesLength)
	}
	for k, p := range pos {
		x.data[p] = vals[k]
	}
	return nil
}

// Select returns the sub-array made of positions idx along axis a, in the
// given order.
func (x *Array) Select(a AxisID, idx []int) (*Array, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("Select(%d): %w", int(a), ErrUnknownAxis)
	}
	src := x.axes[a-1]
	axis := Axis{Name: src.Name, SubNames: append([]string(nil), src.SubNames...), Labels: make([]Label, len(idx))}
	for k, i := range idx {
		if i < 0 || i >= src.Len() {
			return nil, fmt.Errorf("Select %s index %d: %w", a, i, ErrOutOfRange)
		}
		axis.Labels[k] = src.Labels[i]
	}
	out, err := x.Reshape(a, axis)
	if err != nil {
		return nil, err
	}
	o := a.Others()
	for i := 0; i < x.Len(o[0]); i++ {
		for j := 0; j < x.Len(o[1]); j++ {
			lane, _ := x.Lane(a, i, j)
			picked := make([]float64, len(idx))
			for k, p := range idx {
				picked[k] = lane[p]
			}
			if err := out.SetLane(a, i, j, picked); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// SelectLabels is Select addressed by joined labels.
func (x *Array) SelectLabels(a AxisID, labels []Label) (*Array, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("SelectLabels(%d): %w", int(a), ErrUnknownAxis)
	}
	index := x.axes[a-1].Index()
	idx := make([]int, len(labels))
	for k, l := range labels {
		i, ok := index[l.String()]
		if !ok {
			return nil, fmt.Errorf("SelectLabels %s %q: %w", a, l.String(), ErrUnknownLabel)
		}
		idx[k] = i
	}
	return x.Select(a, idx)
}

// Relabel returns a copy of x whose axis a carries labels (same length).
func (x *Array) Relabel(a AxisID, labels []Label) (*Array, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("Relabel(%d): %w", int(a), ErrUnknownAxis)
	}
	if len(labels) != x.Len(a) {
		return nil, fmt.Errorf("Relabel %s: %d labels for length %d: %w", a, len(labels), x.Len(a), ErrAxisMismatch)
	}
	axis := x.axes[a-1].Clone()
	axis.Labels = append([]Label(nil), labels...)
	if len(labels) > 0 && axis.Depth() != labels[0].Depth() {
		axis.SubNames = nil
	}
	if err := axis.validate(a); err != nil {
		return nil, err
	}
	out := x.Clone()
	out.axes[a-1] = axis
	return out, nil
}

// Map returns a copy of x with f applied to every cell.
func (x *Array) Map(f func(v float64) float64) *Array {
	out := x.Clone()
	for i, v := range out.data {
		out.data[i] = f(v)
	}
	return out
}

// alignTo returns, for every position of axis a in x, the matching position in
// y along the same axis: the identity when the labels coincide, a permutation
// when they are the same set in another order, all zeros when y has length 1
// (broadcast).
func alignTo(x, y *Array, a AxisID) ([]int, error) {
	xa, ya := x.axes[a-1], y.axes[a-1]
	out := make([]int, xa.Len())
	if ya.Len() == 1 && xa.Len() != 1 {
		return out, nil
	}
	if ya.Len() != xa.Len() {
		return nil, fmt.Errorf("%s axis: length %d vs %d: %w", a, xa.Len(), ya.Len(), ErrAxisMismatch)
	}
	yi := ya.Index()
	for k, l := range xa.Labels {
		p, ok := yi[l.String()]
		if !ok {
			if xa.Len() == 1 {
				out[k] = 0 // singleton axes broadcast regardless of label
				continue
			}
			return nil, fmt.Errorf("%s axis: %q missing on right operand: %w", a, l.String(), ErrAxisMismatch)
		}
		out[k] = p
	}
	return out, nil
}

// Mul multiplies x by y cell-wise. For each axis y must carry the same label
// set as x (any order) or have length 1, in which case it is broadcast. The
// result has x's axes.
func (x *Array) Mul(y *Array) (*Array, error) {
	var perm [3][]int
	for k, a := range AxisIDs {
		p, err := alignTo(x, y, a)
		if err != nil {
			return nil, fmt.Errorf("Mul: %w", err)
		}
		perm[k] = p
	}
	out := x.Clone()
	s, t, d := x.Dims()
	for i := 0; i < s; i++ {
		for j := 0; j < t; j++ {
			for k := 0; k < d; k++ {
				out.data[x.offset(i, j, k)] *= y.data[y.offset(perm[0][i], perm[1][j], perm[2][k])]
			}
		}
	}
	return out, nil
}

// String renders the array compactly for debugging.
func (x *Array) String() string {
	var b strings.Builder
	s, t, d := x.Dims()
	fmt.Fprintf(&b, "Array[%d×%d×%d]\n", s, t, d)
	for i := 0; i < s; i++ {
		for j := 0; j < t; j++ {
			fmt.Fprintf(&b, "%s.%s:", x.axes[0].Labels[i], x.axes[1].Labels[j])
			for k := 0; k < d; k++ {
				fmt.Fprintf(&b, " %s=%g", x.axes[2].Labels[k], x.data[x.offset(i, j, k)])
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
