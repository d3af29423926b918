// SPDX-License-Identifier: MIT

package labeled

import "strings"

// Separator joins the components of a compound label.
const Separator = "."

// Label is an ordered tuple of sub-dimension components with a cached joined
// form. Equality and map keys use the joined form (String).
//
// Components are never re-derived from the joined string once a Label exists,
// so a component may itself contain Separator when built with NewLabel.
type Label struct {
	parts  []string
	joined string
}

// NewLabel builds a label from its components.
func NewLabel(parts ...string) Label {
	cp := make([]string, len(parts))
	copy(cp, parts)
	return Label{parts: cp, joined: strings.Join(cp, Separator)}
}

// ParseLabel splits s at Separator. This is the only place a joined form is
// parsed; it runs once when labels enter the system.
func ParseLabel(s string) Label {
	return Label{parts: strings.Split(s, Separator), joined: s}
}

// Labels parses every string with ParseLabel.
func Labels(ss ...string) []Label {
	out := make([]Label, len(ss))
	for i, s := range ss {
		out[i] = ParseLabel(s)
	}
	return out
}

// Strings returns the joined forms of ls.
func Strings(ls []Label) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.joined
	}
	return out
}

// String returns the joined form.
func (l Label) String() string { return l.joined }

// Depth is the number of components.
func (l Label) Depth() int { return len(l.parts) }

// Part returns component k (0-based), or "" when k is out of range.
func (l Label) Part(k int) string {
	if k < 0 || k >= len(l.parts) {
		return ""
	}
	return l.parts[k]
}

// Parts returns a copy of the components.
func (l Label) Parts() []string {
	cp := make([]string, len(l.parts))
	copy(cp, l.parts)
	return cp
}

// With returns a copy of l with component k replaced by v.
func (l Label) With(k int, v string) Label {
	parts := l.Parts()
	if k >= 0 && k < len(parts) {
		parts[k] = v
	}
	return NewLabel(parts...)
}

// Without returns the label made of every component except k. It is used as
// the "context" key of a label when sub-dimension k is being rewritten.
func (l Label) Without(k int) Label {
	parts := make([]string, 0, len(l.parts))
	for i, p := range l.parts {
		if i != k {
			parts = append(parts, p)
		}
	}
	return NewLabel(parts...)
}

// IsCompound reports whether the label has more than one component.
func (l Label) IsCompound() bool { return len(l.parts) > 1 }
