// SPDX-License-Identifier: MIT

package labeled

// MetaCopier refreshes the metadata of a derived array from its input.
// step is a short human-readable description of the transformation.
// Implementations may mutate to; from is read-only.
type MetaCopier func(from, to *Array, step string)

// CopyMeta is the default MetaCopier: the unit is carried over and step is
// appended to the input's lineage.
func CopyMeta(from, to *Array, step string) {
	to.Meta.Unit = from.Meta.Unit
	lineage := make([]string, 0, len(from.Meta.Lineage)+1)
	lineage = append(lineage, from.Meta.Lineage...)
	to.Meta.Lineage = append(lineage, step)
}
