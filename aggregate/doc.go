// SPDX-License-Identifier: MIT

// Package aggregate contracts one axis of a labeled.Array through a relation
// matrix, turning source labels into target labels.
//
// What:
//   - Aggregate: unweighted contraction Y = M·X along the selected axis (or
//     sub-dimension), applied to every slice of the two other axes.
//   - AggregateWeighted: weighted averaging (weight at source granularity) or
//     proportional disaggregation (weight at target granularity), realized
//     with exactly two unweighted contractions plus cell-wise arithmetic.
//   - Apply: dispatches to one of the two depending on the weight.
//
// Why:
//   - Regional, sectoral and temporal regrouping of statistical cubes is the
//     same linear operation with different label bookkeeping; this package
//     owns the bookkeeping so callers only supply data, a mapping and options.
//
// Numeric policy (see matrix.MatVecPropagate):
//   - A ±Inf source value yields exactly ±Inf in every related target row
//     and nothing in unrelated rows.
//   - A NaN source value yields NaN in every related target row and a clean
//     zero contribution elsewhere.
//
// Relations:
//   - relation.Explicit, relation.Table or relation.FileRef (resolved through
//     WithLoader, see package mapfile). Orientation is detected; columns are
//     reordered to the axis order.
//   - WithPartial keeps only the labels covered by the mapping and reports
//     the others at report.Info.
//
// Output:
//   - Labels come from the relation's target names; an unnamed spatial
//     relation falls back to a centroid position over WithRegionOrder.
//   - Duplicate labels are suffixed with their 1-based position unless the
//     axis carries compound labels.
//   - A provenance note is appended and metadata refreshed through the
//     configured labeled.MetaCopier.
//
// Inputs are never modified. All functions are synchronous and free of
// global state; diagnostics go to the configured report.Reporter.
package aggregate
