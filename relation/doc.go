// Package relation turns heterogeneous relation specifications into a
// canonical numeric relation matrix.
//
// A Relation has one row per target label and one column per source label;
// entry (i,j) ≥ 0 says how much source j contributes to target i. A 1-0
// matrix is a plain regrouping, other values are pre-weighted relations.
//
// Three kinds of Source are accepted and resolved by a pure function before
// any numeric step runs:
//
//   - Explicit: a ready Relation (row/column labels optional).
//   - Table: a mapping table; one "from" column supplies source labels, one or
//     more "to" columns ("A+B") supply target labels.
//   - FileRef: a reference resolved into a Table by an injected Loader.
//
// Build aligns the result with the source axis: columns follow the axis
// order exactly. In partial mode only the overlap is kept and the axis labels
// outside it are reported back as Dropped.
package relation
