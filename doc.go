// Package regroup moves labeled numeric arrays between categorical
// resolutions: countries into world regions, crops into crop groups,
// months into seasons, and back again.
//
// 🚀 What is regroup?
//
//	A small, synchronous library built around one operation, y = R·x along
//	one axis of a spatial × temporal × data cube:
//		• Relations: mapping tables, files or explicit matrices, auto-oriented
//		• Sub-dimensions: aggregate one component of compound labels ("zone.kind")
//		• Contraction: NaN/Inf-aware, every other-axis slice independently
//		• Weighted means: at source or at target granularity, detected from the weights
//		• Partial mode: keep the overlap, report what was dropped
//
// Packages:
//
//	labeled/    Array, Axis and compound Label; flat cube storage
//	matrix/     row-major Dense, validators, the contraction kernel
//	relation/   Relation, mapping sources, column detection and alignment
//	dimension/  axis / sub-dimension specs and block-diagonal expansion
//	aggregate/  Aggregate, AggregateWeighted, Apply and their options
//	report/     leveled diagnostics (log/slog backed)
//	mapfile/    CSV/TSV/YAML mapping files
//
// Quick ASCII example (sum of countries into blocs):
//
//	         DEU FRA NOR
//	    EU  [ 1   1   0 ]   ·  [80 60 5]ᵀ  =  [140 5]ᵀ
//	    EFTA[ 0   0   1 ]
//
// The cmd/regroup command applies a mapping file to a long-format CSV array.
//
//	go install github.com/katalvlaran/regroup/cmd/regroup@latest
package regroup
