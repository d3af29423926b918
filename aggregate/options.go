// SPDX-License-Identifier: MIT

// Package aggregate: functional configuration of the aggregation engine.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors (panic on nonsensical values),
//   - gatherOptions helper that applies them over the defaults.
//
// Notes:
//   - The message level and reporter only affect diagnostics, never values.
//   - WithSpec overrides WithDim; the last setter of either wins otherwise.
package aggregate

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/regroup/dimension"
	"github.com/katalvlaran/regroup/labeled"
	"github.com/katalvlaran/regroup/relation"
	"github.com/katalvlaran/regroup/report"
)

// NegativePolicy decides how negative weight entries are treated.
type NegativePolicy int

const (
	// Allow accepts negative weights silently.
	Allow NegativePolicy = iota
	// Warn accepts negative weights and emits one report.Warn message.
	Warn
	// Stop rejects negative weights with ErrWeightValidation.
	Stop
)

// String returns "allow", "warn" or "stop".
func (p NegativePolicy) String() string {
	switch p {
	case Allow:
		return "allow"
	case Warn:
		return "warn"
	case Stop:
		return "stop"
	default:
		return fmt.Sprintf("NegativePolicy(%d)", int(p))
	}
}

// ParseNegativePolicy reads "allow", "warn" or "stop" (case-insensitive).
func ParseNegativePolicy(s string) (NegativePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow":
		return Allow, nil
	case "warn", "":
		return Warn, nil
	case "stop":
		return Stop, nil
	default:
		return Warn, fmt.Errorf("aggregate: unknown negative-weight policy %q", s)
	}
}

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultDim aggregates the spatial axis.
	DefaultDim = "1"

	// DefaultPartial rejects relations that do not cover the axis exactly.
	DefaultPartial = false

	// DefaultNegativeWeights tolerates negative weights with one warning.
	DefaultNegativeWeights = Warn

	// DefaultMixed rejects NaN weights.
	DefaultMixed = false

	// DefaultLevel is the lowest severity forwarded to the reporter.
	DefaultLevel = report.Info

	// DefaultEpsilon guards the weight normalizer 1/(Σw+ε) against zero sums.
	DefaultEpsilon = 1e-100
)

// ---------- Internal panic messages ----------

const (
	panicDimEmpty       = "aggregate: WithDim: empty dimension specifier"
	panicSpecInvalid    = "aggregate: WithSpec: invalid axis id"
	panicPolicyInvalid  = "aggregate: WithNegativeWeights: unknown policy"
	panicEpsilonInvalid = "aggregate: WithEpsilon: eps must be finite, non-negative"
)

// Option mutates internal options.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; entry points accept ...Option.
type Options struct {
	// axis selection
	dim  string          // DefaultDim
	spec *dimension.Spec // overrides dim when set

	// relation construction
	from    string
	to      string
	partial bool // DefaultPartial
	loader  relation.Loader

	// weighting
	weightDim string         // "" = detect
	negative  NegativePolicy // DefaultNegativeWeights
	mixed     bool           // DefaultMixed
	eps       float64        // DefaultEpsilon

	// output
	regionOrder []string
	metaCopier  labeled.MetaCopier

	// diagnostics
	level    report.Level // DefaultLevel
	reporter report.Reporter
}

// WithDim selects the axis or sub-dimension to aggregate: "1", "2", "3",
// "spatial", "temporal", "data", "3.2", or a name from Axis.Name or
// Axis.SubNames of the input. Panics on an empty string.
func WithDim(dim string) Option {
	if strings.TrimSpace(dim) == "" {
		panic(panicDimEmpty)
	}
	return func(o *Options) { o.dim, o.spec = dim, nil }
}

// WithSpec selects the axis or sub-dimension directly. Panics on an invalid
// axis id or a negative component.
func WithSpec(s dimension.Spec) Option {
	if !s.Axis.Valid() || s.Sub < 0 {
		panic(panicSpecInvalid)
	}
	return func(o *Options) { o.spec = &s }
}

// WithFrom names the mapping column holding source labels. Without it the
// first column matching the source labels is used.
func WithFrom(col string) Option {
	return func(o *Options) { o.from = col }
}

// WithTo names the mapping column holding target labels; "A+B" stacks the
// targets of several columns. Without it the column next to From is used.
func WithTo(col string) Option {
	return func(o *Options) { o.to = col }
}

// WithPartial enables partial relations: labels outside the overlap of
// mapping and axis are dropped and reported.
func WithPartial(partial bool) Option {
	return func(o *Options) { o.partial = partial }
}

// WithLoader sets the loader used for relation.FileRef sources.
func WithLoader(l relation.Loader) Option {
	return func(o *Options) { o.loader = l }
}

// WithWeightDim pins the weight axis (same syntax as WithDim, resolved
// against the weight array) instead of detecting it.
func WithWeightDim(dim string) Option {
	return func(o *Options) { o.weightDim = dim }
}

// WithNegativeWeights sets the negative-weight policy. Panics on an unknown value.
func WithNegativeWeights(p NegativePolicy) Option {
	if p < Allow || p > Stop {
		panic(panicPolicyInvalid)
	}
	return func(o *Options) { o.negative = p }
}

// WithMixed enables mixed aggregation: a weight lane that is entirely NaN
// is summed instead of weighted.
func WithMixed(mixed bool) Option {
	return func(o *Options) { o.mixed = mixed }
}

// WithEpsilon sets ε in the weight normalizer 1/(Σw+ε).
// Panics unless eps is finite and ≥ 0.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}
	return func(o *Options) { o.eps = eps }
}

// WithRegionOrder sets the region ordering used to derive centroid labels for
// unnamed spatial targets. Defaults to the order of the input's spatial axis.
func WithRegionOrder(regions ...string) Option {
	cp := append([]string(nil), regions...)
	return func(o *Options) { o.regionOrder = cp }
}

// WithMetaCopier sets the metadata passthrough; nil restores labeled.CopyMeta.
func WithMetaCopier(c labeled.MetaCopier) Option {
	return func(o *Options) { o.metaCopier = c }
}

// WithLevel sets the minimum severity forwarded to the reporter.
func WithLevel(l report.Level) Option {
	return func(o *Options) { o.level = l }
}

// WithReporter sets the diagnostics sink; nil discards every message.
func WithReporter(r report.Reporter) Option {
	return func(o *Options) {
		if r == nil {
			r = report.Discard
		}
		o.reporter = r
	}
}

// defaultOptions returns the zero-configuration behavior.
func defaultOptions() Options {
	return Options{
		dim:        DefaultDim,
		partial:    DefaultPartial,
		negative:   DefaultNegativeWeights,
		mixed:      DefaultMixed,
		eps:        DefaultEpsilon,
		metaCopier: labeled.CopyMeta,
		level:      DefaultLevel,
		reporter:   report.NewSlog(nil),
	}
}

// gatherOptions applies opts over the defaults and finalizes derived state.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.metaCopier == nil {
		o.metaCopier = labeled.CopyMeta
	}
	o.reporter = report.Filter(o.reporter, o.level)
	return o
}

// buildConfig projects the relation settings.
func (o Options) buildConfig() relation.BuildConfig {
	return relation.BuildConfig{From: o.from, To: o.to, Partial: o.partial, Loader: o.loader}
}
