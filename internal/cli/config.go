// SPDX-License-Identifier: MIT

// Package cli implements the regroup command: it reads a long-format CSV
// array, applies a mapping file along one axis and writes the result.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/katalvlaran/regroup/aggregate"
	"github.com/katalvlaran/regroup/report"
)

// Log formats.
const (
	LogText = "text"
	LogJSON = "json"
)

// Config holds the command configuration. Environment variables set the
// defaults; flags override them.
type Config struct {
	Input       string   `env:"REGROUP_INPUT"`
	Mapping     string   `env:"REGROUP_MAPPING"`
	Weights     string   `env:"REGROUP_WEIGHTS"`
	Output      string   `env:"REGROUP_OUTPUT"`
	Dim         string   `env:"REGROUP_DIM" envDefault:"1"`
	From        string   `env:"REGROUP_FROM"`
	To          string   `env:"REGROUP_TO"`
	WeightDim   string   `env:"REGROUP_WEIGHT_DIM"`
	Partial     bool     `env:"REGROUP_PARTIAL"`
	Mixed       bool     `env:"REGROUP_MIXED"`
	Negative    string   `env:"REGROUP_NEGATIVE_WEIGHTS" envDefault:"warn"`
	RegionOrder []string `env:"REGROUP_REGION_ORDER" envSeparator:","`
	LogLevel    string   `env:"REGROUP_LOG_LEVEL" envDefault:"info"`
	LogFormat   string   `env:"REGROUP_LOG_FORMAT" envDefault:"text"`
}

// ParseConfig loads environment defaults and then parses flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	regionOrder := strings.Join(cfg.RegionOrder, ",")

	fs.StringVar(&cfg.Input, "in", cfg.Input, "long-format CSV array to aggregate")
	fs.StringVar(&cfg.Mapping, "map", cfg.Mapping, "mapping file (.csv, .tsv, .txt, .yaml, .yml)")
	fs.StringVar(&cfg.Weights, "weights", cfg.Weights, "long-format CSV weight array; enables the weighted mean")
	fs.StringVar(&cfg.Output, "out", cfg.Output, "output file; empty or - writes to stdout")
	fs.StringVar(&cfg.Dim, "dim", cfg.Dim, "axis to aggregate: 1/2/3, an axis name, or axis.sub")
	fs.StringVar(&cfg.From, "from", cfg.From, "mapping source column (auto-detected when empty)")
	fs.StringVar(&cfg.To, "to", cfg.To, "mapping target column, A+B for stacked targets")
	fs.StringVar(&cfg.WeightDim, "weight-dim", cfg.WeightDim, "pin the weight axis instead of detecting it")
	fs.BoolVar(&cfg.Partial, "partial", cfg.Partial, "keep only labels present in both data and mapping")
	fs.BoolVar(&cfg.Mixed, "mixed", cfg.Mixed, "treat fully missing weight slices as ones")
	fs.StringVar(&cfg.Negative, "negative-weights", cfg.Negative, "negative weight policy: allow, warn or stop")
	fs.StringVar(&regionOrder, "region-order", regionOrder, "comma-separated region order for unnamed spatial targets")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "minimum report level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.RegionOrder = splitList(regionOrder)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required fields and enumerations.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return errors.New("in is required")
	}
	if strings.TrimSpace(c.Mapping) == "" {
		return errors.New("map is required")
	}
	if strings.TrimSpace(c.Dim) == "" {
		return errors.New("dim is required")
	}
	if _, err := aggregate.ParseNegativePolicy(c.Negative); err != nil {
		return err
	}
	if _, err := report.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case LogText, LogJSON, "":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// options translates the configuration into aggregation options.
func (c Config) options() ([]aggregate.Option, error) {
	policy, err := aggregate.ParseNegativePolicy(c.Negative)
	if err != nil {
		return nil, err
	}
	level, err := report.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := []aggregate.Option{
		aggregate.WithDim(c.Dim),
		aggregate.WithFrom(c.From),
		aggregate.WithTo(c.To),
		aggregate.WithPartial(c.Partial),
		aggregate.WithMixed(c.Mixed),
		aggregate.WithNegativeWeights(policy),
		aggregate.WithLevel(level),
	}
	if c.WeightDim != "" {
		opts = append(opts, aggregate.WithWeightDim(c.WeightDim))
	}
	if len(c.RegionOrder) > 0 {
		opts = append(opts, aggregate.WithRegionOrder(c.RegionOrder...))
	}
	return opts, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
