// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/katalvlaran/regroup/aggregate"
	"github.com/katalvlaran/regroup/labeled"
	"github.com/katalvlaran/regroup/mapfile"
	"github.com/katalvlaran/regroup/relation"
	"github.com/katalvlaran/regroup/report"
)

// Run executes one aggregation. The result goes to cfg.Output, or to out
// when no output file is set; engine reports are logged to logOut.
func Run(ctx context.Context, cfg Config, out, logOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}
	if logOut == nil {
		logOut = io.Discard
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	opts, err := cfg.options()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, logOut)
	if err != nil {
		return err
	}
	opts = append(opts,
		aggregate.WithReporter(report.NewSlog(logger)),
		aggregate.WithLoader(&mapfile.Loader{}),
	)

	x, err := readArrayFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	var w *labeled.Array
	if strings.TrimSpace(cfg.Weights) != "" {
		if w, err = readArrayFile(cfg.Weights); err != nil {
			return fmt.Errorf("read weights: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	y, err := aggregate.Apply(x, relation.FileRef{Path: cfg.Mapping}, w, opts...)
	if err != nil {
		return err
	}
	logger.Debug("aggregated", slog.String("input", cfg.Input), slog.String("mapping", cfg.Mapping),
		slog.Int("cells_in", x.Size()), slog.Int("cells_out", y.Size()))

	if cfg.Output == "" || cfg.Output == "-" {
		return WriteArray(out, y)
	}
	return writeArrayFile(cfg.Output, y)
}

func newLogger(cfg Config, w io.Writer) (*slog.Logger, error) {
	level, err := report.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	hopts := &slog.HandlerOptions{Level: slog.Level(level)}
	switch strings.ToLower(cfg.LogFormat) {
	case LogJSON:
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	default:
		return slog.New(slog.NewTextHandler(w, hopts)), nil
	}
}

func readArrayFile(path string) (*labeled.Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	x, err := ReadArray(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return x, nil
}

func writeArrayFile(path string, x *labeled.Array) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return WriteArray(f, x)
}
