// SPDX-License-Identifier: MIT

// Package report is the severity-aware message channel of the aggregation
// engine. Engine code never logs directly: it receives a Reporter and a
// minimum Level as explicit configuration.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Level is a message severity. The values match log/slog so a Level can be
// handed to a slog handler unchanged.
type Level int

const (
	// Debug is per-step tracing.
	Debug Level = Level(slog.LevelDebug)
	// Info is a diagnostic the caller may act on (e.g. labels dropped in partial mode).
	Info Level = Level(slog.LevelInfo)
	// Warn flags a suspicious but tolerated input (e.g. negative weights under "warn").
	Warn Level = Level(slog.LevelWarn)
	// Error is reserved for callers; the engine returns errors instead.
	Error Level = Level(slog.LevelError)
)

// String returns the slog spelling of the level.
func (l Level) String() string { return slog.Level(l).String() }

// ParseLevel accepts debug, info, warn/warning and error (case-insensitive).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "info", "":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	default:
		return Info, fmt.Errorf("report: unknown level %q", s)
	}
}

// Reporter receives engine messages. attrs are slog-style key/value pairs.
type Reporter interface {
	Report(level Level, msg string, attrs ...any)
}

// Slog forwards messages to a *slog.Logger.
type Slog struct {
	Logger *slog.Logger
}

// NewSlog wraps l; a nil logger falls back to slog.Default().
func NewSlog(l *slog.Logger) Slog {
	if l == nil {
		l = slog.Default()
	}
	return Slog{Logger: l}
}

// Report implements Reporter.
func (s Slog) Report(level Level, msg string, attrs ...any) {
	s.Logger.Log(context.Background(), slog.Level(level), msg, attrs...)
}

// filtered drops messages below min.
type filtered struct {
	next Reporter
	min  Level
}

func (f filtered) Report(level Level, msg string, attrs ...any) {
	if level < f.min {
		return
	}
	f.next.Report(level, msg, attrs...)
}

// Filter returns a Reporter that forwards only messages at or above min.
// A nil next yields Discard.
func Filter(next Reporter, min Level) Reporter {
	if next == nil {
		return Discard
	}
	return filtered{next: next, min: min}
}

type discard struct{}

func (discard) Report(Level, string, ...any) {}

// Discard ignores every message.
var Discard Reporter = discard{}

// Message is one recorded report.
type Message struct {
	Level Level
	Text  string
	Attrs []any
}

// Recorder keeps every message in memory. It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

// Report implements Reporter.
func (r *Recorder) Report(level Level, msg string, attrs ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, Message{Level: level, Text: msg, Attrs: append([]any(nil), attrs...)})
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.msgs...)
}

// Count returns the number of recorded messages at exactly level.
func (r *Recorder) Count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.msgs {
		if m.Level == level {
			n++
		}
	}
	return n
}
