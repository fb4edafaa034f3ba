// Package cli implements the storyline command-line interface.
//
// The commands lay out an event file (JSON, YAML or CSV) as bands and
// storylines and write the resulting charts. Settings come from storyline.toml and are
// overridden by the flags the user sets.
//
// # Commands
//
//   - layout: Compute bands and storylines and write them as JSON
//   - render: Draw the storyline chart as SVG, PNG, PDF or JSON
//   - graph: Draw the entity co-occurrence graph
//   - pick: Choose entities interactively, then render
//   - cache: Manage the rendered artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes leveled, timestamped log lines to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long a pipeline stage took, e.g.
// "Loaded 42 records (12ms)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey struct{}

// withLogger attaches the command logger to ctx so the stages a command runs
// log through it.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or the
// package default when none is attached, as in tests that call a stage
// directly.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
