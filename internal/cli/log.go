// Package cli implements the snapboard command-line interface.
//
// Commands operate on JSON scene documents (see pkg/io). Each gesture
// command loads a document, runs one gesture through the interaction
// controller, commits the result to the undo journal and writes the document
// back.
//
// # Commands
//
//   - snap: move shapes by a delta with node, grid and stage snapping
//   - adjust: drag one resize, rotate or bend handle
//   - render: export SVG, PNG, PDF, DOT or a Graphviz topology view
//   - edit: interactive terminal canvas driven by the mouse
//   - serve: HTTP API for snap, adjust and render
//   - history: list, undo and redo committed revisions
//   - cache: manage the rendered artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Gesture,
// snap and history events from the library packages reach the logger
// through observability hooks.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Rendered 3 files (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// hookLogger forwards observability events to the logger at debug level.
// Failed history commits are warnings: the gesture still completes.
type hookLogger struct {
	logger *log.Logger
}

func newHookLogger(l *log.Logger) *hookLogger { return &hookLogger{logger: l} }

func (h *hookLogger) OnGestureStart(_ context.Context, kind, shapeID string) {
	h.logger.Debug("gesture start", "kind", kind, "shape", shapeID)
}

func (h *hookLogger) OnGestureEnd(_ context.Context, kind, shapeID string, frames int, d time.Duration) {
	h.logger.Debug("gesture end", "kind", kind, "shape", shapeID, "frames", frames, "duration", d.Round(time.Microsecond))
}

func (h *hookLogger) OnGestureIgnored(_ context.Context, kind string) {
	h.logger.Debug("pointer-down ignored", "during", kind)
}

func (h *hookLogger) OnSnap(_ context.Context, axis, source string, offset float64, guides int) {
	h.logger.Debug("snap", "axis", axis, "source", source, "offset", offset, "guides", guides)
}

func (h *hookLogger) OnCommit(_ context.Context, backend string, rev int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("history commit failed", "backend", backend, "err", err)
		return
	}
	h.logger.Debug("history commit", "backend", backend, "revision", rev, "duration", d.Round(time.Microsecond))
}

func (h *hookLogger) OnRestore(_ context.Context, backend, op string, rev int, err error) {
	if err != nil {
		h.logger.Debug("history "+op, "backend", backend, "err", err)
		return
	}
	h.logger.Debug("history "+op, "backend", backend, "revision", rev)
}
