// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about gestures, snapping, and history commits.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Libraries never log on their own; the CLI registers hooks that forward
// events to its logger.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGestureHooks(&myGestureHooks{})
//	    observability.SetSnapHooks(&mySnapHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Gesture().OnGestureStart(ctx, "resize", shapeID)
//	// ... pointer moves ...
//	observability.Gesture().OnGestureEnd(ctx, "resize", shapeID, frames, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Gesture Hooks
// =============================================================================

// GestureHooks receives events from the interaction controller.
type GestureHooks interface {
	// OnGestureStart records the pointer-down that entered Dragging.
	OnGestureStart(ctx context.Context, kind, shapeID string)

	// OnGestureEnd records the pointer-up that returned to Idle.
	OnGestureEnd(ctx context.Context, kind, shapeID string, frames int, duration time.Duration)

	// OnGestureIgnored records a pointer-down dropped because a gesture
	// was already running.
	OnGestureIgnored(ctx context.Context, kind string)
}

// =============================================================================
// Snap Hooks
// =============================================================================

// SnapHooks receives events from snapping.
type SnapHooks interface {
	// OnSnap records a correction on one axis. source is "node", "grid" or
	// "stage".
	OnSnap(ctx context.Context, axis, source string, offset float64, guides int)
}

// =============================================================================
// History Hooks
// =============================================================================

// HistoryHooks receives events from the history journal.
type HistoryHooks interface {
	// OnCommit records a journal commit.
	OnCommit(ctx context.Context, backend string, revision int, duration time.Duration, err error)

	// OnRestore records an undo or redo. op is "undo" or "redo".
	OnRestore(ctx context.Context, backend, op string, revision int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGestureHooks is a no-op implementation of GestureHooks.
type NoopGestureHooks struct{}

func (NoopGestureHooks) OnGestureStart(context.Context, string, string)                     {}
func (NoopGestureHooks) OnGestureEnd(context.Context, string, string, int, time.Duration) {}
func (NoopGestureHooks) OnGestureIgnored(context.Context, string)                           {}

// NoopSnapHooks is a no-op implementation of SnapHooks.
type NoopSnapHooks struct{}

func (NoopSnapHooks) OnSnap(context.Context, string, string, float64, int) {}

// NoopHistoryHooks is a no-op implementation of HistoryHooks.
type NoopHistoryHooks struct{}

func (NoopHistoryHooks) OnCommit(context.Context, string, int, time.Duration, error) {}
func (NoopHistoryHooks) OnRestore(context.Context, string, string, int, error)       {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	gestureHooks GestureHooks = NoopGestureHooks{}
	snapHooks    SnapHooks    = NoopSnapHooks{}
	historyHooks HistoryHooks = NoopHistoryHooks{}
	hooksMu      sync.RWMutex
)

// SetGestureHooks registers custom gesture hooks.
// This should be called once at application startup before any gestures run.
func SetGestureHooks(h GestureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		gestureHooks = h
	}
}

// SetSnapHooks registers custom snap hooks.
func SetSnapHooks(h SnapHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		snapHooks = h
	}
}

// SetHistoryHooks registers custom history hooks.
func SetHistoryHooks(h HistoryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		historyHooks = h
	}
}

// Gesture returns the registered gesture hooks.
func Gesture() GestureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return gestureHooks
}

// Snap returns the registered snap hooks.
func Snap() SnapHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return snapHooks
}

// History returns the registered history hooks.
func History() HistoryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return historyHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	gestureHooks = NoopGestureHooks{}
	snapHooks = NoopSnapHooks{}
	historyHooks = NoopHistoryHooks{}
}
