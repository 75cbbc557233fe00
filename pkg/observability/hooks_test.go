package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Gesture hooks
	g := NoopGestureHooks{}
	g.OnGestureStart(ctx, "resize", "shape-1")
	g.OnGestureEnd(ctx, "resize", "shape-1", 12, time.Second)
	g.OnGestureIgnored(ctx, "move")

	// Snap hooks
	s := NoopSnapHooks{}
	s.OnSnap(ctx, "x", "node", -2, 3)

	// History hooks
	h := NoopHistoryHooks{}
	h.OnCommit(ctx, "memory", 1, time.Millisecond, nil)
	h.OnRestore(ctx, "file", "undo", 0, errors.New("empty"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Gesture().(NoopGestureHooks); !ok {
		t.Error("Gesture() should return NoopGestureHooks by default")
	}
	if _, ok := Snap().(NoopSnapHooks); !ok {
		t.Error("Snap() should return NoopSnapHooks by default")
	}
	if _, ok := History().(NoopHistoryHooks); !ok {
		t.Error("History() should return NoopHistoryHooks by default")
	}

	// Set custom hooks
	customGesture := &testGestureHooks{}
	SetGestureHooks(customGesture)
	if Gesture() != customGesture {
		t.Error("SetGestureHooks should set custom hooks")
	}

	customSnap := &testSnapHooks{}
	SetSnapHooks(customSnap)
	if Snap() != customSnap {
		t.Error("SetSnapHooks should set custom hooks")
	}

	customHistory := &testHistoryHooks{}
	SetHistoryHooks(customHistory)
	if History() != customHistory {
		t.Error("SetHistoryHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Gesture().(NoopGestureHooks); !ok {
		t.Error("Reset() should restore NoopGestureHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testGestureHooks{}
	SetGestureHooks(custom)

	// Setting nil should be ignored
	SetGestureHooks(nil)

	if Gesture() != custom {
		t.Error("SetGestureHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testGestureHooks struct{ NoopGestureHooks }
type testSnapHooks struct{ NoopSnapHooks }
type testHistoryHooks struct{ NoopHistoryHooks }
