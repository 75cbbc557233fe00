//go:build integration

package history

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

// Run with: SNAPBOARD_REDIS_ADDR=localhost:6379 go test -tags integration ./pkg/history
func TestRedisJournal(t *testing.T) {
	addr := os.Getenv("SNAPBOARD_REDIS_ADDR")
	if addr == "" {
		t.Skip("SNAPBOARD_REDIS_ADDR not set")
	}
	ctx := context.Background()
	store, err := DialRedis(ctx, addr, "snapboard:test:"+uuid.NewString())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	defer store.Reset(ctx)

	j := NewJournal(store, WithLimit(3))
	for _, g := range []float64{1, 2, 3, 4} {
		if err := j.Commit(ctx, doc(g)); err != nil {
			t.Fatal(err)
		}
	}
	revs, cur, err := j.Revisions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(revs) != 3 || cur != 2 || revs[0].Document.Grid != 2 {
		t.Fatalf("revisions = %d cursor = %d first = %v", len(revs), cur, revs[0].Document.Grid)
	}
	d, err := j.Undo(ctx)
	if err != nil || d.Grid != 3 {
		t.Fatalf("undo = %v %v", d.Grid, err)
	}
	if err := j.Commit(ctx, doc(9)); err != nil {
		t.Fatal(err)
	}
	if _, err := j.Redo(ctx); err == nil {
		t.Error("redo tail survived a commit")
	}
}
