package history

import (
	"context"
	"time"

	"github.com/matzehuels/snapboard/pkg/scene"
)

// Revision is one committed scene state.
type Revision struct {
	Seq      int            `json:"seq"`
	Time     time.Time      `json:"time"`
	Label    string         `json:"label,omitempty"`
	Document scene.Document `json:"document"`
}

// Store persists an ordered list of revisions and a cursor pointing at the
// current one. The cursor is -1 when the store is empty.
type Store interface {
	// Name identifies the backend in logs ("memory", "file", "redis").
	Name() string
	Len(ctx context.Context) (int, error)
	Get(ctx context.Context, i int) (Revision, error)
	Append(ctx context.Context, rev Revision) error
	// Truncate keeps revisions [0, n).
	Truncate(ctx context.Context, n int) error
	// DropFront removes the n oldest revisions.
	DropFront(ctx context.Context, n int) error
	Cursor(ctx context.Context) (int, error)
	SetCursor(ctx context.Context, i int) error
	Close() error
}

// Committer is what the interaction layer needs from history.
type Committer interface {
	Commit(ctx context.Context, doc scene.Document) error
}
