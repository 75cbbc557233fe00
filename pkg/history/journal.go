package history

import (
	"context"
	"time"

	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/observability"
	"github.com/matzehuels/snapboard/pkg/scene"
)

// DefaultLimit is how many revisions a journal keeps when no limit is set.
const DefaultLimit = 100

var (
	// ErrNothingToUndo is returned by Undo at the oldest revision.
	ErrNothingToUndo = errors.New(errors.ErrCodeMissingReference, "nothing to undo")
	// ErrNothingToRedo is returned by Redo at the newest revision.
	ErrNothingToRedo = errors.New(errors.ErrCodeMissingReference, "nothing to redo")
)

// Journal is an undo/redo history over a Store.
type Journal struct {
	store Store
	limit int
	now   func() time.Time
}

// Option configures a Journal.
type Option func(*Journal)

// WithLimit caps the number of stored revisions. Oldest revisions are
// dropped first. A non-positive limit keeps everything.
func WithLimit(n int) Option { return func(j *Journal) { j.limit = n } }

// WithClock overrides the revision timestamp source.
func WithClock(now func() time.Time) Option { return func(j *Journal) { j.now = now } }

// NewJournal returns a journal over store with DefaultLimit.
func NewJournal(store Store, opts ...Option) *Journal {
	j := &Journal{store: store, limit: DefaultLimit, now: time.Now}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Store returns the underlying store.
func (j *Journal) Store() Store { return j.store }

// Commit records doc as the new current revision.
func (j *Journal) Commit(ctx context.Context, doc scene.Document) error {
	return j.CommitLabeled(ctx, "", doc)
}

// CommitLabeled records doc with a label naming the gesture that produced
// it. Revisions after the cursor (the redo tail) are discarded.
func (j *Journal) CommitLabeled(ctx context.Context, label string, doc scene.Document) error {
	start := time.Now()
	seq, err := j.commit(ctx, label, doc)
	observability.History().OnCommit(ctx, j.store.Name(), seq, time.Since(start), err)
	return err
}

func (j *Journal) commit(ctx context.Context, label string, doc scene.Document) (int, error) {
	cur, err := j.store.Cursor(ctx)
	if err != nil {
		return 0, err
	}
	if err := j.store.Truncate(ctx, cur+1); err != nil {
		return 0, err
	}
	seq := 1
	if cur >= 0 {
		last, err := j.store.Get(ctx, cur)
		if err != nil {
			return 0, err
		}
		seq = last.Seq + 1
	}
	rev := Revision{Seq: seq, Time: j.now().UTC(), Label: label, Document: doc}
	if err := j.store.Append(ctx, rev); err != nil {
		return 0, err
	}
	cur++

	if j.limit > 0 {
		n, err := j.store.Len(ctx)
		if err != nil {
			return 0, err
		}
		if over := n - j.limit; over > 0 {
			if err := j.store.DropFront(ctx, over); err != nil {
				return 0, err
			}
			cur -= over
		}
	}
	return seq, j.store.SetCursor(ctx, cur)
}

// Undo moves the cursor back one revision and returns that document.
func (j *Journal) Undo(ctx context.Context) (scene.Document, error) {
	return j.step(ctx, "undo", -1)
}

// Redo moves the cursor forward one revision and returns that document.
func (j *Journal) Redo(ctx context.Context) (scene.Document, error) {
	return j.step(ctx, "redo", +1)
}

func (j *Journal) step(ctx context.Context, op string, delta int) (scene.Document, error) {
	rev, err := j.move(ctx, delta)
	observability.History().OnRestore(ctx, j.store.Name(), op, rev.Seq, err)
	return rev.Document, err
}

func (j *Journal) move(ctx context.Context, delta int) (Revision, error) {
	cur, err := j.store.Cursor(ctx)
	if err != nil {
		return Revision{}, err
	}
	n, err := j.store.Len(ctx)
	if err != nil {
		return Revision{}, err
	}
	next := cur + delta
	switch {
	case delta < 0 && next < 0:
		return Revision{}, ErrNothingToUndo
	case delta > 0 && next >= n:
		return Revision{}, ErrNothingToRedo
	}
	rev, err := j.store.Get(ctx, next)
	if err != nil {
		return Revision{}, err
	}
	return rev, j.store.SetCursor(ctx, next)
}

// Current returns the revision under the cursor. ok is false for an empty
// journal.
func (j *Journal) Current(ctx context.Context) (rev Revision, ok bool, err error) {
	cur, err := j.store.Cursor(ctx)
	if err != nil || cur < 0 {
		return Revision{}, false, err
	}
	rev, err = j.store.Get(ctx, cur)
	return rev, err == nil, err
}

// Revisions lists every stored revision and the cursor.
func (j *Journal) Revisions(ctx context.Context) ([]Revision, int, error) {
	n, err := j.store.Len(ctx)
	if err != nil {
		return nil, -1, err
	}
	out := make([]Revision, 0, n)
	for i := 0; i < n; i++ {
		rev, err := j.store.Get(ctx, i)
		if err != nil {
			return nil, -1, err
		}
		out = append(out, rev)
	}
	cur, err := j.store.Cursor(ctx)
	return out, cur, err
}

// Close closes the store.
func (j *Journal) Close() error { return j.store.Close() }

var _ Committer = (*Journal)(nil)
