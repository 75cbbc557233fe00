package history

import (
	"context"

	"github.com/matzehuels/snapboard/pkg/errors"
)

// MemoryStore keeps revisions in process memory.
type MemoryStore struct {
	revs   []Revision
	cursor int
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{cursor: -1} }

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Len(context.Context) (int, error) { return len(m.revs), nil }

func (m *MemoryStore) Get(_ context.Context, i int) (Revision, error) {
	if i < 0 || i >= len(m.revs) {
		return Revision{}, errors.New(errors.ErrCodeMissingReference, "revision %d out of range", i)
	}
	return m.revs[i], nil
}

func (m *MemoryStore) Append(_ context.Context, rev Revision) error {
	m.revs = append(m.revs, rev)
	return nil
}

func (m *MemoryStore) Truncate(_ context.Context, n int) error {
	if n < len(m.revs) {
		m.revs = m.revs[:max(n, 0)]
	}
	return nil
}

func (m *MemoryStore) DropFront(_ context.Context, n int) error {
	m.revs = m.revs[min(max(n, 0), len(m.revs)):]
	return nil
}

func (m *MemoryStore) Cursor(context.Context) (int, error) { return m.cursor, nil }

func (m *MemoryStore) SetCursor(_ context.Context, i int) error {
	m.cursor = i
	return nil
}

func (m *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
