package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/matzehuels/snapboard/pkg/errors"
)

// FileStore keeps the journal in one JSON file. Every mutation rewrites the
// file through a temporary sibling and a rename, so a crash leaves either
// the old or the new journal on disk.
type FileStore struct {
	path string
}

type journalFile struct {
	Cursor    int        `json:"cursor"`
	Revisions []Revision `json:"revisions"`
}

// NewFileStore creates a journal at dir/journal.json. The directory is
// created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create history dir %s", dir)
	}
	return &FileStore{path: filepath.Join(dir, "journal.json")}, nil
}

// Path returns the journal file path.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Name() string { return "file" }

func (f *FileStore) load() (journalFile, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return journalFile{Cursor: -1}, nil
	}
	if err != nil {
		return journalFile{}, errors.Wrap(errors.ErrCodeStorage, err, "read %s", f.path)
	}
	var j journalFile
	if err := json.Unmarshal(data, &j); err != nil {
		return journalFile{}, errors.Wrap(errors.ErrCodeStorage, err, "corrupt journal %s", f.path)
	}
	return j, nil
}

func (f *FileStore) save(j journalFile) error {
	data, err := json.Marshal(j)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode journal")
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".journal-*.json")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write journal")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeStorage, err, "write journal")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write journal")
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "replace %s", f.path)
	}
	return nil
}

func (f *FileStore) update(fn func(*journalFile)) error {
	j, err := f.load()
	if err != nil {
		return err
	}
	fn(&j)
	return f.save(j)
}

func (f *FileStore) Len(context.Context) (int, error) {
	j, err := f.load()
	return len(j.Revisions), err
}

func (f *FileStore) Get(_ context.Context, i int) (Revision, error) {
	j, err := f.load()
	if err != nil {
		return Revision{}, err
	}
	if i < 0 || i >= len(j.Revisions) {
		return Revision{}, errors.New(errors.ErrCodeMissingReference, "revision %d out of range", i)
	}
	return j.Revisions[i], nil
}

func (f *FileStore) Append(_ context.Context, rev Revision) error {
	return f.update(func(j *journalFile) { j.Revisions = append(j.Revisions, rev) })
}

func (f *FileStore) Truncate(_ context.Context, n int) error {
	return f.update(func(j *journalFile) {
		if n < len(j.Revisions) {
			j.Revisions = j.Revisions[:max(n, 0)]
		}
	})
}

func (f *FileStore) DropFront(_ context.Context, n int) error {
	return f.update(func(j *journalFile) {
		j.Revisions = j.Revisions[min(max(n, 0), len(j.Revisions)):]
	})
}

func (f *FileStore) Cursor(context.Context) (int, error) {
	j, err := f.load()
	if err != nil {
		return -1, err
	}
	return j.Cursor, nil
}

func (f *FileStore) SetCursor(_ context.Context, i int) error {
	return f.update(func(j *journalFile) { j.Cursor = i })
}

// Close does nothing for the file store.
func (f *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
