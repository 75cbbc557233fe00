package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/matzehuels/snapboard/pkg/cache"
	"github.com/matzehuels/snapboard/pkg/config"
	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/history"
	"github.com/matzehuels/snapboard/pkg/interact"
	pkgio "github.com/matzehuels/snapboard/pkg/io"
	"github.com/matzehuels/snapboard/pkg/scene"
)

// session is one loaded document with its controller and journal.
type session struct {
	path    string
	doc     scene.Document
	ctrl    *interact.Controller
	journal *history.Journal
}

// openSession loads path, syncs the journal with the file contents and
// builds a controller that commits into it.
func (c *CLI) openSession(ctx context.Context, path string, opts interact.Options) (*session, error) {
	doc, sc, err := c.loadDocument(path)
	if err != nil {
		return nil, err
	}
	j, err := c.openJournal(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := syncJournal(ctx, j, sc.Document()); err != nil {
		_ = j.Close()
		return nil, err
	}
	return &session{path: path, doc: doc, ctrl: interact.New(sc, j, opts), journal: j}, nil
}

// save writes the controller's scene back to the document file, or to out
// when set.
func (s *session) save(out string) error {
	if out == "" {
		out = s.path
	}
	return saveDocument(s.ctrl.Scene(), out)
}

func (s *session) Close() error { return s.journal.Close() }

// loadDocument reads a document file and builds its scene with the
// configured grid and stage filled in.
func (c *CLI) loadDocument(path string) (scene.Document, *scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return scene.Document{}, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
		}
		return scene.Document{}, nil, errors.Wrap(errors.ErrCodeStorage, err, "open %s", path)
	}
	defer f.Close()

	doc, err := pkgio.DecodeDocument(f)
	if err != nil {
		return scene.Document{}, nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s", path)
	}
	sc, err := scene.FromDocument(doc)
	if err != nil {
		return scene.Document{}, nil, err
	}
	c.cfg.ApplyScene(sc, doc)
	return doc, sc, nil
}

// saveDocument writes sc to path through a temporary sibling and a rename.
func saveDocument(sc *scene.Scene, path string) error {
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(sc, &buf); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", path)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapboard-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
	}
	return nil
}

// journalOptions scopes the configured history backend to one document.
// The memory backend does not survive the process, so the CLI keeps its
// history in files instead.
func (c *CLI) journalOptions(path string) (history.Options, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return history.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", path)
	}
	key := cache.Hash([]byte(abs))[:16]

	opts := c.cfg.HistoryOptions()
	switch opts.Backend {
	case history.BackendRedis:
		prefix := opts.RedisKey
		if prefix == "" {
			prefix = history.DefaultRedisKey
		}
		opts.RedisKey = prefix + ":" + key
	default:
		opts.Backend = history.BackendFile
		dir := opts.Dir
		if dir == "" {
			dir = filepath.Join(config.DataDir(), "history")
		}
		opts.Dir = filepath.Join(dir, key)
	}
	return opts, nil
}

func (c *CLI) openJournal(ctx context.Context, path string) (*history.Journal, error) {
	opts, err := c.journalOptions(path)
	if err != nil {
		return nil, err
	}
	return history.Open(ctx, opts)
}

// syncJournal commits doc as a baseline revision when the journal is empty
// or its current revision differs from doc, so the first undo after an
// outside edit returns to the file as it was loaded.
func syncJournal(ctx context.Context, j *history.Journal, doc scene.Document) error {
	cur, ok, err := j.Current(ctx)
	if err != nil {
		return err
	}
	if ok && sameDocument(cur.Document, doc) {
		return nil
	}
	return j.CommitLabeled(ctx, "load", doc)
}

func sameDocument(a, b scene.Document) bool {
	ja, err1 := json.Marshal(a)
	jb, err2 := json.Marshal(b)
	return err1 == nil && err2 == nil && bytes.Equal(ja, jb)
}
