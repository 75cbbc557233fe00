// Package history records committed scene states and walks them for undo
// and redo.
//
// A [Journal] sits on top of a [Store]. Every completed gesture commits the
// whole scene document as a new [Revision]; committing after an undo drops
// the redo tail. Three stores are provided:
//
//   - [MemoryStore] for tests and the HTTP server
//   - [FileStore], a single JSON journal file written atomically
//   - [RedisStore], a Redis list shared across editor sessions
//
// Commit failures are reported to the caller but are never meant to abort a
// gesture; the interaction layer logs them and carries on.
package history
