package history

import (
	"context"

	"github.com/matzehuels/snapboard/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend   string
	Dir       string
	RedisAddr string
	RedisKey  string
	Limit     int
}

// Open builds a journal for the configured backend.
func Open(ctx context.Context, opts Options) (*Journal, error) {
	var (
		store Store
		err   error
	)
	switch opts.Backend {
	case "", BackendMemory:
		store = NewMemoryStore()
	case BackendFile:
		if opts.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "history dir is required for the file backend")
		}
		store, err = NewFileStore(opts.Dir)
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "redis_addr is required for the redis backend")
		}
		store, err = DialRedis(ctx, opts.RedisAddr, opts.RedisKey)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown history backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	var jopts []Option
	if opts.Limit != 0 {
		jopts = append(jopts, WithLimit(opts.Limit))
	}
	return NewJournal(store, jopts...), nil
}
