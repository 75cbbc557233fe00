package history

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/snapboard/pkg/cache"
	"github.com/matzehuels/snapboard/pkg/errors"
)

// DefaultRedisKey prefixes the journal keys when none is configured.
const DefaultRedisKey = "snapboard:history"

// RedisStore keeps revisions in a Redis list (<key>:revisions) and the
// cursor in a string key (<key>:cursor). Transient connection failures are
// retried with backoff.
type RedisStore struct {
	rdb redis.UniversalClient
	key string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{rdb: rdb, key: key}
}

// DialRedis connects to addr and verifies the connection with PING.
func DialRedis(ctx context.Context, addr, key string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect redis %s", addr)
	}
	return NewRedisStore(rdb, key), nil
}

func (r *RedisStore) Name() string { return "redis" }

func (r *RedisStore) revisionsKey() string { return r.key + ":revisions" }
func (r *RedisStore) cursorKey() string    { return r.key + ":cursor" }

// do runs fn with retries on network errors and wraps the final failure.
func (r *RedisStore) do(ctx context.Context, op string, fn func() error) error {
	err := cache.RetryWithBackoff(ctx, func() error {
		return cache.Transient(fn())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "redis %s", op)
	}
	return nil
}

func (r *RedisStore) Len(ctx context.Context) (int, error) {
	var n int64
	err := r.do(ctx, "llen", func() (err error) {
		n, err = r.rdb.LLen(ctx, r.revisionsKey()).Result()
		return err
	})
	return int(n), err
}

func (r *RedisStore) Get(ctx context.Context, i int) (Revision, error) {
	var raw string
	err := r.do(ctx, "lindex", func() (err error) {
		raw, err = r.rdb.LIndex(ctx, r.revisionsKey(), int64(i)).Result()
		return err
	})
	if i < 0 || stderrors.Is(err, redis.Nil) {
		return Revision{}, errors.New(errors.ErrCodeMissingReference, "revision %d out of range", i)
	}
	if err != nil {
		return Revision{}, err
	}
	var rev Revision
	if err := json.Unmarshal([]byte(raw), &rev); err != nil {
		return Revision{}, errors.Wrap(errors.ErrCodeStorage, err, "corrupt revision %d", i)
	}
	return rev, nil
}

func (r *RedisStore) Append(ctx context.Context, rev Revision) error {
	data, err := json.Marshal(rev)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode revision")
	}
	return r.do(ctx, "rpush", func() error {
		return r.rdb.RPush(ctx, r.revisionsKey(), data).Err()
	})
}

func (r *RedisStore) Truncate(ctx context.Context, n int) error {
	if n <= 0 {
		return r.do(ctx, "del", func() error { return r.rdb.Del(ctx, r.revisionsKey()).Err() })
	}
	return r.do(ctx, "ltrim", func() error {
		return r.rdb.LTrim(ctx, r.revisionsKey(), 0, int64(n-1)).Err()
	})
}

func (r *RedisStore) DropFront(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	return r.do(ctx, "ltrim", func() error {
		return r.rdb.LTrim(ctx, r.revisionsKey(), int64(n), -1).Err()
	})
}

func (r *RedisStore) Cursor(ctx context.Context) (int, error) {
	var raw string
	err := r.do(ctx, "get", func() (err error) {
		raw, err = r.rdb.Get(ctx, r.cursorKey()).Result()
		return err
	})
	if stderrors.Is(err, redis.Nil) {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	c, err := strconv.Atoi(raw)
	if err != nil {
		return -1, errors.Wrap(errors.ErrCodeStorage, err, "corrupt cursor %q", raw)
	}
	return c, nil
}

func (r *RedisStore) SetCursor(ctx context.Context, i int) error {
	return r.do(ctx, "set", func() error {
		return r.rdb.Set(ctx, r.cursorKey(), strconv.Itoa(i), 0).Err()
	})
}

// Reset deletes both journal keys.
func (r *RedisStore) Reset(ctx context.Context) error {
	return r.do(ctx, "del", func() error {
		return r.rdb.Del(ctx, r.revisionsKey(), r.cursorKey()).Err()
	})
}

func (r *RedisStore) Close() error { return r.rdb.Close() }

var _ Store = (*RedisStore)(nil)
