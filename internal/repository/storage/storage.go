package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("key not found")

// Store is the shared key-value state every request reads and overwrites.
// It offers no transactions and no compare-and-swap: callers follow fetch -> compute -> overwrite
// and accept that a concurrent writer in between causes a lost update.
type Store interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	IncrBy(ctx context.Context, key string, n int64) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Close() error
}
