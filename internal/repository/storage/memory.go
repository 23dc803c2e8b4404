package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
)

var ErrNotInteger = errors.New("value is not an integer")

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

func (that memoryItem) expired(now time.Time) bool {
	return !that.expiresAt.IsZero() && !now.Before(that.expiresAt)
}

// MemoryStorage is a process-local Store for single-instance deployments and tests.
// Each call is atomic on its own, the same guarantee redis gives per command.
type MemoryStorage struct {
	items map[string]memoryItem
	now   func() time.Time
	mu    sync.Mutex
}

func NewMemoryStorage() *MemoryStorage {
	return NewMemoryStorageWithClock(time.Now)
}

func NewMemoryStorageWithClock(now func() time.Time) *MemoryStorage {
	return &MemoryStorage{
		items: make(map[string]memoryItem),
		now:   now,
	}
}

// lookup must be called with mu held. Expired keys are evicted lazily.
func (that *MemoryStorage) lookup(key string) (memoryItem, bool) {
	item, ok := that.items[key]
	if !ok {
		return memoryItem{}, false
	}

	if item.expired(that.now()) {
		delete(that.items, key)
		return memoryItem{}, false
	}

	return item, true
}

func (that *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	item, ok := that.lookup(key)
	if !ok {
		return nil, ErrNotFound
	}

	value := make([]byte, len(item.value))
	copy(value, item.value)

	return value, nil
}

// Set overwrites the value and clears any expiry, like redis SET without options.
func (that *MemoryStorage) Set(_ context.Context, key string, value []byte) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	that.items[key] = memoryItem{value: stored}

	return nil
}

func (that *MemoryStorage) Delete(_ context.Context, key string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.items, key)

	return nil
}

func (that *MemoryStorage) IncrBy(_ context.Context, key string, n int64) (int64, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	var current int64

	item, ok := that.lookup(key)
	if ok {
		parsed, err := strconv.ParseInt(string(item.value), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrNotInteger, key)
		}
		current = parsed
	}

	current += n
	item.value = []byte(strconv.FormatInt(current, 10))
	that.items[key] = item

	return current, nil
}

// Expire is a no-op for absent keys, matching redis.
func (that *MemoryStorage) Expire(_ context.Context, key string, ttl time.Duration) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	item, ok := that.lookup(key)
	if !ok {
		return nil
	}

	if ttl <= 0 {
		delete(that.items, key)
		return nil
	}

	item.expiresAt = that.now().Add(ttl)
	that.items[key] = item

	return nil
}

func (that *MemoryStorage) Close() error {
	return nil
}
