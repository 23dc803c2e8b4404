package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository/storage"
)

type CounterRepository interface {
	Get(ctx context.Context) (int64, error)
	IncrBy(ctx context.Context, n int64) (int64, error)
}

type dbCounter struct {
	store storage.Store
}

func NewCounterRepository(store storage.Store) CounterRepository {
	return &dbCounter{
		store: store,
	}
}

// Get - an absent or unparsable counter reads as 0.
func (that *dbCounter) Get(ctx context.Context) (int64, error) {
	raw, err := that.store.Get(ctx, counterKey)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get counter: %w", err)
	}

	count, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, nil //nolint: nilerr // a corrupt counter is treated as unset
	}

	return count, nil
}

func (that *dbCounter) IncrBy(ctx context.Context, n int64) (int64, error) {
	count, err := that.store.IncrBy(ctx, counterKey, n)
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}

	return count, nil
}
