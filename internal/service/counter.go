package service

import (
	"context"
	"fmt"
)

// CounterService is the shared click counter backed by the store's atomic increment.
type CounterService interface {
	Get(ctx context.Context) (int64, error)
	Increment(ctx context.Context) (int64, error)
	Decrement(ctx context.Context) (int64, error)
}

type counterRepo interface {
	Get(ctx context.Context) (int64, error)
	IncrBy(ctx context.Context, n int64) (int64, error)
}

type counterService struct {
	counterRepo counterRepo
}

func NewCounterService(counterRepo counterRepo) CounterService {
	return &counterService{
		counterRepo: counterRepo,
	}
}

func (that *counterService) Get(ctx context.Context) (int64, error) {
	count, err := that.counterRepo.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get count: %w", err)
	}

	return count, nil
}

func (that *counterService) Increment(ctx context.Context) (int64, error) {
	count, err := that.counterRepo.IncrBy(ctx, 1)
	if err != nil {
		return 0, fmt.Errorf("failed to increment count: %w", err)
	}

	return count, nil
}

func (that *counterService) Decrement(ctx context.Context) (int64, error) {
	count, err := that.counterRepo.IncrBy(ctx, -1)
	if err != nil {
		return 0, fmt.Errorf("failed to decrement count: %w", err)
	}

	return count, nil
}
