package repository

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockStore struct {
	mock.Mock
}

func (that *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := that.Called(ctx, key)
	return args.Get(0).([]byte), args.Error(1)
}

func (that *mockStore) Set(ctx context.Context, key string, value []byte) error {
	return that.Called(ctx, key, value).Error(0)
}

func (that *mockStore) Delete(ctx context.Context, key string) error {
	return that.Called(ctx, key).Error(0)
}

func (that *mockStore) IncrBy(ctx context.Context, key string, n int64) (int64, error) {
	args := that.Called(ctx, key, n)
	return args.Get(0).(int64), args.Error(1)
}

func (that *mockStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return that.Called(ctx, key, ttl).Error(0)
}

func (that *mockStore) Close() error {
	return nil
}
