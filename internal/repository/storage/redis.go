package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStorage struct {
	Connection *redis.Client
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStorage - connects to redis and verifies the connection with PING.
func NewRedisStorage(ctx context.Context, opts RedisOptions) (*RedisStorage, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if _, err := conn.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStorage{Connection: conn}, nil
}

// NewRedisStorageFromClient - wraps an already connected client.
func NewRedisStorageFromClient(client *redis.Client) *RedisStorage {
	return &RedisStorage{Connection: client}
}

func (that *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := that.Connection.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, nil
}

func (that *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := that.Connection.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

func (that *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := that.Connection.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

func (that *RedisStorage) IncrBy(ctx context.Context, key string, n int64) (int64, error) {
	value, err := that.Connection.IncrBy(ctx, key, n).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", key, err)
	}

	return value, nil
}

func (that *RedisStorage) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := that.Connection.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("failed to expire %s: %w", key, err)
	}

	return nil
}

func (that *RedisStorage) Close() error {
	return that.Connection.Close()
}
