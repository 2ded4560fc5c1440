// Package prefs is a thin typed layer over redis for per-user
// preferences and short-lived cached values. Consumers get the Store
// interface injected, the redis implementation is the only production
// one.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrNotFound = errors.New("preference not found")

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type RedisStore struct {
	redisClient *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	cmd := s.redisClient.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("prefs get %s: %w", key, err)
	}
	return cmd.Val(), nil
}

// Set stores a value, ttl 0 keeps it forever.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.redisClient.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("prefs set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Del(ctx context.Context, key string) error {
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("prefs del %s: %w", key, err)
	}
	return nil
}
