// Package redis adapts a Redis client to the domain key-value store used for
// response caching.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mindvex/watsonx-relay/internal/domain"
)

// Store implements domain.KeyValueStore on top of Redis.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis-backed store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Fetch returns the payload stored under key.
// A missing key maps to domain.ErrCacheMiss.
func (s *Store) Fetch(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

// Store writes a payload under key with a bounded lifetime.
func (s *Store) Store(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
