package domain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mindvex/watsonx-relay/internal/domain"
)

// fakeStore is an in-memory KeyValueStore for testing.
type fakeStore struct {
	data     map[string][]byte
	fetchErr error
	storeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (f *fakeStore) Fetch(_ context.Context, key string) ([]byte, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	data, ok := f.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return data, nil
}

func (f *fakeStore) Store(_ context.Context, key string, data []byte, _ time.Duration) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.data[key] = data
	return nil
}

func TestChatCacheService(t *testing.T) {
	t.Run("should round-trip a successful response", func(t *testing.T) {
		store := newFakeStore()
		cache := domain.NewChatCacheService(store)

		resp := &domain.ChatResponse{
			ID:        "resp-1",
			AgentID:   "qa-agent",
			Response:  "Hello",
			Success:   true,
			Timestamp: time.Now().UTC(),
		}

		err := cache.Set(context.Background(), "qa-agent", "input", resp, time.Hour)
		require.NoError(t, err)

		got, err := cache.Get(context.Background(), "qa-agent", "input")
		require.NoError(t, err)
		require.Equal(t, "resp-1", got.ID)
		require.Equal(t, "Hello", got.Response)
		require.True(t, got.Success)
	})

	t.Run("should miss for a different agent or input", func(t *testing.T) {
		store := newFakeStore()
		cache := domain.NewChatCacheService(store)

		resp := &domain.ChatResponse{ID: "resp-1", AgentID: "qa-agent", Success: true}
		require.NoError(t, cache.Set(context.Background(), "qa-agent", "input", resp, time.Hour))

		_, err := cache.Get(context.Background(), "qa-agent", "other input")
		require.ErrorIs(t, err, domain.ErrCacheMiss)

		_, err = cache.Get(context.Background(), "code-review", "input")
		require.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("should not store failed responses", func(t *testing.T) {
		store := newFakeStore()
		cache := domain.NewChatCacheService(store)

		resp := domain.ErrorResponse("qa-agent", "boom")
		require.NoError(t, cache.Set(context.Background(), "qa-agent", "input", resp, time.Hour))

		require.Empty(t, store.data)
	})

	t.Run("should reject nil response", func(t *testing.T) {
		cache := domain.NewChatCacheService(newFakeStore())

		err := cache.Set(context.Background(), "qa-agent", "input", nil, time.Hour)
		require.Error(t, err)
	})

	t.Run("should wrap store failures", func(t *testing.T) {
		store := newFakeStore()
		store.fetchErr = errors.New("redis down")
		cache := domain.NewChatCacheService(store)

		_, err := cache.Get(context.Background(), "qa-agent", "input")
		require.Error(t, err)
		require.NotErrorIs(t, err, domain.ErrCacheMiss)
	})
}
