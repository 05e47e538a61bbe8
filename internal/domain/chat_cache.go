package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mindvex/watsonx-relay/internal/observability"
)

// ChatCacheService implements exact-match response caching over a key-value store.
// The key is derived from the agent id and the fully built generation input, so
// two requests hit the same entry only when they would produce the same call.
type ChatCacheService struct {
	store KeyValueStore
}

// NewChatCacheService creates a new chat cache service.
func NewChatCacheService(store KeyValueStore) *ChatCacheService {
	return &ChatCacheService{
		store: store,
	}
}

// Get retrieves a cached response for an identical prior request.
func (s *ChatCacheService) Get(ctx context.Context, agentID, input string) (*ChatResponse, error) {
	logger := observability.FromContext(ctx)

	key := cacheKey(agentID, input)
	data, err := s.store.Fetch(ctx, key)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to fetch cached response: %w", err)
	}

	var resp ChatResponse
	if unmarshalErr := json.Unmarshal(data, &resp); unmarshalErr != nil {
		logger.Error("failed to unmarshal cached response",
			observability.Error(unmarshalErr),
			observability.String("cache_key", key))
		return nil, fmt.Errorf("failed to unmarshal cached response: %w", unmarshalErr)
	}

	return &resp, nil
}

// Set stores a response in the cache. Only successful responses are stored.
func (s *ChatCacheService) Set(
	ctx context.Context,
	agentID, input string,
	resp *ChatResponse,
	ttl time.Duration,
) error {
	if resp == nil {
		return errors.New("response cannot be nil")
	}

	if !resp.Success {
		return nil
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	key := cacheKey(agentID, input)
	if storeErr := s.store.Store(ctx, key, data, ttl); storeErr != nil {
		return fmt.Errorf("failed to store response: %w", storeErr)
	}

	observability.FromContext(ctx).Debug("response cached",
		observability.String("cache_key", key),
		observability.Int("data_size", len(data)))
	return nil
}

// cacheKey creates a unique cache key from agent id and generation input.
func cacheKey(agentID, input string) string {
	hash := sha256.Sum256([]byte(agentID + "\x00" + input))
	return fmt.Sprintf("chat:%s", hex.EncodeToString(hash[:]))
}
