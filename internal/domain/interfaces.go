package domain

import (
	"context"
	"time"
)

// TokenSource provides a valid bearer token for the remote provider.
type TokenSource interface {
	// Token returns a usable access token, refreshing it if needed.
	Token(ctx context.Context) (string, error)

	// Configured reports whether a credential is configured at all.
	Configured() bool
}

// Generator sends a prepared generation input to the remote provider.
type Generator interface {
	// Generate submits the input and returns the generated text.
	Generate(ctx context.Context, token, input string) (string, error)

	// SpaceID returns the configured deployment space identifier.
	SpaceID() string

	// Endpoint returns the generation endpoint base URL.
	Endpoint() string
}

// ResponseCache stores successful chat responses keyed by request content.
type ResponseCache interface {
	// Get retrieves a cached response for an identical prior request.
	Get(ctx context.Context, agentID, input string) (*ChatResponse, error)

	// Set stores a response in the cache.
	Set(ctx context.Context, agentID, input string, resp *ChatResponse, ttl time.Duration) error
}

// KeyValueStore is the storage backing a ResponseCache.
type KeyValueStore interface {
	// Fetch returns the payload stored under key.
	Fetch(ctx context.Context, key string) ([]byte, error)

	// Store writes a payload under key with a bounded lifetime.
	Store(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}
