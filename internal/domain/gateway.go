package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mindvex/watsonx-relay/internal/observability"
)

const responseCacheTTL = 1 * time.Hour

// GatewayService orchestrates chat requests against the watsonx provider.
// Its public boundary never returns an error: every failure is normalized
// into a ChatResponse with Success=false.
type GatewayService struct {
	tokens    TokenSource
	generator Generator
	cache     ResponseCache
	events    EventPublisher
}

// NewGatewayService creates a new gateway service (DI constructor).
func NewGatewayService(
	tokens TokenSource,
	generator Generator,
	cache ResponseCache,
	events EventPublisher,
) *GatewayService {
	return &GatewayService{
		tokens:    tokens,
		generator: generator,
		cache:     cache,
		events:    events,
	}
}

// Chat sends a request to a watsonx agent and normalizes the outcome.
func (g *GatewayService) Chat(ctx context.Context, req *ChatRequest) *ChatResponse {
	if req == nil {
		return ErrorResponse("", "request cannot be nil")
	}

	ctx = observability.WithAgentID(ctx, req.AgentID)
	logger := observability.FromContext(ctx)
	logger.Info("sending chat to agent")

	if req.Message == "" {
		return g.fail(ctx, req.AgentID, "message cannot be empty")
	}

	token, err := g.tokens.Token(ctx)
	if err != nil {
		logger.Error("token fetch failed", observability.Error(err))
		return g.fail(ctx, req.AgentID, err.Error())
	}

	input := BuildInput(req)

	if cached := g.cachedResponse(ctx, req.AgentID, input); cached != nil {
		return cached
	}

	text, err := g.generator.Generate(ctx, token, input)
	if err != nil {
		logger.Error("generation call failed", observability.Error(err))
		return g.fail(ctx, req.AgentID, err.Error())
	}

	resp := &ChatResponse{
		ID:        uuid.New().String(),
		AgentID:   req.AgentID,
		Response:  text,
		Success:   true,
		Timestamp: time.Now(),
	}

	if g.cache != nil {
		if setErr := g.cache.Set(ctx, req.AgentID, input, resp, responseCacheTTL); setErr != nil {
			logger.Warn("failed to store response in cache", observability.Error(setErr))
		}
	}

	if g.events != nil {
		g.events.Publish(ctx, "chat_completed", map[string]interface{}{
			"agent_id":    req.AgentID,
			"response_id": resp.ID,
		})
	}

	return resp
}

// cachedResponse returns a prior response for an identical request, or nil.
func (g *GatewayService) cachedResponse(ctx context.Context, agentID, input string) *ChatResponse {
	if g.cache == nil {
		return nil
	}

	logger := observability.FromContext(ctx)

	cached, err := g.cache.Get(ctx, agentID, input)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.Warn("cache get failed, continuing without cache", observability.Error(err))
		}
		return nil
	}

	logger.Info("cache hit, returning cached response",
		observability.String("response_id", cached.ID))
	return cached
}

func (g *GatewayService) fail(ctx context.Context, agentID, message string) *ChatResponse {
	if g.events != nil {
		g.events.Publish(ctx, "chat_failed", map[string]interface{}{
			"agent_id": agentID,
			"error":    message,
		})
	}
	return ErrorResponse(agentID, message)
}

// ListAgents returns the available agent configurations in a stable order.
func (g *GatewayService) ListAgents() []Agent {
	agents := make([]Agent, len(knownAgents))
	copy(agents, knownAgents)
	return agents
}

// CheckHealth reports whether the provider is configured and reachable.
// It attempts a token fetch and never returns an error.
func (g *GatewayService) CheckHealth(ctx context.Context) *Health {
	health := &Health{
		Configured: g.tokens.Configured(),
		SpaceID:    g.generator.SpaceID(),
		Endpoint:   g.generator.Endpoint(),
	}

	if _, err := g.tokens.Token(ctx); err != nil {
		health.Authenticated = false
		health.Error = err.Error()
		return health
	}

	health.Authenticated = true
	return health
}
