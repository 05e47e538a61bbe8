package main

import (
	"log"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	redisstore "github.com/mindvex/watsonx-relay/internal/cache/redis"
	"github.com/mindvex/watsonx-relay/internal/config"
	"github.com/mindvex/watsonx-relay/internal/domain"
	"github.com/mindvex/watsonx-relay/internal/http"
	"github.com/mindvex/watsonx-relay/internal/http/middleware"
	"github.com/mindvex/watsonx-relay/internal/observability"
	"github.com/mindvex/watsonx-relay/internal/provider/watsonx"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(func() domain.EventPublisher {
		return observability.NewEventBus(slog.Default())
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Watsonx provider
	if err := container.Provide(func(cfg *watsonx.Config) domain.TokenSource {
		return watsonx.NewTokenCache(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide token cache: %v", err)
	}
	if err := container.Provide(func(cfg *watsonx.Config) domain.Generator {
		return watsonx.NewClient(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide watsonx client: %v", err)
	}

	// Response cache (optional, enabled when REDIS_ADDR is set)
	if err := container.Provide(func(cfg *config.CacheConfig) domain.ResponseCache {
		if cfg.Addr == "" {
			return nil
		}

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})

		return domain.NewChatCacheService(redisstore.NewStore(client))
	}); err != nil {
		log.Fatalf("Failed to provide response cache: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewGatewayService); err != nil {
		log.Fatalf("Failed to provide gateway service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
