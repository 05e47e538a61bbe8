package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mindvex/watsonx-relay/internal/config"
	"github.com/mindvex/watsonx-relay/internal/http/middleware"
	"github.com/mindvex/watsonx-relay/internal/observability"
)

// Server represents the HTTP server.
type Server struct {
	config      config.ServerConfig
	handler     *Handler
	middlewares middleware.Middleware
	srv         *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg *config.Config,
	handler *Handler,
	middlewares middleware.Middleware,
) *Server {
	return &Server{
		config:      cfg.Server,
		handler:     handler,
		middlewares: middlewares,
		srv:         nil,
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Agent routes.
	mux.HandleFunc("/api/watsonx/chat", s.handler.HandleChat)
	mux.HandleFunc("/api/watsonx/agents", s.handler.HandleAgents)
	mux.HandleFunc("/api/watsonx/health", s.handler.HandleHealth)

	// Convenience routes pinning a fixed agent id.
	for alias := range agentAliases {
		mux.HandleFunc("/api/watsonx/"+alias, s.handler.HandleAlias(alias))
	}

	// Tool callbacks for the remote agent platform.
	mux.HandleFunc("/api/watsonx/tools/read-file", s.handler.HandleReadFile)
	mux.HandleFunc("/api/watsonx/tools/write-file", s.handler.HandleWriteFile)
	mux.HandleFunc("/api/watsonx/tools/list-files", s.handler.HandleListFiles)
	mux.HandleFunc("/api/watsonx/tools/analyze-file", s.handler.HandleAnalyzeFile)
	mux.HandleFunc("/api/watsonx/tools/git-status", s.handler.HandleGitStatus)
	mux.HandleFunc("/api/watsonx/tools/git-commit", s.handler.HandleGitCommit)
	mux.HandleFunc("/api/watsonx/tools/git-push", s.handler.HandleGitPush)
	mux.HandleFunc("/api/watsonx/tools/search-code", s.handler.HandleSearchCode)

	// Apply middleware chain.
	handlerWithMiddleware := s.middlewares(mux)

	// Create server with timeouts.
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      handlerWithMiddleware,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
	}

	ctx := context.Background()
	observability.FromContext(ctx).Info("starting HTTP server", observability.Int("port", s.config.Port))

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down HTTP server")

	if s.srv == nil {
		return nil
	}

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
