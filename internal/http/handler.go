package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mindvex/watsonx-relay/internal/domain"
	"github.com/mindvex/watsonx-relay/internal/observability"
	"go.uber.org/zap"
)

// agentAliases maps convenience routes to their fixed agent ids.
// An alias always overrides any caller-supplied agent id.
//
//nolint:gochecknoglobals // Static route table, never mutated after init
var agentAliases = map[string]string{
	"analyze":      "codebase-analysis",
	"review":       "code-review",
	"document":     "documentation",
	"ask":          "qa-agent",
	"modify":       "code-modifier",
	"dependencies": "dependency-graph",
	"git-help":     "pushing-agent",
}

// Handler handles HTTP requests.
type Handler struct {
	gateway *domain.GatewayService
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(gateway *domain.GatewayService) *Handler {
	return &Handler{
		gateway: gateway,
	}
}

// HandleChat processes chat requests for an explicit agent id.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeChatRequest(w, r)
	if !ok {
		return
	}

	if req.AgentID == "" {
		http.Error(w, "agentId is required", http.StatusBadRequest)
		return
	}

	h.chat(w, r, req)
}

// HandleAlias returns a handler that pins the agent id before delegating to
// the shared chat path.
func (h *Handler) HandleAlias(alias string) http.HandlerFunc {
	agentID := agentAliases[alias]

	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := h.decodeChatRequest(w, r)
		if !ok {
			return
		}

		req.AgentID = agentID
		h.chat(w, r, req)
	}
}

// decodeChatRequest validates method, parses the body, and checks the message.
func (h *Handler) decodeChatRequest(w http.ResponseWriter, r *http.Request) (*domain.ChatRequest, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return nil, false
	}

	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return nil, false
	}

	return &req, true
}

// chat runs the gateway and writes the normalized response. The gateway never
// fails; error outcomes arrive as Success=false payloads with status 200.
func (h *Handler) chat(w http.ResponseWriter, r *http.Request, req *domain.ChatRequest) {
	ctx := observability.WithAgentID(r.Context(), req.AgentID)

	logger := observability.FromContext(ctx)
	logger.Info("chat request received",
		zap.String("agent_id", req.AgentID),
		zap.Int("files", len(req.Files)),
	)

	response := h.gateway.Chat(ctx, req)

	if response.Success {
		logger.Info("chat succeeded", zap.String("response_id", response.ID))
	} else {
		logger.Warn("chat failed", zap.String("error_message", response.ErrorMessage))
	}

	writeJSON(w, http.StatusOK, response)
}

// HandleAgents lists the available agents.
func (h *Handler) HandleAgents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.gateway.ListAgents())
}

// HandleHealth reports provider configuration and reachability.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.gateway.CheckHealth(r.Context()))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Status already written, nothing left to send the caller.
		return
	}
}
