package domain

import "time"

// ChatRequest represents a chat message addressed to a watsonx agent.
type ChatRequest struct {
	AgentID  string                 `json:"agentId"`
	Message  string                 `json:"message"`
	Files    []FileContext          `json:"files,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// FileContext is a file attached to a request for code-aware agents.
type FileContext struct {
	Path     string `json:"path"`
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

// ChatResponse represents the normalized outcome of a chat call.
// Failures are encoded in the value (Success=false) rather than returned as errors.
type ChatResponse struct {
	ID           string                 `json:"id,omitempty"`
	AgentID      string                 `json:"agentId"`
	Response     string                 `json:"response,omitempty"`
	ToolCalls    []ToolCall             `json:"toolCalls,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	Timestamp    time.Time              `json:"timestamp"`
	Success      bool                   `json:"success"`
	ErrorMessage string                 `json:"errorMessage,omitempty"`
}

// ToolCall represents a structured tool invocation reported by an agent.
// The generation endpoint never returns these today; the field is kept for
// interface compatibility with callers.
type ToolCall struct {
	ToolName   string                 `json:"toolName"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	Result     string                 `json:"result,omitempty"`
}

// Agent describes an available agent configuration.
type Agent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Health reports whether the remote provider is configured and reachable.
type Health struct {
	Configured    bool   `json:"configured"`
	SpaceID       string `json:"spaceId"`
	Endpoint      string `json:"endpoint"`
	Authenticated bool   `json:"authenticated"`
	Error         string `json:"error,omitempty"`
}

// ErrorResponse builds a failed ChatResponse preserving the agent id.
func ErrorResponse(agentID, message string) *ChatResponse {
	return &ChatResponse{
		AgentID:      agentID,
		Success:      false,
		ErrorMessage: message,
		Timestamp:    time.Now(),
	}
}
