// Package watsonx provides the IAM token cache and the raw HTTP client for
// the watsonx.ai text generation API. The wire formats follow the published
// endpoints exactly; no SDK sits in between.
package watsonx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mindvex/watsonx-relay/internal/observability"
)

const (
	generationPath = "/ml/v1/text/generation?version=2023-05-29"

	modelID = "ibm/granite-3-8b-instruct"

	// Fixed generation parameters; not user-configurable.
	maxNewTokens      = 4096
	temperature       = 0.7
	topP              = 0.9
	repetitionPenalty = 1.1
)

// Client wraps the HTTP client for watsonx.ai generation calls.
// It implements domain.Generator.
type Client struct {
	endpoint   string
	spaceID    string
	httpClient *http.Client
}

// NewClient creates a new watsonx generation client.
func NewClient(config Config) *Client {
	return &Client{
		endpoint: config.Endpoint,
		spaceID:  config.SpaceID,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}
}

// SpaceID returns the configured deployment space identifier.
func (c *Client) SpaceID() string {
	return c.spaceID
}

// Endpoint returns the generation endpoint base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type generationRequest struct {
	Input      string               `json:"input"`
	ModelID    string               `json:"model_id"`
	SpaceID    string               `json:"space_id"`
	Parameters generationParameters `json:"parameters"`
}

type generationParameters struct {
	MaxNewTokens      int     `json:"max_new_tokens"`
	Temperature       float64 `json:"temperature"`
	TopP              float64 `json:"top_p"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
}

type generationResponse struct {
	Results []struct {
		// Pointer so a missing field is distinguishable from empty text.
		GeneratedText *string `json:"generated_text"`
	} `json:"results"`
}

// Generate submits the input to the generation endpoint and returns the
// generated text. A response whose shape is unexpected degrades to a textual
// fallback embedding the raw payload; only transport and status failures are
// returned as errors.
func (c *Client) Generate(ctx context.Context, token, input string) (string, error) {
	reqBody, err := json.Marshal(generationRequest{
		Input:   input,
		ModelID: modelID,
		SpaceID: c.spaceID,
		Parameters: generationParameters{
			MaxNewTokens:      maxNewTokens,
			Temperature:       temperature,
			TopP:              topP,
			RepetitionPenalty: repetitionPenalty,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint+generationPath,
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	return c.extractText(ctx, body), nil
}

// extractText pulls results[0].generated_text out of the payload, falling back
// to a best-effort textual response when the shape is unexpected.
func (c *Client) extractText(ctx context.Context, body []byte) string {
	var genResp generationResponse
	if err := json.Unmarshal(body, &genResp); err == nil &&
		len(genResp.Results) > 0 && genResp.Results[0].GeneratedText != nil {
		return *genResp.Results[0].GeneratedText
	}

	observability.FromContext(ctx).Warn("unexpected generation response structure",
		observability.Int("body_size", len(body)))

	return "Received response but could not parse it: " + string(body)
}
