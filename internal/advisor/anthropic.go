// storeops-mcp: AI-assisted MCP server for retail store remediation planning
// SPDX-License-Identifier: MIT
//
// Anthropic-compatible advisory backend.

package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-3-5-sonnet-20241022"
)

type anthropicBackend struct {
	name       string
	model      string
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewAnthropic builds an Anthropic messages-API backend.
func NewAnthropic(apiKey, model, baseURL string) (Backend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic api key required")
	}
	if model == "" {
		model = defaultAnthropicModel
	}
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	return &anthropicBackend{
		name:       "anthropic/" + model,
		model:      model,
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaultRatePerSecond), defaultBurst),
	}, nil
}

func (a *anthropicBackend) Name() string { return a.name }

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

type anthropicError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a *anthropicBackend) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	req := anthropicRequest{
		Model:       a.model,
		MaxTokens:   maxTokens,
		Temperature: 0.3,
		Messages:    []anthropicMessage{{Role: "user", Content: prompt}},
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", a.apiKey)
	httpReq.Header.Set("Anthropic-Version", "2023-06-01")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return "", retryable("anthropic request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("anthropic 429: %w", ErrRateLimited)
	}
	if resp.StatusCode >= 500 {
		return "", retryable("anthropic server error (%d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		var errResp anthropicError
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("anthropic error (%d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("anthropic error (%d)", resp.StatusCode)
	}

	var out anthropicResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(out.Content) == 0 {
		return "", fmt.Errorf("empty anthropic response")
	}
	return out.Content[0].Text, nil
}
