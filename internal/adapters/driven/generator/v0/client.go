// Package v0 provides a GenerationService adapter for the v0 Platform API.
package v0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driven"
	"github.com/custodia-labs/sitegen/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.GenerationService = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = domain.DefaultAPIBaseURL
	DefaultTimeout = 5 * time.Minute
)

// Config holds configuration for the v0 client.
type Config struct {
	// APIKey is the v0 API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.v0.dev/v1).
	BaseURL string

	// Timeout bounds each request (default: 5m). Generation is slow.
	Timeout time.Duration

	// RateLimit is the proactive throttle in requests per second (default: 1).
	RateLimit float64

	// HTTPClient overrides the HTTP client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client calls the v0 Platform API. It holds no conversation state and
// makes exactly one request per call.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	limiter *RateLimiter
}

// messageRequest is the body of both create and follow-up calls.
type messageRequest struct {
	Message string `json:"message"`
}

// errorResponse covers the error bodies the API returns.
type errorResponse struct {
	Error   json.RawMessage `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// NewClient creates a new v0 client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("v0: %w", domain.ErrCredentialMissing)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		limiter: NewRateLimiter(cfg.RateLimit),
	}, nil
}

// CreateChat starts a chat with an initial message.
func (c *Client) CreateChat(ctx context.Context, message string) (*domain.GeneratedChat, error) {
	return c.post(ctx, "/chats", message)
}

// SendMessage sends a follow-up message to an existing chat.
func (c *Client) SendMessage(ctx context.Context, chatID, message string) (*domain.GeneratedChat, error) {
	return c.post(ctx, "/chats/"+url.PathEscape(chatID)+"/messages", message)
}

func (c *Client) post(ctx context.Context, path, message string) (*domain.GeneratedChat, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	jsonBody, err := json.Marshal(messageRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	logger.Debug("v0: POST %s -> %d (%s)", path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if err := c.limiter.CheckRateLimit(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: v0 error (status %d): %s", domain.ErrUpstream, resp.StatusCode, errorMessage(body))
	}

	var chat domain.GeneratedChat
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrUpstream, err)
	}
	return &chat, nil
}

// errorMessage extracts a readable message from an error body, which may be
// {"error": {"message": ...}}, {"error": "..."}, {"message": ...} or text.
func errorMessage(body []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil {
		if len(resp.Error) > 0 {
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(resp.Error, &nested) == nil && nested.Message != "" {
				return nested.Message
			}
			var text string
			if json.Unmarshal(resp.Error, &text) == nil && text != "" {
				return text
			}
		}
		if resp.Message != "" {
			return resp.Message
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "empty response"
	}
	return text
}
