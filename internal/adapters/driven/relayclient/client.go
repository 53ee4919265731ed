// Package relayclient reaches a running relay server over HTTP.
package relayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.ChatGateway = (*Client)(nil)

// DefaultTimeout bounds each relay request. Generation is slow.
const DefaultTimeout = 5 * time.Minute

// Client calls the relay's /api endpoints.
type Client struct {
	client  *http.Client
	baseURL string
}

// Health is the relay health response.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// chatRequest is the body of both chat endpoints.
type chatRequest struct {
	ChatID  string `json:"chatId,omitempty"`
	Message string `json:"message"`
}

// envelope covers success and error bodies.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Details string          `json:"details,omitempty"`
}

// New creates a relay client for baseURL. A nil httpClient uses one with
// DefaultTimeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if baseURL == "" {
		baseURL = domain.DefaultRelayURL
	}
	return &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the relay base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateChat posts to /api/chat.
func (c *Client) CreateChat(ctx context.Context, message string) (*domain.Chat, error) {
	return c.postChat(ctx, "/api/chat", chatRequest{Message: message})
}

// SendMessage posts to /api/chat/send.
func (c *Client) SendMessage(ctx context.Context, chatID, message string) (*domain.Chat, error) {
	return c.postChat(ctx, "/api/chat/send", chatRequest{ChatID: chatID, Message: message})
}

// Health calls /api/health.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("relay health returned status %d", resp.StatusCode)
	}

	var health Health
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return &health, nil
}

func (c *Client) postChat(ctx context.Context, path string, body chatRequest) (*domain.Chat, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: relay unreachable: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrUpstream, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: relay returned status %d: %s",
			domain.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, env.Error)
	case resp.StatusCode != http.StatusOK || !env.Success:
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstream, env.message(resp.StatusCode))
	}

	var chat domain.Chat
	if err := json.Unmarshal(env.Data, &chat); err != nil {
		return nil, fmt.Errorf("%w: decode chat: %w", domain.ErrUpstream, err)
	}
	return &chat, nil
}

func (e envelope) message(status int) string {
	msg := e.Error
	if msg == "" {
		msg = fmt.Sprintf("relay returned status %d", status)
	}
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return msg
}
