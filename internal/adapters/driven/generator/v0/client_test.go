package v0

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitegen/internal/core/domain"
)

const chatJSON = `{
	"id": "chat-123",
	"object": "chat",
	"name": "Responsive navbar",
	"createdAt": "2026-10-01T12:00:00Z",
	"webUrl": "https://v0.dev/chat/chat-123",
	"latestVersion": {
		"id": "ver-1",
		"status": "completed",
		"demoUrl": "https://demo.vusercontent.net/abc",
		"files": [
			{"object": "file", "name": "app/page.tsx", "content": "export default 1", "locked": false}
		]
	},
	"messages": [
		{"id": "m-1", "role": "user", "content": "make a navbar", "createdAt": "2026-10-01T12:00:00Z"},
		{"id": "m-2", "role": "assistant", "content": "Here it is", "createdAt": "2026-10-01T12:00:05Z"}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{APIKey: "v0-test-key", BaseURL: srv.URL + "/", RateLimit: 1000})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{APIKey: "  "})
	assert.ErrorIs(t, err, domain.ErrCredentialMissing)
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{APIKey: "k"})
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultTimeout, client.client.Timeout)
}

func TestClient_CreateChat(t *testing.T) {
	var gotPath, gotAuth, gotContentType string
	var gotBody map[string]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatJSON))
	})

	chat, err := client.CreateChat(context.Background(), "make a navbar")
	require.NoError(t, err)

	assert.Equal(t, "POST /chats", gotPath)
	assert.Equal(t, "Bearer v0-test-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]string{"message": "make a navbar"}, gotBody)

	assert.Equal(t, "chat-123", chat.ID)
	assert.Equal(t, "Responsive navbar", chat.Name)
	require.NotNil(t, chat.LatestVersion)
	assert.Equal(t, "completed", chat.LatestVersion.Status)
	require.Len(t, chat.LatestVersion.Files, 1)
	assert.Equal(t, "app/page.tsx", chat.LatestVersion.Files[0].Name)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, "assistant", chat.Messages[1].Role)
}

func TestClient_SendMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(chatJSON))
	})

	chat, err := client.SendMessage(context.Background(), "chat 123", "make it blue")
	require.NoError(t, err)

	assert.Equal(t, "/chats/chat%20123/messages", gotPath)
	assert.Equal(t, "make it blue", gotBody["message"])
	assert.Equal(t, "chat-123", chat.ID)
}

func TestClient_NoLatestVersion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": "chat-1", "name": "Pending"}`))
	})

	chat, err := client.CreateChat(context.Background(), "hello")
	require.NoError(t, err)
	assert.Nil(t, chat.LatestVersion)
}

func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"nested error", http.StatusUnauthorized, `{"error": {"message": "Invalid API key", "type": "unauthorized_error"}}`, "Invalid API key"},
		{"string error", http.StatusBadRequest, `{"error": "message is required"}`, "message is required"},
		{"message field", http.StatusInternalServerError, `{"message": "internal failure"}`, "internal failure"},
		{"plain text", http.StatusBadGateway, "bad gateway", "bad gateway"},
		{"empty body", http.StatusServiceUnavailable, "", "empty response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.CreateChat(context.Background(), "hello")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUpstream)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), strconv.Itoa(tt.status))
		})
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	})

	_, err := client.CreateChat(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestClient_RateLimited(t *testing.T) {
	reset := time.Now().Add(time.Minute).Unix()
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderRateRemaining, "0")
		w.Header().Set(HeaderRateLimit, "100")
		w.Header().Set(HeaderRateReset, strconv.FormatInt(reset, 10))
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.CreateChat(context.Background(), "hello")
	require.Error(t, err)

	var rlErr *RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, 100, rlErr.Limit)
	assert.Equal(t, reset, rlErr.ResetAt.Unix())
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestClient_DoesNotRetry(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.CreateChat(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestClient_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL, RateLimit: 1000})
	require.NoError(t, err)

	_, err = client.CreateChat(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestClient_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chatJSON))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.CreateChat(ctx, "hello")
	assert.Error(t, err)
}
