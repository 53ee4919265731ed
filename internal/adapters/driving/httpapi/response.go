package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/sitegen/internal/core/domain"
)

// timestampLayout matches JavaScript's Date.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z"

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Success   bool         `json:"success"`
	Data      *domain.Chat `json:"data"`
	Timestamp string       `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type notFoundResponse struct {
	Error              string   `json:"error"`
	AvailableEndpoints []string `json:"availableEndpoints"`
}

type createChatRequest struct {
	Message string `json:"message"`
}

type sendMessageRequest struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody decodes a JSON body into dst. An unreadable body leaves dst
// at its zero value so that field validation reports what is missing.
func decodeBody(body io.Reader, dst any) {
	_ = json.NewDecoder(body).Decode(dst)
}

func timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
