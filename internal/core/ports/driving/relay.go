package driving

import (
	"context"

	"github.com/custodia-labs/sitegen/internal/core/domain"
)

// ChatRelay forwards prompts to the generation service and reshapes the
// results. It holds no state between calls.
type ChatRelay interface {
	// CreateChat starts a conversation.
	// Returns domain.ErrValidation when message is blank and
	// domain.ErrUpstream when the generation service fails.
	CreateChat(ctx context.Context, message string) (*domain.Chat, error)

	// SendMessage continues a conversation.
	// Returns domain.ErrValidation when chatID or message is blank.
	SendMessage(ctx context.Context, chatID, message string) (*domain.Chat, error)
}
