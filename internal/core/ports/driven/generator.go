package driven

import (
	"context"

	"github.com/custodia-labs/sitegen/internal/core/domain"
)

// GenerationService is the remote website-generation service.
// Each call is one blocking round-trip; implementations must not retry.
type GenerationService interface {
	// CreateChat starts a conversation with an initial prompt.
	CreateChat(ctx context.Context, message string) (*domain.GeneratedChat, error)

	// SendMessage continues an existing conversation.
	SendMessage(ctx context.Context, chatID, message string) (*domain.GeneratedChat, error)
}

// ChatGateway reaches the relay and returns reshaped chats.
// The relay service itself satisfies it, as does the HTTP relay client.
type ChatGateway interface {
	// CreateChat starts a conversation with an initial prompt.
	CreateChat(ctx context.Context, message string) (*domain.Chat, error)

	// SendMessage continues an existing conversation.
	SendMessage(ctx context.Context, chatID, message string) (*domain.Chat, error)
}
