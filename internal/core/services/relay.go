package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driven"
	"github.com/custodia-labs/sitegen/internal/core/ports/driving"
	"github.com/custodia-labs/sitegen/internal/logger"
)

// Ensure RelayService implements the interfaces.
var (
	_ driving.ChatRelay  = (*RelayService)(nil)
	_ driven.ChatGateway = (*RelayService)(nil)
)

// RelayService forwards prompts to the generation service and reshapes its
// chats for clients. It keeps no state between calls.
type RelayService struct {
	generator driven.GenerationService
}

// NewRelayService creates a relay service. A nil generator means no
// credential is configured; every chat operation then fails with
// domain.ErrCredentialMissing without calling upstream.
func NewRelayService(generator driven.GenerationService) *RelayService {
	return &RelayService{generator: generator}
}

// CreateChat starts a conversation with an initial prompt.
func (s *RelayService) CreateChat(ctx context.Context, message string) (*domain.Chat, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}
	if s.generator == nil {
		return nil, domain.ErrCredentialMissing
	}

	logger.Debug("relay: creating chat (%d chars)", len(message))
	chat, err := s.generator.CreateChat(ctx, message)
	if err != nil {
		return nil, upstreamError(err)
	}
	logger.Debug("relay: chat %s created", chat.ID)

	return ReshapeChat(chat), nil
}

// SendMessage continues an existing conversation.
func (s *RelayService) SendMessage(ctx context.Context, chatID, message string) (*domain.Chat, error) {
	if strings.TrimSpace(chatID) == "" || strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: chat ID and message are required", domain.ErrValidation)
	}
	if s.generator == nil {
		return nil, domain.ErrCredentialMissing
	}

	logger.Debug("relay: sending message to chat %s", chatID)
	chat, err := s.generator.SendMessage(ctx, chatID, message)
	if err != nil {
		return nil, upstreamError(err)
	}

	return ReshapeChat(chat), nil
}

// upstreamError wraps err with domain.ErrUpstream unless it already is one.
func upstreamError(err error) error {
	if errors.Is(err, domain.ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
}

// ReshapeChat converts a generation service chat into the relay's response
// shape. Files and messages are never nil; demo URL and status come from the
// latest version when there is one.
func ReshapeChat(chat *domain.GeneratedChat) *domain.Chat {
	if chat == nil {
		return &domain.Chat{
			Files:    []domain.RawFileRecord{},
			Messages: []domain.Message{},
			Status:   domain.StatusUnknown,
		}
	}

	title := chat.Title
	if title == "" {
		title = chat.Name
	}

	out := &domain.Chat{
		ChatID:    chat.ID,
		Title:     title,
		CreatedAt: chat.CreatedAt,
		WebURL:    chat.WebURL,
		Files:     []domain.RawFileRecord{},
		Messages:  make([]domain.Message, 0, len(chat.Messages)),
		Status:    domain.StatusUnknown,
	}

	if v := chat.LatestVersion; v != nil {
		out.DemoURL = v.DemoURL
		if v.Status != "" {
			out.Status = v.Status
		}
		for _, f := range v.Files {
			out.Files = append(out.Files, domain.RawFileRecord{
				Name:    f.Name,
				Content: f.Content,
				Type:    fileExtension(f.Name),
				Size:    domain.ContentLength(f.Content),
			})
		}
	}

	for _, m := range chat.Messages {
		out.Messages = append(out.Messages, domain.Message{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	out.IsCompleted = out.Status == domain.StatusCompleted
	return out
}

// fileExtension returns the text after the last dot of name as-is, the whole
// name when there is no dot, or "unknown" when that is empty.
func fileExtension(name string) string {
	ext := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = name[i+1:]
	}
	if ext == "" {
		return "unknown"
	}
	return ext
}
