package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driven"
	"github.com/custodia-labs/sitegen/internal/core/ports/driving"
	"github.com/custodia-labs/sitegen/internal/logger"
)

// Ensure ConversationService implements the interface.
var _ driving.ConversationService = (*ConversationService)(nil)

// fallbackReply is recorded when a follow-up response carries no assistant text.
const fallbackReply = "Message received"

// ConversationService manages client-side sessions against a chat gateway.
type ConversationService struct {
	gateway    driven.ChatGateway
	store      driven.SessionStore
	reconciler *ReconcileService
	exporter   driven.ProjectExporter
	now        func() time.Time
}

// NewConversationService creates a new conversation service.
func NewConversationService(
	gateway driven.ChatGateway,
	store driven.SessionStore,
	normaliser driven.FileNormaliser,
	exporter driven.ProjectExporter,
) *ConversationService {
	return &ConversationService{
		gateway:    gateway,
		store:      store,
		reconciler: NewReconcileService(normaliser),
		exporter:   exporter,
		now:        time.Now,
	}
}

// Start creates an empty session.
func (s *ConversationService) Start(ctx context.Context) (*domain.Session, error) {
	now := s.now()
	session := &domain.Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	logger.Debug("conversation: started session %s", session.ID)
	return session, nil
}

// Send submits a prompt within a session. Without a conversation the prompt
// creates one; otherwise it is sent as a follow-up. On failure the user
// message stays in the transcript and the session is saved.
func (s *ConversationService) Send(ctx context.Context, sessionID, prompt string) (*domain.Session, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrInvalidInput)
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Transcript = append(session.Transcript, s.message(domain.RoleUser, prompt))

	creating := session.State() == domain.NoConversation
	var chat *domain.Chat
	if creating {
		chat, err = s.gateway.CreateChat(ctx, prompt)
	} else {
		chat, err = s.gateway.SendMessage(ctx, session.ConversationID, prompt)
	}
	if err != nil {
		session.UpdatedAt = s.now()
		if saveErr := s.store.Save(ctx, session); saveErr != nil {
			logger.Warn("conversation: failed to save session %s: %v", session.ID, saveErr)
		}
		return session, upstreamError(err)
	}
	if chat == nil {
		chat = &domain.Chat{}
	}

	var reply string
	if creating {
		session.ConversationID = chat.ChatID
		reply = "Created: " + chat.Title
	} else {
		reply = chat.LastAssistantMessage()
		if reply == "" {
			reply = fallbackReply
		}
	}
	session.Transcript = append(session.Transcript, s.message(domain.RoleAssistant, reply))

	if chat.Title != "" {
		session.Title = chat.Title
	}
	if chat.DemoURL != "" {
		session.DemoURL = chat.DemoURL
	}
	if chat.WebURL != "" {
		session.WebURL = chat.WebURL
	}
	if chat.Status != "" {
		session.Status = chat.Status
	}

	session.Reconciliation, _ = s.reconciler.Apply(session.Reconciliation, chat.Files)
	session.UpdatedAt = s.now()

	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Reset discards the session's conversation, transcript and files.
func (s *ConversationService) Reset(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Reset()
	session.UpdatedAt = s.now()
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Get retrieves a session.
func (s *ConversationService) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.store.Get(ctx, sessionID)
}

// List returns all sessions, most recently updated first.
func (s *ConversationService) List(ctx context.Context) ([]domain.Session, error) {
	return s.store.List(ctx)
}

// Delete removes a session.
func (s *ConversationService) Delete(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// Files returns the session's valid files in collection order.
func (s *ConversationService) Files(ctx context.Context, sessionID string) ([]domain.CanonicalFile, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Reconciliation.Files.Valid(), nil
}

// Export writes the session's valid files as an archive.
func (s *ConversationService) Export(ctx context.Context, sessionID string, w io.Writer) error {
	if s.exporter == nil {
		return fmt.Errorf("%w: no exporter configured", domain.ErrInvalidInput)
	}
	files, err := s.Files(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return domain.ErrNoFiles
	}
	if err := s.exporter.Export(w, files); err != nil {
		return fmt.Errorf("export session %s: %w", sessionID, err)
	}
	logger.Debug("conversation: exported %d files from session %s", len(files), sessionID)
	return nil
}

func (s *ConversationService) message(role, content string) domain.Message {
	return domain.Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		CreatedAt: s.now(),
	}
}
