package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/sitegen/internal/core/domain"
)

// mockConversationService is a mock implementation of driving.ConversationService.
type mockConversationService struct {
	session  *domain.Session
	sessions []domain.Session
	files    []domain.CanonicalFile
	err      error
	startErr error

	started   int
	sentTo    string
	sent      string
	resetID   string
	filesFrom string
}

func (m *mockConversationService) Start(_ context.Context) (*domain.Session, error) {
	m.started++
	if m.startErr != nil {
		return nil, m.startErr
	}
	return &domain.Session{ID: "new-session"}, nil
}

func (m *mockConversationService) Send(_ context.Context, sessionID, prompt string) (*domain.Session, error) {
	m.sentTo = sessionID
	m.sent = prompt
	return m.session, m.err
}

func (m *mockConversationService) Reset(_ context.Context, sessionID string) (*domain.Session, error) {
	m.resetID = sessionID
	return m.session, m.err
}

func (m *mockConversationService) Get(_ context.Context, _ string) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockConversationService) List(_ context.Context) ([]domain.Session, error) {
	return m.sessions, m.err
}

func (m *mockConversationService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockConversationService) Files(_ context.Context, sessionID string) ([]domain.CanonicalFile, error) {
	m.filesFrom = sessionID
	return m.files, m.err
}

func (m *mockConversationService) Export(_ context.Context, _ string, _ io.Writer) error {
	return m.err
}
