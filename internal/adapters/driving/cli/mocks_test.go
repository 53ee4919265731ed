package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/custodia-labs/sitegen/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driving"
)

// mockConversationService keeps sessions in a map and answers prompts with
// a fixed reply and one file per prompt.
type mockConversationService struct {
	sessions map[string]*domain.Session
	order    []string
	sendErr  error
	exported []string
	prompts  []string
}

func newMockConversationService() *mockConversationService {
	return &mockConversationService{sessions: make(map[string]*domain.Session)}
}

func (m *mockConversationService) add(s *domain.Session) {
	m.sessions[s.ID] = s
	m.order = append(m.order, s.ID)
}

func (m *mockConversationService) Start(_ context.Context) (*domain.Session, error) {
	s := &domain.Session{ID: fmt.Sprintf("sess-%d", len(m.order)+1), UpdatedAt: time.Now()}
	m.add(s)
	return s, nil
}

func (m *mockConversationService) Send(_ context.Context, sessionID, prompt string) (*domain.Session, error) {
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.prompts = append(m.prompts, prompt)
	s.Transcript = append(s.Transcript, domain.Message{Role: domain.RoleUser, Content: prompt})
	if m.sendErr != nil {
		return s, m.sendErr
	}

	s.ConversationID = "chat-1"
	s.DemoURL = "https://demo.example/1"
	s.Transcript = append(s.Transcript, domain.Message{Role: domain.RoleAssistant, Content: "Reply to " + prompt})
	name := fmt.Sprintf("file%d.html", len(m.prompts))
	s.Reconciliation.Files.Upsert(domain.CanonicalFile{Name: name, Content: prompt, Type: "html", Size: len(prompt)})
	return s, nil
}

func (m *mockConversationService) Reset(_ context.Context, sessionID string) (*domain.Session, error) {
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.Reset()
	return s, nil
}

func (m *mockConversationService) Get(_ context.Context, sessionID string) (*domain.Session, error) {
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *mockConversationService) List(_ context.Context) ([]domain.Session, error) {
	out := make([]domain.Session, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if s, ok := m.sessions[m.order[i]]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *mockConversationService) Delete(_ context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

func (m *mockConversationService) Files(_ context.Context, sessionID string) ([]domain.CanonicalFile, error) {
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.Reconciliation.Files.Valid(), nil
}

func (m *mockConversationService) Export(_ context.Context, sessionID string, w io.Writer) error {
	s, ok := m.sessions[sessionID]
	if !ok {
		return domain.ErrNotFound
	}
	files := s.Reconciliation.Files.Valid()
	if len(files) == 0 {
		return domain.ErrNoFiles
	}
	m.exported = append(m.exported, sessionID)
	for _, f := range files {
		fmt.Fprintln(w, f.Name)
	}
	return nil
}

// mockRelay is a ChatRelay that is never expected to be called.
type mockRelay struct{}

func (mockRelay) CreateChat(_ context.Context, _ string) (*domain.Chat, error) {
	return nil, domain.ErrUpstream
}

func (mockRelay) SendMessage(_ context.Context, _, _ string) (*domain.Chat, error) {
	return nil, domain.ErrUpstream
}

// setupTestServices installs mocks and returns the mock conversation service
// and a cleanup function restoring the previous services.
func setupTestServices() (*mockConversationService, func()) {
	oldSettings := settings
	oldConfig := configStore
	oldConversation := conversationService
	oldRelayFactory := relayFactory
	oldConversationFactory := conversationFactory
	oldExportFileName := exportFileName

	conv := newMockConversationService()
	SetServices(Services{
		Settings:     domain.DefaultSettings(),
		Config:       memory.NewConfigStore(),
		Conversation: conv,
		RelayFactory: func(domain.Settings) (driving.ChatRelay, error) {
			return mockRelay{}, nil
		},
		ConversationFactory: func(string) driving.ConversationService {
			return conv
		},
	})

	return conv, func() {
		settings = oldSettings
		configStore = oldConfig
		conversationService = oldConversation
		relayFactory = oldRelayFactory
		conversationFactory = oldConversationFactory
		exportFileName = oldExportFileName
	}
}
