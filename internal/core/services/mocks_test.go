package services

import (
	"context"
	"io"
	"sync"

	"github.com/custodia-labs/sitegen/internal/core/domain"
)

// mockGenerator is a scripted GenerationService.
type mockGenerator struct {
	mu sync.Mutex

	createChat  *domain.GeneratedChat
	createErr   error
	sendChat    *domain.GeneratedChat
	sendErr     error
	createCalls []string
	sendCalls   [][2]string
}

func (m *mockGenerator) CreateChat(_ context.Context, message string) (*domain.GeneratedChat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls = append(m.createCalls, message)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.createChat, nil
}

func (m *mockGenerator) SendMessage(_ context.Context, chatID, message string) (*domain.GeneratedChat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendCalls = append(m.sendCalls, [2]string{chatID, message})
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	return m.sendChat, nil
}

// mockGateway is a scripted ChatGateway returning reshaped chats directly.
type mockGateway struct {
	createChat  *domain.Chat
	createErr   error
	sendChats   []*domain.Chat
	sendErr     error
	createCalls []string
	sendCalls   [][2]string
}

func (m *mockGateway) CreateChat(_ context.Context, message string) (*domain.Chat, error) {
	m.createCalls = append(m.createCalls, message)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.createChat, nil
}

func (m *mockGateway) SendMessage(_ context.Context, chatID, message string) (*domain.Chat, error) {
	m.sendCalls = append(m.sendCalls, [2]string{chatID, message})
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	if len(m.sendChats) == 0 {
		return &domain.Chat{ChatID: chatID}, nil
	}
	chat := m.sendChats[0]
	m.sendChats = m.sendChats[1:]
	return chat, nil
}

// mockSessionStore is an in-memory SessionStore that copies on the way in
// and out, like a real store would.
type mockSessionStore struct {
	sessions map[string]domain.Session
	order    []string
	saveErr  error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]domain.Session)}
}

func (m *mockSessionStore) Save(_ context.Context, session *domain.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.sessions[session.ID]; !ok {
		m.order = append(m.order, session.ID)
	}
	cp := *session
	cp.Transcript = append([]domain.Message(nil), session.Transcript...)
	cp.Reconciliation = session.Reconciliation.Clone()
	m.sessions[session.ID] = cp
	return nil
}

func (m *mockSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.Reconciliation = s.Reconciliation.Clone()
	s.Transcript = append([]domain.Message(nil), s.Transcript...)
	return &s, nil
}

func (m *mockSessionStore) List(_ context.Context) ([]domain.Session, error) {
	out := make([]domain.Session, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if s, ok := m.sessions[m.order[i]]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

// mockExporter records exported files and writes their names.
type mockExporter struct {
	exported []domain.CanonicalFile
	err      error
}

func (m *mockExporter) Export(w io.Writer, files []domain.CanonicalFile) error {
	if m.err != nil {
		return m.err
	}
	m.exported = files
	for _, f := range files {
		if _, err := io.WriteString(w, f.Name+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockExporter) Extension() string { return ".test" }
