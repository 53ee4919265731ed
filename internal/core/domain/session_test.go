package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_State(t *testing.T) {
	s := Session{ID: "s-1"}
	assert.Equal(t, NoConversation, s.State())
	assert.Equal(t, "none", s.State().String())

	s.ConversationID = "chat-1"
	assert.Equal(t, ActiveConversation, s.State())
	assert.Equal(t, "active", s.State().String())
}

func TestSession_Reset(t *testing.T) {
	now := time.Now()
	s := Session{
		ID:             "s-1",
		ConversationID: "chat-1",
		Title:          "Navbar",
		DemoURL:        "https://demo.example",
		Status:         StatusCompleted,
		Transcript:     []Message{{ID: "m-1", Role: RoleUser, Content: "hi"}},
		Reconciliation: ReconciliationState{
			Previous: []string{"a.js"},
			Batches:  1,
			Files:    NewFileCollection([]CanonicalFile{{Name: "a.js", Content: "x", Type: "javascript", Size: 1}}),
		},
		CreatedAt: now,
	}

	s.Reset()

	assert.Equal(t, "s-1", s.ID)
	assert.Equal(t, now, s.CreatedAt)
	assert.Equal(t, NoConversation, s.State())
	assert.Empty(t, s.Title)
	assert.Empty(t, s.DemoURL)
	assert.Empty(t, s.Transcript)
	assert.Equal(t, 0, s.Reconciliation.Batches)
	assert.Equal(t, 0, s.Reconciliation.Files.Len())
}

func TestSession_Clone(t *testing.T) {
	s := &Session{
		ID:         "s-1",
		Transcript: []Message{{ID: "m-1", Content: "hi"}},
		Reconciliation: ReconciliationState{
			Batches: 1,
			Files:   NewFileCollection([]CanonicalFile{{Name: "a.js", Content: "x", Type: "javascript", Size: 1}}),
		},
	}

	cp := s.Clone()
	cp.Transcript[0].Content = "changed"
	cp.Reconciliation.Files.Upsert(CanonicalFile{Name: "b.js", Content: "y", Type: "javascript", Size: 1})

	assert.Equal(t, "hi", s.Transcript[0].Content)
	assert.Equal(t, 1, s.Reconciliation.Files.Len())
	assert.Equal(t, 2, cp.Reconciliation.Files.Len())
}

func TestChat_LastAssistantMessage(t *testing.T) {
	c := Chat{Messages: []Message{
		{Role: RoleUser, Content: "make a page"},
		{Role: RoleAssistant, Content: "first"},
		{Role: RoleUser, Content: "again"},
		{Role: RoleAssistant, Content: "second"},
	}}
	assert.Equal(t, "second", c.LastAssistantMessage())

	empty := Chat{}
	assert.Equal(t, "", empty.LastAssistantMessage())
}

func TestDefaultSettings_Session(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, DefaultPort, s.Port)
	assert.Equal(t, DefaultAPIBaseURL, s.APIBaseURL)
	assert.Equal(t, DefaultRelayURL, s.RelayURL)
	assert.InDelta(t, DefaultRateLimit, s.RateLimit, 0.0001)
	assert.False(t, s.HasCredential())

	s.APIKey = "key"
	assert.True(t, s.HasCredential())
}
