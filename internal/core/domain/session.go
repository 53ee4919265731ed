package domain

import "time"

// ConversationState is the state of a session's upstream conversation.
type ConversationState int

const (
	// NoConversation means no chat has been created upstream yet.
	NoConversation ConversationState = iota

	// ActiveConversation means follow-up prompts continue an existing chat.
	ActiveConversation
)

// String returns the string representation.
func (s ConversationState) String() string {
	if s == ActiveConversation {
		return "active"
	}
	return "none"
}

// Session is a client-side conversation with the generation service.
// The relay is stateless; everything that spans turns lives here.
type Session struct {
	// ID is the local identifier.
	ID string `json:"id"`

	// ConversationID is the upstream chat ID. Empty until the first
	// successful create.
	ConversationID string `json:"conversationId,omitempty"`

	// Title is the latest title reported upstream.
	Title string `json:"title,omitempty"`

	// DemoURL is the live preview of the latest version.
	DemoURL string `json:"demoUrl,omitempty"`

	// WebURL links to the chat on the generation service.
	WebURL string `json:"webUrl,omitempty"`

	// Status is the latest version status.
	Status string `json:"status,omitempty"`

	// Transcript holds user and assistant messages in order.
	Transcript []Message `json:"transcript"`

	// Reconciliation holds the canonical files across turns.
	Reconciliation ReconciliationState `json:"reconciliation"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// State returns whether the session has an upstream conversation.
func (s *Session) State() ConversationState {
	if s.ConversationID == "" {
		return NoConversation
	}
	return ActiveConversation
}

// Reset discards the upstream conversation, transcript and files.
func (s *Session) Reset() {
	s.ConversationID = ""
	s.Title = ""
	s.DemoURL = ""
	s.WebURL = ""
	s.Status = ""
	s.Transcript = nil
	s.Reconciliation = ReconciliationState{}
}

// Clone returns an independent copy of the session.
func (s *Session) Clone() *Session {
	out := *s
	if s.Transcript != nil {
		out.Transcript = append([]Message(nil), s.Transcript...)
	}
	out.Reconciliation = s.Reconciliation.Clone()
	return &out
}
