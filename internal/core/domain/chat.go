package domain

import "time"

// Chat status values reported by the generation service.
const (
	StatusCompleted = "completed"
	StatusUnknown   = "unknown"
)

// Message is one entry of a conversation transcript.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Chat is the reshaped result of a create or follow-up call, in the
// form the relay returns to its clients.
type Chat struct {
	ChatID      string          `json:"chatId"`
	Title       string          `json:"title"`
	CreatedAt   string          `json:"createdAt,omitempty"`
	WebURL      string          `json:"webUrl,omitempty"`
	DemoURL     string          `json:"demoUrl,omitempty"`
	Files       []RawFileRecord `json:"files"`
	Messages    []Message       `json:"messages"`
	Status      string          `json:"status"`
	IsCompleted bool            `json:"isCompleted"`
}

// LastAssistantMessage returns the content of the most recent assistant
// message, or "" when there is none.
func (c *Chat) LastAssistantMessage() string {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant && c.Messages[i].Content != "" {
			return c.Messages[i].Content
		}
	}
	return ""
}

// GeneratedFile is a file inside the service's latest version.
type GeneratedFile struct {
	Object  string `json:"object,omitempty"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Locked  bool   `json:"locked,omitempty"`
}

// GeneratedVersion is the latest version sub-object of a generated chat.
type GeneratedVersion struct {
	ID      string          `json:"id,omitempty"`
	Status  string          `json:"status,omitempty"`
	DemoURL string          `json:"demoUrl,omitempty"`
	Files   []GeneratedFile `json:"files,omitempty"`
}

// GeneratedMessage is a message as returned by the generation service.
type GeneratedMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// GeneratedChat is the chat object returned by the generation service.
// LatestVersion is nil when the service has not produced a version yet.
type GeneratedChat struct {
	ID            string             `json:"id"`
	Name          string             `json:"name,omitempty"`
	Title         string             `json:"title,omitempty"`
	CreatedAt     string             `json:"createdAt,omitempty"`
	WebURL        string             `json:"webUrl,omitempty"`
	LatestVersion *GeneratedVersion  `json:"latestVersion,omitempty"`
	Messages      []GeneratedMessage `json:"messages,omitempty"`
}
