package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/sitegen/internal/core/domain"
)

// ConversationService manages client-side sessions: it routes prompts to
// create or continue a chat and reconciles the returned files.
type ConversationService interface {
	// Start creates an empty session.
	Start(ctx context.Context) (*domain.Session, error)

	// Send submits a prompt. The first successful prompt creates the
	// upstream chat; later prompts continue it.
	Send(ctx context.Context, sessionID, prompt string) (*domain.Session, error)

	// Reset starts a new conversation within the session, discarding the
	// chat ID, transcript and files.
	Reset(ctx context.Context, sessionID string) (*domain.Session, error)

	// Get retrieves a session.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)

	// List returns all sessions, most recently updated first.
	List(ctx context.Context) ([]domain.Session, error)

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Files returns the session's valid files in collection order.
	Files(ctx context.Context, sessionID string) ([]domain.CanonicalFile, error)

	// Export writes the session's valid files as an archive.
	// Returns domain.ErrNoFiles when there is nothing to export.
	Export(ctx context.Context, sessionID string, w io.Writer) error
}
