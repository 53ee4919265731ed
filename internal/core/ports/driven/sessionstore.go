package driven

import (
	"context"

	"github.com/custodia-labs/sitegen/internal/core/domain"
)

// SessionStore persists client-side conversation sessions.
type SessionStore interface {
	// Save stores or updates a session.
	Save(ctx context.Context, session *domain.Session) error

	// Get retrieves a session by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// List returns all sessions, most recently updated first.
	List(ctx context.Context) ([]domain.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
