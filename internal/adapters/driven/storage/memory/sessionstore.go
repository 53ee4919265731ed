package memory

import (
	"context"
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driven"
)

// DefaultSessionCapacity bounds the in-memory session store when no
// capacity is given.
const DefaultSessionCapacity = 256

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// It holds at most its capacity of sessions and evicts the least recently
// used one when full. Sessions are copied on the way in and out.
type SessionStore struct {
	cache *lru.Cache[string, *domain.Session]
}

// NewSessionStore creates a new in-memory session store. A capacity of zero
// or less uses DefaultSessionCapacity.
func NewSessionStore(capacity int) (*SessionStore, error) {
	if capacity <= 0 {
		capacity = DefaultSessionCapacity
	}
	cache, err := lru.New[string, *domain.Session](capacity)
	if err != nil {
		return nil, fmt.Errorf("creating session cache: %w", err)
	}
	return &SessionStore{cache: cache}, nil
}

// Save stores or updates a session.
func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidInput
	}
	s.cache.Add(session.ID, session.Clone())
	return nil
}

// Get retrieves a session by ID.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	session, ok := s.cache.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return session.Clone(), nil
}

// List returns all sessions, most recently updated first.
func (s *SessionStore) List(_ context.Context) ([]domain.Session, error) {
	values := s.cache.Values()
	result := make([]domain.Session, 0, len(values))
	// Values are oldest first; walk backwards so ties keep recency order.
	for i := len(values) - 1; i >= 0; i-- {
		result = append(result, *values[i].Clone())
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.cache.Remove(id)
	return nil
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	return s.cache.Len()
}
