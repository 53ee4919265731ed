package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sitegen/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driven"
)

// Store is a SQLite-backed session store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.sitegen/data/sessions.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sitegen", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "sessions.db")

	// Pragmas in the DSN apply to every pooled connection.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SessionStore returns a SessionStore interface backed by this store.
func (s *Store) SessionStore() driven.SessionStore {
	return &sessionStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_sessions.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Session Store ====================

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Save stores or updates a session together with its transcript and files.
func (s *sessionStore) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidInput
	}

	previous := session.Reconciliation.Previous
	if previous == nil {
		previous = []string{}
	}
	previousJSON, err := json.Marshal(previous)
	if err != nil {
		return fmt.Errorf("marshalling previous batch: %w", err)
	}

	now := time.Now().UTC()
	createdAt := session.CreatedAt.UTC()
	if session.CreatedAt.IsZero() {
		createdAt = now
	}
	updatedAt := session.UpdatedAt.UTC()
	if session.UpdatedAt.IsZero() {
		updatedAt = now
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, conversation_id, title, demo_url, web_url, status,
			previous_batch, batches, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			conversation_id = excluded.conversation_id,
			title = excluded.title,
			demo_url = excluded.demo_url,
			web_url = excluded.web_url,
			status = excluded.status,
			previous_batch = excluded.previous_batch,
			batches = excluded.batches,
			updated_at = excluded.updated_at
	`, session.ID, nullString(session.ConversationID), session.Title, session.DemoURL,
		session.WebURL, session.Status, string(previousJSON), session.Reconciliation.Batches,
		createdAt, updatedAt)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	if err := replaceMessages(ctx, tx, session.ID, session.Transcript); err != nil {
		return err
	}
	if err := replaceFiles(ctx, tx, session.ID, session.Reconciliation.Files.Files()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	return nil
}

func replaceMessages(ctx context.Context, tx *sql.Tx, sessionID string, messages []domain.Message) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM session_messages WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("clearing messages: %w", err)
	}
	if len(messages) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO session_messages (session_id, position, id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing message insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range messages {
		if _, err := stmt.ExecContext(ctx, sessionID, i, m.ID, m.Role, m.Content, nullTime(m.CreatedAt)); err != nil {
			return fmt.Errorf("inserting message: %w", err)
		}
	}
	return nil
}

func replaceFiles(ctx context.Context, tx *sql.Tx, sessionID string, files []domain.CanonicalFile) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM session_files WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("clearing files: %w", err)
	}
	if len(files) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO session_files (session_id, position, name, content, type, size)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing file insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range files {
		if _, err := stmt.ExecContext(ctx, sessionID, i, f.Name, f.Content, f.Type, f.Size); err != nil {
			return fmt.Errorf("inserting file %s: %w", f.Name, err)
		}
	}
	return nil
}

const sessionColumns = `id, conversation_id, title, demo_url, web_url, status,
	previous_batch, batches, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var session domain.Session
	var conversationID sql.NullString
	var previousJSON string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&session.ID, &conversationID, &session.Title, &session.DemoURL,
		&session.WebURL, &session.Status, &previousJSON, &session.Reconciliation.Batches,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	session.ConversationID = conversationID.String
	if err := json.Unmarshal([]byte(previousJSON), &session.Reconciliation.Previous); err != nil {
		return nil, fmt.Errorf("unmarshaling previous batch: %w", err)
	}
	if createdAt.Valid {
		session.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		session.UpdatedAt = updatedAt.Time
	}
	return &session, nil
}

// Get retrieves a session by ID.
func (s *sessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	if err := s.loadChildren(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// List returns all sessions, most recently updated first.
func (s *sessionStore) List(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions ORDER BY updated_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}

	var sessions []*domain.Session //nolint:prealloc // size unknown from query
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	rows.Close()

	result := make([]domain.Session, 0, len(sessions))
	for _, session := range sessions {
		if err := s.loadChildren(ctx, session); err != nil {
			return nil, err
		}
		result = append(result, *session)
	}
	return result, nil
}

// Delete removes a session. Messages and files cascade.
func (s *sessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *sessionStore) loadChildren(ctx context.Context, session *domain.Session) error {
	messages, err := s.loadMessages(ctx, session.ID)
	if err != nil {
		return err
	}
	session.Transcript = messages

	files, err := s.loadFiles(ctx, session.ID)
	if err != nil {
		return err
	}
	session.Reconciliation.Files = domain.NewFileCollection(files)
	return nil
}

func (s *sessionStore) loadMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, role, content, created_at FROM session_messages
		WHERE session_id = ? ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message //nolint:prealloc // size unknown from query
	for rows.Next() {
		var m domain.Message
		var createdAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		if createdAt.Valid {
			m.CreatedAt = createdAt.Time
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *sessionStore) loadFiles(ctx context.Context, sessionID string) ([]domain.CanonicalFile, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT name, content, type, size FROM session_files
		WHERE session_id = ? ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var files []domain.CanonicalFile //nolint:prealloc // size unknown from query
	for rows.Next() {
		var f domain.CanonicalFile
		if err := rows.Scan(&f.Name, &f.Content, &f.Type, &f.Size); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// ==================== Helpers ====================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
