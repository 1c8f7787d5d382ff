package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/octofit/tracker/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/octofit/tracker/internal/services/web/storage"
	"github.com/octofit/tracker/internal/services/web/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for web sessions.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a web session SQLite store, creating its
// directory when needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	applied, err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, "")
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	for _, name := range applied {
		log.Printf("web session store migrated path=%s migration=%s", cleanPath, name)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.sqlDB.PingContext(ctx)
}

// SaveSession upserts a session and prunes sessions that already expired.
// The original creation time is kept when a session is updated.
func (s *Store) SaveSession(ctx context.Context, session webstorage.Session) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	session.ID = strings.TrimSpace(session.ID)
	if session.ID == "" {
		return fmt.Errorf("session id is required")
	}
	session.APIKey = strings.TrimSpace(session.APIKey)
	if session.APIKey == "" {
		return fmt.Errorf("session api key is required")
	}
	if session.ExpiresAt.IsZero() {
		return fmt.Errorf("session expiry is required")
	}
	now := s.now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO web_sessions (session_id, api_key, username, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		    api_key = excluded.api_key,
		    username = excluded.username,
		    expires_at = excluded.expires_at`,
		session.ID,
		session.APIKey,
		strings.TrimSpace(session.Username),
		timeToUnixMillis(session.CreatedAt),
		timeToUnixMillis(session.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if _, err := s.PruneExpiredSessions(ctx, now); err != nil {
		return err
	}
	return nil
}

// LoadSession returns a session by ID. Expired rows are reported as missing.
func (s *Store) LoadSession(ctx context.Context, sessionID string) (webstorage.Session, bool, error) {
	if s == nil || s.sqlDB == nil {
		return webstorage.Session{}, false, fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return webstorage.Session{}, false, nil
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT session_id, api_key, username, created_at, expires_at
		 FROM web_sessions
		 WHERE session_id = ?`,
		sessionID,
	)
	var session webstorage.Session
	var createdAt int64
	var expiresAt int64
	if err := row.Scan(&session.ID, &session.APIKey, &session.Username, &createdAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return webstorage.Session{}, false, nil
		}
		return webstorage.Session{}, false, fmt.Errorf("load session: %w", err)
	}
	session.CreatedAt = unixMillisToTime(createdAt)
	session.ExpiresAt = unixMillisToTime(expiresAt)
	if session.Expired(s.now()) {
		return webstorage.Session{}, false, nil
	}
	return session, true, nil
}

// DeleteSession removes a session by ID.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_sessions WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PruneExpiredSessions deletes sessions that expired at or before now.
func (s *Store) PruneExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM web_sessions WHERE expires_at <= ?`, timeToUnixMillis(now))
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return removed, nil
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ webstorage.SessionStore = (*Store)(nil)
