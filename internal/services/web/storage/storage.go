package storage

import (
	"context"
	"time"
)

// Session binds a browser session to the API identity it signed in with.
type Session struct {
	ID        string
	APIKey    string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SessionStore persists web sessions.
type SessionStore interface {
	Close() error
	SaveSession(ctx context.Context, session Session) error
	// LoadSession returns the session by ID. Expired sessions are reported as
	// missing.
	LoadSession(ctx context.Context, sessionID string) (Session, bool, error)
	DeleteSession(ctx context.Context, sessionID string) error
	PruneExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
