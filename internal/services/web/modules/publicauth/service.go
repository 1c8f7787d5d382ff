package publicauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/octofit/tracker/internal/services/web/identity"
	apperrors "github.com/octofit/tracker/internal/services/web/platform/errors"
	"github.com/octofit/tracker/internal/services/web/platform/sessioncookie"
	webstorage "github.com/octofit/tracker/internal/services/web/storage"
)

// DefaultSessionTTL is the lifetime of a web session without configuration.
const DefaultSessionTTL = 24 * time.Hour

// Credentials are the login and registration form fields.
type Credentials struct {
	Username string
	Email    string
	Password string
}

// AuthGateway exchanges credentials for an API identity.
type AuthGateway interface {
	Login(ctx context.Context, creds Credentials) (identity.Identity, error)
	Register(ctx context.Context, creds Credentials) (identity.Identity, error)
}

// SessionStore persists the identity bound to a web session.
type SessionStore interface {
	SaveSession(ctx context.Context, session webstorage.Session) error
	DeleteSession(ctx context.Context, sessionID string) error
}

// WorkspaceDropper discards the in-memory views of a web session.
type WorkspaceDropper interface {
	Drop(sessionID string)
}

type service struct {
	auth       AuthGateway
	sessions   SessionStore
	workspaces WorkspaceDropper
	ttl        time.Duration
	now        func() time.Time
	newID      func() string
}

func newService(auth AuthGateway, sessions SessionStore, workspaces WorkspaceDropper, ttl time.Duration) service {
	if auth == nil {
		auth = unavailableAuthGateway{}
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return service{
		auth:       auth,
		sessions:   sessions,
		workspaces: workspaces,
		ttl:        ttl,
		now:        time.Now,
		newID:      sessioncookie.NewSessionID,
	}
}

func validateCredentials(creds Credentials, register bool) (Credentials, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Username == "" || creds.Password == "" {
		return Credentials{}, apperrors.EK(apperrors.KindInvalidInput, "auth.required", "username and password are required")
	}
	if register && creds.Email == "" {
		return Credentials{}, apperrors.EK(apperrors.KindInvalidInput, "auth.required", "email is required")
	}
	return creds, nil
}

// signIn authenticates creds and opens a web session for the identity.
func (s service) signIn(ctx context.Context, creds Credentials, register bool) (webstorage.Session, error) {
	creds, err := validateCredentials(creds, register)
	if err != nil {
		return webstorage.Session{}, err
	}
	var id identity.Identity
	if register {
		id, err = s.auth.Register(ctx, creds)
	} else {
		id, err = s.auth.Login(ctx, creds)
	}
	if err != nil {
		return webstorage.Session{}, apperrors.MapUpstreamError(err, apperrors.UpstreamMapping{FallbackKind: apperrors.KindUnauthorized})
	}
	if id.Anonymous() {
		return webstorage.Session{}, apperrors.E(apperrors.KindUnknown, "auth did not return an api key")
	}
	if s.sessions == nil {
		return webstorage.Session{}, apperrors.E(apperrors.KindUnavailable, "session store is not configured")
	}

	now := s.now().UTC()
	session := webstorage.Session{
		ID:        s.newID(),
		APIKey:    id.Key,
		Username:  id.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return webstorage.Session{}, fmt.Errorf("save web session: %w", err)
	}
	return session, nil
}

// signOut forgets the web session and its views.
func (s service) signOut(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	if s.workspaces != nil {
		s.workspaces.Drop(sessionID)
	}
	if s.sessions == nil {
		return nil
	}
	return s.sessions.DeleteSession(ctx, sessionID)
}
