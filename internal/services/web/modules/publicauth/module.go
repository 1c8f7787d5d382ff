// Package publicauth serves the login, registration and logout routes that
// bind an API identity to a web session.
package publicauth

import (
	"net/http"
	"time"

	"github.com/octofit/tracker/internal/services/web/module"
	"github.com/octofit/tracker/internal/services/web/platform/modulehandler"
	"github.com/octofit/tracker/internal/services/web/routepath"
)

// SessionCookie writes and clears the signed session cookie.
type SessionCookie interface {
	Read(r *http.Request) (string, bool)
	Write(w http.ResponseWriter, r *http.Request, sessionID string, expiresAt time.Time) error
	Clear(w http.ResponseWriter, r *http.Request)
}

// Config carries the collaborators of the auth module.
type Config struct {
	Gateway    AuthGateway
	Sessions   SessionStore
	Workspaces WorkspaceDropper
	Cookie     SessionCookie
	SessionTTL time.Duration
}

// Module provides public authentication routes.
type Module struct {
	cfg Config
}

// New returns an auth module.
func New(cfg Config) Module {
	return Module{cfg: cfg}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "publicauth" }

// Healthy reports whether the module can open sessions.
func (m Module) Healthy() bool {
	if m.cfg.Gateway == nil || m.cfg.Sessions == nil || m.cfg.Cookie == nil {
		return false
	}
	_, unavailable := m.cfg.Gateway.(unavailableAuthGateway)
	return !unavailable
}

// Mount wires the authentication route handlers.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.cfg.Gateway, m.cfg.Sessions, m.cfg.Workspaces, m.cfg.SessionTTL)
	h := newHandlers(svc, m.cfg.Cookie, modulehandler.NewBase(deps))
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
