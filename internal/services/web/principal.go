package web

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/octofit/tracker/internal/services/web/identity"
	module "github.com/octofit/tracker/internal/services/web/module"
	webstorage "github.com/octofit/tracker/internal/services/web/storage"
)

// SessionLoader is the narrow store surface needed by session resolution.
type SessionLoader interface {
	LoadSession(ctx context.Context, sessionID string) (webstorage.Session, bool, error)
}

// SessionIDReader extracts a verified session id from a request.
type SessionIDReader interface {
	Read(r *http.Request) (string, bool)
}

type requestPrincipalState struct {
	once    sync.Once
	session webstorage.Session
	ok      bool
}

type requestPrincipalStateKey struct{}

// principalResolver validates session cookies against the session store and
// exposes the result to modules through request-scoped resolvers.
type principalResolver struct {
	cookie   SessionIDReader
	sessions SessionLoader
}

func newPrincipalResolver(cookie SessionIDReader, sessions SessionLoader) principalResolver {
	return principalResolver{cookie: cookie, sessions: sessions}
}

// middleware attaches a lazily filled principal cache to each request.
func (p principalResolver) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), requestPrincipalStateKey{}, &requestPrincipalState{})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestPrincipalStateFromRequest(r *http.Request) *requestPrincipalState {
	if r == nil {
		return nil
	}
	state, _ := r.Context().Value(requestPrincipalStateKey{}).(*requestPrincipalState)
	return state
}

func (p principalResolver) resolveSessionUncached(r *http.Request) (webstorage.Session, bool) {
	if r == nil || p.cookie == nil || p.sessions == nil {
		return webstorage.Session{}, false
	}
	sessionID, ok := p.cookie.Read(r)
	if !ok {
		return webstorage.Session{}, false
	}
	session, found, err := p.sessions.LoadSession(r.Context(), sessionID)
	if err != nil {
		log.Printf("web session lookup failed err=%v", err)
		return webstorage.Session{}, false
	}
	if !found || strings.TrimSpace(session.APIKey) == "" {
		return webstorage.Session{}, false
	}
	return session, true
}

func (p principalResolver) resolveSession(r *http.Request) (webstorage.Session, bool) {
	if state := requestPrincipalStateFromRequest(r); state != nil {
		state.once.Do(func() {
			state.session, state.ok = p.resolveSessionUncached(r)
		})
		return state.session, state.ok
	}
	return p.resolveSessionUncached(r)
}

func (p principalResolver) resolveSignedIn(r *http.Request) bool {
	_, ok := p.resolveSession(r)
	return ok
}

func (p principalResolver) resolveSessionID(r *http.Request) string {
	session, ok := p.resolveSession(r)
	if !ok {
		return ""
	}
	return session.ID
}

func (p principalResolver) resolveViewer(r *http.Request) module.Viewer {
	session, ok := p.resolveSession(r)
	if !ok {
		return module.Viewer{}
	}
	return module.Viewer{DisplayName: session.Username, SignedIn: true}
}

// bindIdentity attaches the session's API identity so gateway calls made on
// behalf of r carry its token.
func (p principalResolver) bindIdentity(r *http.Request) *http.Request {
	session, ok := p.resolveSession(r)
	if !ok {
		return r
	}
	id := identity.Identity{Key: session.APIKey, Username: session.Username}
	return r.WithContext(identity.WithContext(r.Context(), id))
}
