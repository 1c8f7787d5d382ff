package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/octofit/tracker/internal/services/web/identity"
	"github.com/octofit/tracker/internal/services/web/modules/publicauth"
	"github.com/octofit/tracker/internal/services/web/platform/requestmeta"
	"github.com/octofit/tracker/internal/services/web/platform/sessioncookie"
	"github.com/octofit/tracker/internal/services/web/resource"
	webstorage "github.com/octofit/tracker/internal/services/web/storage"
	"github.com/octofit/tracker/internal/services/web/workspace"
)

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]webstorage.Session
	pruned   int
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]webstorage.Session{}}
}

func (m *memorySessions) SaveSession(_ context.Context, session webstorage.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *memorySessions) LoadSession(_ context.Context, sessionID string) (webstorage.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	return session, ok, nil
}

func (m *memorySessions) DeleteSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

func (m *memorySessions) PruneExpiredSessions(context.Context, time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruned++
	return 0, nil
}

func (m *memorySessions) prunes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pruned
}

type stubAuth struct{}

func (stubAuth) Login(_ context.Context, creds publicauth.Credentials) (identity.Identity, error) {
	return identity.Identity{Key: "key-" + creds.Username, Username: creds.Username}, nil
}

func (stubAuth) Register(ctx context.Context, creds publicauth.Credentials) (identity.Identity, error) {
	return stubAuth{}.Login(ctx, creds)
}

// recordingGateway serves one team and records the identity of each call.
type recordingGateway struct {
	mu   sync.Mutex
	keys []string
}

func (g *recordingGateway) record(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, _ := identity.FromContext(ctx)
	g.keys = append(g.keys, id.Key)
}

func (g *recordingGateway) Keys() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.keys...)
}

func (g *recordingGateway) List(ctx context.Context, _ string) (any, error) {
	g.record(ctx)
	return []any{map[string]any{"id": float64(1), "name": "Octo Runners"}}, nil
}

func (g *recordingGateway) Create(ctx context.Context, _ string, fields resource.Entity) (resource.Entity, error) {
	g.record(ctx)
	return fields, nil
}

func (g *recordingGateway) Update(ctx context.Context, _ string, _ resource.ID, fields resource.Entity) (resource.Entity, error) {
	g.record(ctx)
	return fields, nil
}

func (g *recordingGateway) Delete(ctx context.Context, _ string, _ resource.ID) error {
	g.record(ctx)
	return nil
}

type serverHarness struct {
	handler  http.Handler
	gateway  *recordingGateway
	sessions *memorySessions
}

func newServerHarness(t *testing.T) *serverHarness {
	t.Helper()
	codec, err := sessioncookie.NewCodec([]byte("0123456789abcdef0123456789abcdef"), requestmeta.SchemePolicy{})
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}
	gateway := &recordingGateway{}
	sessions := newMemorySessions()
	views := workspace.New(gateway, workspace.WithLogger(t.Logf))
	handler, err := newHandler(handlerDependencies{
		auth:     stubAuth{},
		sessions: sessions,
		views:    views,
		dropper:  views,
		cookie:   codec,
		metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
	})
	if err != nil {
		t.Fatalf("newHandler() error = %v", err)
	}
	return &serverHarness{handler: handler, gateway: gateway, sessions: sessions}
}

func (h *serverHarness) serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	return rr
}

func (h *serverHarness) login(t *testing.T) *http.Cookie {
	t.Helper()
	form := url.Values{"username": {"mona"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := h.serve(req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == sessioncookie.Name {
			return cookie
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestRootRedirectsToActivities(t *testing.T) {
	t.Parallel()

	rr := newServerHarness(t).serve(httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/app/activities" {
		t.Fatalf("/ = %d %q", rr.Code, rr.Header().Get("Location"))
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing request id header")
	}
}

func TestOperationalRoutes(t *testing.T) {
	t.Parallel()

	h := newServerHarness(t)
	if rr := h.serve(httptest.NewRequest(http.MethodGet, "/up", nil)); rr.Code != http.StatusOK || rr.Body.String() != "OK" {
		t.Fatalf("/up = %d %q", rr.Code, rr.Body.String())
	}
	if rr := h.serve(httptest.NewRequest(http.MethodGet, "/metrics", nil)); rr.Body.String() != "# metrics" {
		t.Fatalf("/metrics body = %q", rr.Body.String())
	}
	if rr := h.serve(httptest.NewRequest(http.MethodGet, "/static/app.js", nil)); rr.Code != http.StatusOK {
		t.Fatalf("/static/app.js status = %d", rr.Code)
	}
}

func TestAnonymousCollectionRedirectsToLogin(t *testing.T) {
	t.Parallel()

	rr := newServerHarness(t).serve(httptest.NewRequest(http.MethodGet, "/app/teams", nil))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login?next=%2Fapp%2Fteams" {
		t.Fatalf("/app/teams = %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestSignedInCollectionUsesSessionIdentity(t *testing.T) {
	t.Parallel()

	h := newServerHarness(t)
	cookie := h.login(t)

	req := httptest.NewRequest(http.MethodGet, "/app/teams", nil)
	req.AddCookie(cookie)
	rr := h.serve(req)
	if rr.Code != http.StatusOK {
		t.Fatalf("/app/teams status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Octo Runners") || !strings.Contains(body, "mona") {
		t.Fatalf("body missing team row or viewer: %s", body)
	}
	if keys := h.gateway.Keys(); len(keys) != 1 || keys[0] != "key-mona" {
		t.Fatalf("gateway identities = %v, want [key-mona]", keys)
	}
}

func TestForgedCookieIsAnonymous(t *testing.T) {
	t.Parallel()

	h := newServerHarness(t)
	req := httptest.NewRequest(http.MethodGet, "/app/teams", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "forged"})
	if rr := h.serve(req); rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
}

func TestCrossOriginLogoutIsRejected(t *testing.T) {
	t.Parallel()

	h := newServerHarness(t)
	cookie := h.login(t)

	req := httptest.NewRequest(http.MethodPost, "http://octofit.test/logout", nil)
	req.Host = "octofit.test"
	req.Header.Set("Origin", "http://evil.test")
	req.AddCookie(cookie)
	if rr := h.serve(req); rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	if len(h.sessions.sessions) != 1 {
		t.Fatal("cross-origin logout removed the session")
	}
}

func TestLanguageQueryPersistsCookie(t *testing.T) {
	t.Parallel()

	rr := newServerHarness(t).serve(httptest.NewRequest(http.MethodGet, "/login?lang=pt-BR", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var found bool
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == "octofit_lang" && cookie.Value == "pt-BR" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing language cookie: %v", rr.Header().Values("Set-Cookie"))
	}
	if !strings.Contains(rr.Body.String(), `lang="pt-BR"`) {
		t.Fatalf("page not rendered in pt-BR: %s", rr.Body.String())
	}
}

func TestSessionPruneWorkerStopsWithContext(t *testing.T) {
	t.Parallel()

	store := newMemorySessions()
	ctx, cancel := context.WithCancel(context.Background())
	done := startSessionPruneWorker(ctx, store, time.Millisecond)
	deadline := time.After(2 * time.Second)
	for store.prunes() == 0 {
		select {
		case <-deadline:
			t.Fatal("prune worker never ran")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("prune worker did not stop")
	}
}

func TestNewServerValidatesConfig(t *testing.T) {
	t.Parallel()

	secret := []byte("0123456789abcdef0123456789abcdef")
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing addr", cfg: Config{APIBaseURL: "http://api.test/api/", SessionSecret: secret, SessionDBPath: "x.db"}},
		{name: "short secret", cfg: Config{HTTPAddr: ":0", APIBaseURL: "http://api.test/api/", SessionSecret: []byte("short")}},
		{name: "relative api url", cfg: Config{HTTPAddr: ":0", APIBaseURL: "api/", SessionSecret: secret}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewServer(tc.cfg); err == nil {
				t.Fatal("NewServer() error = nil")
			}
		})
	}
}
