package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/octofit/tracker/internal/platform/timeouts"
	"github.com/octofit/tracker/internal/services/web/composition"
	"github.com/octofit/tracker/internal/services/web/integration/restapi"
	"github.com/octofit/tracker/internal/services/web/modules"
	"github.com/octofit/tracker/internal/services/web/modules/publicauth"
	"github.com/octofit/tracker/internal/services/web/modules/resources"
	"github.com/octofit/tracker/internal/services/web/platform/httpx"
	"github.com/octofit/tracker/internal/services/web/platform/requestmeta"
	"github.com/octofit/tracker/internal/services/web/platform/sessioncookie"
	"github.com/octofit/tracker/internal/services/web/resource"
	"github.com/octofit/tracker/internal/services/web/routepath"
	"github.com/octofit/tracker/internal/services/web/static"
	websqlite "github.com/octofit/tracker/internal/services/web/storage/sqlite"
	"github.com/octofit/tracker/internal/services/web/transport/httpmux"
	"github.com/octofit/tracker/internal/services/web/workspace"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
)

// DefaultSessionPruneInterval is how often expired web sessions are purged.
const DefaultSessionPruneInterval = 15 * time.Minute

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr   string
	APIBaseURL string
	// APITimeout bounds each REST API call; zero leaves calls unbounded.
	APITimeout    time.Duration
	SessionDBPath string
	// SessionSecret signs session cookies and must be at least 32 bytes.
	SessionSecret        []byte
	SessionTTL           time.Duration
	SessionPruneInterval time.Duration
	WorkspaceTTL         time.Duration
	WorkspaceCapacity    uint64
	TrustForwardedProto  bool
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	sessions   *websqlite.Store
	workspaces *workspace.Store
	pruneStop  context.CancelFunc
	pruneDone  <-chan struct{}
}

// handlerDependencies carries the collaborators of the root handler.
type handlerDependencies struct {
	auth       publicauth.AuthGateway
	sessions   sessionStore
	views      resources.ViewSource
	dropper    publicauth.WorkspaceDropper
	cookie     *sessioncookie.Codec
	sessionTTL time.Duration
	policy     requestmeta.SchemePolicy
	metrics    http.Handler
	healthy    func() bool
}

// sessionStore is the session persistence surface used by the handler.
type sessionStore interface {
	SessionLoader
	publicauth.SessionStore
}

// newHandler assembles the root handler: operational routes, static assets
// and the composed module tree behind the shared middleware chain.
func newHandler(deps handlerDependencies) (http.Handler, error) {
	if deps.cookie == nil {
		return nil, errors.New("session cookie codec is required")
	}
	principal := newPrincipalResolver(deps.cookie, deps.sessions)
	appHandler, err := composition.ComposeAppHandler(composition.ComposeInput{
		Principal: composition.PrincipalResolvers{
			AuthRequired:     principal.resolveSignedIn,
			BindPrincipal:    principal.bindIdentity,
			ResolveViewer:    principal.resolveViewer,
			ResolveSignedIn:  principal.resolveSignedIn,
			ResolveSessionID: principal.resolveSessionID,
			ResolveLanguage:  resolveLanguage,
		},
		ModuleDependencies: modules.Dependencies{
			Views: deps.views,
			Auth: publicauth.Config{
				Gateway:    deps.auth,
				Sessions:   deps.sessions,
				Workspaces: deps.dropper,
				Cookie:     deps.cookie,
				SessionTTL: deps.sessionTTL,
			},
		},
		RequestSchemePolicy: deps.policy,
	})
	if err != nil {
		return nil, fmt.Errorf("compose app handler: %w", err)
	}

	root := http.NewServeMux()
	httpmux.MountStatic(root, static.FS)
	httpmux.MountOperational(root, deps.healthy, deps.metrics)
	httpmux.MountApp(root, routepath.AppResource(resource.Activities), appHandler)

	return httpx.Chain(root,
		httpx.RequestID(),
		httpx.AccessLog(routepath.Health, routepath.Metrics, routepath.StaticPrefix),
		httpx.RecoverPanic(),
		principal.middleware,
		persistLanguage,
	), nil
}

// NewServer builds a configured web server.
func NewServer(config Config) (*Server, error) {
	return NewServerWithContext(context.Background(), config)
}

// NewServerWithContext builds a configured web server. ctx bounds the
// background workers started for the server.
func NewServerWithContext(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto}
	codec, err := sessioncookie.NewCodec(config.SessionSecret, policy)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	client, err := restapi.New(config.APIBaseURL,
		restapi.WithTimeout(config.APITimeout),
		restapi.WithMetrics(restapi.NewMetrics(registry)),
		restapi.WithTracerProvider(otel.GetTracerProvider()),
		restapi.WithPropagator(otel.GetTextMapPropagator()),
	)
	if err != nil {
		return nil, fmt.Errorf("init rest api client: %w", err)
	}

	sessions, err := websqlite.Open(config.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("open web session store: %w", err)
	}

	workspaceOpts := []workspace.Option{}
	if config.WorkspaceTTL > 0 {
		workspaceOpts = append(workspaceOpts, workspace.WithTTL(config.WorkspaceTTL))
	}
	if config.WorkspaceCapacity > 0 {
		workspaceOpts = append(workspaceOpts, workspace.WithCapacity(config.WorkspaceCapacity))
	}
	workspaces := workspace.New(client, workspaceOpts...)
	registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "octofit",
		Subsystem: "web",
		Name:      "workspaces",
		Help:      "Web sessions holding in-memory collection views.",
	}, func() float64 { return float64(workspaces.Len()) }))

	handler, err := newHandler(handlerDependencies{
		auth:       publicauth.NewRESTAuthGateway(client),
		sessions:   sessions,
		views:      workspaces,
		dropper:    workspaces,
		cookie:     codec,
		sessionTTL: config.SessionTTL,
		policy:     policy,
		metrics:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		healthy:    storeHealthy(sessions),
	})
	if err != nil {
		_ = sessions.Close()
		return nil, fmt.Errorf("build handler: %w", err)
	}

	workspaces.Start(ctx)
	pruneCtx, pruneStop := context.WithCancel(ctx)
	pruneDone := startSessionPruneWorker(pruneCtx, sessions, config.SessionPruneInterval)

	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		sessions:   sessions,
		workspaces: workspaces,
		pruneStop:  pruneStop,
		pruneDone:  pruneDone,
	}, nil
}

func storeHealthy(store *websqlite.Store) func() bool {
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), timeouts.StoreProbe)
		defer cancel()
		return store.Ping(ctx) == nil
	}
}

// sessionPruner removes expired sessions.
type sessionPruner interface {
	PruneExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// startSessionPruneWorker purges expired sessions every interval until ctx
// ends. The returned channel closes when the worker exits.
func startSessionPruneWorker(ctx context.Context, store sessionPruner, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		interval = DefaultSessionPruneInterval
	}
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				removed, err := store.PruneExpiredSessions(ctx, now)
				if err != nil {
					log.Printf("web session prune failed err=%v", err)
					continue
				}
				if removed > 0 {
					log.Printf("web session prune removed=%d", removed)
				}
			}
		}
	}()
	return done
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops background workers and releases the session store.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.pruneStop != nil {
		s.pruneStop()
	}
	if s.pruneDone != nil {
		<-s.pruneDone
	}
	if s.workspaces != nil {
		s.workspaces.Stop()
	}
	if s.sessions != nil {
		if err := s.sessions.Close(); err != nil {
			log.Printf("close web session store: %v", err)
		}
	}
}
