// Package httpmux wires the process-level routes around the composed app.
package httpmux

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/octofit/tracker/internal/services/web/routepath"
)

// MountStatic wires the shared static route into the root mux.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS) {
	if rootMux == nil || staticFS == nil {
		return
	}
	staticHandler := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(staticFS)))
	rootMux.Handle(http.MethodGet+" "+routepath.StaticPrefix, withStaticHeaders(staticHandler))
}

// withStaticHeaders attaches explicit content-type hints for known static
// assets and lets browsers revalidate them hourly.
func withStaticHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch path := strings.ToLower(r.URL.Path); {
		case strings.HasSuffix(path, ".css"):
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		case strings.HasSuffix(path, ".js"):
			w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		case strings.HasSuffix(path, ".svg"):
			w.Header().Set("Content-Type", "image/svg+xml")
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}

// MountOperational wires the health and metrics endpoints. A nil metrics
// handler leaves /metrics to the app.
func MountOperational(rootMux *http.ServeMux, healthy func() bool, metrics http.Handler) {
	if rootMux == nil {
		return
	}
	rootMux.HandleFunc(http.MethodGet+" "+routepath.Health, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if healthy != nil && !healthy() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("DEGRADED"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if metrics != nil {
		rootMux.Handle(http.MethodGet+" "+routepath.Metrics, metrics)
	}
}

// MountApp sends the bare root to landing and everything else to app.
func MountApp(rootMux *http.ServeMux, landing string, app http.Handler) {
	if rootMux == nil {
		return
	}
	if strings.TrimSpace(landing) != "" {
		rootMux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, landing, http.StatusSeeOther)
		})
	}
	if app != nil {
		rootMux.Handle(routepath.Root, app)
	}
}
