// Package resources serves the collection views: one module per schema,
// each backed by the per-session view workspace.
package resources

import (
	"errors"
	"net/http"
	"strings"

	"github.com/octofit/tracker/internal/services/web/module"
	"github.com/octofit/tracker/internal/services/web/platform/modulehandler"
	"github.com/octofit/tracker/internal/services/web/resource"
	"github.com/octofit/tracker/internal/services/web/routepath"
)

// ViewSource returns the view of schema owned by a web session.
type ViewSource interface {
	View(sessionID string, schema resource.Schema) *resource.View
}

// Module provides the routes of one collection view.
type Module struct {
	schema resource.Schema
	views  ViewSource
}

// New returns a module serving schema from views.
func New(schema resource.Schema, views ViewSource) Module {
	return Module{schema: schema, views: views}
}

// ID returns a stable module identifier.
func (m Module) ID() string { return m.schema.Name }

// Healthy reports whether the module has a view source.
func (m Module) Healthy() bool {
	return m.views != nil
}

// Mount wires the collection view route handlers.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if strings.TrimSpace(m.schema.Name) == "" {
		return module.Mount{}, errors.New("resource schema name is required")
	}
	if m.views == nil {
		return module.Mount{}, errors.New("resource view source is required")
	}
	mux := http.NewServeMux()
	h := newHandlers(m.schema, m.views, modulehandler.NewBase(deps))
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.AppResourcePrefix(m.schema.Name), Handler: mux}, nil
}
