// Package modulehandler provides a composable base for protected web module handlers.
//
// Modules mounted under /app/ share request-scoped language and viewer
// resolution, page rendering, flash notices and error handling. Modules
// embed Base rather than duplicating that scaffold.
package modulehandler

import (
	"net/http"

	"github.com/a-h/templ"
	module "github.com/octofit/tracker/internal/services/web/module"
	"github.com/octofit/tracker/internal/services/web/platform/flash"
	"github.com/octofit/tracker/internal/services/web/platform/httpx"
	"github.com/octofit/tracker/internal/services/web/platform/pagerender"
	"github.com/octofit/tracker/internal/services/web/platform/weberror"
	webtemplates "github.com/octofit/tracker/internal/services/web/templates"
)

// Base carries the shared dependencies used by protected module handlers.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a handler base from module dependencies.
func NewBase(deps module.Dependencies) Base {
	return Base{deps: deps}
}

// NewTestBase builds a handler base with default resolvers.
func NewTestBase() Base {
	return Base{}
}

// Dependencies returns the module dependencies the base was built with.
func (b Base) Dependencies() module.Dependencies {
	return b.deps
}

// SessionID returns the web session id of r.
func (b Base) SessionID(r *http.Request) string {
	return b.deps.SessionID(r)
}

// PageContext returns the shared layout context for r.
func (b Base) PageContext(r *http.Request) webtemplates.PageContext {
	return pagerender.PageContext(r, b.deps)
}

// Localizer returns the request localizer.
func (b Base) Localizer(r *http.Request) webtemplates.Localizer {
	return b.PageContext(r).Loc
}

// WritePage renders a module page (HTMX-aware) with the given title and fragment.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, fragment templ.Component) {
	if err := pagerender.WriteModulePage(w, r, b.deps, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Fragment:   fragment,
	}); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b.deps)
}

// WriteNotFound renders a 404 error page within the app shell.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b.deps)
}

// Notify stores notice for the next full-page render.
func (b Base) Notify(w http.ResponseWriter, r *http.Request, notice flash.Notice) {
	b.deps.Flash.Write(w, r, notice)
}

// RedirectWithNotice stores notice and redirects to location.
func (b Base) RedirectWithNotice(w http.ResponseWriter, r *http.Request, location string, notice flash.Notice) {
	b.Notify(w, r, notice)
	httpx.WriteRedirect(w, r, location)
}
