// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"
	"strings"

	"github.com/octofit/tracker/internal/services/web/platform/flash"
	"golang.org/x/text/language"
)

// Viewer contains user-facing chrome data for app pages.
type Viewer struct {
	DisplayName string
	SignedIn    bool
}

// ResolveViewer resolves app chrome viewer state for a request.
type ResolveViewer func(*http.Request) Viewer

// ResolveSignedIn reports whether the request carries an identity.
type ResolveSignedIn func(*http.Request) bool

// ResolveSessionID returns the web session id of an authenticated request.
type ResolveSessionID func(*http.Request) string

// ResolveLanguage returns the effective request language.
type ResolveLanguage func(*http.Request) language.Tag

// Dependencies carries the request-scoped resolvers shared by modules.
type Dependencies struct {
	ResolveViewer    ResolveViewer
	ResolveSignedIn  ResolveSignedIn
	ResolveSessionID ResolveSessionID
	ResolveLanguage  ResolveLanguage
	Flash            flash.Writer
}

// Viewer resolves the viewer for r, or an anonymous viewer.
func (d Dependencies) Viewer(r *http.Request) Viewer {
	if d.ResolveViewer == nil || r == nil {
		return Viewer{}
	}
	return d.ResolveViewer(r)
}

// SessionID resolves the session id for r, or an empty string.
func (d Dependencies) SessionID(r *http.Request) string {
	if d.ResolveSessionID == nil || r == nil {
		return ""
	}
	return strings.TrimSpace(d.ResolveSessionID(r))
}

// Language resolves the language for r, or English.
func (d Dependencies) Language(r *http.Request) language.Tag {
	if d.ResolveLanguage == nil || r == nil {
		return language.AmericanEnglish
	}
	return d.ResolveLanguage(r)
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount(deps Dependencies) (Mount, error)
}

// HealthReporter is implemented by modules that can report whether their
// remote dependency is configured.
type HealthReporter interface {
	Healthy() bool
}
