// Package composition assembles the registry modules and request resolvers
// into the application handler.
package composition

import (
	"net/http"

	webapp "github.com/octofit/tracker/internal/services/web/app"
	module "github.com/octofit/tracker/internal/services/web/module"
	"github.com/octofit/tracker/internal/services/web/modules"
	"github.com/octofit/tracker/internal/services/web/platform/flash"
	"github.com/octofit/tracker/internal/services/web/platform/requestmeta"
)

// PrincipalResolvers carries request-scoped resolution callbacks built by the
// server from the session store.
type PrincipalResolvers struct {
	AuthRequired     func(*http.Request) bool
	BindPrincipal    func(*http.Request) *http.Request
	ResolveViewer    module.ResolveViewer
	ResolveSignedIn  module.ResolveSignedIn
	ResolveSessionID module.ResolveSessionID
	ResolveLanguage  module.ResolveLanguage
}

// ModuleRegistry builds web module sets from composition input.
type ModuleRegistry interface {
	Build(modules.BuildInput) modules.BuildOutput
}

// ComposeInput describes the contracts needed to compose the application mux.
type ComposeInput struct {
	Principal PrincipalResolvers

	ModuleDependencies modules.Dependencies

	RequestSchemePolicy requestmeta.SchemePolicy

	Registry ModuleRegistry
}

// ComposeAppHandler builds the web app handler from the registry modules.
func ComposeAppHandler(input ComposeInput) (http.Handler, error) {
	authRequired := input.Principal.AuthRequired
	if authRequired == nil {
		authRequired = func(*http.Request) bool { return false }
	}

	registry := input.Registry
	if registry == nil {
		registry = modules.NewRegistry()
	}
	built := registry.Build(modules.BuildInput{Dependencies: input.ModuleDependencies})

	return webapp.Compose(webapp.ComposeInput{
		Dependencies: module.Dependencies{
			ResolveViewer:    input.Principal.ResolveViewer,
			ResolveSignedIn:  input.Principal.ResolveSignedIn,
			ResolveSessionID: input.Principal.ResolveSessionID,
			ResolveLanguage:  input.Principal.ResolveLanguage,
			Flash:            flash.Writer{Policy: input.RequestSchemePolicy},
		},
		AuthRequired:        authRequired,
		BindPrincipal:       input.Principal.BindPrincipal,
		PublicModules:       built.Public,
		ProtectedModules:    built.Protected,
		RequestSchemePolicy: input.RequestSchemePolicy,
	})
}
