package modules

import (
	"github.com/octofit/tracker/internal/services/web/modules/publicauth"
	"github.com/octofit/tracker/internal/services/web/modules/resources"
)

// DefaultPublicModules returns the modules reachable without a session.
func DefaultPublicModules(deps Dependencies) []Module {
	return []Module{
		publicauth.New(deps.Auth),
	}
}

// DefaultProtectedModules returns one collection view module per schema.
func DefaultProtectedModules(deps Dependencies) []Module {
	schemas := deps.schemas()
	out := make([]Module, 0, len(schemas))
	for _, schema := range schemas {
		out = append(out, resources.New(schema, deps.Views))
	}
	return out
}

// BuildInput carries the collaborators for one registry build.
type BuildInput struct {
	Dependencies Dependencies
}

// BuildOutput groups the composed modules by access policy.
type BuildOutput struct {
	Public    []Module
	Protected []Module
}

// Registry builds the default module sets.
type Registry struct{}

// NewRegistry returns the default module registry.
func NewRegistry() Registry {
	return Registry{}
}

// Build composes the public and protected module sets.
func (Registry) Build(input BuildInput) BuildOutput {
	return BuildOutput{
		Public:    DefaultPublicModules(input.Dependencies),
		Protected: DefaultProtectedModules(input.Dependencies),
	}
}
