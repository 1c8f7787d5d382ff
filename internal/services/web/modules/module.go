// Package modules defines web module registry helpers.
package modules

import (
	module "github.com/octofit/tracker/internal/services/web/module"
	"github.com/octofit/tracker/internal/services/web/modules/publicauth"
	"github.com/octofit/tracker/internal/services/web/modules/resources"
	"github.com/octofit/tracker/internal/services/web/resource"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Dependencies carries the collaborators required to compose the web module
// registry. Each field is typed as the narrow interface defined by the
// consuming module.
type Dependencies struct {
	// Views owns the per-session collection views.
	Views resources.ViewSource

	// Auth configures the login, registration and logout routes.
	Auth publicauth.Config

	// Schemas overrides the served collections; empty means the full catalog.
	Schemas []resource.Schema
}

func (d Dependencies) schemas() []resource.Schema {
	if len(d.Schemas) > 0 {
		return d.Schemas
	}
	return resource.Catalog()
}
