// Package app composes feature modules into the root web handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/octofit/tracker/internal/services/web/module"
	apperrors "github.com/octofit/tracker/internal/services/web/platform/errors"
	"github.com/octofit/tracker/internal/services/web/platform/httpx"
	"github.com/octofit/tracker/internal/services/web/platform/requestmeta"
	"github.com/octofit/tracker/internal/services/web/platform/sessioncookie"
	"github.com/octofit/tracker/internal/services/web/platform/weberror"
	"github.com/octofit/tracker/internal/services/web/routepath"
)

const defaultLoginPath = routepath.Login

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	Dependencies module.Dependencies
	AuthRequired func(*http.Request) bool
	// BindPrincipal decorates authenticated requests before protected
	// handlers run, typically attaching the API identity to the context.
	BindPrincipal       func(*http.Request) *http.Request
	PublicModules       []module.Module
	ProtectedModules    []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Compose builds a root HTTP handler from module groups.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	if input.AuthRequired == nil {
		input.AuthRequired = func(*http.Request) bool { return false }
	}
	seen := make(map[string]string)
	csrfWrap := requireCookieSessionSameOrigin(input.RequestSchemePolicy, input.Dependencies)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		if err := mountPublicModule(root, feature, input.Dependencies, seen, csrfWrap); err != nil {
			return nil, err
		}
	}

	protectedWrap := func(next http.Handler) http.Handler {
		return requireAuth(input.AuthRequired, input.BindPrincipal)(csrfWrap(next))
	}
	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		if err := mountProtectedModule(root, feature, input.Dependencies, seen, protectedWrap); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	mount module.Mount,
	prefix string,
	seen map[string]string,
	wrap func(http.Handler) http.Handler,
) error {
	if root == nil || feature == nil {
		return nil
	}
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()

	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	root.Handle(prefix, handler)
	return nil
}

func mountPublicModule(root *http.ServeMux, feature module.Module, deps module.Dependencies, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, prefix, err := resolveMount(feature, deps)
	if err != nil {
		return err
	}
	if isProtectedPrefix(prefix) {
		return fmt.Errorf("module %q has protected prefix %q in public group", feature.ID(), prefix)
	}
	return mountModule(root, feature, mount, prefix, seen, wrap)
}

func mountProtectedModule(root *http.ServeMux, feature module.Module, deps module.Dependencies, seen map[string]string, wrap func(http.Handler) http.Handler) error {
	mount, prefix, err := resolveMount(feature, deps)
	if err != nil {
		return err
	}
	if !isProtectedPrefix(prefix) || prefix == routepath.AppPrefix {
		return fmt.Errorf("module %q must mount below %s, got %q", feature.ID(), routepath.AppPrefix, prefix)
	}
	if err := mountModule(root, feature, mount, prefix, seen, wrap); err != nil {
		return err
	}
	// The slashless alias keeps ServeMux from answering a POST to the
	// collection root with a redirect.
	if alias := protectedSlashlessPrefixAlias(prefix); alias != "" {
		if err := mountModule(root, feature, mount, alias, seen, wrap); err != nil {
			return err
		}
	}
	return nil
}

func isProtectedPrefix(prefix string) bool {
	return strings.HasPrefix(prefix, routepath.AppPrefix)
}

func resolveMount(feature module.Module, deps module.Dependencies) (module.Mount, string, error) {
	if feature == nil {
		return module.Mount{}, "", fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount(deps)
	if err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := mount.Prefix
	if err := validatePrefix(prefix); err != nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, "", fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, prefix, nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(prefix) != prefix {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	if !strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("prefix must end with /")
	}
	return nil
}

func protectedSlashlessPrefixAlias(prefix string) string {
	if !isProtectedPrefix(prefix) || !strings.HasSuffix(prefix, "/") {
		return ""
	}
	return strings.TrimSuffix(prefix, "/")
}

func requireAuth(authenticated func(*http.Request) bool, bind func(*http.Request) *http.Request) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			return http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authenticated(r) {
				httpx.WriteRedirect(w, r, loginRedirect(r))
				return
			}
			if bind != nil {
				r = bind(r)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// loginRedirect sends readers back to the page they asked for. Mutations
// land on the default page after login.
func loginRedirect(r *http.Request) string {
	if r == nil || r.URL == nil || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		return defaultLoginPath
	}
	return routepath.WithNext(defaultLoginPath, r.URL.RequestURI())
}

func requireCookieSessionSameOrigin(policy requestmeta.SchemePolicy, deps module.Dependencies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutationMethod(r) || !sessioncookie.Present(r) {
				next.ServeHTTP(w, r)
				return
			}
			if !policy.SameOrigin(r) {
				weberror.WriteModuleError(w, r, apperrors.EK(apperrors.KindForbidden, "error.csrf", "cross-origin mutation rejected"), deps)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
