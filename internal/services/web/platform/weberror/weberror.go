// Package weberror renders shared app-shell error responses for web modules.
package weberror

import (
	stderrors "errors"
	"log"
	"net/http"
	"strings"

	module "github.com/octofit/tracker/internal/services/web/module"
	apperrors "github.com/octofit/tracker/internal/services/web/platform/errors"
	"github.com/octofit/tracker/internal/services/web/platform/pagerender"
	"github.com/octofit/tracker/internal/services/web/resource"
	webtemplates "github.com/octofit/tracker/internal/services/web/templates"
)

type sentinelMapping struct {
	err  error
	kind apperrors.Kind
	key  string
}

var resourceSentinels = []sentinelMapping{
	{err: resource.ErrNotReady, kind: apperrors.KindConflict, key: "error.not_ready"},
	{err: resource.ErrEditInProgress, kind: apperrors.KindConflict, key: "error.edit_in_progress"},
	{err: resource.ErrSaveInFlight, kind: apperrors.KindConflict, key: "error.save_in_flight"},
	{err: resource.ErrNoActiveEdit, kind: apperrors.KindConflict, key: "error.no_active_edit"},
	{err: resource.ErrInvalidTransition, kind: apperrors.KindConflict, key: "error.no_active_edit"},
	{err: resource.ErrRowNotFound, kind: apperrors.KindNotFound, key: "error.row_not_found"},
	{err: resource.ErrReadOnlyField, kind: apperrors.KindInvalidInput, key: "error.read_only"},
	{err: resource.ErrGatewayUnavailable, kind: apperrors.KindUnavailable, key: "error.unavailable"},
}

var kindKeys = map[apperrors.Kind]string{
	apperrors.KindInvalidInput: "error.invalid_input",
	apperrors.KindUnauthorized: "error.unauthorized",
	apperrors.KindForbidden:    "error.forbidden",
	apperrors.KindUnavailable:  "error.unavailable",
	apperrors.KindNotFound:     "error.not_found",
	apperrors.KindConflict:     "error.invalid_input",
}

// Classify converts view-state sentinels into typed errors and leaves every
// other error unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, mapping := range resourceSentinels {
		if stderrors.Is(err, mapping.err) {
			return apperrors.EK(mapping.kind, mapping.key, err.Error())
		}
	}
	return err
}

// ShouldRenderAppError reports whether status is an error status.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	err = Classify(err)
	if key := apperrors.LocalizationKey(err); key != "" {
		if localized := strings.TrimSpace(webtemplates.T(loc, key)); localized != "" {
			return localized
		}
	}
	var appErr apperrors.Error
	if stderrors.As(err, &appErr) {
		if key, ok := kindKeys[appErr.Kind]; ok {
			return webtemplates.T(loc, key)
		}
	}
	if key, ok := kindKeys[kindOfStatus(apperrors.HTTPStatus(err))]; ok {
		return webtemplates.T(loc, key)
	}
	return webtemplates.T(loc, "error.unknown")
}

func kindOfStatus(statusCode int) apperrors.Kind {
	switch statusCode {
	case http.StatusBadRequest:
		return apperrors.KindInvalidInput
	case http.StatusUnauthorized:
		return apperrors.KindUnauthorized
	case http.StatusForbidden:
		return apperrors.KindForbidden
	case http.StatusNotFound:
		return apperrors.KindNotFound
	case http.StatusServiceUnavailable:
		return apperrors.KindUnavailable
	default:
		return apperrors.KindUnknown
	}
}

// WriteAppError writes a localized app-shell error response for full-page and HTMX requests.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	writeErrorPage(w, r, statusCode, "", deps)
}

// WriteModuleError writes a module-safe localized error response.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	err = Classify(err)
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError {
		log.Printf("web module error status=%d path=%s err=%v", statusCode, requestPath(r), err)
	}
	loc := pagerender.PageContext(r, deps).Loc
	writeErrorPage(w, r, statusCode, PublicMessage(loc, err), deps)
}

func writeErrorPage(w http.ResponseWriter, r *http.Request, statusCode int, message string, deps module.Dependencies) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	page := pagerender.PageContext(r, deps)
	err := pagerender.WriteModulePage(w, r, deps, pagerender.ModulePage{
		Title:      webtemplates.AppErrorPageTitle(statusCode, page.Loc),
		StatusCode: statusCode,
		Fragment:   webtemplates.ErrorPage(page, webtemplates.ErrorView{StatusCode: statusCode, Message: message}),
	})
	if err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}
