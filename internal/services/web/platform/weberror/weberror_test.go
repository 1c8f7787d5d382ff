package weberror

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/octofit/tracker/internal/services/web/module"
	apperrors "github.com/octofit/tracker/internal/services/web/platform/errors"
	"github.com/octofit/tracker/internal/services/web/resource"
)

func TestWriteModuleErrorRendersAppErrorPageForNotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/app/unknown", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindNotFound, "missing"), module.Dependencies{})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	body := rr.Body.String()
	for _, marker := range []string{`id="app-error"`, "Page not found.", "<html"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
}

func TestWriteModuleErrorDoesNotLeakInternalText(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/app/teams", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindInvalidInput, "bad form"), module.Dependencies{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "The request was not accepted.") {
		t.Fatalf("body = %q, want generic invalid-input message", body)
	}
	if strings.Contains(body, "bad form") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
}

func TestWriteModuleErrorHTMXRendersFragment(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/app/activities/rows/0/edit", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, fmt.Errorf("begin edit: %w", resource.ErrEditInProgress), module.Dependencies{})
	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatalf("htmx error rendered full document: %q", body)
	}
	if !strings.Contains(body, "Finish or cancel the current edit first.") {
		t.Fatalf("body missing localized sentinel message: %q", body)
	}
}

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "keyed", err: apperrors.EK(apperrors.KindForbidden, "error.csrf", "origin mismatch"), want: "error.csrf"},
		{name: "kind", err: apperrors.E(apperrors.KindUnavailable, "dial tcp"), want: "error.unavailable"},
		{name: "sentinel", err: resource.ErrRowNotFound, want: "error.row_not_found"},
		{name: "unknown", err: errors.New("boom"), want: "error.unknown"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := PublicMessage(nil, tc.err); got != tc.want {
				t.Fatalf("PublicMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClassifyMapsSentinelStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: resource.ErrNotReady, want: http.StatusConflict},
		{err: resource.ErrRowNotFound, want: http.StatusNotFound},
		{err: resource.ErrReadOnlyField, want: http.StatusBadRequest},
		{err: resource.ErrGatewayUnavailable, want: http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		if got := apperrors.HTTPStatus(Classify(tc.err)); got != tc.want {
			t.Fatalf("HTTPStatus(Classify(%v)) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestWriteAppErrorCoercesNonErrorStatus(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteAppError(rr, httptest.NewRequest(http.MethodGet, "/app/teams", nil), http.StatusOK, module.Dependencies{})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
}
