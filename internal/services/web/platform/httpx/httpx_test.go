package httpx

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	apperrors "github.com/octofit/tracker/internal/services/web/platform/errors"
)

func TestChainAppliesMiddlewareInOrder(t *testing.T) {
	t.Parallel()

	called := ""
	mark := func(label string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called += label
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called += "h"
		w.WriteHeader(http.StatusNoContent)
	}), mark("1"), nil, mark("2"))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if called != "12h" {
		t.Fatalf("call order = %q, want %q", called, "12h")
	}
}

func TestChainWithoutHandlerIsNotFound(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Chain(nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestMethodNotAllowedWritesAllowHeader(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	MethodNotAllowed(http.MethodPost).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/activities/refresh", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	if got := rr.Header().Get("Allow"); got != http.MethodPost {
		t.Fatalf("Allow = %q, want %q", got, http.MethodPost)
	}
}

func TestRequestIDGeneratesUUIDWhenMissing(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusNoContent)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("request id %q is not a uuid: %v", seen, err)
	}
	if got := rr.Header().Get(RequestIDHeader); got != seen {
		t.Fatalf("response id = %q, want %q", got, seen)
	}
}

func TestRequestIDPreservesIncomingHeader(t *testing.T) {
	t.Parallel()

	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get(RequestIDHeader); got != "req-123" {
		t.Fatalf("response id = %q, want req-123", got)
	}
}

func TestRecoverPanicLogsRequestContext(t *testing.T) {
	buffer := captureLog(t)

	h := RecoverPanic()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	for _, marker := range []string{"panic recovered", "path=/panic", "request_id=req-123"} {
		if !strings.Contains(buffer.String(), marker) {
			t.Fatalf("panic log missing marker %q: %q", marker, buffer.String())
		}
	}
}

func TestAccessLogRecordsStatusAndSkipsPrefixes(t *testing.T) {
	buffer := captureLog(t)

	h := AccessLog("/static/")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/app/teams", "/missing", "/static/app.css"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("HX-Request", "true")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	out := buffer.String()
	for _, marker := range []string{"path=/app/teams status=200", "path=/missing status=404", "htmx=true"} {
		if !strings.Contains(out, marker) {
			t.Fatalf("access log missing %q: %q", marker, out)
		}
	}
	if strings.Contains(out, "/static/") {
		t.Fatalf("access log includes skipped path: %q", out)
	}
}

func TestWriteJSONSetsContentTypeAndBody(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	if err := WriteJSON(rr, http.StatusCreated, map[string]string{"status": "ok"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Fatalf("Content-Type = %q", got)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"status":"ok"}` {
		t.Fatalf("body = %q", got)
	}
	if err := WriteJSON(nil, http.StatusOK, nil); err == nil {
		t.Fatal("WriteJSON(nil) error = nil")
	}
}

func TestWriteErrorUsesTypedStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "typed", err: apperrors.E(apperrors.KindNotFound, "missing"), want: http.StatusNotFound},
		{name: "untyped", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "nil", err: nil, want: http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			WriteError(rr, tc.err)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
		})
	}
}

func TestFormFailureStatus(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/app/activities", nil)
	if got := FormFailureStatus(req); got != http.StatusBadRequest {
		t.Fatalf("full page status = %d, want %d", got, http.StatusBadRequest)
	}
	req.Header.Set("HX-Request", "true")
	if got := FormFailureStatus(req); got != http.StatusOK {
		t.Fatalf("htmx status = %d, want %d", got, http.StatusOK)
	}
	if IsHTMXRequest(nil) {
		t.Fatal("IsHTMXRequest(nil) = true")
	}
}

func TestWriteRedirect(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/app/teams", nil)
	rr := httptest.NewRecorder()
	WriteRedirect(rr, req, "/app/teams")
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/app/teams" {
		t.Fatalf("Location = %q", got)
	}

	req.Header.Set("HX-Request", "true")
	rr = httptest.NewRecorder()
	WriteRedirect(rr, req, "/login")
	if rr.Code != http.StatusOK {
		t.Fatalf("htmx status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("HX-Redirect"); got != "/login" {
		t.Fatalf("HX-Redirect = %q", got)
	}
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	prevWriter := log.Writer()
	var buffer bytes.Buffer
	log.SetOutput(&buffer)
	t.Cleanup(func() { log.SetOutput(prevWriter) })
	return &buffer
}
