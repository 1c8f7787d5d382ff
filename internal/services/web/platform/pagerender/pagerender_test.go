package pagerender

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	module "github.com/octofit/tracker/internal/services/web/module"
	"github.com/octofit/tracker/internal/services/web/platform/flash"
	"golang.org/x/text/language"
)

func textComponent(value string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, value)
		return err
	})
}

func setFlashCookie(t *testing.T, req *http.Request, notice flash.Notice) {
	t.Helper()
	rr := httptest.NewRecorder()
	flash.Writer{}.Write(rr, req, notice)
	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	req.AddCookie(cookie)
}

func TestWriteModulePageRendersHTMXFragmentWithStatus(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/app/teams", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()

	err := WriteModulePage(rr, req, module.Dependencies{}, ModulePage{
		Title:      "Teams",
		StatusCode: http.StatusCreated,
		Fragment:   textComponent(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `id="fragment-root"`) {
		t.Fatalf("body missing fragment marker: %q", body)
	}
	if strings.Contains(strings.ToLower(body), "<html") {
		t.Fatalf("expected htmx fragment without full document wrapper")
	}
}

func TestWriteModulePageRendersFullPageWithAppShell(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/app/teams", nil)
	rr := httptest.NewRecorder()
	deps := module.Dependencies{
		ResolveViewer: func(*http.Request) module.Viewer {
			return module.Viewer{DisplayName: "mona", SignedIn: true}
		},
	}

	err := WriteModulePage(rr, req, deps, ModulePage{
		Title:      "Teams",
		StatusCode: http.StatusAccepted,
		Fragment:   textComponent(`<section id="fragment-root">ok</section>`),
	})
	if err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusAccepted)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q", got)
	}
	body := rr.Body.String()
	for _, marker := range []string{`id="main"`, `id="fragment-root"`, `<title>Teams</title>`, `href="/app/teams" class="active"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing marker %q: %q", marker, body)
		}
	}
}

func TestWriteModulePageRendersToastFromFlashNotice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		htmx   bool
		notice flash.Notice
		want   string
	}{
		{name: "localized key", notice: flash.Success("teams.form.create_success"), want: "Team created successfully!"},
		{name: "remote message", notice: flash.Failure("Not allowed."), want: "Not allowed."},
		{name: "htmx fragment", htmx: true, notice: flash.Success("edit.saved"), want: `class="alert alert-success"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/app/teams", nil)
			if tc.htmx {
				req.Header.Set("HX-Request", "true")
			}
			setFlashCookie(t, req, tc.notice)
			rr := httptest.NewRecorder()

			deps := module.Dependencies{
				ResolveLanguage: func(*http.Request) language.Tag { return language.AmericanEnglish },
			}
			if err := WriteModulePage(rr, req, deps, ModulePage{Title: "Teams"}); err != nil {
				t.Fatalf("WriteModulePage() error = %v", err)
			}
			if body := rr.Body.String(); !strings.Contains(body, tc.want) {
				t.Fatalf("body missing %q: %q", tc.want, body)
			}
			cleared, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
			if err != nil || cleared.Name != flash.CookieName || cleared.MaxAge >= 0 {
				t.Fatalf("flash cookie not cleared: %+v, err = %v", cleared, err)
			}
		})
	}
}

func TestWriteModulePageUsesRequestLanguage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/app/teams", nil)
	rr := httptest.NewRecorder()
	deps := module.Dependencies{
		ResolveLanguage: func(*http.Request) language.Tag { return language.BrazilianPortuguese },
	}
	if err := WriteModulePage(rr, req, deps, ModulePage{Title: "Equipes"}); err != nil {
		t.Fatalf("WriteModulePage() error = %v", err)
	}
	if body := rr.Body.String(); !strings.Contains(body, `<html lang="pt-BR">`) {
		t.Fatalf("body missing pt-BR html lang: %q", body)
	}
}
