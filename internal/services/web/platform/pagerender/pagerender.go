// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	webi18n "github.com/octofit/tracker/internal/services/web/i18n"
	module "github.com/octofit/tracker/internal/services/web/module"
	"github.com/octofit/tracker/internal/services/web/platform/flash"
	"github.com/octofit/tracker/internal/services/web/platform/httpx"
	webtemplates "github.com/octofit/tracker/internal/services/web/templates"
)

// ModulePage describes a module page response for both full-page and HTMX flows.
type ModulePage struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// PageContext builds the shared layout context for r.
func PageContext(r *http.Request, deps module.Dependencies) webtemplates.PageContext {
	tag := deps.Language(r)
	viewer := deps.Viewer(r)
	page := webtemplates.PageContext{
		Lang:        tag.String(),
		Loc:         webi18n.Printer(tag),
		UserName:    viewer.DisplayName,
		SignedIn:    viewer.SignedIn,
		CurrentPath: "/",
	}
	if r != nil && r.URL != nil {
		page.CurrentPath = r.URL.Path
		page.CurrentQuery = r.URL.RawQuery
	}
	return page
}

// WriteModulePage writes a module page. HTMX requests receive the fragment
// for the main region; other requests receive the full document.
func WriteModulePage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page ModulePage) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = emptyComponent{}
	}

	pageCtx := PageContext(r, deps)
	toast := resolveFlashToast(w, r, deps.Flash, pageCtx.Loc)
	ctx := httpx.RequestContext(r)

	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if err := webtemplates.Toast(toast).Render(ctx, &buf); err != nil {
			return err
		}
		if err := fragment.Render(ctx, &buf); err != nil {
			return err
		}
	} else {
		layout := webtemplates.Layout(webtemplates.LayoutOptions{
			Title: page.Title,
			Page:  pageCtx,
			Toast: toast,
		}, fragment)
		if err := layout.Render(ctx, &buf); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func resolveFlashToast(w http.ResponseWriter, r *http.Request, writer flash.Writer, loc webtemplates.Localizer) *webtemplates.ToastView {
	if r == nil {
		return nil
	}
	notice, ok := writer.ReadAndClear(w, r)
	if !ok {
		return nil
	}
	text := strings.TrimSpace(notice.Message)
	if key := strings.TrimSpace(notice.Key); key != "" {
		text = strings.TrimSpace(webtemplates.T(loc, key))
	}
	if text == "" {
		return nil
	}
	return &webtemplates.ToastView{Kind: string(notice.Kind), Text: text}
}
