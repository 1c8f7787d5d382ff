package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/octofit/tracker/internal/services/web/routepath"
)

const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// MainID is the element every HTMX action swaps.
const MainID = "main"

// Layout renders the full document around body.
func Layout(opts LayoutOptions, body templ.Component) templ.Component {
	return render(func(ctx context.Context, m *markup) {
		page := opts.Page
		m.raw("<!DOCTYPE html>")
		m.open("html", "lang", htmlLang(page.Lang))
		m.raw("<head>")
		m.raw(`<meta charset="utf-8">`)
		m.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.element("title", opts.Title)
		m.open("link", "rel", "stylesheet", "href", routepath.StaticPrefix+"theme.css")
		m.open("script", "src", htmxScriptURL, "defer", on)
		m.close("script")
		m.open("script", "src", routepath.StaticPrefix+"app.js", "defer", on)
		m.close("script")
		m.raw("</head>")
		m.open("body", "hx-target", "#"+MainID, "hx-swap", "innerHTML")
		m.component(ctx, Nav(page))
		m.open("main", "id", MainID)
		m.component(ctx, Toast(opts.Toast))
		m.component(ctx, body)
		m.close("main")
		m.raw("</body></html>")
	})
}

// Nav renders the navigation shell.
func Nav(page PageContext) templ.Component {
	return render(func(_ context.Context, m *markup) {
		m.open("nav", "class", "app-nav")
		m.element("strong", T(page.Loc, "app.name"))
		if page.SignedIn {
			for _, item := range NavItems(page.CurrentPath) {
				class := ""
				if item.Active {
					class = "active"
				}
				m.element("a", T(page.Loc, item.LabelKey), "href", item.Href, "class", class)
			}
		}
		m.raw(`<span class="spacer"></span>`)
		for _, link := range LanguageLinks(page) {
			if link.Active {
				m.element("span", link.Label)
				continue
			}
			m.element("a", link.Label, "href", link.Href)
		}
		if page.SignedIn {
			if page.UserName != "" {
				m.element("span", T(page.Loc, "nav.signed_in_as", page.UserName))
			}
			m.open("form", "method", "post", "action", routepath.Logout)
			m.element("button", T(page.Loc, "nav.logout"), "type", "submit")
			m.close("form")
		} else {
			m.element("a", T(page.Loc, "nav.login"), "href", routepath.Login)
		}
		m.close("nav")
	})
}

// Toast renders a one-time notice when present.
func Toast(toast *ToastView) templ.Component {
	return render(func(_ context.Context, m *markup) {
		if toast == nil || toast.Text == "" {
			return
		}
		kind := toast.Kind
		if kind == "" {
			kind = "info"
		}
		m.element("div", toast.Text, "class", "alert alert-"+kind, "role", "status")
	})
}
