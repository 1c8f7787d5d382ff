package templates

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/octofit/tracker/internal/services/web/routepath"
)

// ErrorView is the render model of an application error page.
type ErrorView struct {
	StatusCode int
	Message    string
}

// AppErrorPageTitle returns the browser title for an error page.
func AppErrorPageTitle(statusCode int, loc Localizer) string {
	if statusCode == http.StatusNotFound {
		return T(loc, "error.not_found")
	}
	return T(loc, "error.title")
}

// ErrorPage renders an error body with a way back.
func ErrorPage(page PageContext, view ErrorView) templ.Component {
	return render(func(_ context.Context, m *markup) {
		loc := page.Loc
		m.open("div", "class", "card", "id", "app-error", "data-status", http.StatusText(view.StatusCode))
		m.element("h3", AppErrorPageTitle(view.StatusCode, loc))
		message := view.Message
		if message == "" {
			message = T(loc, "error.unknown")
		}
		m.element("p", message)
		m.element("a", T(loc, "error.back"), "href", routepath.AppResource("activities"))
		m.close("div")
	})
}
