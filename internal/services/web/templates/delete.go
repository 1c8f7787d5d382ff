package templates

import (
	"context"

	"github.com/a-h/templ"
)

// DeleteConfirmView is the render model of the deletion confirmation step.
type DeleteConfirmView struct {
	PromptKey string
	Summary   string
	Action    string
	CancelURL string
}

// DeleteConfirmPage asks for an explicit yes before a deletion.
func DeleteConfirmPage(page PageContext, view DeleteConfirmView) templ.Component {
	return render(func(_ context.Context, m *markup) {
		loc := page.Loc
		m.open("div", "class", "card", "id", "delete-confirm")
		m.element("h3", T(loc, "delete.title"))
		m.element("p", T(loc, view.PromptKey))
		if view.Summary != "" {
			m.element("pre", view.Summary)
		}
		m.open("form", "method", "post", "action", view.Action, "hx-post", view.Action)
		m.open("input", "type", "hidden", "name", "confirm", "value", "yes")
		m.element("button", T(loc, "delete.confirm"), "type", "submit", "class", "danger")
		m.raw(" ")
		m.element("a", T(loc, "delete.cancel"), "class", "button", "href", view.CancelURL, "hx-get", view.CancelURL)
		m.close("form")
		m.close("div")
	})
}
