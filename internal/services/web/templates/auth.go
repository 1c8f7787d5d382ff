package templates

import (
	"context"

	"github.com/a-h/templ"
)

// AuthView is the render model of the login and register pages.
type AuthView struct {
	Heading     string
	Action      string
	Register    bool
	Username    string
	Email       string
	Next        string
	Error       string
	ToggleURL   string
	ToggleLabel string

	UsernameLabel string
	EmailLabel    string
	PasswordLabel string
	SubmitLabel   string
}

// AuthPage renders the login or register form.
func AuthPage(view AuthView) templ.Component {
	return render(func(_ context.Context, m *markup) {
		m.open("div", "class", "card", "id", "auth")
		m.element("h3", view.Heading)
		m.open("form", "method", "post", "action", view.Action)
		if view.Next != "" {
			m.open("input", "type", "hidden", "name", "next", "value", view.Next)
		}
		m.element("label", view.UsernameLabel, "for", "auth-username")
		m.open("input", "id", "auth-username", "type", "text", "name", "username", "value", view.Username, "autocomplete", "username", "required", on)
		if view.Register {
			m.element("label", view.EmailLabel, "for", "auth-email")
			m.open("input", "id", "auth-email", "type", "email", "name", "email", "value", view.Email, "autocomplete", "email", "required", on)
		}
		m.element("label", view.PasswordLabel, "for", "auth-password")
		autocomplete := "current-password"
		if view.Register {
			autocomplete = "new-password"
		}
		m.open("input", "id", "auth-password", "type", "password", "name", "password", "autocomplete", autocomplete, "required", on)
		if view.Error != "" {
			m.element("div", view.Error, "class", "alert alert-error", "role", "alert")
		}
		m.element("button", view.SubmitLabel, "type", "submit", "class", "primary")
		m.close("form")
		m.element("a", view.ToggleLabel, "href", view.ToggleURL)
		m.close("div")
	})
}
