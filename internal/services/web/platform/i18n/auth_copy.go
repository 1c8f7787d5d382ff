// Package i18n builds localized copy bundles for pages rendered outside the
// signed-in shell.
package i18n

import (
	"fmt"
	"strings"

	webi18n "github.com/octofit/tracker/internal/services/web/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const appDisplayName = "OctoFit Tracker"

// AuthCopy holds translatable copy for the login and register pages.
type AuthCopy struct {
	Title        string
	Heading      string
	Username     string
	Email        string
	Password     string
	Submit       string
	ToggleLabel  string

	loc *message.Printer
}

// Auth returns localized copy for the login page, or the register page when
// register is set.
func Auth(tag language.Tag, register bool) AuthCopy {
	loc := webi18n.Printer(normalizeAuthTag(tag))

	heading := localizeWithFallback(loc, "auth.login.title", "Login")
	submit := localizeWithFallback(loc, "auth.login.submit", "Login")
	toggle := localizeWithFallback(loc, "auth.toggle.to_register", "Need an account? Register")
	if register {
		heading = localizeWithFallback(loc, "auth.register.title", "Register")
		submit = localizeWithFallback(loc, "auth.register.submit", "Register")
		toggle = localizeWithFallback(loc, "auth.toggle.to_login", "Already have an account? Login")
	}
	return AuthCopy{
		Title:       withProductSuffix(heading),
		Heading:     heading,
		Username:    localizeWithFallback(loc, "auth.username", "Username"),
		Email:       localizeWithFallback(loc, "auth.email", "Email"),
		Password:    localizeWithFallback(loc, "auth.password", "Password"),
		Submit:      submit,
		ToggleLabel: toggle,
		loc:         loc,
	}
}

// Failed formats an authentication failure message.
func (c AuthCopy) Failed(detail string) string {
	return localizeWithFallback(c.loc, "auth.failed", "Authentication failed: "+detail, detail)
}

func normalizeAuthTag(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	portugueseBase, _ := language.Portuguese.Base()
	if base == portugueseBase {
		return language.BrazilianPortuguese
	}
	return language.AmericanEnglish
}

func withProductSuffix(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return appDisplayName
	}
	return fmt.Sprintf("%s | %s", trimmed, appDisplayName)
}

// localizeWithFallback formats key with args, returning fallback when the
// catalog has no entry for key.
func localizeWithFallback(loc *message.Printer, key string, fallback string, args ...any) string {
	if loc != nil {
		value := strings.TrimSpace(loc.Sprintf(key, args...))
		if value != "" && !strings.HasPrefix(value, key) {
			return value
		}
	}
	return fallback
}
