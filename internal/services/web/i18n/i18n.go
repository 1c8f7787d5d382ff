// Package i18n resolves the request language and builds message printers
// over the embedded catalogs.
package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/octofit/tracker/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "octofit_lang"
)

var (
	supported = []language.Tag{language.AmericanEnglish, language.BrazilianPortuguese}
	matcher   = language.NewMatcher(supported)
)

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag      string
	LabelKey string
	Active   bool
}

// Supported returns the supported language tags, default first.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Default returns the default language tag.
func Default() language.Tag {
	return supported[0]
}

// Printer returns a message printer for tag backed by the embedded catalogs.
func Printer(tag language.Tag) *message.Printer {
	_ = catalog.Default()
	return message.NewPrinter(tag)
}

// ParseTag matches value against the supported tags.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return Default(), false
	}
	matched, _, confidence := matcher.Match(tag)
	if confidence == language.No {
		return Default(), false
	}
	return supportedBase(matched), true
}

// ResolveTag determines the language for r from the lang query param, then
// the language cookie, then Accept-Language. The bool reports whether the
// query param selected it and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if value := r.URL.Query().Get(LangParam); value != "" {
		if tag, ok := ParseTag(value); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			matched, _, confidence := matcher.Match(tags...)
			if confidence != language.No {
				return supportedBase(matched), false
			}
		}
	}
	return Default(), false
}

// SetLanguageCookie persists the selected language for a year.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// LanguageOptions lists the supported languages with active marking.
func LanguageOptions(active language.Tag) []LanguageOption {
	options := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		options = append(options, LanguageOption{
			Tag:      tag.String(),
			LabelKey: labelKey(tag),
			Active:   tag == active,
		})
	}
	return options
}

// LanguageURL returns path with the lang query param set to tag.
func LanguageURL(path string, rawQuery string, tag string) string {
	if strings.TrimSpace(path) == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

func labelKey(tag language.Tag) string {
	if tag == language.BrazilianPortuguese {
		return "nav.lang_pt_br"
	}
	return "nav.lang_en"
}

// supportedBase maps a matcher result, which may carry -u- extensions, back
// to the supported tag it came from.
func supportedBase(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	region, _ := tag.Region()
	for _, candidate := range supported {
		candidateBase, _ := candidate.Base()
		candidateRegion, _ := candidate.Region()
		if candidateBase == base && candidateRegion == region {
			return candidate
		}
	}
	for _, candidate := range supported {
		if candidateBase, _ := candidate.Base(); candidateBase == base {
			return candidate
		}
	}
	return Default()
}
