package web

import (
	"net/http"

	webi18n "github.com/octofit/tracker/internal/services/web/i18n"
	"golang.org/x/text/language"
)

// persistLanguage stores a language picked through the lang query param so
// later requests keep it without the param.
func persistLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tag, fromQuery := webi18n.ResolveTag(r); fromQuery {
			webi18n.SetLanguageCookie(w, tag)
		}
		next.ServeHTTP(w, r)
	})
}

func resolveLanguage(r *http.Request) language.Tag {
	tag, _ := webi18n.ResolveTag(r)
	return tag
}
