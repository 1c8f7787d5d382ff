package templates

import (
	webi18n "github.com/octofit/tracker/internal/services/web/i18n"
	"golang.org/x/text/language"
)

// LanguageLink is one entry of the language switcher.
type LanguageLink struct {
	Href   string
	Label  string
	Active bool
}

// LanguageLinks returns switcher links that keep the current path and query.
func LanguageLinks(page PageContext) []LanguageLink {
	active, _ := webi18n.ParseTag(page.Lang)
	options := webi18n.LanguageOptions(active)
	links := make([]LanguageLink, 0, len(options))
	for _, option := range options {
		links = append(links, LanguageLink{
			Href:   webi18n.LanguageURL(page.CurrentPath, page.CurrentQuery, option.Tag),
			Label:  T(page.Loc, option.LabelKey),
			Active: option.Active,
		})
	}
	return links
}

func htmlLang(value string) string {
	tag, ok := webi18n.ParseTag(value)
	if !ok {
		return language.AmericanEnglish.String()
	}
	return tag.String()
}
