package templates

import (
	"strings"

	"github.com/octofit/tracker/internal/services/web/routepath"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Lang         string
	Loc          Localizer
	CurrentPath  string
	CurrentQuery string
	UserName     string
	SignedIn     bool
}

// ToastView is a one-time notice shown above the page body.
type ToastView struct {
	Kind string
	Text string
}

// LayoutOptions configures the full-document layout.
type LayoutOptions struct {
	Title string
	Page  PageContext
	Toast *ToastView
}

// NavItem is one navigation link.
type NavItem struct {
	Href     string
	LabelKey string
	Active   bool
}

var navResources = []struct {
	name     string
	labelKey string
}{
	{name: "activities", labelKey: "nav.activities"},
	{name: "teams", labelKey: "nav.teams"},
	{name: "users", labelKey: "nav.users"},
	{name: "workouts", labelKey: "nav.workouts"},
}

// NavItems returns the resource navigation with the current view marked.
func NavItems(currentPath string) []NavItem {
	items := make([]NavItem, 0, len(navResources))
	for _, resource := range navResources {
		href := routepath.AppResource(resource.name)
		items = append(items, NavItem{
			Href:     href,
			LabelKey: resource.labelKey,
			Active:   currentPath == href || strings.HasPrefix(currentPath, href+"/"),
		})
	}
	return items
}
