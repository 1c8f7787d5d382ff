// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	Root         = "/"
	Login        = "/login"
	Register     = "/register"
	Logout       = "/logout"
	Health       = "/up"
	Metrics      = "/metrics"
	StaticPrefix = "/static/"
	AppPrefix    = "/app/"
)

// Path segments below a resource prefix, in ServeMux pattern form.
const (
	RefreshSegment    = "refresh"
	DraftSegment      = "draft"
	EditCancelSegment = "edit/cancel"
	RowEditPattern    = "rows/{index}/edit"
	ItemSavePattern   = "items/{id}/save"
	ItemDeletePattern = "items/{id}/delete"
	// FormPattern addresses secondary forms such as the team join form.
	FormPattern = "{form}"
)

// CreateFormName is the form that posts to the resource root.
const CreateFormName = "create"

// AppResource returns the list page of a resource view.
func AppResource(name string) string {
	return AppPrefix + escapeSegment(name)
}

// AppResourcePrefix returns the subtree prefix of a resource view.
func AppResourcePrefix(name string) string {
	return AppResource(name) + "/"
}

// AppResourceRefresh returns the reload action.
func AppResourceRefresh(name string) string {
	return AppResourcePrefix(name) + RefreshSegment
}

// AppResourceForm returns the submit target of a named form. The create form
// posts to the resource root.
func AppResourceForm(name string, form string) string {
	form = strings.TrimSpace(form)
	if form == "" || form == CreateFormName {
		return AppResource(name)
	}
	return AppResourcePrefix(name) + escapeSegment(form)
}

// AppResourceRowEdit returns the begin-edit action for a row position.
func AppResourceRowEdit(name string, index int) string {
	return AppResourcePrefix(name) + "rows/" + strconv.Itoa(index) + "/edit"
}

// AppResourceDraft returns the draft field update action.
func AppResourceDraft(name string) string {
	return AppResourcePrefix(name) + DraftSegment
}

// AppResourceEditCancel returns the cancel-edit action.
func AppResourceEditCancel(name string) string {
	return AppResourcePrefix(name) + EditCancelSegment
}

// AppResourceItemSave returns the save action for an entity.
func AppResourceItemSave(name string, id string) string {
	return AppResourcePrefix(name) + "items/" + escapeSegment(id) + "/save"
}

// AppResourceItemDelete returns the delete confirmation page and action.
func AppResourceItemDelete(name string, id string) string {
	return AppResourcePrefix(name) + "items/" + escapeSegment(id) + "/delete"
}

// WithNext appends a post-login redirect target to path.
func WithNext(path string, next string) string {
	next = strings.TrimSpace(next)
	if next == "" {
		return path
	}
	return path + "?" + url.Values{"next": {next}}.Encode()
}

// SafeNext returns next when it is a local absolute path, else fallback.
func SafeNext(next string, fallback string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return fallback
	}
	return next
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
