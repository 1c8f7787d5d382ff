package resources

import (
	"net/http"

	"github.com/octofit/tracker/internal/services/web/platform/httpx"
	"github.com/octofit/tracker/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	name := h.schema.Name
	root := routepath.AppResource(name)
	prefix := routepath.AppResourcePrefix(name)

	mux.HandleFunc(http.MethodGet+" "+root, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+prefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+root, h.handleCreate)
	mux.HandleFunc(http.MethodPost+" "+prefix+routepath.RefreshSegment, h.handleRefresh)
	mux.HandleFunc(http.MethodPost+" "+prefix+routepath.DraftSegment, h.handleDraft)
	mux.HandleFunc(http.MethodPost+" "+prefix+routepath.EditCancelSegment, h.handleCancel)
	mux.HandleFunc(http.MethodPost+" "+prefix+routepath.RowEditPattern, h.handleBeginEdit)
	mux.HandleFunc(http.MethodPost+" "+prefix+routepath.ItemSavePattern, h.handleSave)
	mux.HandleFunc(http.MethodGet+" "+prefix+routepath.ItemSavePattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodGet+" "+prefix+routepath.ItemDeletePattern, h.handleDeleteConfirm)
	mux.HandleFunc(http.MethodPost+" "+prefix+routepath.ItemDeletePattern, h.handleDelete)
	mux.HandleFunc(http.MethodPost+" "+prefix+routepath.FormPattern, h.handleNamedForm)
	mux.HandleFunc(http.MethodGet+" "+prefix+"{rest...}", h.WriteNotFound)
}
