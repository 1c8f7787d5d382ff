package resources

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/octofit/tracker/internal/services/web/platform/errors"
	"github.com/octofit/tracker/internal/services/web/platform/flash"
	"github.com/octofit/tracker/internal/services/web/platform/httpx"
	"github.com/octofit/tracker/internal/services/web/platform/modulehandler"
	"github.com/octofit/tracker/internal/services/web/resource"
	"github.com/octofit/tracker/internal/services/web/routepath"
	webtemplates "github.com/octofit/tracker/internal/services/web/templates"
)

const (
	confirmParam = "confirm"
	confirmYes   = "yes"

	htmxReswapHeader = "HX-Reswap"
)

type handlers struct {
	modulehandler.Base
	schema resource.Schema
	views  ViewSource
}

func newHandlers(schema resource.Schema, views ViewSource, base modulehandler.Base) handlers {
	return handlers{Base: base, schema: schema, views: views}
}

// mountedView returns the session's view after its initial load. The load
// outlives a cancelled request so one aborted page view does not leave the
// view with a cancellation error.
func (h handlers) mountedView(r *http.Request) (*resource.View, error) {
	sessionID := h.SessionID(r)
	if sessionID == "" {
		return nil, apperrors.EK(apperrors.KindUnauthorized, "error.unauthorized", "session is required")
	}
	view := h.views.View(sessionID, h.schema)
	_, _ = view.Mount(context.WithoutCancel(httpx.RequestContext(r)))
	return view, nil
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	view, err := h.mountedView(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeView(w, r, view, http.StatusOK)
}

func (h handlers) handleRefresh(w http.ResponseWriter, r *http.Request) {
	sessionID := h.SessionID(r)
	if sessionID == "" {
		h.WriteError(w, r, apperrors.EK(apperrors.KindUnauthorized, "error.unauthorized", "session is required"))
		return
	}
	view := h.views.View(sessionID, h.schema)
	ctx := context.WithoutCancel(httpx.RequestContext(r))
	if mounted, _ := view.Mount(ctx); !mounted {
		_ = view.Controller.Load(ctx)
	}
	h.writeAfterAction(w, r, view, flash.Notice{})
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	h.submitForm(w, r, routepath.CreateFormName)
}

func (h handlers) handleNamedForm(w http.ResponseWriter, r *http.Request) {
	h.submitForm(w, r, strings.TrimSpace(r.PathValue("form")))
}

func (h handlers) submitForm(w http.ResponseWriter, r *http.Request, name string) {
	view, err := h.mountedView(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	form, ok := view.Form(name)
	if !ok {
		h.WriteNotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "parse form: "+err.Error()))
		return
	}
	values := make(map[string]string, len(form.Spec().Fields))
	for _, field := range form.Spec().Fields {
		values[field.Name] = strings.TrimSpace(r.PostForm.Get(field.Name))
	}
	if _, err := form.Submit(httpx.RequestContext(r), values); err != nil {
		h.writeView(w, r, view, httpx.FormFailureStatus(r))
		return
	}
	if httpx.IsHTMXRequest(r) {
		h.writeView(w, r, view, http.StatusOK)
		return
	}
	h.RedirectWithNotice(w, r, routepath.AppResource(h.schema.Name), flash.Success(form.TakeNotice()))
}

func (h handlers) handleBeginEdit(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(strings.TrimSpace(r.PathValue("index")))
	if err != nil || index < 0 {
		h.WriteNotFound(w, r)
		return
	}
	view, err := h.mountedView(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	entity, ok := view.Controller.At(index)
	if !ok {
		h.WriteError(w, r, resource.ErrRowNotFound)
		return
	}
	if err := view.Edit.Begin(index, entity); err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeAfterAction(w, r, view, flash.Notice{})
}

func (h handlers) handleDraft(w http.ResponseWriter, r *http.Request) {
	view, err := h.mountedView(r)
	if err == nil {
		err = h.applyDraft(r, view)
	}
	if err != nil {
		w.Header().Set(htmxReswapHeader, "innerHTML")
		h.WriteError(w, r, err)
		return
	}
	if httpx.IsHTMXRequest(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.WriteRedirect(w, r, routepath.AppResource(h.schema.Name))
}

// applyDraft copies posted editable fields into the open draft. Fields the
// schema does not list as editable are ignored.
func (h handlers) applyDraft(r *http.Request, view *resource.View) error {
	if err := r.ParseForm(); err != nil {
		return apperrors.E(apperrors.KindInvalidInput, "parse form: "+err.Error())
	}
	if _, ok := view.Edit.Active(); !ok {
		return resource.ErrNoActiveEdit
	}
	for _, field := range h.schema.EditableFields() {
		if _, posted := r.PostForm[field.Name]; !posted {
			continue
		}
		if err := view.Edit.SetField(field.Name, r.PostForm.Get(field.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (h handlers) handleSave(w http.ResponseWriter, r *http.Request) {
	id := resource.ID(strings.TrimSpace(r.PathValue("id")))
	if id == "" {
		h.WriteNotFound(w, r)
		return
	}
	view, err := h.mountedView(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	active, ok := view.Edit.ActiveID()
	if !ok {
		h.WriteError(w, r, resource.ErrNoActiveEdit)
		return
	}
	if id != active {
		h.WriteError(w, r, resource.ErrEditInProgress)
		return
	}
	if err := h.applyDraft(r, view); err != nil {
		h.WriteError(w, r, err)
		return
	}
	if _, err := view.Edit.Save(httpx.RequestContext(r), id); err != nil {
		if isStateError(err) {
			h.WriteError(w, r, err)
			return
		}
		h.writeView(w, r, view, httpx.FormFailureStatus(r))
		return
	}
	h.writeAfterAction(w, r, view, flash.Success("edit.saved"))
}

func (h handlers) handleCancel(w http.ResponseWriter, r *http.Request) {
	view, err := h.mountedView(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if err := view.Edit.Cancel(); err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeAfterAction(w, r, view, flash.Notice{})
}

func (h handlers) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id := resource.ID(strings.TrimSpace(r.PathValue("id")))
	view, err := h.mountedView(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	index, ok := view.Controller.IndexOf(id)
	if id == "" || !ok {
		h.WriteError(w, r, resource.ErrRowNotFound)
		return
	}
	entity, _ := view.Controller.At(index)
	page := h.PageContext(r)
	h.WritePage(w, r, webtemplates.T(page.Loc, "delete.title"), http.StatusOK, webtemplates.DeleteConfirmPage(page, webtemplates.DeleteConfirmView{
		PromptKey: h.schema.DeletePromptKey,
		Summary:   entitySummary(h.schema, entity, id),
		Action:    routepath.AppResourceItemDelete(h.schema.Name, string(id)),
		CancelURL: routepath.AppResource(h.schema.Name),
	}))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := resource.ID(strings.TrimSpace(r.PathValue("id")))
	if id == "" {
		h.WriteNotFound(w, r)
		return
	}
	view, err := h.mountedView(r)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	confirmed := strings.TrimSpace(r.PostFormValue(confirmParam)) == confirmYes
	listURL := routepath.AppResource(h.schema.Name)
	err = view.Deleter.Delete(httpx.RequestContext(r), id, resource.ConfirmFunc(func(context.Context, string) bool {
		return confirmed
	}))
	switch {
	case errors.Is(err, resource.ErrDeleteDeclined):
		httpx.WriteRedirect(w, r, listURL)
	case err != nil:
		message := webtemplates.T(h.Localizer(r), "delete.failed", resource.Message(err))
		h.RedirectWithNotice(w, r, listURL, flash.Failure(message))
	default:
		h.RedirectWithNotice(w, r, listURL, flash.Success("delete.success"))
	}
}

// writeAfterAction answers a successful action: HTMX requests get the
// refreshed view, full-page posts are redirected back to the list.
func (h handlers) writeAfterAction(w http.ResponseWriter, r *http.Request, view *resource.View, notice flash.Notice) {
	if httpx.IsHTMXRequest(r) {
		h.writeView(w, r, view, http.StatusOK)
		return
	}
	h.RedirectWithNotice(w, r, routepath.AppResource(h.schema.Name), notice)
}

func (h handlers) writeView(w http.ResponseWriter, r *http.Request, view *resource.View, statusCode int) {
	page := h.PageContext(r)
	h.WritePage(w, r, webtemplates.T(page.Loc, h.schema.TitleKey), statusCode, webtemplates.ResourcePage(page, resourceView(h.schema, view)))
}

func isStateError(err error) bool {
	for _, target := range []error{resource.ErrSaveInFlight, resource.ErrNoActiveEdit, resource.ErrEditInProgress, resource.ErrInvalidTransition, resource.ErrNotReady} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
