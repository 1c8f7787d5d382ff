package resources

import (
	"strings"

	"github.com/octofit/tracker/internal/services/web/resource"
	"github.com/octofit/tracker/internal/services/web/routepath"
	webtemplates "github.com/octofit/tracker/internal/services/web/templates"
)

// editFormID returns the id of the hidden form that collects the draft
// inputs of the row under edit.
func editFormID(schema resource.Schema) string {
	return "edit-" + schema.Name
}

// resourceView maps the current view state to its render model. Reading the
// view consumes transient form notices.
func resourceView(schema resource.Schema, view *resource.View) webtemplates.ResourceView {
	out := webtemplates.ResourceView{
		Name:       schema.Name,
		TitleKey:   schema.TitleKey,
		LoadingKey: schema.LoadingKey,
		Loading:    view.Controller.Loading(),
		LoadError:  resource.Message(view.Controller.LoadError()),
		RefreshURL: routepath.AppResourceRefresh(schema.Name),
		Columns:    columnViews(schema),
		Forms:      formViews(schema, view),
	}

	state := view.State()
	saving := state.Phase == resource.PhaseSaving
	editID, editing := view.Edit.ActiveID()
	var draft resource.Entity
	if editing {
		draft = view.Edit.Draft()
	}

	items := view.Controller.Snapshot()
	out.Rows = make([]webtemplates.RowView, 0, len(items))
	for index, entity := range items {
		id, _ := entity.IDOf(schema.IdentifierField())
		row := webtemplates.RowView{
			Index:     index,
			ID:        string(id),
			EditURL:   routepath.AppResourceRowEdit(schema.Name, index),
			DeleteURL: routepath.AppResourceItemDelete(schema.Name, string(id)),
		}
		source := entity
		if editing && id == editID && draft != nil {
			row.Editing = true
			row.Saving = saving
			source = draft
			out.EditFormID = editFormID(schema)
			out.SaveURL = routepath.AppResourceItemSave(schema.Name, string(editID))
			out.DraftURL = routepath.AppResourceDraft(schema.Name)
			out.CancelURL = routepath.AppResourceEditCancel(schema.Name)
			out.EditError = resource.Message(view.Edit.Err())
		}
		row.Cells = cellViews(schema, source, row.Editing)
		out.Rows = append(out.Rows, row)
	}
	return out
}

func columnViews(schema resource.Schema) []webtemplates.ColumnView {
	columns := make([]webtemplates.ColumnView, 0, len(schema.Fields))
	for _, field := range schema.Fields {
		columns = append(columns, webtemplates.ColumnView{Name: field.Name, LabelKey: field.LabelKey})
	}
	return columns
}

func cellViews(schema resource.Schema, entity resource.Entity, editing bool) []webtemplates.CellView {
	cells := make([]webtemplates.CellView, 0, len(schema.Fields))
	for _, field := range schema.Fields {
		cells = append(cells, webtemplates.CellView{
			Name:      field.Name,
			Text:      resource.FieldText(entity[field.Name]),
			InputType: field.Kind.InputType(),
			Input:     editing && schema.IsEditable(field.Name),
			JSON:      field.Kind == resource.KindJSON,
		})
	}
	return cells
}

func formViews(schema resource.Schema, view *resource.View) []webtemplates.FormView {
	forms := view.Forms()
	out := make([]webtemplates.FormView, 0, len(forms))
	for _, form := range forms {
		spec := form.Spec()
		values := form.Values()
		fields := make([]webtemplates.FormFieldView, 0, len(spec.Fields))
		for _, field := range spec.Fields {
			fields = append(fields, webtemplates.FormFieldView{
				Name:      field.Name,
				LabelKey:  field.LabelKey,
				InputType: field.Kind.InputType(),
				Value:     values[field.Name],
				Required:  field.Required,
			})
		}
		out = append(out, webtemplates.FormView{
			Name:      spec.Name,
			Action:    routepath.AppResourceForm(schema.Name, spec.Name),
			TitleKey:  spec.TitleKey,
			SubmitKey: spec.SubmitKey,
			Fields:    fields,
			NoticeKey: form.TakeNotice(),
			Error:     resource.Message(form.Err()),
		})
	}
	return out
}

// entitySummary names an entity on the delete confirmation page: its first
// non-empty text field, followed by its identifier.
func entitySummary(schema resource.Schema, entity resource.Entity, id resource.ID) string {
	for _, field := range schema.Fields {
		if field.Name == schema.IdentifierField() || field.Kind != resource.KindText {
			continue
		}
		if text := strings.TrimSpace(resource.FieldText(entity[field.Name])); text != "" {
			return text + " (#" + string(id) + ")"
		}
	}
	return "#" + string(id)
}
