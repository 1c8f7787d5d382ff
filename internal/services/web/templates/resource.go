package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// ResourceView is the render model of one collection view.
type ResourceView struct {
	Name       string
	TitleKey   string
	LoadingKey string
	Loading    bool
	LoadError  string
	RefreshURL string
	Columns    []ColumnView
	Rows       []RowView
	Forms      []FormView

	// Edit form wiring for the row under edit.
	EditFormID string
	SaveURL    string
	DraftURL   string
	CancelURL  string
	EditError  string
}

// ColumnView is one table header.
type ColumnView struct {
	Name     string
	LabelKey string
}

// RowView is one table row.
type RowView struct {
	Index     int
	ID        string
	Cells     []CellView
	Editing   bool
	Saving    bool
	EditURL   string
	DeleteURL string
}

// CellView is one table cell. Input cells render as draft inputs.
type CellView struct {
	Name      string
	Text      string
	InputType string
	Input     bool
	JSON      bool
}

// FormView is one create-style form.
type FormView struct {
	Name      string
	Action    string
	TitleKey  string
	SubmitKey string
	Fields    []FormFieldView
	NoticeKey string
	Error     string
}

// FormFieldView is one form input.
type FormFieldView struct {
	Name      string
	LabelKey  string
	InputType string
	Value     string
	Required  bool
}

// ResourcePage renders the main fragment of a collection view.
func ResourcePage(page PageContext, view ResourceView) templ.Component {
	return render(func(ctx context.Context, m *markup) {
		loc := page.Loc
		m.open("section", "id", "resource-"+view.Name, "class", "resource")
		m.open("div", "class", "toolbar")
		m.element("h2", T(loc, view.TitleKey))
		m.open("form", "method", "post", "action", view.RefreshURL, "hx-post", view.RefreshURL)
		m.element("button", T(loc, "table.refresh"), "type", "submit")
		m.close("form")
		m.close("div")

		if view.LoadError != "" {
			m.element("div", T(loc, "table.load_error", view.LoadError), "class", "alert alert-error", "role", "alert")
		}
		if len(view.Forms) > 0 {
			m.open("div", "class", "forms")
			for _, form := range view.Forms {
				m.component(ctx, resourceForm(loc, form))
			}
			m.close("div")
		}
		if view.Loading {
			m.element("p", T(loc, view.LoadingKey), "class", "loading")
			m.close("section")
			return
		}
		if view.EditError != "" {
			m.element("div", T(loc, "table.edit_error", view.EditError), "class", "alert alert-error", "role", "alert")
		}
		m.component(ctx, resourceTable(loc, view))
		if view.EditFormID != "" {
			m.open("form", "id", view.EditFormID, "method", "post", "action", view.SaveURL, "hx-post", view.SaveURL)
			m.close("form")
		}
		m.close("section")
	})
}

func resourceTable(loc Localizer, view ResourceView) templ.Component {
	return render(func(_ context.Context, m *markup) {
		m.open("div", "class", "card")
		m.raw("<table><thead><tr>")
		for _, column := range view.Columns {
			m.element("th", T(loc, column.LabelKey), "scope", "col")
		}
		m.element("th", T(loc, "table.actions"), "scope", "col")
		m.raw("</tr></thead><tbody>")
		if len(view.Rows) == 0 {
			m.open("tr")
			m.element("td", T(loc, "table.empty"), "colspan", strconv.Itoa(len(view.Columns)+1))
			m.close("tr")
		}
		for _, row := range view.Rows {
			m.open("tr", "id", view.Name+"-row-"+strconv.Itoa(row.Index), "data-id", row.ID)
			for _, cell := range row.Cells {
				writeCell(m, view, row, cell)
			}
			m.open("td", "class", "actions")
			writeRowActions(m, loc, view, row)
			m.close("td")
			m.close("tr")
		}
		m.raw("</tbody></table>")
		m.close("div")
	})
}

func writeCell(m *markup, view ResourceView, row RowView, cell CellView) {
	if row.Editing && cell.Input {
		m.open("td")
		m.open("input",
			"type", cell.InputType,
			"name", cell.Name,
			"value", cell.Text,
			"form", view.EditFormID,
			"aria-label", cell.Name,
			"hx-post", view.DraftURL,
			"hx-trigger", "change",
			"hx-swap", "none",
			"disabled", attrIf(row.Saving),
		)
		m.close("td")
		return
	}
	class := ""
	if cell.JSON {
		class = "json"
	}
	m.element("td", cell.Text, "class", class)
}

func writeRowActions(m *markup, loc Localizer, view ResourceView, row RowView) {
	if row.Editing {
		label := T(loc, "table.save")
		if row.Saving {
			label = T(loc, "table.saving")
		}
		m.element("button", label, "type", "submit", "form", view.EditFormID, "class", "primary", "disabled", attrIf(row.Saving))
		m.open("form", "class", "inline", "method", "post", "action", view.CancelURL, "hx-post", view.CancelURL)
		m.element("button", T(loc, "table.cancel"), "type", "submit", "disabled", attrIf(row.Saving))
		m.close("form")
		return
	}
	m.open("form", "class", "inline", "method", "post", "action", row.EditURL, "hx-post", row.EditURL)
	m.element("button", T(loc, "table.edit"), "type", "submit")
	m.close("form")
	m.element("a", T(loc, "table.delete"), "class", "button danger", "href", row.DeleteURL, "hx-get", row.DeleteURL)
}

func resourceForm(loc Localizer, form FormView) templ.Component {
	return render(func(_ context.Context, m *markup) {
		m.open("div", "class", "card", "id", "form-"+form.Name)
		m.element("h4", T(loc, form.TitleKey))
		if form.NoticeKey != "" {
			m.element("div", T(loc, form.NoticeKey), "class", "alert alert-success", "role", "status")
		}
		if form.Error != "" {
			m.element("div", T(loc, "form.error", form.Error), "class", "alert alert-error", "role", "alert")
		}
		m.open("form", "method", "post", "action", form.Action, "hx-post", form.Action)
		for _, field := range form.Fields {
			inputID := form.Name + "-" + field.Name
			m.element("label", T(loc, field.LabelKey), "for", inputID)
			m.open("input",
				"id", inputID,
				"type", field.InputType,
				"name", field.Name,
				"value", field.Value,
				"placeholder", T(loc, field.LabelKey),
				"required", attrIf(field.Required),
			)
		}
		m.element("button", T(loc, form.SubmitKey), "type", "submit", "class", "primary")
		m.close("form")
		m.close("div")
	})
}
