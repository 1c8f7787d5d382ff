package resource

import "strings"

// FieldKind selects how a field is rendered and edited.
type FieldKind string

const (
	KindText   FieldKind = "text"
	KindNumber FieldKind = "number"
	KindDate   FieldKind = "date"
	KindEmail  FieldKind = "email"
	// KindJSON marks nested values (relations, member lists) shown as JSON.
	KindJSON FieldKind = "json"
)

// InputType returns the HTML input type for the kind.
func (k FieldKind) InputType() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindEmail:
		return "email"
	default:
		return "text"
	}
}

// Field describes one column of a collection.
type Field struct {
	Name     string
	Kind     FieldKind
	Editable bool
	// LabelKey is the message key used for column headers and form labels.
	LabelKey string
	// Required marks create-form inputs that must be filled in the browser.
	Required bool
}

// FormSpec describes a create-style form that posts new entities.
type FormSpec struct {
	// Name identifies the form within its view ("create", "join").
	Name string
	// Endpoint is the collection-relative path the form posts to.
	Endpoint   string
	Fields     []Field
	TitleKey   string
	SubmitKey  string
	SuccessKey string
}

// Schema describes one remote collection and how its view presents it.
type Schema struct {
	// Name is the stable route segment ("activities").
	Name string
	// Endpoint is the collection path relative to the API base ("activities/").
	Endpoint string
	IDField  string
	Fields   []Field
	Forms    []FormSpec

	TitleKey   string
	LoadingKey string
	// DeletePromptKey is the message key shown before a deletion.
	DeletePromptKey string
}

// IdentifierField returns the schema identifier field name.
func (s Schema) IdentifierField() string {
	if name := strings.TrimSpace(s.IDField); name != "" {
		return name
	}
	return DefaultIDField
}

// Field returns the descriptor for name.
func (s Schema) Field(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// IsEditable reports whether a draft may change name.
//
// The identifier is never editable. Fields missing from the descriptor list
// are treated as server-owned.
func (s Schema) IsEditable(name string) bool {
	if name == s.IdentifierField() {
		return false
	}
	field, ok := s.Field(name)
	return ok && field.Editable
}

// EditableFields returns the editable descriptors in column order.
func (s Schema) EditableFields() []Field {
	out := make([]Field, 0, len(s.Fields))
	for _, field := range s.Fields {
		if s.IsEditable(field.Name) {
			out = append(out, field)
		}
	}
	return out
}

// Form returns the form spec named name.
func (s Schema) Form(name string) (FormSpec, bool) {
	for _, form := range s.Forms {
		if form.Name == name {
			return form, true
		}
	}
	return FormSpec{}, false
}

// ItemPath returns the collection-relative path of one entity.
func (s Schema) ItemPath(id ID) string {
	return ItemPath(s.Endpoint, id)
}

// ItemPath joins a collection endpoint and an identifier as "{endpoint}{id}/".
func ItemPath(endpoint string, id ID) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint != "" && !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return endpoint + string(id) + "/"
}
