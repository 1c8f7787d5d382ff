package resource

import (
	"context"
	"sync"
)

// View composes the controller, edit session, forms and deleter of one
// collection view. Every form prepends its confirmed entity.
type View struct {
	Schema     Schema
	Controller *Controller
	Edit       *EditSession
	Deleter    *Deleter

	forms []*CreateForm

	mountOnce sync.Once
	mountErr  error
}

// NewView builds an unmounted view for schema.
func NewView(schema Schema, gateway Gateway) *View {
	controller := NewController(schema, gateway, NewMachine())
	view := &View{
		Schema:     schema,
		Controller: controller,
		Edit:       NewEditSession(controller, gateway),
		Deleter:    NewDeleter(controller, gateway),
	}
	for _, spec := range schema.Forms {
		view.forms = append(view.forms, NewCreateForm(spec, gateway, controller.PrependOne))
	}
	return view
}

// Mount performs the initial load once. It reports whether this call ran
// the load and returns that load's error.
func (v *View) Mount(ctx context.Context) (bool, error) {
	mounted := false
	v.mountOnce.Do(func() {
		mounted = true
		v.mountErr = v.Controller.Load(ctx)
	})
	if !mounted {
		return false, nil
	}
	return true, v.mountErr
}

// Forms returns the view's create forms in schema order.
func (v *View) Forms() []*CreateForm {
	out := make([]*CreateForm, len(v.forms))
	copy(out, v.forms)
	return out
}

// Form returns the form named name.
func (v *View) Form(name string) (*CreateForm, bool) {
	for _, form := range v.forms {
		if form.spec.Name == name {
			return form, true
		}
	}
	return nil, false
}

// State returns the current view state.
func (v *View) State() State {
	return v.Controller.machine.State()
}
