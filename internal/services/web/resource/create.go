package resource

import (
	"context"
	"log"
	"strings"
	"sync"
)

// CreateForm submits new entities and hands the confirmed result upward.
type CreateForm struct {
	spec      FormSpec
	gateway   Gateway
	onCreated func(Entity)
	logf      func(format string, args ...any)

	mu     sync.Mutex
	values map[string]string
	notice string
	err    error
}

// NewCreateForm builds a form posting to spec.Endpoint. onCreated receives
// each confirmed entity exactly once.
func NewCreateForm(spec FormSpec, gateway Gateway, onCreated func(Entity)) *CreateForm {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return &CreateForm{
		spec:      spec,
		gateway:   gateway,
		onCreated: onCreated,
		logf:      log.Printf,
		values:    emptyValues(spec),
	}
}

// Spec returns the form description.
func (f *CreateForm) Spec() FormSpec { return f.spec }

// Submit posts fields. Only fields named by the spec are sent.
//
// On success the values reset to empty defaults, the success notice is set
// and onCreated runs. On failure the entered values are kept and Err
// reports the server's message; onCreated does not run.
func (f *CreateForm) Submit(ctx context.Context, fields map[string]string) (Entity, error) {
	entered := emptyValues(f.spec)
	payload := make(Entity, len(f.spec.Fields))
	for _, field := range f.spec.Fields {
		value := fields[field.Name]
		entered[field.Name] = value
		payload[field.Name] = value
	}

	f.mu.Lock()
	f.values = entered
	f.notice = ""
	f.err = nil
	f.mu.Unlock()

	created, err := f.gateway.Create(ctx, f.spec.Endpoint, payload)
	if err != nil {
		f.mu.Lock()
		f.err = err
		f.mu.Unlock()
		f.logf("submit form endpoint=%s form=%s err=%v", f.spec.Endpoint, f.spec.Name, err)
		return nil, err
	}

	f.mu.Lock()
	f.values = emptyValues(f.spec)
	f.notice = f.spec.SuccessKey
	f.mu.Unlock()
	if f.onCreated != nil {
		f.onCreated(created.Clone())
	}
	return created, nil
}

// Values returns the current form values.
func (f *CreateForm) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.values))
	for key, value := range f.values {
		out[key] = value
	}
	return out
}

// Err returns the failure of the last submit.
func (f *CreateForm) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// TakeNotice returns and clears the transient success notice key.
func (f *CreateForm) TakeNotice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	notice := f.notice
	f.notice = ""
	return notice
}

// Reset clears values, notice and error.
func (f *CreateForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = emptyValues(f.spec)
	f.notice = ""
	f.err = nil
}

func emptyValues(spec FormSpec) map[string]string {
	values := make(map[string]string, len(spec.Fields))
	for _, field := range spec.Fields {
		values[strings.TrimSpace(field.Name)] = ""
	}
	return values
}
