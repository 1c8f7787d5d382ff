package resource

import (
	"context"
	"log"
)

// Confirmer obtains an explicit yes/no decision before a deletion.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	if f == nil {
		return false
	}
	return f(ctx, prompt)
}

// Deleter removes entities after user confirmation and server success.
type Deleter struct {
	controller *Controller
	gateway    Gateway
	logf       func(format string, args ...any)
}

// NewDeleter builds a deleter for controller's collection.
func NewDeleter(controller *Controller, gateway Gateway) *Deleter {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return &Deleter{controller: controller, gateway: gateway, logf: log.Printf}
}

// Delete asks confirmer, then deletes "{endpoint}{id}/" and removes the
// entity from the collection. A declined or failed deletion leaves the
// collection unchanged.
func (d *Deleter) Delete(ctx context.Context, id ID, confirmer Confirmer) error {
	schema := d.controller.schema
	if confirmer == nil || !confirmer.Confirm(ctx, schema.DeletePromptKey) {
		return ErrDeleteDeclined
	}
	if err := d.gateway.Delete(ctx, schema.Endpoint, id); err != nil {
		d.logf("delete entity resource=%s id=%s err=%v", schema.Name, id, err)
		return err
	}
	d.controller.RemoveOne(id)
	return nil
}
