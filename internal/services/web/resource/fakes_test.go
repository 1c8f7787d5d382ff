package resource

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
)

type gatewayCall struct {
	method   string
	endpoint string
	id       ID
	fields   Entity
}

// fakeGateway implements Gateway with configurable responses and records
// every call.
type fakeGateway struct {
	mu    sync.Mutex
	calls []gatewayCall

	listPayload any
	listErr     error
	createFn    func(endpoint string, fields Entity) (Entity, error)
	updateFn    func(id ID, fields Entity) (Entity, error)
	deleteErr   error
}

var _ Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) record(call gatewayCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeGateway) Calls() []gatewayCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]gatewayCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeGateway) List(_ context.Context, endpoint string) (any, error) {
	f.record(gatewayCall{method: "GET", endpoint: endpoint})
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listPayload, nil
}

func (f *fakeGateway) Create(_ context.Context, endpoint string, fields Entity) (Entity, error) {
	f.record(gatewayCall{method: "POST", endpoint: endpoint, fields: fields.Clone()})
	if f.createFn == nil {
		return fields.Clone(), nil
	}
	return f.createFn(endpoint, fields)
}

func (f *fakeGateway) Update(_ context.Context, endpoint string, id ID, fields Entity) (Entity, error) {
	f.record(gatewayCall{method: "PUT", endpoint: endpoint, id: id, fields: fields.Clone()})
	if f.updateFn == nil {
		return fields.Clone(), nil
	}
	return f.updateFn(id, fields)
}

func (f *fakeGateway) Delete(_ context.Context, endpoint string, id ID) error {
	f.record(gatewayCall{method: "DELETE", endpoint: endpoint, id: id})
	return f.deleteErr
}

// decodeEntities parses a JSON payload the way the REST gateway does.
func decodeEntities(t *testing.T, raw string) any {
	t.Helper()
	var payload any
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return payload
}

// loadedController returns an activities controller loaded with raw.
func loadedController(t *testing.T, raw string) (*Controller, *fakeGateway) {
	t.Helper()
	gateway := &fakeGateway{listPayload: decodeEntities(t, raw)}
	controller := NewController(ActivitiesSchema(), gateway, NewMachine())
	controller.logf = func(string, ...any) {}
	if err := controller.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return controller, gateway
}
