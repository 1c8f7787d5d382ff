package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/octofit/tracker/internal/services/web/module"
	"github.com/octofit/tracker/internal/services/web/resource"
	"golang.org/x/text/language"
)

type gatewayCall struct {
	method   string
	endpoint string
	id       resource.ID
	fields   resource.Entity
}

// fakeGateway implements resource.Gateway with configurable failures and
// records every call.
type fakeGateway struct {
	mu    sync.Mutex
	calls []gatewayCall

	listPayload any
	listErr     error
	createErr   error
	updateErr   error
	deleteErr   error
	nextID      int
}

var _ resource.Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) record(call gatewayCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeGateway) Calls(method string) []gatewayCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []gatewayCall
	for _, call := range f.calls {
		if call.method == method {
			out = append(out, call)
		}
	}
	return out
}

func (f *fakeGateway) List(_ context.Context, endpoint string) (any, error) {
	f.record(gatewayCall{method: http.MethodGet, endpoint: endpoint})
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listPayload, nil
}

func (f *fakeGateway) Create(_ context.Context, endpoint string, fields resource.Entity) (resource.Entity, error) {
	f.record(gatewayCall{method: http.MethodPost, endpoint: endpoint, fields: fields.Clone()})
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	f.nextID++
	id := 100 + f.nextID
	f.mu.Unlock()
	created := fields.Clone()
	created["id"] = json.Number(strconv.Itoa(id))
	return created, nil
}

func (f *fakeGateway) Update(_ context.Context, endpoint string, id resource.ID, fields resource.Entity) (resource.Entity, error) {
	f.record(gatewayCall{method: http.MethodPut, endpoint: endpoint, id: id, fields: fields.Clone()})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return fields.Clone(), nil
}

func (f *fakeGateway) Delete(_ context.Context, endpoint string, id resource.ID) error {
	f.record(gatewayCall{method: http.MethodDelete, endpoint: endpoint, id: id})
	return f.deleteErr
}

// fakeViews keeps one view per session and schema.
type fakeViews struct {
	gateway resource.Gateway

	mu    sync.Mutex
	views map[string]*resource.View
}

func newFakeViews(gateway resource.Gateway) *fakeViews {
	return &fakeViews{gateway: gateway, views: map[string]*resource.View{}}
}

func (f *fakeViews) View(sessionID string, schema resource.Schema) *resource.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := sessionID + "/" + schema.Name
	if view, ok := f.views[key]; ok {
		return view
	}
	view := resource.NewView(schema, f.gateway)
	f.views[key] = view
	return view
}

// rejection mimics an API rejection whose message is the server detail.
type rejection struct{ detail string }

func (r rejection) Error() string { return r.detail }

func decodePayload(t *testing.T, raw string) any {
	t.Helper()
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return payload
}

type harness struct {
	t       *testing.T
	gateway *fakeGateway
	views   *fakeViews
	handler http.Handler
}

func newHarness(t *testing.T, schema resource.Schema, gateway *fakeGateway) *harness {
	t.Helper()
	views := newFakeViews(gateway)
	mount, err := New(schema, views).Mount(module.Dependencies{
		ResolveSessionID: func(r *http.Request) string { return r.Header.Get("X-Test-Session") },
		ResolveViewer: func(*http.Request) module.Viewer {
			return module.Viewer{DisplayName: "mona", SignedIn: true}
		},
		ResolveLanguage: func(*http.Request) language.Tag { return language.AmericanEnglish },
	})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return &harness{t: t, gateway: gateway, views: views, handler: mount.Handler}
}

func (h *harness) do(method, target string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	h.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("X-Test-Session", "sid-1")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rr := httptest.NewRecorder()
	h.handler.ServeHTTP(rr, req)
	return rr
}

func (h *harness) view(schema resource.Schema) *resource.View {
	return h.views.View("sid-1", schema)
}
