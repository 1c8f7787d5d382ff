package publicauth

import (
	"context"
	"sync"

	"github.com/octofit/tracker/internal/services/web/identity"
	webstorage "github.com/octofit/tracker/internal/services/web/storage"
)

type fakeAuthGateway struct {
	mu       sync.Mutex
	logins   []Credentials
	register []Credentials
	id       identity.Identity
	err      error
}

func (f *fakeAuthGateway) Login(_ context.Context, creds Credentials) (identity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, creds)
	return f.result(creds)
}

func (f *fakeAuthGateway) Register(_ context.Context, creds Credentials) (identity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.register = append(f.register, creds)
	return f.result(creds)
}

func (f *fakeAuthGateway) result(creds Credentials) (identity.Identity, error) {
	if f.err != nil {
		return identity.Identity{}, f.err
	}
	if f.id != (identity.Identity{}) {
		return f.id, nil
	}
	return identity.Identity{Key: "key-" + creds.Username, Username: creds.Username}, nil
}

type fakeSessionStore struct {
	mu      sync.Mutex
	saved   map[string]webstorage.Session
	deleted []string
	saveErr error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{saved: map[string]webstorage.Session{}}
}

func (f *fakeSessionStore) SaveSession(_ context.Context, session webstorage.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[session.ID] = session
	return nil
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, sessionID)
	delete(f.saved, sessionID)
	return nil
}

func (f *fakeSessionStore) Sessions() []webstorage.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]webstorage.Session, 0, len(f.saved))
	for _, session := range f.saved {
		out = append(out, session)
	}
	return out
}

type fakeWorkspaces struct {
	mu      sync.Mutex
	dropped []string
}

func (f *fakeWorkspaces) Drop(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dropped = append(f.dropped, sessionID)
}
