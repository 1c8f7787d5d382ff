// Package workspace keeps the collection views of each browser session in
// memory, expiring sessions that stay idle.
package workspace

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/octofit/tracker/internal/services/web/resource"
)

const (
	// DefaultTTL is the idle time after which a session's views are dropped.
	DefaultTTL = 30 * time.Minute
	// DefaultCapacity bounds the number of live sessions.
	DefaultCapacity = 10_000
)

// Workspace holds one session's views, one per collection.
type Workspace struct {
	gateway resource.Gateway

	mu    sync.Mutex
	views map[string]*resource.View
}

// View returns the view for schema, creating an unmounted one on first use.
func (w *Workspace) View(schema resource.Schema) *resource.View {
	w.mu.Lock()
	defer w.mu.Unlock()
	if view, ok := w.views[schema.Name]; ok {
		return view
	}
	view := resource.NewView(schema, w.gateway)
	w.views[schema.Name] = view
	return view
}

// Store maps session IDs to workspaces.
type Store struct {
	gateway resource.Gateway
	cache   *ttlcache.Cache[string, *Workspace]
	logf    func(format string, args ...any)

	startOnce sync.Once
	stopOnce  sync.Once
}

// Option configures a Store.
type Option func(*storeConfig)

type storeConfig struct {
	ttl      time.Duration
	capacity uint64
	logf     func(format string, args ...any)
}

// WithTTL sets the idle expiry of a workspace.
func WithTTL(ttl time.Duration) Option {
	return func(cfg *storeConfig) {
		if ttl > 0 {
			cfg.ttl = ttl
		}
	}
}

// WithCapacity bounds the number of live workspaces.
func WithCapacity(capacity uint64) Option {
	return func(cfg *storeConfig) {
		if capacity > 0 {
			cfg.capacity = capacity
		}
	}
}

// WithLogger overrides the eviction logger.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(cfg *storeConfig) {
		if logf != nil {
			cfg.logf = logf
		}
	}
}

// New builds a store whose views talk to gateway.
func New(gateway resource.Gateway, opts ...Option) *Store {
	cfg := storeConfig{ttl: DefaultTTL, capacity: DefaultCapacity, logf: log.Printf}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cache := ttlcache.New[string, *Workspace](
		ttlcache.WithTTL[string, *Workspace](cfg.ttl),
		ttlcache.WithCapacity[string, *Workspace](cfg.capacity),
	)
	store := &Store{gateway: gateway, cache: cache, logf: cfg.logf}
	cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *Workspace]) {
		if reason == ttlcache.EvictionReasonDeleted {
			return
		}
		store.logf("workspace evicted session=%s reason=%s", shortID(item.Key()), evictionReason(reason))
	})
	return store
}

// Workspace returns the workspace of sessionID, creating it when missing.
// Each access extends the workspace's idle expiry.
func (s *Store) Workspace(sessionID string) *Workspace {
	sessionID = strings.TrimSpace(sessionID)
	if item := s.cache.Get(sessionID); item != nil {
		return item.Value()
	}
	item, _ := s.cache.GetOrSet(sessionID, &Workspace{
		gateway: s.gateway,
		views:   make(map[string]*resource.View),
	})
	return item.Value()
}

// View returns the session's view of schema.
func (s *Store) View(sessionID string, schema resource.Schema) *resource.View {
	return s.Workspace(sessionID).View(schema)
}

// Drop discards the session's workspace, as on logout.
func (s *Store) Drop(sessionID string) {
	s.cache.Delete(strings.TrimSpace(sessionID))
}

// Len returns the number of live workspaces.
func (s *Store) Len() int {
	return s.cache.Len()
}

// Start runs the expiry loop until ctx is done or Stop is called.
func (s *Store) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go s.cache.Start()
		go func() {
			<-ctx.Done()
			s.Stop()
		}()
	})
}

// Stop halts the expiry loop.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		s.cache.Stop()
	})
}

func evictionReason(reason ttlcache.EvictionReason) string {
	switch reason {
	case ttlcache.EvictionReasonExpired:
		return "expired"
	case ttlcache.EvictionReasonCapacityReached:
		return "capacity"
	default:
		return "deleted"
	}
}

// shortID keeps session IDs out of logs beyond a short prefix.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
