package resource

import (
	"context"
	"log"
	"sync"
)

// Controller keeps one collection in sync with its remote endpoint.
//
// The collection changes only through Load, PrependOne, ReplaceOne and
// RemoveOne. Each swaps the whole slice under the lock, so readers never
// observe a partial update.
type Controller struct {
	schema  Schema
	gateway Gateway
	machine *Machine
	logf    func(format string, args ...any)

	mu        sync.RWMutex
	items     []Entity
	loadErr   error
	version   uint64
	listeners map[int]func([]Entity)
	nextID    int
}

// NewController builds an empty controller in the Loading phase.
func NewController(schema Schema, gateway Gateway, machine *Machine) *Controller {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if machine == nil {
		machine = NewMachine()
	}
	return &Controller{
		schema:    schema,
		gateway:   gateway,
		machine:   machine,
		logf:      log.Printf,
		items:     []Entity{},
		listeners: make(map[int]func([]Entity)),
	}
}

// Schema returns the collection schema.
func (c *Controller) Schema() Schema { return c.schema }

// Machine returns the view state machine shared with the edit session.
func (c *Controller) Machine() *Machine { return c.machine }

// Load reads the full collection and replaces it wholesale.
//
// A failed load keeps the previous collection, records the error for
// LoadError and is not retried. Overlapping loads are not serialized; the
// last response to arrive wins.
func (c *Controller) Load(ctx context.Context) error {
	_, _ = c.machine.Fire(EventLoadStart, 0)
	payload, err := c.gateway.List(ctx, c.schema.Endpoint)
	var items []Entity
	if err == nil {
		items, err = NormalizeCollection(payload)
	}
	if err != nil {
		c.mu.Lock()
		c.loadErr = err
		c.mu.Unlock()
		_, _ = c.machine.Fire(EventLoadDone, 0)
		c.logf("load collection resource=%s err=%v", c.schema.Name, err)
		return err
	}

	c.mu.Lock()
	c.items = items
	c.loadErr = nil
	snapshot := c.commitLocked()
	c.mu.Unlock()
	_, _ = c.machine.Fire(EventLoadDone, 0)
	c.notify(snapshot)
	return nil
}

// Loading reports whether the view is waiting for its first load.
func (c *Controller) Loading() bool {
	return c.machine.State().Phase == PhaseLoading
}

// LoadError returns the failure of the most recent load, if any.
func (c *Controller) LoadError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr
}

// Snapshot returns a copy of the collection in order.
func (c *Controller) Snapshot() []Entity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneItems(c.items)
}

// Len returns the collection size.
func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// At returns a copy of the entity at index.
func (c *Controller) At(index int) (Entity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 || index >= len(c.items) {
		return nil, false
	}
	return c.items[index].Clone(), true
}

// IndexOf returns the position of the entity identified by id.
func (c *Controller) IndexOf(id ID) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexLocked(id)
}

// Version increases with every collection change.
func (c *Controller) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// PrependOne inserts a server-confirmed entity at position 0.
func (c *Controller) PrependOne(entity Entity) {
	c.mu.Lock()
	next := make([]Entity, 0, len(c.items)+1)
	next = append(next, entity.Clone())
	next = append(next, c.items...)
	c.items = next
	snapshot := c.commitLocked()
	c.mu.Unlock()
	c.notify(snapshot)
}

// ReplaceOne swaps the entity identified by id in place. It reports whether
// a matching entity was found; a miss leaves the collection untouched.
func (c *Controller) ReplaceOne(id ID, entity Entity) bool {
	c.mu.Lock()
	idx, ok := c.indexLocked(id)
	if !ok {
		c.mu.Unlock()
		return false
	}
	next := make([]Entity, len(c.items))
	copy(next, c.items)
	next[idx] = entity.Clone()
	c.items = next
	snapshot := c.commitLocked()
	c.mu.Unlock()
	c.notify(snapshot)
	return true
}

// RemoveOne drops the entity identified by id, keeping the order of the
// rest. It reports whether a matching entity was found.
func (c *Controller) RemoveOne(id ID) bool {
	c.mu.Lock()
	idx, ok := c.indexLocked(id)
	if !ok {
		c.mu.Unlock()
		return false
	}
	next := make([]Entity, 0, len(c.items)-1)
	next = append(next, c.items[:idx]...)
	next = append(next, c.items[idx+1:]...)
	c.items = next
	snapshot := c.commitLocked()
	c.mu.Unlock()
	c.notify(snapshot)
	return true
}

// OnChange registers fn to receive a snapshot after every collection change.
// The returned function unregisters it.
func (c *Controller) OnChange(fn func([]Entity)) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Controller) indexLocked(id ID) (int, bool) {
	field := c.schema.IdentifierField()
	for idx, item := range c.items {
		if itemID, ok := item.IDOf(field); ok && itemID == id {
			return idx, true
		}
	}
	return 0, false
}

// commitLocked bumps the version and returns the listeners and snapshot to
// notify once the lock is released.
func (c *Controller) commitLocked() changeSet {
	c.version++
	if len(c.listeners) == 0 {
		return changeSet{}
	}
	listeners := make([]func([]Entity), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	return changeSet{listeners: listeners, items: cloneItems(c.items)}
}

type changeSet struct {
	listeners []func([]Entity)
	items     []Entity
}

func (c *Controller) notify(set changeSet) {
	for _, fn := range set.listeners {
		fn(set.items)
	}
}

func cloneItems(items []Entity) []Entity {
	out := make([]Entity, len(items))
	for idx, item := range items {
		out[idx] = item.Clone()
	}
	return out
}
