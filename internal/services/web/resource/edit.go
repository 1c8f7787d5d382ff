package resource

import (
	"context"
	"log"
	"sync"
)

// EditSession tracks the single row under inline edit and its draft.
//
// The session follows its entity by identifier: when the collection shifts
// the machine index is re-pointed at the same entity, and removing that
// entity closes the session.
type EditSession struct {
	controller *Controller
	gateway    Gateway
	logf       func(format string, args ...any)

	// mu is taken before the machine lock, never after it.
	mu      sync.Mutex
	draft   Entity
	draftID ID
	lastErr error
}

// NewEditSession builds an edit session that commits through gateway and
// then into controller.
func NewEditSession(controller *Controller, gateway Gateway) *EditSession {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	s := &EditSession{controller: controller, gateway: gateway, logf: log.Printf}
	controller.OnChange(s.resync)
	return s
}

// Begin opens the session on index with a shallow copy of source.
//
// Beginning on the row already under edit reseeds the draft; any other row
// is rejected with ErrEditInProgress while a session is open.
func (s *EditSession) Begin(index int, source Entity) error {
	if source == nil {
		return ErrRowNotFound
	}
	id, ok := source.IDOf(s.controller.schema.IdentifierField())
	if !ok {
		return ErrRowNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.controller.machine.State()
	if before.Phase == PhaseEditing && s.draft != nil && s.draftID != id {
		return ErrEditInProgress
	}
	// The draft exists before the machine leaves Ready so a racing Save
	// never sees an open session without one.
	prevDraft, prevID, prevErr := s.draft, s.draftID, s.lastErr
	s.draft, s.draftID, s.lastErr = source.Clone(), id, nil
	if _, err := s.controller.machine.Fire(EventBegin, index); err != nil {
		s.draft, s.draftID, s.lastErr = prevDraft, prevID, prevErr
		return err
	}
	current, found := s.controller.IndexOf(id)
	if !found {
		_, _ = s.controller.machine.Fire(EventRowMoved, -1)
		s.draft, s.draftID, s.lastErr = nil, "", nil
		return ErrRowNotFound
	}
	if current != index {
		_, _ = s.controller.machine.Fire(EventRowMoved, current)
	}
	return nil
}

// Active returns the index under edit.
func (s *EditSession) Active() (int, bool) {
	return s.controller.machine.State().Editing()
}

// ActiveID returns the identifier of the entity under edit.
func (s *EditSession) ActiveID() (ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return "", false
	}
	if _, open := s.controller.machine.State().Editing(); !open {
		return "", false
	}
	return s.draftID, true
}

// Draft returns a copy of the pending field values.
func (s *EditSession) Draft() Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// SetField writes value into the draft. Values stay strings until the
// server round-trip; only identifier and server-owned fields are refused.
func (s *EditSession) SetField(name string, value string) error {
	state := s.controller.machine.State()
	switch state.Phase {
	case PhaseEditing:
	case PhaseSaving:
		return ErrSaveInFlight
	default:
		return ErrNoActiveEdit
	}
	if !s.controller.schema.IsEditable(name) {
		return ErrReadOnlyField
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return ErrNoActiveEdit
	}
	s.draft[name] = value
	return nil
}

// Save sends the full draft to "{endpoint}{id}/".
//
// id must name the entity the session was opened on; any other id is
// rejected with ErrEditInProgress. On success the server's entity replaces
// the row and the session closes. On failure the session and its draft stay
// open and Err reports the server's message.
func (s *EditSession) Save(ctx context.Context, id ID) (Entity, error) {
	s.mu.Lock()
	if s.draft != nil && s.draftID != id {
		s.mu.Unlock()
		return nil, ErrEditInProgress
	}
	state, err := s.controller.machine.Fire(EventSaveStart, 0)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if s.draft == nil {
		_, _ = s.controller.machine.Fire(EventSaveFail, 0)
		s.mu.Unlock()
		return nil, ErrNoActiveEdit
	}
	payload := s.draft.Clone()
	s.mu.Unlock()

	schema := s.controller.schema
	updated, err := s.gateway.Update(ctx, schema.Endpoint, id, payload)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		_, _ = s.controller.machine.Fire(EventSaveFail, 0)
		// The row may have gone while the request was pending.
		s.resync(nil)
		s.logf("save entity resource=%s id=%s row=%d err=%v", schema.Name, id, state.Index, err)
		return nil, err
	}

	s.controller.ReplaceOne(id, updated)
	s.mu.Lock()
	s.draft, s.draftID, s.lastErr = nil, "", nil
	s.mu.Unlock()
	_, _ = s.controller.machine.Fire(EventSaveOK, 0)
	return updated.Clone(), nil
}

// Cancel discards the draft without any network call.
func (s *EditSession) Cancel() error {
	if _, err := s.controller.machine.Fire(EventCancel, 0); err != nil {
		return err
	}
	s.mu.Lock()
	s.draft, s.draftID, s.lastErr = nil, "", nil
	s.mu.Unlock()
	return nil
}

// Err returns the failure of the last save while the session stays open.
func (s *EditSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// resync re-points the machine at the draft's entity. It reads the live
// collection rather than the notified snapshot, which may already be stale.
func (s *EditSession) resync([]Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return
	}
	index, found := s.controller.IndexOf(s.draftID)
	if !found {
		index = -1
	}
	state, _ := s.controller.machine.Fire(EventRowMoved, index)
	if _, open := state.Editing(); !open {
		s.draft, s.draftID, s.lastErr = nil, "", nil
	}
}
