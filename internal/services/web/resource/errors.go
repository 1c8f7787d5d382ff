package resource

import (
	"errors"
	"strings"
)

var (
	// ErrUnexpectedPayload reports a list response that is neither an array
	// nor a results envelope.
	ErrUnexpectedPayload = errors.New("unexpected collection payload")
	// ErrNotReady rejects edits while the initial load is pending.
	ErrNotReady = errors.New("view is still loading")
	// ErrEditInProgress rejects a second edit session for another row.
	ErrEditInProgress = errors.New("another row is being edited")
	// ErrSaveInFlight rejects edit operations while a save is pending.
	ErrSaveInFlight = errors.New("save already in progress")
	// ErrNoActiveEdit reports an operation that needs an open edit session.
	ErrNoActiveEdit = errors.New("no row is being edited")
	// ErrInvalidTransition reports an event the current state cannot accept.
	ErrInvalidTransition = errors.New("invalid view transition")
	// ErrReadOnlyField rejects draft writes to identifier or server-owned fields.
	ErrReadOnlyField = errors.New("field is read-only")
	// ErrRowNotFound reports an index outside the collection.
	ErrRowNotFound = errors.New("row not found")
	// ErrDeleteDeclined reports a deletion the user did not confirm.
	ErrDeleteDeclined = errors.New("deletion declined")
	// ErrGatewayUnavailable reports a view built without a remote gateway.
	ErrGatewayUnavailable = errors.New("resource gateway is not configured")
)

// Message returns the user-visible text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(err.Error())
}
