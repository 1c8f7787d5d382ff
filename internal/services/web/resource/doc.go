// Package resource implements the list-synchronization and inline-edit
// contract shared by every collection view of the web service.
//
// A View owns one Controller (the in-memory collection for one remote
// collection endpoint), one EditSession (at most one row under edit), the
// CreateForms that add entities, and a Deleter. Every mutation of the
// collection is gated on a confirmed response from the remote API; the only
// insertion path prepends the server's returned entity, never a client guess.
//
// View state is an explicit Machine with the phases Loading, Ready,
// Editing(i) and Saving(i). Loads are not serialized against edits: a late
// load response replaces the collection while a draft stays open.
package resource
