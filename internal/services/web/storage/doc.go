// Package storage declares persistence interfaces for web-owned session data.
//
// Sessions bind a browser cookie to the API identity obtained at login. The
// collection views themselves are never persisted; a restarted service
// reloads them from the API.
package storage
