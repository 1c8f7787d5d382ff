// Package web serves the OctoFit tracker browser UI.
//
// It binds browser sessions to REST API identities and mounts one collection
// view per resource schema, keeping per-session view state in memory between
// requests.
package web
