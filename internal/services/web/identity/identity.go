// Package identity carries the signed-in API identity through request
// contexts.
package identity

import (
	"context"
	"strings"
)

// Identity is the API token context obtained at login or registration.
type Identity struct {
	// Key is the API token sent as "Authorization: Token {key}".
	Key      string
	Username string
}

// Anonymous reports whether no token is present.
func (i Identity) Anonymous() bool {
	return strings.TrimSpace(i.Key) == ""
}

// AuthorizationHeader returns the header value for API requests, or an empty
// string for anonymous identities.
func (i Identity) AuthorizationHeader() string {
	key := strings.TrimSpace(i.Key)
	if key == "" {
		return ""
	}
	return "Token " + key
}

type contextKey struct{}

// WithContext returns ctx carrying id.
func WithContext(ctx context.Context, id Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored in ctx.
func FromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(contextKey{}).(Identity)
	if !ok || id.Anonymous() {
		return Identity{}, false
	}
	return id, true
}
