// Package identity defines the authenticated caller and its request-scoped
// propagation through context.Context.
//
// The identity context is created empty at request start, set at most once by
// the authentication middleware, and discarded with the request. It is never
// shared across concurrent requests.
package identity

import (
	"context"
	"time"
)

// Identity is the caller extracted from a verified bearer token.
// Immutable once minted.
type Identity struct {
	Subject   string
	UserID    string
	Email     string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the identity carries the given role tag.
func (id Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type ctxKey struct{}

// WithIdentity returns a child context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity attached to ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
