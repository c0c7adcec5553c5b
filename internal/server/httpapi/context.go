package httpapi

import (
	"context"

	"github.com/amitEt25/aiven-auth-assigment/internal/server/users"
)

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity returns a context carrying the authenticated subject.
func WithIdentity(ctx context.Context, id users.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom extracts the authenticated subject set by the auth middleware.
func IdentityFrom(ctx context.Context) (users.Identity, bool) {
	id, ok := ctx.Value(identityKey).(users.Identity)
	return id, ok
}
