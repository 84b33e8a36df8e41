package identity

import (
	"context"

	"github.com/archipelago-ops/sitevault/pkg/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity is the authenticated identity for a request: the registered
// user the presented principal resolved to, plus request context used for
// auditing.
type Identity struct {
	User *model.User

	// Principal is the raw identifier presented by the identity provider
	// (the verified email claim).
	Principal string

	// RemoteIP is the client address for audit events.
	RemoteIP string
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
