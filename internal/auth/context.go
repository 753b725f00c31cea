package auth

import "context"

// ClientStorefront is the fixed identity label attached to requests
// that pass signature verification. One active credential set exists
// system-wide, so the label is constant rather than per-tenant.
const ClientStorefront = "storefront"

type contextKey struct{}

// Identity describes the authenticated caller of a request.
type Identity struct {
	Client string
	APIKey string
}

// ContextWithIdentity returns a context carrying the caller identity.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext retrieves the caller identity, or nil if the
// request did not pass signature verification.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(contextKey{}).(*Identity)
	return id
}
