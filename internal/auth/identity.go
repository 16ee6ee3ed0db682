package auth

import (
	"context"
	"errors"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Identity is the authenticated caller, resolved from the access token by the auth middleware.
type Identity struct {
	UserID    int
	Email     string
	Role      string
	SessionID string
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

type identityCtxKey struct{}

func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(*Identity)
	return identity, ok && identity != nil
}

// ErrUnknownIdentity is returned by identity resolvers when the token subject has no user behind it.
var ErrUnknownIdentity = errors.New("unknown identity")
