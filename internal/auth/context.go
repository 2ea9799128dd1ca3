package auth

import (
	"context"
	"strings"

	"lexora.app/internal/rbac"
)

// Identity is the authenticated caller as carried by a validated session
// token, before the full user record has been resolved.
type Identity struct {
	UserID   string
	Role     rbac.Role
	TenantID string
}

type ctxKey string

const identityKey ctxKey = "auth_identity"

// ContextWithIdentity stores the authenticated identity in the context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	id.UserID = strings.TrimSpace(id.UserID)
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the authenticated identity from context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	v, ok := ctx.Value(identityKey).(Identity)
	if !ok || v.UserID == "" {
		return Identity{}, false
	}
	return v, true
}

// UserIDFromContext returns just the authenticated user id, for log and
// audit enrichment.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return "", false
	}
	return id.UserID, true
}

// IdentityFromClaims converts validated token claims into an Identity.
func IdentityFromClaims(claims *Claims) Identity {
	if claims == nil {
		return Identity{}
	}
	role, _ := rbac.ParseRole(claims.Role)
	return Identity{
		UserID:   claims.Subject,
		Role:     role,
		TenantID: claims.TenantID,
	}
}
