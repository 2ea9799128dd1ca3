// Package identity resolves the authenticated caller into a request-scoped
// tenant context. Identity issuance itself belongs to the external provider
// and the core backend; this layer only derives and validates.
package identity

import (
	"context"
	"errors"
	"fmt"

	"lexora.app/internal/auth"
	"lexora.app/internal/backend"
	"lexora.app/internal/obs"
	"lexora.app/internal/rbac"
)

// ErrUnauthenticated indicates no identity could be resolved for the request.
var ErrUnauthenticated = errors.New("identity: unauthenticated")

// TenantContext is the request-scoped authorization context. It is derived
// once per request and passed down; never persisted.
type TenantContext struct {
	User         *rbac.User
	TenantID     string
	IsSuperAdmin bool
}

// UserDirectory is the slice of the backend client the resolver needs.
type UserDirectory interface {
	GetUser(ctx context.Context, userID string) (*rbac.User, error)
	SyncUser(ctx context.Context, userID string) (*rbac.User, error)
}

// Resolver turns an authenticated token identity into a TenantContext.
type Resolver struct {
	directory UserDirectory
}

// NewResolver constructs a Resolver over the given user directory.
func NewResolver(directory UserDirectory) (*Resolver, error) {
	if directory == nil {
		return nil, errors.New("identity: user directory is required")
	}
	return &Resolver{directory: directory}, nil
}

// Resolve derives the tenant context for the current request. A missing
// token identity or a user the backend cannot produce resolves to
// ErrUnauthenticated; transport faults are returned as-is so callers can
// distinguish "who are you" from "the backend is down".
func (r *Resolver) Resolve(ctx context.Context) (TenantContext, error) {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return TenantContext{}, ErrUnauthenticated
	}

	user, err := r.directory.GetUser(ctx, id.UserID)
	if errors.Is(err, backend.ErrNotFound) {
		// First request after an external-provider sign-in: the local
		// record does not exist yet, so ask the backend to sync it.
		user, err = r.directory.SyncUser(ctx, id.UserID)
	}
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return TenantContext{}, ErrUnauthenticated
		}
		return TenantContext{}, fmt.Errorf("identity: resolve user: %w", err)
	}

	EnsureTenant(user)
	return TenantContext{
		User:         user,
		TenantID:     user.TenantID,
		IsSuperAdmin: user.Role == rbac.RoleSuperAdmin,
	}, nil
}

// EnsureTenant warns when a non-super-admin user has no tenant assigned.
// Tenant assignment is a backend responsibility; this never repairs state.
func EnsureTenant(user *rbac.User) {
	if user == nil {
		return
	}
	if user.TenantID == "" && user.Role != rbac.RoleSuperAdmin {
		obs.LogWarn("user has no tenant assigned", map[string]any{
			"user_id": user.ID,
			"role":    string(user.Role),
		})
	}
}
