package httpapi

import (
	"context"
	"errors"
	"net/http"

	"lexora.app/internal/audit"
	"lexora.app/internal/identity"
	"lexora.app/internal/obs"
	"lexora.app/internal/rbac"
)

// tenantHandler is a handler that runs with a resolved tenant context.
type tenantHandler func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext)

// requireAuth resolves the request identity into a tenant context. A
// request without a valid identity gets 401; a backend fault during
// resolution gets 502 so clients do not retry with new credentials.
func (a *API) requireAuth(h tenantHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc, err := a.resolver.Resolve(r.Context())
		if err != nil {
			if errors.Is(err, identity.ErrUnauthenticated) {
				obs.CountAuthzDecision("unauthenticated")
				writeError(w, r, http.StatusUnauthorized, "authentication required")
				return
			}
			obs.CountAuthzDecision("error")
			writeError(w, r, http.StatusBadGateway, "identity backend unavailable")
			return
		}
		h(w, r, tc)
	}
}

// requirePermission layers a role permission check on top of requireAuth.
// The check answers "may this role ever do this"; per-resource ownership
// and tenancy checks remain in the handlers that fetch the resource.
func (a *API) requirePermission(perm rbac.Permission, h tenantHandler) http.HandlerFunc {
	return a.requireAuth(func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
		if !rbac.HasPermission(tc.User, perm) {
			a.denyForbidden(w, r, tc, string(perm))
			return
		}
		obs.CountAuthzDecision("allowed")
		h(w, r, tc)
	})
}

// audit records an event on every configured channel: the structured log,
// the persistent store, and the live stream.
func (a *API) audit(ctx context.Context, name string, fields map[string]any) {
	_ = audit.LogEvent(ctx, name, fields)
	if a.auditStore == nil && a.events == nil {
		return
	}
	ev := audit.NewEvent(ctx, name, fields)
	if a.auditStore != nil {
		_ = a.auditStore.Append(ctx, ev)
	}
	if a.events != nil {
		a.events.Publish(ev)
	}
}

// denyForbidden writes a 403 and records the denial for audit.
func (a *API) denyForbidden(w http.ResponseWriter, r *http.Request, tc identity.TenantContext, perm string) {
	obs.CountAuthzDecision("denied")
	a.audit(r.Context(), "authz.denied", map[string]any{
		"user_id":    tc.User.ID,
		"tenant_id":  tc.TenantID,
		"role":       string(tc.User.Role),
		"permission": perm,
		"method":     r.Method,
		"path":       r.URL.Path,
	})
	writeError(w, r, http.StatusForbidden, "permission denied")
}
