package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"lexora.app/internal/identity"
	"lexora.app/internal/rbac"
)

// handleAuditEvents lists persisted audit events for the caller's tenant.
// Super admins may pass ?tenant_id= to inspect any tenant; everyone else
// is pinned to their own.
func (a *API) handleAuditEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	a.requirePermission(rbac.PermAuditRead, func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
		if a.auditStore == nil {
			writeError(w, r, http.StatusServiceUnavailable, "audit storage is not enabled")
			return
		}
		tenantID := tc.TenantID
		if tc.IsSuperAdmin {
			if q := r.URL.Query().Get("tenant_id"); q != "" {
				tenantID = q
			}
		}
		if tenantID == "" {
			writeError(w, r, http.StatusBadRequest, "tenant_id is required")
			return
		}
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				limit = n
			}
		}
		events, err := a.auditStore.List(r.Context(), tenantID, limit)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "could not list audit events")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"tenant_id": tenantID,
			"items":     events,
		})
	})(w, r)
}

// handleAuditStream serves the live audit feed over server-sent events.
// Subscribers only see events for their own tenant; super admins see all.
func (a *API) handleAuditStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	a.requirePermission(rbac.PermAuditRead, func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
		if a.events == nil {
			writeError(w, r, http.StatusServiceUnavailable, "audit streaming is not enabled")
			return
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, r, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		ch := a.events.Subscribe(r.Context())
		for ev := range ch {
			if !tc.IsSuperAdmin && ev.TenantID != tc.TenantID {
				continue
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: audit\ndata: %s\n\n", data)
			flusher.Flush()
		}
	})(w, r)
}
