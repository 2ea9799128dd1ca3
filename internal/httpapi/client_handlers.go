package httpapi

import (
	"net/http"
	"strings"

	"lexora.app/internal/backend"
	"lexora.app/internal/identity"
	"lexora.app/internal/rbac"
)

func (a *API) handleClients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.requirePermission(rbac.PermClientRead, a.listClients)(w, r)
	case http.MethodPost:
		a.requirePermission(rbac.PermClientWrite, a.createClient)(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) listClients(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
	clients, next, err := a.backend.ListClients(r.Context(), listOptionsFromQuery(r))
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	writeList(w, clients, next)
}

func (a *API) createClient(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
	var in backend.ClientInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}
	rec, err := a.backend.CreateClient(r.Context(), in)
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	a.audit(r.Context(), "client.created", map[string]any{
		"client_id": rec.ID,
	})
	writeJSON(w, http.StatusCreated, rec)
}

func (a *API) handleClientResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/clients/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "unknown client path")
		return
	}

	if r.Method != http.MethodPut {
		methodNotAllowed(w, r, http.MethodPut)
		return
	}
	a.requirePermission(rbac.PermClientWrite, func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
		var in backend.ClientInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		rec, err := a.backend.UpdateClient(r.Context(), id, in)
		if err != nil {
			handleBackendError(w, r, err)
			return
		}
		a.audit(r.Context(), "client.updated", map[string]any{
			"client_id": rec.ID,
		})
		writeJSON(w, http.StatusOK, rec)
	})(w, r)
}
