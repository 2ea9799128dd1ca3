package httpapi

import (
	"net/http"
	"strings"

	"lexora.app/internal/backend"
	"lexora.app/internal/identity"
	"lexora.app/internal/obs"
	"lexora.app/internal/rbac"
)

func (a *API) handleCases(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.requirePermission(rbac.PermCaseRead, a.listCases)(w, r)
	case http.MethodPost:
		a.requirePermission(rbac.PermCaseWrite, a.createCase)(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) listCases(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
	cases, next, err := a.backend.ListCases(r.Context(), listOptionsFromQuery(r))
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	writeList(w, cases, next)
}

func (a *API) createCase(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
	var in backend.CaseInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeError(w, r, http.StatusBadRequest, "title is required")
		return
	}
	cs, err := a.backend.CreateCase(r.Context(), in)
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	a.audit(r.Context(), "case.created", map[string]any{
		"case_id": cs.ID,
		"title":   cs.Title,
	})
	writeJSON(w, http.StatusCreated, cs)
}

func (a *API) handleCaseResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/cases/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "unknown case path")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.requireAuth(a.caseAction(id, "read", a.getCase))(w, r)
	case http.MethodPut:
		a.requireAuth(a.caseAction(id, "write", a.updateCase))(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}

type caseHandler func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext, cs backend.Case)

// caseAction fetches the case and runs the tenant-shared case evaluator.
// Ownership is deliberately not consulted here.
func (a *API) caseAction(id, action string, h caseHandler) tenantHandler {
	return func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
		cs, err := a.backend.GetCase(r.Context(), id)
		if err != nil {
			handleBackendError(w, r, err)
			return
		}
		if !rbac.CanAccessCase(tc.User, cs.TenantID, action) {
			a.denyForbidden(w, r, tc, "case."+action)
			return
		}
		obs.CountAuthzDecision("allowed")
		h(w, r, tc, cs)
	}
}

func (a *API) getCase(w http.ResponseWriter, r *http.Request, tc identity.TenantContext, cs backend.Case) {
	writeJSON(w, http.StatusOK, cs)
}

func (a *API) updateCase(w http.ResponseWriter, r *http.Request, tc identity.TenantContext, cs backend.Case) {
	var in backend.CaseInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := a.backend.UpdateCase(r.Context(), cs.ID, in)
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	a.audit(r.Context(), "case.updated", map[string]any{
		"case_id": cs.ID,
	})
	writeJSON(w, http.StatusOK, updated)
}
