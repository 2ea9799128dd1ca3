package httpapi

import (
	"net/http"
	"strings"

	"lexora.app/internal/backend"
	"lexora.app/internal/identity"
	"lexora.app/internal/obs"
	"lexora.app/internal/rbac"
)

func (a *API) handleContracts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.requirePermission(rbac.PermContractRead, a.listContracts)(w, r)
	case http.MethodPost:
		a.requirePermission(rbac.PermContractWrite, a.createContract)(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) listContracts(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
	contracts, next, err := a.backend.ListContracts(r.Context(), listOptionsFromQuery(r))
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	writeList(w, contracts, next)
}

func (a *API) createContract(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
	var in backend.ContractInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeError(w, r, http.StatusBadRequest, "title is required")
		return
	}
	ct, err := a.backend.CreateContract(r.Context(), in)
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	a.audit(r.Context(), "contract.created", map[string]any{
		"contract_id": ct.ID,
	})
	writeJSON(w, http.StatusCreated, ct)
}

func (a *API) handleContractResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/contracts/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "unknown contract path")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.requireAuth(a.contractAction(id, rbac.PermContractRead, a.getContract))(w, r)
	case http.MethodPut:
		a.requireAuth(a.contractAction(id, rbac.PermContractWrite, a.updateContract))(w, r)
	case http.MethodDelete:
		a.requireAuth(a.contractAction(id, rbac.PermContractDelete, a.deleteContract))(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

type contractHandler func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext, ct backend.Contract)

// Contracts are owned resources: the full rule chain applies, same as
// documents.
func (a *API) contractAction(id string, perm rbac.Permission, h contractHandler) tenantHandler {
	return func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
		ct, err := a.backend.GetContract(r.Context(), id)
		if err != nil {
			handleBackendError(w, r, err)
			return
		}
		if !rbac.CanAccessResource(tc.User, ct.OwnerID, ct.TenantID, perm) {
			a.denyForbidden(w, r, tc, string(perm))
			return
		}
		obs.CountAuthzDecision("allowed")
		h(w, r, tc, ct)
	}
}

func (a *API) getContract(w http.ResponseWriter, r *http.Request, tc identity.TenantContext, ct backend.Contract) {
	writeJSON(w, http.StatusOK, ct)
}

func (a *API) updateContract(w http.ResponseWriter, r *http.Request, tc identity.TenantContext, ct backend.Contract) {
	var in backend.ContractInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := a.backend.UpdateContract(r.Context(), ct.ID, in)
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	a.audit(r.Context(), "contract.updated", map[string]any{
		"contract_id": ct.ID,
	})
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) deleteContract(w http.ResponseWriter, r *http.Request, tc identity.TenantContext, ct backend.Contract) {
	if err := a.backend.DeleteContract(r.Context(), ct.ID); err != nil {
		handleBackendError(w, r, err)
		return
	}
	a.audit(r.Context(), "contract.deleted", map[string]any{
		"contract_id": ct.ID,
	})
	w.WriteHeader(http.StatusNoContent)
}
