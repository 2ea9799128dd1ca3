package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"lexora.app/internal/backend"
	"lexora.app/internal/identity"
	"lexora.app/internal/obs"
	"lexora.app/internal/rbac"
)

func listOptionsFromQuery(r *http.Request) backend.ListOptions {
	opts := backend.ListOptions{Cursor: r.URL.Query().Get("cursor")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			opts.Limit = n
		}
	}
	return opts
}

func writeList(w http.ResponseWriter, items any, nextCursor string) {
	payload := map[string]any{"items": items}
	if nextCursor != "" {
		payload["next_cursor"] = nextCursor
	}
	writeJSON(w, http.StatusOK, payload)
}

func (a *API) handleDocuments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.requirePermission(rbac.PermDocumentRead, a.listDocuments)(w, r)
	case http.MethodPost:
		a.requirePermission(rbac.PermDocumentWrite, a.createDocument)(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) listDocuments(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
	docs, next, err := a.backend.ListDocuments(r.Context(), listOptionsFromQuery(r))
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	writeList(w, docs, next)
}

func (a *API) createDocument(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
	var in backend.CreateDocumentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeError(w, r, http.StatusBadRequest, "title is required")
		return
	}
	doc, err := a.backend.CreateDocument(r.Context(), in)
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	a.audit(r.Context(), "document.created", map[string]any{
		"document_id": doc.ID,
		"title":       doc.Title,
	})
	writeJSON(w, http.StatusCreated, doc)
}

// handleDocumentResource serves /v1/documents/{id} and its sub-actions.
// The document is fetched first and the per-resource evaluator decides
// with the document's real owner and tenant, so a cross-tenant id probes
// back 403, not 404.
func (a *API) handleDocumentResource(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, r, http.StatusNotFound, "document id is required")
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		a.requireAuth(a.documentAction(id, "read", a.getDocument))(w, r)
	case sub == "" && r.Method == http.MethodDelete:
		a.requireAuth(a.documentAction(id, "delete", a.deleteDocument))(w, r)
	case sub == "share" && r.Method == http.MethodPost:
		a.requireAuth(a.documentAction(id, "share", a.shareDocument))(w, r)
	case sub == "analyze" && r.Method == http.MethodPost:
		a.requireAuth(a.documentAction(id, "read", a.analyzeDocument))(w, r)
	case sub == "":
		methodNotAllowed(w, r, http.MethodGet, http.MethodDelete)
	default:
		writeError(w, r, http.StatusNotFound, "unknown document action")
	}
}

type documentHandler func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext, doc backend.Document)

// documentAction fetches the document and runs the ownership-aware access
// evaluator before handing off to the action handler.
func (a *API) documentAction(id, action string, h documentHandler) tenantHandler {
	return func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
		doc, err := a.backend.GetDocument(r.Context(), id)
		if err != nil {
			handleBackendError(w, r, err)
			return
		}
		if !rbac.CanAccessDocument(tc.User, doc.OwnerID, doc.TenantID, action) {
			a.denyForbidden(w, r, tc, "document."+action)
			return
		}
		obs.CountAuthzDecision("allowed")
		h(w, r, tc, doc)
	}
}

func (a *API) getDocument(w http.ResponseWriter, r *http.Request, tc identity.TenantContext, doc backend.Document) {
	writeJSON(w, http.StatusOK, doc)
}

func (a *API) deleteDocument(w http.ResponseWriter, r *http.Request, tc identity.TenantContext, doc backend.Document) {
	if err := a.backend.DeleteDocument(r.Context(), doc.ID); err != nil {
		handleBackendError(w, r, err)
		return
	}
	a.audit(r.Context(), "document.deleted", map[string]any{
		"document_id": doc.ID,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) shareDocument(w http.ResponseWriter, r *http.Request, tc identity.TenantContext, doc backend.Document) {
	var in struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Email) == "" {
		writeError(w, r, http.StatusBadRequest, "email is required")
		return
	}
	if err := a.backend.ShareDocument(r.Context(), doc.ID, in.Email); err != nil {
		handleBackendError(w, r, err)
		return
	}
	a.audit(r.Context(), "document.shared", map[string]any{
		"document_id": doc.ID,
		"email":       in.Email,
	})
	writeJSON(w, http.StatusOK, map[string]any{"status": "shared"})
}

// analyzeDocument submits the document to the AI pipeline. Reading the
// document is the gate; running analysis additionally needs the analysis
// permission.
func (a *API) analyzeDocument(w http.ResponseWriter, r *http.Request, tc identity.TenantContext, doc backend.Document) {
	if !rbac.HasPermission(tc.User, rbac.PermAnalysisRun) {
		a.denyForbidden(w, r, tc, string(rbac.PermAnalysisRun))
		return
	}
	var in struct {
		Mode string `json:"mode"`
	}
	if r.ContentLength > 0 {
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}
	job, err := a.backend.SubmitAnalysis(r.Context(), backend.SubmitAnalysisInput{
		DocumentID: doc.ID,
		Mode:       in.Mode,
	})
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	a.audit(r.Context(), "analysis.submitted", map[string]any{
		"document_id": doc.ID,
		"job_id":      job.ID,
	})
	writeJSON(w, http.StatusAccepted, job)
}
