package httpapi

import (
	"net/http"
	"strings"

	"lexora.app/internal/backend"
	"lexora.app/internal/identity"
	"lexora.app/internal/rbac"
)

// AI surfaces: analysis polling, moot court sessions, translation jobs.
// Feature-matrix approval states are advisory for the UI; the hard gate
// here is the role permission.

func (a *API) handleAnalysisResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/analysis/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "unknown analysis path")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	a.requirePermission(rbac.PermAnalysisRun, func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
		job, err := a.backend.GetAnalysis(r.Context(), id)
		if err != nil {
			handleBackendError(w, r, err)
			return
		}
		if !tc.IsSuperAdmin && job.TenantID != "" && job.TenantID != tc.TenantID {
			a.denyForbidden(w, r, tc, string(rbac.PermAnalysisRun))
			return
		}
		writeJSON(w, http.StatusOK, job)
	})(w, r)
}

func (a *API) handleMootSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	a.requirePermission(rbac.PermMootRun, func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
		var in backend.CreateMootSessionInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(in.Topic) == "" {
			writeError(w, r, http.StatusBadRequest, "topic is required")
			return
		}
		session, err := a.backend.CreateMootSession(r.Context(), in)
		if err != nil {
			handleBackendError(w, r, err)
			return
		}
		a.audit(r.Context(), "moot.session_created", map[string]any{
			"session_id": session.ID,
		})
		writeJSON(w, http.StatusCreated, session)
	})(w, r)
}

func (a *API) handleMootSessionResource(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/moot/sessions/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" || sub != "messages" {
		writeError(w, r, http.StatusNotFound, "unknown moot path")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	a.requirePermission(rbac.PermMootRun, func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
		var in backend.MootMessageInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(in.Content) == "" {
			writeError(w, r, http.StatusBadRequest, "content is required")
			return
		}
		msg, err := a.backend.SendMootMessage(r.Context(), id, in)
		if err != nil {
			handleBackendError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, msg)
	})(w, r)
}

func (a *API) handleTranslations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	a.requirePermission(rbac.PermTranslationRun, func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
		var in backend.SubmitTranslationInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if in.DocumentID == "" && strings.TrimSpace(in.Text) == "" {
			writeError(w, r, http.StatusBadRequest, "document_id or text is required")
			return
		}
		if in.SourceLang == "" || in.TargetLang == "" {
			writeError(w, r, http.StatusBadRequest, "source_lang and target_lang are required")
			return
		}
		job, err := a.backend.SubmitTranslation(r.Context(), in)
		if err != nil {
			handleBackendError(w, r, err)
			return
		}
		a.audit(r.Context(), "translation.submitted", map[string]any{
			"job_id": job.ID,
		})
		writeJSON(w, http.StatusAccepted, job)
	})(w, r)
}

func (a *API) handleTranslationResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/translations/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "unknown translation path")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	a.requirePermission(rbac.PermTranslationRun, func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
		job, err := a.backend.GetTranslation(r.Context(), id)
		if err != nil {
			handleBackendError(w, r, err)
			return
		}
		if !tc.IsSuperAdmin && job.TenantID != "" && job.TenantID != tc.TenantID {
			a.denyForbidden(w, r, tc, string(rbac.PermTranslationRun))
			return
		}
		writeJSON(w, http.StatusOK, job)
	})(w, r)
}
