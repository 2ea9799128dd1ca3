package httpapi

import (
	"net/http"

	"lexora.app/internal/identity"
	"lexora.app/internal/rbac"
)

func (a *API) handleMe(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":           tc.User,
		"tenant_id":      tc.TenantID,
		"is_super_admin": tc.IsSuperAdmin,
		"permissions":    rbac.PermissionsForRole(tc.User.Role),
	})
}

// handleFeatures returns the feature matrix row for the caller's role,
// shaped for UI gating.
func (a *API) handleFeatures(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	type featureEntry struct {
		Feature          string           `json:"feature"`
		Access           rbac.AccessLevel `json:"access"`
		Enabled          bool             `json:"enabled"`
		RequiresApproval bool             `json:"requires_approval"`
	}
	entries := make([]featureEntry, 0, len(rbac.Features))
	for _, f := range rbac.Features {
		entries = append(entries, featureEntry{
			Feature:          f,
			Access:           rbac.FeatureAccess(tc.User, f),
			Enabled:          rbac.CanAccessFeature(tc.User, f),
			RequiresApproval: rbac.RequiresApproval(tc.User, f),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"role":     tc.User.Role,
		"features": entries,
	})
}
