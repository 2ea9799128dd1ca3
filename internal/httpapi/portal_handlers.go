package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"lexora.app/internal/identity"
	"lexora.app/internal/portal"
	"lexora.app/internal/rbac"
)

// handlePortalInvites issues client-portal invites. Issuing is a tenant
// operation gated by the client-management permission; the one-time
// passcode appears only in this response.
func (a *API) handlePortalInvites(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if a.invites == nil {
		writeError(w, r, http.StatusServiceUnavailable, "portal invites are not enabled")
		return
	}
	a.requirePermission(rbac.PermClientWrite, func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
		var in struct {
			ClientEmail string `json:"client_email"`
		}
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(in.ClientEmail) == "" {
			writeError(w, r, http.StatusBadRequest, "client_email is required")
			return
		}
		if tc.TenantID == "" {
			writeError(w, r, http.StatusBadRequest, "caller has no tenant")
			return
		}
		inv, passcode, err := a.invites.Issue(r.Context(), tc.TenantID, in.ClientEmail, tc.User.ID)
		if err != nil {
			if errors.Is(err, portal.ErrInvalidInput) {
				writeError(w, r, http.StatusBadRequest, "invalid invite input")
				return
			}
			writeError(w, r, http.StatusInternalServerError, "could not issue invite")
			return
		}
		a.audit(r.Context(), "portal.invite_issued", map[string]any{
			"invite_id":    inv.ID,
			"client_email": inv.ClientEmail,
		})
		writeJSON(w, http.StatusCreated, map[string]any{
			"invite_id":    inv.ID,
			"client_email": inv.ClientEmail,
			"expires_at":   inv.ExpiresAt,
			"passcode":     passcode,
		})
	})(w, r)
}

// handlePortalInviteAccept redeems an invite. The route is public: the
// client has no account yet.
func (a *API) handlePortalInviteAccept(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if a.invites == nil {
		writeError(w, r, http.StatusServiceUnavailable, "portal invites are not enabled")
		return
	}
	var in struct {
		InviteID string `json:"invite_id"`
		Passcode string `json:"passcode"`
	}
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	inv, err := a.invites.Redeem(r.Context(), in.InviteID, in.Passcode)
	if err != nil {
		switch {
		case errors.Is(err, portal.ErrNotFound), errors.Is(err, portal.ErrInvalidPasscode):
			// One message for both so a probe cannot tell a bad id from
			// a bad passcode.
			writeError(w, r, http.StatusUnauthorized, "invalid invite or passcode")
		case errors.Is(err, portal.ErrExpired):
			writeError(w, r, http.StatusGone, "invite expired")
		case errors.Is(err, portal.ErrAlreadyUsed):
			writeError(w, r, http.StatusConflict, "invite already accepted")
		case errors.Is(err, portal.ErrInvalidInput):
			writeError(w, r, http.StatusBadRequest, "invite_id and passcode are required")
		default:
			writeError(w, r, http.StatusInternalServerError, "could not redeem invite")
		}
		return
	}
	a.audit(r.Context(), "portal.invite_accepted", map[string]any{
		"invite_id": inv.ID,
		"tenant_id": inv.TenantID,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"invite_id":    inv.ID,
		"tenant_id":    inv.TenantID,
		"client_email": inv.ClientEmail,
		"accepted_at":  inv.AcceptedAt,
	})
}
