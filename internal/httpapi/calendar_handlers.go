package httpapi

import (
	"net/http"
	"strings"

	"lexora.app/internal/backend"
	"lexora.app/internal/identity"
	"lexora.app/internal/rbac"
)

func (a *API) handleCalendarEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.requirePermission(rbac.PermCalendarRead, a.listCalendarEvents)(w, r)
	case http.MethodPost:
		a.requirePermission(rbac.PermCalendarWrite, a.createCalendarEvent)(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) listCalendarEvents(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
	events, next, err := a.backend.ListCalendarEvents(r.Context(), listOptionsFromQuery(r))
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	writeList(w, events, next)
}

func (a *API) createCalendarEvent(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
	var in backend.CalendarEventInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeError(w, r, http.StatusBadRequest, "title is required")
		return
	}
	if in.StartsAt.IsZero() {
		writeError(w, r, http.StatusBadRequest, "starts_at is required")
		return
	}
	ev, err := a.backend.CreateCalendarEvent(r.Context(), in)
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	a.audit(r.Context(), "calendar.event_created", map[string]any{
		"event_id": ev.ID,
	})
	writeJSON(w, http.StatusCreated, ev)
}

func (a *API) handleCalendarEventResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/calendar/events/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "unknown calendar path")
		return
	}

	if r.Method != http.MethodDelete {
		methodNotAllowed(w, r, http.MethodDelete)
		return
	}
	a.requirePermission(rbac.PermCalendarWrite, func(w http.ResponseWriter, r *http.Request, tc identity.TenantContext) {
		if err := a.backend.DeleteCalendarEvent(r.Context(), id); err != nil {
			handleBackendError(w, r, err)
			return
		}
		a.audit(r.Context(), "calendar.event_deleted", map[string]any{
			"event_id": id,
		})
		w.WriteHeader(http.StatusNoContent)
	})(w, r)
}
