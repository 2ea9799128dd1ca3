package backend

import (
	"context"
	"net/http"

	"lexora.app/internal/auth"
)

// applyIdentityHeaders mirrors the authenticated identity onto the outbound
// request so the backend can scope queries without a second token exchange.
func applyIdentityHeaders(ctx context.Context, req *http.Request) {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return
	}
	req.Header.Set(headerUserID, id.UserID)
	if id.Role != "" {
		req.Header.Set(headerRole, string(id.Role))
	}
	if id.TenantID != "" {
		req.Header.Set(headerTenantID, id.TenantID)
	}
}
