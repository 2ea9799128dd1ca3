package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"lexora.app/internal/rbac"
)

// GetUser fetches the local user record for an authenticated identity.
func (c *Client) GetUser(ctx context.Context, userID string) (*rbac.User, error) {
	if userID == "" {
		return nil, errors.New("backend: user id is required")
	}
	var payload userPayload
	if err := c.do(ctx, http.MethodGet, "/internal/v1/users/"+url.PathEscape(userID), nil, &payload); err != nil {
		return nil, err
	}
	return payload.toUser(), nil
}

type syncUserRequest struct {
	ExternalID string `json:"external_id,omitempty"`
	UserID     string `json:"user_id,omitempty"`
}

// SyncUser asks the backend to create the local identity record from the
// external identity provider. Called once when GetUser reports 404 for a
// freshly signed-in user.
func (c *Client) SyncUser(ctx context.Context, userID string) (*rbac.User, error) {
	if userID == "" {
		return nil, errors.New("backend: user id is required")
	}
	var payload userPayload
	req := syncUserRequest{UserID: userID}
	if err := c.do(ctx, http.MethodPost, "/internal/v1/users/sync", req, &payload); err != nil {
		return nil, err
	}
	return payload.toUser(), nil
}
