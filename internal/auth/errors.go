package auth

import "errors"

var (
	// ErrInvalidToken indicates the bearer token failed validation.
	ErrInvalidToken = errors.New("auth: invalid token")

	errMissingSecret = errors.New("auth: signing secret is not configured")
)
