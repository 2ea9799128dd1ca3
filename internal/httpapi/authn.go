package httpapi

import (
	"net/http"
	"strings"

	"lexora.app/internal/auth"
)

// Paths reachable without a bearer token. Invite acceptance is public
// because the client has no account until the invite is redeemed.
var publicPaths = map[string]bool{
	"/":                         true,
	"/healthz":                  true,
	"/readyz":                   true,
	"/metrics":                  true,
	"/v1/info":                  true,
	"/v1/portal/invites/accept": true,
}

func isPublicPath(path string) bool {
	return publicPaths[path]
}

// withAuth validates the bearer token on protected paths and stores the
// token identity in the request context. Resolution of the identity into a
// full user happens later, in requireAuth, so public paths pay nothing.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := extractBearerToken(r)
		if !ok {
			w.Header().Set("WWW-Authenticate", `Bearer realm="lexora"`)
			writeError(w, r, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := auth.ParseAndValidate(token)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="lexora", error="invalid_token"`)
			writeError(w, r, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := auth.ContextWithIdentity(r.Context(), auth.IdentityFromClaims(claims))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
