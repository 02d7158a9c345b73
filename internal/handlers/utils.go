package handlers

import (
	"net/http"
	"strings"
)

// extractAuthToken pulls the session token from the auth_token cookie,
// falling back to a bearer Authorization header.
func extractAuthToken(r *http.Request) string {
	if c, err := r.Cookie("auth_token"); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
