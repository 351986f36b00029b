// Package session implements the anonymous session scheme: an opaque UUID
// held by the client in a persistent cookie. Sessions have no stored
// representation of their own; the identifier only appears as the owning
// key on transaction rows.
package session

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lsampaio/transactions-api/internal/api/middleware"
)

const (
	// CookieName is the cookie carrying the session identifier.
	CookieName = "sessionId"
	// CookieMaxAge is seven days, in seconds.
	CookieMaxAge = 7 * 24 * 60 * 60
)

// Resolve returns the session identifier to use for a request, given the
// value the client already holds ("" when absent). issued reports whether a
// fresh identifier was generated and must be delivered back as a cookie.
func Resolve(existing string) (id string, issued bool) {
	if existing != "" {
		return existing, false
	}
	return uuid.NewString(), true
}

// FromRequest extracts the session identifier from the request cookies,
// or "" when no session cookie is present.
func FromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// NewCookie builds the persistent, site-wide session cookie.
func NewCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:   CookieName,
		Value:  id,
		Path:   "/",
		MaxAge: CookieMaxAge,
	}
}

// Guard rejects requests that carry no session cookie with a 401 before the
// wrapped handler runs. Handlers behind it can assume FromRequest returns a
// non-empty identifier.
func Guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if FromRequest(r) == "" {
			middleware.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}
