package web

import (
	"net/http"

	"github.com/google/uuid"
)

// sessionHeader lets scripted clients keep a session without a cookie jar.
const sessionHeader = "X-Session-ID"

// clientID returns the caller's session id, issuing a new cookie when the
// request carries no valid one.
func (s *Server) clientID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := parseClientID(r.Header.Get(sessionHeader)); ok {
		return id
	}
	if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
		if id, ok := parseClientID(c.Value); ok {
			return id
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.cfg.Session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.cfg.Session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set(sessionHeader, id)
	return id
}

// parseClientID accepts only canonical UUIDs.
func parseClientID(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
