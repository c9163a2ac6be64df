package web

import (
	"net/http"

	"github.com/JonMunkholm/cardsort/internal/core"
)

// withSession makes sure the request belongs to a live session, creating one
// and setting the cookie when the browser has none or it has expired.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil && s.service.HasSession(c.Value) {
			id = c.Value
		} else {
			id = s.service.NewSession(s.cfg.Sort.DefaultVariant)
			http.SetCookie(w, &http.Cookie{
				Name:     s.cfg.Session.CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.cfg.Session.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(core.ContextWithSessionID(r.Context(), id)))
	})
}

// sessionID returns the session attached by withSession.
func sessionID(r *http.Request) string {
	return core.SessionIDFromContext(r.Context())
}
