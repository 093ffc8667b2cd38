package session

import (
	"net/http"
	"time"

	"SmartShop/internal/lib/api/cont"

	"github.com/google/uuid"
)

const CookieName = "smartshop_session"

// New attaches a session id to every request, issuing a cookie on first
// visit. Carts and chatbot engines are keyed by it.
func New(ttl time.Duration, secure bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(CookieName); err == nil {
				if _, err = uuid.Parse(c.Value); err == nil {
					id = c.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r.WithContext(cont.PutSession(r.Context(), id)))
		})
	}
}
