package supportkey

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const Header = "X-Support-Key"

// New guards the support back-office routes with a shared key. An empty
// key disables those routes.
func New(log *slog.Logger, key string) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.supportkey")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			given := r.Header.Get(Header)
			if key == "" || subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
				log.With(
					mod,
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path),
				).Warn("support key rejected")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Invalid support key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
