package user

import (
	"log/slog"
	"net/http"

	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func VerifyEmail(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.user"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := handler.VerifyEmail(r.Context(), chi.URLParam(r, "token")); err != nil {
			if response.Fail(w, r, err, "Verification failed, please try again.") >= http.StatusInternalServerError {
				logger.Error("verify email", sl.Err(err))
			}
			return
		}

		render.JSON(w, r, response.Message("Email verified successfully! You can now log in."))
	}
}
