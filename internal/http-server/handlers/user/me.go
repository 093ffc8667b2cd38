package user

import (
	"log/slog"
	"net/http"

	"SmartShop/internal/lib/api/cont"
	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Me(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.user"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		user, err := handler.Me(r.Context(), cont.GetUser(r.Context()))
		if err != nil {
			if response.Fail(w, r, err, "Failed to load profile") >= http.StatusInternalServerError {
				logger.Error("me", sl.Err(err))
			}
			return
		}

		render.JSON(w, r, response.Ok(user))
	}
}
