package user

import (
	"log/slog"
	"net/http"

	"SmartShop/entity"
	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Login(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.user"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.LoginRequest
		if err := render.Bind(r, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Username and password are required"))
			return
		}
		logger = logger.With(slog.String("username", req.Username))

		result, err := handler.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if response.Fail(w, r, err, "Login failed, please try again.") >= http.StatusInternalServerError {
				logger.Error("login", sl.Err(err))
			} else {
				logger.Debug("login refused", sl.Err(err))
			}
			return
		}

		logger.Debug("user logged in")
		render.JSON(w, r, response.Ok(result))
	}
}
