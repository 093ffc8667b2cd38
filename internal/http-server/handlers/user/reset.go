package user

import (
	"log/slog"
	"net/http"

	"SmartShop/entity"
	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func RequestReset(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.user"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.ResetRequest
		if err := render.Bind(r, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Please provide a valid email address."))
			return
		}

		if err := handler.RequestReset(r.Context(), req.Email); err != nil {
			if response.Fail(w, r, err, "Could not send the reset email, please try again.") >= http.StatusInternalServerError {
				logger.Error("request reset", sl.Err(err))
			}
			return
		}

		render.JSON(w, r, response.Message("Password reset instructions have been sent to your email."))
	}
}

func ResetPassword(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.user"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.NewPasswordRequest
		if err := render.Bind(r, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Password is required"))
			return
		}

		if err := handler.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password); err != nil {
			if response.Fail(w, r, err, "Password reset failed, please try again.") >= http.StatusInternalServerError {
				logger.Error("reset password", sl.Err(err))
			}
			return
		}

		render.JSON(w, r, response.Message("Your password has been reset! You can now log in."))
	}
}
