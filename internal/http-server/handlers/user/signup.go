package user

import (
	"errors"
	"log/slog"
	"net/http"

	"SmartShop/entity"
	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Signup(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.user")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.SignupRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Debug("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Please fill in a username, a valid email, a password and a role."))
			return
		}
		logger = logger.With(slog.String("username", req.Username))

		user, err := handler.Signup(r.Context(), &req)
		if err != nil {
			if errors.Is(err, entity.ErrNotification) {
				logger.Error("verification mail", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("Your account was created but the verification email could not be sent. Please request a new link later."))
				return
			}
			if response.Fail(w, r, err, "Registration failed, please try again.") >= http.StatusInternalServerError {
				logger.Error("signup", sl.Err(err))
			}
			return
		}

		logger.Info("user signed up")
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Response{
			Data:    user,
			Success: true,
			Message: "Registration successful! Please check your email to verify your account.",
		})
	}
}
