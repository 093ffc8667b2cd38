package chatbot

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"SmartShop/entity"
	"SmartShop/internal/lib/api/cont"
	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Reply(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.chatbot")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.ChatbotRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
			logger.Debug("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		answer, err := handler.ChatbotAnswer(cont.GetSession(r.Context()), &req)
		if err != nil {
			logger.Error("chatbot answer", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("The assistant is not available right now, please try again."))
			return
		}

		logger.With(
			slog.String("button", req.ButtonId),
			slog.Bool("needs_info", answer.NeedsInfo),
		).Debug("chatbot reply")

		render.JSON(w, r, answer)
	}
}
