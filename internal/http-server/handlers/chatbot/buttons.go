package chatbot

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

func Buttons(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, handler.ChatbotButtons())
	}
}
