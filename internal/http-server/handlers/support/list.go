package support

import (
	"log/slog"
	"net/http"

	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func ListQuestions(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.support"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		questions, err := handler.ListQuestions(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			if response.Fail(w, r, err, "Failed to load questions") >= http.StatusInternalServerError {
				logger.Error("list questions", sl.Err(err))
			}
			return
		}

		render.JSON(w, r, response.Ok(questions))
	}
}
