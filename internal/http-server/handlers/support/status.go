package support

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

func SetStatus(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := log.With(
			sl.Module("http.handlers.support"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("question", id),
		)

		var req entity.QuestionStatusRequest
		if err := render.Bind(r, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if err := handler.SetQuestionStatus(r.Context(), id, req.Status); err != nil {
			if response.Fail(w, r, err, "Failed to update question") >= http.StatusInternalServerError {
				logger.Error("set question status", sl.Err(err))
			}
			return
		}

		logger.With(slog.String("status", req.Status)).Info("question status updated")
		render.JSON(w, r, response.Message("Question status updated"))
	}
}
