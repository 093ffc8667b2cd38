package support

import (
	"log/slog"
	"net/http"

	"SmartShop/entity"
	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const thanks = "Thank you for your question. Our customer service team will contact you soon."

func SubmitQuestion(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.support")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.QuestionRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Debug("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("No data provided"))
			return
		}

		question, err := handler.SubmitQuestion(r.Context(), req.Email, req.Phone, req.Question)
		if err != nil {
			status := response.Fail(w, r, err, "Failed to save your question. Please try again.")
			if status >= http.StatusInternalServerError {
				logger.Error("submit question", sl.Err(err))
			}
			return
		}

		logger.With(slog.String("question", question.ID)).Info("custom question submitted")
		render.JSON(w, r, response.Message(thanks))
	}
}
