package product

import (
	"log/slog"
	"net/http"

	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		product, err := handler.GetProduct(r.Context(), id)
		if err != nil {
			if response.Fail(w, r, err, "Failed to load product") >= http.StatusInternalServerError {
				log.With(
					sl.Module("http.handlers.product"),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("product", id),
				).Error("get product", sl.Err(err))
			}
			return
		}

		render.JSON(w, r, response.Ok(product))
	}
}
