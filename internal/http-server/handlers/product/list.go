package product

import (
	"log/slog"
	"net/http"

	"SmartShop/entity"
	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.product")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		q := r.URL.Query()
		filter := entity.NewProductFilter(q.Get("q"), q.Get("category"), q.Get("min_price"), q.Get("max_price"), q.Get("stock"))

		products, err := handler.ListProducts(r.Context(), filter)
		if err != nil {
			logger.Error("list products", sl.Err(err))
			response.Fail(w, r, err, "Failed to load products")
			return
		}

		logger.With(slog.Int("count", len(products))).Debug("products listed")
		render.JSON(w, r, response.Ok(products))
	}
}

func Categories(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := handler.Categories(r.Context())
		if err != nil {
			log.With(
				sl.Module("http.handlers.product"),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			).Error("categories", sl.Err(err))
			response.Fail(w, r, err, "Failed to load categories")
			return
		}
		render.JSON(w, r, response.Ok(categories))
	}
}
