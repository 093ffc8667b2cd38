package order

import (
	"log/slog"
	"net/http"

	"SmartShop/entity"
	"SmartShop/internal/lib/api/cont"
	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Checkout(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.order")
		user := cont.GetUser(r.Context())

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var shipping entity.Shipping
		if err := render.Bind(r, &shipping); err != nil {
			logger.Debug("bind shipping", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Please fill in all shipping details."))
			return
		}

		order, err := handler.Checkout(r.Context(), user, cont.GetSession(r.Context()), shipping)
		if err != nil {
			if response.Fail(w, r, err, "Checkout failed, please try again.") >= http.StatusInternalServerError {
				logger.Error("checkout", sl.Err(err))
			}
			return
		}

		logger.With(slog.String("order", order.ID)).Info("order placed")
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Response{Data: order, Success: true, Message: "Order placed successfully!"})
	}
}
