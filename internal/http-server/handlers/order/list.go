package order

import (
	"log/slog"
	"net/http"

	"SmartShop/internal/lib/api/cont"
	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func fail(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error, action string) {
	if response.Fail(w, r, err, "Failed to load orders") >= http.StatusInternalServerError {
		log.With(
			sl.Module("http.handlers.order"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		).Error(action, sl.Err(err))
	}
}

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := handler.UserOrders(r.Context(), cont.GetUser(r.Context()))
		if err != nil {
			fail(log, w, r, err, "user orders")
			return
		}
		render.JSON(w, r, response.Ok(orders))
	}
}

func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := handler.UserOrder(r.Context(), cont.GetUser(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			fail(log, w, r, err, "user order")
			return
		}
		render.JSON(w, r, response.Ok(order))
	}
}

func SellerList(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := handler.SellerOrders(r.Context(), cont.GetUser(r.Context()))
		if err != nil {
			fail(log, w, r, err, "seller orders")
			return
		}
		render.JSON(w, r, response.Ok(orders))
	}
}
