package cart

import (
	"log/slog"
	"net/http"

	"SmartShop/entity"
	"SmartShop/internal/lib/api/cont"
	"SmartShop/internal/lib/api/response"
	"SmartShop/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func respond(log *slog.Logger, w http.ResponseWriter, r *http.Request, cart *entity.Cart, err error, action string) {
	if err != nil {
		if response.Fail(w, r, err, "Failed to update your cart") >= http.StatusInternalServerError {
			log.With(
				sl.Module("http.handlers.cart"),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			).Error(action, sl.Err(err))
		}
		return
	}
	render.JSON(w, r, response.Ok(cart.View()))
}

func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cart, err := handler.Cart(r.Context(), cont.GetSession(r.Context()))
		respond(log, w, r, cart, err, "get cart")
	}
}

func Add(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cart, err := handler.AddToCart(r.Context(), cont.GetSession(r.Context()), chi.URLParam(r, "product_id"))
		respond(log, w, r, cart, err, "add to cart")
	}
}

func Update(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req entity.CartUpdateRequest
		if err := render.Bind(r, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		cart, err := handler.UpdateCart(r.Context(), cont.GetSession(r.Context()), req.Quantities)
		respond(log, w, r, cart, err, "update cart")
	}
}

func Remove(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cart, err := handler.RemoveFromCart(r.Context(), cont.GetSession(r.Context()), chi.URLParam(r, "product_id"))
		respond(log, w, r, cart, err, "remove from cart")
	}
}
