package order

import (
	"errors"
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

func UpdateStatus(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sellerID := ""
		if seller := cont.GetUser(r.Context()); seller != nil {
			sellerID = seller.ID
		}

		logger := log.With(
			sl.Module("http.handlers.order"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("order", id),
		)

		var req entity.StatusUpdateRequest
		if err := render.Bind(r, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Status is required"))
			return
		}
		logger = logger.With(slog.String("status", req.Status))

		order, err := handler.UpdateOrderStatus(r.Context(), id, sellerID, req.Status)
		if err != nil {
			if errors.Is(err, entity.ErrConflict) {
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("The order was changed by someone else, please reload it."))
				return
			}
			if response.Fail(w, r, err, "Failed to update order status") >= http.StatusInternalServerError {
				logger.Error("update order status", sl.Err(err))
			} else {
				logger.Debug("status update refused", sl.Err(err))
			}
			return
		}

		logger.Info("order status updated")
		render.JSON(w, r, response.Response{Data: order, Success: true, Message: "Order status updated to " + string(order.Status)})
	}
}
