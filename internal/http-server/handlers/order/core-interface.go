package order

import (
	"context"

	"SmartShop/entity"
)

type Core interface {
	Checkout(ctx context.Context, user *entity.UserAuth, sessionID string, shipping entity.Shipping) (*entity.Order, error)
	UserOrders(ctx context.Context, user *entity.UserAuth) ([]entity.Order, error)
	UserOrder(ctx context.Context, user *entity.UserAuth, id string) (*entity.Order, error)
	SellerOrders(ctx context.Context, user *entity.UserAuth) ([]entity.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, sellerID, status string) (*entity.Order, error)
}
