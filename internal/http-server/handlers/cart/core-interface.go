package cart

import (
	"context"

	"SmartShop/entity"
)

type Core interface {
	Cart(ctx context.Context, sessionID string) (*entity.Cart, error)
	AddToCart(ctx context.Context, sessionID, productID string) (*entity.Cart, error)
	UpdateCart(ctx context.Context, sessionID string, quantities map[string]int) (*entity.Cart, error)
	RemoveFromCart(ctx context.Context, sessionID, productID string) (*entity.Cart, error)
}
