package core

import (
	"context"
	"fmt"

	"SmartShop/entity"
)

var (
	errCartUnavailable   = fmt.Errorf("cart service not initialized")
	errOrdersUnavailable = fmt.Errorf("order service not initialized")
)

func (c *Core) Cart(ctx context.Context, sessionID string) (*entity.Cart, error) {
	if c.carts == nil {
		return nil, errCartUnavailable
	}
	return c.carts.Cart(ctx, sessionID)
}

func (c *Core) AddToCart(ctx context.Context, sessionID, productID string) (*entity.Cart, error) {
	if c.carts == nil {
		return nil, errCartUnavailable
	}
	return c.carts.Add(ctx, sessionID, productID)
}

func (c *Core) UpdateCart(ctx context.Context, sessionID string, quantities map[string]int) (*entity.Cart, error) {
	if c.carts == nil {
		return nil, errCartUnavailable
	}
	return c.carts.Update(ctx, sessionID, quantities)
}

func (c *Core) RemoveFromCart(ctx context.Context, sessionID, productID string) (*entity.Cart, error) {
	if c.carts == nil {
		return nil, errCartUnavailable
	}
	return c.carts.Remove(ctx, sessionID, productID)
}

func (c *Core) Checkout(ctx context.Context, user *entity.UserAuth, sessionID string, shipping entity.Shipping) (*entity.Order, error) {
	if c.orders == nil {
		return nil, errOrdersUnavailable
	}
	return c.orders.Checkout(ctx, user, sessionID, shipping)
}

func (c *Core) UserOrders(ctx context.Context, user *entity.UserAuth) ([]entity.Order, error) {
	if c.orders == nil {
		return nil, errOrdersUnavailable
	}
	return c.orders.ListForUser(ctx, user)
}

func (c *Core) UserOrder(ctx context.Context, user *entity.UserAuth, id string) (*entity.Order, error) {
	if c.orders == nil {
		return nil, errOrdersUnavailable
	}
	return c.orders.GetForUser(ctx, user, id)
}

func (c *Core) SellerOrders(ctx context.Context, user *entity.UserAuth) ([]entity.Order, error) {
	if c.orders == nil {
		return nil, errOrdersUnavailable
	}
	return c.orders.ListForSeller(ctx, user)
}

func (c *Core) UpdateOrderStatus(ctx context.Context, orderID, sellerID, status string) (*entity.Order, error) {
	if c.orders == nil {
		return nil, errOrdersUnavailable
	}
	return c.orders.UpdateStatus(ctx, orderID, sellerID, status)
}
