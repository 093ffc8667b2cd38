package core

import (
	"context"
	"fmt"
	"io"

	"SmartShop/entity"
)

var errProductsUnavailable = fmt.Errorf("product service not initialized")

func (c *Core) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error) {
	if c.ps == nil {
		return nil, errProductsUnavailable
	}
	return c.ps.List(ctx, filter)
}

func (c *Core) Categories(ctx context.Context) ([]string, error) {
	if c.ps == nil {
		return nil, errProductsUnavailable
	}
	return c.ps.Categories(ctx)
}

func (c *Core) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	if c.ps == nil {
		return nil, errProductsUnavailable
	}
	return c.ps.Get(ctx, id)
}

func (c *Core) ProductImage(ctx context.Context, id, expires, sig string) (string, string, io.ReadCloser, error) {
	if c.ps == nil {
		return "", "", nil, errProductsUnavailable
	}
	return c.ps.Image(ctx, id, expires, sig)
}

func (c *Core) SellerProducts(ctx context.Context, seller *entity.UserAuth) ([]entity.Product, error) {
	if c.ps == nil {
		return nil, errProductsUnavailable
	}
	return c.ps.ListForSeller(ctx, seller)
}

func (c *Core) CreateProduct(ctx context.Context, seller *entity.UserAuth, input *entity.ProductInput, upload *entity.ImageUpload) (*entity.Product, error) {
	if c.ps == nil {
		return nil, errProductsUnavailable
	}
	return c.ps.Create(ctx, seller, input, upload)
}

func (c *Core) UpdateProduct(ctx context.Context, seller *entity.UserAuth, id string, input *entity.ProductInput, upload *entity.ImageUpload) (*entity.Product, error) {
	if c.ps == nil {
		return nil, errProductsUnavailable
	}
	return c.ps.Update(ctx, seller, id, input, upload)
}

func (c *Core) DeleteProduct(ctx context.Context, seller *entity.UserAuth, id string) error {
	if c.ps == nil {
		return errProductsUnavailable
	}
	return c.ps.Delete(ctx, seller, id)
}
