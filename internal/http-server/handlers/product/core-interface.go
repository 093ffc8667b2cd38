package product

import (
	"context"
	"io"

	"SmartShop/entity"
)

type Core interface {
	ListProducts(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, error)
	Categories(ctx context.Context) ([]string, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	ProductImage(ctx context.Context, id, expires, sig string) (string, string, io.ReadCloser, error)

	SellerProducts(ctx context.Context, seller *entity.UserAuth) ([]entity.Product, error)
	CreateProduct(ctx context.Context, seller *entity.UserAuth, input *entity.ProductInput, upload *entity.ImageUpload) (*entity.Product, error)
	UpdateProduct(ctx context.Context, seller *entity.UserAuth, id string, input *entity.ProductInput, upload *entity.ImageUpload) (*entity.Product, error)
	DeleteProduct(ctx context.Context, seller *entity.UserAuth, id string) error
}
