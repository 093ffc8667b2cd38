package cart

import (
	"SmartShop/entity"
	"SmartShop/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
)

type Store interface {
	GetCart(ctx context.Context, sessionID string) (*entity.Cart, error)
	SaveCart(ctx context.Context, cart *entity.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

type Products interface {
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
}

type Service struct {
	store    Store
	products Products
	log      *slog.Logger
}

func NewCartService(store Store, products Products, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		products: products,
		log:      logger.With(sl.Module("cart-service")),
	}
}

// Cart returns the session cart, empty when the session has none yet.
func (s *Service) Cart(ctx context.Context, sessionID string) (*entity.Cart, error) {
	if sessionID == "" {
		return nil, entity.NewValidationError("session not found")
	}
	cart, err := s.store.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if cart == nil {
		cart = entity.NewCart(sessionID)
	}
	return cart, nil
}

func (s *Service) save(ctx context.Context, cart *entity.Cart) (*entity.Cart, error) {
	if err := s.store.SaveCart(ctx, cart); err != nil {
		s.log.With(
			slog.String("session", cart.SessionID),
			sl.Err(err),
		).Error("save cart")
		return nil, entity.PersistenceError(err)
	}
	return cart, nil
}

// Add puts one unit of the product in the cart.
func (s *Service) Add(ctx context.Context, sessionID, productID string) (*entity.Cart, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	if product == nil {
		return nil, entity.NotFoundError("product " + productID)
	}

	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.Add(product)

	return s.save(ctx, cart)
}

func (s *Service) Update(ctx context.Context, sessionID string, quantities map[string]int) (*entity.Cart, error) {
	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.SetQuantities(quantities)

	return s.save(ctx, cart)
}

// Remove drops the product line; removing an absent product is not an error.
func (s *Service) Remove(ctx context.Context, sessionID, productID string) (*entity.Cart, error) {
	cart, err := s.Cart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !cart.Remove(productID) {
		return cart, nil
	}

	return s.save(ctx, cart)
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteCart(ctx, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
