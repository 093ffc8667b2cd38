package order

import (
	"SmartShop/entity"
	"SmartShop/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

type Repository interface {
	SaveOrder(ctx context.Context, order *entity.Order) error
	GetOrder(ctx context.Context, id string) (*entity.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]entity.Order, error)
	ListOrdersBySeller(ctx context.Context, sellerID string) ([]entity.Order, error)
	ApplyStatusChange(ctx context.Context, change *entity.StatusChange) error
}

type Carts interface {
	Cart(ctx context.Context, sessionID string) (*entity.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type EventPublisher interface {
	PublishOrderEvent(event *entity.OrderEvent)
}

type Service struct {
	repository Repository
	carts      Carts
	publisher  EventPublisher
	strict     bool
	now        func() time.Time
	log        *slog.Logger
}

func NewOrderService(repo Repository, carts Carts, strict bool, logger *slog.Logger) *Service {
	return &Service{
		repository: repo,
		carts:      carts,
		strict:     strict,
		now:        func() time.Time { return time.Now().UTC() },
		log:        logger.With(sl.Module("order-service")),
	}
}

func (s *Service) SetEventPublisher(publisher EventPublisher) {
	s.publisher = publisher
}

// Checkout turns the session cart into a pending order and empties the cart.
func (s *Service) Checkout(ctx context.Context, user *entity.UserAuth, sessionID string, shipping entity.Shipping) (*entity.Order, error) {
	if !user.IsClient() {
		return nil, entity.AuthorizationError("only clients can place orders")
	}

	cart, err := s.carts.Cart(ctx, sessionID)
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	if cart == nil || cart.IsEmpty() {
		return nil, entity.NewValidationError("Your cart is empty.")
	}

	order := entity.NewOrder(user.ID, shipping, cart)
	if err = s.repository.SaveOrder(ctx, order); err != nil {
		s.log.With(
			sl.Err(err),
		).Error("save order")
		return nil, entity.PersistenceError(err)
	}

	if err = s.carts.Clear(ctx, sessionID); err != nil {
		s.log.With(
			slog.String("order", order.ID),
			sl.Err(err),
		).Warn("clear cart")
	}

	s.log.With(
		slog.String("order", order.ID),
		slog.String("user", user.ID),
		slog.Int("items", len(order.Items)),
	).Info("order placed")

	return order, nil
}

func (s *Service) order(ctx context.Context, id string) (*entity.Order, error) {
	order, err := s.repository.GetOrder(ctx, id)
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	if order == nil {
		return nil, entity.NotFoundError("order " + id)
	}
	return order, nil
}

// GetForUser returns the order only to the client who placed it.
func (s *Service) GetForUser(ctx context.Context, user *entity.UserAuth, id string) (*entity.Order, error) {
	order, err := s.order(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || order.UserID != user.ID {
		return nil, entity.AuthorizationError("You do not have permission to view this order.")
	}
	return order, nil
}

func (s *Service) ListForUser(ctx context.Context, user *entity.UserAuth) ([]entity.Order, error) {
	if !user.IsClient() {
		return nil, entity.AuthorizationError("only clients can view their orders")
	}
	orders, err := s.repository.ListOrdersByUser(ctx, user.ID)
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	return orders, nil
}

func (s *Service) ListForSeller(ctx context.Context, user *entity.UserAuth) ([]entity.Order, error) {
	if !user.IsSeller() {
		return nil, entity.AuthorizationError("only sellers can view this page")
	}
	orders, err := s.repository.ListOrdersBySeller(ctx, user.ID)
	if err != nil {
		return nil, entity.PersistenceError(err)
	}
	return orders, nil
}

// UpdateStatus moves the order to status on behalf of a seller who owns at
// least one of its items. The first acceptance of a pending order by a
// seller takes that seller's quantities out of stock in the same write.
func (s *Service) UpdateStatus(ctx context.Context, orderID, sellerID, status string) (*entity.Order, error) {
	order, err := s.order(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if sellerID == "" || !order.HasSeller(sellerID) {
		return nil, entity.AuthorizationError("You do not have permission to update this order.")
	}

	next, ok := entity.ParseOrderStatus(status)
	if !ok {
		return nil, entity.NewValidationError(fmt.Sprintf("unknown order status %q", status))
	}

	if s.strict && !order.Status.CanTransition(next) {
		return nil, &entity.TransitionError{From: order.Status, To: next}
	}

	now := s.now()
	change := &entity.StatusChange{
		OrderID: order.ID,
		Expect:  order.Status,
		Status:  next,
		Record:  entity.StatusRecord{Status: next, ActorID: sellerID, Timestamp: now},
	}
	if next == entity.StatusAccepted && order.Status == entity.StatusPending && !order.StockDeductedFor(sellerID) {
		change.Decrements = order.ItemsOf(sellerID)
		change.DeductedBy = sellerID
	}

	log := s.log.With(
		slog.String("order", order.ID),
		slog.String("seller", sellerID),
		slog.String("from", string(order.Status)),
		slog.String("to", string(next)),
	)

	err = s.repository.ApplyStatusChange(ctx, change)
	if err != nil {
		var stockErr *entity.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			log.With(slog.String("product", stockErr.Item.ProductID)).Info("not enough stock")
			return nil, err
		case errors.Is(err, entity.ErrConflict), errors.Is(err, entity.ErrNotFound):
			return nil, err
		}
		log.With(sl.Err(err)).Error("apply status change")
		return nil, entity.PersistenceError(err)
	}

	order.Status = next
	order.UpdatedAt = now
	order.History = append(order.History, change.Record)
	if change.DeductedBy != "" {
		order.StockDeductedBy = append(order.StockDeductedBy, change.DeductedBy)
	}

	log.With(slog.Int("decremented", len(change.Decrements))).Info("order status updated")

	s.publish(order, sellerID, now)

	return order, nil
}

func (s *Service) publish(order *entity.Order, actorID string, at time.Time) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishOrderEvent(&entity.OrderEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		SellerIDs: order.SellerIDs(),
		Status:    order.Status,
		ActorID:   actorID,
		Timestamp: at,
	})
}
