package memory

import (
	"context"
	"slices"
	"sort"

	"SmartShop/entity"
)

func cloneOrder(o *entity.Order) entity.Order {
	c := *o
	c.Items = slices.Clone(o.Items)
	c.History = slices.Clone(o.History)
	c.StockDeductedBy = slices.Clone(o.StockDeductedBy)
	return c
}

func (s *Store) SaveOrder(_ context.Context, order *entity.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := cloneOrder(order)
	s.orders[o.ID] = &o
	return nil
}

func (s *Store) GetOrder(_ context.Context, id string) (*entity.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	found := cloneOrder(o)
	return &found, nil
}

func (s *Store) listOrders(match func(o *entity.Order) bool) []entity.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]entity.Order, 0)
	for _, o := range s.orders {
		if match(o) {
			orders = append(orders, cloneOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

func (s *Store) ListOrdersByUser(_ context.Context, userID string) ([]entity.Order, error) {
	return s.listOrders(func(o *entity.Order) bool { return o.UserID == userID }), nil
}

func (s *Store) ListOrdersBySeller(_ context.Context, sellerID string) ([]entity.Order, error) {
	return s.listOrders(func(o *entity.Order) bool { return o.HasSeller(sellerID) }), nil
}

// ApplyStatusChange checks every decrement against current stock before
// touching anything, so a shortage leaves products and order as they were.
func (s *Store) ApplyStatusChange(_ context.Context, change *entity.StatusChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[change.OrderID]
	if !ok {
		return entity.NotFoundError("order " + change.OrderID)
	}
	if order.Status != change.Expect {
		return entity.ErrConflict
	}
	if change.DeductedBy != "" && order.StockDeductedFor(change.DeductedBy) {
		return entity.ErrConflict
	}

	staged := make(map[string]int, len(change.Decrements))
	for _, item := range change.Decrements {
		p, ok := s.products[item.ProductID]
		if !ok {
			return &entity.InsufficientStockError{Item: item}
		}
		stock, seen := staged[item.ProductID]
		if !seen {
			stock = p.StockQuantity
		}
		if stock < item.Quantity {
			return &entity.InsufficientStockError{Item: item}
		}
		staged[item.ProductID] = stock - item.Quantity
	}

	for id, stock := range staged {
		s.products[id].StockQuantity = stock
	}
	order.Status = change.Status
	order.UpdatedAt = change.Record.Timestamp
	order.History = append(order.History, change.Record)
	if change.DeductedBy != "" {
		order.StockDeductedBy = append(order.StockDeductedBy, change.DeductedBy)
	}
	return nil
}
