package entity

import (
	"net/http"
	"slices"
	"time"

	"SmartShop/internal/lib/validate"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusAccepted       OrderStatus = "Accepted"
	StatusPrepared       OrderStatus = "Prepared"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusCompleted      OrderStatus = "Completed"
	StatusRejected       OrderStatus = "Rejected"
)

var orderStatuses = []OrderStatus{
	StatusPending,
	StatusAccepted,
	StatusPrepared,
	StatusOutForDelivery,
	StatusCompleted,
	StatusRejected,
}

var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusAccepted, StatusRejected},
	StatusAccepted:       {StatusPrepared},
	StatusPrepared:       {StatusOutForDelivery},
	StatusOutForDelivery: {StatusCompleted},
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range orderStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// CanTransition reports whether next is a forward edge from s.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	return slices.Contains(transitions[s], next)
}

type Shipping struct {
	Name          string `json:"shipping_name" bson:"shipping_name" validate:"required,max=100"`
	Address       string `json:"shipping_address" bson:"shipping_address" validate:"required,max=255"`
	Phone         string `json:"shipping_phone" bson:"shipping_phone" validate:"required,max=30"`
	PaymentMethod string `json:"payment_method" bson:"payment_method" validate:"required,max=50"`
}

func (s *Shipping) Bind(_ *http.Request) error {
	return validate.Struct(s)
}

// OrderItem is a frozen copy of the product at checkout time.
type OrderItem struct {
	ID          string  `json:"id" bson:"id"`
	OrderID     string  `json:"order_id" bson:"order_id"`
	ProductID   string  `json:"product_id" bson:"product_id"`
	ProductName string  `json:"product_name" bson:"product_name"`
	Price       float64 `json:"price" bson:"price"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	SellerID    string  `json:"seller_id" bson:"seller_id"`
}

type StatusRecord struct {
	Status    OrderStatus `json:"status" bson:"status"`
	ActorID   string      `json:"actor_id" bson:"actor_id"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}

type Order struct {
	ID     string `json:"id" bson:"_id"`
	UserID string `json:"user_id" bson:"user_id"`

	Shipping `bson:",inline"`

	Status          OrderStatus    `json:"status" bson:"status"`
	Items           []OrderItem    `json:"order_items" bson:"order_items"`
	History         []StatusRecord `json:"history" bson:"history"`
	StockDeductedBy []string       `json:"-" bson:"stock_deducted_by"`
	CreatedAt       time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" bson:"updated_at"`
}

// NewOrder snapshots the cart into a pending order.
func NewOrder(userID string, shipping Shipping, cart *Cart) *Order {
	now := time.Now().UTC()
	order := &Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Shipping:        shipping,
		Status:          StatusPending,
		Items:           make([]OrderItem, 0, len(cart.Items)),
		StockDeductedBy: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, OrderItem{
			ID:          uuid.NewString(),
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Price:       item.Price,
			Quantity:    item.Quantity,
			SellerID:    item.SellerID,
		})
	}
	order.History = []StatusRecord{{Status: StatusPending, ActorID: userID, Timestamp: now}}
	return order
}

func (o *Order) Total() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (o *Order) ItemsOf(sellerID string) []OrderItem {
	var items []OrderItem
	for _, item := range o.Items {
		if item.SellerID == sellerID {
			items = append(items, item)
		}
	}
	return items
}

func (o *Order) HasSeller(sellerID string) bool {
	for _, item := range o.Items {
		if item.SellerID == sellerID {
			return true
		}
	}
	return false
}

func (o *Order) StockDeductedFor(sellerID string) bool {
	return slices.Contains(o.StockDeductedBy, sellerID)
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

func (s *StatusUpdateRequest) Bind(_ *http.Request) error {
	return validate.Struct(s)
}

// OrderEvent is pushed to websocket subscribers after a status change.
type OrderEvent struct {
	OrderID   string      `json:"order_id"`
	UserID    string      `json:"user_id"`
	SellerIDs []string    `json:"-"`
	Status    OrderStatus `json:"status"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
}

func (o *Order) SellerIDs() []string {
	var ids []string
	for _, item := range o.Items {
		if !slices.Contains(ids, item.SellerID) {
			ids = append(ids, item.SellerID)
		}
	}
	return ids
}

// StatusChange is one seller status update, applied by the repository as a
// single unit. The order is written only if its status is still Expect, and
// every Decrements item must be covered by stock or nothing is written.
type StatusChange struct {
	OrderID    string
	Expect     OrderStatus
	Status     OrderStatus
	Record     StatusRecord
	Decrements []OrderItem
	DeductedBy string
}
