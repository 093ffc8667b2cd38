package entity

import (
	"net/http"
	"time"

	"SmartShop/internal/lib/validate"
)

type CartItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	ImageID   string  `json:"image_id,omitempty" bson:"image_id,omitempty"`
	SellerID  string  `json:"seller_id" bson:"seller_id"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart belongs to a browser session, not to a user account.
type Cart struct {
	SessionID string     `json:"-" bson:"sessionId"`
	Items     []CartItem `json:"items" bson:"items"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updatedAt"`
}

func NewCart(sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
		Items:     []CartItem{},
	}
}

func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) find(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts one more unit of the product in the cart, snapshotting its
// current name and price on first add.
func (c *Cart) Add(p *Product) {
	if i := c.find(p.ID); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageID:   p.ImageID,
		SellerID:  p.SellerID,
		Quantity:  1,
	})
}

// SetQuantities applies new quantities; non-positive values are ignored.
func (c *Cart) SetQuantities(quantities map[string]int) {
	for i, item := range c.Items {
		q, ok := quantities[item.ProductID]
		if !ok || q <= 0 {
			continue
		}
		c.Items[i].Quantity = q
	}
}

func (c *Cart) Remove(productID string) bool {
	i := c.find(productID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

type CartView struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

func (c *Cart) View() CartView {
	items := c.Items
	if items == nil {
		items = []CartItem{}
	}
	return CartView{Items: items, Total: c.Total()}
}

type CartUpdateRequest struct {
	Quantities map[string]int `json:"quantities" validate:"required"`
}

func (c *CartUpdateRequest) Bind(_ *http.Request) error {
	return validate.Struct(c)
}
