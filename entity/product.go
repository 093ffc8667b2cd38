package entity

import (
	"strconv"
	"strings"
	"time"

	"SmartShop/internal/lib/validate"
)

type Product struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Description   string    `json:"description" bson:"description"`
	Price         float64   `json:"price" bson:"price"`
	Category      string    `json:"category" bson:"category"`
	ImageID       string    `json:"image_id,omitempty" bson:"image_id,omitempty"`
	ImageURL      string    `json:"image_url,omitempty" bson:"-"`
	StockQuantity int       `json:"stock_quantity" bson:"stock_quantity"`
	SellerID      string    `json:"seller_id" bson:"seller_id"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// ProductInput is the seller-editable part of a product, read from a form.
type ProductInput struct {
	Name          string  `validate:"required,max=100"`
	Description   string  `validate:"required"`
	Price         float64 `validate:"gte=0"`
	Category      string  `validate:"required,max=50"`
	StockQuantity int     `validate:"gte=0"`
}

// ParseProductInput converts raw form values; numeric parse failures are
// reported as validation errors.
func ParseProductInput(name, description, price, category, stock string) (*ProductInput, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return nil, NewValidationError("invalid price")
	}
	s, err := strconv.Atoi(strings.TrimSpace(stock))
	if err != nil {
		return nil, NewValidationError("invalid stock quantity")
	}
	input := &ProductInput{
		Name:          strings.TrimSpace(name),
		Description:   strings.TrimSpace(description),
		Price:         p,
		Category:      strings.TrimSpace(category),
		StockQuantity: s,
	}
	if err = validate.Struct(input); err != nil {
		return nil, NewValidationError(err.Error())
	}
	return input, nil
}

func (in *ProductInput) Apply(p *Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Category = in.Category
	p.StockQuantity = in.StockQuantity
}

const (
	StockIn  = "in"
	StockOut = "out"
)

type ProductFilter struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Stock    string
	SellerID string
}

// NewProductFilter builds a filter from query values, ignoring prices that do
// not parse.
func NewProductFilter(q, category, minPrice, maxPrice, stock string) ProductFilter {
	f := ProductFilter{
		Query:    strings.TrimSpace(q),
		Category: strings.TrimSpace(category),
		Stock:    strings.TrimSpace(stock),
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(minPrice), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(maxPrice), 64); err == nil {
		f.MaxPrice = &v
	}
	return f
}

// Match applies the filter in memory, mirroring the database query.
func (f ProductFilter) Match(p *Product) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	switch f.Stock {
	case StockIn:
		if p.StockQuantity <= 0 {
			return false
		}
	case StockOut:
		if p.StockQuantity != 0 {
			return false
		}
	}
	if f.SellerID != "" && p.SellerID != f.SellerID {
		return false
	}
	return true
}
