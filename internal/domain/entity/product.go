package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog item that can be sold on an income transaction.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct creates a new Product entity.
func NewProduct(name, description string, price decimal.Decimal, category string) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ProductPrice is the current price of a product as seen by the price resolver.
type ProductPrice struct {
	ProductID uuid.UUID
	Price     decimal.Decimal
}
