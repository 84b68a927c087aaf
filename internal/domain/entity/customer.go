package entity

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a buyer that transactions can be attributed to.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Address   string
	SalesID   *uuid.UUID // Assigned salesperson, optional
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer creates a new Customer entity.
func NewCustomer(name, email, phone, address string, salesID *uuid.UUID) *Customer {
	now := time.Now().UTC()
	return &Customer{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Address:   address,
		SalesID:   salesID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
