package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/salesledger/backend/internal/domain/entity"
)

// CustomerRepository defines the interface for customer persistence operations.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	FindAll(ctx context.Context, salesID *uuid.UUID) ([]*entity.Customer, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error

	// IsReferenced reports whether any transaction points at the customer.
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}
