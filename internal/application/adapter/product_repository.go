package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/salesledger/backend/internal/domain/entity"
)

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindAll(ctx context.Context, search string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindPricesByIDs returns the current price of each existing product in ids
	// using a single query. Missing products are simply absent from the result.
	FindPricesByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.ProductPrice, error)

	// IsReferenced reports whether any transaction line points at the product.
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}
