package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
)

// GetProductUseCase reads a single product.
type GetProductUseCase struct {
	productRepo adapter.ProductRepository
}

// NewGetProductUseCase creates a new GetProductUseCase instance.
func NewGetProductUseCase(productRepo adapter.ProductRepository) *GetProductUseCase {
	return &GetProductUseCase{productRepo: productRepo}
}

// Execute returns the product with the given ID.
func (uc *GetProductUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := uc.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return product, nil
}

// ListProductsUseCase lists the catalog.
type ListProductsUseCase struct {
	productRepo adapter.ProductRepository
}

// NewListProductsUseCase creates a new ListProductsUseCase instance.
func NewListProductsUseCase(productRepo adapter.ProductRepository) *ListProductsUseCase {
	return &ListProductsUseCase{productRepo: productRepo}
}

// Execute lists products, optionally filtered by a name fragment.
func (uc *ListProductsUseCase) Execute(ctx context.Context, search string) ([]*entity.Product, error) {
	products, err := uc.productRepo.FindAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, domainerror.ErrProductNotFound) {
		return domainerror.NewCatalogError(domainerror.ErrCodeProductNotFound, "product not found", domainerror.ErrProductNotFound)
	}
	return fmt.Errorf("failed to find product: %w", err)
}
