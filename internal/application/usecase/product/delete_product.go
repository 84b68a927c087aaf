package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/salesledger/backend/internal/application/adapter"
	domainerror "github.com/salesledger/backend/internal/domain/error"
)

// DeleteProductUseCase removes a product that no transaction line references.
type DeleteProductUseCase struct {
	productRepo adapter.ProductRepository
}

// NewDeleteProductUseCase creates a new DeleteProductUseCase instance.
func NewDeleteProductUseCase(productRepo adapter.ProductRepository) *DeleteProductUseCase {
	return &DeleteProductUseCase{productRepo: productRepo}
}

// Execute performs the deletion.
func (uc *DeleteProductUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	referenced, err := uc.productRepo.IsReferenced(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check product references: %w", err)
	}
	if referenced {
		return domainerror.NewCatalogError(
			domainerror.ErrCodeProductInUse,
			"product is referenced by transactions and cannot be deleted",
			domainerror.ErrProductInUse,
		)
	}

	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}
	return nil
}
