package product

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
)

// UpdateProductInput represents a partial product update. Nil fields are left unchanged.
// Price changes never touch the price snapshot of existing transaction lines.
type UpdateProductInput struct {
	ProductID   uuid.UUID
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
}

// UpdateProductUseCase handles product update logic.
// Cached report tables carry product names, so every update drops them.
type UpdateProductUseCase struct {
	productRepo adapter.ProductRepository
	reportCache adapter.ReportCache
}

// NewUpdateProductUseCase creates a new UpdateProductUseCase instance. reportCache may be nil.
func NewUpdateProductUseCase(productRepo adapter.ProductRepository, reportCache adapter.ReportCache) *UpdateProductUseCase {
	return &UpdateProductUseCase{productRepo: productRepo, reportCache: reportCache}
}

// Execute applies the update.
func (uc *UpdateProductUseCase) Execute(ctx context.Context, input UpdateProductInput) (*entity.Product, error) {
	product, err := uc.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewCatalogError(domainerror.ErrCodeInvalidProductFields, "product name is required", nil)
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if err := validatePrice(*input.Price); err != nil {
			return nil, err
		}
		product.Price = *input.Price
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	product.UpdatedAt = time.Now().UTC()

	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if uc.reportCache != nil {
		if err := uc.reportCache.Invalidate(ctx); err != nil {
			slog.Warn("Failed to invalidate report cache", "product_id", product.ID, "error", err)
		}
	}
	return product, nil
}
