// Package product contains catalog product use cases.
package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

// CreateProductInput represents the input for product creation.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
}

// CreateProductUseCase handles product creation logic.
type CreateProductUseCase struct {
	productRepo adapter.ProductRepository
}

// NewCreateProductUseCase creates a new CreateProductUseCase instance.
func NewCreateProductUseCase(productRepo adapter.ProductRepository) *CreateProductUseCase {
	return &CreateProductUseCase{
		productRepo: productRepo,
	}
}

// Execute performs the product creation.
func (uc *CreateProductUseCase) Execute(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCatalogError(domainerror.ErrCodeInvalidProductFields, "product name is required", nil)
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}

	product := entity.NewProduct(name, input.Description, input.Price, input.Category)
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return domainerror.NewCatalogError(
			domainerror.ErrCodeInvalidProductPrice,
			"product price must be greater than zero",
			domainerror.ErrInvalidProductPrice,
		)
	}
	if !valueobject.IsMoneyPrecision(price) {
		return domainerror.NewCatalogError(
			domainerror.ErrCodeInvalidProductPrice,
			"product price must have at most two decimal places",
			domainerror.ErrInvalidProductPrice,
		)
	}
	return nil
}
