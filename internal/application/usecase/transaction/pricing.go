// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

// LineInput is a submitted transaction line before pricing.
// Exactly one of ProductID and ItemName must be set.
type LineInput struct {
	ProductID    *uuid.UUID
	ItemName     string
	Quantity     int
	PricePerUnit *decimal.Decimal // required for free-form lines, ignored for product lines
	TotalPrice   *decimal.Decimal // optional, must match Quantity x PricePerUnit when given
}

// PriceResolver looks up current product prices in one batch.
type PriceResolver struct {
	productRepo adapter.ProductRepository
}

// NewPriceResolver creates a new PriceResolver instance.
func NewPriceResolver(productRepo adapter.ProductRepository) *PriceResolver {
	return &PriceResolver{
		productRepo: productRepo,
	}
}

// Resolve returns the current price of every product in ids. Duplicates are
// collapsed before the lookup. If any product is missing, or carries a price that
// is not positive or not whole cents, a ReferenceNotFound error listing the offending ids is returned.
func (r *PriceResolver) Resolve(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	unique := uniqueIDs(ids)
	if len(unique) == 0 {
		return map[uuid.UUID]decimal.Decimal{}, nil
	}

	found, err := r.productRepo.FindPricesByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product prices: %w", err)
	}

	prices := make(map[uuid.UUID]decimal.Decimal, len(found))
	var invalid []string
	for _, p := range found {
		if !p.Price.IsPositive() || !valueobject.IsMoneyPrecision(p.Price) {
			invalid = append(invalid, p.ProductID.String())
			continue
		}
		prices[p.ProductID] = p.Price
	}

	var missing []string
	for _, id := range unique {
		if _, ok := prices[id]; !ok && !slices.Contains(invalid, id.String()) {
			missing = append(missing, id.String())
		}
	}

	if len(missing) > 0 || len(invalid) > 0 {
		details := map[string]string{}
		if len(missing) > 0 {
			sort.Strings(missing)
			details["missing_product_ids"] = strings.Join(missing, ",")
		}
		if len(invalid) > 0 {
			sort.Strings(invalid)
			details["invalid_price_product_ids"] = strings.Join(invalid, ",")
		}
		slog.Debug("Product price resolution failed", "missing", missing, "invalid", invalid)
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeProductsNotFound,
			"one or more products not found",
			domainerror.ErrProductsNotFound,
		).WithDetails(details)
	}

	return prices, nil
}

// ValidateLines checks the shape of submitted lines before any lookup happens.
func ValidateLines(transactionType entity.TransactionType, inputs []LineInput) error {
	if len(inputs) == 0 {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionLines,
			"transaction must have at least one line",
			domainerror.ErrEmptyTransactionLines,
		).WithDetails(map[string]string{"lines": "at least one line is required"})
	}

	for i, in := range inputs {
		field := fmt.Sprintf("lines[%d]", i)
		hasProduct := in.ProductID != nil
		hasItem := strings.TrimSpace(in.ItemName) != ""

		if hasProduct == hasItem {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidLineItem,
				"line must reference exactly one of product or item name",
				domainerror.ErrInvalidLineItem,
			).WithDetails(map[string]string{field: "set either product_id or item_name"})
		}
		if in.Quantity <= 0 {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidQuantity,
				"quantity must be a positive integer",
				domainerror.ErrInvalidQuantity,
			).WithDetails(map[string]string{field + ".quantity": "must be greater than zero"})
		}
		if transactionType == entity.TransactionTypeIncome && !hasProduct {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidLineItem,
				"income lines must reference a product",
				domainerror.ErrIncomeLineRequiresProduct,
			).WithDetails(map[string]string{field + ".product_id": "required for income transactions"})
		}
		if hasItem && (in.PricePerUnit == nil || in.PricePerUnit.IsNegative()) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidPricePerUnit,
				"price per unit must be zero or greater",
				domainerror.ErrInvalidPricePerUnit,
			).WithDetails(map[string]string{field + ".price_per_unit": "required and must not be negative"})
		}
		if hasItem && !valueobject.IsMoneyPrecision(*in.PricePerUnit) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidPricePerUnit,
				"price per unit must have at most two decimal places",
				domainerror.ErrInvalidPricePerUnit,
			).WithDetails(map[string]string{field + ".price_per_unit": "at most two decimal places"})
		}
	}

	return nil
}

// CalculateLine prices a single validated line. Product lines take the resolved
// price; free-form lines keep the caller's price. The total is always
// recomputed as quantity x price per unit.
func CalculateLine(index int, in LineInput, prices map[uuid.UUID]decimal.Decimal) (*entity.TransactionLine, error) {
	var pricePerUnit decimal.Decimal
	if in.ProductID != nil {
		price, ok := prices[*in.ProductID]
		if !ok {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeProductsNotFound,
				"one or more products not found",
				domainerror.ErrProductsNotFound,
			).WithDetails(map[string]string{"missing_product_ids": in.ProductID.String()})
		}
		pricePerUnit = price
	} else {
		pricePerUnit = *in.PricePerUnit
	}

	total := pricePerUnit.Mul(decimal.NewFromInt(int64(in.Quantity)))
	if in.TotalPrice != nil && !in.TotalPrice.Equal(total) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeLineTotalMismatch,
			"line total does not match quantity times price",
			domainerror.ErrLineTotalMismatch,
		).WithDetails(map[string]string{
			fmt.Sprintf("lines[%d].total_price", index): "expected " + total.StringFixed(2),
		})
	}

	line := &entity.TransactionLine{
		ID:           uuid.New(),
		Quantity:     in.Quantity,
		PricePerUnit: pricePerUnit,
		TotalPrice:   total,
		Status:       entity.TransactionStatusPending,
	}
	if in.ProductID != nil {
		productID := *in.ProductID
		line.ProductID = &productID
	} else {
		line.ItemName = strings.TrimSpace(in.ItemName)
	}
	return line, nil
}

// CalculateLines prices every line in order.
func CalculateLines(inputs []LineInput, prices map[uuid.UUID]decimal.Decimal) ([]*entity.TransactionLine, error) {
	lines := make([]*entity.TransactionLine, 0, len(inputs))
	for i, in := range inputs {
		line, err := CalculateLine(i, in, prices)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// ProductIDs returns the product references of inputs in submission order.
func ProductIDs(inputs []LineInput) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if in.ProductID != nil {
			ids = append(ids, *in.ProductID)
		}
	}
	return ids
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
