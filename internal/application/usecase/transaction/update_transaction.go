package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update.
// The submitted lines replace every existing line.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	PostingInput
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	poster          *poster
	transactionRepo adapter.TransactionRepository
	reportCache     adapter.ReportCache
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	productRepo adapter.ProductRepository,
	customerRepo adapter.CustomerRepository,
	userRepo adapter.UserRepository,
	reportCache adapter.ReportCache,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		poster: &poster{
			priceResolver: NewPriceResolver(productRepo),
			customerRepo:  customerRepo,
			userRepo:      userRepo,
		},
		transactionRepo: transactionRepo,
		reportCache:     reportCache,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	existing, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, notFoundError()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if !input.Actor.CanAccess(existing.UserID) {
		return nil, forbiddenError("update")
	}

	// Non-admins keep ownership; admins may reassign explicitly.
	if input.UserID == nil && input.Actor.IsAdmin() {
		owner := existing.UserID
		input.UserID = &owner
	}

	p, err := uc.poster.prepare(ctx, input.PostingInput)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated := &entity.Transaction{
		ID:              existing.ID,
		UserID:          p.ownerID,
		CustomerID:      p.customerID,
		Description:     p.description,
		TransactionDate: p.date,
		Type:            p.transactionType,
		Status:          existing.Status,
		ProofImage:      p.proofImage,
		CreatedAt:       existing.CreatedAt,
		UpdatedAt:       now,
	}
	if updated.ProofImage == "" {
		updated.ProofImage = existing.ProofImage
	}
	updated.AttachLines(p.lines)
	for _, line := range updated.Lines {
		line.CreatedAt = now
		line.UpdatedAt = now
	}

	if err := uc.transactionRepo.ReplaceWithLines(ctx, updated, existing.UpdatedAt); err != nil {
		switch {
		case errors.Is(err, domainerror.ErrTransactionNotFound):
			return nil, notFoundError()
		case errors.Is(err, domainerror.ErrTransactionConflict):
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionConflict,
				"transaction was modified by another request, reload and retry",
				domainerror.ErrTransactionConflict,
			)
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	invalidateReports(ctx, uc.reportCache)

	return &UpdateTransactionOutput{Transaction: updated}, nil
}
