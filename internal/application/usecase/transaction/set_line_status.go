package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
)

// SetLineStatusInput represents the input for a line status change.
type SetLineStatusInput struct {
	LineID uuid.UUID
	Status string
	Actor  entity.Actor
}

// SetLineStatusOutput carries the updated line and the resulting parent status.
type SetLineStatusOutput struct {
	Line         *entity.TransactionLine
	ParentStatus entity.TransactionStatus
}

// SetLineStatusUseCase updates a line status and rolls it up to the parent.
type SetLineStatusUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewSetLineStatusUseCase creates a new SetLineStatusUseCase instance.
func NewSetLineStatusUseCase(transactionRepo adapter.TransactionRepository) *SetLineStatusUseCase {
	return &SetLineStatusUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the status change.
func (uc *SetLineStatusUseCase) Execute(ctx context.Context, input SetLineStatusInput) (*SetLineStatusOutput, error) {
	status, ok := entity.ParseTransactionStatus(input.Status)
	if !ok {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionStatus,
			"status must be one of pending, in_progress, done",
			domainerror.ErrInvalidTransactionStatus,
		).WithDetails(map[string]string{"status": "must be one of pending, in_progress, done"})
	}

	line, err := uc.transactionRepo.FindLineByID(ctx, input.LineID)
	if err != nil {
		return nil, mapLineError(err)
	}

	parent, err := uc.transactionRepo.FindByID(ctx, line.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, notFoundError()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if !input.Actor.CanAccess(parent.UserID) {
		return nil, forbiddenError("update")
	}

	result, err := uc.transactionRepo.UpdateLineStatus(ctx, input.LineID, status)
	if err != nil {
		return nil, mapLineError(err)
	}

	return &SetLineStatusOutput{
		Line:         result.Line,
		ParentStatus: result.ParentStatus,
	}, nil
}

func mapLineError(err error) error {
	switch {
	case errors.Is(err, domainerror.ErrTransactionLineNotFound):
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionLineNotFound,
			"transaction line not found",
			domainerror.ErrTransactionLineNotFound,
		)
	case errors.Is(err, domainerror.ErrTransactionNotFound):
		return notFoundError()
	}
	return fmt.Errorf("failed to update line status: %w", err)
}
