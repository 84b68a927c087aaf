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

const (
	// DefaultPageLimit is used when no limit is supplied.
	DefaultPageLimit = 20
	// MaxPageLimit caps the page size.
	MaxPageLimit = 100
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	Actor      entity.Actor
	UserID     *uuid.UUID // admins only; sales users always see their own
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Type       string
	Status     string
	Search     string
	Page       int
	Limit      int
}

// ListTransactionsUseCase lists transactions with their lines.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute lists a page of transactions visible to the actor.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*entity.TransactionListResult, error) {
	filter := adapter.TransactionFilter{
		UserID:     input.UserID,
		CustomerID: input.CustomerID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Search:     input.Search,
	}
	if !input.Actor.IsAdmin() {
		own := input.Actor.UserID
		filter.UserID = &own
	}

	if input.Type != "" {
		t, ok := entity.ParseTransactionType(input.Type)
		if !ok {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionType,
				"transaction type must be 'income' or 'expense'",
				domainerror.ErrInvalidTransactionType,
			)
		}
		filter.Type = &t
	}
	if input.Status != "" {
		s, ok := entity.ParseTransactionStatus(input.Status)
		if !ok {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionStatus,
				"status must be one of pending, in_progress, done",
				domainerror.ErrInvalidTransactionStatus,
			)
		}
		filter.Status = &s
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, filter, adapter.TransactionPagination{Page: page, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return result, nil
}

// GetTransactionInput represents the input for reading one transaction.
type GetTransactionInput struct {
	TransactionID uuid.UUID
	Actor         entity.Actor
}

// GetTransactionUseCase reads a transaction with its lines.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute returns the transaction when the actor may see it.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*entity.Transaction, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, notFoundError()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if !input.Actor.CanAccess(transaction.UserID) {
		return nil, forbiddenError("view")
	}
	return transaction, nil
}
