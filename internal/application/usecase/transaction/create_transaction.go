package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	PostingInput
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase prices the submitted lines and persists the
// transaction graph atomically.
type CreateTransactionUseCase struct {
	poster          *poster
	transactionRepo adapter.TransactionRepository
	reportCache     adapter.ReportCache
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
// reportCache may be nil.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	productRepo adapter.ProductRepository,
	customerRepo adapter.CustomerRepository,
	userRepo adapter.UserRepository,
	reportCache adapter.ReportCache,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		poster: &poster{
			priceResolver: NewPriceResolver(productRepo),
			customerRepo:  customerRepo,
			userRepo:      userRepo,
		},
		transactionRepo: transactionRepo,
		reportCache:     reportCache,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	p, err := uc.poster.prepare(ctx, input.PostingInput)
	if err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(p.ownerID, p.customerID, p.description, p.transactionType, p.date, p.proofImage)
	transaction.AttachLines(p.lines)
	for _, line := range transaction.Lines {
		line.CreatedAt = transaction.CreatedAt
		line.UpdatedAt = transaction.UpdatedAt
	}

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	invalidateReports(ctx, uc.reportCache)

	slog.Info("Transaction created",
		"transactionID", transaction.ID,
		"userID", transaction.UserID,
		"type", transaction.Type,
		"lines", len(transaction.Lines),
		"total", transaction.TotalAmount.StringFixed(2),
	)

	return &CreateTransactionOutput{Transaction: transaction}, nil
}
