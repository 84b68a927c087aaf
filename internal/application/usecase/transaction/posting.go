package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
)

// MaxDescriptionLength is the maximum number of characters in a transaction description.
const MaxDescriptionLength = 1000

// PostingInput is the header and lines shared by create and update.
type PostingInput struct {
	Actor       entity.Actor
	UserID      *uuid.UUID // owning salesperson; only admins may set someone else
	CustomerID  *uuid.UUID
	Description string
	Type        string
	Date        time.Time // zero means now
	ProofImage  string
	Lines       []LineInput
}

// posting holds everything a writer needs once validation and pricing succeed.
type posting struct {
	ownerID         uuid.UUID
	customerID      *uuid.UUID
	description     string
	transactionType entity.TransactionType
	date            time.Time
	proofImage      string
	lines           []*entity.TransactionLine
}

// poster validates and prices a submission. It never writes.
type poster struct {
	priceResolver *PriceResolver
	customerRepo  adapter.CustomerRepository
	userRepo      adapter.UserRepository
}

func (p *poster) prepare(ctx context.Context, input PostingInput) (*posting, error) {
	transactionType, ok := entity.ParseTransactionType(input.Type)
	if !ok {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'income' or 'expense'",
			domainerror.ErrInvalidTransactionType,
		).WithDetails(map[string]string{"type": "must be income or expense"})
	}

	description := strings.TrimSpace(input.Description)
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		).WithDetails(map[string]string{"description": "too long"})
	}

	if err := ValidateLines(transactionType, input.Lines); err != nil {
		return nil, err
	}

	ownerID, err := p.resolveOwner(ctx, input.Actor, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.CustomerID != nil {
		exists, err := p.customerRepo.ExistsByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check customer: %w", err)
		}
		if !exists {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionCustomerNotFound,
				"customer not found",
				domainerror.ErrCustomerNotFoundForTransaction,
			).WithDetails(map[string]string{"customer_id": input.CustomerID.String()})
		}
	}

	prices, err := p.priceResolver.Resolve(ctx, ProductIDs(input.Lines))
	if err != nil {
		return nil, err
	}

	lines, err := CalculateLines(input.Lines, prices)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	return &posting{
		ownerID:         ownerID,
		customerID:      input.CustomerID,
		description:     description,
		transactionType: transactionType,
		date:            date.UTC(),
		proofImage:      input.ProofImage,
		lines:           lines,
	}, nil
}

// resolveOwner returns the owning user of a transaction: the actor, or for
// admins any existing user they name.
func (p *poster) resolveOwner(ctx context.Context, actor entity.Actor, requested *uuid.UUID) (uuid.UUID, error) {
	ownerID := actor.UserID
	if requested != nil && *requested != actor.UserID {
		if !actor.IsAdmin() {
			return uuid.Nil, domainerror.NewTransactionError(
				domainerror.ErrCodeNotAuthorizedTransaction,
				"only admins may record transactions for another user",
				domainerror.ErrNotAuthorizedToModifyTransaction,
			)
		}
		ownerID = *requested
	}

	exists, err := p.userRepo.ExistsByID(ctx, ownerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return uuid.Nil, domainerror.NewTransactionError(
			domainerror.ErrCodeOwnerNotFound,
			"owning user not found",
			domainerror.ErrOwnerNotFound,
		).WithDetails(map[string]string{"user_id": ownerID.String()})
	}
	return ownerID, nil
}

// invalidateReports drops cached report tables after a write. Failures are
// logged; the write itself already succeeded.
func invalidateReports(ctx context.Context, cache adapter.ReportCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		slog.Warn("Failed to invalidate report cache", "error", err)
	}
}

func notFoundError() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

func forbiddenError(action string) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeNotAuthorizedTransaction,
		"not authorized to "+action+" this transaction",
		domainerror.ErrNotAuthorizedToModifyTransaction,
	)
}
