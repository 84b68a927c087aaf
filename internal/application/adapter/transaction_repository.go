// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salesledger/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID     *uuid.UUID // nil lists every owner (admin view)
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Type       *entity.TransactionType
	Status     *entity.TransactionStatus
	Search     string // Case-insensitive description match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// LineStatusResult is the outcome of a line status change.
type LineStatusResult struct {
	Line         *entity.TransactionLine
	ParentStatus entity.TransactionStatus
}

// TransactionRepository defines the interface for transaction persistence operations.
// Every write persists the parent and its lines as a single unit of work.
type TransactionRepository interface {
	// Create inserts the transaction and all of its lines atomically.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction with its lines.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions with their lines based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*entity.TransactionListResult, error)

	// ReplaceWithLines updates the header and total of the transaction and replaces
	// all of its lines. When expectedUpdatedAt is non-zero the stored row must still
	// carry that timestamp, otherwise ErrTransactionConflict is returned.
	ReplaceWithLines(ctx context.Context, transaction *entity.Transaction, expectedUpdatedAt time.Time) error

	// Delete removes the lines of the transaction and then the transaction itself.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindLineByID retrieves a single transaction line.
	FindLineByID(ctx context.Context, lineID uuid.UUID) (*entity.TransactionLine, error)

	// UpdateLineStatus sets the status of a line and rolls the parent status up
	// within one unit of work.
	UpdateLineStatus(ctx context.Context, lineID uuid.UUID, status entity.TransactionStatus) (*LineStatusResult, error)
}
