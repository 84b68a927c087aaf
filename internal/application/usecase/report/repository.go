// Package report contains the report aggregation use cases.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesledger/backend/internal/domain/entity"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

// ReportRepository loads joined transaction data for a period. Aggregation is
// done by the caller so the same rows serve every report dimension.
type ReportRepository interface {
	// FindTransactionRows returns one row per transaction dated within period,
	// ordered by date ascending.
	FindTransactionRows(ctx context.Context, period valueobject.DateRange) ([]TransactionRow, error)

	// FindLineRows returns one row per line whose parent is dated within period.
	FindLineRows(ctx context.Context, period valueobject.DateRange) ([]LineRow, error)
}

// TransactionRow is a transaction joined with its customer and owning user names.
type TransactionRow struct {
	TransactionID   uuid.UUID
	TransactionDate time.Time
	Type            entity.TransactionType
	Status          entity.TransactionStatus
	Description     string
	TotalAmount     decimal.Decimal
	CustomerID      *uuid.UUID
	CustomerName    string
	UserID          uuid.UUID
	UserName        string
}

// LineRow is a transaction line joined with its product name and parent date.
type LineRow struct {
	TransactionID   uuid.UUID
	TransactionDate time.Time
	TransactionType entity.TransactionType
	ProductID       *uuid.UUID
	ProductName     string
	ItemName        string
	Quantity        int
	TotalPrice      decimal.Decimal
}
