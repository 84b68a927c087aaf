// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesledger/backend/internal/application/usecase/report"
)

// DashboardRepository defines the interface for dashboard data operations.
type DashboardRepository interface {
	// GetTotals returns income and expense sums and the transaction count across all time.
	GetTotals(ctx context.Context) (*Totals, error)

	// GetIncomeBetween returns the income total for transactions dated in [start, end].
	GetIncomeBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// CountProducts returns the number of catalog products.
	CountProducts(ctx context.Context) (int64, error)

	// CountCustomers returns the number of customers.
	CountCustomers(ctx context.Context) (int64, error)

	// FindRecentTransactions returns at most limit transactions, newest first.
	FindRecentTransactions(ctx context.Context, limit int) ([]report.TransactionRow, error)
}

// Totals holds all-time aggregates.
type Totals struct {
	Income           decimal.Decimal
	Expense          decimal.Decimal
	TransactionCount int64
}
