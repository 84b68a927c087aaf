package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/salesledger/backend/internal/application/usecase/dashboard"
	"github.com/salesledger/backend/internal/application/usecase/report"
	"github.com/salesledger/backend/internal/domain/entity"
	"github.com/salesledger/backend/internal/integration/persistence/model"
)

// dashboardRepository implements the dashboard.DashboardRepository interface.
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository instance.
func NewDashboardRepository(db *gorm.DB) dashboard.DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// GetTotals returns income and expense sums and the transaction count across all time.
func (r *dashboardRepository) GetTotals(ctx context.Context) (*dashboard.Totals, error) {
	var result struct {
		Income  decimal.NullDecimal `gorm:"column:income"`
		Expense decimal.NullDecimal `gorm:"column:expense"`
		Count   int64               `gorm:"column:count"`
	}

	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select(`SUM(CASE WHEN type = ? THEN total_amount ELSE 0 END) AS income,
			SUM(CASE WHEN type = ? THEN total_amount ELSE 0 END) AS expense,
			COUNT(*) AS count`, string(entity.TransactionTypeIncome), string(entity.TransactionTypeExpense)).
		Scan(&result).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}

	return &dashboard.Totals{
		Income:           orZero(result.Income),
		Expense:          orZero(result.Expense),
		TransactionCount: result.Count,
	}, nil
}

// GetIncomeBetween returns the income total for transactions dated in [start, end].
func (r *dashboardRepository) GetIncomeBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.NullDecimal `gorm:"column:total"`
	}

	err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("SUM(total_amount) AS total").
		Where("type = ?", string(entity.TransactionTypeIncome)).
		Where("transaction_date >= ? AND transaction_date <= ?", start, end).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get income: %w", err)
	}
	return orZero(result.Total), nil
}

// CountProducts returns the number of catalog products.
func (r *dashboardRepository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProductModel{}).Count(&count).Error
	return count, err
}

// CountCustomers returns the number of customers.
func (r *dashboardRepository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CustomerModel{}).Count(&count).Error
	return count, err
}

// FindRecentTransactions returns the latest transactions by date, newest first.
func (r *dashboardRepository) FindRecentTransactions(ctx context.Context, limit int) ([]report.TransactionRow, error) {
	var results []transactionRowResult
	err := transactionRows(ctx, r.db).
		Order("t.transaction_date DESC, t.created_at DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent transactions: %w", err)
	}
	return toTransactionRows(results), nil
}

func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
