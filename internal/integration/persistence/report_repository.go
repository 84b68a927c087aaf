package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/salesledger/backend/internal/application/usecase/report"
	"github.com/salesledger/backend/internal/domain/entity"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

// reportRepository implements the report.ReportRepository interface.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance.
func NewReportRepository(db *gorm.DB) report.ReportRepository {
	return &reportRepository{
		db: db,
	}
}

// transactionRowResult is the scan target of transactionRows.
type transactionRowResult struct {
	TransactionID   uuid.UUID       `gorm:"column:transaction_id"`
	TransactionDate time.Time       `gorm:"column:transaction_date"`
	Type            string          `gorm:"column:type"`
	Status          string          `gorm:"column:status"`
	Description     *string         `gorm:"column:description"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount"`
	CustomerID      *uuid.UUID      `gorm:"column:customer_id"`
	CustomerName    *string         `gorm:"column:customer_name"`
	UserID          uuid.UUID       `gorm:"column:user_id"`
	UserName        *string         `gorm:"column:user_name"`
}

// transactionRows selects transactions joined with customer and user names.
// Callers add their own filter, order and limit.
func transactionRows(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Table("transactions AS t").
		Select(`t.id AS transaction_id, t.transaction_date, t.type, t.status, t.description,
			t.total_amount, t.customer_id, c.name AS customer_name, t.user_id, u.name AS user_name`).
		Joins("LEFT JOIN customers c ON c.id = t.customer_id").
		Joins("LEFT JOIN users u ON u.id = t.user_id")
}

func toTransactionRows(results []transactionRowResult) []report.TransactionRow {
	rows := make([]report.TransactionRow, len(results))
	for i, res := range results {
		rows[i] = report.TransactionRow{
			TransactionID:   res.TransactionID,
			TransactionDate: res.TransactionDate,
			Type:            entity.TransactionType(res.Type),
			Status:          entity.TransactionStatus(res.Status),
			Description:     deref(res.Description),
			TotalAmount:     res.TotalAmount,
			CustomerID:      res.CustomerID,
			CustomerName:    deref(res.CustomerName),
			UserID:          res.UserID,
			UserName:        deref(res.UserName),
		}
	}
	return rows
}

// FindTransactionRows returns the transactions of a period joined with customer and user names.
func (r *reportRepository) FindTransactionRows(ctx context.Context, period valueobject.DateRange) ([]report.TransactionRow, error) {
	var results []transactionRowResult
	err := transactionRows(ctx, r.db).
		Where("t.transaction_date >= ? AND t.transaction_date <= ?", period.Start, period.End).
		Order("t.transaction_date ASC, t.created_at ASC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load report transactions: %w", err)
	}
	return toTransactionRows(results), nil
}

// FindLineRows returns the lines of every transaction in a period joined with product names.
func (r *reportRepository) FindLineRows(ctx context.Context, period valueobject.DateRange) ([]report.LineRow, error) {
	var results []struct {
		TransactionID   uuid.UUID       `gorm:"column:transaction_id"`
		TransactionDate time.Time       `gorm:"column:transaction_date"`
		Type            string          `gorm:"column:type"`
		ProductID       *uuid.UUID      `gorm:"column:product_id"`
		ProductName     *string         `gorm:"column:product_name"`
		ItemName        *string         `gorm:"column:item_name"`
		Quantity        int             `gorm:"column:quantity"`
		TotalPrice      decimal.Decimal `gorm:"column:total_price"`
	}

	err := r.db.WithContext(ctx).
		Table("transaction_lines AS l").
		Select(`l.transaction_id, t.transaction_date, t.type, l.product_id, p.name AS product_name,
			l.item_name, l.quantity, l.total_price`).
		Joins("JOIN transactions t ON t.id = l.transaction_id").
		Joins("LEFT JOIN products p ON p.id = l.product_id").
		Where("t.transaction_date >= ? AND t.transaction_date <= ?", period.Start, period.End).
		Order("t.transaction_date ASC, l.created_at ASC, l.id ASC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load report lines: %w", err)
	}

	rows := make([]report.LineRow, len(results))
	for i, res := range results {
		rows[i] = report.LineRow{
			TransactionID:   res.TransactionID,
			TransactionDate: res.TransactionDate,
			TransactionType: entity.TransactionType(res.Type),
			ProductID:       res.ProductID,
			ProductName:     deref(res.ProductName),
			ItemName:        deref(res.ItemName),
			Quantity:        res.Quantity,
			TotalPrice:      res.TotalPrice,
		}
	}
	return rows, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
