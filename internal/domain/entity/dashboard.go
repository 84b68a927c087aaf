package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary holds the headline figures shown on the admin dashboard.
type DashboardSummary struct {
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	NetIncome        decimal.Decimal
	TransactionCount int64
	ProductCount     int64
	CustomerCount    int64
	MonthlySales     decimal.Decimal
}

// RankedItem is one entry of a top-N list. Count is units sold for products
// and transactions for customers.
type RankedItem struct {
	Name  string
	Count int64
	Total decimal.Decimal
}

// ChartPoint is one bucket of a dashboard chart. Buckets without transactions
// are present with zero values.
type ChartPoint struct {
	Date             time.Time
	Label            string
	Income           decimal.Decimal
	Expense          decimal.Decimal
	TransactionCount int64
}

// Net returns income minus expense for the bucket.
func (p ChartPoint) Net() decimal.Decimal {
	return p.Income.Sub(p.Expense)
}
