package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/salesledger/backend/internal/application/usecase/report"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

const (
	DefaultTopLimit    = 5
	MaxTopLimit        = 50
	DefaultRecentLimit = 10
	MaxRecentLimit     = 50
)

// GetTopInput bounds a top-N list. Empty dates mean all time.
type GetTopInput struct {
	StartDate string
	EndDate   string
	Limit     int
}

func (in GetTopInput) period() (valueobject.DateRange, error) {
	start, end := strings.TrimSpace(in.StartDate), strings.TrimSpace(in.EndDate)
	if start == "" {
		start = "1970-01-01"
	}
	if end == "" {
		end = "9999-12-31"
	}
	period, err := valueobject.ParseDateRange(start, end)
	if err != nil {
		return period, domainerror.NewReportError(domainerror.ErrCodeInvalidRange, err.Error(), domainerror.ErrInvalidDateRange)
	}
	return period, nil
}

// GetTopProductsUseCase ranks catalog products by units sold on income transactions.
type GetTopProductsUseCase struct {
	reportRepo report.ReportRepository
}

// NewGetTopProductsUseCase creates a new GetTopProductsUseCase instance.
func NewGetTopProductsUseCase(reportRepo report.ReportRepository) *GetTopProductsUseCase {
	return &GetTopProductsUseCase{reportRepo: reportRepo}
}

// Execute returns the best sellers. Ties on quantity go to the higher revenue.
func (uc *GetTopProductsUseCase) Execute(ctx context.Context, input GetTopInput) ([]entity.RankedItem, error) {
	period, err := input.period()
	if err != nil {
		return nil, err
	}

	lines, err := uc.reportRepo.FindLineRows(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load sold lines: %w", err)
	}
	var sold []report.LineRow
	for _, l := range lines {
		if l.TransactionType == entity.TransactionTypeIncome {
			sold = append(sold, l)
		}
	}

	// The product table is ordered by revenue; re-rank by quantity keeping that as the tie-break.
	items := rankedItems(report.AggregateProducts(period, sold))
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	return truncate(items, clampLimit(input.Limit, DefaultTopLimit, MaxTopLimit)), nil
}

// GetTopCustomersUseCase ranks customers by income transaction totals.
type GetTopCustomersUseCase struct {
	reportRepo report.ReportRepository
}

// NewGetTopCustomersUseCase creates a new GetTopCustomersUseCase instance.
func NewGetTopCustomersUseCase(reportRepo report.ReportRepository) *GetTopCustomersUseCase {
	return &GetTopCustomersUseCase{reportRepo: reportRepo}
}

// Execute returns the customers who spent the most.
func (uc *GetTopCustomersUseCase) Execute(ctx context.Context, input GetTopInput) ([]entity.RankedItem, error) {
	period, err := input.period()
	if err != nil {
		return nil, err
	}

	rows, err := uc.reportRepo.FindTransactionRows(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	var sales []report.TransactionRow
	for _, r := range rows {
		if r.Type == entity.TransactionTypeIncome {
			sales = append(sales, r)
		}
	}

	items := rankedItems(report.AggregateCustomers(period, sales))
	return truncate(items, clampLimit(input.Limit, DefaultTopLimit, MaxTopLimit)), nil
}

// GetRecentTransactionsUseCase lists the latest transactions across all users.
type GetRecentTransactionsUseCase struct {
	dashboardRepo DashboardRepository
}

// NewGetRecentTransactionsUseCase creates a new GetRecentTransactionsUseCase instance.
func NewGetRecentTransactionsUseCase(dashboardRepo DashboardRepository) *GetRecentTransactionsUseCase {
	return &GetRecentTransactionsUseCase{dashboardRepo: dashboardRepo}
}

// Execute returns up to limit transactions, newest first.
func (uc *GetRecentTransactionsUseCase) Execute(ctx context.Context, limit int) ([]report.TransactionRow, error) {
	rows, err := uc.dashboardRepo.FindRecentTransactions(ctx, clampLimit(limit, DefaultRecentLimit, MaxRecentLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}
	return rows, nil
}

// rankedItems reads name, count and total from a grouped report table.
func rankedItems(table *entity.ReportTable) []entity.RankedItem {
	items := make([]entity.RankedItem, 0, len(table.Rows))
	for _, row := range table.Rows {
		items = append(items, entity.RankedItem{
			Name:  row[0].Text,
			Count: row[1].Int,
			Total: row[2].Amount,
		})
	}
	return items
}

func truncate(items []entity.RankedItem, limit int) []entity.RankedItem {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
