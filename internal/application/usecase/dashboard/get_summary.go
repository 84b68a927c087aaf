package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/salesledger/backend/internal/domain/entity"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

// GetSummaryInput represents the input for the dashboard summary.
type GetSummaryInput struct {
	// Now anchors the "current month" figure. Zero means time.Now.
	Now time.Time
}

// GetSummaryUseCase builds the admin dashboard headline figures.
type GetSummaryUseCase struct {
	dashboardRepo DashboardRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(dashboardRepo DashboardRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		dashboardRepo: dashboardRepo,
	}
}

// Execute gathers all-time totals, catalog counts and the current month's sales.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*entity.DashboardSummary, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	totals, err := uc.dashboardRepo.GetTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}

	month, err := valueobject.MonthRange(int(now.Month()), now.Year())
	if err != nil {
		return nil, err
	}
	monthlySales, err := uc.dashboardRepo.GetIncomeBetween(ctx, month.Start, month.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly sales: %w", err)
	}

	productCount, err := uc.dashboardRepo.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	customerCount, err := uc.dashboardRepo.CountCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	return &entity.DashboardSummary{
		TotalIncome:      totals.Income,
		TotalExpense:     totals.Expense,
		NetIncome:        totals.Income.Sub(totals.Expense),
		TransactionCount: totals.TransactionCount,
		ProductCount:     productCount,
		CustomerCount:    customerCount,
		MonthlySales:     monthlySales,
	}, nil
}
