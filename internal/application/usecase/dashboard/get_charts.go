package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/salesledger/backend/internal/application/usecase/report"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

const (
	DefaultSalesChartDays           = 30
	MaxSalesChartDays               = 366
	DefaultIncomeExpenseChartMonths = 12
	MaxIncomeExpenseChartMonths     = 60
)

// GetSalesChartInput selects the trailing window of the daily sales chart.
type GetSalesChartInput struct {
	Days int       // zero means DefaultSalesChartDays
	Now  time.Time // zero means time.Now
}

// GetSalesChartUseCase builds daily income totals for the trailing days, today included.
type GetSalesChartUseCase struct {
	reportRepo report.ReportRepository
}

// NewGetSalesChartUseCase creates a new GetSalesChartUseCase instance.
func NewGetSalesChartUseCase(reportRepo report.ReportRepository) *GetSalesChartUseCase {
	return &GetSalesChartUseCase{reportRepo: reportRepo}
}

// Execute returns one point per day. Expense transactions are left out.
func (uc *GetSalesChartUseCase) Execute(ctx context.Context, input GetSalesChartInput) ([]entity.ChartPoint, error) {
	days := input.Days
	if days == 0 {
		days = DefaultSalesChartDays
	}
	if days < 1 || days > MaxSalesChartDays {
		return nil, invalidWindow(fmt.Sprintf("days must be between 1 and %d", MaxSalesChartDays))
	}

	now := nowOr(input.Now)
	period := valueobject.NewDateRange(now.AddDate(0, 0, -(days - 1)), now)

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
	return buildChart(period, GranularityDaily, sales), nil
}

// GetIncomeExpenseChartInput selects the trailing window of the monthly chart.
type GetIncomeExpenseChartInput struct {
	Months int       // zero means DefaultIncomeExpenseChartMonths
	Now    time.Time // zero means time.Now
}

// GetIncomeExpenseChartUseCase builds monthly income and expense totals for the
// trailing calendar months, the current month included.
type GetIncomeExpenseChartUseCase struct {
	reportRepo report.ReportRepository
}

// NewGetIncomeExpenseChartUseCase creates a new GetIncomeExpenseChartUseCase instance.
func NewGetIncomeExpenseChartUseCase(reportRepo report.ReportRepository) *GetIncomeExpenseChartUseCase {
	return &GetIncomeExpenseChartUseCase{reportRepo: reportRepo}
}

// Execute returns one point per month.
func (uc *GetIncomeExpenseChartUseCase) Execute(ctx context.Context, input GetIncomeExpenseChartInput) ([]entity.ChartPoint, error) {
	months := input.Months
	if months == 0 {
		months = DefaultIncomeExpenseChartMonths
	}
	if months < 1 || months > MaxIncomeExpenseChartMonths {
		return nil, invalidWindow(fmt.Sprintf("months must be between 1 and %d", MaxIncomeExpenseChartMonths))
	}

	now := nowOr(input.Now)
	first := time.Date(now.Year(), now.Month()-time.Month(months-1), 1, 0, 0, 0, 0, time.UTC)
	period := valueobject.NewDateRange(first, now)

	rows, err := uc.reportRepo.FindTransactionRows(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return buildChart(period, GranularityMonthly, rows), nil
}

func nowOr(now time.Time) time.Time {
	if now.IsZero() {
		now = time.Now()
	}
	return now.UTC()
}

func invalidWindow(message string) error {
	return domainerror.NewReportError(domainerror.ErrCodeInvalidRange, message, domainerror.ErrInvalidDateRange)
}
