package report

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

// GenerateReportInput selects the dimension and period of a report.
// When Month is set the period is that calendar month of Year; otherwise
// StartDate and EndDate (YYYY-MM-DD, inclusive) are used.
type GenerateReportInput struct {
	Dimension entity.ReportDimension
	StartDate string
	EndDate   string
	Month     int
	Year      int
	Title     string
}

// GenerateReportUseCase validates the period, loads joined rows and aggregates
// them into a renderer-agnostic table. Tables are served from the cache when present.
type GenerateReportUseCase struct {
	reportRepo  ReportRepository
	reportCache adapter.ReportCache
	now         func() time.Time
}

// NewGenerateReportUseCase creates a new GenerateReportUseCase instance. reportCache may be nil.
func NewGenerateReportUseCase(reportRepo ReportRepository, reportCache adapter.ReportCache) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		reportRepo:  reportRepo,
		reportCache: reportCache,
		now:         time.Now,
	}
}

// Execute builds the report table.
func (uc *GenerateReportUseCase) Execute(ctx context.Context, input GenerateReportInput) (*entity.ReportTable, error) {
	if !input.Dimension.IsValid() {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidDimension,
			"unknown report dimension",
			domainerror.ErrInvalidReportDimension,
		)
	}

	period, err := resolvePeriod(input)
	if err != nil {
		return nil, domainerror.NewReportError(domainerror.ErrCodeInvalidRange, err.Error(), domainerror.ErrInvalidDateRange)
	}

	// Listing titles vary per request, so only grouped reports are cached.
	cacheable := uc.reportCache != nil && input.Dimension != entity.ReportDimensionTransactions
	var generation int64
	if cacheable {
		cached, gen, err := uc.reportCache.Get(ctx, input.Dimension, period)
		if err != nil {
			slog.Warn("Report cache read failed", "dimension", input.Dimension, "error", err)
			cacheable = false
		} else if cached != nil {
			slog.Debug("Report served from cache", "dimension", input.Dimension, "period", period.String())
			return cached, nil
		}
		generation = gen
	}

	table, err := uc.aggregate(ctx, input, period)
	if err != nil {
		return nil, domainerror.NewReportError(domainerror.ErrCodeReportStore, "failed to load report data", err)
	}
	table.GeneratedAt = uc.now().UTC()

	if cacheable {
		if err := uc.reportCache.Set(ctx, generation, table, period); err != nil {
			slog.Warn("Report cache write failed", "dimension", input.Dimension, "error", err)
		}
	}

	return table, nil
}

func (uc *GenerateReportUseCase) aggregate(ctx context.Context, input GenerateReportInput, period valueobject.DateRange) (*entity.ReportTable, error) {
	switch input.Dimension {
	case entity.ReportDimensionProduct:
		lines, err := uc.reportRepo.FindLineRows(ctx, period)
		if err != nil {
			return nil, err
		}
		return AggregateProducts(period, lines), nil

	case entity.ReportDimensionCustomer, entity.ReportDimensionSalesperson, entity.ReportDimensionIncomeExpense:
		rows, err := uc.reportRepo.FindTransactionRows(ctx, period)
		if err != nil {
			return nil, err
		}
		switch input.Dimension {
		case entity.ReportDimensionCustomer:
			return AggregateCustomers(period, rows), nil
		case entity.ReportDimensionSalesperson:
			return AggregateSalespeople(period, rows), nil
		default:
			return AggregateIncomeExpense(period, rows), nil
		}

	case entity.ReportDimensionTransactions:
		rows, err := uc.reportRepo.FindTransactionRows(ctx, period)
		if err != nil {
			return nil, err
		}
		lines, err := uc.reportRepo.FindLineRows(ctx, period)
		if err != nil {
			return nil, err
		}
		return ListTransactions(input.Title, period, rows, lines), nil
	}

	return nil, errors.New("unsupported dimension " + string(input.Dimension))
}

func resolvePeriod(input GenerateReportInput) (valueobject.DateRange, error) {
	if input.Month != 0 || input.Year != 0 {
		return valueobject.MonthRange(input.Month, input.Year)
	}
	return valueobject.ParseDateRange(input.StartDate, input.EndDate)
}
