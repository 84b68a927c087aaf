package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesledger/backend/internal/application/usecase/report"
)

type stubDashboardRepository struct {
	totals       *Totals
	totalsErr    error
	income       decimal.Decimal
	start, end   time.Time
	products     int64
	customers    int64
	customersErr error
	recent       []report.TransactionRow
	limit        int
}

func (s *stubDashboardRepository) GetTotals(context.Context) (*Totals, error) {
	return s.totals, s.totalsErr
}

func (s *stubDashboardRepository) GetIncomeBetween(_ context.Context, start, end time.Time) (decimal.Decimal, error) {
	s.start, s.end = start, end
	return s.income, nil
}

func (s *stubDashboardRepository) CountProducts(context.Context) (int64, error) {
	return s.products, nil
}

func (s *stubDashboardRepository) CountCustomers(context.Context) (int64, error) {
	return s.customers, s.customersErr
}

func (s *stubDashboardRepository) FindRecentTransactions(_ context.Context, limit int) ([]report.TransactionRow, error) {
	s.limit = limit
	return s.recent, nil
}

func TestGetSummaryUseCase_Execute(t *testing.T) {
	repo := &stubDashboardRepository{
		totals: &Totals{
			Income:           decimal.NewFromInt(45000),
			Expense:          decimal.NewFromInt(10000),
			TransactionCount: 2,
		},
		income:    decimal.NewFromInt(20000),
		products:  3,
		customers: 4,
	}
	uc := NewGetSummaryUseCase(repo)

	summary, err := uc.Execute(context.Background(), GetSummaryInput{
		Now: time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "35000.00", summary.NetIncome.StringFixed(2))
	assert.EqualValues(t, 2, summary.TransactionCount)
	assert.EqualValues(t, 3, summary.ProductCount)
	assert.EqualValues(t, 4, summary.CustomerCount)
	assert.Equal(t, "20000", summary.MonthlySales.String())

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), repo.start)
	assert.Equal(t, 29, repo.end.Day(), "leap-year February ends on the 29th")
}

func TestGetSummaryUseCase_Errors(t *testing.T) {
	tests := []struct {
		name string
		repo *stubDashboardRepository
	}{
		{
			name: "totals",
			repo: &stubDashboardRepository{totalsErr: errors.New("boom")},
		},
		{
			name: "customers",
			repo: &stubDashboardRepository{totals: &Totals{}, customersErr: errors.New("boom")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGetSummaryUseCase(tt.repo).Execute(context.Background(), GetSummaryInput{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.name)
		})
	}
}
