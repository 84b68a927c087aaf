package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesledger/backend/internal/domain/entity"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *reportCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewReportCache(client, time.Minute).(*reportCache)
}

func sampleTable(period valueobject.DateRange) *entity.ReportTable {
	return &entity.ReportTable{
		Title:     "Income & Expense Report",
		Dimension: entity.ReportDimensionIncomeExpense,
		StartDate: period.Start,
		EndDate:   period.End,
		Period:    period.String(),
		Columns: []entity.ReportColumn{
			{Key: "period", Header: "Period", Kind: entity.ColumnKindText},
			{Key: "net_income", Header: "Net Income", Kind: entity.ColumnKindMoney},
		},
		Rows: []entity.ReportRow{{
			entity.TextCell(period.String()),
			entity.MoneyCell(decimal.RequireFromString("35000.00")),
		}},
	}
}

func TestNewReportCache_NilClient(t *testing.T) {
	assert.Nil(t, NewReportCache(nil, time.Minute))
}

func TestReportCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestCache(t)
	period, err := valueobject.ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	got, generation, err := c.Get(ctx, entity.ReportDimensionIncomeExpense, period)
	require.NoError(t, err)
	assert.Nil(t, got, "empty cache is a miss")
	assert.Zero(t, generation)

	require.NoError(t, c.Set(ctx, generation, sampleTable(period), period))
	assert.True(t, mr.Exists("report:v0:income_expense:2024-01-01:2024-01-31"))
	assert.Equal(t, time.Minute, mr.TTL("report:v0:income_expense:2024-01-01:2024-01-31"))

	got, _, err = c.Get(ctx, entity.ReportDimensionIncomeExpense, period)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Rows, 1)
	assert.True(t, got.Rows[0][1].Amount.Equal(decimal.NewFromInt(35000)))
	assert.True(t, got.StartDate.Equal(period.Start))
}

func TestReportCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	_, c := newTestCache(t)
	period, err := valueobject.ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, 0, sampleTable(period), period))
	require.NoError(t, c.Invalidate(ctx))

	got, generation, err := c.Get(ctx, entity.ReportDimensionIncomeExpense, period)
	require.NoError(t, err)
	assert.Nil(t, got, "invalidated entries must not be served")
	assert.Equal(t, int64(1), generation)
}

func TestReportCache_KeysByDimension(t *testing.T) {
	ctx := context.Background()
	_, c := newTestCache(t)
	period, err := valueobject.ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, 0, sampleTable(period), period))

	got, _, err := c.Get(ctx, entity.ReportDimensionProduct, period)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReportCache_SetUnderRetiredGeneration(t *testing.T) {
	ctx := context.Background()
	_, c := newTestCache(t)
	period, err := valueobject.ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	_, generation, err := c.Get(ctx, entity.ReportDimensionIncomeExpense, period)
	require.NoError(t, err)

	// A write lands between the miss and the store.
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, generation, sampleTable(period), period))

	got, current, err := c.Get(ctx, entity.ReportDimensionIncomeExpense, period)
	require.NoError(t, err)
	assert.Nil(t, got, "a table built before the write must not be served")
	assert.Equal(t, generation+1, current)
}
