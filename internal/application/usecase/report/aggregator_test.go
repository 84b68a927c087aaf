package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesledger/backend/internal/domain/entity"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

func january(t *testing.T) valueobject.DateRange {
	t.Helper()
	period, err := valueobject.ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	return period
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAggregateProducts(t *testing.T) {
	productA, productB := uuid.New(), uuid.New()
	date := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	lines := []LineRow{
		{ProductID: &productA, ProductName: "Product A", Quantity: 2, TotalPrice: money("20000"), TransactionDate: date},
		{ProductID: &productB, ProductName: "Product B", Quantity: 1, TotalPrice: money("25000"), TransactionDate: date},
		{ItemName: "Paper", Quantity: 10, TotalPrice: money("5000"), TransactionDate: date},
		{ProductID: &productA, ProductName: "Product A", Quantity: 1, TotalPrice: money("10000"), TransactionDate: date},
	}

	table := AggregateProducts(january(t), lines)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Product A", table.Rows[0][0].Text)
	assert.EqualValues(t, 3, table.Rows[0][1].Int)
	assert.Equal(t, "30000.00", table.Rows[0][2].Amount.StringFixed(2))
	assert.Equal(t, "Product B", table.Rows[1][0].Text)

	total, ok := table.GrandTotal()
	require.True(t, ok)
	assert.Equal(t, "55000.00", total.StringFixed(2))
	assert.Equal(t, entity.ReportDimensionProduct, table.Dimension)
	assert.Equal(t, "2024-01-01 - 2024-01-31", table.Period)
}

func TestAggregateProducts_TiesOrderedByName(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	table := AggregateProducts(january(t), []LineRow{
		{ProductID: &first, ProductName: "Zeta", Quantity: 1, TotalPrice: money("100")},
		{ProductID: &second, ProductName: "Alpha", Quantity: 1, TotalPrice: money("100")},
	})

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Alpha", table.Rows[0][0].Text)
	assert.Equal(t, "Zeta", table.Rows[1][0].Text)
}

func TestAggregateCustomers(t *testing.T) {
	acme, globex := uuid.New(), uuid.New()
	rows := []TransactionRow{
		{CustomerID: &acme, CustomerName: "Acme", TotalAmount: money("45000")},
		{CustomerID: &globex, CustomerName: "Globex", TotalAmount: money("50000")},
		{CustomerID: &acme, CustomerName: "Acme", TotalAmount: money("10000")},
		{TotalAmount: money("99999")},
	}

	table := AggregateCustomers(january(t), rows)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Acme", table.Rows[0][0].Text)
	assert.EqualValues(t, 2, table.Rows[0][1].Int)
	assert.Equal(t, "55000.00", table.Rows[0][2].Amount.StringFixed(2))
	assert.Equal(t, "Globex", table.Rows[1][0].Text)
	assert.Equal(t, ColTotalSpent, table.TotalColumn)
}

func TestAggregateSalespeople(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	rows := []TransactionRow{
		{UserID: alice, UserName: "Alice", TotalAmount: money("100")},
		{UserID: bob, UserName: "Bob", TotalAmount: money("300")},
		{UserID: alice, UserName: "Alice", TotalAmount: money("150")},
	}

	table := AggregateSalespeople(january(t), rows)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Bob", table.Rows[0][0].Text)
	assert.Equal(t, "Alice", table.Rows[1][0].Text)
	assert.EqualValues(t, 2, table.Rows[1][1].Int)
	assert.Equal(t, "250.00", table.Rows[1][2].Amount.StringFixed(2))
}

func TestAggregateIncomeExpense(t *testing.T) {
	rows := []TransactionRow{
		{Type: entity.TransactionTypeIncome, TotalAmount: money("45000")},
		{Type: entity.TransactionTypeExpense, TotalAmount: money("10000")},
	}

	table := AggregateIncomeExpense(january(t), rows)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "45000.00", table.Rows[0][1].Amount.StringFixed(2))
	assert.Equal(t, "10000.00", table.Rows[0][2].Amount.StringFixed(2))
	assert.Equal(t, "35000.00", table.Rows[0][3].Amount.StringFixed(2))
	require.Len(t, table.Summary, 3)
	assert.Equal(t, "35000.00", table.Summary[2].Amount.StringFixed(2))
}

func TestAggregate_EmptyInput(t *testing.T) {
	period := january(t)

	assert.Empty(t, AggregateProducts(period, nil).Rows)
	assert.Empty(t, AggregateCustomers(period, nil).Rows)
	assert.Empty(t, AggregateSalespeople(period, nil).Rows)

	incomeExpense := AggregateIncomeExpense(period, nil)
	require.Len(t, incomeExpense.Rows, 1)
	for _, cell := range incomeExpense.Rows[0][1:] {
		assert.True(t, cell.Amount.IsZero())
	}

	listing := ListTransactions("", period, nil, nil)
	assert.Empty(t, listing.Rows)
	assert.Equal(t, "Transaction Report", listing.Title)
}

func TestListTransactions(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	product := uuid.New()
	date := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	rows := []TransactionRow{
		{TransactionID: first, TransactionDate: date, Type: entity.TransactionTypeIncome, Status: entity.TransactionStatusDone,
			CustomerName: "Acme", UserName: "Alice", TotalAmount: money("45000")},
		{TransactionID: second, TransactionDate: date.Add(time.Hour), Type: entity.TransactionTypeExpense,
			Status: entity.TransactionStatusPending, UserName: "Alice", TotalAmount: money("1000")},
	}
	lines := []LineRow{
		{TransactionID: first, ProductID: &product, ProductName: "Coffee", Quantity: 2},
		{TransactionID: first, ProductID: &product, ProductName: "Tea", Quantity: 1},
		{TransactionID: second, ItemName: "Paper", Quantity: 4},
	}

	table := ListTransactions("Daily Transaction Report", january(t), rows, lines)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Daily Transaction Report", table.Title)
	assert.Equal(t, "Coffee(2), Tea(1)", table.Rows[0][4].Text)
	assert.Equal(t, "-", table.Rows[1][1].Text)
	assert.Equal(t, "Paper(4)", table.Rows[1][4].Text)
	assert.Equal(t, "1000.00", table.Summary[2].Amount.StringFixed(2))
}
