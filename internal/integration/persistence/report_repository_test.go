package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesledger/backend/internal/domain/entity"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

func TestReportRepository_FindTransactionRows(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewReportRepository(gdb)

	sales := seedUser(t, gdb, "Sales One", entity.UserRoleSales)
	customer := seedCustomer(t, gdb, "Acme", &sales.ID)
	product := seedProduct(t, gdb, "Product A", "10000")

	inRange := seedTransaction(t, gdb, sales, &customer.ID, entity.TransactionTypeIncome, day("2024-01-31 23:30"), productLine(product, 2))
	walkIn := seedTransaction(t, gdb, sales, nil, entity.TransactionTypeExpense, day("2024-01-01 00:00"), itemLine("Fuel", 1, "300"))
	seedTransaction(t, gdb, sales, nil, entity.TransactionTypeIncome, day("2024-02-01 00:00"), productLine(product, 1))

	period, err := valueobject.ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	rows, err := repo.FindTransactionRows(context.Background(), period)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, walkIn.ID, rows[0].TransactionID)
	assert.Nil(t, rows[0].CustomerID)
	assert.Empty(t, rows[0].CustomerName)
	assert.Equal(t, entity.TransactionTypeExpense, rows[0].Type)

	assert.Equal(t, inRange.ID, rows[1].TransactionID)
	assert.Equal(t, "Acme", rows[1].CustomerName)
	assert.Equal(t, "Sales One", rows[1].UserName)
	assert.Equal(t, "20000", rows[1].TotalAmount.String())
}

func TestReportRepository_FindLineRows(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewReportRepository(gdb)

	sales := seedUser(t, gdb, "Sales One", entity.UserRoleSales)
	productA := seedProduct(t, gdb, "Product A", "10000")
	productB := seedProduct(t, gdb, "Product B", "25000")

	seedTransaction(t, gdb, sales, nil, entity.TransactionTypeIncome, day("2024-01-15 10:00"),
		productLine(productA, 2), productLine(productB, 1))
	seedTransaction(t, gdb, sales, nil, entity.TransactionTypeExpense, day("2024-01-16 10:00"),
		itemLine("Paper", 4, "250"))

	period, err := valueobject.ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	rows, err := repo.FindLineRows(context.Background(), period)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byName := map[string]string{}
	for _, r := range rows {
		if r.ProductID != nil {
			byName[r.ProductName] = r.TotalPrice.String()
			continue
		}
		assert.Equal(t, "Paper", r.ItemName)
		assert.Equal(t, 4, r.Quantity)
		assert.Equal(t, entity.TransactionTypeExpense, r.TransactionType)
	}
	assert.Equal(t, map[string]string{"Product A": "20000", "Product B": "25000"}, byName)
}

func TestReportRepository_EmptyRange(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewReportRepository(gdb)

	period, err := valueobject.ParseDateRange("2030-01-01", "2030-01-31")
	require.NoError(t, err)

	rows, err := repo.FindTransactionRows(context.Background(), period)
	require.NoError(t, err)
	assert.Empty(t, rows)

	lines, err := repo.FindLineRows(context.Background(), period)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
