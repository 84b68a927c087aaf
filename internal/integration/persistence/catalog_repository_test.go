package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
)

func TestProductRepository_FindPricesByIDs(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewProductRepository(gdb)
	ctx := context.Background()

	productA := seedProduct(t, gdb, "Product A", "10000")
	productB := seedProduct(t, gdb, "Product B", "25000.50")

	prices, err := repo.FindPricesByIDs(ctx, []uuid.UUID{productA.ID, productB.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, prices, 2)

	got := map[uuid.UUID]string{}
	for _, p := range prices {
		got[p.ProductID] = p.Price.StringFixed(2)
	}
	assert.Equal(t, "10000.00", got[productA.ID])
	assert.Equal(t, "25000.50", got[productB.ID])

	empty, err := repo.FindPricesByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProductRepository_IsReferencedAndDelete(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewProductRepository(gdb)
	ctx := context.Background()

	sales := seedUser(t, gdb, "Sales One", entity.UserRoleSales)
	used := seedProduct(t, gdb, "Used", "100")
	unused := seedProduct(t, gdb, "Unused", "100")
	seedTransaction(t, gdb, sales, nil, entity.TransactionTypeIncome, day("2024-01-15 10:00"), productLine(used, 1))

	referenced, err := repo.IsReferenced(ctx, used.ID)
	require.NoError(t, err)
	assert.True(t, referenced)

	referenced, err = repo.IsReferenced(ctx, unused.ID)
	require.NoError(t, err)
	assert.False(t, referenced)

	require.NoError(t, repo.Delete(ctx, unused.ID))
	assert.ErrorIs(t, repo.Delete(ctx, unused.ID), domainerror.ErrProductNotFound)
}

func TestCustomerRepository_FindAllBySalesperson(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewCustomerRepository(gdb)
	ctx := context.Background()

	alice := seedUser(t, gdb, "Alice", entity.UserRoleSales)
	bob := seedUser(t, gdb, "Bob", entity.UserRoleSales)
	seedCustomer(t, gdb, "Acme", &alice.ID)
	seedCustomer(t, gdb, "Globex", &bob.ID)
	seedCustomer(t, gdb, "Initech", nil)

	all, err := repo.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := repo.FindAll(ctx, &alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Acme", mine[0].Name)

	exists, err := repo.ExistsByID(ctx, mine[0].ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, mine[0].Email)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCustomerRepository_UpdateAndDelete(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewCustomerRepository(gdb)
	ctx := context.Background()

	sales := seedUser(t, gdb, "Sales One", entity.UserRoleSales)
	used := seedCustomer(t, gdb, "Acme", &sales.ID)
	unused := seedCustomer(t, gdb, "Initech", nil)
	seedTransaction(t, gdb, sales, &used.ID, entity.TransactionTypeExpense, day("2024-01-15 10:00"), itemLine("Paper", 1, "100"))

	used.Name = "Acme Corp"
	used.SalesID = nil
	require.NoError(t, repo.Update(ctx, used))
	stored, err := repo.FindByID(ctx, used.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", stored.Name)
	assert.Nil(t, stored.SalesID)

	referenced, err := repo.IsReferenced(ctx, used.ID)
	require.NoError(t, err)
	assert.True(t, referenced)

	referenced, err = repo.IsReferenced(ctx, unused.ID)
	require.NoError(t, err)
	assert.False(t, referenced)

	require.NoError(t, repo.Delete(ctx, unused.ID))
	assert.ErrorIs(t, repo.Delete(ctx, unused.ID), domainerror.ErrCustomerNotFound)
	_, err = repo.FindByID(ctx, unused.ID)
	assert.ErrorIs(t, err, domainerror.ErrCustomerNotFound)
}

func TestDashboardRepository_FindRecentTransactions(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewDashboardRepository(gdb)
	ctx := context.Background()

	sales := seedUser(t, gdb, "Sales One", entity.UserRoleSales)
	acme := seedCustomer(t, gdb, "Acme", &sales.ID)
	product := seedProduct(t, gdb, "Product A", "10000")
	seedTransaction(t, gdb, sales, &acme.ID, entity.TransactionTypeIncome, day("2024-01-10 10:00"), productLine(product, 1))
	latest := seedTransaction(t, gdb, sales, &acme.ID, entity.TransactionTypeIncome, day("2024-03-10 10:00"), productLine(product, 3))
	seedTransaction(t, gdb, sales, nil, entity.TransactionTypeExpense, day("2024-02-10 10:00"), itemLine("Rent", 1, "5000"))

	rows, err := repo.FindRecentTransactions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, latest.ID, rows[0].TransactionID)
	assert.Equal(t, "Acme", rows[0].CustomerName)
	assert.Equal(t, "Sales One", rows[0].UserName)
	assert.Equal(t, "30000.00", rows[0].TotalAmount.StringFixed(2))
	assert.Equal(t, entity.TransactionTypeExpense, rows[1].Type)
	assert.Empty(t, rows[1].CustomerName)
}

func TestDashboardRepository_Totals(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewDashboardRepository(gdb)
	ctx := context.Background()

	totals, err := repo.GetTotals(ctx)
	require.NoError(t, err)
	assert.True(t, totals.Income.IsZero())
	assert.Zero(t, totals.TransactionCount)

	sales := seedUser(t, gdb, "Sales One", entity.UserRoleSales)
	product := seedProduct(t, gdb, "Product A", "45000")
	seedTransaction(t, gdb, sales, nil, entity.TransactionTypeIncome, day("2024-01-15 10:00"), productLine(product, 1))
	seedTransaction(t, gdb, sales, nil, entity.TransactionTypeExpense, day("2024-01-20 10:00"), itemLine("Rent", 1, "10000"))

	totals, err = repo.GetTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, "45000.00", totals.Income.StringFixed(2))
	assert.Equal(t, "10000.00", totals.Expense.StringFixed(2))
	assert.EqualValues(t, 2, totals.TransactionCount)

	income, err := repo.GetIncomeBetween(ctx, day("2024-01-01 00:00"), day("2024-01-31 23:59"))
	require.NoError(t, err)
	assert.Equal(t, "45000.00", income.StringFixed(2))

	products, err := repo.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, products)
}
