package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/integration/persistence/model"
)

func TestTransactionRepository_CreateAndFindByID(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewTransactionRepository(gdb)
	ctx := context.Background()

	owner := seedUser(t, gdb, "Sales One", entity.UserRoleSales)
	productA := seedProduct(t, gdb, "Product A", "10000")
	productB := seedProduct(t, gdb, "Product B", "25000")

	created := seedTransaction(t, gdb, owner, nil, entity.TransactionTypeIncome, day("2024-01-15 10:00"),
		productLine(productA, 2), productLine(productB, 1))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "45000", found.TotalAmount.String())
	assert.Equal(t, entity.TransactionStatusPending, found.Status)
	require.Len(t, found.Lines, 2)

	totals := []string{found.Lines[0].TotalPrice.String(), found.Lines[1].TotalPrice.String()}
	assert.ElementsMatch(t, []string{"20000", "25000"}, totals)
	assert.True(t, found.TotalAmount.Equal(entity.SumLineTotals(found.Lines)))
}

func TestTransactionRepository_FindByID_NotFound(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
}

func TestTransactionRepository_CreateRollsBackOnLineFailure(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewTransactionRepository(gdb)

	owner := seedUser(t, gdb, "Sales One", entity.UserRoleSales)
	product := seedProduct(t, gdb, "Product A", "10000")

	line := productLine(product, 1)
	duplicate := productLine(product, 1)
	duplicate.ID = line.ID

	transaction := entity.NewTransaction(owner.ID, nil, "", entity.TransactionTypeIncome, time.Now().UTC(), "")
	transaction.AttachLines([]*entity.TransactionLine{line, duplicate})

	err := repo.Create(context.Background(), transaction)
	require.Error(t, err)

	var parents, lines int64
	require.NoError(t, gdb.Model(&model.TransactionModel{}).Count(&parents).Error)
	require.NoError(t, gdb.Model(&model.TransactionLineModel{}).Count(&lines).Error)
	assert.Zero(t, parents)
	assert.Zero(t, lines)
}

func TestTransactionRepository_ReplaceWithLines(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewTransactionRepository(gdb)
	ctx := context.Background()

	owner := seedUser(t, gdb, "Sales One", entity.UserRoleSales)
	productA := seedProduct(t, gdb, "Product A", "10000")
	productB := seedProduct(t, gdb, "Product B", "25000")

	original := seedTransaction(t, gdb, owner, nil, entity.TransactionTypeIncome, day("2024-01-15 10:00"),
		productLine(productA, 2), productLine(productB, 1))
	stored, err := repo.FindByID(ctx, original.ID)
	require.NoError(t, err)

	replacement := &entity.Transaction{
		ID:              stored.ID,
		UserID:          stored.UserID,
		Description:     "replaced",
		TransactionDate: stored.TransactionDate,
		Type:            entity.TransactionTypeIncome,
		Status:          stored.Status,
		CreatedAt:       stored.CreatedAt,
		UpdatedAt:       time.Now().UTC().Add(time.Second),
	}
	replacement.AttachLines([]*entity.TransactionLine{productLine(productB, 3)})

	require.NoError(t, repo.ReplaceWithLines(ctx, replacement, stored.UpdatedAt))

	found, err := repo.FindByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "replaced", found.Description)
	assert.Equal(t, "75000", found.TotalAmount.String())
	require.Len(t, found.Lines, 1)
	assert.Equal(t, productB.ID, *found.Lines[0].ProductID)

	var lineCount int64
	require.NoError(t, gdb.Model(&model.TransactionLineModel{}).Where("transaction_id = ?", stored.ID).Count(&lineCount).Error)
	assert.EqualValues(t, 1, lineCount)
}

func TestTransactionRepository_ReplaceWithLines_Conflicts(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewTransactionRepository(gdb)
	ctx := context.Background()

	owner := seedUser(t, gdb, "Sales One", entity.UserRoleSales)
	product := seedProduct(t, gdb, "Product A", "10000")
	original := seedTransaction(t, gdb, owner, nil, entity.TransactionTypeIncome, day("2024-01-15 10:00"),
		productLine(product, 1))

	t.Run("stale read", func(t *testing.T) {
		replacement := *original
		replacement.UpdatedAt = time.Now().UTC()
		replacement.AttachLines([]*entity.TransactionLine{productLine(product, 5)})

		err := repo.ReplaceWithLines(ctx, &replacement, original.UpdatedAt.Add(-time.Hour))
		assert.ErrorIs(t, err, domainerror.ErrTransactionConflict)

		found, err := repo.FindByID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, "10000", found.TotalAmount.String())
		require.Len(t, found.Lines, 1)
		assert.Equal(t, 1, found.Lines[0].Quantity)
	})

	t.Run("missing transaction", func(t *testing.T) {
		ghost := entity.NewTransaction(owner.ID, nil, "", entity.TransactionTypeIncome, time.Now().UTC(), "")
		ghost.AttachLines([]*entity.TransactionLine{productLine(product, 1)})

		err := repo.ReplaceWithLines(ctx, ghost, time.Time{})
		assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
	})
}

func TestTransactionRepository_Delete(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewTransactionRepository(gdb)
	ctx := context.Background()

	owner := seedUser(t, gdb, "Sales One", entity.UserRoleSales)
	transaction := seedTransaction(t, gdb, owner, nil, entity.TransactionTypeExpense, day("2024-01-15 10:00"),
		itemLine("Paper", 2, "500"), itemLine("Ink", 1, "9000"))

	require.NoError(t, repo.Delete(ctx, transaction.ID))

	var lines int64
	require.NoError(t, gdb.Model(&model.TransactionLineModel{}).Count(&lines).Error)
	assert.Zero(t, lines)

	_, err := repo.FindByID(ctx, transaction.ID)
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, transaction.ID), domainerror.ErrTransactionNotFound)
}

func TestTransactionRepository_UpdateLineStatus(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewTransactionRepository(gdb)
	ctx := context.Background()

	owner := seedUser(t, gdb, "Sales One", entity.UserRoleSales)
	product := seedProduct(t, gdb, "Product A", "10000")
	first, second := productLine(product, 1), productLine(product, 2)
	transaction := seedTransaction(t, gdb, owner, nil, entity.TransactionTypeIncome, day("2024-01-15 10:00"), first, second)

	result, err := repo.UpdateLineStatus(ctx, first.ID, entity.TransactionStatusDone)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusDone, result.Line.Status)
	assert.Equal(t, entity.TransactionStatusPending, result.ParentStatus)

	result, err = repo.UpdateLineStatus(ctx, second.ID, entity.TransactionStatusDone)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusDone, result.ParentStatus)

	// Moving a line back does not reopen the parent.
	result, err = repo.UpdateLineStatus(ctx, second.ID, entity.TransactionStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusInProgress, result.Line.Status)
	assert.Equal(t, entity.TransactionStatusDone, result.ParentStatus)

	found, err := repo.FindByID(ctx, transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusDone, found.Status)

	_, err = repo.UpdateLineStatus(ctx, uuid.New(), entity.TransactionStatusDone)
	assert.ErrorIs(t, err, domainerror.ErrTransactionLineNotFound)
}

func TestTransactionRepository_FindByFilter(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewTransactionRepository(gdb)
	ctx := context.Background()

	alice := seedUser(t, gdb, "Alice", entity.UserRoleSales)
	bob := seedUser(t, gdb, "Bob", entity.UserRoleSales)
	product := seedProduct(t, gdb, "Product A", "10000")

	seedTransaction(t, gdb, alice, nil, entity.TransactionTypeIncome, day("2024-01-10 09:00"), productLine(product, 1))
	seedTransaction(t, gdb, alice, nil, entity.TransactionTypeExpense, day("2024-01-20 09:00"), itemLine("Fuel", 1, "300"))
	seedTransaction(t, gdb, bob, nil, entity.TransactionTypeIncome, day("2024-01-15 09:00"), productLine(product, 3))

	incomeType := entity.TransactionTypeIncome
	tests := []struct {
		name     string
		filter   adapter.TransactionFilter
		expected int64
	}{
		{name: "all owners", filter: adapter.TransactionFilter{}, expected: 3},
		{name: "single owner", filter: adapter.TransactionFilter{UserID: &alice.ID}, expected: 2},
		{name: "by type", filter: adapter.TransactionFilter{Type: &incomeType}, expected: 2},
		{name: "owner and type", filter: adapter.TransactionFilter{UserID: &bob.ID, Type: &incomeType}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := repo.FindByFilter(ctx, tt.filter, adapter.TransactionPagination{Page: 1, Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Total)
			assert.Len(t, result.Transactions, int(tt.expected))
			for _, tx := range result.Transactions {
				assert.NotEmpty(t, tx.Lines)
			}
		})
	}

	page, err := repo.FindByFilter(ctx, adapter.TransactionFilter{}, adapter.TransactionPagination{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Transactions, 1)
	assert.True(t, page.Transactions[0].TotalAmount.Equal(decimal.NewFromInt(10000)))
}
