package transaction_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/salesledger/backend/config"
	"github.com/salesledger/backend/internal/application/usecase/transaction"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/infra/db"
	"github.com/salesledger/backend/internal/integration/cache"
	"github.com/salesledger/backend/internal/integration/persistence"
	"github.com/salesledger/backend/internal/integration/persistence/model"
)

type fixture struct {
	db     *gorm.DB
	redis  *miniredis.Miniredis
	create *transaction.CreateTransactionUseCase
	update *transaction.UpdateTransactionUseCase
	delete *transaction.DeleteTransactionUseCase
	get    *transaction.GetTransactionUseCase
	list   *transaction.ListTransactionsUseCase
	status *transaction.SetLineStatusUseCase

	admin    entity.Actor
	sales    entity.Actor
	other    entity.Actor
	productA *entity.Product
	productB *entity.Product
	customer *entity.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	database, err := db.NewConnection(&config.DatabaseConfig{Driver: db.DriverSQLite, URL: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.AutoMigrate(model.AllModels()...))
	gdb := database.DB()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	reportCache := cache.NewReportCache(client, time.Minute)

	userRepo := persistence.NewUserRepository(gdb)
	productRepo := persistence.NewProductRepository(gdb)
	customerRepo := persistence.NewCustomerRepository(gdb)
	transactionRepo := persistence.NewTransactionRepository(gdb)

	actor := func(name string, role entity.UserRole) entity.Actor {
		user := entity.NewUser(uuid.NewString()+"@example.com", name, "hash", role)
		require.NoError(t, userRepo.Create(ctx, user))
		return entity.Actor{UserID: user.ID, Email: user.Email, Role: role}
	}

	f := &fixture{
		db:     gdb,
		redis:  mr,
		create: transaction.NewCreateTransactionUseCase(transactionRepo, productRepo, customerRepo, userRepo, reportCache),
		update: transaction.NewUpdateTransactionUseCase(transactionRepo, productRepo, customerRepo, userRepo, reportCache),
		delete: transaction.NewDeleteTransactionUseCase(transactionRepo, reportCache),
		get:    transaction.NewGetTransactionUseCase(transactionRepo),
		list:   transaction.NewListTransactionsUseCase(transactionRepo),
		status: transaction.NewSetLineStatusUseCase(transactionRepo),
		admin:  actor("Admin", entity.UserRoleAdmin),
		sales:  actor("Sales One", entity.UserRoleSales),
		other:  actor("Sales Two", entity.UserRoleSales),
	}

	f.productA = entity.NewProduct("Product A", "", decimal.NewFromInt(10000), "")
	f.productB = entity.NewProduct("Product B", "", decimal.NewFromInt(25000), "")
	require.NoError(t, productRepo.Create(ctx, f.productA))
	require.NoError(t, productRepo.Create(ctx, f.productB))

	f.customer = entity.NewCustomer("Acme", "acme@example.com", "", "", &f.sales.UserID)
	require.NoError(t, customerRepo.Create(ctx, f.customer))

	return f
}

func (f *fixture) saleInput(actor entity.Actor) transaction.PostingInput {
	return transaction.PostingInput{
		Actor:       actor,
		CustomerID:  &f.customer.ID,
		Description: "January sale",
		Type:        "income",
		Date:        time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		Lines: []transaction.LineInput{
			{ProductID: &f.productA.ID, Quantity: 2},
			{ProductID: &f.productB.ID, Quantity: 1},
		},
	}
}

func (f *fixture) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func (f *fixture) generation(t *testing.T) string {
	t.Helper()
	value, err := f.redis.Get("report:generation")
	if err != nil {
		return "0"
	}
	return value
}

func codeOf(t *testing.T, err error) domainerror.TransactionErrorCode {
	t.Helper()
	var txErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txErr), "expected TransactionError, got %v", err)
	return txErr.Code
}

func TestCreateTransaction_ComputesTotalsFromCurrentPrices(t *testing.T) {
	f := newFixture(t)

	out, err := f.create.Execute(context.Background(), transaction.CreateTransactionInput{PostingInput: f.saleInput(f.sales)})
	require.NoError(t, err)

	created := out.Transaction
	assert.Equal(t, "45000.00", created.TotalAmount.StringFixed(2))
	assert.Equal(t, entity.TransactionStatusPending, created.Status)
	assert.Equal(t, f.sales.UserID, created.UserID)
	require.Len(t, created.Lines, 2)
	assert.Equal(t, "20000.00", created.Lines[0].TotalPrice.StringFixed(2))
	assert.Equal(t, "25000.00", created.Lines[1].TotalPrice.StringFixed(2))

	stored, err := f.get.Execute(context.Background(), transaction.GetTransactionInput{TransactionID: created.ID, Actor: f.sales})
	require.NoError(t, err)
	assert.Equal(t, "45000.00", stored.TotalAmount.StringFixed(2))
	assert.True(t, stored.TotalAmount.Equal(entity.SumLineTotals(stored.Lines)))

	assert.Equal(t, "1", f.generation(t))
}

func TestCreateTransaction_PriceSnapshotSurvivesProductChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.create.Execute(ctx, transaction.CreateTransactionInput{PostingInput: f.saleInput(f.sales)})
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&model.ProductModel{}).Where("id = ?", f.productA.ID).
		Update("price", decimal.NewFromInt(99999)).Error)

	stored, err := f.get.Execute(ctx, transaction.GetTransactionInput{TransactionID: out.Transaction.ID, Actor: f.admin})
	require.NoError(t, err)
	assert.Equal(t, "45000.00", stored.TotalAmount.StringFixed(2))
}

func TestCreateTransaction_Rejections(t *testing.T) {
	f := newFixture(t)
	missingProduct := uuid.New()
	missingCustomer := uuid.New()
	missingUser := uuid.New()

	tests := []struct {
		name     string
		mutate   func(in *transaction.PostingInput)
		expected domainerror.TransactionErrorCode
	}{
		{
			name: "missing product aborts the whole write",
			mutate: func(in *transaction.PostingInput) {
				in.Lines = append(in.Lines, transaction.LineInput{ProductID: &missingProduct, Quantity: 1})
			},
			expected: domainerror.ErrCodeProductsNotFound,
		},
		{
			name:     "unknown customer",
			mutate:   func(in *transaction.PostingInput) { in.CustomerID = &missingCustomer },
			expected: domainerror.ErrCodeTransactionCustomerNotFound,
		},
		{
			name:     "unknown type",
			mutate:   func(in *transaction.PostingInput) { in.Type = "refund" },
			expected: domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name:     "no lines",
			mutate:   func(in *transaction.PostingInput) { in.Lines = nil },
			expected: domainerror.ErrCodeEmptyTransactionLines,
		},
		{
			name: "sales user recording for someone else",
			mutate: func(in *transaction.PostingInput) {
				in.UserID = &f.other.UserID
			},
			expected: domainerror.ErrCodeNotAuthorizedTransaction,
		},
		{
			name:     "description over the character limit",
			mutate:   func(in *transaction.PostingInput) { in.Description = strings.Repeat("é", transaction.MaxDescriptionLength+1) },
			expected: domainerror.ErrCodeDescriptionTooLong,
		},
		{
			name: "admin naming an unknown owner",
			mutate: func(in *transaction.PostingInput) {
				in.Actor = f.admin
				in.UserID = &missingUser
			},
			expected: domainerror.ErrCodeOwnerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := f.saleInput(f.sales)
			tt.mutate(&input)

			_, err := f.create.Execute(context.Background(), transaction.CreateTransactionInput{PostingInput: input})
			require.Error(t, err)
			assert.Equal(t, tt.expected, codeOf(t, err))

			assert.Zero(t, f.count(t, &model.TransactionModel{}))
			assert.Zero(t, f.count(t, &model.TransactionLineModel{}))
		})
	}
}

func TestCreateTransaction_DescriptionCountsCharacters(t *testing.T) {
	f := newFixture(t)

	input := f.saleInput(f.sales)
	input.Description = strings.Repeat("é", transaction.MaxDescriptionLength)
	require.Greater(t, len(input.Description), transaction.MaxDescriptionLength)

	out, err := f.create.Execute(context.Background(), transaction.CreateTransactionInput{PostingInput: input})
	require.NoError(t, err)
	assert.Equal(t, input.Description, out.Transaction.Description)
}

func TestCreateTransaction_LegacyTypeAndAdminOwner(t *testing.T) {
	f := newFixture(t)

	input := f.saleInput(f.admin)
	input.Type = "pengeluaran"
	input.CustomerID = nil
	input.UserID = &f.sales.UserID
	input.Lines = []transaction.LineInput{{ItemName: "Paper", Quantity: 4, PricePerUnit: decimalPtr("2500")}}

	out, err := f.create.Execute(context.Background(), transaction.CreateTransactionInput{PostingInput: input})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionTypeExpense, out.Transaction.Type)
	assert.Equal(t, f.sales.UserID, out.Transaction.UserID)
	assert.Equal(t, "10000.00", out.Transaction.TotalAmount.StringFixed(2))
}

func TestUpdateTransaction_ReplacesLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, transaction.CreateTransactionInput{PostingInput: f.saleInput(f.sales)})
	require.NoError(t, err)

	input := f.saleInput(f.sales)
	input.Description = "corrected"
	input.Lines = []transaction.LineInput{{ProductID: &f.productB.ID, Quantity: 2}}

	out, err := f.update.Execute(ctx, transaction.UpdateTransactionInput{
		TransactionID: created.Transaction.ID,
		PostingInput:  input,
	})
	require.NoError(t, err)
	assert.Equal(t, "50000.00", out.Transaction.TotalAmount.StringFixed(2))

	stored, err := f.get.Execute(ctx, transaction.GetTransactionInput{TransactionID: created.Transaction.ID, Actor: f.sales})
	require.NoError(t, err)
	assert.Equal(t, "corrected", stored.Description)
	assert.Equal(t, "50000.00", stored.TotalAmount.StringFixed(2))
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, f.productB.ID, *stored.Lines[0].ProductID)
	assert.EqualValues(t, 1, f.count(t, &model.TransactionLineModel{}))
	assert.Equal(t, "2", f.generation(t))
}

func TestUpdateTransaction_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, transaction.CreateTransactionInput{PostingInput: f.saleInput(f.sales)})
	require.NoError(t, err)
	id := created.Transaction.ID

	t.Run("other salesperson", func(t *testing.T) {
		_, err := f.update.Execute(ctx, transaction.UpdateTransactionInput{TransactionID: id, PostingInput: f.saleInput(f.other)})
		assert.Equal(t, domainerror.ErrCodeNotAuthorizedTransaction, codeOf(t, err))
	})

	t.Run("unknown transaction", func(t *testing.T) {
		_, err := f.update.Execute(ctx, transaction.UpdateTransactionInput{TransactionID: uuid.New(), PostingInput: f.saleInput(f.sales)})
		assert.Equal(t, domainerror.ErrCodeTransactionNotFound, codeOf(t, err))
	})

	t.Run("missing product keeps previous lines", func(t *testing.T) {
		missing := uuid.New()
		input := f.saleInput(f.sales)
		input.Lines = []transaction.LineInput{{ProductID: &missing, Quantity: 1}}

		_, err := f.update.Execute(ctx, transaction.UpdateTransactionInput{TransactionID: id, PostingInput: input})
		assert.Equal(t, domainerror.ErrCodeProductsNotFound, codeOf(t, err))

		stored, err := f.get.Execute(ctx, transaction.GetTransactionInput{TransactionID: id, Actor: f.sales})
		require.NoError(t, err)
		assert.Len(t, stored.Lines, 2)
		assert.Equal(t, "45000.00", stored.TotalAmount.StringFixed(2))
	})

	t.Run("admin keeps the original owner", func(t *testing.T) {
		out, err := f.update.Execute(ctx, transaction.UpdateTransactionInput{TransactionID: id, PostingInput: f.saleInput(f.admin)})
		require.NoError(t, err)
		assert.Equal(t, f.sales.UserID, out.Transaction.UserID)
	})
}

func TestDeleteTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, transaction.CreateTransactionInput{PostingInput: f.saleInput(f.sales)})
	require.NoError(t, err)
	id := created.Transaction.ID

	_, err = f.delete.Execute(ctx, transaction.DeleteTransactionInput{TransactionID: id, Actor: f.other})
	assert.Equal(t, domainerror.ErrCodeNotAuthorizedTransaction, codeOf(t, err))

	out, err := f.delete.Execute(ctx, transaction.DeleteTransactionInput{TransactionID: id, Actor: f.sales})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Zero(t, f.count(t, &model.TransactionModel{}))
	assert.Zero(t, f.count(t, &model.TransactionLineModel{}))

	_, err = f.delete.Execute(ctx, transaction.DeleteTransactionInput{TransactionID: id, Actor: f.sales})
	assert.Equal(t, domainerror.ErrCodeTransactionNotFound, codeOf(t, err))
}

func TestSetLineStatus_RollsUpToParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.create.Execute(ctx, transaction.CreateTransactionInput{PostingInput: f.saleInput(f.sales)})
	require.NoError(t, err)
	first, second := created.Transaction.Lines[0], created.Transaction.Lines[1]

	out, err := f.status.Execute(ctx, transaction.SetLineStatusInput{LineID: first.ID, Status: "done", Actor: f.sales})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusPending, out.ParentStatus)

	out, err = f.status.Execute(ctx, transaction.SetLineStatusInput{LineID: second.ID, Status: "selesai", Actor: f.sales})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusDone, out.Line.Status)
	assert.Equal(t, entity.TransactionStatusDone, out.ParentStatus)

	out, err = f.status.Execute(ctx, transaction.SetLineStatusInput{LineID: second.ID, Status: "pending", Actor: f.admin})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusDone, out.ParentStatus)

	_, err = f.status.Execute(ctx, transaction.SetLineStatusInput{LineID: first.ID, Status: "shipped", Actor: f.sales})
	assert.Equal(t, domainerror.ErrCodeInvalidTransactionStatus, codeOf(t, err))

	_, err = f.status.Execute(ctx, transaction.SetLineStatusInput{LineID: uuid.New(), Status: "done", Actor: f.sales})
	assert.Equal(t, domainerror.ErrCodeTransactionLineNotFound, codeOf(t, err))

	_, err = f.status.Execute(ctx, transaction.SetLineStatusInput{LineID: first.ID, Status: "done", Actor: f.other})
	assert.Equal(t, domainerror.ErrCodeNotAuthorizedTransaction, codeOf(t, err))
}

func TestListTransactions_ScopesSalesUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, transaction.CreateTransactionInput{PostingInput: f.saleInput(f.sales)})
	require.NoError(t, err)
	other := f.saleInput(f.other)
	other.CustomerID = nil
	_, err = f.create.Execute(ctx, transaction.CreateTransactionInput{PostingInput: other})
	require.NoError(t, err)

	own, err := f.list.Execute(ctx, transaction.ListTransactionsInput{Actor: f.sales, UserID: &f.other.UserID})
	require.NoError(t, err)
	require.EqualValues(t, 1, own.Total)
	assert.Equal(t, f.sales.UserID, own.Transactions[0].UserID)

	all, err := f.list.Execute(ctx, transaction.ListTransactionsInput{Actor: f.admin})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)
	assert.Equal(t, transaction.DefaultPageLimit, all.Limit)
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
