package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/salesledger/backend/config"
	"github.com/salesledger/backend/internal/domain/entity"
	"github.com/salesledger/backend/internal/infra/db"
	"github.com/salesledger/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.NewConnection(&config.DatabaseConfig{Driver: db.DriverSQLite, URL: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, database.AutoMigrate(model.AllModels()...))
	return database.DB()
}

func seedUser(t *testing.T, gdb *gorm.DB, name string, role entity.UserRole) *entity.User {
	t.Helper()
	user := entity.NewUser(uuid.NewString()+"@example.com", name, "hash", role)
	require.NoError(t, NewUserRepository(gdb).Create(context.Background(), user))
	return user
}

func seedProduct(t *testing.T, gdb *gorm.DB, name, price string) *entity.Product {
	t.Helper()
	product := entity.NewProduct(name, "", decimal.RequireFromString(price), "general")
	require.NoError(t, NewProductRepository(gdb).Create(context.Background(), product))
	return product
}

func seedCustomer(t *testing.T, gdb *gorm.DB, name string, salesID *uuid.UUID) *entity.Customer {
	t.Helper()
	customer := entity.NewCustomer(name, uuid.NewString()+"@example.com", "", "", salesID)
	require.NoError(t, NewCustomerRepository(gdb).Create(context.Background(), customer))
	return customer
}

// productLine builds a priced line the way the posting use cases do.
func productLine(product *entity.Product, quantity int) *entity.TransactionLine {
	id := product.ID
	return &entity.TransactionLine{
		ID:           uuid.New(),
		ProductID:    &id,
		Quantity:     quantity,
		PricePerUnit: product.Price,
		TotalPrice:   product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Status:       entity.TransactionStatusPending,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

func itemLine(name string, quantity int, price string) *entity.TransactionLine {
	unit := decimal.RequireFromString(price)
	return &entity.TransactionLine{
		ID:           uuid.New(),
		ItemName:     name,
		Quantity:     quantity,
		PricePerUnit: unit,
		TotalPrice:   unit.Mul(decimal.NewFromInt(int64(quantity))),
		Status:       entity.TransactionStatusPending,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

func seedTransaction(
	t *testing.T,
	gdb *gorm.DB,
	owner *entity.User,
	customerID *uuid.UUID,
	transactionType entity.TransactionType,
	date time.Time,
	lines ...*entity.TransactionLine,
) *entity.Transaction {
	t.Helper()
	transaction := entity.NewTransaction(owner.ID, customerID, "seeded", transactionType, date, "")
	transaction.AttachLines(lines)
	require.NoError(t, NewTransactionRepository(gdb).Create(context.Background(), transaction))
	return transaction
}

func day(value string) time.Time {
	d, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		panic(err)
	}
	return d.UTC()
}
