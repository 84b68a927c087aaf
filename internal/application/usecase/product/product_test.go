package product_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesledger/backend/config"
	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/application/usecase/product"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/infra/db"
	"github.com/salesledger/backend/internal/integration/cache"
	"github.com/salesledger/backend/internal/integration/persistence"
	"github.com/salesledger/backend/internal/integration/persistence/model"
)

func newProductRepo(t *testing.T) adapter.ProductRepository {
	t.Helper()
	database, err := db.NewConnection(&config.DatabaseConfig{Driver: db.DriverSQLite, URL: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.AutoMigrate(model.AllModels()...))
	return persistence.NewProductRepository(database.DB())
}

func catalogCode(t *testing.T, err error) domainerror.CatalogErrorCode {
	t.Helper()
	var catalogErr *domainerror.CatalogError
	require.True(t, errors.As(err, &catalogErr), "expected CatalogError, got %v", err)
	return catalogErr.Code
}

func TestCreateProduct_Price(t *testing.T) {
	tests := []struct {
		name  string
		price string
		valid bool
	}{
		{name: "whole amount", price: "10000", valid: true},
		{name: "two places", price: "1250.50", valid: true},
		{name: "trailing zero third place", price: "12.500", valid: true},
		{name: "zero", price: "0"},
		{name: "negative", price: "-5"},
		{name: "sub-cent", price: "0.005"},
		{name: "sub-cent on a large amount", price: "19999.999"},
	}

	uc := product.NewCreateProductUseCase(newProductRepo(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := uc.Execute(context.Background(), product.CreateProductInput{
				Name:  "Product " + tt.name,
				Price: decimal.RequireFromString(tt.price),
			})
			if tt.valid {
				require.NoError(t, err)
				assert.True(t, created.Price.Equal(decimal.RequireFromString(tt.price)))
				return
			}
			require.Error(t, err)
			assert.Equal(t, domainerror.ErrCodeInvalidProductPrice, catalogCode(t, err))
			assert.True(t, errors.Is(err, domainerror.ErrInvalidProductPrice))
		})
	}
}

func TestUpdateProduct_RejectsSubCentPrice(t *testing.T) {
	ctx := context.Background()
	repo := newProductRepo(t)
	existing := entity.NewProduct("Product A", "", decimal.NewFromInt(10000), "")
	require.NoError(t, repo.Create(ctx, existing))

	price := decimal.RequireFromString("10000.001")
	_, err := product.NewUpdateProductUseCase(repo, nil).Execute(ctx, product.UpdateProductInput{
		ProductID: existing.ID,
		Price:     &price,
	})
	require.Error(t, err)
	assert.Equal(t, domainerror.ErrCodeInvalidProductPrice, catalogCode(t, err))

	stored, err := repo.FindByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "10000.00", stored.Price.StringFixed(2))
}

func TestUpdateProduct_InvalidatesReportCache(t *testing.T) {
	ctx := context.Background()
	repo := newProductRepo(t)
	existing := entity.NewProduct("Product A", "", decimal.NewFromInt(10000), "")
	require.NoError(t, repo.Create(ctx, existing))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	reportCache := cache.NewReportCache(client, time.Minute)

	uc := product.NewUpdateProductUseCase(repo, reportCache)

	name := "Product A Deluxe"
	updated, err := uc.Execute(ctx, product.UpdateProductInput{ProductID: existing.ID, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)

	generation, err := mr.Get("report:generation")
	require.NoError(t, err)
	assert.Equal(t, "1", generation)

	blank := "  "
	_, err = uc.Execute(ctx, product.UpdateProductInput{ProductID: existing.ID, Name: &blank})
	require.Error(t, err)

	generation, err = mr.Get("report:generation")
	require.NoError(t, err)
	assert.Equal(t, "1", generation, "a rejected update leaves the cache alone")
}
