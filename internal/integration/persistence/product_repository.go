package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/integration/persistence/model"
)

// productRepository implements the adapter.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance.
func NewProductRepository(db *gorm.DB) adapter.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// Create creates a new product in the database.
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(model.ProductFromEntity(product)).Error
}

// FindByID retrieves a product by its ID.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productModel model.ProductModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&productModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProductNotFound
		}
		return nil, result.Error
	}
	return productModel.ToEntity(), nil
}

// FindAll lists products ordered by name, optionally filtered by a name fragment.
func (r *productRepository) FindAll(ctx context.Context, search string) ([]*entity.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.ProductModel{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var productModels []model.ProductModel
	if err := query.Order("name ASC").Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]*entity.Product, len(productModels))
	for i := range productModels {
		products[i] = productModels[i].ToEntity()
	}
	return products, nil
}

// Update saves every field of an existing product.
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(model.ProductFromEntity(product)).Error
}

// Delete removes a product from the database.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrProductNotFound
	}
	return nil
}

// FindPricesByIDs loads the current price of every existing product in ids with one query.
func (r *productRepository) FindPricesByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.ProductPrice, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var productModels []model.ProductModel
	err := r.db.WithContext(ctx).
		Select("id", "price").
		Where("id IN ?", ids).
		Find(&productModels).Error
	if err != nil {
		return nil, err
	}

	prices := make([]entity.ProductPrice, len(productModels))
	for i, pm := range productModels {
		prices[i] = entity.ProductPrice{ProductID: pm.ID, Price: pm.Price}
	}
	return prices, nil
}

// IsReferenced reports whether any transaction line points at the product.
func (r *productRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.TransactionLineModel{}).
		Where("product_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
