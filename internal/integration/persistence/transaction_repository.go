// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create inserts the transaction and its lines in a single database transaction.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
			return err
		}
		return insertLines(tx, transaction.Lines)
	})
}

// FindByID retrieves a transaction with its lines by ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Where("id = ?", id).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.StartDate != nil {
		query = query.Where("transaction_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("transaction_date <= ?", *filter.EndDate)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(description) LIKE ?", searchPattern)
	}

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var transactionModels []model.TransactionModel
	result := query.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Order("transaction_date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}

	return &entity.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

// ReplaceWithLines updates the header, drops every existing line and inserts
// the new ones, all inside one database transaction.
func (r *transactionRepository) ReplaceWithLines(ctx context.Context, transaction *entity.Transaction, expectedUpdatedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		update := tx.Model(&model.TransactionModel{}).Where("id = ?", transaction.ID)
		if !expectedUpdatedAt.IsZero() {
			update = update.Where("updated_at = ?", expectedUpdatedAt)
		}

		var proofImage *string
		if transaction.ProofImage != "" {
			proofImage = &transaction.ProofImage
		}

		result := update.Updates(map[string]any{
			"user_id":          transaction.UserID,
			"customer_id":      transaction.CustomerID,
			"description":      transaction.Description,
			"total_amount":     transaction.TotalAmount,
			"transaction_date": transaction.TransactionDate,
			"type":             string(transaction.Type),
			"proof_image":      proofImage,
			"updated_at":       transaction.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.TransactionModel{}).Where("id = ?", transaction.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domainerror.ErrTransactionNotFound
			}
			return domainerror.ErrTransactionConflict
		}

		if err := tx.Where("transaction_id = ?", transaction.ID).Delete(&model.TransactionLineModel{}).Error; err != nil {
			return err
		}
		return insertLines(tx, transaction.Lines)
	})
}

// Delete removes the lines of a transaction and then the transaction itself.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", id).Delete(&model.TransactionLineModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.TransactionModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTransactionNotFound
		}
		return nil
	})
}

// FindLineByID retrieves a single transaction line.
func (r *transactionRepository) FindLineByID(ctx context.Context, lineID uuid.UUID) (*entity.TransactionLine, error) {
	var lineModel model.TransactionLineModel
	result := r.db.WithContext(ctx).Where("id = ?", lineID).First(&lineModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionLineNotFound
		}
		return nil, result.Error
	}
	return lineModel.ToEntity(), nil
}

// UpdateLineStatus persists the line status, re-reads every sibling line and
// marks the parent done once all of them are done. The parent is never moved
// away from done here.
func (r *transactionRepository) UpdateLineStatus(ctx context.Context, lineID uuid.UUID, status entity.TransactionStatus) (*adapter.LineStatusResult, error) {
	var out *adapter.LineStatusResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lineModel model.TransactionLineModel
		if err := tx.Where("id = ?", lineID).First(&lineModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrTransactionLineNotFound
			}
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&model.TransactionLineModel{}).
			Where("id = ?", lineID).
			Updates(map[string]any{"status": string(status), "updated_at": now}).Error; err != nil {
			return err
		}

		var parent model.TransactionModel
		if err := tx.Where("id = ?", lineModel.TransactionID).First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrTransactionNotFound
			}
			return err
		}

		var siblingModels []model.TransactionLineModel
		if err := tx.Where("transaction_id = ?", parent.ID).Find(&siblingModels).Error; err != nil {
			return err
		}
		siblings := make([]*entity.TransactionLine, len(siblingModels))
		for i := range siblingModels {
			siblings[i] = siblingModels[i].ToEntity()
		}

		current := entity.TransactionStatus(parent.Status)
		rolled := entity.RollUpStatus(current, siblings)
		if rolled != current {
			if err := tx.Model(&model.TransactionModel{}).
				Where("id = ?", parent.ID).
				Update("status", string(rolled)).Error; err != nil {
				return err
			}
		}

		lineModel.Status = string(status)
		lineModel.UpdatedAt = now
		out = &adapter.LineStatusResult{
			Line:         lineModel.ToEntity(),
			ParentStatus: rolled,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func insertLines(tx *gorm.DB, lines []*entity.TransactionLine) error {
	if len(lines) == 0 {
		return nil
	}
	lineModels := make([]*model.TransactionLineModel, len(lines))
	for i, line := range lines {
		lineModels[i] = model.TransactionLineFromEntity(line)
	}
	return tx.Create(&lineModels).Error
}
