package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/salesledger/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index"`
	Description     string          `gorm:"type:text"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TransactionDate time.Time       `gorm:"not null;index"`
	Type            string          `gorm:"type:varchar(10);not null;index"`
	Status          string          `gorm:"type:varchar(20);not null;default:'pending'"`
	ProofImage      *string         `gorm:"type:varchar(255)"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Lines    []TransactionLineModel `gorm:"foreignKey:TransactionID;references:ID;constraint:OnDelete:CASCADE"`
	User     *UserModel             `gorm:"foreignKey:UserID;references:ID"`
	Customer *CustomerModel         `gorm:"foreignKey:CustomerID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel and any loaded lines to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var proofImage string
	if m.ProofImage != nil {
		proofImage = *m.ProofImage
	}

	lines := make([]*entity.TransactionLine, 0, len(m.Lines))
	for i := range m.Lines {
		lines = append(lines, m.Lines[i].ToEntity())
	}

	return &entity.Transaction{
		ID:              m.ID,
		UserID:          m.UserID,
		CustomerID:      m.CustomerID,
		Description:     m.Description,
		TotalAmount:     m.TotalAmount,
		TransactionDate: m.TransactionDate,
		Type:            entity.TransactionType(m.Type),
		Status:          entity.TransactionStatus(m.Status),
		ProofImage:      proofImage,
		Lines:           lines,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
// Lines are converted separately so writers control their insertion.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var proofImage *string
	if transaction.ProofImage != "" {
		proofImage = &transaction.ProofImage
	}

	return &TransactionModel{
		ID:              transaction.ID,
		UserID:          transaction.UserID,
		CustomerID:      transaction.CustomerID,
		Description:     transaction.Description,
		TotalAmount:     transaction.TotalAmount,
		TransactionDate: transaction.TransactionDate,
		Type:            string(transaction.Type),
		Status:          string(transaction.Status),
		ProofImage:      proofImage,
		CreatedAt:       transaction.CreatedAt,
		UpdatedAt:       transaction.UpdatedAt,
	}
}

// TransactionLineModel represents the transaction_lines table in the database.
type TransactionLineModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     *uuid.UUID      `gorm:"type:uuid;index"`
	ItemName      *string         `gorm:"type:varchar(255)"`
	Quantity      int             `gorm:"not null"`
	PricePerUnit  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	Product *ProductModel `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName returns the table name for the TransactionLineModel.
func (TransactionLineModel) TableName() string {
	return "transaction_lines"
}

// ToEntity converts a TransactionLineModel to a domain TransactionLine entity.
func (m *TransactionLineModel) ToEntity() *entity.TransactionLine {
	var itemName string
	if m.ItemName != nil {
		itemName = *m.ItemName
	}

	return &entity.TransactionLine{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ProductID:     m.ProductID,
		ItemName:      itemName,
		Quantity:      m.Quantity,
		PricePerUnit:  m.PricePerUnit,
		TotalPrice:    m.TotalPrice,
		Status:        entity.TransactionStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// TransactionLineFromEntity creates a TransactionLineModel from a domain TransactionLine entity.
func TransactionLineFromEntity(line *entity.TransactionLine) *TransactionLineModel {
	var itemName *string
	if line.ItemName != "" {
		itemName = &line.ItemName
	}

	return &TransactionLineModel{
		ID:            line.ID,
		TransactionID: line.TransactionID,
		ProductID:     line.ProductID,
		ItemName:      itemName,
		Quantity:      line.Quantity,
		PricePerUnit:  line.PricePerUnit,
		TotalPrice:    line.TotalPrice,
		Status:        string(line.Status),
		CreatedAt:     line.CreatedAt,
		UpdatedAt:     line.UpdatedAt,
	}
}

// AllModels lists every model in dependency order for auto-migration.
func AllModels() []any {
	return []any{
		&UserModel{},
		&RefreshTokenModel{},
		&ProductModel{},
		&CustomerModel{},
		&TransactionModel{},
		&TransactionLineModel{},
	}
}
