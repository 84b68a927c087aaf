package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/salesledger/backend/internal/domain/entity"
)

// TransactionLineRequest is one submitted line. Exactly one of ProductID and
// ItemName must be set; product lines are priced from the catalog.
type TransactionLineRequest struct {
	ProductID    *string          `json:"product_id,omitempty" binding:"omitempty,uuid"`
	ItemName     string           `json:"item_name,omitempty" binding:"omitempty,max=255"`
	Quantity     int              `json:"quantity"`
	PricePerUnit *decimal.Decimal `json:"price_per_unit,omitempty"`
	TotalPrice   *decimal.Decimal `json:"total_price,omitempty"`
}

// TransactionRequest represents the request body for creating or replacing a transaction.
type TransactionRequest struct {
	UserID      *string                  `json:"user_id,omitempty" binding:"omitempty,uuid"`
	CustomerID  *string                  `json:"customer_id,omitempty" binding:"omitempty,uuid"`
	Description string                   `json:"description"`
	Type        string                   `json:"type" binding:"required"`
	Date        string                   `json:"transaction_date,omitempty"`
	ProofImage  string                   `json:"proof_image,omitempty" binding:"omitempty,max=500"`
	Lines       []TransactionLineRequest `json:"lines" binding:"dive"`
}

// LineStatusRequest represents the request body for a line status change.
type LineStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// TransactionLineResponse represents a transaction line in API responses.
type TransactionLineResponse struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	ProductID     *string   `json:"product_id,omitempty"`
	ItemName      string    `json:"item_name,omitempty"`
	Quantity      int       `json:"quantity"`
	PricePerUnit  string    `json:"price_per_unit"`
	TotalPrice    string    `json:"total_price"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID              string                    `json:"id"`
	UserID          string                    `json:"user_id"`
	CustomerID      *string                   `json:"customer_id,omitempty"`
	Description     string                    `json:"description"`
	TotalAmount     string                    `json:"total_amount"`
	TransactionDate time.Time                 `json:"transaction_date"`
	Type            string                    `json:"type"`
	Status          string                    `json:"status"`
	ProofImage      string                    `json:"proof_image,omitempty"`
	Lines           []TransactionLineResponse `json:"lines"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// PaginationResponse represents pagination information in API responses.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents a page of transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

// LineStatusResponse reports the updated line and the parent's resulting status.
type LineStatusResponse struct {
	Line              TransactionLineResponse `json:"line"`
	TransactionStatus string                  `json:"transaction_status"`
}

// ToTransactionLineResponse converts a domain line to its DTO.
func ToTransactionLineResponse(line *entity.TransactionLine) TransactionLineResponse {
	resp := TransactionLineResponse{
		ID:            line.ID.String(),
		TransactionID: line.TransactionID.String(),
		ItemName:      line.ItemName,
		Quantity:      line.Quantity,
		PricePerUnit:  line.PricePerUnit.StringFixed(2),
		TotalPrice:    line.TotalPrice.StringFixed(2),
		Status:        string(line.Status),
		CreatedAt:     line.CreatedAt,
		UpdatedAt:     line.UpdatedAt,
	}
	if line.ProductID != nil {
		id := line.ProductID.String()
		resp.ProductID = &id
	}
	return resp
}

// ToTransactionResponse converts a domain Transaction entity to its DTO.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:              tx.ID.String(),
		UserID:          tx.UserID.String(),
		Description:     tx.Description,
		TotalAmount:     tx.TotalAmount.StringFixed(2),
		TransactionDate: tx.TransactionDate,
		Type:            string(tx.Type),
		Status:          string(tx.Status),
		ProofImage:      tx.ProofImage,
		Lines:           make([]TransactionLineResponse, 0, len(tx.Lines)),
		CreatedAt:       tx.CreatedAt,
		UpdatedAt:       tx.UpdatedAt,
	}
	if tx.CustomerID != nil {
		id := tx.CustomerID.String()
		resp.CustomerID = &id
	}
	for _, line := range tx.Lines {
		resp.Lines = append(resp.Lines, ToTransactionLineResponse(line))
	}
	return resp
}

// ToTransactionListResponse converts a page of transactions to its DTO.
func ToTransactionListResponse(result *entity.TransactionListResult) TransactionListResponse {
	resp := TransactionListResponse{
		Transactions: make([]TransactionResponse, 0, len(result.Transactions)),
		Pagination: PaginationResponse{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}
	for _, tx := range result.Transactions {
		resp.Transactions = append(resp.Transactions, ToTransactionResponse(tx))
	}
	return resp
}
