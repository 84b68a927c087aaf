package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a transaction (income or expense).
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// ParseTransactionType normalizes a transaction type, accepting the legacy
// Indonesian labels still sent by older clients.
func ParseTransactionType(value string) (TransactionType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "income", "pemasukan":
		return TransactionTypeIncome, true
	case "expense", "pengeluaran":
		return TransactionTypeExpense, true
	default:
		return "", false
	}
}

// TransactionStatus represents the processing state of a transaction or one of its lines.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusInProgress TransactionStatus = "in_progress"
	TransactionStatusDone       TransactionStatus = "done"
)

// ParseTransactionStatus normalizes a status value. Legacy labels
// (menunggu, diproses, selesai) map onto the canonical set.
func ParseTransactionStatus(value string) (TransactionStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pending", "menunggu":
		return TransactionStatusPending, true
	case "in_progress", "diproses":
		return TransactionStatusInProgress, true
	case "done", "selesai":
		return TransactionStatusDone, true
	default:
		return "", false
	}
}

// Transaction is the parent record of a sale or expense. Its TotalAmount always
// equals the sum of its lines' TotalPrice.
type Transaction struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	CustomerID      *uuid.UUID
	Description     string
	TotalAmount     decimal.Decimal
	TransactionDate time.Time
	Type            TransactionType
	Status          TransactionStatus
	ProofImage      string
	Lines           []*TransactionLine
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TransactionLine is a single item of a transaction. PricePerUnit is a snapshot
// taken at write time and is never re-read from the product afterwards.
type TransactionLine struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	ProductID     *uuid.UUID
	ItemName      string
	Quantity      int
	PricePerUnit  decimal.Decimal
	TotalPrice    decimal.Decimal
	Status        TransactionStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewTransaction creates a new pending Transaction owned by userID.
func NewTransaction(
	userID uuid.UUID,
	customerID *uuid.UUID,
	description string,
	transactionType TransactionType,
	date time.Time,
	proofImage string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		CustomerID:      customerID,
		Description:     description,
		TotalAmount:     decimal.Zero,
		TransactionDate: date,
		Type:            transactionType,
		Status:          TransactionStatusPending,
		ProofImage:      proofImage,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// AttachLines replaces the lines of the transaction, binding each line to it
// and recomputing the total.
func (t *Transaction) AttachLines(lines []*TransactionLine) {
	for _, line := range lines {
		line.TransactionID = t.ID
	}
	t.Lines = lines
	t.TotalAmount = SumLineTotals(lines)
}

// SumLineTotals returns the sum of TotalPrice over lines.
func SumLineTotals(lines []*TransactionLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.TotalPrice)
	}
	return total
}

// RollUpStatus returns the parent status after a line status change. The parent
// becomes done only when every line is done; otherwise it keeps its current value.
func RollUpStatus(current TransactionStatus, lines []*TransactionLine) TransactionStatus {
	if len(lines) == 0 {
		return current
	}
	for _, line := range lines {
		if line.Status != TransactionStatusDone {
			return current
		}
	}
	return TransactionStatusDone
}

// TransactionListResult represents a page of transactions.
type TransactionListResult struct {
	Transactions []*Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}
