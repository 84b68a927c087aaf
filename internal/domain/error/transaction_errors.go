// Package error defines domain-specific errors for the sales ledger.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionLineNotFound is returned when a transaction line is not found.
	ErrTransactionLineNotFound = errors.New("transaction line not found")

	// ErrNotAuthorizedToModifyTransaction is returned when the caller does not own the transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionStatus is returned when a status value is not recognised.
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrEmptyTransactionLines is returned when a transaction is submitted without lines.
	ErrEmptyTransactionLines = errors.New("transaction must have at least one line")

	// ErrInvalidQuantity is returned when a line quantity is not a positive integer.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrInvalidLineItem is returned when a line carries both or neither of product and item name.
	ErrInvalidLineItem = errors.New("line must reference exactly one of product or item name")

	// ErrIncomeLineRequiresProduct is returned when an income line has no product reference.
	ErrIncomeLineRequiresProduct = errors.New("income lines must reference a product")

	// ErrInvalidPricePerUnit is returned when a free-form line carries a missing, negative or sub-cent price.
	ErrInvalidPricePerUnit = errors.New("price per unit must be zero or greater")

	// ErrLineTotalMismatch is returned when a supplied line total disagrees with quantity times price.
	ErrLineTotalMismatch = errors.New("line total does not match quantity times price")

	// ErrProductsNotFound is returned when one or more referenced products do not exist.
	ErrProductsNotFound = errors.New("one or more products not found")

	// ErrCustomerNotFoundForTransaction is returned when the referenced customer does not exist.
	ErrCustomerNotFoundForTransaction = errors.New("customer not found")

	// ErrOwnerNotFound is returned when the owning user of a transaction does not exist.
	ErrOwnerNotFound = errors.New("owning user not found")

	// ErrTransactionConflict is returned when the transaction changed between read and write.
	ErrTransactionConflict = errors.New("transaction was modified concurrently")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionStatus TransactionErrorCode = "TXN-010003"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010004"
	ErrCodeEmptyTransactionLines    TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidLineItem          TransactionErrorCode = "TXN-010006"
	ErrCodeLineTotalMismatch        TransactionErrorCode = "TXN-010007"
	ErrCodeInvalidPricePerUnit      TransactionErrorCode = "TXN-010008"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010009"
	ErrCodeInvalidQuantity          TransactionErrorCode = "TXN-010010"

	// Reference errors (02XXXX)
	ErrCodeProductsNotFound            TransactionErrorCode = "TXN-020001"
	ErrCodeTransactionCustomerNotFound TransactionErrorCode = "TXN-020002"
	ErrCodeOwnerNotFound               TransactionErrorCode = "TXN-020003"

	// State errors (03XXXX)
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-030001"
	ErrCodeTransactionLineNotFound  TransactionErrorCode = "TXN-030002"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-030003"
	ErrCodeTransactionConflict      TransactionErrorCode = "TXN-030004"

	// Store errors (09XXXX)
	ErrCodeTransactionStoreFailure TransactionErrorCode = "TXN-090001"
)

// TransactionError represents a transaction error with code and message.
// Details carries per-field messages or the list of missing references.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Details map[string]string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// WithDetails attaches field-level details to the error.
func (e *TransactionError) WithDetails(details map[string]string) *TransactionError {
	e.Details = details
	return e
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
