package error

import "errors"

// Catalog (product and customer) domain errors.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInvalidProductPrice = errors.New("product price must be greater than zero")
	ErrProductInUse        = errors.New("product is referenced by transactions")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrCustomerEmailExists = errors.New("customer email already exists")
	ErrSalespersonNotFound = errors.New("assigned salesperson not found")
	ErrCustomerInUse       = errors.New("customer is referenced by transactions")
	ErrCustomerForbidden   = errors.New("customer is assigned to another salesperson")
)

// CatalogErrorCode defines error codes for product and customer errors.
type CatalogErrorCode string

const (
	ErrCodeProductNotFound       CatalogErrorCode = "CAT-010001"
	ErrCodeInvalidProductPrice   CatalogErrorCode = "CAT-010002"
	ErrCodeProductInUse          CatalogErrorCode = "CAT-010003"
	ErrCodeInvalidProductFields  CatalogErrorCode = "CAT-010004"
	ErrCodeCustomerNotFound      CatalogErrorCode = "CAT-020001"
	ErrCodeCustomerEmailExists   CatalogErrorCode = "CAT-020002"
	ErrCodeSalespersonNotFound   CatalogErrorCode = "CAT-020003"
	ErrCodeInvalidCustomerFields CatalogErrorCode = "CAT-020004"
	ErrCodeCustomerInUse         CatalogErrorCode = "CAT-020005"
	ErrCodeCustomerForbidden     CatalogErrorCode = "CAT-020006"
)

// CatalogError represents a product or customer error with code and message.
type CatalogError struct {
	Code    CatalogErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError creates a new CatalogError.
func NewCatalogError(code CatalogErrorCode, message string, err error) *CatalogError {
	return &CatalogError{Code: code, Message: message, Err: err}
}
