package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidDateRange is returned when a report range is missing, unparseable or inverted.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidReportFormat is returned when the requested output format is not supported.
	ErrInvalidReportFormat = errors.New("invalid report format")

	// ErrInvalidReportDimension is returned when the requested grouping is unknown.
	ErrInvalidReportDimension = errors.New("invalid report dimension")

	// ErrRenderFailed is returned when a report could not be serialised.
	ErrRenderFailed = errors.New("failed to render report")
)

// ReportErrorCode defines error codes for report errors.
type ReportErrorCode string

const (
	ErrCodeInvalidRange     ReportErrorCode = "RPT-010001"
	ErrCodeInvalidFormat    ReportErrorCode = "RPT-010002"
	ErrCodeInvalidDimension ReportErrorCode = "RPT-010003"
	ErrCodeRenderFailure    ReportErrorCode = "RPT-020001"
	ErrCodeReportStore      ReportErrorCode = "RPT-090001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{Code: code, Message: message, Err: err}
}
