package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/salesledger/backend/internal/domain/error"
	"github.com/salesledger/backend/internal/integration/entrypoint/dto"
	"github.com/salesledger/backend/internal/integration/entrypoint/middleware"
)

// respondError writes the HTTP response for a use-case error. Unknown errors
// are logged and reported as a generic 500 so that store details never leak.
func respondError(ctx *gin.Context, err error) {
	var (
		txnErr     *domainerror.TransactionError
		reportErr  *domainerror.ReportError
		catalogErr *domainerror.CatalogError
		authErr    *domainerror.AuthError
	)

	switch {
	case errors.As(err, &txnErr):
		status := statusForTransactionError(txnErr.Code)
		if status == http.StatusInternalServerError {
			break
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error:  txnErr.Message,
			Code:   string(txnErr.Code),
			Fields: txnErr.Details,
		})
		return
	case errors.As(err, &reportErr):
		status := statusForReportError(reportErr.Code)
		if status == http.StatusInternalServerError {
			break
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	case errors.As(err, &catalogErr):
		ctx.JSON(statusForCatalogError(catalogErr.Code), dto.ErrorResponse{
			Error: catalogErr.Message,
			Code:  string(catalogErr.Code),
		})
		return
	case errors.As(err, &authErr):
		status := statusForAuthError(authErr.Code)
		if status == http.StatusInternalServerError {
			break
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	middleware.GetLoggerFromContext(ctx).Error("Request failed", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// respondBindError reports a malformed body or query with one message per field.
func respondBindError(ctx *gin.Context, err error, code string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:  "Invalid request",
		Code:   code,
		Fields: dto.FieldErrors(err),
	})
}

func statusForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionStatus,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeEmptyTransactionLines,
		domainerror.ErrCodeInvalidLineItem,
		domainerror.ErrCodeLineTotalMismatch,
		domainerror.ErrCodeInvalidPricePerUnit,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeInvalidQuantity:
		return http.StatusBadRequest
	case domainerror.ErrCodeProductsNotFound,
		domainerror.ErrCodeTransactionCustomerNotFound,
		domainerror.ErrCodeOwnerNotFound:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTransactionLineNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction:
		return http.StatusForbidden
	case domainerror.ErrCodeTransactionConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func statusForReportError(code domainerror.ReportErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidRange,
		domainerror.ErrCodeInvalidFormat,
		domainerror.ErrCodeInvalidDimension:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForCatalogError(code domainerror.CatalogErrorCode) int {
	switch code {
	case domainerror.ErrCodeProductNotFound,
		domainerror.ErrCodeCustomerNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidProductPrice,
		domainerror.ErrCodeInvalidProductFields,
		domainerror.ErrCodeInvalidCustomerFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeProductInUse,
		domainerror.ErrCodeCustomerInUse,
		domainerror.ErrCodeCustomerEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeCustomerForbidden:
		return http.StatusForbidden
	case domainerror.ErrCodeSalespersonNotFound:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func statusForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidRole,
		domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeUserNotFound,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeAdminRequired:
		return http.StatusForbidden
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
