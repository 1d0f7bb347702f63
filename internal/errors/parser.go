package errors

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a stable code plus a safe message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts low-level database and network errors into stable
// error codes and messages safe to return to the admin frontend. Sensitive
// driver detail stays in the logs, not the response.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM sentinel errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL constraint violations

	// 2-1. Unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// 2-2. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "The record is referenced by other data and cannot be changed",
		}
	}

	// 2-3. Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// 2-4. Check constraint violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidRange,
			Message: "A field value is outside the allowed range",
		}
	}

	// 3. Network / connectivity
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Failed to reach an external service. Please try again later",
		}
	}

	// 4. Default internal error
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// ParseAndRespond parses an error and writes the matching response
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, statusCode, info.Code, info.Message)
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "sku") || strings.Contains(errLower, "idx_variants_sku") {
		return ErrorInfo{
			Code:    VariantSKUExists,
			Message: "This SKU is already in use within the product",
		}
	}

	if strings.Contains(errLower, "code") || strings.Contains(errLower, "idx_vouchers_code") {
		return ErrorInfo{
			Code:    VoucherCodeExists,
			Message: "This voucher code is already in use",
		}
	}

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email is already in use",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "The record already exists",
	}
}

func getNotFoundMessage(context string) string {
	switch context {
	case "product":
		return "Product not found"
	case "variant":
		return "Variant not found"
	case "bank_account":
		return "Bank account not found"
	case "reward":
		return "Reward not found"
	case "voucher":
		return "Voucher not found"
	case "order":
		return "Order not found"
	case "user":
		return "User not found"
	default:
		return "The requested resource was not found"
	}
}

func getDefaultErrorMessage(context string) string {
	if context == "" {
		return "An internal error occurred. Please try again later"
	}
	return "Failed to " + context + ". Please try again later"
}
