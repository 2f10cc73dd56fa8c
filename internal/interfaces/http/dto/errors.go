package dto

import (
	"net/http"
	"strings"

	"github.com/glbooks/backend/internal/domain/shared"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Validation codes all start with INVALID_ and map to 400; codes not
// listed here fall back to 500.
var errorCodeHTTPStatus = map[string]int{
	// Missing resources
	"NOT_FOUND":                http.StatusNotFound,
	shared.CodeAccountNotFound: http.StatusNotFound,
	"DIMENSION_NOT_FOUND":      http.StatusNotFound,
	"PARENT_NOT_FOUND":         http.StatusNotFound,

	// Duplicates
	"ALREADY_EXISTS":   http.StatusConflict,
	"ACCOUNT_EXISTS":   http.StatusConflict,
	"DIMENSION_EXISTS": http.StatusConflict,
	"CHARGE_EXISTS":    http.StatusConflict,

	// Business rule violations
	shared.CodeInvalidState:          http.StatusUnprocessableEntity,
	shared.CodeUnbalancedEntry:       http.StatusUnprocessableEntity,
	shared.CodeVoucherUnbalanced:     http.StatusUnprocessableEntity,
	shared.CodePeriodClosed:          http.StatusUnprocessableEntity,
	shared.CodePeriodAlreadyClosed:   http.StatusUnprocessableEntity,
	shared.CodeInsufficientInventory: http.StatusUnprocessableEntity,
	"DIMENSION_DISABLED":             http.StatusUnprocessableEntity,
	"EXCEEDS_OUTSTANDING":            http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
