package dto

import (
	"net/http"
	"strings"
)

// Generic error codes used by handlers and middleware
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "ALREADY_EXISTS"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeStatus maps domain error codes to HTTP status codes. Codes not
// listed here fall through to the prefix rules in GetHTTPStatus.
var errorCodeStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeInternal:     http.StatusInternalServerError,

	// Authentication
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,

	// Lookups
	"USER_NOT_FOUND":    http.StatusNotFound,
	"PRODUCT_NOT_FOUND": http.StatusNotFound,
	"CARRIER_NOT_FOUND": http.StatusNotFound,

	// Checkout and cart rules: the request was well-formed but the business
	// state rejects it.
	"CROSS_DEPARTMENT_CONFLICT": http.StatusConflict,
	"CARRIER_NOT_CARTABLE":      http.StatusUnprocessableEntity,
	"CARRIER_REQUIRED":          http.StatusUnprocessableEntity,
	"NOT_A_CARRIER":             http.StatusUnprocessableEntity,
	"EMPTY_CART":                http.StatusUnprocessableEntity,
	"PRODUCT_UNAVAILABLE":       http.StatusUnprocessableEntity,
	"INCONSISTENT_TOTAL":        http.StatusUnprocessableEntity,

	// Admin user management
	"LAST_SUPER":          http.StatusConflict,
	"SUPER_NOT_DELETABLE": http.StatusConflict,

	"INVALID_STATE": http.StatusUnprocessableEntity,
}

// GetHTTPStatus resolves the HTTP status for a domain error code.
// INVALID_* codes not individually mapped are treated as validation
// failures; anything unknown is a server error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
