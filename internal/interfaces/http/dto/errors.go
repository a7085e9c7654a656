package dto

import (
	"net/http"
	"strings"
)

// Error codes raised by the HTTP layer itself
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeValidation   = "VALIDATION_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall through to the prefix rules in
// GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound: http.StatusNotFound,

	"ALREADY_EXISTS":          http.StatusConflict,
	"ALREADY_IN_ORGANIZATION": http.StatusConflict,
	"CONCURRENCY_CONFLICT":    http.StatusConflict,
	"ENTITY_IN_USE":           http.StatusConflict,

	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,

	ErrCodeForbidden:   http.StatusForbidden,
	"NO_ORGANIZATION":  http.StatusForbidden,
	"ACCOUNT_INACTIVE": http.StatusForbidden,

	// Business rule violations on well-formed requests
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"UNIT_NOT_ALLOWED":   http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	"CYCLIC_UNIT_CHAIN": http.StatusBadRequest,
	"EMPTY_ITEMS":       http.StatusBadRequest,
	"EMPTY_INPUTS":      http.StatusBadRequest,
	"REQUIRED":          http.StatusBadRequest,

	ErrCodeInternal:       http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
	"TOKEN_ERROR":         http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// INVALID_* codes are validation failures and map to 400 unless listed
// explicitly; unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
