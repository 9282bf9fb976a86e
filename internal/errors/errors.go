// Package errors provides the application error taxonomy. Services return
// *AppError values so handlers can render a stable code, kind, and status
// without leaking internal details.
package errors

import "net/http"

// AppError represents a structured application error. Kind is set only for the
// purchase taxonomy, which clients branch on.
type AppError struct {
	Code       string `json:"code"`
	Kind       string `json:"kind,omitempty"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches any AppError carrying the same code, so wrapped copies of a
// sentinel still compare equal to it.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a copy of sentinel that carries an internal cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Kind:       sentinel.Kind,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a copy of sentinel with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Kind:       sentinel.Kind,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Purchase error kinds.
const (
	KindInvalidQuantity    = "InvalidQuantity"
	KindNotFound           = "NotFound"
	KindInactive           = "Inactive"
	KindInsufficientSupply = "InsufficientSupply"
	KindPersistenceFailure = "PersistenceFailure"
)

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "A user with this username already exists", StatusCode: http.StatusConflict}
)

// Investment and purchase errors.
var (
	ErrInvalidQuantity = &AppError{
		Code: "INVALID_QUANTITY", Kind: KindInvalidQuantity,
		Message: "Amount must be a positive whole number of tokens", StatusCode: http.StatusBadRequest,
	}
	ErrInvestmentNotFound = &AppError{
		Code: "INVESTMENT_NOT_FOUND", Kind: KindNotFound,
		Message: "Investment not found", StatusCode: http.StatusNotFound,
	}
	ErrInvestmentInactive = &AppError{
		Code: "INVESTMENT_INACTIVE", Kind: KindInactive,
		Message: "Investment is not open for purchases", StatusCode: http.StatusConflict,
	}
	ErrInsufficientSupply = &AppError{
		Code: "INSUFFICIENT_SUPPLY", Kind: KindInsufficientSupply,
		Message: "Not enough tokens available", StatusCode: http.StatusConflict,
	}
	ErrPersistenceFailure = &AppError{
		Code: "PERSISTENCE_FAILURE", Kind: KindPersistenceFailure,
		Message: "The purchase could not be stored, it is safe to retry", StatusCode: http.StatusServiceUnavailable,
	}
	ErrInvestmentHasPurchases = &AppError{
		Code: "INVESTMENT_HAS_PURCHASES", Message: "Investment has purchase records; deactivate it instead", StatusCode: http.StatusConflict,
	}
	ErrDuplicateRequest = &AppError{
		Code: "DUPLICATE_REQUEST", Message: "A purchase with this idempotency key is already in progress", StatusCode: http.StatusConflict,
	}
)

// Body renders e as the JSON error envelope returned by every endpoint.
func Body(e *AppError) map[string]interface{} {
	inner := map[string]interface{}{
		"code":    e.Code,
		"message": e.Message,
	}
	if e.Kind != "" {
		inner["kind"] = e.Kind
	}
	return map[string]interface{}{"error": inner}
}
