package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Profile errors
var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrProfessorNotFound   = errors.New("professor not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrInstitutionNotFound = errors.New("institution not found")
	ErrCPFAlreadyExists    = errors.New("CPF already registered")
	ErrCNPJAlreadyExists   = errors.New("CNPJ already registered")
)

// Ledger and redemption errors
var (
	ErrAdvantageNotFound    = errors.New("advantage not found")
	ErrAdvantageInactive    = errors.New("advantage is not active")
	ErrRedemptionNotFound   = errors.New("redemption not found")
	ErrInsufficientBalance  = errors.New("insufficient coin balance")
	ErrDuplicateRedemption  = errors.New("advantage already redeemed by this student")
	ErrCouponCodeCollision  = errors.New("redemption code already in use")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrImmutableTransaction = errors.New("transactions cannot be modified")
	ErrUserHasLedgerHistory = errors.New("user has ledger history")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewValidationError creates a validation error with a specific message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewForbiddenError creates a permission-denied error with a specific message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}
