package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrHouseNotFound         = errors.New("house not found")
	ErrTenantNotFound        = errors.New("tenant not found")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrHouseNumberExists     = errors.New("house number already exists")
	ErrTenantNotAssigned     = errors.New("tenant is not assigned to this house")
	ErrTenantAlreadyAssigned = errors.New("tenant already assigned to this house")
	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrInvalidPaymentAmount  = errors.New("invalid payment amount")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrInvalidTargetMonth    = errors.New("target month out of range")
	ErrTargetBeforeOccupancy = errors.New("target month precedes first occupancy")
	ErrOverpaymentRejected   = errors.New("payment exceeds remaining balance")
	ErrConcurrentUpdate      = errors.New("concurrent ledger update")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeDatabaseError = "DATABASE_ERROR"
	ErrCodeCacheError    = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapValidation(message string, err error) *BusinessError {
	return NewBusinessError(ErrCodeValidation, message, err)
}

func WrapHouseNotFound(houseID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("House with ID %s not found", houseID),
		ErrHouseNotFound,
	)
}

func WrapTenantNotFound(tenantID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("Tenant with ID %s not found", tenantID),
		ErrTenantNotFound,
	)
}

func WrapPaymentNotFound(paymentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("Payment with ID %s not found", paymentID),
		ErrPaymentNotFound,
	)
}

func WrapHouseNumberExists(number int) *BusinessError {
	return NewBusinessError(
		ErrCodeConflict,
		fmt.Sprintf("House number %d already exists", number),
		ErrHouseNumberExists,
	)
}

func WrapTenantNotAssigned(tenantID, houseID string) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		fmt.Sprintf("Tenant %s is not assigned to house %s", tenantID, houseID),
		ErrTenantNotAssigned,
	)
}

func WrapTenantAlreadyAssigned(tenantID, houseID string) *BusinessError {
	return NewBusinessError(
		ErrCodeConflict,
		fmt.Sprintf("Tenant %s already assigned to house %s", tenantID, houseID),
		ErrTenantAlreadyAssigned,
	)
}

func WrapOverpaymentRejected(remaining string) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		fmt.Sprintf("Payment exceeds remaining balance of %s", remaining),
		ErrOverpaymentRejected,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

// CodeOf extracts the business error code, defaulting to DATABASE_ERROR.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ErrCodeDatabaseError
}
