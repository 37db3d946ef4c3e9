package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeRequired            ErrorCode = "REQUIRED"
	CodeNonPositiveQuantity ErrorCode = "NON_POSITIVE_QUANTITY"
	CodeInsufficientStock   ErrorCode = "INSUFFICIENT_STOCK"
	CodeUnknownReference    ErrorCode = "UNKNOWN_REFERENCE"
	CodeInvalidPeriod       ErrorCode = "INVALID_PERIOD"
	CodeInvalidValue        ErrorCode = "INVALID_VALUE"
	CodeInvalidTransition   ErrorCode = "INVALID_TRANSITION"
	CodeInUse               ErrorCode = "IN_USE"
)

// ErrConflict is returned when the persisted document changed after it was
// loaded.
var ErrConflict = errors.New("document changed since it was loaded")

// ValidationError rejects an operation before any state is touched.
type ValidationError struct {
	Code    ErrorCode
	Field   string
	Message string
}

func NewValidationError(code ErrorCode, field, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("validation failed on %s (%s): %s", e.Field, e.Code, e.Message)
}

type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// StorageError reports that every storage location failed. Err is the first
// (primary location) failure; Attempts holds all of them in order.
type StorageError struct {
	Op       string
	Err      error
	Attempts []error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed after %d attempt(s): %v", e.Op, len(e.Attempts), e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
