package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid       = "CONFIG_INVALID"
	CodeDimensionMismatch   = "DIMENSION_MISMATCH"
	CodeDomainViolation     = "DOMAIN_VIOLATION"
	CodeDegeneratePrecision = "DEGENERATE_PRECISION"
	CodeInternalError       = "INTERNAL_ERROR"
	CodeInvalidInput        = "INVALID_INPUT"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// DimensionMismatch reports a declared-size constraint violation, e.g. a
// design matrix that is not N x D.
func DimensionMismatch(message string) *AppError {
	return New(CodeDimensionMismatch, message)
}

// DimensionMismatchf is DimensionMismatch with formatting.
func DimensionMismatchf(format string, args ...interface{}) *AppError {
	return New(CodeDimensionMismatch, fmt.Sprintf(format, args...))
}

// DomainViolation reports observed data outside its declared domain, e.g. an
// outcome that is neither 0 nor 1.
func DomainViolation(message string) *AppError {
	return New(CodeDomainViolation, message)
}

// DegeneratePrecision reports a prior precision matrix that is not symmetric
// positive-definite.
func DegeneratePrecision(message string) *AppError {
	return New(CodeDegeneratePrecision, message)
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
