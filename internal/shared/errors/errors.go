package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies the failure classes of a publishing run.
type ErrorType string

const (
	// ErrorTypeInput covers local file access failures (missing/unreadable input).
	ErrorTypeInput ErrorType = "INPUT_ERROR"
	// ErrorTypeParse covers malformed JSON in the input file.
	ErrorTypeParse ErrorType = "PARSE_ERROR"
	// ErrorTypeValidation covers missing or mis-shaped required sections.
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	// ErrorTypeInfrastructure covers remote-write failures from the database client.
	ErrorTypeInfrastructure ErrorType = "INFRASTRUCTURE_ERROR"
	// ErrorTypeInternal is the fallback for everything else.
	ErrorTypeInternal ErrorType = "INTERNAL_ERROR"
)

// Common sentinel errors
var (
	ErrInvalidPath       = errors.New("invalid document path")
	ErrInvalidDocumentID = errors.New("invalid document ID")
	ErrInvalidInput      = errors.New("invalid input")
)

// AppError represents a custom application error with context
type AppError struct {
	Type      ErrorType              `json:"type"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	Component string                 `json:"component,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WithCause adds the underlying cause
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithComponent adds the component name
func (e *AppError) WithComponent(component string) *AppError {
	e.Component = component
	return e
}

// WithDetail adds a detail field
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Common error constructors

// NewInputError creates an input-access error
func NewInputError(message string) *AppError {
	return NewAppError(ErrorTypeInput, message)
}

// NewParseError creates a parse error
func NewParseError(message string) *AppError {
	return NewAppError(ErrorTypeParse, message)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrorTypeValidation, message)
}

// NewInfrastructureError creates an infrastructure error
func NewInfrastructureError(message string) *AppError {
	return NewAppError(ErrorTypeInfrastructure, message)
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return NewAppError(ErrorTypeInternal, message)
}

// WrapError wraps an error with context, preserving an existing AppError
func WrapError(err error, message string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

// IsInput checks if an error is an input-access error
func IsInput(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeInput
	}
	return false
}

// IsParse checks if an error is a parse error
func IsParse(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeParse
	}
	return false
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeValidation
	}
	return false
}

// IsInfrastructure checks if an error is a remote-write error
func IsInfrastructure(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == ErrorTypeInfrastructure
	}
	return false
}
