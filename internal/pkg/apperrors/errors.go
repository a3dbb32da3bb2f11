package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrFormNotValid     = errors.New("form data did not validate")
	ErrBadRequest       = errors.New("bad request")
)

// Account errors
var (
	ErrUserNotFound      = fmt.Errorf("user: %w", ErrResourceNotFound)
	ErrUsernameTaken     = fmt.Errorf("username: %w", ErrResourceAlreadyExists)
	ErrStudentNotFound   = fmt.Errorf("student: %w", ErrResourceNotFound)
	ErrStudentCodeTaken  = fmt.Errorf("student code: %w", ErrResourceAlreadyExists)
	ErrCareerNotFound    = fmt.Errorf("career: %w", ErrResourceNotFound)
	ErrStudentUserExists = fmt.Errorf("student profile of user: %w", ErrResourceAlreadyExists)
)

// Internship errors
var (
	ErrOrganizationNotFound = fmt.Errorf("organization: %w", ErrResourceNotFound)
	ErrOpportunityNotFound  = fmt.Errorf("opportunity: %w", ErrResourceNotFound)
	ErrEnrollmentNotFound   = fmt.Errorf("enrollment: %w", ErrResourceNotFound)
	ErrDocumentNotFound     = fmt.Errorf("enrollment document: %w", ErrResourceNotFound)
)

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

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
