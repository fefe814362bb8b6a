// Package errors provides standardized error handling for the forms pipeline.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed      ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidFormType       ErrorCode = "INVALID_FORM_TYPE"
	ErrCodeRequestParsingFailed  ErrorCode = "REQUEST_PARSING_FAILED"
	ErrCodeEmailDispatchFailed   ErrorCode = "EMAIL_DISPATCH_FAILED"
	ErrCodeDraftLoadFailed       ErrorCode = "DRAFT_LOAD_FAILED"
	ErrCodeDraftSaveFailed       ErrorCode = "DRAFT_SAVE_FAILED"
	ErrCodeSubmissionInFlight    ErrorCode = "SUBMISSION_IN_FLIGHT"
	ErrCodeSubmissionTransport   ErrorCode = "SUBMISSION_TRANSPORT_FAILED"
	ErrCodeStepNotReachable      ErrorCode = "STEP_NOT_REACHABLE"
	ErrCodeUnknownField          ErrorCode = "UNKNOWN_FIELD"
	ErrCodeCatalogueLoadFailed   ErrorCode = "CATALOGUE_LOAD_FAILED"
	ErrCodeRedisConnectionFailed ErrorCode = "REDIS_CONNECTION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewValidationFailedError creates a non-retryable validation error.
func NewValidationFailedError(errorCount int) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Validation failed",
		Details:   fmt.Sprintf("errorCount: %d", errorCount),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidFormTypeError creates a non-retryable form type error.
func NewInvalidFormTypeError(formType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFormType,
		Message:   "Invalid form type",
		Details:   fmt.Sprintf("formType: %s", formType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestParsingFailedError creates a non-retryable request body error.
func NewRequestParsingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestParsingFailed,
		Message:   "Invalid request format",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailDispatchFailedError creates a retryable email provider error.
func NewEmailDispatchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailDispatchFailed,
		Message:   "Failed to send email.",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDraftLoadFailedError creates a retryable draft store read error.
func NewDraftLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDraftLoadFailed,
		Message:   "Failed to load draft",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDraftSaveFailedError creates a retryable draft store write error.
func NewDraftSaveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDraftSaveFailed,
		Message:   "Failed to save draft",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionInFlightError creates a non-retryable duplicate submission error.
func NewSubmissionInFlightError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionInFlight,
		Message:   "A submission is already in progress",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionTransportError creates a retryable transport error.
func NewSubmissionTransportError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionTransport,
		Message:   "Submission failed, please retry or contact support",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStepNotReachableError creates a non-retryable wizard navigation error.
func NewStepNotReachableError(index int) *StandardError {
	return &StandardError{
		Code:      ErrCodeStepNotReachable,
		Message:   "Step has not been reached yet",
		Details:   fmt.Sprintf("stepIndex: %d", index),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownFieldError creates a non-retryable field lookup error.
func NewUnknownFieldError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownField,
		Message:   "Field is not part of the form schema",
		Details:   fmt.Sprintf("field: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCatalogueLoadFailedError creates a non-retryable catalogue file error.
func NewCatalogueLoadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCatalogueLoadFailed,
		Message:   "Failed to load programme catalogue",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRedisConnectionFailedError creates a retryable connection error.
func NewRedisConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRedisConnectionFailed,
		Message:   "Redis connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is a StandardError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}
