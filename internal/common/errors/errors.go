// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Business rule errors are thrown as BPMN errors; infrastructure errors fail the job with retries.
const (
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
	ErrCodeConflict         ErrorCode = "CONFLICT"
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrCodeDataIntegrity    ErrorCode = "DATA_INTEGRITY"

	ErrCodeDatabase     ErrorCode = "DATABASE_ERROR"
	ErrCodeSearchFailed ErrorCode = "SEARCH_FAILED"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying driver or transport error, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value that is forwarded to the BPMN error variables.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError reports a missing job, application, test or profile.
func NewNotFoundError(resource, id string) *StandardError {
	return newError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource), fmt.Sprintf("%s: %s", resource, id), false).
		WithMetadata("resource", resource)
}

// NewCapacityExceededError reports a job that is full or already closed.
func NewCapacityExceededError(jobID string, maxApplicants int) *StandardError {
	return newError(ErrCodeCapacityExceeded, "Job has reached its applicant limit",
		fmt.Sprintf("jobId: %s, maxApplicants: %d", jobID, maxApplicants), false).
		WithMetadata("jobId", jobID)
}

// NewConflictError reports an operation that is illegal in the current state.
func NewConflictError(message, details string) *StandardError {
	return newError(ErrCodeConflict, message, details, false)
}

// NewValidationError reports malformed input.
func NewValidationError(details string) *StandardError {
	return newError(ErrCodeValidation, "Input validation failed", details, false)
}

// NewForbiddenError reports a caller acting on a resource it does not own.
func NewForbiddenError(details string) *StandardError {
	return newError(ErrCodeForbidden, "Caller is not allowed to perform this operation", details, false)
}

// NewDataIntegrityError reports stored state that contradicts an invariant.
func NewDataIntegrityError(details string) *StandardError {
	return newError(ErrCodeDataIntegrity, "Stored data is inconsistent", details, false)
}

// NewDatabaseError creates a retryable store error.
func NewDatabaseError(operation string, err error) *StandardError {
	e := newError(ErrCodeDatabase, "Database operation failed", fmt.Sprintf("operation: %s, error: %s", operation, err), true)
	e.cause = err
	return e
}

// NewSearchFailedError creates a retryable search index error.
func NewSearchFailedError(operation string, err error) *StandardError {
	e := newError(ErrCodeSearchFailed, "Search index operation failed", fmt.Sprintf("operation: %s, error: %s", operation, err), true)
	e.cause = err
	return e
}

// NewInternalError wraps anything that does not fit another code.
func NewInternalError(err error) *StandardError {
	e := newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
	e.cause = err
	return e
}

// NewExternalServiceError wraps a transient failure of a remote dependency such as the broker.
func NewExternalServiceError(service string, err error) *StandardError {
	e := newError(ErrCodeInternal, fmt.Sprintf("External service '%s' error", service), err.Error(), true)
	e.cause = err
	return e
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabase:
		return 3
	case ErrCodeSearchFailed:
		return 2
	default:
		return 0 // business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError finds a *StandardError anywhere in err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	stdErr, ok := AsStandardError(err)
	return ok && stdErr.Code == code
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeNotFound, ErrCodeCapacityExceeded, ErrCodeConflict, ErrCodeForbidden:
		return "BUSINESS"
	case ErrCodeValidation:
		return "VALIDATION"
	case ErrCodeDataIntegrity, ErrCodeDatabase:
		return "DATABASE"
	case ErrCodeSearchFailed:
		return "SEARCH"
	default:
		return "OTHER"
	}
}
