package models

import (
	"errors"
	"fmt"
)

// ValidationCode identifies which domain constraint a spin request violated
type ValidationCode string

const (
	CodeMissingIdentifier   ValidationCode = "MISSING_IDENTIFIER"
	CodeInvalidInputType    ValidationCode = "INVALID_INPUT_TYPE"
	CodeInvalidRange        ValidationCode = "INVALID_RANGE"
	CodeInvalidSegmentCount ValidationCode = "INVALID_SEGMENT_COUNT"
	CodeInvalidDuration     ValidationCode = "INVALID_DURATION"
)

// ValidationError is a client-fixable request error (HTTP 400)
type ValidationError struct {
	Code    ValidationCode
	Message string
}

// NewValidationError creates a ValidationError with the given code and message
func NewValidationError(code ValidationCode, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Sentinel errors for the eligibility check
var (
	// ErrAccountNotFound means the recipient identifier resolved to no account
	ErrAccountNotFound = errors.New("dominant not found")
	// ErrNotEligible means the recipient exists but lacks the dominant role
	ErrNotEligible = errors.New("recipient is not a dominant")
)

// PersistenceError wraps a failed store write. The already-computed draw is
// discarded, never retried; the caller must resubmit for a fresh draw.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save spin record: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
