package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/question-bank-service/internal/validator"
)

// Sentinel errors surfaced to handlers for status mapping
var (
	ErrBankNotFound     = errors.New("question bank not found")
	ErrTopicNotFound    = errors.New("topic not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError mirrors the validator package type so callers can treat
// service validation failures uniformly.
type ValidationError = validator.ValidationError

type ValidationErrors = validator.ValidationErrors

// NewValidationError builds a single-field validation failure.
func NewValidationError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}

// ConflictError reports a state conflict, e.g. a topic parented across banks.
type ConflictError struct {
	Resource string
	Message  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %s", e.Resource, e.Message)
}

func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{Resource: resource, Message: message}
}
