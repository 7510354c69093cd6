// Package apperrors holds the typed failures the HTTP layer knows how to render.
package apperrors

import (
	"errors"
	"net/http"
)

// Typed is implemented by every failure that carries its own wire name and status code.
type Typed interface {
	error
	Name() string
	StatusCode() int
}

// NotFoundError reports that a referenced record does not exist.
type NotFoundError struct {
	Message string
}

// NewNotFoundError creates a NotFoundError with the given message.
func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func (e *NotFoundError) Error() string   { return e.Message }
func (e *NotFoundError) Name() string    { return "NotFoundError" }
func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// ValidationError reports a malformed or missing input value.
// Field is empty when the failure is not tied to a single payload field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError that is not bound to a field.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string   { return e.Message }
func (e *ValidationError) Name() string    { return "ValidationError" }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// ForbiddenError reports a failed credential check.
type ForbiddenError struct {
	Message string
}

// NewForbiddenError creates a ForbiddenError with the given message.
func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func (e *ForbiddenError) Error() string   { return e.Message }
func (e *ForbiddenError) Name() string    { return "ForbiddenError" }
func (e *ForbiddenError) StatusCode() int { return http.StatusForbidden }

// AsTyped returns the first Typed error in err's chain.
func AsTyped(err error) (Typed, bool) {
	var typed Typed
	if errors.As(err, &typed) {
		return typed, true
	}
	return nil, false
}

// AsValidation returns the first *ValidationError in err's chain.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
