package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken means the submission token is absent, malformed, or no
	// longer maps to an active client. Callers surface this distinctly so the
	// client knows to ask their coach for a fresh link.
	ErrInvalidToken = errors.New("invalid or expired token")

	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError rejects a request before any write happens.
type ValidationError struct {
	Field   string
	Message string
}

func (validationError *ValidationError) Error() string {
	if validationError.Field == "" {
		return validationError.Message
	}
	return fmt.Sprintf("%s: %s", validationError.Field, validationError.Message)
}

func NewValidationError(field string, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

// AsValidationError unwraps err to the typed validation failure so callers
// can report the offending field.
func AsValidationError(err error) (*ValidationError, bool) {
	var validationError *ValidationError
	if errors.As(err, &validationError) {
		return validationError, true
	}
	return nil, false
}

// PartialUpdateError reports a coupled task/check-in update that could not be
// applied as a whole. FailedPart names the half that failed; nothing is kept
// when it is returned.
type PartialUpdateError struct {
	FailedPart string
	Cause      error
}

func (partialError *PartialUpdateError) Error() string {
	return fmt.Sprintf("coupled update failed at %s: %v", partialError.FailedPart, partialError.Cause)
}

func (partialError *PartialUpdateError) Unwrap() error {
	return partialError.Cause
}
