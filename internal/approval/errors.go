package approval

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fibreflow/workforce/internal/documents"
)

// ValidationError reports one or more violated request preconditions.
// Nothing is mutated when a ValidationError is returned.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// Details returns the individual violated rules for error responses.
func (e *ValidationError) Details() []string {
	return e.Violations
}

// newValidationError builds a ValidationError from the given violations.
func newValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// MapHTTPStatus maps approval errors to HTTP status codes. Unrecognized
// errors are persistence-layer failures and surface as retryable 500s.
func MapHTTPStatus(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, documents.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, documents.ErrAlreadyDecided):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
