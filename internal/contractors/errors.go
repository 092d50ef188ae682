package contractors

import (
	"errors"
	"net/http"
)

// Domain errors for contractor operations.
var (
	ErrNotFound   = errors.New("contractor not found")
	ErrDuplicate  = errors.New("contractor already registered")
	ErrInvalidCmd = errors.New("invalid contractor request")
)

// MapHTTPStatus maps contractor domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCmd):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
