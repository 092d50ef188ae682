package onboarding

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates no onboarding record exists for the contractor.
	ErrNotFound = errors.New("onboarding record not found")

	// ErrItemNotFound indicates the checklist item does not exist for the
	// contractor.
	ErrItemNotFound = errors.New("checklist item not found")

	// ErrAlreadyStarted indicates onboarding was already initialized.
	ErrAlreadyStarted = errors.New("onboarding already started")

	// ErrIncomplete indicates a submit attempt before every stage is
	// complete.
	ErrIncomplete = errors.New("onboarding checklist is incomplete")

	// ErrInvalidTransition indicates an operation not allowed in the
	// record's current status.
	ErrInvalidTransition = errors.New("invalid onboarding status transition")

	// ErrRejected indicates a submit attempt on a rejected record before
	// the checklist has been reworked.
	ErrRejected = errors.New("onboarding was rejected; rework the checklist before resubmitting")

	// ErrReasonRequired indicates a rejection without a reason.
	ErrReasonRequired = errors.New("rejection requires a reason")

	// ErrInvalidDecision indicates an unrecognized decision value.
	ErrInvalidDecision = errors.New("invalid decision")
)

// MapHTTPStatus translates onboarding errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyStarted),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrRejected):
		return http.StatusConflict
	case errors.Is(err, ErrIncomplete),
		errors.Is(err, ErrReasonRequired),
		errors.Is(err, ErrInvalidDecision):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
