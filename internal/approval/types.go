// Package approval implements the approval action processor: the single
// component permitted to transition a document's verification status.
// It applies single and batch approve/reject decisions, validating
// preconditions before any mutation and reporting per-document outcomes.
package approval

import (
	"github.com/google/uuid"

	"github.com/fibreflow/workforce/internal/documents"
)

// Action is the decision applied to a pending document.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	return a == ActionApprove || a == ActionReject
}

// ProcessCommand carries one approve/reject decision for one document.
// ActorID identifies the deciding actor and is always stamped onto the
// resulting verification record.
type ProcessCommand struct {
	DocumentID uuid.UUID                  `json:"document_id"`
	Action     Action                     `json:"action"`
	ReasonCode *documents.RejectionReason `json:"reason_code,omitempty"`
	Notes      *string                    `json:"notes,omitempty"`
	ActorID    string                     `json:"-"`
}

// BatchRequest carries an approve/reject decision for a set of documents.
// SkipValidation bypasses the pre-mutation request validation; it does not
// bypass the per-document pending-status guard.
type BatchRequest struct {
	DocumentIDs    []uuid.UUID                `json:"document_ids"`
	Action         Action                     `json:"action"`
	ReasonCode     *documents.RejectionReason `json:"reason_code,omitempty"`
	Notes          *string                    `json:"notes,omitempty"`
	SkipValidation bool                       `json:"skip_validation"`
	ActorID        string                     `json:"-"`
}

// BatchFailure reports one document that could not be processed.
type BatchFailure struct {
	DocumentID uuid.UUID `json:"document_id"`
	Error      string    `json:"error"`
}

// BatchResult enumerates the outcome of every document in a batch.
// Batches are best-effort: failures never roll back sibling outcomes.
type BatchResult struct {
	Requested int            `json:"requested"`
	Succeeded []uuid.UUID    `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}
