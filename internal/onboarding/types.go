package onboarding

import (
	"time"

	"github.com/google/uuid"
)

// Status is the overall onboarding lifecycle state for a contractor.
type Status string

const (
	StatusNotStarted      Status = "not_started"
	StatusInProgress      Status = "in_progress"
	StatusCompleted       Status = "completed"
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted,
		StatusPendingApproval, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// locked reports whether the checklist can no longer be modified: the
// record is awaiting a decision or already approved. A rejected record
// stays editable so the checklist can be reworked.
func (s Status) locked() bool {
	return s == StatusPendingApproval || s == StatusApproved
}

// Category groups checklist items by the kind of requirement they cover.
type Category string

const (
	CategoryCompany    Category = "company"
	CategoryCompliance Category = "compliance"
	CategorySafety     Category = "safety"
	CategoryFinance    Category = "finance"
)

// ChecklistItem is one requirement within an onboarding stage.
type ChecklistItem struct {
	ID           uuid.UUID  `json:"id"`
	ContractorID uuid.UUID  `json:"contractor_id"`
	Stage        string     `json:"stage"`
	Label        string     `json:"label"`
	Category     Category   `json:"category"`
	Required     bool       `json:"required"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Record is the persisted onboarding state for a contractor.
type Record struct {
	ContractorID    uuid.UUID  `json:"contractor_id"`
	Status          Status     `json:"status"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	DecidedBy       *string    `json:"decided_by,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// StageProgress is the derived completion state of one stage.
type StageProgress struct {
	Stage          string          `json:"stage"`
	Title          string          `json:"title"`
	Complete       bool            `json:"complete"`
	RequiredItems  int             `json:"required_items"`
	CompletedItems int             `json:"completed_items"`
	Items          []ChecklistItem `json:"items"`
}

// Progress is the full derived onboarding view for a contractor.
type Progress struct {
	ContractorID    uuid.UUID       `json:"contractor_id"`
	Status          Status          `json:"status"`
	OverallPercent  int             `json:"overall_percent"`
	Stages          []StageProgress `json:"stages"`
	SubmittedAt     *time.Time      `json:"submitted_at,omitempty"`
	DecidedAt       *time.Time      `json:"decided_at,omitempty"`
	DecidedBy       *string         `json:"decided_by,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
}

// ToggleCommand marks a checklist item complete or incomplete.
type ToggleCommand struct {
	ContractorID uuid.UUID `json:"-"`
	ItemID       uuid.UUID `json:"-"`
	Completed    bool      `json:"completed"`
}

// Decision is the outcome applied to a submitted onboarding record.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// DecisionCommand resolves a pending-approval record.
type DecisionCommand struct {
	ContractorID uuid.UUID `json:"-"`
	Decision     Decision  `json:"decision"`
	Reason       string    `json:"reason,omitempty"`
	ActorID      string    `json:"-"`
}
