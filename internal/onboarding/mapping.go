package onboarding

import (
	"github.com/fibreflow/workforce/pkg/query"
	"github.com/fibreflow/workforce/pkg/repository"
)

var itemProjection = query.
	NewProjectionMap("public", "onboarding_items", "i").
	Project("id", "ID").
	Project("contractor_id", "ContractorID").
	Project("stage", "Stage").
	Project("label", "Label").
	Project("category", "Category").
	Project("required", "Required").
	Project("completed", "Completed").
	Project("completed_at", "CompletedAt")

var itemSort = query.SortField{Field: "Label"}

const itemReturningColumns = `id, contractor_id, stage, label, category, required, completed, completed_at`

const recordColumns = `contractor_id, status, submitted_at, decided_at, decided_by, rejection_reason, created_at, updated_at`

func scanItem(s repository.Scanner) (ChecklistItem, error) {
	var i ChecklistItem
	err := s.Scan(
		&i.ID,
		&i.ContractorID,
		&i.Stage,
		&i.Label,
		&i.Category,
		&i.Required,
		&i.Completed,
		&i.CompletedAt,
	)
	return i, err
}

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	err := s.Scan(
		&r.ContractorID,
		&r.Status,
		&r.SubmittedAt,
		&r.DecidedAt,
		&r.DecidedBy,
		&r.RejectionReason,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}
