package onboarding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fibreflow/workforce/pkg/query"
	"github.com/fibreflow/workforce/pkg/repository"
)

// System defines the public contract for onboarding tracking.
type System interface {
	Handler() *Handler

	// Start seeds the default checklist for a contractor.
	Start(ctx context.Context, contractorID uuid.UUID) (*Progress, error)

	// Progress returns the derived onboarding view for a contractor.
	Progress(ctx context.Context, contractorID uuid.UUID) (*Progress, error)

	// Toggle marks a checklist item complete or incomplete and recomputes
	// the working status.
	Toggle(ctx context.Context, cmd ToggleCommand) (*Progress, error)

	// Submit moves a completed checklist to pending approval.
	Submit(ctx context.Context, contractorID uuid.UUID) (*Progress, error)

	// Decide resolves a pending-approval record.
	Decide(ctx context.Context, cmd DecisionCommand) (*Progress, error)
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// New creates an onboarding repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "onboarding"),
		now:    time.Now,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Start(ctx context.Context, contractorID uuid.UUID) (*Progress, error) {
	record, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		q := `
			INSERT INTO onboarding_records(contractor_id, status)
			VALUES ($1, $2)
			RETURNING ` + recordColumns

		record, err := repository.QueryOne(ctx, tx, q, []any{contractorID, StatusNotStarted}, scanRecord)
		if err != nil {
			return Record{}, err
		}

		if err := seedChecklist(ctx, tx, contractorID); err != nil {
			return Record{}, fmt.Errorf("seed checklist: %w", err)
		}
		return record, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrAlreadyStarted)
	}

	r.logger.Info("onboarding started", "contractor", contractorID)
	return r.progressFor(ctx, record)
}

func (r *repo) Progress(ctx context.Context, contractorID uuid.UUID) (*Progress, error) {
	record, err := r.findRecord(ctx, contractorID)
	if err != nil {
		return nil, err
	}
	return r.progressFor(ctx, *record)
}

func (r *repo) Toggle(ctx context.Context, cmd ToggleCommand) (*Progress, error) {
	record, err := r.findRecord(ctx, cmd.ContractorID)
	if err != nil {
		return nil, err
	}
	if record.Status.locked() {
		return nil, ErrInvalidTransition
	}

	// Toggling after rejection reopens the checklist for rework.
	working := record.Status
	if working == StatusRejected {
		working = StatusInProgress
	}

	updated, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		var completedAt *time.Time
		if cmd.Completed {
			now := r.now()
			completedAt = &now
		}

		err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE onboarding_items SET completed = $3, completed_at = $4 WHERE id = $1 AND contractor_id = $2",
			cmd.ItemID, cmd.ContractorID, cmd.Completed, completedAt,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return Record{}, ErrItemNotFound
			}
			return Record{}, fmt.Errorf("update checklist item: %w", err)
		}

		items, err := queryItems(ctx, tx, cmd.ContractorID)
		if err != nil {
			return Record{}, err
		}

		q := `
			UPDATE onboarding_records
			SET status = $2, rejection_reason = NULL, decided_at = NULL, decided_by = NULL, updated_at = $3
			WHERE contractor_id = $1
			RETURNING ` + recordColumns

		args := []any{cmd.ContractorID, deriveStatus(working, items), r.now()}
		return repository.QueryOne(ctx, tx, q, args, scanRecord)
	})

	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, err
		}
		return nil, repository.MapError(err, ErrNotFound, ErrAlreadyStarted)
	}

	return r.progressFor(ctx, updated)
}

func (r *repo) Submit(ctx context.Context, contractorID uuid.UUID) (*Progress, error) {
	q := `
		UPDATE onboarding_records
		SET status = $2, submitted_at = $3, updated_at = $3
		WHERE contractor_id = $1 AND status = $4
		RETURNING ` + recordColumns

	args := []any{contractorID, StatusPendingApproval, r.now(), StatusCompleted}

	record, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.classifyMissedSubmit(ctx, contractorID)
		}
		return nil, fmt.Errorf("submit onboarding: %w", err)
	}

	r.logger.Info("onboarding submitted", "contractor", contractorID)
	return r.progressFor(ctx, record)
}

func (r *repo) Decide(ctx context.Context, cmd DecisionCommand) (*Progress, error) {
	if !cmd.Decision.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecision, cmd.Decision)
	}

	status := StatusApproved
	var reason *string
	if cmd.Decision == DecisionReject {
		if strings.TrimSpace(cmd.Reason) == "" {
			return nil, ErrReasonRequired
		}
		status = StatusRejected
		reason = &cmd.Reason
	}

	q := `
		UPDATE onboarding_records
		SET status = $2, decided_at = $3, decided_by = $4, rejection_reason = $5, updated_at = $3
		WHERE contractor_id = $1 AND status = $6
		RETURNING ` + recordColumns

	args := []any{cmd.ContractorID, status, r.now(), cmd.ActorID, reason, StatusPendingApproval}

	record, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.classifyMissedDecision(ctx, cmd.ContractorID)
		}
		return nil, fmt.Errorf("decide onboarding: %w", err)
	}

	r.logger.Info(
		"onboarding decided",
		"contractor", cmd.ContractorID,
		"status", record.Status,
		"actor", cmd.ActorID,
	)
	return r.progressFor(ctx, record)
}

func (r *repo) findRecord(ctx context.Context, contractorID uuid.UUID) (*Record, error) {
	q := "SELECT " + recordColumns + " FROM onboarding_records WHERE contractor_id = $1"

	record, err := repository.QueryOne(ctx, r.db, q, []any{contractorID}, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrAlreadyStarted)
	}
	return &record, nil
}

// classifyMissedSubmit distinguishes the reasons a guarded submit matched
// no row: missing record, already submitted or approved, rejected without
// rework, or an incomplete checklist.
func (r *repo) classifyMissedSubmit(ctx context.Context, contractorID uuid.UUID) error {
	record, err := r.findRecord(ctx, contractorID)
	if err != nil {
		return err
	}
	switch {
	case record.Status.locked():
		return ErrInvalidTransition
	case record.Status == StatusRejected:
		return ErrRejected
	}
	return ErrIncomplete
}

func (r *repo) classifyMissedDecision(ctx context.Context, contractorID uuid.UUID) error {
	if _, err := r.findRecord(ctx, contractorID); err != nil {
		return err
	}
	return ErrInvalidTransition
}

func (r *repo) progressFor(ctx context.Context, record Record) (*Progress, error) {
	items, err := queryItems(ctx, r.db, record.ContractorID)
	if err != nil {
		return nil, err
	}
	progress := BuildProgress(record, items)
	return &progress, nil
}

func queryItems(ctx context.Context, q repository.Querier, contractorID uuid.UUID) ([]ChecklistItem, error) {
	sqlText, args := query.
		NewBuilder(itemProjection, itemSort).
		WhereEquals("ContractorID", contractorID).
		Build()

	items, err := repository.QueryMany(ctx, q, sqlText, args, scanItem)
	if err != nil {
		return nil, fmt.Errorf("query checklist items: %w", err)
	}
	return items, nil
}

func seedChecklist(ctx context.Context, tx *sql.Tx, contractorID uuid.UUID) error {
	q := `
		INSERT INTO onboarding_items(id, contractor_id, stage, label, category, required)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, item := range checklistTemplate {
		if err := repository.ExecExpectOne(
			ctx, tx, q,
			uuid.New(), contractorID, item.Stage, item.Label, item.Category, item.Required,
		); err != nil {
			return err
		}
	}
	return nil
}
