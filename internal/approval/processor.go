package approval

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fibreflow/workforce/internal/documents"
	"github.com/fibreflow/workforce/pkg/metrics"
)

const (
	// DefaultMaxBatchSize caps the number of documents per batch request.
	DefaultMaxBatchSize = 50
	// defaultWorkers bounds concurrent verification writes within a batch.
	defaultWorkers = 8
)

// System defines the public contract for approval processing.
type System interface {
	Handler() *Handler

	Process(ctx context.Context, cmd ProcessCommand) (*documents.Document, error)
	ProcessBatch(ctx context.Context, req BatchRequest) (*BatchResult, error)
}

type processor struct {
	docs         documents.System
	logger       *slog.Logger
	registry     *metrics.Registry
	maxBatchSize int
	workers      int
	now          func() time.Time
}

// New creates an approval processor over the document system. Zero
// values for maxBatchSize and workers apply the package defaults.
func New(
	docs documents.System,
	logger *slog.Logger,
	registry *metrics.Registry,
	maxBatchSize int,
	workers int,
) System {
	if maxBatchSize <= 0 {
		maxBatchSize = DefaultMaxBatchSize
	}
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &processor{
		docs:         docs,
		logger:       logger.With("system", "approval"),
		registry:     registry,
		maxBatchSize: maxBatchSize,
		workers:      workers,
		now:          time.Now,
	}
}

func (p *processor) Handler() *Handler {
	return NewHandler(p, p.logger)
}

// Process applies one decision to one pending document: approve sets
// status verified, reject sets status rejected with the reason code and
// notes; both stamp the deciding actor and timestamp. The underlying
// write is guarded on pending status, so a document decided concurrently
// (or already decided) fails with documents.ErrAlreadyDecided and nothing
// is overwritten. A failed write mutates nothing for that document.
func (p *processor) Process(ctx context.Context, cmd ProcessCommand) (*documents.Document, error) {
	if violations := validateCommand(cmd); len(violations) > 0 {
		return nil, newValidationError(violations...)
	}

	verification := documents.VerificationCommand{
		DocumentID: cmd.DocumentID,
		ActorID:    cmd.ActorID,
		DecidedAt:  p.now(),
	}

	switch cmd.Action {
	case ActionApprove:
		verification.Status = documents.StatusVerified
	case ActionReject:
		verification.Status = documents.StatusRejected
		verification.RejectionReason = cmd.ReasonCode
		verification.Notes = cmd.Notes
	}

	doc, err := p.docs.WriteVerification(ctx, verification)
	if err != nil {
		p.observe(cmd.Action, "failure")
		return nil, err
	}

	p.observe(cmd.Action, "success")
	p.logger.Info(
		"decision applied",
		"document", doc.ID,
		"action", cmd.Action,
		"actor", cmd.ActorID,
	)
	return doc, nil
}

// ProcessBatch validates the request as a whole, then applies the decision
// to every document independently under bounded concurrency. Validation
// failures mutate nothing; execution failures are isolated per document
// and enumerated in the result.
func (p *processor) ProcessBatch(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if violations := p.validateBatch(ctx, req); len(violations) > 0 {
		return nil, newValidationError(violations...)
	}

	if p.registry != nil {
		p.registry.ObserveBatch(len(req.DocumentIDs))
	}

	result := &BatchResult{
		Requested: len(req.DocumentIDs),
		Succeeded: []uuid.UUID{},
		Failed:    []BatchFailure{},
	}

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, id := range req.DocumentIDs {
		g.Go(func() error {
			cmd := ProcessCommand{
				DocumentID: id,
				Action:     req.Action,
				ReasonCode: req.ReasonCode,
				Notes:      req.Notes,
				ActorID:    req.ActorID,
			}

			_, err := p.Process(gctx, cmd)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, BatchFailure{
					DocumentID: id,
					Error:      err.Error(),
				})
			} else {
				result.Succeeded = append(result.Succeeded, id)
			}

			// Failures stay in the aggregate result; returning them here
			// would cancel sibling documents.
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch wait: %w", err)
	}

	p.logger.Info(
		"batch processed",
		"action", req.Action,
		"requested", result.Requested,
		"succeeded", len(result.Succeeded),
		"failed", len(result.Failed),
	)
	return result, nil
}

// validateCommand checks the shape of a single decision.
func validateCommand(cmd ProcessCommand) []string {
	var violations []string

	if !cmd.Action.Valid() {
		violations = append(violations, fmt.Sprintf("unknown action %q", cmd.Action))
	}
	if cmd.ActorID == "" {
		violations = append(violations, "actor id required")
	}

	if cmd.Action == ActionReject {
		if cmd.ReasonCode != nil && !cmd.ReasonCode.Valid() {
			violations = append(violations, fmt.Sprintf("unknown rejection reason %q", *cmd.ReasonCode))
		}
		if cmd.ReasonCode != nil && *cmd.ReasonCode == documents.ReasonOther &&
			(cmd.Notes == nil || *cmd.Notes == "") {
			violations = append(violations, "notes required when rejection reason is other")
		}
	}

	return violations
}

// validateBatch enforces the pre-mutation batch rules. Preview checks run
// only for documents that load successfully; a missing document is left
// for execution to report as a per-document failure.
func (p *processor) validateBatch(ctx context.Context, req BatchRequest) []string {
	var violations []string

	if len(req.DocumentIDs) == 0 {
		violations = append(violations, "document_ids must not be empty")
	}
	if len(req.DocumentIDs) > p.maxBatchSize {
		violations = append(violations, fmt.Sprintf(
			"batch size %d exceeds maximum %d",
			len(req.DocumentIDs), p.maxBatchSize,
		))
	}

	probe := ProcessCommand{
		Action:     req.Action,
		ReasonCode: req.ReasonCode,
		Notes:      req.Notes,
		ActorID:    req.ActorID,
	}
	violations = append(violations, validateCommand(probe)...)

	if req.SkipValidation || len(violations) > 0 {
		return violations
	}

	now := p.now()
	for _, id := range req.DocumentIDs {
		doc, err := p.docs.Find(ctx, id)
		if err != nil {
			continue
		}
		if doc.Status != documents.StatusPending {
			violations = append(violations, fmt.Sprintf("document %s is already %s", id, doc.Status))
		}
		if req.Action == ActionApprove && doc.Expired(now) {
			violations = append(violations, fmt.Sprintf("document %s is expired", id))
		}
	}

	return violations
}

func (p *processor) observe(action Action, outcome string) {
	if p.registry != nil {
		p.registry.ObserveDecision(string(action), outcome)
	}
}
