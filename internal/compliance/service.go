package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fibreflow/workforce/internal/documents"
	"github.com/fibreflow/workforce/pkg/metrics"
)

// System defines the public contract for compliance evaluation.
type System interface {
	Handler() *Handler

	// ForContractor reads the contractor's documents and evaluates them.
	ForContractor(ctx context.Context, contractorID uuid.UUID) (*Metrics, error)
}

type service struct {
	docs     documents.System
	logger   *slog.Logger
	registry *metrics.Registry
	now      func() time.Time
}

// New creates a compliance service over the document system.
func New(docs documents.System, logger *slog.Logger, registry *metrics.Registry) System {
	return &service{
		docs:     docs,
		logger:   logger.With("system", "compliance"),
		registry: registry,
		now:      time.Now,
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) ForContractor(ctx context.Context, contractorID uuid.UUID) (*Metrics, error) {
	docs, err := s.docs.ByContractor(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("load contractor documents: %w", err)
	}

	start := s.now()
	m := Evaluate(docs, start)

	if s.registry != nil {
		s.registry.ObserveEvaluation(time.Since(start))
		s.registry.SetComplianceScore(contractorID.String(), m.OverallScore)
	}

	return &m, nil
}
