package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fibreflow/workforce/internal/documents"
)

// System defines the public contract for queue views.
type System interface {
	Handler() *Handler

	// ForContractor reads the contractor's documents and applies the view.
	ForContractor(ctx context.Context, contractorID uuid.UUID, view View) ([]Entry, error)
}

type service struct {
	docs   documents.System
	logger *slog.Logger
	now    func() time.Time
}

// New creates a queue service over the document system.
func New(docs documents.System, logger *slog.Logger) System {
	return &service{
		docs:   docs,
		logger: logger.With("system", "queue"),
		now:    time.Now,
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) ForContractor(ctx context.Context, contractorID uuid.UUID, view View) ([]Entry, error) {
	docs, err := s.docs.ByContractor(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("load contractor documents: %w", err)
	}

	return Apply(view, docs, s.now()), nil
}
