package compliance

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fibreflow/workforce/pkg/lifecycle"
)

// ContractorSource supplies the contractor ids to re-evaluate.
type ContractorSource interface {
	IDs(ctx context.Context) ([]uuid.UUID, error)
}

// Monitor periodically re-runs the compliance evaluation pass for every
// contractor. Passes run sequentially on a single goroutine, so ticks can
// never overlap: when a pass outlives the interval, intervening ticks are
// dropped and the next pass starts from the following tick.
type Monitor struct {
	compliance  System
	contractors ContractorSource
	logger      *slog.Logger
	interval    time.Duration
}

// NewMonitor creates a Monitor with the given re-evaluation interval.
func NewMonitor(
	compliance System,
	contractors ContractorSource,
	logger *slog.Logger,
	interval time.Duration,
) *Monitor {
	return &Monitor{
		compliance:  compliance,
		contractors: contractors,
		logger:      logger.With("system", "compliance-monitor"),
		interval:    interval,
	}
}

// Start launches the evaluation loop, stopping it on lifecycle shutdown.
func (m *Monitor) Start(lc *lifecycle.Coordinator) error {
	m.logger.Info("starting compliance monitor", "interval", m.interval)

	go m.run(lc.Context())

	return nil
}

func (m *Monitor) run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("compliance monitor stopped")
			return
		case <-ticker.C:
			m.pass(ctx)
		}
	}
}

func (m *Monitor) pass(ctx context.Context) {
	ids, err := m.contractors.IDs(ctx)
	if err != nil {
		m.logger.Error("contractor listing failed", "error", err)
		return
	}

	start := time.Now()
	evaluated := 0

	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}
		if _, err := m.compliance.ForContractor(ctx, id); err != nil {
			m.logger.Warn("evaluation failed", "contractor", id, "error", err)
			continue
		}
		evaluated++
	}

	m.logger.Info(
		"compliance pass complete",
		"contractors", evaluated,
		"duration", time.Since(start),
	)
}
