package api

import (
	"github.com/fibreflow/workforce/internal/approval"
	"github.com/fibreflow/workforce/internal/compliance"
	"github.com/fibreflow/workforce/internal/config"
	"github.com/fibreflow/workforce/internal/contractors"
	"github.com/fibreflow/workforce/internal/documents"
	"github.com/fibreflow/workforce/internal/onboarding"
	"github.com/fibreflow/workforce/internal/queue"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Contractors contractors.System
	Documents   documents.System
	Compliance  compliance.System
	Approval    approval.System
	Queue       queue.System
	Onboarding  onboarding.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	contractorsSystem := contractors.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	docsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	complianceSystem := compliance.New(
		docsSystem,
		runtime.Logger,
		runtime.Metrics,
	)

	approvalSystem := approval.New(
		docsSystem,
		runtime.Logger,
		runtime.Metrics,
		cfg.Approval.MaxBatchSize,
		cfg.Approval.Workers,
	)

	queueSystem := queue.New(docsSystem, runtime.Logger)

	onboardingSystem := onboarding.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	return &Domain{
		Contractors: contractorsSystem,
		Documents:   docsSystem,
		Compliance:  complianceSystem,
		Approval:    approvalSystem,
		Queue:       queueSystem,
		Onboarding:  onboardingSystem,
	}
}
