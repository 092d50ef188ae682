package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/fibreflow/workforce/pkg/pagination"
)

// System defines the public contract for document domain operations.
// WriteVerification is the only status mutation path; it is reserved
// for the approval processor.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	ByContractor(ctx context.Context, contractorID uuid.UUID) ([]Document, error)
	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	WriteVerification(ctx context.Context, cmd VerificationCommand) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
