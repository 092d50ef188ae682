package contractors

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fibreflow/workforce/pkg/pagination"
	"github.com/fibreflow/workforce/pkg/query"
	"github.com/fibreflow/workforce/pkg/repository"
)

// System defines the public contract for contractor operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Contractor], error)

	Find(ctx context.Context, id uuid.UUID) (*Contractor, error)

	// IDs returns every contractor id, for whole-fleet evaluation passes.
	IDs(ctx context.Context) ([]uuid.UUID, error)

	Create(ctx context.Context, cmd CreateCommand) (*Contractor, error)
	Update(ctx context.Context, cmd UpdateCommand) (*Contractor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// New creates a contractor repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "contractors"),
		pagination: pagination,
		now:        time.Now,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Contractor], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, searchFields...)

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count contractors: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanContractor)
	if err != nil {
		return nil, fmt.Errorf("query contractors: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Contractor, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanContractor)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) IDs(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := repository.QueryMany(
		ctx, r.db,
		"SELECT id FROM contractors ORDER BY id",
		nil,
		func(s repository.Scanner) (uuid.UUID, error) {
			var id uuid.UUID
			err := s.Scan(&id)
			return id, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query contractor ids: %w", err)
	}
	return ids, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Contractor, error) {
	if err := validateCreate(cmd); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO contractors(id, company_name, registration_number, contact_name, contact_email, contact_phone, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + returningColumns

	args := []any{
		uuid.New(),
		cmd.CompanyName,
		cmd.RegistrationNumber,
		cmd.ContactName,
		cmd.ContactEmail,
		cmd.ContactPhone,
		StatusActive,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Contractor, error) {
		return repository.QueryOne(ctx, tx, q, args, scanContractor)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("contractor registered", "id", c.ID, "company", c.CompanyName)
	return &c, nil
}

func (r *repo) Update(ctx context.Context, cmd UpdateCommand) (*Contractor, error) {
	if cmd.Status != nil && !cmd.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidCmd, *cmd.Status)
	}

	q := `
		UPDATE contractors
		SET company_name = COALESCE($2, company_name),
			contact_name = COALESCE($3, contact_name),
			contact_email = COALESCE($4, contact_email),
			contact_phone = COALESCE($5, contact_phone),
			status = COALESCE($6, status),
			updated_at = $7
		WHERE id = $1
		RETURNING ` + returningColumns

	args := []any{
		cmd.ID,
		cmd.CompanyName,
		cmd.ContactName,
		cmd.ContactEmail,
		cmd.ContactPhone,
		cmd.Status,
		r.now(),
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Contractor, error) {
		return repository.QueryOne(ctx, tx, q, args, scanContractor)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("contractor updated", "id", c.ID)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM contractors WHERE id = $1",
			id,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("contractor deleted", "id", id)
	return nil
}

func validateCreate(cmd CreateCommand) error {
	switch {
	case strings.TrimSpace(cmd.CompanyName) == "":
		return fmt.Errorf("%w: company name is required", ErrInvalidCmd)
	case strings.TrimSpace(cmd.RegistrationNumber) == "":
		return fmt.Errorf("%w: registration number is required", ErrInvalidCmd)
	case strings.TrimSpace(cmd.ContactEmail) == "":
		return fmt.Errorf("%w: contact email is required", ErrInvalidCmd)
	}
	return nil
}
