package documents

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/fibreflow/workforce/pkg/query"
	"github.com/fibreflow/workforce/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("contractor_id", "ContractorID").
	Project("doc_type", "Type").
	Project("name", "Name").
	Project("document_number", "DocumentNumber").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("status", "Status").
	Project("expiry_date", "ExpiryDate").
	Project("created_at", "CreatedAt").
	Project("verified_at", "VerifiedAt").
	Project("verified_by", "VerifiedBy").
	Project("rejection_reason", "RejectionReason").
	Project("notes", "Notes")

// returningColumns lists documents columns for INSERT/UPDATE RETURNING
// clauses, where the projection's table alias does not apply. Order must
// match scanDocument.
const returningColumns = `id, contractor_id, doc_type, name, document_number, filename, content_type, size_bytes, page_count, storage_key, status, expiry_date, created_at, verified_at, verified_by, rejection_reason, notes`

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// searchFields are matched case-insensitively by free-text search.
var searchFields = []string{"Name", "Type", "DocumentNumber", "Notes"}

// ExpiryBucket selects documents by their position in the expiry window.
type ExpiryBucket string

const (
	// ExpiryAny applies no expiry condition.
	ExpiryAny ExpiryBucket = ""
	// ExpiryValid matches documents with no expiry date or one more than
	// thirty days out.
	ExpiryValid ExpiryBucket = "valid"
	// ExpiryExpiring matches documents expiring within thirty days.
	ExpiryExpiring ExpiryBucket = "expiring"
	// ExpiryExpired matches documents whose expiry date has passed.
	ExpiryExpired ExpiryBucket = "expired"
)

// ExpiryWindow is the horizon for the "expiring" bucket.
const ExpiryWindow = 30 * 24 * time.Hour

// Filters contains optional filtering criteria for document queries.
// Nil or zero fields are ignored. Expiry buckets are evaluated against
// the now argument passed to Apply.
type Filters struct {
	Status       *Status      `json:"status,omitempty"`
	ContractorID *uuid.UUID   `json:"contractor_id,omitempty"`
	Type         *Type        `json:"type,omitempty"`
	Expiry       ExpiryBucket `json:"expiry,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder, now time.Time) *query.Builder {
	b.
		WhereEquals("Status", f.Status).
		WhereEquals("ContractorID", f.ContractorID).
		WhereEquals("Type", f.Type)

	switch f.Expiry {
	case ExpiryExpired:
		b.WhereBefore("ExpiryDate", now)
	case ExpiryExpiring:
		b.WhereAtOrAfter("ExpiryDate", now).
			WhereNotAfter("ExpiryDate", now.Add(ExpiryWindow))
	case ExpiryValid:
		b.WhereNullOrAfter("ExpiryDate", now.Add(ExpiryWindow))
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Unknown enum values are ignored rather than rejected.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := Status(values.Get("status")); s.Valid() {
		f.Status = &s
	}

	if id, err := uuid.Parse(values.Get("contractor_id")); err == nil {
		f.ContractorID = &id
	}

	if t := Type(values.Get("type")); t.Valid() {
		f.Type = &t
	}

	switch b := ExpiryBucket(values.Get("expiry")); b {
	case ExpiryValid, ExpiryExpiring, ExpiryExpired:
		f.Expiry = b
	}

	return f
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.ContractorID,
		&d.Type,
		&d.Name,
		&d.DocumentNumber,
		&d.Filename,
		&d.ContentType,
		&d.SizeBytes,
		&d.PageCount,
		&d.StorageKey,
		&d.Status,
		&d.ExpiryDate,
		&d.CreatedAt,
		&d.VerifiedAt,
		&d.VerifiedBy,
		&d.RejectionReason,
		&d.Notes,
	)
	return d, err
}
