package queue

import (
	"fmt"
	"net/url"

	"github.com/fibreflow/workforce/internal/documents"
)

// StatusFilter selects documents by verification lifecycle, with "expired"
// matching on expiry date rather than status.
type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusPending  StatusFilter = "pending"
	StatusApproved StatusFilter = "approved"
	StatusRejected StatusFilter = "rejected"
	StatusExpired  StatusFilter = "expired"
)

func (s StatusFilter) Valid() bool {
	switch s {
	case StatusAll, StatusPending, StatusApproved, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// ExpiryFilter selects documents by expiry bucket.
type ExpiryFilter string

const (
	ExpiryAll      ExpiryFilter = "all"
	ExpiryValid    ExpiryFilter = "valid"
	ExpiryExpiring ExpiryFilter = "expiring"
	ExpiryExpired  ExpiryFilter = "expired"
)

func (e ExpiryFilter) Valid() bool {
	switch e {
	case ExpiryAll, ExpiryValid, ExpiryExpiring, ExpiryExpired:
		return true
	}
	return false
}

// SortField names a sortable document attribute. Priority is the derived
// expiry urgency bucket, not a stored column.
type SortField string

const (
	SortName           SortField = "name"
	SortType           SortField = "type"
	SortDocumentNumber SortField = "document_number"
	SortStatus         SortField = "status"
	SortExpiryDate     SortField = "expiry_date"
	SortCreatedAt      SortField = "created_at"
	SortPriority       SortField = "priority"
)

func (f SortField) Valid() bool {
	switch f {
	case SortName, SortType, SortDocumentNumber, SortStatus,
		SortExpiryDate, SortCreatedAt, SortPriority:
		return true
	}
	return false
}

// SortDirection orders ascending or descending. Null values always sort
// last regardless of direction.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// View is an immutable description of one queue rendering: filters plus
// sort. Changing criteria produces a new View; applying a View never
// mutates the underlying documents.
type View struct {
	Status    StatusFilter
	Type      documents.Type
	Expiry    ExpiryFilter
	Search    string
	Sort      SortField
	Direction SortDirection
	Secondary SortField
}

// DefaultView sorts by derived priority, most urgent first.
func DefaultView() View {
	return View{
		Status:    StatusAll,
		Expiry:    ExpiryAll,
		Sort:      SortPriority,
		Direction: SortAsc,
		Secondary: SortExpiryDate,
	}
}

// ViewFromQuery builds a View from request query parameters, starting from
// DefaultView for any parameter not supplied.
func ViewFromQuery(query url.Values) (View, error) {
	view := DefaultView()

	if value := query.Get("status"); value != "" {
		status := StatusFilter(value)
		if !status.Valid() {
			return View{}, fmt.Errorf("%w: status %q", ErrInvalidView, value)
		}
		view.Status = status
	}

	if value := query.Get("type"); value != "" {
		docType := documents.Type(value)
		if !docType.Valid() {
			return View{}, fmt.Errorf("%w: type %q", ErrInvalidView, value)
		}
		view.Type = docType
	}

	if value := query.Get("expiry"); value != "" {
		expiry := ExpiryFilter(value)
		if !expiry.Valid() {
			return View{}, fmt.Errorf("%w: expiry %q", ErrInvalidView, value)
		}
		view.Expiry = expiry
	}

	view.Search = query.Get("search")

	if value := query.Get("sort"); value != "" {
		field := SortField(value)
		if !field.Valid() {
			return View{}, fmt.Errorf("%w: sort field %q", ErrInvalidView, value)
		}
		view.Sort = field
		view.Secondary = ""
	}

	if value := query.Get("direction"); value != "" {
		direction := SortDirection(value)
		if !direction.Valid() {
			return View{}, fmt.Errorf("%w: direction %q", ErrInvalidView, value)
		}
		view.Direction = direction
	}

	if value := query.Get("secondary"); value != "" {
		field := SortField(value)
		if !field.Valid() {
			return View{}, fmt.Errorf("%w: secondary sort field %q", ErrInvalidView, value)
		}
		view.Secondary = field
	}

	return view, nil
}
