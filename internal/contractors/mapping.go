package contractors

import (
	"net/url"

	"github.com/fibreflow/workforce/pkg/query"
	"github.com/fibreflow/workforce/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "contractors", "c").
	Project("id", "ID").
	Project("company_name", "CompanyName").
	Project("registration_number", "RegistrationNumber").
	Project("contact_name", "ContactName").
	Project("contact_email", "ContactEmail").
	Project("contact_phone", "ContactPhone").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

const returningColumns = `id, company_name, registration_number, contact_name, contact_email, contact_phone, status, created_at, updated_at`

var defaultSort = query.SortField{Field: "CompanyName"}

var searchFields = []string{"CompanyName", "RegistrationNumber", "ContactName", "ContactEmail"}

// Filters contains optional filtering criteria for contractor queries.
type Filters struct {
	Status *Status `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if s := Status(values.Get("status")); s.Valid() {
		f.Status = &s
	}
	return f
}

func scanContractor(s repository.Scanner) (Contractor, error) {
	var c Contractor
	err := s.Scan(
		&c.ID,
		&c.CompanyName,
		&c.RegistrationNumber,
		&c.ContactName,
		&c.ContactEmail,
		&c.ContactPhone,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}
