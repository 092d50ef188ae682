package contractors

import (
	"time"

	"github.com/google/uuid"
)

// Status is the contractor account lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusInactive  Status = "inactive"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusInactive:
		return true
	}
	return false
}

// Contractor is a registered contracting company.
type Contractor struct {
	ID                 uuid.UUID `json:"id"`
	CompanyName        string    `json:"company_name"`
	RegistrationNumber string    `json:"registration_number"`
	ContactName        *string   `json:"contact_name,omitempty"`
	ContactEmail       string    `json:"contact_email"`
	ContactPhone       *string   `json:"contact_phone,omitempty"`
	Status             Status    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CreateCommand carries the fields for registering a contractor.
type CreateCommand struct {
	CompanyName        string  `json:"company_name"`
	RegistrationNumber string  `json:"registration_number"`
	ContactName        *string `json:"contact_name,omitempty"`
	ContactEmail       string  `json:"contact_email"`
	ContactPhone       *string `json:"contact_phone,omitempty"`
}

// UpdateCommand carries the mutable contractor fields. Nil fields are
// left unchanged.
type UpdateCommand struct {
	ID           uuid.UUID `json:"-"`
	CompanyName  *string   `json:"company_name,omitempty"`
	ContactName  *string   `json:"contact_name,omitempty"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
	Status       *Status   `json:"status,omitempty"`
}
