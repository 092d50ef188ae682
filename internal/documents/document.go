// Package documents implements the compliance document domain for FibreFlow.
// It provides types, data access, and business logic for document upload,
// registration, metadata management, blob storage integration, and the
// verification write path used by the approval processor.
package documents

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Status is the verification lifecycle state of a document.
// Every document starts as StatusPending at upload; only the approval
// processor transitions it to StatusVerified or StatusRejected.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known lifecycle status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// Type classifies a compliance document.
type Type string

const (
	TypeTaxClearance        Type = "tax_clearance"
	TypeInsurance           Type = "insurance"
	TypeCompanyRegistration Type = "company_registration"
	TypeSafetyCertificate   Type = "safety_certificate"
	TypeBEECertificate      Type = "bee_certificate"
	TypeBankConfirmation    Type = "bank_confirmation"
	TypeOther               Type = "other"
)

// Types lists all known document types.
var Types = []Type{
	TypeTaxClearance,
	TypeInsurance,
	TypeCompanyRegistration,
	TypeSafetyCertificate,
	TypeBEECertificate,
	TypeBankConfirmation,
	TypeOther,
}

// Valid reports whether t is a known document type.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// RejectionReason codes why a document was rejected.
type RejectionReason string

const (
	ReasonExpired               RejectionReason = "expired"
	ReasonInvalidFormat         RejectionReason = "invalid_format"
	ReasonPoorQuality           RejectionReason = "poor_quality"
	ReasonIncompleteInformation RejectionReason = "incomplete_information"
	ReasonIncorrectDocumentType RejectionReason = "incorrect_document_type"
	ReasonMissingSignature      RejectionReason = "missing_signature"
	ReasonInvalidIssuer         RejectionReason = "invalid_issuer"
	ReasonDuplicate             RejectionReason = "duplicate"
	ReasonOther                 RejectionReason = "other"
)

// Valid reports whether r is a known rejection reason code.
func (r RejectionReason) Valid() bool {
	switch r {
	case ReasonExpired, ReasonInvalidFormat, ReasonPoorQuality,
		ReasonIncompleteInformation, ReasonIncorrectDocumentType,
		ReasonMissingSignature, ReasonInvalidIssuer, ReasonDuplicate,
		ReasonOther:
		return true
	}
	return false
}

// Document represents one uploaded compliance artifact and its verification state.
// Verified or rejected documents always carry VerifiedBy and VerifiedAt;
// a rejection with ReasonOther always carries non-empty Notes. Both
// invariants are enforced by the approval processor, the only writer of
// these fields.
type Document struct {
	ID              uuid.UUID        `json:"id"`
	ContractorID    uuid.UUID        `json:"contractor_id"`
	Type            Type             `json:"type"`
	Name            string           `json:"name"`
	DocumentNumber  *string          `json:"document_number,omitempty"`
	Filename        string           `json:"filename"`
	ContentType     string           `json:"content_type"`
	SizeBytes       int64            `json:"size_bytes"`
	PageCount       *int             `json:"page_count,omitempty"`
	StorageKey      string           `json:"storage_key"`
	Status          Status           `json:"status"`
	ExpiryDate      *time.Time       `json:"expiry_date,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	VerifiedAt      *time.Time       `json:"verified_at,omitempty"`
	VerifiedBy      *string          `json:"verified_by,omitempty"`
	RejectionReason *RejectionReason `json:"rejection_reason,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

// DaysUntilExpiry returns the ceiling of whole days between now and the
// expiry date. The second return is false when no expiry date is set.
// Expired documents yield a negative value.
func (d *Document) DaysUntilExpiry(now time.Time) (int, bool) {
	if d.ExpiryDate == nil {
		return 0, false
	}
	return int(math.Ceil(d.ExpiryDate.Sub(now).Hours() / 24)), true
}

// Expired reports whether the document's expiry date is in the past.
// Documents without an expiry date never expire.
func (d *Document) Expired(now time.Time) bool {
	return d.ExpiryDate != nil && d.ExpiryDate.Before(now)
}

// CreateCommand carries the data needed to upload and register a new document.
// Data holds the raw file bytes. PageCount is optional and may be extracted
// by the caller via pdfcpu; nil values are stored as NULL. The created
// document always starts in StatusPending.
type CreateCommand struct {
	Data           []byte
	ContractorID   uuid.UUID
	Type           Type
	Name           string
	DocumentNumber *string
	Filename       string
	ContentType    string
	ExpiryDate     *time.Time
	PageCount      *int
}

// VerificationCommand carries a decided verification outcome to persist.
// Used exclusively by the approval processor.
type VerificationCommand struct {
	DocumentID      uuid.UUID
	Status          Status
	ActorID         string
	DecidedAt       time.Time
	RejectionReason *RejectionReason
	Notes           *string
}
