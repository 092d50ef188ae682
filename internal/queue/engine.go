package queue

import (
	"slices"
	"strings"
	"time"

	"github.com/fibreflow/workforce/internal/documents"
)

// Priority buckets by expiry urgency. Lower values are more urgent.
const (
	PriorityExpired  = 0
	PriorityUrgent   = 1
	PriorityExpiring = 2
	PriorityNormal   = 3
)

const (
	urgentWindowDays   = 7
	expiringWindowDays = 30
)

// Entry pairs a document with its derived queue priority.
type Entry struct {
	documents.Document
	Priority int `json:"priority"`
}

// Priority derives the expiry urgency bucket for a document. Documents
// without an expiry date are never urgent.
func Priority(doc documents.Document, now time.Time) int {
	days, ok := doc.DaysUntilExpiry(now)
	switch {
	case !ok:
		return PriorityNormal
	case days < 0:
		return PriorityExpired
	case days <= urgentWindowDays:
		return PriorityUrgent
	case days <= expiringWindowDays:
		return PriorityExpiring
	default:
		return PriorityNormal
	}
}

// Apply filters and sorts the document collection per the view, returning
// a fresh entry slice. The input is never mutated.
func Apply(view View, docs []documents.Document, now time.Time) []Entry {
	entries := make([]Entry, 0, len(docs))
	for _, doc := range docs {
		if !matches(view, doc, now) {
			continue
		}
		entries = append(entries, Entry{Document: doc, Priority: Priority(doc, now)})
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := compare(a, b, view.Sort, view.Direction); c != 0 {
			return c
		}
		if view.Secondary == "" || view.Secondary == view.Sort {
			return 0
		}
		return compare(a, b, view.Secondary, view.Direction)
	})

	return entries
}

func matches(view View, doc documents.Document, now time.Time) bool {
	switch view.Status {
	case StatusPending:
		if doc.Status != documents.StatusPending {
			return false
		}
	case StatusApproved:
		if doc.Status != documents.StatusVerified {
			return false
		}
	case StatusRejected:
		if doc.Status != documents.StatusRejected {
			return false
		}
	case StatusExpired:
		if !doc.Expired(now) {
			return false
		}
	}

	if view.Type != "" && doc.Type != view.Type {
		return false
	}

	switch view.Expiry {
	case ExpiryValid:
		if days, ok := doc.DaysUntilExpiry(now); ok && days <= expiringWindowDays {
			return false
		}
	case ExpiryExpiring:
		days, ok := doc.DaysUntilExpiry(now)
		if !ok || days < 0 || days > expiringWindowDays {
			return false
		}
	case ExpiryExpired:
		if !doc.Expired(now) {
			return false
		}
	}

	return matchesSearch(view.Search, doc)
}

func matchesSearch(term string, doc documents.Document) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)

	fields := []string{doc.Name, string(doc.Type)}
	if doc.DocumentNumber != nil {
		fields = append(fields, *doc.DocumentNumber)
	}
	if doc.Notes != nil {
		fields = append(fields, *doc.Notes)
	}

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// compare orders two entries on a single field. Entries with a null value
// sort after non-null entries regardless of direction; direction only
// flips comparisons between present values.
func compare(a, b Entry, field SortField, direction SortDirection) int {
	aValue, aNull := fieldValue(a, field)
	bValue, bNull := fieldValue(b, field)

	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return 1
	case bNull:
		return -1
	}

	c := strings.Compare(aValue, bValue)
	if direction == SortDesc {
		c = -c
	}
	return c
}

// fieldValue renders the sort key for a field as an ordered string. Times
// use RFC 3339, which orders lexically; priority is a single digit.
func fieldValue(e Entry, field SortField) (string, bool) {
	switch field {
	case SortName:
		return strings.ToLower(e.Name), false
	case SortType:
		return string(e.Type), false
	case SortDocumentNumber:
		if e.DocumentNumber == nil {
			return "", true
		}
		return strings.ToLower(*e.DocumentNumber), false
	case SortStatus:
		return string(e.Status), false
	case SortExpiryDate:
		if e.ExpiryDate == nil {
			return "", true
		}
		return e.ExpiryDate.UTC().Format(time.RFC3339), false
	case SortCreatedAt:
		return e.CreatedAt.UTC().Format(time.RFC3339), false
	case SortPriority:
		return string(rune('0' + e.Priority)), false
	default:
		return "", true
	}
}
