// Package compliance implements the compliance rule evaluator for FibreFlow.
// It derives per-category and overall compliance scores, issues, and
// recommendations from a contractor's document set. Evaluation is a pure
// function of its input: issues and metrics are recomputed on every pass
// and never persisted.
package compliance

import (
	"time"

	"github.com/fibreflow/workforce/internal/documents"
)

// IssueType categorizes a derived compliance finding.
type IssueType string

const (
	IssueExpiryWarning        IssueType = "expiry_warning"
	IssueMissingDocument      IssueType = "missing_document"
	IssueInvalidFormat        IssueType = "invalid_format"
	IssueQualityCheckFailed   IssueType = "quality_check_failed"
	IssueRegulatoryCompliance IssueType = "regulatory_compliance"
	IssueSecurityConcern      IssueType = "security_concern"
)

// Severity grades how urgently an issue needs attention.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Issue is a derived compliance finding. Issues are never stored; their
// IDs are deterministic (source document + issue type) so repeated
// evaluation passes produce identical results for identical input.
type Issue struct {
	ID              string    `json:"id"`
	DocumentID      string    `json:"document_id"`
	Type            IssueType `json:"type"`
	Severity        Severity  `json:"severity"`
	Message         string    `json:"message"`
	SuggestedAction string    `json:"suggested_action"`
}

// CategoryMetrics aggregates compliance results for one document type.
type CategoryMetrics struct {
	Type      documents.Type `json:"type"`
	Score     int            `json:"score"`
	Total     int            `json:"total"`
	Compliant int            `json:"compliant"`
	Issues    []Issue        `json:"issues"`
}

// OverallStatus buckets the overall compliance score.
type OverallStatus string

const (
	StatusExcellent OverallStatus = "excellent"
	StatusGood      OverallStatus = "good"
	StatusWarning   OverallStatus = "warning"
	StatusCritical  OverallStatus = "critical"
)

// Metrics is the full result of one compliance evaluation pass.
type Metrics struct {
	Categories         []CategoryMetrics `json:"categories"`
	OverallScore       int               `json:"overall_score"`
	OverallStatus      OverallStatus     `json:"overall_status"`
	TotalDocuments     int               `json:"total_documents"`
	CompliantDocuments int               `json:"compliant_documents"`
	TotalIssues        int               `json:"total_issues"`
	Recommendations    []string          `json:"recommendations"`
	EvaluatedAt        time.Time         `json:"evaluated_at"`
}
