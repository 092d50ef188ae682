package compliance

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"time"

	"github.com/fibreflow/workforce/internal/documents"
)

const (
	// expiryWarningDays is the horizon within which an expiry issue is raised.
	expiryWarningDays = 30
	// expiryUrgentDays is the horizon within which the issue escalates to high.
	expiryUrgentDays = 7
	// minFileSizeBytes is the quality heuristic threshold for suspiciously small files.
	minFileSizeBytes = 50_000
)

// Evaluate computes compliance metrics for the given document set at the
// given instant. The evaluation partitions documents by type, runs three
// independent rule checks per document, scores each category, aggregates
// the overall score, and derives recommendations.
//
// A document counts as compliant unless it failed the verification-state
// check (pending or rejected) or its expiry date has passed. A verified
// document that merely expires soon stays compliant; a verified document
// that has already expired does not.
func Evaluate(docs []documents.Document, now time.Time) Metrics {
	byType := make(map[documents.Type][]documents.Document)
	for _, d := range docs {
		byType[d.Type] = append(byType[d.Type], d)
	}

	types := make([]documents.Type, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	slices.Sort(types)

	m := Metrics{
		Categories:  make([]CategoryMetrics, 0, len(types)),
		EvaluatedAt: now,
	}

	var allIssues []Issue

	for _, t := range types {
		category := CategoryMetrics{
			Type:   t,
			Issues: []Issue{},
		}

		for _, d := range byType[t] {
			issues, compliant := evaluateDocument(&d, now)
			category.Issues = append(category.Issues, issues...)
			category.Total++
			if compliant {
				category.Compliant++
			}
		}

		category.Score = score(category.Compliant, category.Total)

		m.Categories = append(m.Categories, category)
		m.TotalDocuments += category.Total
		m.CompliantDocuments += category.Compliant
		m.TotalIssues += len(category.Issues)
		allIssues = append(allIssues, category.Issues...)
	}

	m.OverallScore = score(m.CompliantDocuments, m.TotalDocuments)
	m.OverallStatus = bucket(m.OverallScore)
	m.Recommendations = recommend(m.OverallScore, allIssues)

	return m
}

// evaluateDocument runs the three independent rule checks against one
// document and reports the derived issues plus the compliance flag.
func evaluateDocument(d *documents.Document, now time.Time) ([]Issue, bool) {
	var issues []Issue
	compliant := true

	// Verification-state check.
	switch d.Status {
	case documents.StatusPending:
		issues = append(issues, newIssue(
			d, IssueQualityCheckFailed, SeverityMedium,
			fmt.Sprintf("Document %q is pending verification", d.Name),
			"Review and verify the document",
		))
		compliant = false
	case documents.StatusRejected:
		reason := "No reason provided"
		if d.RejectionReason != nil {
			reason = string(*d.RejectionReason)
		}
		issues = append(issues, newIssue(
			d, IssueRegulatoryCompliance, SeverityHigh,
			fmt.Sprintf("Document %q was rejected: %s", d.Name, reason),
			"Resolve the rejection reason and resubmit",
		))
		compliant = false
	}

	// Expiry check. A past expiry date overrides the compliant flag even
	// for verified documents; an upcoming expiry only raises a warning.
	if days, ok := d.DaysUntilExpiry(now); ok {
		switch {
		case days < 0:
			issues = append(issues, newIssue(
				d, IssueExpiryWarning, SeverityCritical,
				fmt.Sprintf("Document %q expired %d day(s) ago", d.Name, -days),
				"Renew the document immediately",
			))
			compliant = false
		case days <= expiryWarningDays:
			severity := SeverityMedium
			if days <= expiryUrgentDays {
				severity = SeverityHigh
			}
			issues = append(issues, newIssue(
				d, IssueExpiryWarning, severity,
				fmt.Sprintf("Document %q expires in %d day(s)", d.Name, days),
				"Plan renewal before the expiry date",
			))
		}
	}

	// Quality heuristic. Informational only; never affects the flag.
	if d.SizeBytes > 0 && d.SizeBytes < minFileSizeBytes {
		issues = append(issues, newIssue(
			d, IssueQualityCheckFailed, SeverityLow,
			fmt.Sprintf("Document %q file size is unusually small", d.Name),
			"Confirm the upload is complete and legible",
		))
	}

	return issues, compliant
}

func newIssue(d *documents.Document, t IssueType, s Severity, message, action string) Issue {
	return Issue{
		ID:              fmt.Sprintf("%s:%s", d.ID, t),
		DocumentID:      d.ID.String(),
		Type:            t,
		Severity:        s,
		Message:         message,
		SuggestedAction: action,
	}
}

// score rounds 100·compliant/total to the nearest integer; an empty set
// scores a perfect 100.
func score(compliant, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * float64(compliant) / float64(total)))
}

func bucket(score int) OverallStatus {
	switch {
	case score >= 95:
		return StatusExcellent
	case score >= 80:
		return StatusGood
	case score >= 60:
		return StatusWarning
	}
	return StatusCritical
}

// recommend derives the ordered recommendation list. Predicates are
// evaluated in a fixed order; when none hold, the single maintenance
// fallback is returned.
func recommend(overallScore int, issues []Issue) []string {
	var (
		expired  int
		expiring int
		rejected int
	)

	for _, issue := range issues {
		if issue.Type == IssueExpiryWarning {
			if issue.Severity == SeverityCritical {
				expired++
			} else {
				expiring++
			}
		}
		if strings.Contains(issue.Message, "rejected") {
			rejected++
		}
	}

	var recs []string

	if overallScore < 80 {
		recs = append(recs, "Prioritize resolving pending document approvals.")
	}
	if expired > 0 {
		recs = append(recs, fmt.Sprintf("Immediately renew %d expired document(s)", expired))
	}
	if expiring > 0 {
		recs = append(recs, fmt.Sprintf("Plan renewal for %d expiring document(s)", expiring))
	}
	if rejected > 0 {
		recs = append(recs, fmt.Sprintf("Address %d rejected document(s)", rejected))
	}

	if len(recs) == 0 {
		recs = append(recs, "Maintain current compliance standards")
	}

	return recs
}
