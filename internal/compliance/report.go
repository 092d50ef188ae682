package compliance

import (
	"fmt"
	"strings"
)

// reportHeader is the fixed header row of the exported compliance report.
const reportHeader = "Document Type, Compliance Score, Total Documents, Compliant Documents, Issues Count"

// RenderReport serializes metrics as the downloadable CSV compliance
// report: the header row, one row per category, a blank line, and three
// summary lines. Values are numeric or enumerated and never contain
// commas, so rows are assembled directly rather than through a CSV writer
// (which could not reproduce the report's historical header spacing).
func RenderReport(m Metrics) []byte {
	var b strings.Builder

	b.WriteString(reportHeader + "\n")

	for _, c := range m.Categories {
		fmt.Fprintf(
			&b, "%s,%d,%d,%d,%d\n",
			c.Type, c.Score, c.Total, c.Compliant, len(c.Issues),
		)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Overall Compliance Score,%d%%\n", m.OverallScore)
	fmt.Fprintf(&b, "Overall Status,%s\n", m.OverallStatus)
	fmt.Fprintf(&b, "Total Issues,%d\n", m.TotalIssues)

	return []byte(b.String())
}
