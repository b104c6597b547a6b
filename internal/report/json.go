// Package report renders finding reports for machine consumption and
// for pasting into PRs and CI summaries.
package report

import (
	"github.com/harborline/shipshape/internal/finding"
	"github.com/harborline/shipshape/internal/output"
)

// Summary is the machine-readable envelope around a findings report.
type Summary struct {
	Errors   int               `json:"errors"`
	Warnings int               `json:"warnings"`
	Findings []finding.Finding `json:"findings"`
}

// NewSummary builds the JSON envelope for a report.
func NewSummary(r *finding.Report) Summary {
	findings := r.Findings
	if findings == nil {
		findings = []finding.Finding{}
	}
	return Summary{
		Errors:   r.Errors(),
		Warnings: r.Warnings(),
		Findings: findings,
	}
}

// WriteJSON writes the report as JSON through the printer.
func WriteJSON(printer *output.Printer, r *finding.Report) error {
	return printer.WriteJSON(NewSummary(r))
}
