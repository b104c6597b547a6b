package report

import (
	"fmt"
	"strings"

	"github.com/harborline/shipshape/internal/finding"
)

// FormatMarkdown renders a findings report as a markdown document, one
// section per check, suitable for a PR comment or CI job summary.
func FormatMarkdown(r *finding.Report) string {
	var builder strings.Builder

	builder.WriteString("# shipshape report\n\n")
	writeTotals(&builder, r)

	checks, groups := r.ByCheck()
	for _, check := range checks {
		writeCheckSection(&builder, check, groups[check])
	}

	return builder.String()
}

// writeTotals writes the one-line summary under the title.
func writeTotals(builder *strings.Builder, r *finding.Report) {
	if len(r.Findings) == 0 {
		builder.WriteString("All checks passed.\n")
		return
	}
	fmt.Fprintf(builder, "%d error(s), %d warning(s).\n", r.Errors(), r.Warnings())
}

// writeCheckSection writes one check's findings as a bullet list.
func writeCheckSection(builder *strings.Builder, check string, findings []finding.Finding) {
	fmt.Fprintf(builder, "\n## %s\n\n", check)
	for _, f := range findings {
		builder.WriteString("- ")
		if f.Severity == finding.SeverityWarning {
			builder.WriteString("(warning) ")
		}
		if loc := f.Location(); loc != "" {
			fmt.Fprintf(builder, "`%s` ", loc)
		}
		builder.WriteString(f.Message)
		if f.Hint != "" {
			fmt.Fprintf(builder, " (%s)", f.Hint)
		}
		builder.WriteString("\n")
	}
}
