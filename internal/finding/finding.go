// Package finding defines the shared result model emitted by every
// shipshape check.
package finding

import (
	"fmt"
	"sort"
)

// Severity classifies how a finding affects the exit code.
type Severity string

const (
	// SeverityError findings fail the run (exit code 1).
	SeverityError Severity = "error"
	// SeverityWarning findings are reported but do not fail the run
	// unless --strict is set.
	SeverityWarning Severity = "warning"
)

// Finding is a single violation reported by a check.
type Finding struct {
	Check    string   `json:"check"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path,omitempty"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
	Hint     string   `json:"hint,omitempty"`
}

// Location renders "path:line" (or just path) for human output.
func (f Finding) Location() string {
	if f.Path == "" {
		return ""
	}
	if f.Line > 0 {
		return fmt.Sprintf("%s:%d", f.Path, f.Line)
	}
	return f.Path
}

// Report aggregates findings from one or more checks.
type Report struct {
	Findings []Finding `json:"findings"`
}

// Add appends findings to the report.
func (r *Report) Add(findings ...Finding) {
	r.Findings = append(r.Findings, findings...)
}

// Merge appends all findings from another report.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Findings = append(r.Findings, other.Findings...)
}

// Errors returns the number of error-severity findings.
func (r *Report) Errors() int {
	count := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			count++
		}
	}
	return count
}

// Warnings returns the number of warning-severity findings.
func (r *Report) Warnings() int {
	return len(r.Findings) - r.Errors()
}

// Failed reports whether the run should exit non-zero.
// With strict set, warnings also count as failures.
func (r *Report) Failed(strict bool) bool {
	if r.Errors() > 0 {
		return true
	}
	return strict && r.Warnings() > 0
}

// Sort orders findings by path, then line, then rule.
// Findings without a path sort after located ones within their check.
func (r *Report) Sort() {
	sort.SliceStable(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.Check != b.Check {
			return a.Check < b.Check
		}
		if a.Path != b.Path {
			if a.Path == "" {
				return false
			}
			if b.Path == "" {
				return true
			}
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})
}

// ByCheck groups findings by check name, preserving report order within
// each group. The returned keys slice preserves first-seen order.
func (r *Report) ByCheck() ([]string, map[string][]Finding) {
	groups := make(map[string][]Finding)
	var keys []string
	for _, f := range r.Findings {
		if _, seen := groups[f.Check]; !seen {
			keys = append(keys, f.Check)
		}
		groups[f.Check] = append(groups[f.Check], f)
	}
	return keys, groups
}
