package adr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harborline/shipshape/internal/config"
	"github.com/harborline/shipshape/internal/finding"
)

const validADR = `---
title: Use PostgreSQL
status: accepted
date: 2024-03-01
---

# Use PostgreSQL

## Context

We need a relational store.

## Decision

PostgreSQL.

## Consequences

Operational familiarity.
`

// writeADRs populates an ADR directory under a temp root.
func writeADRs(t *testing.T, files map[string]string) *Checker {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "docs", "adr")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create ADR dir: %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return &Checker{
		Root: root,
		Config: config.ADRConfig{
			Dir:      "docs/adr",
			Statuses: []string{"proposed", "accepted", "rejected", "deprecated", "superseded"},
		},
	}
}

// rulesOf collects the rule of every finding.
func rulesOf(report *finding.Report) []string {
	rules := make([]string, 0, len(report.Findings))
	for _, f := range report.Findings {
		rules = append(rules, f.Rule)
	}
	return rules
}

// hasRule reports whether any finding carries the given rule.
func hasRule(report *finding.Report, rule string) bool {
	for _, f := range report.Findings {
		if f.Rule == rule {
			return true
		}
	}
	return false
}

func TestCheck(t *testing.T) {
	t.Run("valid record passes", func(t *testing.T) {
		checker := writeADRs(t, map[string]string{"0001-use-postgresql.md": validADR})
		report, err := checker.Check()
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if len(report.Findings) != 0 {
			t.Errorf("expected no findings, got %v", rulesOf(report))
		}
	})

	t.Run("readme ignored", func(t *testing.T) {
		checker := writeADRs(t, map[string]string{
			"0001-use-postgresql.md": validADR,
			"README.md":              "# ADR index\n",
		})
		report, err := checker.Check()
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if len(report.Findings) != 0 {
			t.Errorf("expected no findings, got %v", rulesOf(report))
		}
	})

	t.Run("missing directory warns", func(t *testing.T) {
		checker := &Checker{
			Root:   t.TempDir(),
			Config: config.ADRConfig{Dir: "docs/adr", Statuses: []string{"accepted"}},
		}
		report, err := checker.Check()
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if len(report.Findings) != 1 || report.Findings[0].Severity != finding.SeverityWarning {
			t.Errorf("expected one warning, got %+v", report.Findings)
		}
	})

	t.Run("bad filename", func(t *testing.T) {
		checker := writeADRs(t, map[string]string{"UsePostgres.md": validADR})
		report, err := checker.Check()
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if !hasRule(report, "filename") {
			t.Errorf("expected filename finding, got %v", rulesOf(report))
		}
	})

	t.Run("missing frontmatter", func(t *testing.T) {
		checker := writeADRs(t, map[string]string{
			"0001-no-front.md": "# No frontmatter\n\n## Context\n\n## Decision\n\n## Consequences\n",
		})
		report, err := checker.Check()
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if !hasRule(report, "frontmatter") {
			t.Errorf("expected frontmatter finding, got %v", rulesOf(report))
		}
	})

	t.Run("bad date", func(t *testing.T) {
		adr := `---
title: X
status: accepted
date: 01/03/2024
---

## Context

## Decision

## Consequences
`
		checker := writeADRs(t, map[string]string{"0001-x.md": adr})
		report, err := checker.Check()
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if !hasRule(report, "frontmatter") {
			t.Errorf("expected date finding, got %v", rulesOf(report))
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		adr := `---
title: X
status: done
date: 2024-03-01
---

## Context

## Decision

## Consequences
`
		checker := writeADRs(t, map[string]string{"0001-x.md": adr})
		report, err := checker.Check()
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if !hasRule(report, "status") {
			t.Errorf("expected status finding, got %v", rulesOf(report))
		}
	})

	t.Run("status is case insensitive", func(t *testing.T) {
		adr := `---
title: X
status: Accepted
date: 2024-03-01
---

## Context

## Decision

## Consequences
`
		checker := writeADRs(t, map[string]string{"0001-x.md": adr})
		report, err := checker.Check()
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if hasRule(report, "status") {
			t.Errorf("capitalized status should be accepted, got %v", rulesOf(report))
		}
	})

	t.Run("missing sections", func(t *testing.T) {
		adr := `---
title: X
status: accepted
date: 2024-03-01
---

## Context
`
		checker := writeADRs(t, map[string]string{"0001-x.md": adr})
		report, err := checker.Check()
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		sections := 0
		for _, f := range report.Findings {
			if f.Rule == "sections" {
				sections++
			}
		}
		if sections != 2 {
			t.Errorf("expected 2 section findings (Decision, Consequences), got %v", rulesOf(report))
		}
	})

	t.Run("duplicate numbers", func(t *testing.T) {
		checker := writeADRs(t, map[string]string{
			"0001-first.md":  validADR,
			"0001-second.md": validADR,
		})
		report, err := checker.Check()
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if !hasRule(report, "numbering") {
			t.Errorf("expected numbering finding, got %v", rulesOf(report))
		}
	})
}

func TestSuperseded(t *testing.T) {
	superseded := func(by string) string {
		doc := `---
title: Old decision
status: superseded
`
		if by != "" {
			doc += "superseded-by: " + by + "\n"
		}
		return doc + `date: 2024-01-01
---

## Context

## Decision

## Consequences
`
	}

	t.Run("valid successor reference", func(t *testing.T) {
		for _, ref := range []string{"2", "0002", "0002-use-postgresql.md"} {
			checker := writeADRs(t, map[string]string{
				"0001-old.md":            superseded(ref),
				"0002-use-postgresql.md": validADR,
			})
			report, err := checker.Check()
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if hasRule(report, "superseded") {
				t.Errorf("reference %q should be valid, got %v", ref, rulesOf(report))
			}
		}
	})

	t.Run("missing successor key", func(t *testing.T) {
		checker := writeADRs(t, map[string]string{"0001-old.md": superseded("")})
		report, err := checker.Check()
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if !hasRule(report, "superseded") {
			t.Errorf("expected superseded finding, got %v", rulesOf(report))
		}
	})

	t.Run("successor does not exist", func(t *testing.T) {
		checker := writeADRs(t, map[string]string{"0001-old.md": superseded("0042")})
		report, err := checker.Check()
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if !hasRule(report, "superseded") {
			t.Errorf("expected superseded finding, got %v", rulesOf(report))
		}
	})

	t.Run("self reference rejected", func(t *testing.T) {
		checker := writeADRs(t, map[string]string{"0001-old.md": superseded("0001")})
		report, err := checker.Check()
		if err != nil {
			t.Fatalf("Check() error = %v", err)
		}
		if !hasRule(report, "superseded") {
			t.Errorf("expected superseded finding for self reference, got %v", rulesOf(report))
		}
	})
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		ref     string
		want    int
		wantErr bool
	}{
		{"7", 7, false},
		{"0007", 7, false},
		{"0007-switch-to-grpc.md", 7, false},
		{"not-a-number", 0, true},
		{"", 0, true},
	}

	for _, testCase := range tests {
		t.Run(testCase.ref, func(t *testing.T) {
			got, err := parseReference(testCase.ref)
			if (err != nil) != testCase.wantErr {
				t.Fatalf("parseReference(%q) error = %v, wantErr %v", testCase.ref, err, testCase.wantErr)
			}
			if !testCase.wantErr && got != testCase.want {
				t.Errorf("parseReference(%q) = %d, want %d", testCase.ref, got, testCase.want)
			}
		})
	}
}
