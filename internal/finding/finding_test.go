package finding

import "testing"

func TestLocation(t *testing.T) {
	tests := []struct {
		name    string
		finding Finding
		want    string
	}{
		{"path and line", Finding{Path: "docs/a.md", Line: 12}, "docs/a.md:12"},
		{"path only", Finding{Path: "docs/a.md"}, "docs/a.md"},
		{"no path", Finding{Line: 3}, ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.finding.Location(); got != testCase.want {
				t.Errorf("Location() = %q, want %q", got, testCase.want)
			}
		})
	}
}

func TestCounts(t *testing.T) {
	report := &Report{}
	report.Add(
		Finding{Check: "links", Severity: SeverityError},
		Finding{Check: "links", Severity: SeverityWarning},
		Finding{Check: "adr", Severity: SeverityWarning},
	)

	if got := report.Errors(); got != 1 {
		t.Errorf("Errors() = %d, want 1", got)
	}
	if got := report.Warnings(); got != 2 {
		t.Errorf("Warnings() = %d, want 2", got)
	}
}

func TestFailed(t *testing.T) {
	errorsOnly := &Report{Findings: []Finding{{Severity: SeverityError}}}
	warningsOnly := &Report{Findings: []Finding{{Severity: SeverityWarning}}}
	empty := &Report{}

	if !errorsOnly.Failed(false) {
		t.Error("errors should fail without strict")
	}
	if warningsOnly.Failed(false) {
		t.Error("warnings alone should not fail without strict")
	}
	if !warningsOnly.Failed(true) {
		t.Error("warnings should fail with strict")
	}
	if empty.Failed(true) {
		t.Error("empty report should never fail")
	}
}

func TestSort(t *testing.T) {
	report := &Report{}
	report.Add(
		Finding{Check: "links", Path: "b.md", Line: 5, Rule: "anchor"},
		Finding{Check: "adr", Path: "docs/adr/0001-x.md", Rule: "status"},
		Finding{Check: "links", Path: "a.md", Line: 9, Rule: "anchor"},
		Finding{Check: "links", Path: "a.md", Line: 2, Rule: "relative-target"},
		Finding{Check: "links", Rule: "external"},
	)
	report.Sort()

	wantOrder := []string{
		"docs/adr/0001-x.md", // adr sorts before links
		"a.md",
		"a.md",
		"b.md",
		"", // unlocated finding last within its check
	}
	for i, want := range wantOrder {
		if report.Findings[i].Path != want {
			t.Fatalf("Findings[%d].Path = %q, want %q (order %+v)", i, report.Findings[i].Path, want, report.Findings)
		}
	}
	if report.Findings[1].Line != 2 {
		t.Errorf("within a path, findings should sort by line; got line %d first", report.Findings[1].Line)
	}
}

func TestByCheck(t *testing.T) {
	report := &Report{}
	report.Add(
		Finding{Check: "links", Rule: "anchor"},
		Finding{Check: "secrets", Rule: "github-token"},
		Finding{Check: "links", Rule: "external"},
	)

	keys, groups := report.ByCheck()
	if len(keys) != 2 || keys[0] != "links" || keys[1] != "secrets" {
		t.Errorf("keys = %v, want [links secrets]", keys)
	}
	if len(groups["links"]) != 2 {
		t.Errorf("links group has %d findings, want 2", len(groups["links"]))
	}
}

func TestMergeNil(t *testing.T) {
	report := &Report{}
	report.Merge(nil)
	if len(report.Findings) != 0 {
		t.Error("merging nil should be a no-op")
	}
}
