package commitlint

import (
	"strings"
	"testing"

	"github.com/harborline/shipshape/internal/config"
	"github.com/harborline/shipshape/internal/finding"
)

func testLinter() *Linter {
	return &Linter{Config: config.CommitsConfig{
		Types:      []string{"feat", "fix", "docs", "refactor", "test", "chore"},
		SubjectMax: 72,
		BodyMax:    100,
	}}
}

// ruleSet collects the distinct rules of a finding slice.
func ruleSet(findings []finding.Finding) map[string]bool {
	rules := make(map[string]bool, len(findings))
	for _, f := range findings {
		rules[f.Rule] = true
	}
	return rules
}

func TestLintMessage(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		wantRules []string
	}{
		{
			name:    "valid subject",
			message: "feat: add pair verification",
		},
		{
			name:    "valid with scope",
			message: "fix(links): resolve anchors case insensitively",
		},
		{
			name:    "valid breaking change",
			message: "refactor(config)!: rename exclude to ignore",
		},
		{
			name:    "valid with body",
			message: "feat: add doctor command\n\nProbes the environment and repository setup.",
		},
		{
			name:      "empty message",
			message:   "",
			wantRules: []string{"subject"},
		},
		{
			name:      "no conventional shape",
			message:   "updated some stuff",
			wantRules: []string{"subject"},
		},
		{
			name:      "unknown type",
			message:   "feature: add thing",
			wantRules: []string{"type"},
		},
		{
			name:      "empty scope parens",
			message:   "fix(): something",
			wantRules: []string{"scope"},
		},
		{
			name:      "trailing period",
			message:   "fix: resolve the thing.",
			wantRules: []string{"description"},
		},
		{
			name:      "uppercase description warns",
			message:   "fix: Resolve the thing",
			wantRules: []string{"description-case"},
		},
		{
			name:      "wip draft",
			message:   "WIP: trying things",
			wantRules: []string{"draft"},
		},
		{
			name:      "fixup draft",
			message:   "fixup! fix: earlier commit",
			wantRules: []string{"draft"},
		},
		{
			name:      "subject too long",
			message:   "feat: " + strings.Repeat("x", 80),
			wantRules: []string{"subject-length"},
		},
		{
			name:      "missing blank line before body",
			message:   "feat: add thing\nbody starts immediately",
			wantRules: []string{"body-blank-line"},
		},
		{
			name:      "body line too long",
			message:   "feat: add thing\n\n" + strings.Repeat("word ", 30),
			wantRules: []string{"body-length"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			findings := testLinter().LintMessage("abc1234", testCase.message)

			if len(testCase.wantRules) == 0 {
				if len(findings) != 0 {
					t.Errorf("expected no findings, got %+v", findings)
				}
				return
			}

			rules := ruleSet(findings)
			for _, want := range testCase.wantRules {
				if !rules[want] {
					t.Errorf("missing rule %q in %+v", want, findings)
				}
			}
		})
	}
}

func TestLintSubjectEmptyDescription(t *testing.T) {
	findings := testLinter().lintSubject("abc1234", "fix:  ")
	if !ruleSet(findings)["description"] {
		t.Errorf("expected description finding, got %+v", findings)
	}
}

func TestLintMessageSeverities(t *testing.T) {
	findings := testLinter().LintMessage("abc1234", "fix: Resolve the thing")
	if len(findings) != 1 {
		t.Fatalf("expected one finding, got %+v", findings)
	}
	if findings[0].Severity != finding.SeverityWarning {
		t.Errorf("description-case severity = %q, want warning", findings[0].Severity)
	}

	findings = testLinter().LintMessage("abc1234", "banana")
	if len(findings) != 1 || findings[0].Severity != finding.SeverityError {
		t.Errorf("malformed subject should be a single error, got %+v", findings)
	}
}

func TestExemptBodyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"url line", "See https://example.com/very/long/path/to/docs for details", true},
		{"unbroken token", strings.Repeat("a", 150), true},
		{"normal prose", "this is a perfectly ordinary sentence", false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := exemptBodyLine(testCase.line); got != testCase.want {
				t.Errorf("exemptBodyLine(%q) = %v, want %v", testCase.line, got, testCase.want)
			}
		})
	}
}

func TestLintCommits(t *testing.T) {
	linter := testLinter()
	report := linter.LintCommits(nil)
	if len(report.Findings) != 0 {
		t.Errorf("no commits should yield no findings, got %+v", report.Findings)
	}
}
