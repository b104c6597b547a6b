// Package commitlint validates commit messages against a
// conventional-commit style: "type(scope): description" subjects with a
// bounded length, plus body formatting rules.
package commitlint

import (
	"strings"

	"github.com/harborline/shipshape/internal/config"
	"github.com/harborline/shipshape/internal/finding"
	"github.com/harborline/shipshape/internal/git"
)

// CheckName is the finding check identifier.
const CheckName = "commits"

// Linter validates commit messages.
type Linter struct {
	Config config.CommitsConfig
}

// LintRange lints the commits in rangeSpec. An empty rangeSpec falls back
// to the configured range, then to upstream..HEAD, then to the last
// FallbackCount commits when the branch has no upstream.
func (l *Linter) LintRange(rangeSpec string) (*finding.Report, error) {
	if rangeSpec == "" {
		rangeSpec = l.Config.Range
	}

	var commits []git.Commit
	var err error
	switch {
	case rangeSpec != "":
		commits, err = git.Log(rangeSpec)
	case git.HasUpstream():
		commits, err = git.Log("@{upstream}..HEAD")
	default:
		commits, err = git.RecentCommits(l.fallbackCount())
	}
	if err != nil {
		return nil, err
	}

	return l.LintCommits(commits), nil
}

// LintCommits lints already-retrieved commits.
func (l *Linter) LintCommits(commits []git.Commit) *finding.Report {
	report := &finding.Report{}
	for _, commit := range commits {
		report.Add(l.LintMessage(commit.Short, commit.Message())...)
	}
	return report
}

// LintMessage lints one full commit message. The ref (a short SHA, or a
// filename for the commit-msg hook) labels the findings.
func (l *Linter) LintMessage(ref, message string) []finding.Finding {
	lines := strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n")
	subject := strings.TrimSpace(lines[0])

	var findings []finding.Finding
	findings = append(findings, l.lintSubject(ref, subject)...)
	findings = append(findings, l.lintBody(ref, lines)...)
	return findings
}

// fallbackCount returns the configured no-upstream lint depth.
func (l *Linter) fallbackCount() int {
	if l.Config.FallbackCount > 0 {
		return l.Config.FallbackCount
	}
	return 20
}
