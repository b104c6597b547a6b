package commitlint

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/harborline/shipshape/internal/finding"
)

// subjectPattern matches a conventional-commit subject:
// type, optional (scope), optional ! for breaking, ": ", description.
var subjectPattern = regexp.MustCompile(`^([a-z]+)(\(([^)]*)\))?(!)?: (.*)$`)

// draftPrefixes mark commits that should never land on a shared branch.
var draftPrefixes = []string{"wip", "fixup!", "squash!", "amend!"}

// lintSubject applies the subject-line rules.
func (l *Linter) lintSubject(ref, subject string) []finding.Finding {
	var findings []finding.Finding
	add := func(rule string, severity finding.Severity, message string) {
		findings = append(findings, finding.Finding{
			Check: CheckName, Rule: rule, Severity: severity,
			Path: ref, Line: 1, Message: message,
		})
	}

	if subject == "" {
		add("subject", finding.SeverityError, "subject line is empty")
		return findings
	}

	for _, prefix := range draftPrefixes {
		if strings.HasPrefix(strings.ToLower(subject), prefix) {
			add("draft", finding.SeverityError,
				fmt.Sprintf("draft commit %q must be squashed before it lands", subject))
			return findings
		}
	}

	if limit := l.subjectMax(); len(subject) > limit {
		add("subject-length", finding.SeverityError,
			fmt.Sprintf("subject is %d characters, limit is %d", len(subject), limit))
	}

	match := subjectPattern.FindStringSubmatch(subject)
	if match == nil {
		add("subject", finding.SeverityError,
			"subject must be \"type(scope): description\" or \"type: description\"")
		return findings
	}

	commitType, scopeParens, scope, description := match[1], match[2], match[3], match[5]

	if !l.allowedType(commitType) {
		add("type", finding.SeverityError,
			fmt.Sprintf("type %q is not one of %s", commitType, strings.Join(l.Config.Types, ", ")))
	}
	if scopeParens != "" && strings.TrimSpace(scope) == "" {
		add("scope", finding.SeverityError, "scope parentheses are present but empty")
	}

	switch {
	case strings.TrimSpace(description) == "":
		add("description", finding.SeverityError, "description after the colon is empty")
	default:
		if strings.HasSuffix(description, ".") {
			add("description", finding.SeverityError, "subject must not end with a period")
		}
		if first := []rune(description)[0]; unicode.IsUpper(first) {
			add("description-case", finding.SeverityWarning,
				"description conventionally starts lowercase")
		}
	}

	return findings
}

// lintBody applies the body rules: a blank separator line after the
// subject and a line length bound.
func (l *Linter) lintBody(ref string, lines []string) []finding.Finding {
	var findings []finding.Finding

	if len(lines) > 1 && strings.TrimSpace(lines[1]) != "" {
		findings = append(findings, finding.Finding{
			Check: CheckName, Rule: "body-blank-line", Severity: finding.SeverityError,
			Path: ref, Line: 2,
			Message: "subject and body must be separated by a blank line",
		})
	}

	bodyMax := l.Config.BodyMax
	if bodyMax <= 0 {
		return findings
	}
	for i, line := range lines[1:] {
		if len(line) > bodyMax && !exemptBodyLine(line) {
			findings = append(findings, finding.Finding{
				Check: CheckName, Rule: "body-length", Severity: finding.SeverityWarning,
				Path: ref, Line: i + 2,
				Message: fmt.Sprintf("body line is %d characters, limit is %d", len(line), bodyMax),
			})
		}
	}
	return findings
}

// exemptBodyLine reports lines that legitimately exceed the length limit:
// URLs and trailer-style references can't be wrapped.
func exemptBodyLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.Contains(trimmed, "://") || !strings.Contains(trimmed, " ")
}

// subjectMax returns the configured subject length limit.
func (l *Linter) subjectMax() int {
	if l.Config.SubjectMax > 0 {
		return l.Config.SubjectMax
	}
	return 72
}

// allowedType reports whether a commit type is in the vocabulary.
func (l *Linter) allowedType(commitType string) bool {
	for _, allowed := range l.Config.Types {
		if commitType == allowed {
			return true
		}
	}
	return false
}
