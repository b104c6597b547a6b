package secrets

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/harborline/shipshape/internal/config"
	"github.com/harborline/shipshape/internal/finding"
	"github.com/harborline/shipshape/internal/git"
	"github.com/harborline/shipshape/internal/output"
)

// CheckName is the finding check identifier.
const CheckName = "secrets"

// allowPragma suppresses findings on the line that carries it.
const allowPragma = "shipshape:allow"

// Scanner scans file contents for credentials.
type Scanner struct {
	Root        string
	entropy     float64
	allowPaths  []*regexp.Regexp
	allowValues []*regexp.Regexp
}

// NewScanner compiles the configured allowlists.
func NewScanner(root string, cfg config.SecretsConfig) (*Scanner, error) {
	scanner := &Scanner{Root: root, entropy: cfg.Entropy}
	if scanner.entropy <= 0 {
		scanner.entropy = 3.5
	}

	var err error
	scanner.allowPaths, err = compileAll(cfg.AllowPaths)
	if err != nil {
		return nil, output.NewUserError("secrets.allow_paths: " + err.Error())
	}
	scanner.allowValues, err = compileAll(cfg.AllowValues)
	if err != nil {
		return nil, output.NewUserError("secrets.allow_values: " + err.Error())
	}
	return scanner, nil
}

// compileAll compiles a list of regex patterns.
func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// ScanFiles scans worktree files (repo-root-relative paths).
func (s *Scanner) ScanFiles(files []string) (*finding.Report, error) {
	report := &finding.Report{}
	for _, file := range files {
		if s.allowedPath(file) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(file)))
		if err != nil {
			return nil, output.NewSystemErrorWithCause("failed to read "+file, err)
		}
		s.scanContent(file, data, report)
	}
	report.Sort()
	return report, nil
}

// ScanStaged scans the staged (index) contents of all files with staged
// changes. This is what the pre-commit hook runs: it sees exactly what
// the commit would publish, including hunks not present in the worktree.
func (s *Scanner) ScanStaged(ctx context.Context) (*finding.Report, error) {
	statuses, err := git.Status(ctx)
	if err != nil {
		return nil, err
	}

	report := &finding.Report{}
	for path, entry := range statuses {
		if !entry.StagedChange() || entry.Index == git.StatusDeleted || s.allowedPath(path) {
			continue
		}
		data, err := git.StagedContent(ctx, path)
		if err != nil {
			return nil, err
		}
		s.scanContent(path, data, report)
	}
	report.Sort()
	return report, nil
}

// scanContent runs all detectors over one file's contents.
// Binary content (NUL byte in the first 8KiB) is skipped.
func (s *Scanner) scanContent(path string, data []byte, report *finding.Report) {
	probe := data
	if len(probe) > 8192 {
		probe = probe[:8192]
	}
	if bytes.IndexByte(probe, 0) >= 0 {
		return
	}

	for lineNo, line := range strings.Split(string(data), "\n") {
		if strings.Contains(line, allowPragma) {
			continue
		}
		for _, detector := range builtinDetectors {
			s.scanLine(path, lineNo+1, line, detector, report)
		}
	}
}

// scanLine applies one detector to one line.
func (s *Scanner) scanLine(path string, lineNo int, line string, detector Detector, report *finding.Report) {
	for _, match := range detector.Pattern.FindAllStringSubmatch(line, -1) {
		value := match[detector.Group]
		if s.allowedValue(value) {
			continue
		}
		if detector.Entropy && shannonEntropy(value) < s.entropy {
			continue
		}
		report.Add(finding.Finding{
			Check: CheckName, Rule: detector.Name, Severity: finding.SeverityError,
			Path: path, Line: lineNo,
			Message: fmt.Sprintf("possible %s: %s", detector.Name, redact(value)),
			Hint:    "if this is a test fixture, add a " + allowPragma + " pragma or an allow_values pattern",
		})
	}
}

// allowedPath reports whether a path matches the allow_paths config.
func (s *Scanner) allowedPath(path string) bool {
	for _, re := range s.allowPaths {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// allowedValue reports whether a matched value matches allow_values.
func (s *Scanner) allowedValue(value string) bool {
	for _, re := range s.allowValues {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}

// redact keeps just enough of the value to locate it without repeating
// the credential into logs and CI output.
func redact(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", 4) + value[len(value)-2:]
}
