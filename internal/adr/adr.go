// Package adr validates Architecture Decision Records: markdown documents
// with YAML frontmatter, kept in a numbered sequence under a single
// directory (docs/adr/0001-use-postgres.md and so on).
package adr

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harborline/shipshape/internal/config"
	"github.com/harborline/shipshape/internal/finding"
	"github.com/harborline/shipshape/internal/links"
	"github.com/harborline/shipshape/internal/output"
)

// CheckName is the finding check identifier.
const CheckName = "adr"

// fileNamePattern is the required ADR filename shape: a four-digit
// number, a dash, and a kebab-case title.
var fileNamePattern = regexp.MustCompile(`^(\d{4})-[a-z0-9]+(?:-[a-z0-9]+)*\.md$`)

// requiredSections are the headings every ADR body must contain.
var requiredSections = []string{"Context", "Decision", "Consequences"}

// Meta is the YAML frontmatter schema of an ADR.
type Meta struct {
	Title        string `yaml:"title"`
	Status       string `yaml:"status"`
	Date         string `yaml:"date"`
	SupersededBy string `yaml:"superseded-by"`
	Deciders     string `yaml:"deciders"`
}

// Record is one parsed ADR file.
type Record struct {
	Path   string // repo-relative
	Name   string // filename
	Number int    // -1 when the filename has no valid number
	Meta   Meta
	Doc    *links.Document
}

// Checker validates the ADR directory of a repository.
type Checker struct {
	Root   string
	Config config.ADRConfig
}

// Check validates every ADR in the configured directory.
// A missing directory yields a single warning rather than an error: a
// repo without ADRs is not broken, but a configured path that points
// nowhere is worth surfacing.
func (c *Checker) Check() (*finding.Report, error) {
	report := &finding.Report{}
	dir := filepath.Join(c.Root, filepath.FromSlash(c.Config.Dir))

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		report.Add(finding.Finding{
			Check: CheckName, Rule: "dir", Severity: finding.SeverityWarning,
			Path:    c.Config.Dir,
			Message: "ADR directory does not exist",
			Hint:    "create it or remove \"adr\" from the checks list",
		})
		return report, nil
	}
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read ADR directory "+c.Config.Dir, err)
	}

	records, err := c.loadRecords(dir, entries, report)
	if err != nil {
		return nil, err
	}

	c.checkNumbering(records, report)
	for _, record := range records {
		c.checkRecord(record, records, report)
	}

	report.Sort()
	return report, nil
}

// loadRecords parses all markdown files in the ADR directory.
// Non-markdown files and README.md are ignored.
func (c *Checker) loadRecords(dir string, entries []os.DirEntry, report *finding.Report) ([]*Record, error) {
	var records []*Record
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") || strings.EqualFold(name, "README.md") {
			continue
		}

		relPath := c.Config.Dir + "/" + name
		source, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, output.NewSystemErrorWithCause("failed to read "+relPath, err)
		}

		record := &Record{
			Path:   relPath,
			Name:   name,
			Number: -1,
			Doc:    links.ParseDocument(relPath, source),
		}

		if match := fileNamePattern.FindStringSubmatch(name); match != nil {
			record.Number, _ = strconv.Atoi(match[1])
		} else {
			report.Add(finding.Finding{
				Check: CheckName, Rule: "filename", Severity: finding.SeverityError,
				Path:    relPath,
				Message: "filename must be NNNN-kebab-title.md",
			})
		}

		front := links.Frontmatter(source)
		if front == nil {
			report.Add(finding.Finding{
				Check: CheckName, Rule: "frontmatter", Severity: finding.SeverityError,
				Path:    relPath,
				Message: "missing YAML frontmatter",
			})
		} else if err := yaml.Unmarshal(front, &record.Meta); err != nil {
			report.Add(finding.Finding{
				Check: CheckName, Rule: "frontmatter", Severity: finding.SeverityError,
				Path:    relPath,
				Message: fmt.Sprintf("invalid YAML frontmatter: %v", err),
			})
		}

		records = append(records, record)
	}
	return records, nil
}

// checkNumbering flags duplicate ADR numbers across the directory.
func (c *Checker) checkNumbering(records []*Record, report *finding.Report) {
	byNumber := make(map[int][]*Record)
	for _, record := range records {
		if record.Number >= 0 {
			byNumber[record.Number] = append(byNumber[record.Number], record)
		}
	}

	var numbers []int
	for number := range byNumber {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	for _, number := range numbers {
		group := byNumber[number]
		if len(group) < 2 {
			continue
		}
		names := make([]string, len(group))
		for i, record := range group {
			names[i] = record.Name
		}
		report.Add(finding.Finding{
			Check: CheckName, Rule: "numbering", Severity: finding.SeverityError,
			Path:    group[0].Path,
			Message: fmt.Sprintf("ADR number %04d is used by %s", number, strings.Join(names, " and ")),
		})
	}
}

// checkRecord validates one ADR's frontmatter fields and body sections.
func (c *Checker) checkRecord(record *Record, all []*Record, report *finding.Report) {
	c.checkMeta(record, all, report)
	c.checkSections(record, report)
}

// checkMeta validates the frontmatter keys.
func (c *Checker) checkMeta(record *Record, all []*Record, report *finding.Report) {
	meta := record.Meta
	addError := func(rule, message string) {
		report.Add(finding.Finding{
			Check: CheckName, Rule: rule, Severity: finding.SeverityError,
			Path: record.Path, Message: message,
		})
	}

	if meta.Title == "" {
		addError("frontmatter", "frontmatter is missing required key \"title\"")
	}
	if meta.Date == "" {
		addError("frontmatter", "frontmatter is missing required key \"date\"")
	} else if _, err := time.Parse("2006-01-02", meta.Date); err != nil {
		addError("frontmatter", fmt.Sprintf("date %q is not in YYYY-MM-DD form", meta.Date))
	}

	switch {
	case meta.Status == "":
		addError("status", "frontmatter is missing required key \"status\"")
	case !c.allowedStatus(meta.Status):
		addError("status", fmt.Sprintf("status %q is not one of %s",
			meta.Status, strings.Join(c.Config.Statuses, ", ")))
	case strings.EqualFold(meta.Status, "superseded"):
		c.checkSuccessor(record, all, report)
	}
}

// checkSuccessor validates the superseded-by reference of a superseded ADR.
func (c *Checker) checkSuccessor(record *Record, all []*Record, report *finding.Report) {
	ref := strings.TrimSpace(record.Meta.SupersededBy)
	if ref == "" {
		report.Add(finding.Finding{
			Check: CheckName, Rule: "superseded", Severity: finding.SeverityError,
			Path:    record.Path,
			Message: "superseded ADR must name its successor in \"superseded-by\"",
		})
		return
	}

	number, err := parseReference(ref)
	if err != nil {
		report.Add(finding.Finding{
			Check: CheckName, Rule: "superseded", Severity: finding.SeverityError,
			Path:    record.Path,
			Message: fmt.Sprintf("superseded-by %q is not an ADR number or filename", ref),
		})
		return
	}

	for _, other := range all {
		if other.Number == number && other != record {
			return
		}
	}
	report.Add(finding.Finding{
		Check: CheckName, Rule: "superseded", Severity: finding.SeverityError,
		Path:    record.Path,
		Message: fmt.Sprintf("superseded-by references ADR %04d, which does not exist", number),
	})
}

// parseReference extracts an ADR number from "7", "0007", or
// "0007-switch-to-grpc.md".
func parseReference(ref string) (int, error) {
	head := ref
	if idx := strings.IndexByte(ref, '-'); idx > 0 {
		head = ref[:idx]
	}
	return strconv.Atoi(head)
}

// checkSections verifies the required body headings are present.
func (c *Checker) checkSections(record *Record, report *finding.Report) {
	present := make(map[string]bool, len(record.Doc.Headings))
	for _, heading := range record.Doc.Headings {
		present[strings.ToLower(strings.TrimSpace(heading.Text))] = true
	}

	for _, section := range requiredSections {
		if !present[strings.ToLower(section)] {
			report.Add(finding.Finding{
				Check: CheckName, Rule: "sections", Severity: finding.SeverityError,
				Path:    record.Path,
				Message: "missing required section \"" + section + "\"",
			})
		}
	}
}

// allowedStatus reports whether a status is in the configured vocabulary.
func (c *Checker) allowedStatus(status string) bool {
	for _, allowed := range c.Config.Statuses {
		if strings.EqualFold(status, allowed) {
			return true
		}
	}
	return false
}
