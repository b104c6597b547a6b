package links

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/harborline/shipshape/internal/config"
	"github.com/harborline/shipshape/internal/finding"
	"github.com/harborline/shipshape/internal/output"
)

// CheckName is the finding check identifier.
const CheckName = "links"

// Checker validates the links of a set of markdown files.
type Checker struct {
	Root   string
	Config config.LinksConfig
	// Prober handles external URLs; nil (or Config.External false)
	// limits the check to the filesystem.
	Prober *Prober
}

// Check parses every file and validates each link. Files are repo-root
// relative. Returns findings plus any system error (unreadable file).
func (c *Checker) Check(ctx context.Context, files []string) (*finding.Report, error) {
	report := &finding.Report{}
	docs := make(map[string]*Document, len(files))

	for _, file := range files {
		source, err := os.ReadFile(filepath.Join(c.Root, filepath.FromSlash(file)))
		if err != nil {
			return nil, output.NewSystemErrorWithCause("failed to read "+file, err)
		}
		docs[file] = ParseDocument(file, source)
	}

	var external []probeTarget
	for _, file := range files {
		external = append(external, c.checkDocument(docs[file], docs, report)...)
	}

	if c.Config.External && c.Prober != nil {
		report.Merge(c.Prober.Probe(ctx, external))
	}

	report.Sort()
	return report, nil
}

// probeTarget is an external URL with the locations that reference it.
type probeTarget struct {
	url  string
	refs []finding.Finding // template findings carrying path/line
}

// checkDocument validates one document's links, returning external URLs
// for later probing.
func (c *Checker) checkDocument(doc *Document, docs map[string]*Document, report *finding.Report) []probeTarget {
	byURL := make(map[string]*probeTarget)
	var order []string

	for _, link := range doc.Links {
		dest := strings.TrimSpace(link.Dest)
		switch {
		case dest == "":
			report.Add(finding.Finding{
				Check: CheckName, Rule: "empty-link", Severity: finding.SeverityError,
				Path: doc.Path, Line: link.Line,
				Message: "link has an empty destination",
			})
		case skippableScheme(dest):
			// mailto:, tel:, data: and friends are out of scope.
		case strings.HasPrefix(dest, "http://") || strings.HasPrefix(dest, "https://"):
			if !c.Config.External || c.excludedURL(dest) {
				continue
			}
			target := byURL[dest]
			if target == nil {
				target = &probeTarget{url: dest}
				byURL[dest] = target
				order = append(order, dest)
			}
			target.refs = append(target.refs, finding.Finding{
				Check: CheckName, Rule: "external", Path: doc.Path, Line: link.Line,
			})
		case strings.HasPrefix(dest, "#"):
			c.checkAnchor(doc, doc, dest[1:], link, report)
		default:
			c.checkRelative(doc, docs, dest, link, report)
		}
	}

	targets := make([]probeTarget, 0, len(order))
	for _, u := range order {
		targets = append(targets, *byURL[u])
	}
	return targets
}

// checkRelative validates a relative (or root-absolute) file link,
// including any anchor fragment.
func (c *Checker) checkRelative(doc *Document, docs map[string]*Document, dest string, link Link, report *finding.Report) {
	target, fragment, _ := strings.Cut(dest, "#")
	if unescaped, err := url.PathUnescape(target); err == nil {
		target = unescaped
	}

	var resolved string
	if strings.HasPrefix(target, "/") {
		resolved = strings.TrimPrefix(path.Clean(target), "/")
	} else if target == "" {
		resolved = doc.Path // pure fragment handled above; defensive
	} else {
		resolved = path.Join(path.Dir(doc.Path), target)
	}

	if strings.HasPrefix(resolved, "../") {
		report.Add(finding.Finding{
			Check: CheckName, Rule: "relative-target", Severity: finding.SeverityError,
			Path: doc.Path, Line: link.Line,
			Message: dest + " escapes the repository root",
		})
		return
	}

	if _, err := os.Stat(filepath.Join(c.Root, filepath.FromSlash(resolved))); err != nil {
		report.Add(finding.Finding{
			Check: CheckName, Rule: "relative-target", Severity: finding.SeverityError,
			Path: doc.Path, Line: link.Line,
			Message: dest + " does not resolve to a file",
			Hint:    "resolved to " + resolved,
		})
		return
	}

	if fragment == "" {
		return
	}

	targetDoc := docs[resolved]
	if targetDoc == nil {
		if !isMarkdown(resolved) {
			return // cannot anchor-check non-markdown targets
		}
		source, err := os.ReadFile(filepath.Join(c.Root, filepath.FromSlash(resolved)))
		if err != nil {
			return
		}
		targetDoc = ParseDocument(resolved, source)
		docs[resolved] = targetDoc
	}
	c.checkAnchor(doc, targetDoc, fragment, link, report)
}

// checkAnchor validates a fragment against a document's heading slugs.
func (c *Checker) checkAnchor(doc, target *Document, fragment string, link Link, report *finding.Report) {
	if target.Anchors[strings.ToLower(fragment)] {
		return
	}
	msg := "#" + fragment + " does not match any heading"
	if target.Path != doc.Path {
		msg += " in " + target.Path
	}
	report.Add(finding.Finding{
		Check: CheckName, Rule: "anchor", Severity: finding.SeverityError,
		Path: doc.Path, Line: link.Line,
		Message: msg,
	})
}

// excludedURL reports whether a URL matches a configured exclude pattern.
func (c *Checker) excludedURL(dest string) bool {
	for _, pattern := range c.Config.Exclude {
		if matched := matchPattern(pattern, dest); matched {
			return true
		}
	}
	return false
}

// matchPattern treats the pattern as a regex when it starts with ^,
// otherwise as a plain substring, keeping simple configs simple.
func matchPattern(pattern, dest string) bool {
	if strings.HasPrefix(pattern, "^") {
		matched, err := regexp.MatchString(pattern, dest)
		return err == nil && matched
	}
	return strings.Contains(dest, pattern)
}

// skippableScheme reports schemes the checker never validates.
func skippableScheme(dest string) bool {
	for _, scheme := range []string{"mailto:", "tel:", "data:", "ftp:", "irc:", "slack:"} {
		if strings.HasPrefix(dest, scheme) {
			return true
		}
	}
	return false
}

// isMarkdown reports whether a path looks like a markdown document.
func isMarkdown(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".md", ".markdown", ".mdown":
		return true
	}
	return false
}
