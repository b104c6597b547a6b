// Package links implements the markdown link checker: relative targets
// must resolve, anchors must match a heading slug, and external URLs can
// optionally be probed over HTTP.
package links

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Link is one outgoing link found in a markdown document.
type Link struct {
	Dest  string // raw destination as written
	Line  int    // 1-based line in the source file
	Image bool   // image reference rather than hyperlink
}

// Heading is one heading of a markdown document.
type Heading struct {
	Text  string
	Level int
	Line  int
}

// Document is the structure of one markdown file: outgoing links plus
// headings (as both anchors and section names, for the ADR validator).
type Document struct {
	Path     string
	Links    []Link
	Headings []Heading
	Anchors  map[string]bool // GitHub-style heading slugs
}

// markdown is the shared goldmark instance. GFM tables and autolinks are
// enabled because the repositories this tool checks use GitHub rendering.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ParseDocument extracts links and heading anchors from markdown source.
// A leading YAML frontmatter block is skipped, with line numbers adjusted
// to stay true to the file.
func ParseDocument(path string, source []byte) *Document {
	body, lineOffset := SplitFrontmatter(source)

	doc := &Document{
		Path:    path,
		Anchors: make(map[string]bool),
	}

	root := markdown.Parser().Parse(text.NewReader(body))
	slugger := newSlugger()

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			doc.Links = append(doc.Links, Link{
				Dest: string(node.Destination),
				Line: lineOf(body, n) + lineOffset,
			})
		case *ast.Image:
			doc.Links = append(doc.Links, Link{
				Dest:  string(node.Destination),
				Line:  lineOf(body, n) + lineOffset,
				Image: true,
			})
		case *ast.AutoLink:
			doc.Links = append(doc.Links, Link{
				Dest: string(node.URL(body)),
				Line: lineOf(body, n) + lineOffset,
			})
		case *ast.Heading:
			heading := Heading{
				Text:  textOf(node, body),
				Level: node.Level,
				Line:  lineOf(body, n) + lineOffset,
			}
			doc.Headings = append(doc.Headings, heading)
			doc.Anchors[slugger.slug(heading.Text)] = true
		}
		return ast.WalkContinue, nil
	})

	return doc
}

// SplitFrontmatter removes a leading "---" delimited YAML block.
// Returns the remaining body and the number of lines removed.
func SplitFrontmatter(source []byte) (body []byte, lines int) {
	if !bytes.HasPrefix(source, []byte("---\n")) && !bytes.HasPrefix(source, []byte("---\r\n")) {
		return source, 0
	}

	rest := source[bytes.IndexByte(source, '\n')+1:]
	for _, delim := range []string{"\n---\n", "\n---\r\n"} {
		if idx := bytes.Index(rest, []byte(delim)); idx >= 0 {
			header := source[:len(source)-len(rest)+idx+len(delim)]
			return source[len(header):], bytes.Count(header, []byte{'\n'})
		}
	}
	return source, 0
}

// Frontmatter returns the raw YAML of a leading frontmatter block, or nil.
func Frontmatter(source []byte) []byte {
	body, lines := SplitFrontmatter(source)
	if lines == 0 {
		return nil
	}
	header := source[:len(source)-len(body)]
	// Trim the delimiter lines.
	header = header[bytes.IndexByte(header, '\n')+1:]
	if idx := bytes.LastIndex(header, []byte("---")); idx >= 0 {
		header = header[:idx]
	}
	return header
}

// lineOf returns the 1-based line of a node. Inline nodes carry no
// position, so the nearest ancestor block with line segments anchors them.
func lineOf(source []byte, n ast.Node) int {
	for node := n; node != nil; node = node.Parent() {
		if node.Type() == ast.TypeBlock && node.Lines().Len() > 0 {
			offset := node.Lines().At(0).Start
			return 1 + bytes.Count(source[:offset], []byte{'\n'})
		}
	}
	return 1
}

// textOf collects the plain text content of a node's subtree.
func textOf(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// slugger produces GitHub-style anchor slugs, deduplicating repeats the
// way GitHub does (second "Usage" heading becomes "usage-1").
type slugger struct {
	seen map[string]int
}

func newSlugger() *slugger {
	return &slugger{seen: make(map[string]int)}
}

// slug converts heading text to its anchor.
func (s *slugger) slug(heading string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(heading)) {
		switch {
		case r == ' ':
			sb.WriteByte('-')
		case r == '-' || r == '_':
			sb.WriteRune(r)
		case isAlphanumeric(r):
			sb.WriteRune(r)
		}
	}

	base := sb.String()
	count := s.seen[base]
	s.seen[base] = count + 1
	if count == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(count)
}

// isAlphanumeric reports whether r survives GitHub slugification.
// Unicode letters and digits are kept.
func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r > 127
}
