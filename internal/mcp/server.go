// Package mcp provides a Model Context Protocol server for shipshape.
// It exposes the repo hygiene checks as MCP tools so agent environments
// can get structured findings without parsing CLI output.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harborline/shipshape/internal/config"
	"github.com/harborline/shipshape/internal/pair"
)

// Server bundles everything the tool handlers need.
type Server struct {
	root      string
	cfg       *config.Config
	converter pair.Converter
}

// NewServer creates an MCP server with all shipshape tools registered.
// The converter may be nil when jupytext is unavailable; pair tools then
// skip the content drift comparison.
func NewServer(version, root string, cfg *config.Config, converter pair.Converter) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "shipshape",
		Version: version,
	}, nil)

	s := &Server{root: root, cfg: cfg, converter: converter}
	s.registerTools(server)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that modify the
// worktree or index (repairs, not destructive deletions).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all shipshape tools to the server.
func (s *Server) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "check",
		Description: "Run the configured check suite (or a named subset) and return findings.",
		Annotations: readOnlyAnnotations(),
	}, s.handleCheck)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pair_verify",
		Description: "Verify notebook pair staging consistency. Returns per-pair verdicts over the git index and worktree state.",
		Annotations: readOnlyAnnotations(),
	}, s.handlePairVerify)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pair_sync",
		Description: "Repair inconsistent notebook pairs: run jupytext --sync, restage both sides, and re-verify.",
		Annotations: writeAnnotations(),
	}, s.handlePairSync)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "links",
		Description: "Check markdown links: relative targets, heading anchors, and optionally external URLs.",
		Annotations: readOnlyAnnotations(),
	}, s.handleLinks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "secrets",
		Description: "Scan worktree or staged contents for credential material (API keys, tokens, private keys).",
		Annotations: readOnlyAnnotations(),
	}, s.handleSecrets)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "commits",
		Description: "Lint commit messages in a range against the conventional-commit rules.",
		Annotations: readOnlyAnnotations(),
	}, s.handleCommits)
}
