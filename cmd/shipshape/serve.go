package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	shipshapemcp "github.com/harborline/shipshape/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run shipshape as a Model Context Protocol (MCP) server over stdio.

This exposes the checks as MCP tools that any MCP-capable agent
environment can call for structured findings.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "shipshape": {
        "command": "shipshape",
        "args": ["serve"]
      }
    }
  }

Available tools: check, pair_verify, pair_sync, links, secrets, commits`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := loadRepo()
			if err != nil {
				return err
			}
			server := shipshapemcp.NewServer(buildVersion(), rc.Root, rc.Config, rc.Converter)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
