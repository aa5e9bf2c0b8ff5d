package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	jiramcp "github.com/gorewood/jira/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run jira as a Model Context Protocol (MCP) server over stdio.

This exposes Jira operations as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).
The connection resolves the same way as every other command, so
--profile and --env-file select the instance the server talks to.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "jira": {
        "command": "jira",
        "args": ["serve"]
      }
    }
  }

Available tools: jira_get_issue, jira_search, jira_list_transitions,
jira_add_comment, jira_transition_issue`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := resolveClient(cmd, "")
			if err != nil {
				printerFor(cmd).Error(err)
				return err
			}
			server := jiramcp.NewServer(buildVersion(), client)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
