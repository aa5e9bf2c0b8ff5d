// Package mcp provides a Model Context Protocol server for the jira CLI.
// It exposes issue operations as MCP tools that any MCP-capable agent can
// use, backed by the same resolved connection the commands use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/jira/internal/jira"
)

// NewServer creates an MCP server with all jira tools registered.
func NewServer(version string, client *jira.Client) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "jira",
		Version: version,
	}, nil)
	registerTools(server, client)
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
		OpenWorldHint:  boolPtr(true),
	}
}

// writeAnnotations returns annotations for write tools (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
}

// registerTools adds all jira tools to the server.
func registerTools(server *mcp.Server, client *jira.Client) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "jira_get_issue",
		Description: "Get a Jira issue by key. Returns summary, status, type, priority, assignee, reporter, labels, and the full description as plain text.",
		Annotations: readOnlyAnnotations(),
	}, handleGetIssue(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "jira_search",
		Description: "Search issues with a JQL query. Returns up to max_results condensed issues (key, summary, status, assignee, priority).",
		Annotations: readOnlyAnnotations(),
	}, handleSearch(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "jira_list_transitions",
		Description: "List the workflow transitions currently available for an issue, with the status each one leads to.",
		Annotations: readOnlyAnnotations(),
	}, handleListTransitions(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "jira_add_comment",
		Description: "Add a comment to an issue. Plain text; Cloud instances receive it as an ADF document, Server/DC as wiki markup.",
		Annotations: writeAnnotations(),
	}, handleAddComment(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "jira_transition_issue",
		Description: "Move an issue to a new status. Matches the target against available transition names and destination statuses, case-insensitively. Optionally sets a resolution and adds a comment in the same step.",
		Annotations: writeAnnotations(),
	}, handleTransitionIssue(client))
}
