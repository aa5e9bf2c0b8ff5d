package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/jira/internal/jira"
)

// defaultSearchFields matches the search command's default column set.
const defaultSearchFields = "summary,status,assignee,priority"

// --- Shared types ---

// IssueSummary is a condensed issue for tool output.
type IssueSummary struct {
	Key      string `json:"key"                jsonschema:"issue key"`
	Summary  string `json:"summary"            jsonschema:"one-line summary"`
	Status   string `json:"status,omitempty"   jsonschema:"workflow status name"`
	Type     string `json:"type,omitempty"     jsonschema:"issue type name"`
	Priority string `json:"priority,omitempty" jsonschema:"priority name"`
	Assignee string `json:"assignee,omitempty" jsonschema:"assignee display name"`
	URL      string `json:"url"                jsonschema:"browse URL"`
}

func toIssueSummary(client *jira.Client, issue jira.Issue) IssueSummary {
	out := IssueSummary{
		Key:     issue.Key,
		Summary: issue.Fields.Summary,
		URL:     client.BrowseURL(issue.Key),
	}
	if issue.Fields.Status != nil {
		out.Status = issue.Fields.Status.Name
	}
	if issue.Fields.IssueType != nil {
		out.Type = issue.Fields.IssueType.Name
	}
	if issue.Fields.Priority != nil {
		out.Priority = issue.Fields.Priority.Name
	}
	if issue.Fields.Assignee != nil {
		out.Assignee = issue.Fields.Assignee.DisplayName
	}
	return out
}

// --- Get issue tool ---

// GetIssueInput is the input for the jira_get_issue tool.
type GetIssueInput struct {
	Key string `json:"key" jsonschema:"issue key such as WEB-1381 (required)"`
}

// GetIssueOutput is the output for the jira_get_issue tool.
type GetIssueOutput struct {
	IssueSummary
	Reporter    string   `json:"reporter,omitempty"    jsonschema:"reporter display name"`
	Labels      []string `json:"labels,omitempty"      jsonschema:"issue labels"`
	Description string   `json:"description,omitempty" jsonschema:"description as plain text"`
	Created     string   `json:"created,omitempty"     jsonschema:"creation timestamp"`
	Updated     string   `json:"updated,omitempty"     jsonschema:"last update timestamp"`
}

func handleGetIssue(client *jira.Client) mcp.ToolHandlerFor[GetIssueInput, GetIssueOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetIssueInput) (*mcp.CallToolResult, GetIssueOutput, error) {
		if input.Key == "" {
			return nil, GetIssueOutput{}, errors.New("key is required")
		}

		issue, err := client.GetIssue(ctx, input.Key,
			"summary,status,issuetype,priority,assignee,reporter,labels,description,created,updated", "")
		if err != nil {
			return nil, GetIssueOutput{}, err
		}

		out := GetIssueOutput{
			IssueSummary: toIssueSummary(client, *issue),
			Labels:       issue.Fields.Labels,
			Created:      issue.Fields.Created,
			Updated:      issue.Fields.Updated,
		}
		if issue.Fields.Reporter != nil {
			out.Reporter = issue.Fields.Reporter.DisplayName
		}
		if issue.Fields.Description != nil {
			out.Description = issue.Fields.Description.String()
		}

		return nil, out, nil
	}
}

// --- Search tool ---

// SearchInput is the input for the jira_search tool.
type SearchInput struct {
	JQL        string `json:"jql"                   jsonschema:"JQL query (required)"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum issues to return (default 50)"`
}

// SearchOutput is the output for the jira_search tool.
type SearchOutput struct {
	Count  int            `json:"count"            jsonschema:"number of issues returned"`
	Issues []IssueSummary `json:"issues,omitempty" jsonschema:"matching issues"`
}

func handleSearch(client *jira.Client) mcp.ToolHandlerFor[SearchInput, SearchOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		if input.JQL == "" {
			return nil, SearchOutput{}, errors.New("jql is required")
		}
		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = 50
		}

		result, err := client.Search(ctx, input.JQL, maxResults, strings.Split(defaultSearchFields, ","))
		if err != nil {
			return nil, SearchOutput{}, err
		}

		out := SearchOutput{Count: len(result.Issues)}
		for _, issue := range result.Issues {
			out.Issues = append(out.Issues, toIssueSummary(client, issue))
		}

		return nil, out, nil
	}
}

// --- List transitions tool ---

// ListTransitionsInput is the input for the jira_list_transitions tool.
type ListTransitionsInput struct {
	Key string `json:"key" jsonschema:"issue key (required)"`
}

// TransitionSummary is a single available transition.
type TransitionSummary struct {
	ID   string `json:"id"           jsonschema:"transition ID"`
	Name string `json:"name"         jsonschema:"transition name"`
	To   string `json:"to,omitempty" jsonschema:"status the transition leads to"`
}

// ListTransitionsOutput is the output for the jira_list_transitions tool.
type ListTransitionsOutput struct {
	Transitions []TransitionSummary `json:"transitions" jsonschema:"available transitions"`
}

func handleListTransitions(client *jira.Client) mcp.ToolHandlerFor[ListTransitionsInput, ListTransitionsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListTransitionsInput) (*mcp.CallToolResult, ListTransitionsOutput, error) {
		if input.Key == "" {
			return nil, ListTransitionsOutput{}, errors.New("key is required")
		}

		transitions, err := client.Transitions(ctx, input.Key)
		if err != nil {
			return nil, ListTransitionsOutput{}, err
		}

		out := ListTransitionsOutput{}
		for _, tr := range transitions {
			out.Transitions = append(out.Transitions, TransitionSummary{
				ID:   tr.ID,
				Name: tr.Name,
				To:   tr.To.Name,
			})
		}

		return nil, out, nil
	}
}
