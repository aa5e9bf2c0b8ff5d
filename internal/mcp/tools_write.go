package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/jira/internal/jira"
)

// --- Add comment tool ---

// AddCommentInput is the input for the jira_add_comment tool.
type AddCommentInput struct {
	Key  string `json:"key"  jsonschema:"issue key (required)"`
	Body string `json:"body" jsonschema:"comment text (required)"`
}

// AddCommentOutput is the output for the jira_add_comment tool.
type AddCommentOutput struct {
	ID      string `json:"id"                jsonschema:"created comment ID"`
	Key     string `json:"key"               jsonschema:"issue the comment was added to"`
	Author  string `json:"author,omitempty"  jsonschema:"comment author display name"`
	Created string `json:"created,omitempty" jsonschema:"creation timestamp"`
}

func handleAddComment(client *jira.Client) mcp.ToolHandlerFor[AddCommentInput, AddCommentOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AddCommentInput) (*mcp.CallToolResult, AddCommentOutput, error) {
		if input.Key == "" {
			return nil, AddCommentOutput{}, errors.New("key is required")
		}
		if input.Body == "" {
			return nil, AddCommentOutput{}, errors.New("body is required")
		}

		comment, err := client.AddComment(ctx, input.Key, input.Body)
		if err != nil {
			return nil, AddCommentOutput{}, err
		}

		out := AddCommentOutput{
			ID:      comment.ID,
			Key:     input.Key,
			Created: comment.Created,
		}
		if comment.Author != nil {
			out.Author = comment.Author.DisplayName
		}

		return nil, out, nil
	}
}

// --- Transition issue tool ---

// TransitionIssueInput is the input for the jira_transition_issue tool.
type TransitionIssueInput struct {
	Key        string `json:"key"                  jsonschema:"issue key (required)"`
	Status     string `json:"status"               jsonschema:"target transition or status name (required)"`
	Resolution string `json:"resolution,omitempty" jsonschema:"resolution to set, e.g. Fixed or Done"`
	Comment    string `json:"comment,omitempty"    jsonschema:"comment to add with the transition"`
}

// TransitionIssueOutput is the output for the jira_transition_issue tool.
type TransitionIssueOutput struct {
	Key        string `json:"key"          jsonschema:"issue key"`
	Transition string `json:"transition"   jsonschema:"transition that was applied"`
	To         string `json:"to,omitempty" jsonschema:"resulting status"`
}

func handleTransitionIssue(client *jira.Client) mcp.ToolHandlerFor[TransitionIssueInput, TransitionIssueOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TransitionIssueInput) (*mcp.CallToolResult, TransitionIssueOutput, error) {
		if input.Key == "" {
			return nil, TransitionIssueOutput{}, errors.New("key is required")
		}
		if input.Status == "" {
			return nil, TransitionIssueOutput{}, errors.New("status is required")
		}

		transitions, err := client.Transitions(ctx, input.Key)
		if err != nil {
			return nil, TransitionIssueOutput{}, err
		}

		match := jira.MatchTransition(transitions, input.Status)
		if match == nil {
			names := make([]string, len(transitions))
			for i, tr := range transitions {
				names[i] = tr.Name
			}
			return nil, TransitionIssueOutput{}, fmt.Errorf(
				"transition %q not available for %s (available: %s)",
				input.Status, input.Key, strings.Join(names, ", "))
		}

		if err := client.DoTransition(ctx, input.Key, match.ID, input.Resolution, input.Comment); err != nil {
			return nil, TransitionIssueOutput{}, err
		}

		out := TransitionIssueOutput{
			Key:        input.Key,
			Transition: match.Name,
			To:         match.To.Name,
		}

		return nil, out, nil
	}
}
