package jira

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// GetIssue fetches a single issue. fields is a comma-separated list to
// restrict the response, expand names sections like changelog or
// transitions; both may be empty.
func (c *Client) GetIssue(ctx context.Context, key, fields, expand string) (*Issue, error) {
	query := url.Values{}
	if fields != "" {
		query.Set("fields", fields)
	}
	if expand != "" {
		query.Set("expand", expand)
	}

	var issue Issue
	if err := c.do(ctx, http.MethodGet, c.api("/issue/"+key), query, nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// CreatedIssue is the response to a successful issue creation.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self,omitempty"`
}

// CreateIssueInput collects the fields for a new issue. Extra entries are
// merged last and may override the named fields.
type CreateIssueInput struct {
	Project     string
	Type        string
	Summary     string
	Description string
	Priority    string
	Labels      []string
	Assignee    string
	Parent      string
	Components  []string
	Extra       map[string]any
}

func (in CreateIssueInput) fields(cloud bool) map[string]any {
	fields := map[string]any{
		"project":   map[string]any{"key": in.Project},
		"summary":   in.Summary,
		"issuetype": map[string]any{"name": in.Type},
	}
	if in.Description != "" {
		if cloud {
			fields["description"] = Document(in.Description)
		} else {
			fields["description"] = in.Description
		}
	}
	if in.Priority != "" {
		fields["priority"] = map[string]any{"name": in.Priority}
	}
	if len(in.Labels) > 0 {
		fields["labels"] = in.Labels
	}
	if in.Assignee != "" {
		fields["assignee"] = assigneeField(in.Assignee)
	}
	if in.Parent != "" {
		fields["parent"] = map[string]any{"key": in.Parent}
	}
	if len(in.Components) > 0 {
		components := make([]map[string]any, 0, len(in.Components))
		for _, name := range in.Components {
			components = append(components, map[string]any{"name": name})
		}
		fields["components"] = components
	}
	for name, value := range in.Extra {
		fields[name] = value
	}
	return fields
}

// CreateIssue creates a new issue and returns its key.
func (c *Client) CreateIssue(ctx context.Context, in CreateIssueInput) (*CreatedIssue, error) {
	payload := map[string]any{"fields": in.fields(c.cloud)}

	var created CreatedIssue
	if err := c.do(ctx, http.MethodPost, c.api("/issue"), nil, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateIssueInput collects field edits for an existing issue. Labels
// replace the existing set. Extra entries are merged last.
type UpdateIssueInput struct {
	Summary  string
	Priority string
	Labels   []string
	Assignee string
	Extra    map[string]any
}

// Fields returns the update payload. An empty map means no edits were
// requested.
func (in UpdateIssueInput) Fields() map[string]any {
	fields := map[string]any{}
	if in.Summary != "" {
		fields["summary"] = in.Summary
	}
	if in.Priority != "" {
		fields["priority"] = map[string]any{"name": in.Priority}
	}
	if len(in.Labels) > 0 {
		fields["labels"] = in.Labels
	}
	if in.Assignee != "" {
		fields["assignee"] = assigneeField(in.Assignee)
	}
	for name, value := range in.Extra {
		fields[name] = value
	}
	return fields
}

// UpdateIssue applies the given field values to an issue.
func (c *Client) UpdateIssue(ctx context.Context, key string, fields map[string]any) error {
	payload := map[string]any{"fields": fields}
	return c.do(ctx, http.MethodPut, c.api("/issue/"+key), nil, payload, nil)
}

// assigneeField treats values containing @ as Cloud email addresses and
// everything else as Server/DC usernames.
func assigneeField(assignee string) map[string]any {
	if strings.Contains(assignee, "@") {
		return map[string]any{"emailAddress": assignee}
	}
	return map[string]any{"name": assignee}
}
