package jira

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// SearchResult is a page of issues matching a JQL query.
type SearchResult struct {
	Issues []Issue `json:"issues"`
	Total  int     `json:"total,omitempty"`
}

// Search runs a JQL query. Cloud uses the enhanced POST endpoint, Server/DC
// the classic GET search.
func (c *Client) Search(ctx context.Context, jql string, maxResults int, fields []string) (*SearchResult, error) {
	var result SearchResult

	if c.cloud {
		payload := map[string]any{
			"jql":        jql,
			"maxResults": maxResults,
			"fields":     fields,
		}
		if err := c.do(ctx, http.MethodPost, c.api("/search/jql"), nil, payload, &result); err != nil {
			return nil, err
		}
		return &result, nil
	}

	query := url.Values{}
	query.Set("jql", jql)
	query.Set("maxResults", strconv.Itoa(maxResults))
	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}
	if err := c.do(ctx, http.MethodGet, c.api("/search"), query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
