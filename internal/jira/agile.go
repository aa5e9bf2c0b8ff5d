package jira

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Sprint is an agile sprint on a board.
type Sprint struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	Goal      string `json:"goal,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// Board is an agile board.
type Board struct {
	ID       int           `json:"id"`
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	Location BoardLocation `json:"location,omitempty"`
}

// BoardLocation ties a board to its project.
type BoardLocation struct {
	ProjectKey string `json:"projectKey,omitempty"`
}

type sprintPage struct {
	Values []Sprint `json:"values"`
}

type boardPage struct {
	Values []Board `json:"values"`
}

type issuePage struct {
	Issues []Issue `json:"issues"`
}

// Sprints lists the sprints on a board, optionally filtered by state
// (active, future, or closed).
func (c *Client) Sprints(ctx context.Context, boardID int, state string) ([]Sprint, error) {
	query := url.Values{}
	if state != "" {
		query.Set("state", state)
	}

	var page sprintPage
	path := agileBase + "/board/" + strconv.Itoa(boardID) + "/sprint"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &page); err != nil {
		return nil, err
	}
	return page.Values, nil
}

// ActiveSprint returns the first active sprint on a board, or nil when the
// board has none.
func (c *Client) ActiveSprint(ctx context.Context, boardID int) (*Sprint, error) {
	sprints, err := c.Sprints(ctx, boardID, "active")
	if err != nil {
		return nil, err
	}
	if len(sprints) == 0 {
		return nil, nil
	}
	return &sprints[0], nil
}

// SprintIssues lists the issues assigned to a sprint.
func (c *Client) SprintIssues(ctx context.Context, sprintID int, fields []string) ([]Issue, error) {
	query := url.Values{}
	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}

	var page issuePage
	path := agileBase + "/sprint/" + strconv.Itoa(sprintID) + "/issue"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &page); err != nil {
		return nil, err
	}
	return page.Issues, nil
}

// Boards lists agile boards, optionally filtered by project key and board
// type (scrum or kanban).
func (c *Client) Boards(ctx context.Context, project, boardType string) ([]Board, error) {
	query := url.Values{}
	if project != "" {
		query.Set("projectKeyOrId", project)
	}
	if boardType != "" {
		query.Set("type", boardType)
	}

	var page boardPage
	if err := c.do(ctx, http.MethodGet, agileBase+"/board", query, nil, &page); err != nil {
		return nil, err
	}
	return page.Values, nil
}

// BoardIssues lists the issues on a board, optionally narrowed by an extra
// JQL filter.
func (c *Client) BoardIssues(ctx context.Context, boardID int, jql string, maxResults int) ([]Issue, error) {
	query := url.Values{}
	query.Set("maxResults", strconv.Itoa(maxResults))
	if jql != "" {
		query.Set("jql", jql)
	}

	var page issuePage
	path := agileBase + "/board/" + strconv.Itoa(boardID) + "/issue"
	if err := c.do(ctx, http.MethodGet, path, query, nil, &page); err != nil {
		return nil, err
	}
	return page.Issues, nil
}
