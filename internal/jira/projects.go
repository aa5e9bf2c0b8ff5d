package jira

import (
	"context"
	"net/http"
)

// Project is a Jira project.
type Project struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// GetProject fetches a project by key or ID.
func (c *Client) GetProject(ctx context.Context, key string) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodGet, c.api("/project/"+key), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}
