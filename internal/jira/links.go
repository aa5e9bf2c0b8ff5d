package jira

import (
	"context"
	"net/http"
)

// LinkType describes an issue link relation.
type LinkType struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Inward  string `json:"inward"`
	Outward string `json:"outward"`
}

type linkTypesResponse struct {
	IssueLinkTypes []LinkType `json:"issueLinkTypes"`
}

// LinkTypes lists the link relations configured on the instance.
func (c *Client) LinkTypes(ctx context.Context) ([]LinkType, error) {
	var resp linkTypesResponse
	if err := c.do(ctx, http.MethodGet, c.api("/issueLinkType"), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.IssueLinkTypes, nil
}

// CreateLink links two issues. The outward issue is the source of the
// relation, so "PROJ-1 blocks PROJ-2" has outward PROJ-1 and inward
// PROJ-2.
func (c *Client) CreateLink(ctx context.Context, linkType, outwardKey, inwardKey string) error {
	payload := map[string]any{
		"type":         map[string]any{"name": linkType},
		"outwardIssue": map[string]any{"key": outwardKey},
		"inwardIssue":  map[string]any{"key": inwardKey},
	}
	return c.do(ctx, http.MethodPost, c.api("/issueLink"), nil, payload, nil)
}
