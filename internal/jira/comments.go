package jira

import (
	"context"
	"net/http"
)

// AddComment posts a comment on an issue. On Server/DC the text is wiki
// markup passed through verbatim; on Cloud it is wrapped in an ADF
// document.
func (c *Client) AddComment(ctx context.Context, key, text string) (*Comment, error) {
	payload := map[string]any{"body": c.textBody(text)}

	var comment Comment
	if err := c.do(ctx, http.MethodPost, c.api("/issue/"+key+"/comment"), nil, payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Comments lists the comments on an issue, oldest first.
func (c *Client) Comments(ctx context.Context, key string) ([]Comment, error) {
	var page CommentPage
	if err := c.do(ctx, http.MethodGet, c.api("/issue/"+key+"/comment"), nil, nil, &page); err != nil {
		return nil, err
	}
	return page.Comments, nil
}
