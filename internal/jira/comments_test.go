package jira

import (
	"context"
	"net/http"
	"testing"
)

func TestAddCommentServer(t *testing.T) {
	doer := &capturingDoer{response: jsonResponse(http.StatusCreated, `{"id":"500","body":"Looks good"}`)}
	c := serverClient(doer)

	comment, err := c.AddComment(context.Background(), "WEB-8", "Looks good")
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	if doer.req.URL.Path != "/rest/api/2/issue/WEB-8/comment" {
		t.Errorf("path = %q", doer.req.URL.Path)
	}
	payload := decodeBody(t, doer.body)
	if payload["body"] != "Looks good" {
		t.Errorf("body = %v, want plain string on server", payload["body"])
	}
	if comment.ID != "500" {
		t.Errorf("ID = %q, want 500", comment.ID)
	}
}

func TestAddCommentCloud(t *testing.T) {
	doer := &capturingDoer{response: jsonResponse(http.StatusCreated, `{"id":"501"}`)}
	c := cloudClient(doer)

	if _, err := c.AddComment(context.Background(), "WEB-8", "Shipped"); err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	if doer.req.URL.Path != "/rest/api/3/issue/WEB-8/comment" {
		t.Errorf("path = %q", doer.req.URL.Path)
	}
	payload := decodeBody(t, doer.body)
	body, ok := payload["body"].(map[string]any)
	if !ok || body["type"] != "doc" {
		t.Errorf("body = %v, want ADF document on cloud", payload["body"])
	}
}

func TestComments(t *testing.T) {
	raw := `{"comments":[
		{"id":"1","author":{"displayName":"Ann"},"body":"Oldest","created":"2025-01-01T10:00:00.000+0000"},
		{"id":"2","author":{"displayName":"Bob"},"body":"Newest","created":"2025-02-01T10:00:00.000+0000"}
	]}`
	doer := &capturingDoer{response: jsonResponse(http.StatusOK, raw)}
	c := serverClient(doer)

	comments, err := c.Comments(context.Background(), "WEB-8")
	if err != nil {
		t.Fatalf("Comments() error = %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("len(comments) = %d, want 2", len(comments))
	}
	// The API returns oldest first; callers reorder for display.
	if comments[0].Body.String() != "Oldest" || comments[1].Body.String() != "Newest" {
		t.Errorf("comments out of order: %q then %q", comments[0].Body, comments[1].Body)
	}
}
