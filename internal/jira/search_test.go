package jira

import (
	"context"
	"net/http"
	"testing"
)

func TestSearchCloud(t *testing.T) {
	body := `{"issues":[{"key":"WEB-1","fields":{"summary":"First"}},{"key":"WEB-2","fields":{"summary":"Second"}}]}`
	doer := &capturingDoer{response: jsonResponse(http.StatusOK, body)}
	c := cloudClient(doer)

	result, err := c.Search(context.Background(), "project = WEB", 50, []string{"summary", "status"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if doer.req.Method != http.MethodPost {
		t.Errorf("method = %q, want POST", doer.req.Method)
	}
	if doer.req.URL.Path != "/rest/api/3/search/jql" {
		t.Errorf("path = %q, want /rest/api/3/search/jql", doer.req.URL.Path)
	}
	payload := decodeBody(t, doer.body)
	if payload["jql"] != "project = WEB" {
		t.Errorf("jql = %v", payload["jql"])
	}
	if payload["maxResults"] != float64(50) {
		t.Errorf("maxResults = %v, want 50", payload["maxResults"])
	}
	fields, ok := payload["fields"].([]any)
	if !ok || len(fields) != 2 || fields[0] != "summary" {
		t.Errorf("fields = %v", payload["fields"])
	}
	if len(result.Issues) != 2 {
		t.Errorf("len(Issues) = %d, want 2", len(result.Issues))
	}
}

func TestSearchServer(t *testing.T) {
	doer := &capturingDoer{response: jsonResponse(http.StatusOK, `{"issues":[],"total":0}`)}
	c := serverClient(doer)

	if _, err := c.Search(context.Background(), "assignee = jdoe", 10, []string{"summary"}); err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if doer.req.Method != http.MethodGet {
		t.Errorf("method = %q, want GET", doer.req.Method)
	}
	if doer.req.URL.Path != "/rest/api/2/search" {
		t.Errorf("path = %q, want /rest/api/2/search", doer.req.URL.Path)
	}
	query := doer.req.URL.Query()
	if got := query.Get("jql"); got != "assignee = jdoe" {
		t.Errorf("jql = %q", got)
	}
	if got := query.Get("maxResults"); got != "10" {
		t.Errorf("maxResults = %q, want 10", got)
	}
	if got := query.Get("fields"); got != "summary" {
		t.Errorf("fields = %q, want summary", got)
	}
}
