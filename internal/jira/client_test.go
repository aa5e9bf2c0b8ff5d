package jira

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gorewood/jira/internal/config"
)

// capturingDoer records the last request and returns a canned response.
type capturingDoer struct {
	req      *http.Request
	body     []byte
	response *http.Response
	err      error
}

func (d *capturingDoer) Do(req *http.Request) (*http.Response, error) {
	d.req = req
	if req.Body != nil {
		d.body, _ = io.ReadAll(req.Body)
	}
	if d.err != nil {
		return nil, d.err
	}
	return d.response, nil
}

// sequenceDoer replays responses in order across multiple calls.
type sequenceDoer struct {
	reqs      []*http.Request
	bodies    [][]byte
	responses []*http.Response
}

func (d *sequenceDoer) Do(req *http.Request) (*http.Response, error) {
	d.reqs = append(d.reqs, req)
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	d.bodies = append(d.bodies, body)
	resp := d.responses[0]
	d.responses = d.responses[1:]
	return resp, nil
}

// jsonResponse creates a canned HTTP response. The body uses io.NopCloser
// so no explicit close is required.
func jsonResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func cloudClient(doer HTTPDoer) *Client {
	conn := &config.Connection{URL: "https://example.atlassian.net/", VerifySSL: true}
	mode := config.CloudAuth{Username: "user@example.com", APIToken: "tok123"}
	return NewClient(conn, mode, WithHTTPClient(doer))
}

func serverClient(doer HTTPDoer) *Client {
	conn := &config.Connection{URL: "https://jira.example.com", VerifySSL: true}
	mode := config.ServerAuth{Token: "pat-token"}
	return NewClient(conn, mode, WithHTTPClient(doer))
}

func decodeBody(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decoding request body: %v", err)
	}
	return payload
}

func TestNewClientCloud(t *testing.T) {
	c := cloudClient(&capturingDoer{})

	if c.baseURL != "https://example.atlassian.net" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", c.baseURL)
	}
	if c.apiBase != "/rest/api/3" {
		t.Errorf("apiBase = %q, want /rest/api/3", c.apiBase)
	}
	if !c.cloud {
		t.Error("cloud = false, want true")
	}
	// base64("user@example.com:tok123")
	want := "Basic dXNlckBleGFtcGxlLmNvbTp0b2sxMjM="
	if c.authHeader != want {
		t.Errorf("authHeader = %q, want %q", c.authHeader, want)
	}
}

func TestNewClientServer(t *testing.T) {
	c := serverClient(&capturingDoer{})

	if c.apiBase != "/rest/api/2" {
		t.Errorf("apiBase = %q, want /rest/api/2", c.apiBase)
	}
	if c.cloud {
		t.Error("cloud = true, want false")
	}
	if c.authHeader != "Bearer pat-token" {
		t.Errorf("authHeader = %q, want Bearer pat-token", c.authHeader)
	}
}

func TestDoSetsHeaders(t *testing.T) {
	doer := &capturingDoer{response: jsonResponse(http.StatusOK, `{"key":"WEB-1"}`)}
	c := serverClient(doer)

	if _, err := c.GetIssue(context.Background(), "WEB-1", "", ""); err != nil {
		t.Fatalf("GetIssue() error = %v", err)
	}

	if got := doer.req.Header.Get("Authorization"); got != "Bearer pat-token" {
		t.Errorf("Authorization = %q, want Bearer pat-token", got)
	}
	if got := doer.req.Header.Get("Accept"); got != "application/json" {
		t.Errorf("Accept = %q, want application/json", got)
	}
	if got := doer.req.Header.Get("Content-Type"); got != "" {
		t.Errorf("Content-Type = %q on GET, want empty", got)
	}
	if doer.req.Method != http.MethodGet {
		t.Errorf("method = %q, want GET", doer.req.Method)
	}
}

func TestDoQueryEncoding(t *testing.T) {
	doer := &capturingDoer{response: jsonResponse(http.StatusOK, `{"key":"WEB-1"}`)}
	c := serverClient(doer)

	if _, err := c.GetIssue(context.Background(), "WEB-1", "summary,status", "changelog"); err != nil {
		t.Fatalf("GetIssue() error = %v", err)
	}

	if got := doer.req.URL.Path; got != "/rest/api/2/issue/WEB-1" {
		t.Errorf("path = %q, want /rest/api/2/issue/WEB-1", got)
	}
	query := doer.req.URL.Query()
	if got := query.Get("fields"); got != "summary,status" {
		t.Errorf("fields = %q, want summary,status", got)
	}
	if got := query.Get("expand"); got != "changelog" {
		t.Errorf("expand = %q, want changelog", got)
	}
}

func TestDoAPIErrorNotFound(t *testing.T) {
	body := `{"errorMessages":["Issue does not exist or you do not have permission to see it."],"errors":{}}`
	doer := &capturingDoer{response: jsonResponse(http.StatusNotFound, body)}
	c := serverClient(doer)

	_, err := c.GetIssue(context.Background(), "WEB-9999", "", "")
	if err == nil {
		t.Fatal("GetIssue() error = nil, want APIError")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound() = false for %v", err)
	}
	want := "not found or no permission (HTTP 404): Issue does not exist or you do not have permission to see it."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestDoAPIErrorFieldMessages(t *testing.T) {
	body := `{"errorMessages":[],"errors":{"priority":"Priority name 'Urgent' is not valid","summary":"You must specify a summary"}}`
	doer := &capturingDoer{response: jsonResponse(http.StatusBadRequest, body)}
	c := serverClient(doer)

	err := c.UpdateIssue(context.Background(), "WEB-1", map[string]any{"summary": ""})
	if err == nil {
		t.Fatal("UpdateIssue() error = nil, want APIError")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	want := []string{
		"priority: Priority name 'Urgent' is not valid",
		"summary: You must specify a summary",
	}
	if len(apiErr.Messages) != len(want) {
		t.Fatalf("Messages = %v, want %v", apiErr.Messages, want)
	}
	for i := range want {
		if apiErr.Messages[i] != want[i] {
			t.Errorf("Messages[%d] = %q, want %q", i, apiErr.Messages[i], want[i])
		}
	}
}

func TestDoAuthError(t *testing.T) {
	doer := &capturingDoer{response: jsonResponse(http.StatusUnauthorized, "")}
	c := cloudClient(doer)

	_, err := c.Myself(context.Background())
	if !IsAuthError(err) {
		t.Errorf("IsAuthError() = false for %v", err)
	}
	if got := err.Error(); got != "authentication failed (HTTP 401)" {
		t.Errorf("Error() = %q, want authentication failed (HTTP 401)", got)
	}
}

func TestParseAPIErrorPlainBody(t *testing.T) {
	apiErr := parseAPIError(http.StatusBadGateway, []byte("<html>Bad Gateway</html>"))

	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", apiErr.StatusCode)
	}
	want := "Jira API error (HTTP 502): <html>Bad Gateway</html>"
	if apiErr.Error() != want {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), want)
	}
}

func TestDoConnectionErrorServer(t *testing.T) {
	doer := &capturingDoer{err: errors.New("dial tcp: connection refused")}
	c := serverClient(doer)

	_, err := c.Myself(context.Background())
	if !IsConnectionError(err) {
		t.Fatalf("IsConnectionError() = false for %v", err)
	}

	msg := err.Error()
	if !strings.Contains(msg, "Failed to connect to Jira at https://jira.example.com") {
		t.Errorf("message missing URL line: %q", msg)
	}
	if !strings.Contains(msg, "JIRA_PERSONAL_TOKEN is a valid Personal Access Token") {
		t.Errorf("message missing PAT hint: %q", msg)
	}
	if strings.Contains(msg, "JIRA_API_TOKEN") {
		t.Errorf("server hint mentions cloud credentials: %q", msg)
	}
}

func TestDoConnectionErrorCloud(t *testing.T) {
	doer := &capturingDoer{err: errors.New("dial tcp: i/o timeout")}
	c := cloudClient(doer)

	_, err := c.Myself(context.Background())
	if !IsConnectionError(err) {
		t.Fatalf("IsConnectionError() = false for %v", err)
	}

	msg := err.Error()
	if !strings.Contains(msg, "JIRA_USERNAME is your email (Cloud) or username (Server/DC)") {
		t.Errorf("message missing username hint: %q", msg)
	}
	if !strings.Contains(msg, "JIRA_API_TOKEN is valid") {
		t.Errorf("message missing token hint: %q", msg)
	}
}

func TestBrowseURL(t *testing.T) {
	c := serverClient(&capturingDoer{})
	if got := c.BrowseURL("WEB-1381"); got != "https://jira.example.com/browse/WEB-1381" {
		t.Errorf("BrowseURL() = %q", got)
	}
}

func TestFieldsList(t *testing.T) {
	body := `[{"id":"summary","name":"Summary","custom":false},{"id":"customfield_10020","name":"Sprint","custom":true,"schema":{"type":"array"}}]`
	doer := &capturingDoer{response: jsonResponse(http.StatusOK, body)}
	c := serverClient(doer)

	fields, err := c.Fields(context.Background())
	if err != nil {
		t.Fatalf("Fields() error = %v", err)
	}
	if doer.req.URL.Path != "/rest/api/2/field" {
		t.Errorf("path = %q, want /rest/api/2/field", doer.req.URL.Path)
	}
	if len(fields) != 2 {
		t.Fatalf("len(fields) = %d, want 2", len(fields))
	}
	if !fields[1].Custom || fields[1].Schema.Type != "array" {
		t.Errorf("custom field decoded as %+v", fields[1])
	}
}

func TestGetProject(t *testing.T) {
	doer := &capturingDoer{response: jsonResponse(http.StatusOK, `{"id":"10000","key":"WEB","name":"Webshop"}`)}
	c := serverClient(doer)

	project, err := c.GetProject(context.Background(), "WEB")
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if doer.req.URL.Path != "/rest/api/2/project/WEB" {
		t.Errorf("path = %q", doer.req.URL.Path)
	}
	if project.Name != "Webshop" {
		t.Errorf("Name = %q, want Webshop", project.Name)
	}
}
