package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gorewood/jira/internal/output"
)

const sprintsBody = `{"values": [
	{"id": 301, "name": "Sprint 12", "state": "active", "goal": "Ship auth", "startDate": "2025-03-01T09:00:00.000Z", "endDate": "2025-03-14T17:00:00.000Z"},
	{"id": 302, "name": "Sprint 13", "state": "future"}
]}`

const sprintIssuesBody = `{"issues": [
	{"key": "WEB-1381", "fields": {"summary": "Fix login timeout", "status": {"name": "In Progress"}, "assignee": {"displayName": "Jo Dev"}, "priority": {"name": "High"}}},
	{"key": "WEB-1390", "fields": {"summary": "Update docs", "status": {"name": "Open"}}}
]}`

func TestSprintListHuman(t *testing.T) {
	client, doer := makeTestClient(response(http.StatusOK, sprintsBody))

	var out, errBuf bytes.Buffer
	cmd := newSprintListCmdInternal(client)
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs([]string{"42"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", err, errBuf.String())
	}

	got := out.String()
	if !strings.Contains(got, "Sprints for board 42:") {
		t.Errorf("missing header:\n%s", got)
	}
	for _, cell := range []string{"301", "Sprint 12", "active", "2025-03-01", "2025-03-14", "Sprint 13", "future"} {
		if !strings.Contains(got, cell) {
			t.Errorf("missing %q:\n%s", cell, got)
		}
	}

	req := doer.reqs[0]
	if req.Method != http.MethodGet || req.URL.Path != "/rest/agile/1.0/board/42/sprint" {
		t.Errorf("request = %s %s", req.Method, req.URL.Path)
	}
}

func TestSprintListStateFilter(t *testing.T) {
	client, doer := makeTestClient(response(http.StatusOK, sprintsBody))

	var out bytes.Buffer
	cmd := newSprintListCmdInternal(client)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"42", "--state", "active"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doer.reqs[0].URL.Query().Get("state"); got != "active" {
		t.Errorf("state = %q", got)
	}
}

func TestSprintListInvalidState(t *testing.T) {
	clearJiraEnv(t)
	t.Setenv("HOME", t.TempDir())

	var out, errBuf bytes.Buffer
	cmd := newSprintListCmdInternal(nil)
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs([]string{"42", "--state", "bogus"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := output.GetExitCode(err); got != 1 {
		t.Errorf("exit code = %d", got)
	}
	if !strings.Contains(errBuf.String(), `Invalid --state "bogus" (use active, future, or closed)`) {
		t.Errorf("stderr = %q", errBuf.String())
	}
}

func TestSprintListQuiet(t *testing.T) {
	client, _ := makeTestClient(response(http.StatusOK, sprintsBody))

	var out bytes.Buffer
	cmd := newSprintListCmdInternal(client)
	enableFlag(t, cmd, "quiet")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"42"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "301\n302\n" {
		t.Errorf("quiet output = %q", out.String())
	}
}

func TestSprintListEmptyFiltered(t *testing.T) {
	client, _ := makeTestClient(response(http.StatusOK, `{"values": []}`))

	var out bytes.Buffer
	cmd := newSprintListCmdInternal(client)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"42", "--state", "closed"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "No sprints found for board 42") {
		t.Errorf("missing notice:\n%s", got)
	}
	if !strings.Contains(got, "  (filtered by state: closed)") {
		t.Errorf("missing filter note:\n%s", got)
	}
}

func TestSprintIssuesHuman(t *testing.T) {
	client, doer := makeTestClient(response(http.StatusOK, sprintIssuesBody))

	var out, errBuf bytes.Buffer
	cmd := newSprintIssuesCmdInternal(client)
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs([]string{"301"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", err, errBuf.String())
	}

	got := out.String()
	if !strings.Contains(got, "Issues in sprint 301 (2 total):") {
		t.Errorf("missing header:\n%s", got)
	}
	for _, cell := range []string{"WEB-1381", "Fix login timeout", "In Progress", "Jo Dev", "WEB-1390"} {
		if !strings.Contains(got, cell) {
			t.Errorf("missing %q:\n%s", cell, got)
		}
	}

	req := doer.reqs[0]
	if req.URL.Path != "/rest/agile/1.0/sprint/301/issue" {
		t.Errorf("path = %s", req.URL.Path)
	}
	if got := req.URL.Query().Get("fields"); got != defaultSprintFields {
		t.Errorf("fields = %q", got)
	}
}

func TestSprintIssuesCustomFields(t *testing.T) {
	client, doer := makeTestClient(response(http.StatusOK, sprintIssuesBody))

	var out bytes.Buffer
	cmd := newSprintIssuesCmdInternal(client)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"301", "--fields", "key,summary,priority"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := doer.reqs[0].URL.Query().Get("fields"); got != "key,summary,priority" {
		t.Errorf("fields = %q", got)
	}
	got := out.String()
	// Priority objects collapse to their name in the table.
	if !strings.Contains(got, "High") {
		t.Errorf("missing priority cell:\n%s", got)
	}
	if strings.Contains(got, "Jo Dev") {
		t.Errorf("assignee should not be shown:\n%s", got)
	}
}

func TestSprintIssuesEmpty(t *testing.T) {
	client, _ := makeTestClient(response(http.StatusOK, `{"issues": []}`))

	var out bytes.Buffer
	cmd := newSprintIssuesCmdInternal(client)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"301"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No issues in sprint 301") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSprintCurrentHuman(t *testing.T) {
	client, doer := makeTestClient(response(http.StatusOK, sprintsBody))

	var out, errBuf bytes.Buffer
	cmd := newSprintCurrentCmdInternal(client)
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs([]string{"42"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", err, errBuf.String())
	}

	got := out.String()
	if !strings.Contains(got, "Current sprint for board 42:") {
		t.Errorf("missing header:\n%s", got)
	}
	for _, line := range []string{"  ID: 301", "  Name: Sprint 12", "  Goal: Ship auth", "  Start: 2025-03-01", "  End: 2025-03-14"} {
		if !strings.Contains(got, line) {
			t.Errorf("missing %q:\n%s", line, got)
		}
	}

	if got := doer.reqs[0].URL.Query().Get("state"); got != "active" {
		t.Errorf("state = %q", got)
	}
}

func TestSprintCurrentNone(t *testing.T) {
	client, _ := makeTestClient(response(http.StatusOK, `{"values": []}`))

	var out bytes.Buffer
	cmd := newSprintCurrentCmdInternal(client)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"42"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No active sprint for board 42") {
		t.Errorf("output = %q", out.String())
	}
}

func TestSprintCurrentQuiet(t *testing.T) {
	client, _ := makeTestClient(response(http.StatusOK, sprintsBody))

	var out bytes.Buffer
	cmd := newSprintCurrentCmdInternal(client)
	enableFlag(t, cmd, "quiet")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"42"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "301\n" {
		t.Errorf("quiet output = %q", out.String())
	}
}

func TestSprintCurrentJSON(t *testing.T) {
	client, _ := makeTestClient(response(http.StatusOK, sprintsBody))

	var out bytes.Buffer
	cmd := newSprintCurrentCmdInternal(client)
	enableFlag(t, cmd, "json")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"42"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if got["name"] != "Sprint 12" || got["goal"] != "Ship auth" {
		t.Errorf("sprint = %v", got)
	}
}

func TestSprintCurrentInvalidID(t *testing.T) {
	clearJiraEnv(t)
	t.Setenv("HOME", t.TempDir())

	var out, errBuf bytes.Buffer
	cmd := newSprintCurrentCmdInternal(nil)
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs([]string{"x"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := output.GetExitCode(err); got != 1 {
		t.Errorf("exit code = %d", got)
	}
	if !strings.Contains(errBuf.String(), `Invalid board ID "x" (expected a number)`) {
		t.Errorf("stderr = %q", errBuf.String())
	}
}
