package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gorewood/jira/internal/output"
)

func TestIssueUpdateHuman(t *testing.T) {
	client, doer := makeTestClient(response(http.StatusNoContent, ""))

	var out, errBuf bytes.Buffer
	cmd := newIssueUpdateCmdInternal(client)
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs([]string{"WEB-1381", "--summary", "New title", "--priority", "High", "--labels", "backend,urgent"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", err, errBuf.String())
	}

	got := out.String()
	if !strings.Contains(got, "✓ Updated WEB-1381") {
		t.Errorf("missing confirmation:\n%s", got)
	}
	for _, line := range []string{"  ✓ labels", "  ✓ priority", "  ✓ summary"} {
		if !strings.Contains(got, line) {
			t.Errorf("missing %q:\n%s", line, got)
		}
	}

	req := doer.reqs[0]
	if req.Method != http.MethodPut || req.URL.Path != "/rest/api/2/issue/WEB-1381" {
		t.Errorf("request = %s %s", req.Method, req.URL.Path)
	}
	var payload struct {
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(doer.bodies[0], &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.Fields["summary"] != "New title" {
		t.Errorf("summary = %v", payload.Fields["summary"])
	}
	priority, _ := payload.Fields["priority"].(map[string]any)
	if priority["name"] != "High" {
		t.Errorf("priority = %v", payload.Fields["priority"])
	}
	labels, _ := payload.Fields["labels"].([]any)
	if len(labels) != 2 || labels[0] != "backend" || labels[1] != "urgent" {
		t.Errorf("labels = %v", payload.Fields["labels"])
	}
}

func TestIssueUpdateAssignee(t *testing.T) {
	tests := []struct {
		name     string
		assignee string
		field    string
	}{
		{"email becomes emailAddress", "dev@example.com", "emailAddress"},
		{"username becomes name", "jdev", "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, doer := makeTestClient(response(http.StatusNoContent, ""))

			var out bytes.Buffer
			cmd := newIssueUpdateCmdInternal(client)
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs([]string{"WEB-1381", "--assignee", tt.assignee})

			if err := cmd.Execute(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var payload struct {
				Fields map[string]any `json:"fields"`
			}
			if err := json.Unmarshal(doer.bodies[0], &payload); err != nil {
				t.Fatalf("payload: %v", err)
			}
			assignee, _ := payload.Fields["assignee"].(map[string]any)
			if assignee[tt.field] != tt.assignee {
				t.Errorf("assignee = %v", payload.Fields["assignee"])
			}
		})
	}
}

func TestIssueUpdateExtraFields(t *testing.T) {
	client, doer := makeTestClient(response(http.StatusNoContent, ""))

	var out bytes.Buffer
	cmd := newIssueUpdateCmdInternal(client)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"WEB-1381", "--fields-json", `{"customfield_10020": 5}`})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload struct {
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(doer.bodies[0], &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.Fields["customfield_10020"] != float64(5) {
		t.Errorf("customfield_10020 = %v", payload.Fields["customfield_10020"])
	}
}

func TestIssueUpdateNoFields(t *testing.T) {
	clearJiraEnv(t)
	t.Setenv("HOME", t.TempDir())

	var out, errBuf bytes.Buffer
	cmd := newIssueUpdateCmdInternal(nil)
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs([]string{"WEB-1381"})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := output.GetExitCode(err); got != 1 {
		t.Errorf("exit code = %d", got)
	}
	if !strings.Contains(errBuf.String(), "No fields specified for update") {
		t.Errorf("stderr = %q", errBuf.String())
	}
	if !strings.Contains(out.String(), "Use one or more of: --summary, --priority, --labels, --assignee, --fields-json") {
		t.Errorf("missing hint:\n%s", out.String())
	}
}

func TestIssueUpdateDryRun(t *testing.T) {
	clearJiraEnv(t)
	t.Setenv("HOME", t.TempDir())

	var out, errBuf bytes.Buffer
	// No client: the dry run must return before any connection is resolved.
	cmd := newIssueUpdateCmdInternal(nil)
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs([]string{"WEB-1381", "--summary", "New title", "--priority", "High", "--dry-run"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", err, errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "⚠ DRY RUN - No changes will be made") {
		t.Errorf("missing warning:\n%s", errBuf.String())
	}
	got := out.String()
	if !strings.Contains(got, "Would update WEB-1381 with:") {
		t.Errorf("missing preview:\n%s", got)
	}
	if !strings.Contains(got, `  priority: {"name":"High"}`) {
		t.Errorf("missing priority line:\n%s", got)
	}
	if !strings.Contains(got, "  summary: New title") {
		t.Errorf("missing summary line:\n%s", got)
	}
}

func TestIssueUpdateQuiet(t *testing.T) {
	client, _ := makeTestClient(response(http.StatusNoContent, ""))

	var out bytes.Buffer
	cmd := newIssueUpdateCmdInternal(client)
	enableFlag(t, cmd, "quiet")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"WEB-1381", "--summary", "New title"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "WEB-1381\n" {
		t.Errorf("quiet output = %q", out.String())
	}
}

func TestIssueUpdateJSON(t *testing.T) {
	client, _ := makeTestClient(response(http.StatusNoContent, ""))

	var out bytes.Buffer
	cmd := newIssueUpdateCmdInternal(client)
	enableFlag(t, cmd, "json")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"WEB-1381", "--summary", "New title", "--labels", "auth"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got struct {
		Key     string   `json:"key"`
		Updated []string `json:"updated"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if got.Key != "WEB-1381" {
		t.Errorf("key = %q", got.Key)
	}
	if len(got.Updated) != 2 || got.Updated[0] != "labels" || got.Updated[1] != "summary" {
		t.Errorf("updated = %v", got.Updated)
	}
}
