package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gorewood/jira/internal/output"
)

func TestServeNoConfigFails(t *testing.T) {
	clearJiraEnv(t)
	t.Setenv("HOME", t.TempDir())

	var out, errBuf bytes.Buffer
	cmd := newServeCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs([]string{})

	// The server refuses to start without a resolvable connection, so it
	// never reaches the stdio transport.
	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := output.GetExitCode(err); got != 2 {
		t.Errorf("exit code = %d", got)
	}
	if !strings.Contains(errBuf.String(), "Missing required variable: JIRA_URL") {
		t.Errorf("stderr = %q", errBuf.String())
	}
}

func TestServeHelpListsTools(t *testing.T) {
	var out bytes.Buffer
	cmd := newServeCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	for _, tool := range []string{
		"jira_get_issue",
		"jira_search",
		"jira_list_transitions",
		"jira_add_comment",
		"jira_transition_issue",
	} {
		if !strings.Contains(got, tool) {
			t.Errorf("help should mention %s:\n%s", tool, got)
		}
	}
	if !strings.Contains(got, "mcpServers") {
		t.Errorf("help should show the agent config snippet:\n%s", got)
	}
}
