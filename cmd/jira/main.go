// Package main provides the entry point for the jira CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// isJSONMode reads the --json persistent flag from the command hierarchy,
// so commands stay independently testable without shared mutable state.
func isJSONMode(cmd *cobra.Command) bool {
	return flagString(cmd, "json") == "true"
}

// isQuietMode reads the --quiet persistent flag from the command hierarchy.
func isQuietMode(cmd *cobra.Command) bool {
	return flagString(cmd, "quiet") == "true"
}

// isDebugMode reads the --debug persistent flag from the command hierarchy.
func isDebugMode(cmd *cobra.Command) bool {
	return flagString(cmd, "debug") == "true"
}

// flagString returns the string value of a flag, checking the command's own
// flags first and falling back to the root's persistent flags. Returns ""
// when the flag is not registered, which keeps commands runnable standalone
// in tests.
func flagString(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}
