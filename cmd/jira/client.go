// Package main provides the entry point for the jira CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/config"
	"github.com/gorewood/jira/internal/jira"
	"github.com/gorewood/jira/internal/output"
)

// resolveConnection picks the connection for this invocation. input is the
// positional issue key or URL, when the command has one, so the resolver can
// route it to the profile that owns it.
func resolveConnection(cmd *cobra.Command, input string) (*config.Connection, error) {
	dir, err := os.Getwd()
	if err != nil {
		dir = ""
	}
	resolver := &config.Resolver{Warn: cmd.ErrOrStderr()}
	conn, err := resolver.Resolve(config.Hint{
		EnvFile: flagString(cmd, "env-file"),
		Profile: flagString(cmd, "profile"),
		Input:   input,
		Dir:     dir,
	})
	if err != nil {
		return nil, output.NewConfigError(err.Error())
	}
	if err := conn.Validate(); err != nil {
		return nil, output.NewConfigError(err.Error())
	}
	return conn, nil
}

// resolveClient builds the REST client for a command invocation.
func resolveClient(cmd *cobra.Command, input string) (*jira.Client, error) {
	conn, err := resolveConnection(cmd, input)
	if err != nil {
		return nil, err
	}
	return jira.NewClient(conn, config.DetectMode(conn)), nil
}

// ensureClient returns the injected client, or resolves one from the
// invocation's flags and input. Commands take an optional client so tests
// can inject a double.
func ensureClient(cmd *cobra.Command, client *jira.Client, input string) (*jira.Client, error) {
	if client != nil {
		return client, nil
	}
	return resolveClient(cmd, input)
}

// wrapAPIError converts a REST failure into an exit-coded error, prefixed
// with what the command was doing. Connectivity and authentication failures
// exit 3; everything else is an ordinary failure.
func wrapAPIError(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...) + ": " + err.Error()
	if jira.IsConnectionError(err) || jira.IsAuthError(err) {
		return output.NewConnectionErrorWithCause(msg, err)
	}
	return &output.ExitError{
		Code:    output.ExitUserError,
		Message: msg,
		Cause:   err,
	}
}
