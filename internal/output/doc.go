// Package output provides structured output handling for the jira CLI.
//
// This package handles human-readable, quiet, and JSON output formats,
// supporting the agent-friendly design principle that all commands should
// work well for both human users and automated agents.
//
// # Printer
//
// The Printer is the primary interface for command output. It automatically
// handles format switching based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//
//	// For success output
//	printer.Success(map[string]any{"message": "Worklog added", "key": issueKey})
//
//	// For error output
//	printer.Error(err)
//
//	// For raw output
//	printer.Println("Some text")
//	printer.Print("Formatted: %s\n", value)
//
// # JSON Mode
//
// When JSON mode is enabled (via --json flag), all output is structured:
//
//	// Success: {"message": "...", "key": "...", ...}
//	// Error: {"error": "message", "code": N}
//
// # Quiet Mode
//
// When quiet mode is enabled (via --quiet), commands print bare issue keys
// or ids, one per line, and nothing else. Check it with printer.IsQuiet().
//
// # Styling
//
// For human-readable output, the package provides lipgloss-based styling
// that automatically disables when output is piped. Success lines carry a
// ✓ prefix, errors a ✗ prefix on stderr, warnings a ⚠ prefix on stderr.
// Tables join columns with " | " and rule off the header with "-+-".
//
// # Exit Codes
//
// The package defines standard exit codes and error types:
//
//	output.ExitSuccess         // 0: Success
//	output.ExitUserError       // 1: Failure (bad args, rejected operations)
//	output.ExitConfigError     // 2: Configuration error (credentials, profiles)
//	output.ExitConnectionError // 3: Connection error (unreachable, unauthorized)
//
// # Error Types
//
// Use the error constructors to create properly-coded errors:
//
//	output.NewUserError("No transition to 'Done' available")
//	output.NewConfigError("Missing required variable: JIRA_URL")
//	output.NewConnectionError("Cannot reach https://jira.example.com")
//
// These errors carry exit codes that are used for both JSON error output
// and process exit codes, and may carry a one-line suggestion rendered
// under the message in human mode.
package output
