// Package main provides the entry point for the jira CLI.
package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/logging"
	"github.com/gorewood/jira/internal/output"
)

// newRootCmd creates the root command for the jira CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jira",
		Short: "A profile-aware Jira CLI for humans and agents",
		Long: `Jira from the command line, for Cloud and Server/Data Center instances.

Credentials come from ~/.env.jira or from named profiles in
~/.jira/profiles.json. Commands that take an issue key or URL route
automatically to the profile that owns it, so one binary can talk to
several Jira instances.

All commands support --json for structured output and --quiet for
bare keys and ids.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'jira --help' for usage")
				printer.Error(err)
				return err
			}
			// Otherwise show help
			return cmd.Help()
		},
	}

	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		logging.Setup(isDebugMode(cmd))
	}

	// Persistent flags, available to all subcommands
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Minimal output (keys and ids only)")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().String("env-file", "", "Credential file path (overrides profiles)")
	cmd.PersistentFlags().String("profile", "", "Profile name from ~/.jira/profiles.json")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	// Define command groups and add commands
	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agile", Title: "Agile Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	// Core commands: day-to-day issue work
	addGroupedCommand(cmd, newIssueCmd(), "core")
	addGroupedCommand(cmd, newCreateCmd(), "core")
	addGroupedCommand(cmd, newSearchCmd(), "core")
	addGroupedCommand(cmd, newCommentCmd(), "core")
	addGroupedCommand(cmd, newTransitionCmd(), "core")
	addGroupedCommand(cmd, newWorklogCmd(), "core")
	addGroupedCommand(cmd, newLinkCmd(), "core")
	addGroupedCommand(cmd, newAttachmentCmd(), "core")

	// Agile commands: boards and sprints
	addGroupedCommand(cmd, newSprintCmd(), "agile")
	addGroupedCommand(cmd, newBoardCmd(), "agile")

	// Admin commands: configuration and diagnostics
	addGroupedCommand(cmd, newSetupCmd(), "admin")
	addGroupedCommand(cmd, newValidateCmd(), "admin")
	addGroupedCommand(cmd, newUserCmd(), "admin")
	addGroupedCommand(cmd, newFieldsCmd(), "admin")

	// Agent commands: hook and MCP integration
	addGroupedCommand(cmd, newDetectCmd(), "agent")
	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}

// printerFor builds the printer a command writes through, honoring the
// persistent --json, --quiet, and --color flags. Human-mode errors and
// warnings go to the command's stderr.
func printerFor(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	styled := output.ResolveColorMode(flagString(cmd, "color"), output.IsTTY(out))
	return output.NewPrinter(out, isJSONMode(cmd), styled).
		WithStderr(cmd.ErrOrStderr()).
		WithQuiet(isQuietMode(cmd))
}
