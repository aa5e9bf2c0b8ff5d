package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/jira"
)

// newWorklogCmd creates the worklog command group.
func newWorklogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worklog",
		Short: "Add and list time tracking entries",
	}
	cmd.AddCommand(newWorklogAddCmd())
	cmd.AddCommand(newWorklogListCmd())
	return cmd
}

// newWorklogAddCmd creates the worklog add command.
func newWorklogAddCmd() *cobra.Command {
	return newWorklogAddCmdInternal(nil)
}

// newWorklogAddCmdInternal creates the worklog add command with optional
// client injection.
func newWorklogAddCmdInternal(client *jira.Client) *cobra.Command {
	var commentFlag string
	var startedFlag string

	cmd := &cobra.Command{
		Use:   "add ISSUE_KEY TIME_SPENT",
		Short: "Add a worklog entry to an issue",
		Long: `Add a worklog entry to an issue.

TIME_SPENT uses Jira duration syntax: '2h 30m', '1d', '30m'.

Examples:
  jira worklog add PROJ-123 "2h 30m" -c "Code review"
  jira worklog add PROJ-123 "1d" --started "2025-01-15T09:00:00"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorklogAdd(cmd, client, args[0], args[1], commentFlag, startedFlag)
		},
	}

	cmd.Flags().StringVarP(&commentFlag, "comment", "c", "", "Worklog comment")
	cmd.Flags().StringVar(&startedFlag, "started", "", "Start time (YYYY-MM-DD, YYYY-MM-DDTHH:MM, or YYYY-MM-DDTHH:MM:SS; default now)")

	return cmd
}

// runWorklogAdd executes the worklog add command.
func runWorklogAdd(cmd *cobra.Command, client *jira.Client, key, timeSpent, comment, started string) error {
	printer := printerFor(cmd)

	client, err := ensureClient(cmd, client, key)
	if err != nil {
		printer.Error(err)
		return err
	}

	worklog, err := client.AddWorklog(cmd.Context(), key, timeSpent, comment, started)
	if err != nil {
		err = wrapAPIError(err, "Failed to add worklog to %s", key)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(worklog)
	}
	if printer.IsQuiet() {
		id := worklog.ID
		if id == "" {
			id = "ok"
		}
		printer.Println(id)
		return nil
	}
	printer.Println("✓ Added worklog to " + key + ": " + timeSpent)
	if comment != "" {
		printer.Println("  Comment: " + comment)
	}
	id := worklog.ID
	if id == "" {
		id = "N/A"
	}
	printer.Println("  Worklog ID: " + id)
	return nil
}

// newWorklogListCmd creates the worklog list command.
func newWorklogListCmd() *cobra.Command {
	return newWorklogListCmdInternal(nil)
}

// newWorklogListCmdInternal creates the worklog list command with optional
// client injection.
func newWorklogListCmdInternal(client *jira.Client) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "list ISSUE_KEY",
		Short: "List worklog entries for an issue",
		Long: `List worklog entries for an issue.

Examples:
  jira worklog list PROJ-123
  jira worklog list PROJ-123 --limit 5 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorklogList(cmd, client, args[0], limitFlag)
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 10, "Max entries to show")

	return cmd
}

// runWorklogList executes the worklog list command.
func runWorklogList(cmd *cobra.Command, client *jira.Client, key string, limit int) error {
	printer := printerFor(cmd)

	client, err := ensureClient(cmd, client, key)
	if err != nil {
		printer.Error(err)
		return err
	}

	worklogs, err := client.Worklogs(cmd.Context(), key)
	if err != nil {
		err = wrapAPIError(err, "Failed to get worklogs for %s", key)
		printer.Error(err)
		return err
	}

	if limit >= 0 && len(worklogs) > limit {
		worklogs = worklogs[:limit]
	}

	if printer.IsJSON() {
		return printer.WriteJSON(worklogs)
	}
	if printer.IsQuiet() {
		for _, worklog := range worklogs {
			printer.Println(worklog.ID)
		}
		return nil
	}

	if len(worklogs) == 0 {
		printer.Println("No worklogs found for " + key)
		return nil
	}
	printer.Println(fmt.Sprintf("Worklogs for %s (%d shown):\n", key, len(worklogs)))
	for _, worklog := range worklogs {
		author := "Unknown"
		if worklog.Author != nil && worklog.Author.DisplayName != "" {
			author = worklog.Author.DisplayName
		}
		timeSpent := worklog.TimeSpent
		if timeSpent == "" {
			timeSpent = "N/A"
		}
		started := "N/A"
		if worklog.Started != "" {
			started = dateOnly(worklog.Started)
		}
		printer.Println(fmt.Sprintf("  [%s] %s: %s", started, author, timeSpent))
		if comment := worklog.Comment.String(); comment != "" {
			printer.Println("           " + truncateCell(comment, 60))
		}
	}
	return nil
}
