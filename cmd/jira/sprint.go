package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/jira"
	"github.com/gorewood/jira/internal/output"
)

// defaultSprintFields are returned by sprint issues when no --fields
// override is given.
const defaultSprintFields = "key,summary,status,assignee"

// newSprintCmd creates the sprint command group.
func newSprintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "List sprints and sprint issues",
	}
	cmd.AddCommand(newSprintListCmd())
	cmd.AddCommand(newSprintIssuesCmd())
	cmd.AddCommand(newSprintCurrentCmd())
	return cmd
}

// newSprintListCmd creates the sprint list command.
func newSprintListCmd() *cobra.Command {
	return newSprintListCmdInternal(nil)
}

// newSprintListCmdInternal creates the sprint list command with optional
// client injection.
func newSprintListCmdInternal(client *jira.Client) *cobra.Command {
	var stateFlag string

	cmd := &cobra.Command{
		Use:   "list BOARD_ID",
		Short: "List sprints for a board",
		Long: `List sprints for a board.

Examples:
  jira sprint list 42
  jira sprint list 42 --state active
  jira sprint list 42 --state future --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSprintList(cmd, client, args[0], stateFlag)
		},
	}

	cmd.Flags().StringVarP(&stateFlag, "state", "s", "", "Filter by sprint state (active, future, closed)")

	return cmd
}

// runSprintList executes the sprint list command.
func runSprintList(cmd *cobra.Command, client *jira.Client, boardArg, state string) error {
	printer := printerFor(cmd)

	boardID, err := parseIDArg(boardArg, "board ID")
	if err != nil {
		printer.Error(err)
		return err
	}
	if state != "" && state != "active" && state != "future" && state != "closed" {
		err := output.NewUserError(fmt.Sprintf("Invalid --state %q (use active, future, or closed)", state))
		printer.Error(err)
		return err
	}

	client, err = ensureClient(cmd, client, "")
	if err != nil {
		printer.Error(err)
		return err
	}

	sprints, err := client.Sprints(cmd.Context(), boardID, state)
	if err != nil {
		err = wrapAPIError(err, "Failed to get sprints for board %d", boardID)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(sprints)
	}
	if printer.IsQuiet() {
		for _, sprint := range sprints {
			printer.Println(strconv.Itoa(sprint.ID))
		}
		return nil
	}

	if len(sprints) == 0 {
		printer.Println(fmt.Sprintf("No sprints found for board %d", boardID))
		if state != "" {
			printer.Println("  (filtered by state: " + state + ")")
		}
		return nil
	}
	printer.Println(fmt.Sprintf("Sprints for board %d:\n", boardID))
	rows := make([][]string, 0, len(sprints))
	for _, sprint := range sprints {
		rows = append(rows, []string{
			strconv.Itoa(sprint.ID),
			sprint.Name,
			sprint.State,
			sprintDate(sprint.StartDate),
			sprintDate(sprint.EndDate),
		})
	}
	printer.Table([]string{"ID", "Name", "State", "Start", "End"}, rows)
	return nil
}

// newSprintIssuesCmd creates the sprint issues command.
func newSprintIssuesCmd() *cobra.Command {
	return newSprintIssuesCmdInternal(nil)
}

// newSprintIssuesCmdInternal creates the sprint issues command with optional
// client injection.
func newSprintIssuesCmdInternal(client *jira.Client) *cobra.Command {
	var fieldsFlag string

	cmd := &cobra.Command{
		Use:   "issues SPRINT_ID",
		Short: "Get issues in a sprint",
		Long: `Get issues in a sprint.

Examples:
  jira sprint issues 123
  jira sprint issues 123 --fields key,summary,status,priority`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSprintIssues(cmd, client, args[0], fieldsFlag)
		},
	}

	cmd.Flags().StringVarP(&fieldsFlag, "fields", "f", defaultSprintFields, "Comma-separated fields to return")

	return cmd
}

// runSprintIssues executes the sprint issues command.
func runSprintIssues(cmd *cobra.Command, client *jira.Client, sprintArg, fields string) error {
	printer := printerFor(cmd)

	sprintID, err := parseIDArg(sprintArg, "sprint ID")
	if err != nil {
		printer.Error(err)
		return err
	}

	client, err = ensureClient(cmd, client, "")
	if err != nil {
		printer.Error(err)
		return err
	}

	fieldList := splitCSV(fields)
	issues, err := client.SprintIssues(cmd.Context(), sprintID, fieldList)
	if err != nil {
		err = wrapAPIError(err, "Failed to get issues for sprint %d", sprintID)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(issues)
	}
	if printer.IsQuiet() {
		for _, issue := range issues {
			printer.Println(issue.Key)
		}
		return nil
	}

	if len(issues) == 0 {
		printer.Println(fmt.Sprintf("No issues in sprint %d", sprintID))
		return nil
	}
	printer.Println(fmt.Sprintf("Issues in sprint %d (%d total):\n", sprintID, len(issues)))

	headers := []string{"key"}
	for _, field := range fieldList {
		if field != "key" {
			headers = append(headers, field)
		}
	}
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		row := []string{issue.Key}
		for _, field := range headers[1:] {
			row = append(row, agileFieldValue(issue.Fields.Value(field)))
		}
		rows = append(rows, row)
	}
	printer.Table(headers, rows)
	return nil
}

// newSprintCurrentCmd creates the sprint current command.
func newSprintCurrentCmd() *cobra.Command {
	return newSprintCurrentCmdInternal(nil)
}

// newSprintCurrentCmdInternal creates the sprint current command with
// optional client injection.
func newSprintCurrentCmdInternal(client *jira.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current BOARD_ID",
		Short: "Get the current active sprint for a board",
		Long: `Get the current active sprint for a board.

Example:
  jira sprint current 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSprintCurrent(cmd, client, args[0])
		},
	}
	return cmd
}

// runSprintCurrent executes the sprint current command.
func runSprintCurrent(cmd *cobra.Command, client *jira.Client, boardArg string) error {
	printer := printerFor(cmd)

	boardID, err := parseIDArg(boardArg, "board ID")
	if err != nil {
		printer.Error(err)
		return err
	}

	client, err = ensureClient(cmd, client, "")
	if err != nil {
		printer.Error(err)
		return err
	}

	sprint, err := client.ActiveSprint(cmd.Context(), boardID)
	if err != nil {
		err = wrapAPIError(err, "Failed to get current sprint for board %d", boardID)
		printer.Error(err)
		return err
	}

	if sprint == nil {
		printer.Println(fmt.Sprintf("No active sprint for board %d", boardID))
		return nil
	}

	if printer.IsJSON() {
		return printer.WriteJSON(sprint)
	}
	if printer.IsQuiet() {
		printer.Println(strconv.Itoa(sprint.ID))
		return nil
	}
	printer.Println(fmt.Sprintf("Current sprint for board %d:\n", boardID))
	printer.Println("  ID: " + strconv.Itoa(sprint.ID))
	printer.Println("  Name: " + sprint.Name)
	goal := sprint.Goal
	if goal == "" {
		goal = "-"
	}
	printer.Println("  Goal: " + goal)
	printer.Println("  Start: " + sprintDate(sprint.StartDate))
	printer.Println("  End: " + sprintDate(sprint.EndDate))
	return nil
}

// parseIDArg converts a numeric positional argument.
func parseIDArg(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, output.NewUserError(fmt.Sprintf("Invalid %s %q (expected a number)", what, arg))
	}
	return id, nil
}

// sprintDate trims a sprint timestamp to its date part, "-" when unset.
func sprintDate(ts string) string {
	if ts == "" {
		return "-"
	}
	return dateOnly(ts)
}
