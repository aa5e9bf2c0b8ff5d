package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/jira"
	"github.com/gorewood/jira/internal/output"
)

// newBoardCmd creates the board command group.
func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "List agile boards and board issues",
	}
	cmd.AddCommand(newBoardListCmd())
	cmd.AddCommand(newBoardIssuesCmd())
	return cmd
}

// newBoardListCmd creates the board list command.
func newBoardListCmd() *cobra.Command {
	return newBoardListCmdInternal(nil)
}

// newBoardListCmdInternal creates the board list command with optional
// client injection.
func newBoardListCmdInternal(client *jira.Client) *cobra.Command {
	var projectFlag string
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agile boards",
		Long: `List agile boards.

Examples:
  jira board list
  jira board list --project PROJ
  jira board list --type scrum`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoardList(cmd, client, projectFlag, typeFlag)
		},
	}

	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Filter by project key")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "Filter by board type (scrum, kanban)")

	return cmd
}

// runBoardList executes the board list command.
func runBoardList(cmd *cobra.Command, client *jira.Client, project, boardType string) error {
	printer := printerFor(cmd)

	if boardType != "" && boardType != "scrum" && boardType != "kanban" {
		err := output.NewUserError(fmt.Sprintf("Invalid --type %q (use scrum or kanban)", boardType))
		printer.Error(err)
		return err
	}

	client, err := ensureClient(cmd, client, project)
	if err != nil {
		printer.Error(err)
		return err
	}

	boards, err := client.Boards(cmd.Context(), project, boardType)
	if err != nil {
		err = wrapAPIError(err, "Failed to list boards")
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(boards)
	}
	if printer.IsQuiet() {
		for _, board := range boards {
			printer.Println(strconv.Itoa(board.ID))
		}
		return nil
	}

	if len(boards) == 0 {
		printer.Println("No boards found")
		if project != "" {
			printer.Println("  (filtered by project: " + project + ")")
		}
		return nil
	}
	printer.Println(fmt.Sprintf("Agile boards (%d found):\n", len(boards)))
	rows := make([][]string, 0, len(boards))
	for _, board := range boards {
		projectKey := board.Location.ProjectKey
		if projectKey == "" {
			projectKey = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(board.ID),
			board.Name,
			board.Type,
			projectKey,
		})
	}
	printer.Table([]string{"ID", "Name", "Type", "Project"}, rows)
	return nil
}

// newBoardIssuesCmd creates the board issues command.
func newBoardIssuesCmd() *cobra.Command {
	return newBoardIssuesCmdInternal(nil)
}

// newBoardIssuesCmdInternal creates the board issues command with optional
// client injection.
func newBoardIssuesCmdInternal(client *jira.Client) *cobra.Command {
	var jqlFlag string
	var maxResultsFlag int

	cmd := &cobra.Command{
		Use:   "issues BOARD_ID",
		Short: "Get issues on a board",
		Long: `Get issues on a board.

Examples:
  jira board issues 42
  jira board issues 42 --jql "status = 'In Progress'"
  jira board issues 42 --max-results 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoardIssues(cmd, client, args[0], jqlFlag, maxResultsFlag)
		},
	}

	cmd.Flags().StringVar(&jqlFlag, "jql", "", "Additional JQL filter")
	cmd.Flags().IntVarP(&maxResultsFlag, "max-results", "n", 50, "Maximum results")

	return cmd
}

// runBoardIssues executes the board issues command.
func runBoardIssues(cmd *cobra.Command, client *jira.Client, boardArg, jql string, maxResults int) error {
	printer := printerFor(cmd)

	boardID, err := parseIDArg(boardArg, "board ID")
	if err != nil {
		printer.Error(err)
		return err
	}

	client, err = ensureClient(cmd, client, jql)
	if err != nil {
		printer.Error(err)
		return err
	}

	issues, err := client.BoardIssues(cmd.Context(), boardID, jql, maxResults)
	if err != nil {
		err = wrapAPIError(err, "Failed to get issues for board %d", boardID)
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
		printer.Println(fmt.Sprintf("No issues on board %d", boardID))
		if jql != "" {
			printer.Println("  (filtered by JQL: " + jql + ")")
		}
		return nil
	}
	printer.Println(fmt.Sprintf("Issues on board %d (%d shown):\n", boardID, len(issues)))
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		status := "-"
		if issue.Fields.Status != nil {
			status = issue.Fields.Status.Name
		}
		assignee := "-"
		if issue.Fields.Assignee != nil {
			assignee = issue.Fields.Assignee.DisplayName
		}
		rows = append(rows, []string{
			issue.Key,
			truncateCell(issue.Fields.Summary, 40),
			status,
			assignee,
		})
	}
	printer.Table([]string{"Key", "Summary", "Status", "Assignee"}, rows)
	return nil
}
