package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/jira"
	"github.com/gorewood/jira/internal/output"
)

// defaultSearchFields are returned when no --fields override is given.
const defaultSearchFields = "key,summary,status,assignee,priority"

// newSearchCmd creates the search command group.
func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search issues using JQL",
	}
	cmd.AddCommand(newSearchQueryCmd())
	return cmd
}

// newSearchQueryCmd creates the search query command.
func newSearchQueryCmd() *cobra.Command {
	return newSearchQueryCmdInternal(nil)
}

// newSearchQueryCmdInternal creates the search query command with optional
// client injection.
func newSearchQueryCmdInternal(client *jira.Client) *cobra.Command {
	var maxResultsFlag int
	var fieldsFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "query JQL",
		Short: "Search issues using JQL",
		Long: `Search issues using JQL.

Examples:
  jira search query "project = PROJ AND status = 'In Progress'"
  jira search query "assignee = currentUser()" --max-results 20
  jira search query "updated >= -7d" --output json
  jira search query "labels = urgent" --output keys

Common JQL patterns:
  project = PROJ                    # Issues in project
  assignee = currentUser()          # My issues
  status = "In Progress"            # By status
  updated >= -7d                    # Updated last 7 days
  sprint in openSprints()           # Current sprint`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearchQuery(cmd, client, args[0], maxResultsFlag, fieldsFlag, outputFlag)
		},
	}

	cmd.Flags().IntVarP(&maxResultsFlag, "max-results", "n", 50, "Maximum results to return")
	cmd.Flags().StringVarP(&fieldsFlag, "fields", "f", defaultSearchFields, "Comma-separated fields to return")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "table", "Output format (table, json, keys)")

	return cmd
}

// runSearchQuery executes the search query command.
func runSearchQuery(cmd *cobra.Command, client *jira.Client, jql string, maxResults int, fields, format string) error {
	printer := printerFor(cmd)

	// The global --json and --quiet flags map onto the output formats
	// unless --output was given explicitly.
	if !cmd.Flags().Changed("output") {
		if printer.IsJSON() {
			format = "json"
		} else if printer.IsQuiet() {
			format = "keys"
		}
	}
	if format != "table" && format != "json" && format != "keys" {
		err := output.NewUserError(fmt.Sprintf("Invalid --output %q (use table, json, or keys)", format))
		printer.Error(err)
		return err
	}

	client, err := ensureClient(cmd, client, jql)
	if err != nil {
		printer.Error(err)
		return err
	}

	fieldList := splitCSV(fields)
	result, err := client.Search(cmd.Context(), jql, maxResults, fieldList)
	if err != nil {
		err = wrapAPIError(err, "Search failed")
		printer.Error(err)
		return err
	}

	switch format {
	case "keys":
		for _, issue := range result.Issues {
			printer.Println(issue.Key)
		}
	case "json":
		return printer.WriteJSON(result.Issues)
	default:
		outputSearchTable(printer, result.Issues, fieldList)
	}
	return nil
}

// outputSearchTable renders issues as a table, key column first.
func outputSearchTable(printer *output.Printer, issues []jira.Issue, fields []string) {
	if len(issues) == 0 {
		printer.Println("No issues found")
		return
	}

	headers := []string{"key"}
	for _, field := range fields {
		if field != "key" {
			headers = append(headers, field)
		}
	}

	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		row := []string{issue.Key}
		for _, field := range headers[1:] {
			cell := flattenFieldValue(issue.Fields.Value(field))
			row = append(row, truncateCell(cell, 40))
		}
		rows = append(rows, row)
	}
	printer.Table(headers, rows)

	plural := "s"
	if len(issues) == 1 {
		plural = ""
	}
	printer.Println(fmt.Sprintf("\n(%d issue%s found)", len(issues), plural))
}
