package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/jira"
	"github.com/gorewood/jira/internal/output"
)

// descriptionLimit is where untruncated descriptions get cut in human output.
const descriptionLimit = 500

// newIssueCmd creates the issue command group.
func newIssueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Get and update issue details",
	}
	cmd.AddCommand(newIssueGetCmd())
	cmd.AddCommand(newIssueUpdateCmd())
	return cmd
}

// newIssueGetCmd creates the issue get command.
func newIssueGetCmd() *cobra.Command {
	return newIssueGetCmdInternal(nil)
}

// newIssueGetCmdInternal creates the issue get command with optional client
// injection. If client is nil, the connection is resolved when the command runs.
func newIssueGetCmdInternal(client *jira.Client) *cobra.Command {
	var fieldsFlag string
	var expandFlag string
	var fullFlag bool

	cmd := &cobra.Command{
		Use:   "get ISSUE_KEY",
		Short: "Get issue details",
		Long: `Get issue details.

Examples:
  jira issue get PROJ-123
  jira issue get PROJ-123 --fields summary,status,assignee
  jira issue get PROJ-123 --expand changelog,transitions
  jira issue get PROJ-123 --full`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIssueGet(cmd, client, args[0], fieldsFlag, expandFlag, fullFlag)
		},
	}

	cmd.Flags().StringVarP(&fieldsFlag, "fields", "f", "", "Comma-separated fields to return")
	cmd.Flags().StringVarP(&expandFlag, "expand", "e", "", "Fields to expand (changelog,transitions,renderedFields)")
	cmd.Flags().BoolVar(&fullFlag, "full", false, "Show full content without truncation")

	return cmd
}

// runIssueGet executes the issue get command.
func runIssueGet(cmd *cobra.Command, client *jira.Client, key, fields, expand string, full bool) error {
	printer := printerFor(cmd)

	client, err := ensureClient(cmd, client, key)
	if err != nil {
		printer.Error(err)
		return err
	}

	issue, err := client.GetIssue(cmd.Context(), key, fields, expand)
	if err != nil {
		err = wrapAPIError(err, "Failed to get issue %s", key)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(issue)
	}
	if printer.IsQuiet() {
		printer.Println(issue.Key)
		return nil
	}
	outputIssueHuman(printer, issue, full, fields)
	return nil
}

// outputIssueHuman pretty prints issue details. When the caller requested a
// field subset, only rows whose fields were requested are rendered.
func outputIssueHuman(printer *output.Printer, issue *jira.Issue, full bool, requestedFields string) {
	requested := requestedFieldSet(requestedFields)
	show := func(name string) bool {
		if requested == nil {
			return true
		}
		return requested[name]
	}
	fields := &issue.Fields

	printer.Println()
	if show("summary") && fields.Has("summary") {
		printer.Println(issue.Key + ": " + fields.Summary)
	} else {
		printer.Println(issue.Key)
	}
	printer.Println(strings.Repeat("=", 60))

	var statusRow []string
	if show("issuetype") && fields.IssueType != nil {
		statusRow = append(statusRow, "Type: "+fields.IssueType.Name)
	}
	if show("status") && fields.Status != nil {
		statusRow = append(statusRow, "Status: "+fields.Status.Name)
	}
	if show("priority") && fields.Has("priority") {
		name := "None"
		if fields.Priority != nil {
			name = fields.Priority.Name
		}
		statusRow = append(statusRow, "Priority: "+name)
	}
	if len(statusRow) > 0 {
		printer.Println(strings.Join(statusRow, " | "))
	}

	var peopleRow []string
	if show("assignee") && fields.Has("assignee") {
		name := "Unassigned"
		if fields.Assignee != nil {
			name = fields.Assignee.DisplayName
		}
		peopleRow = append(peopleRow, "Assignee: "+name)
	}
	if show("reporter") && fields.Has("reporter") {
		name := "Unknown"
		if fields.Reporter != nil {
			name = fields.Reporter.DisplayName
		}
		peopleRow = append(peopleRow, "Reporter: "+name)
	}
	if len(peopleRow) > 0 {
		printer.Println(strings.Join(peopleRow, " | "))
	}

	if show("labels") && len(fields.Labels) > 0 {
		printer.Println("Labels: " + strings.Join(fields.Labels, ", "))
	}

	if show("description") && fields.Description != nil && fields.Description.String() != "" {
		printer.Println()
		printer.Println("Description:")
		outputDescription(printer, fields.Description.String(), full)
	}

	var datesRow []string
	if show("created") && fields.Created != "" {
		datesRow = append(datesRow, "Created: "+dateOnly(fields.Created))
	}
	if show("updated") && fields.Updated != "" {
		datesRow = append(datesRow, "Updated: "+dateOnly(fields.Updated))
	}
	if len(datesRow) > 0 {
		printer.Println()
		printer.Println(strings.Join(datesRow, " | "))
	}

	printer.Println()
}

// outputDescription prints the description indented, truncating long text on
// a word boundary unless --full was given.
func outputDescription(printer *output.Printer, text string, full bool) {
	if !full && len(text) > descriptionLimit {
		truncated := text[:descriptionLimit]
		if idx := strings.LastIndex(truncated, " "); idx > 0 {
			truncated = truncated[:idx]
		}
		printer.Println("  " + truncated + "...")
		printer.Println("  [truncated at 500 chars - use --full for complete content]")
		return
	}
	for _, line := range strings.Split(text, "\n") {
		printer.Println("  " + line)
	}
}

// requestedFieldSet parses the --fields value into a lookup set. Nil means
// no filter was given and every field shows.
func requestedFieldSet(raw string) map[string]bool {
	if raw == "" {
		return nil
	}
	set := make(map[string]bool)
	for _, field := range splitCSV(raw) {
		set[field] = true
	}
	return set
}

// dateOnly trims a Jira timestamp down to its date part.
func dateOnly(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}
