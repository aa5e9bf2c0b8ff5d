package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/jira"
	"github.com/gorewood/jira/internal/output"
)

// newIssueUpdateCmd creates the issue update command.
func newIssueUpdateCmd() *cobra.Command {
	return newIssueUpdateCmdInternal(nil)
}

// newIssueUpdateCmdInternal creates the issue update command with optional
// client injection.
func newIssueUpdateCmdInternal(client *jira.Client) *cobra.Command {
	var summaryFlag string
	var priorityFlag string
	var labelsFlag string
	var assigneeFlag string
	var fieldsJSONFlag string
	var fieldsFileFlag string
	var dryRunFlag bool

	cmd := &cobra.Command{
		Use:   "update ISSUE_KEY",
		Short: "Update issue fields",
		Long: `Update issue fields.

Examples:
  jira issue update PROJ-123 --summary "New title"
  jira issue update PROJ-123 --priority High --labels backend,urgent
  jira issue update PROJ-123 --assignee dev@example.com
  jira issue update PROJ-123 --fields-json '{"customfield_10020": 5}'
  jira issue update PROJ-123 --fields-file fields.yaml --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := jira.UpdateIssueInput{
				Summary:  summaryFlag,
				Priority: priorityFlag,
				Labels:   splitCSV(labelsFlag),
				Assignee: assigneeFlag,
			}
			return runIssueUpdate(cmd, client, args[0], input, fieldsJSONFlag, fieldsFileFlag, dryRunFlag)
		},
	}

	cmd.Flags().StringVarP(&summaryFlag, "summary", "s", "", "New summary")
	cmd.Flags().StringVarP(&priorityFlag, "priority", "p", "", "New priority (e.g. High, Medium, Low)")
	cmd.Flags().StringVarP(&labelsFlag, "labels", "l", "", "Comma-separated labels (replaces existing)")
	cmd.Flags().StringVarP(&assigneeFlag, "assignee", "a", "", "Assignee email (Cloud) or username (Server)")
	cmd.Flags().StringVar(&fieldsJSONFlag, "fields-json", "", "Additional fields as a JSON object")
	cmd.Flags().StringVar(&fieldsFileFlag, "fields-file", "", "Additional fields from a JSON or YAML file")
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show what would change without updating")

	return cmd
}

// runIssueUpdate executes the issue update command.
func runIssueUpdate(cmd *cobra.Command, client *jira.Client, key string, input jira.UpdateIssueInput, fieldsJSON, fieldsFile string, dryRun bool) error {
	printer := printerFor(cmd)

	extra, err := parseExtraFields(fieldsJSON, fieldsFile)
	if err != nil {
		printer.Error(err)
		return err
	}
	input.Extra = extra

	fields := input.Fields()
	if len(fields) == 0 {
		err := output.NewUserError("No fields specified for update")
		printer.Error(err)
		printer.Println("\nUse one or more of: --summary, --priority, --labels, --assignee, --fields-json")
		return err
	}

	if dryRun {
		printer.Warn("DRY RUN - No changes will be made")
		printer.Println("\nWould update " + key + " with:")
		for _, name := range sortedFieldNames(fields) {
			printer.Println("  " + name + ": " + formatFieldValue(fields[name]))
		}
		return nil
	}

	client, err = ensureClient(cmd, client, key)
	if err != nil {
		printer.Error(err)
		return err
	}

	if err := client.UpdateIssue(cmd.Context(), key, fields); err != nil {
		err = wrapAPIError(err, "Failed to update %s", key)
		printer.Error(err)
		return err
	}

	updated := sortedFieldNames(fields)
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"key": key, "updated": updated})
	}
	if printer.IsQuiet() {
		printer.Println(key)
		return nil
	}
	printer.Println("✓ Updated " + key)
	for _, name := range updated {
		printer.Println("  ✓ " + name)
	}
	return nil
}

// sortedFieldNames returns the map keys in a stable order.
func sortedFieldNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// formatFieldValue renders a field value for dry-run output. Non-string
// values are shown as compact JSON.
func formatFieldValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}
