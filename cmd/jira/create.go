package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/jira"
)

// newCreateCmd creates the create command group.
func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create new issues",
	}
	cmd.AddCommand(newCreateIssueCmd())
	return cmd
}

// newCreateIssueCmd creates the create issue command.
func newCreateIssueCmd() *cobra.Command {
	return newCreateIssueCmdInternal(nil)
}

// newCreateIssueCmdInternal creates the create issue command with optional
// client injection.
func newCreateIssueCmdInternal(client *jira.Client) *cobra.Command {
	var typeFlag string
	var descriptionFlag string
	var priorityFlag string
	var labelsFlag string
	var assigneeFlag string
	var parentFlag string
	var componentsFlag string
	var fieldsJSONFlag string
	var fieldsFileFlag string
	var dryRunFlag bool

	cmd := &cobra.Command{
		Use:   "issue PROJECT_KEY SUMMARY",
		Short: "Create a new issue",
		Long: `Create a new issue.

Examples:
  jira create issue PROJ "Fix login timeout" --type Bug --priority High
  jira create issue PROJ "New feature" --type Story --parent PROJ-100
  jira create issue PROJ "API documentation" --type Task -d "Update API docs" -l docs,api
  jira create issue PROJ "Test" --type Task --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := jira.CreateIssueInput{
				Project:     args[0],
				Type:        typeFlag,
				Summary:     args[1],
				Description: descriptionFlag,
				Priority:    priorityFlag,
				Labels:      splitCSV(labelsFlag),
				Assignee:    assigneeFlag,
				Parent:      parentFlag,
				Components:  splitCSV(componentsFlag),
			}
			return runCreateIssue(cmd, client, input, fieldsJSONFlag, fieldsFileFlag, dryRunFlag)
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", "Issue type (Task, Bug, Story, Epic, etc.)")
	cmd.Flags().StringVarP(&descriptionFlag, "description", "d", "", "Issue description (Jira wiki markup)")
	cmd.Flags().StringVarP(&priorityFlag, "priority", "p", "", "Priority name (High, Medium, Low, etc.)")
	cmd.Flags().StringVarP(&labelsFlag, "labels", "l", "", "Comma-separated labels")
	cmd.Flags().StringVarP(&assigneeFlag, "assignee", "a", "", "Assignee username or email")
	cmd.Flags().StringVar(&parentFlag, "parent", "", "Parent issue key (for subtasks or epic link)")
	cmd.Flags().StringVar(&componentsFlag, "components", "", "Comma-separated component names")
	cmd.Flags().StringVar(&fieldsJSONFlag, "fields-json", "", "Additional fields as a JSON object")
	cmd.Flags().StringVar(&fieldsFileFlag, "fields-file", "", "Additional fields from a JSON or YAML file")
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show what would be created without making changes")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// runCreateIssue executes the create issue command.
func runCreateIssue(cmd *cobra.Command, client *jira.Client, input jira.CreateIssueInput, fieldsJSON, fieldsFile string, dryRun bool) error {
	printer := printerFor(cmd)

	extra, err := parseExtraFields(fieldsJSON, fieldsFile)
	if err != nil {
		printer.Error(err)
		return err
	}
	input.Extra = extra

	if dryRun {
		printer.Warn("DRY RUN - No issue will be created")
		printer.Println("\nWould create issue in " + input.Project + ":")
		printer.Println("  Type: " + input.Type)
		printer.Println("  Summary: " + input.Summary)
		if input.Description != "" {
			printer.Println("  Description: " + truncateRaw(input.Description, 50) + "...")
		}
		if input.Priority != "" {
			printer.Println("  Priority: " + input.Priority)
		}
		if len(input.Labels) > 0 {
			printer.Println("  Labels: " + joinCSV(input.Labels))
		}
		if input.Assignee != "" {
			printer.Println("  Assignee: " + input.Assignee)
		}
		if input.Parent != "" {
			printer.Println("  Parent: " + input.Parent)
		}
		if len(input.Components) > 0 {
			printer.Println("  Components: " + joinCSV(input.Components))
		}
		return nil
	}

	client, err = ensureClient(cmd, client, input.Project)
	if err != nil {
		printer.Error(err)
		return err
	}

	created, err := client.CreateIssue(cmd.Context(), input)
	if err != nil {
		err = wrapAPIError(err, "Failed to create issue")
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(created)
	}
	if printer.IsQuiet() {
		printer.Println(created.Key)
		return nil
	}
	printer.Println("✓ Created issue: " + created.Key)
	printer.Println("  Summary: " + input.Summary)
	printer.Println("  Type: " + input.Type)
	printer.Println("  URL: " + client.BrowseURL(created.Key))
	return nil
}
