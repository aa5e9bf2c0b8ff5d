package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/jira"
	"github.com/gorewood/jira/internal/output"
)

// newFieldsCmd creates the fields command group.
func newFieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Discover field names and custom field IDs",
	}
	cmd.AddCommand(newFieldsSearchCmd())
	cmd.AddCommand(newFieldsListCmd())
	return cmd
}

// newFieldsSearchCmd creates the fields search command.
func newFieldsSearchCmd() *cobra.Command {
	return newFieldsSearchCmdInternal(nil)
}

// newFieldsSearchCmdInternal creates the fields search command with optional
// client injection.
func newFieldsSearchCmdInternal(client *jira.Client) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "search KEYWORD",
		Short: "Search fields by keyword",
		Long: `Search fields by keyword, matching name or ID.

Useful for finding custom field IDs for --fields-json options.

Examples:
  jira fields search sprint
  jira fields search "story points"
  jira fields search customfield`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFieldsSearch(cmd, client, args[0], limitFlag)
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Max results to show")

	return cmd
}

// runFieldsSearch executes the fields search command.
func runFieldsSearch(cmd *cobra.Command, client *jira.Client, keyword string, limit int) error {
	printer := printerFor(cmd)

	client, err := ensureClient(cmd, client, "")
	if err != nil {
		printer.Error(err)
		return err
	}

	fields, err := client.Fields(cmd.Context())
	if err != nil {
		err = wrapAPIError(err, "Failed to search fields")
		printer.Error(err)
		return err
	}

	lower := strings.ToLower(keyword)
	matching := make([]jira.Field, 0, limit)
	for _, field := range fields {
		if limit >= 0 && len(matching) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(field.Name), lower) ||
			strings.Contains(strings.ToLower(field.ID), lower) {
			matching = append(matching, field)
		}
	}

	if printer.IsJSON() {
		return printer.WriteJSON(matching)
	}
	if printer.IsQuiet() {
		for _, field := range matching {
			printer.Println(field.ID)
		}
		return nil
	}

	if len(matching) == 0 {
		printer.Println(fmt.Sprintf("No fields matching '%s'", keyword))
		return nil
	}
	printer.Println(fmt.Sprintf("Fields matching '%s' (%d shown):\n", keyword, len(matching)))
	rows := make([][]string, 0, len(matching))
	for _, field := range matching {
		schemaType := field.Schema.Type
		if schemaType == "" {
			schemaType = "-"
		}
		rows = append(rows, []string{field.ID, field.Name, schemaType, yesNo(field.Custom)})
	}
	printer.Table([]string{"ID", "Name", "Type", "Custom"}, rows)
	return nil
}

// newFieldsListCmd creates the fields list command.
func newFieldsListCmd() *cobra.Command {
	return newFieldsListCmdInternal(nil)
}

// newFieldsListCmdInternal creates the fields list command with optional
// client injection.
func newFieldsListCmdInternal(client *jira.Client) *cobra.Command {
	var typeFlag string
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available fields",
		Long: `List available fields.

Examples:
  jira fields list
  jira fields list --type custom
  jira fields list --type system --limit 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFieldsList(cmd, client, typeFlag, limitFlag)
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "all", "Filter by field type (custom, system, all)")
	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 50, "Max results to show")

	return cmd
}

// runFieldsList executes the fields list command.
func runFieldsList(cmd *cobra.Command, client *jira.Client, fieldType string, limit int) error {
	printer := printerFor(cmd)

	if fieldType != "custom" && fieldType != "system" && fieldType != "all" {
		err := output.NewUserError(fmt.Sprintf("Invalid --type %q (use custom, system, or all)", fieldType))
		printer.Error(err)
		return err
	}

	client, err := ensureClient(cmd, client, "")
	if err != nil {
		printer.Error(err)
		return err
	}

	all, err := client.Fields(cmd.Context())
	if err != nil {
		err = wrapAPIError(err, "Failed to list fields")
		printer.Error(err)
		return err
	}

	fields := make([]jira.Field, 0, len(all))
	for _, field := range all {
		switch fieldType {
		case "custom":
			if !field.Custom {
				continue
			}
		case "system":
			if field.Custom {
				continue
			}
		}
		fields = append(fields, field)
	}
	if limit >= 0 && len(fields) > limit {
		fields = fields[:limit]
	}

	if printer.IsJSON() {
		return printer.WriteJSON(fields)
	}
	if printer.IsQuiet() {
		for _, field := range fields {
			printer.Println(field.ID)
		}
		return nil
	}

	printer.Println(fmt.Sprintf("Jira fields (%s, %d shown):\n", fieldType, len(fields)))
	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		rows = append(rows, []string{field.ID, field.Name, yesNo(field.Custom)})
	}
	printer.Table([]string{"ID", "Name", "Custom"}, rows)
	return nil
}
