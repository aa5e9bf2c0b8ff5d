package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/jira"
)

// newLinkCmd creates the link command group.
func newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link issues and list link types",
	}
	cmd.AddCommand(newLinkCreateCmd())
	cmd.AddCommand(newLinkListTypesCmd())
	return cmd
}

// newLinkCreateCmd creates the link create command.
func newLinkCreateCmd() *cobra.Command {
	return newLinkCreateCmdInternal(nil)
}

// newLinkCreateCmdInternal creates the link create command with optional
// client injection.
func newLinkCreateCmdInternal(client *jira.Client) *cobra.Command {
	var typeFlag string
	var dryRunFlag bool

	cmd := &cobra.Command{
		Use:   "create FROM_KEY TO_KEY",
		Short: "Create a link between two issues",
		Long: `Create a link between two issues.

FROM_KEY is the source of the relation (the outward issue), TO_KEY
the target.

Examples:
  jira link create PROJ-123 PROJ-456 --type "Blocks"
  jira link create PROJ-123 PROJ-456 --type "Relates" --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinkCreate(cmd, client, args[0], args[1], typeFlag, dryRunFlag)
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "", `Link type name (e.g., "Blocks", "Relates")`)
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show what would be created")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// runLinkCreate executes the link create command.
func runLinkCreate(cmd *cobra.Command, client *jira.Client, fromKey, toKey, linkType string, dryRun bool) error {
	printer := printerFor(cmd)

	if dryRun {
		printer.Warn("DRY RUN - No link will be created")
		printer.Println("\nWould create link:")
		printer.Println("  " + fromKey + " --[" + linkType + "]--> " + toKey)
		return nil
	}

	client, err := ensureClient(cmd, client, fromKey)
	if err != nil {
		printer.Error(err)
		return err
	}

	if err := client.CreateLink(cmd.Context(), linkType, fromKey, toKey); err != nil {
		err = wrapAPIError(err, "Failed to create link")
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"from":    fromKey,
			"to":      toKey,
			"type":    linkType,
			"created": true,
		})
	}
	if printer.IsQuiet() {
		printer.Println("ok")
		return nil
	}
	printer.Println("✓ Created link: " + fromKey + " --[" + linkType + "]--> " + toKey)
	return nil
}

// newLinkListTypesCmd creates the link list-types command.
func newLinkListTypesCmd() *cobra.Command {
	return newLinkListTypesCmdInternal(nil)
}

// newLinkListTypesCmdInternal creates the link list-types command with
// optional client injection.
func newLinkListTypesCmdInternal(client *jira.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-types",
		Short: "List available link types",
		Long: `List available link types.

Shows all issue link types configured in your Jira instance.

Example:
  jira link list-types`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinkListTypes(cmd, client)
		},
	}
	return cmd
}

// runLinkListTypes executes the link list-types command.
func runLinkListTypes(cmd *cobra.Command, client *jira.Client) error {
	printer := printerFor(cmd)

	client, err := ensureClient(cmd, client, "")
	if err != nil {
		printer.Error(err)
		return err
	}

	linkTypes, err := client.LinkTypes(cmd.Context())
	if err != nil {
		err = wrapAPIError(err, "Failed to get link types")
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(linkTypes)
	}
	if printer.IsQuiet() {
		for _, linkType := range linkTypes {
			printer.Println(linkType.Name)
		}
		return nil
	}

	printer.Print("Available link types:\n\n")
	rows := make([][]string, 0, len(linkTypes))
	for _, linkType := range linkTypes {
		rows = append(rows, []string{linkType.Name, linkType.Inward, linkType.Outward})
	}
	printer.Table([]string{"Name", "Inward", "Outward"}, rows)
	return nil
}
