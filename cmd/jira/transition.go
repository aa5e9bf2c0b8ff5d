package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/jira"
	"github.com/gorewood/jira/internal/output"
)

// newTransitionCmd creates the transition command group.
func newTransitionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transition",
		Short: "List transitions and change issue status",
	}
	cmd.AddCommand(newTransitionListCmd())
	cmd.AddCommand(newTransitionDoCmd())
	return cmd
}

// newTransitionListCmd creates the transition list command.
func newTransitionListCmd() *cobra.Command {
	return newTransitionListCmdInternal(nil)
}

// newTransitionListCmdInternal creates the transition list command with
// optional client injection.
func newTransitionListCmdInternal(client *jira.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list ISSUE_KEY",
		Short: "List available transitions for an issue",
		Long: `List available transitions for an issue.

Shows all valid status transitions from the issue's current state.

Example:
  jira transition list PROJ-123`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransitionList(cmd, client, args[0])
		},
	}
	return cmd
}

// runTransitionList executes the transition list command.
func runTransitionList(cmd *cobra.Command, client *jira.Client, key string) error {
	printer := printerFor(cmd)

	client, err := ensureClient(cmd, client, key)
	if err != nil {
		printer.Error(err)
		return err
	}

	transitions, err := client.Transitions(cmd.Context(), key)
	if err != nil {
		err = wrapAPIError(err, "Failed to get transitions for %s", key)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(transitions)
	}
	if printer.IsQuiet() {
		for _, transition := range transitions {
			printer.Println(transition.Name)
		}
		return nil
	}

	issue, err := client.GetIssue(cmd.Context(), key, "status", "")
	if err != nil {
		err = wrapAPIError(err, "Failed to get transitions for %s", key)
		printer.Error(err)
		return err
	}
	current := ""
	if issue.Fields.Status != nil {
		current = issue.Fields.Status.Name
	}

	printer.Println("Available transitions for " + key)
	printer.Println("Current status: " + current + "\n")

	if len(transitions) == 0 {
		printer.Println("No transitions available from this status")
		return nil
	}
	rows := make([][]string, 0, len(transitions))
	for _, transition := range transitions {
		rows = append(rows, []string{transition.ID, transition.Name, transition.To.Name})
	}
	printer.Table([]string{"ID", "Name", "To Status"}, rows)
	return nil
}

// newTransitionDoCmd creates the transition do command.
func newTransitionDoCmd() *cobra.Command {
	return newTransitionDoCmdInternal(nil)
}

// newTransitionDoCmdInternal creates the transition do command with optional
// client injection.
func newTransitionDoCmdInternal(client *jira.Client) *cobra.Command {
	var commentFlag string
	var resolutionFlag string
	var dryRunFlag bool

	cmd := &cobra.Command{
		Use:   "do ISSUE_KEY STATUS",
		Short: "Transition an issue to a new status",
		Long: `Transition an issue to a new status.

STATUS matches either a transition name or a target status name,
case-insensitively.

Examples:
  jira transition do PROJ-123 "In Progress"
  jira transition do PROJ-123 "Done" --resolution Fixed
  jira transition do PROJ-123 "Done" -c "Deployed to production" -r Fixed
  jira transition do PROJ-123 "In Review" --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransitionDo(cmd, client, args[0], args[1], commentFlag, resolutionFlag, dryRunFlag)
		},
	}

	cmd.Flags().StringVarP(&commentFlag, "comment", "c", "", "Comment to add during transition")
	cmd.Flags().StringVarP(&resolutionFlag, "resolution", "r", "", "Resolution name (for closing transitions)")
	cmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show what would happen without making changes")

	return cmd
}

// runTransitionDo executes the transition do command.
func runTransitionDo(cmd *cobra.Command, client *jira.Client, key, status, comment, resolution string, dryRun bool) error {
	printer := printerFor(cmd)

	client, err := ensureClient(cmd, client, key)
	if err != nil {
		printer.Error(err)
		return err
	}

	transitions, err := client.Transitions(cmd.Context(), key)
	if err != nil {
		err = wrapAPIError(err, "Failed to transition %s", key)
		printer.Error(err)
		return err
	}

	matched := jira.MatchTransition(transitions, status)
	if matched == nil {
		names := make([]string, 0, len(transitions))
		for _, transition := range transitions {
			names = append(names, transition.Name)
		}
		err := output.NewUserError(fmt.Sprintf("Transition '%s' not available for %s", status, key))
		printer.Error(err)
		printer.Println("\nAvailable transitions: " + strings.Join(names, ", "))
		return err
	}

	if dryRun {
		printer.Warn("DRY RUN - No transition will be performed")
		printer.Println("\nWould transition " + key + ":")
		printer.Println("  Transition: " + matched.Name)
		printer.Println("  To status: " + matched.To.Name)
		if comment != "" {
			printer.Println("  Comment: " + comment)
		}
		if resolution != "" {
			printer.Println("  Resolution: " + resolution)
		}
		return nil
	}

	if err := client.DoTransition(cmd.Context(), key, matched.ID, resolution, comment); err != nil {
		err = wrapAPIError(err, "Failed to transition %s", key)
		printer.Error(err)
		return err
	}

	if printer.IsQuiet() {
		printer.Println(key)
		return nil
	}
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"key":        key,
			"transition": matched.Name,
			"to_status":  matched.To.Name,
		})
	}
	printer.Println("✓ Transitioned " + key)
	printer.Println("  Status: " + matched.To.Name)
	if comment != "" {
		printer.Println("  Comment added: " + truncateRaw(comment, 50) + "...")
	}
	return nil
}
