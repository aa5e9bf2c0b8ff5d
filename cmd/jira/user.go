package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/jira"
	"github.com/gorewood/jira/internal/output"
)

// newUserCmd creates the user command group.
func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Look up Jira users",
	}
	cmd.AddCommand(newUserMeCmd())
	cmd.AddCommand(newUserGetCmd())
	return cmd
}

// newUserMeCmd creates the user me command.
func newUserMeCmd() *cobra.Command {
	return newUserMeCmdInternal(nil)
}

// newUserMeCmdInternal creates the user me command with optional client
// injection.
func newUserMeCmdInternal(client *jira.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "me",
		Short: "Get current user information",
		Long: `Get current user information.

Shows details about the authenticated user.

Example:
  jira user me`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserMe(cmd, client)
		},
	}
	return cmd
}

// runUserMe executes the user me command.
func runUserMe(cmd *cobra.Command, client *jira.Client) error {
	printer := printerFor(cmd)

	client, err := ensureClient(cmd, client, "")
	if err != nil {
		printer.Error(err)
		return err
	}

	user, err := client.Myself(cmd.Context())
	if err != nil {
		err = wrapAPIError(err, "Failed to get current user")
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(user)
	}
	if printer.IsQuiet() {
		printer.Println(user.Identifier())
		return nil
	}
	printer.Println("Current User:")
	printer.Println("  Name: " + displayNameOrUnknown(user))
	printer.Println("  Email: " + valueOrNA(user.EmailAddress))
	printer.Println("  Account ID: " + accountIDOrKey(user))
	printer.Println("  Active: " + yesNo(user.IsActive()))
	printer.Println("  Timezone: " + valueOrNA(user.TimeZone))
	return nil
}

// newUserGetCmd creates the user get command.
func newUserGetCmd() *cobra.Command {
	return newUserGetCmdInternal(nil)
}

// newUserGetCmdInternal creates the user get command with optional client
// injection.
func newUserGetCmdInternal(client *jira.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get IDENTIFIER",
		Short: "Get user by username, email, or account ID",
		Long: `Get user by username, email, or account ID.

Examples:
  jira user get john.doe
  jira user get john.doe@example.com
  jira user get 5b10ac8d82e05b22cc7d4ef5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserGet(cmd, client, args[0])
		},
	}
	return cmd
}

// runUserGet executes the user get command.
func runUserGet(cmd *cobra.Command, client *jira.Client, identifier string) error {
	printer := printerFor(cmd)

	client, err := ensureClient(cmd, client, "")
	if err != nil {
		printer.Error(err)
		return err
	}

	user, err := client.FindUser(cmd.Context(), identifier)
	if err != nil {
		if errors.Is(err, jira.ErrNoUserMatch) || jira.IsNotFound(err) {
			err = output.NewUserError("User not found: " + identifier)
		} else {
			err = wrapAPIError(err, "Failed to get user %s", identifier)
		}
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(user)
	}
	if printer.IsQuiet() {
		printer.Println(user.Identifier())
		return nil
	}
	printer.Println("User: " + displayNameOrUnknown(user))
	printer.Println("  Email: " + valueOrNA(user.EmailAddress))
	printer.Println("  Account ID: " + accountIDOrKey(user))
	printer.Println("  Active: " + yesNo(user.IsActive()))
	return nil
}

func displayNameOrUnknown(user *jira.User) string {
	if user.DisplayName == "" {
		return "Unknown"
	}
	return user.DisplayName
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func accountIDOrKey(user *jira.User) string {
	if user.AccountID != "" {
		return user.AccountID
	}
	if user.Key != "" {
		return user.Key
	}
	return "N/A"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
