package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/jira"
)

// newCommentCmd creates the comment command group.
func newCommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Add and list issue comments",
	}
	cmd.AddCommand(newCommentAddCmd())
	cmd.AddCommand(newCommentListCmd())
	return cmd
}

// newCommentAddCmd creates the comment add command.
func newCommentAddCmd() *cobra.Command {
	return newCommentAddCmdInternal(nil)
}

// newCommentAddCmdInternal creates the comment add command with optional
// client injection.
func newCommentAddCmdInternal(client *jira.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add ISSUE_KEY TEXT",
		Short: "Add a comment to an issue",
		Long: `Add a comment to an issue.

Use Jira wiki syntax, not Markdown:
  *bold* not **bold**
  _italic_ not *italic*
  {code}...{code} for code blocks
  [link text|url] for links

Examples:
  jira comment add PROJ-123 "Fixed in commit abc123"
  jira comment add PROJ-123 "See {code}config.py{code} for details"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommentAdd(cmd, client, args[0], args[1])
		},
	}
	return cmd
}

// runCommentAdd executes the comment add command.
func runCommentAdd(cmd *cobra.Command, client *jira.Client, key, text string) error {
	printer := printerFor(cmd)

	client, err := ensureClient(cmd, client, key)
	if err != nil {
		printer.Error(err)
		return err
	}

	comment, err := client.AddComment(cmd.Context(), key, text)
	if err != nil {
		err = wrapAPIError(err, "Failed to add comment to %s", key)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(comment)
	}
	if printer.IsQuiet() {
		id := comment.ID
		if id == "" {
			id = "ok"
		}
		printer.Println(id)
		return nil
	}
	printer.Println("✓ Added comment to " + key)
	id := comment.ID
	if id == "" {
		id = "N/A"
	}
	printer.Println("  Comment ID: " + id)
	return nil
}

// newCommentListCmd creates the comment list command.
func newCommentListCmd() *cobra.Command {
	return newCommentListCmdInternal(nil)
}

// newCommentListCmdInternal creates the comment list command with optional
// client injection.
func newCommentListCmdInternal(client *jira.Client) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "list ISSUE_KEY",
		Short: "List comments on an issue, newest first",
		Long: `List comments on an issue, newest first.

Examples:
  jira comment list PROJ-123
  jira comment list PROJ-123 --limit 5 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommentList(cmd, client, args[0], limitFlag)
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 10, "Max comments to show")

	return cmd
}

// runCommentList executes the comment list command.
func runCommentList(cmd *cobra.Command, client *jira.Client, key string, limit int) error {
	printer := printerFor(cmd)

	client, err := ensureClient(cmd, client, key)
	if err != nil {
		printer.Error(err)
		return err
	}

	all, err := client.Comments(cmd.Context(), key)
	if err != nil {
		err = wrapAPIError(err, "Failed to get comments for %s", key)
		printer.Error(err)
		return err
	}

	// Newest first, then limit.
	comments := make([]jira.Comment, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		comments = append(comments, all[i])
	}
	if limit >= 0 && len(comments) > limit {
		comments = comments[:limit]
	}

	if printer.IsJSON() {
		return printer.WriteJSON(comments)
	}
	if printer.IsQuiet() {
		for _, comment := range comments {
			printer.Println(comment.ID)
		}
		return nil
	}

	if len(comments) == 0 {
		printer.Println("No comments on " + key)
		return nil
	}
	printer.Println(fmt.Sprintf("Comments on %s (%d shown):\n", key, len(comments)))
	for _, comment := range comments {
		author := "Unknown"
		if comment.Author != nil && comment.Author.DisplayName != "" {
			author = comment.Author.DisplayName
		}
		created := "N/A"
		if comment.Created != "" {
			created = dateOnly(comment.Created)
		}
		body := truncateCell(comment.Body.String(), 200)

		printer.Println(fmt.Sprintf("  [%s] %s:", created, author))
		lines := strings.Split(body, "\n")
		if len(lines) > 5 {
			lines = lines[:5]
		}
		for _, line := range lines {
			printer.Println("    " + line)
		}
		printer.Println()
	}
	return nil
}
