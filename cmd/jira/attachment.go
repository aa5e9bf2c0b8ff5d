package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/jira"
	"github.com/gorewood/jira/internal/output"
)

// newAttachmentCmd creates the attachment command group.
func newAttachmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attachment",
		Short: "Download issue attachments",
	}
	cmd.AddCommand(newAttachmentDownloadCmd())
	return cmd
}

// newAttachmentDownloadCmd creates the attachment download command.
func newAttachmentDownloadCmd() *cobra.Command {
	return newAttachmentDownloadCmdInternal(nil)
}

// newAttachmentDownloadCmdInternal creates the attachment download command
// with optional client injection.
func newAttachmentDownloadCmdInternal(client *jira.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download ATTACHMENT_URL OUTPUT_FILE",
		Short: "Download a Jira attachment",
		Long: `Download a Jira attachment.

ATTACHMENT_URL is a full URL or an instance-relative content path.

Examples:
  jira attachment download https://example.atlassian.net/rest/api/2/attachment/content/12345 file.zip
  jira attachment download /rest/api/2/attachment/content/12345 file.zip`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAttachmentDownload(cmd, client, args[0], args[1])
		},
	}
	return cmd
}

// runAttachmentDownload executes the attachment download command.
func runAttachmentDownload(cmd *cobra.Command, client *jira.Client, attachmentURL, outputFile string) error {
	printer := printerFor(cmd)

	if workDir, err := os.Getwd(); err == nil && !containedPath(outputFile, workDir) {
		err := output.NewUserError("Output path is outside the working directory: " + outputFile)
		printer.Error(err)
		return err
	}
	dir := filepath.Dir(outputFile)
	if _, err := os.Stat(dir); err != nil {
		err := output.NewUserError("Directory does not exist: " + dir)
		printer.Error(err)
		return err
	}
	if info, err := os.Stat(outputFile); err == nil && !info.Mode().IsRegular() {
		err := output.NewUserError("Output path exists and is not a file: " + outputFile)
		printer.Error(err)
		return err
	}

	client, err := ensureClient(cmd, client, attachmentURL)
	if err != nil {
		printer.Error(err)
		return err
	}

	if err := client.DownloadAttachment(cmd.Context(), attachmentURL, outputFile); err != nil {
		var apiErr *jira.APIError
		if jira.IsConnectionError(err) || errors.As(err, &apiErr) {
			err = wrapAPIError(err, "Download failed")
		} else {
			err = wrapAPIError(err, "Failed to download attachment")
		}
		printer.Error(err)
		return err
	}

	if printer.IsQuiet() {
		printer.Println(outputFile)
		return nil
	}
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"status": "success", "file": outputFile})
	}
	printer.Println("✓ Downloaded to: " + outputFile)
	return nil
}

// containedPath reports whether target resolves to a path inside base.
// Compared with filepath.Rel rather than a string prefix, so a sibling
// directory like base-evil does not pass as inside base.
func containedPath(target, base string) bool {
	abs, err := filepath.Abs(target)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
