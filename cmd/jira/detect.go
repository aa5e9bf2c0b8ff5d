package main

import (
	"encoding/json"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Issue references are picked up both as bare keys and inside browse URLs.
var (
	issueKeyRe = regexp.MustCompile(`\b([A-Z][A-Z0-9_]+-\d+)\b`)
	browseRes  = []*regexp.Regexp{
		regexp.MustCompile(`https?://jira\.[^/]+/browse/([A-Z][A-Z0-9_]+-\d+)`),
		regexp.MustCompile(`https?://[^/]+\.atlassian\.net/browse/([A-Z][A-Z0-9_]+-\d+)`),
	}
)

// newDetectCmd creates the detect command.
func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [TEXT]...",
		Short: "Detect Jira issue keys in text",
		Long: `Detect Jira issue keys in text.

Reads the given arguments, or stdin when none are given. Stdin accepts
raw text or a prompt-hook JSON envelope with a prompt, content, or
message field. Prints nothing when no keys are found, so the command is
safe to wire into prompt hooks.

Examples:
  jira detect "please look at WEB-1381"
  echo '{"prompt": "see https://company.atlassian.net/browse/APP-7"}' | jira detect
  git log --oneline -20 | jira detect --quiet`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args)
		},
	}
	return cmd
}

// runDetect executes the detect command. It never fails: hook runners
// treat a non-zero exit as a broken hook.
func runDetect(cmd *cobra.Command, args []string) error {
	printer := printerFor(cmd)

	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil
		}
		text = hookPrompt(data)
	}

	keys := extractIssueKeys(text)

	if printer.IsJSON() {
		return printer.WriteJSON(keys)
	}
	if printer.IsQuiet() {
		for _, key := range keys {
			printer.Println(key)
		}
		return nil
	}
	if len(keys) == 0 {
		return nil
	}

	printer.Println("<system-reminder>")
	printer.Println("Detected Jira issue reference(s): " + strings.Join(keys, ", "))
	printer.Println()
	printer.Println("The jira CLI can help:")
	printer.Println("- Fetch issue details with 'jira issue get KEY'")
	printer.Println("- Search related issues with 'jira search query JQL'")
	printer.Println("- Update status with 'jira transition do KEY STATUS'")
	printer.Println("- Add comments with 'jira comment add KEY TEXT' (Jira wiki markup)")
	printer.Println()
	printer.Println("Run 'jira serve' to expose these operations as MCP tools.")
	printer.Println("</system-reminder>")
	return nil
}

// hookPrompt unwraps the prompt-hook JSON envelope. Anything that does
// not parse is treated as raw text.
func hookPrompt(data []byte) string {
	var envelope struct {
		Prompt  string `json:"prompt"`
		Content string `json:"content"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return string(data)
	}
	if envelope.Prompt != "" {
		return envelope.Prompt
	}
	if envelope.Content != "" {
		return envelope.Content
	}
	return envelope.Message
}

// extractIssueKeys returns the unique issue keys mentioned in text,
// sorted.
func extractIssueKeys(text string) []string {
	seen := make(map[string]bool)
	for _, match := range issueKeyRe.FindAllStringSubmatch(text, -1) {
		seen[match[1]] = true
	}
	for _, re := range browseRes {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			seen[match[1]] = true
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
