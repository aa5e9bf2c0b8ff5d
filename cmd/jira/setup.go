package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gorewood/jira/internal/config"
	"github.com/gorewood/jira/internal/jira"
	"github.com/gorewood/jira/internal/output"
)

// setupFlags holds the command-line flags for the setup command.
type setupFlags struct {
	url      string
	jiraType string
	output   string
	force    bool
	testOnly bool
	profile  string
	projects string
	migrate  bool
}

func newSetupCmd() *cobra.Command {
	return newSetupCmdInternal(nil, nil)
}

// newSetupCmdInternal lets tests inject the probe transport and the API
// transport used for the credential check.
func newSetupCmdInternal(probe, api jira.HTTPDoer) *cobra.Command {
	flags := &setupFlags{}

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactive Jira credential setup",
		Long: `Interactive Jira credential setup.

Guides you through configuring Jira authentication credentials and
validates them before saving to ~/.env.jira or ~/.jira/profiles.json.

Supports both Jira Cloud (username + API token) and Jira Server/Data
Center (Personal Access Token).

Examples:
  # Interactive setup (legacy env file)
  jira setup

  # Setup as named profile
  jira setup --profile work --url https://jira.example.com

  # Pre-fill URL
  jira setup --url https://company.atlassian.net

  # Test credentials without saving
  jira setup --test-only

  # Migrate existing ~/.env.jira to profiles.json
  jira setup --migrate

Exit codes:
  0 - Credentials saved (or validated with --test-only)
  1 - Cancelled by the user
  2 - URL or credential validation failed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd, flags, probe, api)
		},
	}

	cmd.Flags().StringVar(&flags.url, "url", "", "Jira instance URL (will prompt if not provided)")
	cmd.Flags().StringVar(&flags.jiraType, "type", "auto", "Jira deployment type: cloud, server, or auto")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: ~/.env.jira)")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing file without prompting")
	cmd.Flags().BoolVar(&flags.testOnly, "test-only", false, "Test credentials without saving")
	cmd.Flags().StringVarP(&flags.profile, "profile", "P", "", "Save as named profile in ~/.jira/profiles.json")
	cmd.Flags().StringVar(&flags.projects, "projects", "", "Comma-separated project keys for the profile")
	cmd.Flags().BoolVar(&flags.migrate, "migrate", false, "Migrate ~/.env.jira to profiles.json")

	return cmd
}

func runSetup(cmd *cobra.Command, flags *setupFlags, probe, api jira.HTTPDoer) error {
	printer := printerFor(cmd)
	prompter := newSetupPrompter(cmd)

	switch flags.jiraType {
	case "cloud", "server", "auto":
	default:
		e := output.NewUserError(fmt.Sprintf("Invalid --type %q (use cloud, server, or auto)", flags.jiraType))
		printer.Error(e)
		return e
	}

	// "default" is the registry key naming the default profile.
	if flags.profile == "default" {
		e := output.NewUserError(`Invalid --profile "default" (the name is reserved)`)
		printer.Error(e)
		return e
	}

	if flags.migrate {
		return runSetupMigrate(printer, prompter)
	}

	printer.Println()
	printer.Println(strings.Repeat("=", 60))
	if flags.profile != "" {
		printer.Println("  Jira Profile Setup: " + flags.profile)
	} else {
		printer.Println("  Jira Credential Setup")
	}
	printer.Println(strings.Repeat("=", 60))
	printer.Println()

	outputPath := flags.output
	if outputPath == "" {
		var err error
		outputPath, err = config.DefaultEnvFile()
		if err != nil {
			e := output.NewConfigError(err.Error())
			printer.Error(e)
			return e
		}
	}

	// Profile mode updates the registry in place; only the legacy env file
	// needs an overwrite confirmation.
	if flags.profile == "" && !flags.force && !flags.testOnly {
		if _, err := os.Stat(outputPath); err == nil {
			printer.Println("⚠ Configuration file already exists: " + outputPath)
			overwrite, perr := prompter.confirm("Do you want to overwrite it?", false)
			if perr != nil {
				return promptAbort(printer, perr)
			}
			if !overwrite {
				return setupCancelled(printer, "Setup cancelled.")
			}
			printer.Println()
		}
	}

	url, err := stepURL(cmd, printer, prompter, flags.url, probe)
	if err != nil {
		return err
	}

	jiraType, err := stepAuthType(printer, prompter, flags.jiraType, url)
	if err != nil {
		return err
	}

	conn, err := stepCredentials(cmd, printer, prompter, url, jiraType, api)
	if err != nil {
		return err
	}

	if flags.testOnly {
		printer.Println()
		printer.Println(strings.Repeat("=", 60))
		printer.Println("✓ Credentials validated successfully!")
		printer.Println("(--test-only mode: not saving to file)")
		return nil
	}

	printer.Println()
	printer.Println("Step 4: Save Configuration")
	printer.Println(strings.Repeat("-", 40))

	if flags.profile != "" {
		return stepSaveProfile(printer, prompter, flags, conn)
	}
	return stepSaveEnv(printer, prompter, outputPath, conn)
}

// setupPrompter reads interactive answers from the command's input. Token
// prompts hide input when stdin is a terminal and fall back to plain line
// reads when piped, so scripted runs still work.
type setupPrompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

func newSetupPrompter(cmd *cobra.Command) *setupPrompter {
	in := cmd.InOrStdin()
	return &setupPrompter{in: in, out: cmd.OutOrStdout(), reader: bufio.NewReader(in)}
}

// line reads one trimmed line. A final line without a newline still counts.
func (p *setupPrompter) line() (string, error) {
	s, err := p.reader.ReadString('\n')
	if err != nil && s == "" {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func (p *setupPrompter) prompt(label string) (string, error) {
	fmt.Fprint(p.out, label+": ")
	return p.line()
}

// hidden prompts without echoing when the input is a terminal.
func (p *setupPrompter) hidden(label string) (string, error) {
	fmt.Fprint(p.out, label+": ")
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	return p.line()
}

// confirm asks a yes/no question. Empty input takes the default; anything
// other than y/yes is no.
func (p *setupPrompter) confirm(question string, def bool) (bool, error) {
	suffix := " [y/N]: "
	if def {
		suffix = " [Y/n]: "
	}
	fmt.Fprint(p.out, question+suffix)
	s, err := p.line()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// choice prompts until the answer is one of the given values. Empty input
// takes the default.
func (p *setupPrompter) choice(label string, choices []string, def string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s (%s) [%s]: ", label, strings.Join(choices, ", "), def)
		s, err := p.line()
		if err != nil {
			return "", err
		}
		if s == "" {
			return def, nil
		}
		if slices.Contains(choices, strings.ToLower(s)) {
			return strings.ToLower(s), nil
		}
		fmt.Fprintf(p.out, "Invalid choice: %s (choose from %s)\n", s, strings.Join(choices, ", "))
	}
}

// promptAbort reports an interrupted interactive session.
func promptAbort(printer *output.Printer, err error) error {
	msg := "Aborted"
	if !errors.Is(err, io.EOF) {
		msg = "Aborted: " + err.Error()
	}
	e := output.NewUserError(msg)
	printer.Error(e)
	return e
}

// setupCancelled prints the decline notice and returns the exit-1 error.
func setupCancelled(printer *output.Printer, msg string) error {
	printer.Println("\n" + msg)
	return output.NewUserError(strings.TrimSuffix(msg, "."))
}
