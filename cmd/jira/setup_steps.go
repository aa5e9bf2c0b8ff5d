package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/config"
	"github.com/gorewood/jira/internal/jira"
	"github.com/gorewood/jira/internal/output"
	"github.com/gorewood/jira/internal/setup"
)

// stepURL collects the instance URL and probes it. Validation failures
// exit 2.
func stepURL(cmd *cobra.Command, printer *output.Printer, prompter *setupPrompter, presetURL string, probe jira.HTTPDoer) (string, error) {
	printer.Println("Step 1: Jira Instance URL")
	printer.Println(strings.Repeat("-", 40))

	url := presetURL
	if url != "" {
		printer.Println("Using provided URL: " + url)
	} else {
		printer.Println("Enter your Jira instance URL.")
		printer.Println("Examples:")
		printer.Println("  - https://company.atlassian.net (Jira Cloud)")
		printer.Println("  - https://jira.company.com (Jira Server/DC)")
		printer.Println()
		entered, err := prompter.prompt("Jira URL")
		if err != nil {
			return "", promptAbort(printer, err)
		}
		url = strings.TrimRight(entered, "/")
	}

	if strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "http://localhost") {
		printer.Warn("Using HTTP without TLS. Credentials will be transmitted in plaintext.")
	}

	if probe == nil {
		probe = setup.NewProbeClient()
	}
	printer.Println()
	printer.Print("Validating URL...")
	msg, err := setup.CheckURL(cmd.Context(), probe, url)
	if err != nil {
		printer.Println(" ✗")
		e := output.NewConfigError("URL validation failed: " + err.Error())
		printer.Error(e)
		return "", e
	}
	printer.Println(" ✓ " + msg)

	return url, nil
}

// stepAuthType detects cloud vs server from the URL and lets the user
// override the guess.
func stepAuthType(printer *output.Printer, prompter *setupPrompter, jiraType, url string) (string, error) {
	printer.Println()
	printer.Println("Step 2: Authentication Type")
	printer.Println(strings.Repeat("-", 40))

	if jiraType == "auto" {
		detected := "server"
		if config.IsCloudURL(url) {
			detected = "cloud"
		}
		printer.Println("Detected Jira type: " + strings.ToUpper(detected))
		if detected == "cloud" {
			printer.Println("  → Using Username + API Token authentication")
		} else {
			printer.Println("  → Using Personal Access Token (PAT) authentication")
		}

		correct, err := prompter.confirm("Is this correct?", true)
		if err != nil {
			return "", promptAbort(printer, err)
		}
		if correct {
			jiraType = detected
		} else {
			choice, err := prompter.choice("Select type", []string{"cloud", "server"}, detected)
			if err != nil {
				return "", promptAbort(printer, err)
			}
			jiraType = choice
		}
	}

	printer.Println()
	return jiraType, nil
}

// stepCredentials prompts for the mode's credentials and checks them
// against the instance. Authentication failures exit 2 after printing
// per-mode troubleshooting tips.
func stepCredentials(cmd *cobra.Command, printer *output.Printer, prompter *setupPrompter, url, jiraType string, api jira.HTTPDoer) (*config.Connection, error) {
	printer.Println("Step 3: Credentials")
	printer.Println(strings.Repeat("-", 40))

	conn := &config.Connection{URL: url, VerifySSL: true}

	if jiraType == "cloud" {
		printer.Println("Jira Cloud authentication requires:")
		printer.Println("  1. Your Atlassian account email")
		printer.Println("  2. An API token (create at https://id.atlassian.com/manage-profile/security/api-tokens)")
		printer.Println()

		username, err := prompter.prompt("Email address")
		if err != nil {
			return nil, promptAbort(printer, err)
		}
		apiToken, err := prompter.hidden("API Token")
		if err != nil {
			return nil, promptAbort(printer, err)
		}
		conn.Username = username
		conn.APIToken = apiToken
	} else {
		printer.Println("Jira Server/Data Center authentication requires:")
		printer.Println("  - A Personal Access Token (PAT)")
		printer.Println("  - Create one in Jira: Profile → Personal Access Tokens → Create token")
		printer.Println()

		personalToken, err := prompter.hidden("Personal Access Token")
		if err != nil {
			return nil, promptAbort(printer, err)
		}
		conn.PersonalToken = personalToken
	}

	printer.Println()
	printer.Print("Validating credentials...")

	var opts []jira.Option
	if api != nil {
		opts = append(opts, jira.WithHTTPClient(api))
	}
	client := jira.NewClient(conn, config.DetectMode(conn), opts...)
	info, err := setup.CheckCredentials(cmd.Context(), client)
	if err != nil {
		printer.Println(" ✗")
		e := output.NewConfigError("Authentication failed: " + err.Error())
		printer.Error(e)
		printTroubleshooting(printer, jiraType)
		return nil, e
	}
	printer.Println(" ✓")
	printer.Println("✓ Authenticated as: " + info)

	return conn, nil
}

func printTroubleshooting(printer *output.Printer, jiraType string) {
	printer.Println()
	printer.Println("Troubleshooting tips:")
	if jiraType == "cloud" {
		printer.Println("  1. Verify your email address is correct")
		printer.Println("  2. Generate a new API token at:")
		printer.Println("     https://id.atlassian.com/manage-profile/security/api-tokens")
		printer.Println("  3. Make sure you're using the token, not your password")
	} else {
		printer.Println("  1. Create a new PAT in Jira: Profile → Personal Access Tokens")
		printer.Println("  2. Ensure the token has not expired")
		printer.Println("  3. Check that you have access to the Jira instance")
	}
}

// stepSaveProfile writes the validated credentials into the profile
// registry. Declining the save exits 1.
func stepSaveProfile(printer *output.Printer, prompter *setupPrompter, flags *setupFlags, conn *config.Connection) error {
	registryPath, err := config.DefaultRegistryPath()
	if err != nil {
		e := output.NewConfigError(err.Error())
		printer.Error(e)
		return e
	}

	printer.Println(fmt.Sprintf("Profile '%s' will be saved to: %s", flags.profile, registryPath))
	printer.Println("File permissions will be set to 600 (owner read/write only)")

	projectList := splitCSV(flags.projects)
	if flags.projects == "" {
		printer.Println()
		entered, perr := prompter.prompt("Project keys (comma-separated, e.g. WEB,INFRA)")
		if perr != nil {
			return promptAbort(printer, perr)
		}
		projectList = splitCSV(entered)
	}

	save, err := prompter.confirm("Save profile?", true)
	if err != nil {
		return promptAbort(printer, err)
	}
	if !save {
		return setupCancelled(printer, "Profile not saved.")
	}

	profile := &config.Profile{
		Name:            flags.profile,
		URL:             conn.URL,
		Username:        conn.Username,
		APIToken:        conn.APIToken,
		PersonalToken:   conn.PersonalToken,
		ProjectPrefixes: projectList,
	}
	warning, err := setup.WriteProfile(registryPath, flags.profile, profile)
	if warning != "" {
		printer.Warn("%s", warning)
	}
	if err != nil {
		e := output.NewConfigError(err.Error())
		printer.Error(e)
		return e
	}

	printer.Println()
	printer.Println(strings.Repeat("=", 60))
	printer.Println(fmt.Sprintf("✓ Profile '%s' saved to %s", flags.profile, registryPath))
	printer.Println()
	printer.Println("You can now use the jira CLI:")
	printer.Println(fmt.Sprintf("  jira validate --profile %s --verbose", flags.profile))
	printer.Println(fmt.Sprintf("  jira issue get PROJ-123 --profile %s", flags.profile))
	if len(projectList) > 0 {
		printer.Println("\n  Auto-resolution enabled for projects: " + strings.Join(projectList, ", "))
	}
	return nil
}

// stepSaveEnv writes the validated credentials to the legacy env file.
// Declining the save exits 1.
func stepSaveEnv(printer *output.Printer, prompter *setupPrompter, outputPath string, conn *config.Connection) error {
	printer.Println("Configuration will be saved to: " + outputPath)
	printer.Println("File permissions will be set to 600 (owner read/write only)")

	save, err := prompter.confirm("Save configuration?", true)
	if err != nil {
		return promptAbort(printer, err)
	}
	if !save {
		return setupCancelled(printer, "Configuration not saved.")
	}

	if err := setup.WriteEnvFile(outputPath, conn); err != nil {
		e := output.NewConfigError(err.Error())
		printer.Error(e)
		return e
	}

	printer.Println()
	printer.Println(strings.Repeat("=", 60))
	printer.Println("✓ Configuration saved to " + outputPath)
	printer.Println()
	printer.Println("You can now use the jira CLI:")
	printer.Println("  jira validate --verbose")
	printer.Println("  jira issue get PROJ-123")
	return nil
}

// runSetupMigrate converts the legacy env file into a 'legacy' registry
// profile, which becomes the default when the registry is new.
func runSetupMigrate(printer *output.Printer, prompter *setupPrompter) error {
	printer.Println()
	printer.Println(strings.Repeat("=", 60))
	printer.Println("  Migrate ~/.env.jira → ~/.jira/profiles.json")
	printer.Println(strings.Repeat("=", 60))
	printer.Println()

	envPath, err := config.DefaultEnvFile()
	if err != nil {
		e := output.NewConfigError(err.Error())
		printer.Error(e)
		return e
	}
	registryPath, err := config.DefaultRegistryPath()
	if err != nil {
		e := output.NewConfigError(err.Error())
		printer.Error(e)
		return e
	}

	if _, err := os.Stat(envPath); err != nil {
		e := output.NewConfigError("No env file found at " + envPath)
		printer.Error(e)
		return e
	}

	if _, err := os.Stat(registryPath); err == nil {
		printer.Println("⚠ Profiles file already exists: " + registryPath)
		add, perr := prompter.confirm("Add legacy config as 'legacy' profile?", false)
		if perr != nil {
			return promptAbort(printer, perr)
		}
		if !add {
			return setupCancelled(printer, "Migration cancelled.")
		}
	}

	_, warning, err := setup.MigrateEnv(&config.Loader{}, envPath, registryPath)
	if warning != "" {
		printer.Warn("%s", warning)
	}
	if err != nil {
		e := output.NewConfigError(err.Error())
		printer.Error(e)
		return e
	}

	printer.Println(fmt.Sprintf("✓ Migrated %s → %s (profile: 'legacy')", envPath, registryPath))
	printer.Println()
	printer.Println("You can now add project keys to the profile:")
	printer.Println(fmt.Sprintf("  Edit %s and add project keys to \"projectPrefixes\": []", registryPath))
	return nil
}
