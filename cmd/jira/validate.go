package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/jira/internal/config"
	"github.com/gorewood/jira/internal/jira"
	"github.com/gorewood/jira/internal/output"
	"github.com/gorewood/jira/internal/setup"
)

// profileStatus is one row of the --all report. Field names double as the
// JSON keys.
type profileStatus struct {
	Profile string
	URL     string
	Status  string
}

func newValidateCmd() *cobra.Command {
	return newValidateCmdInternal(nil, nil)
}

// newValidateCmdInternal lets tests inject a REST client and a probe doer.
func newValidateCmdInternal(client *jira.Client, probe jira.HTTPDoer) *cobra.Command {
	var (
		verbose bool
		project string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate Jira environment configuration",
		Long: `Validate Jira environment configuration.

Checks the resolved configuration and connectivity to ensure the other
jira commands will work correctly.

Exit codes:
  0 - All checks passed
  1 - Unexpected failure
  2 - Environment configuration error
  3 - Connectivity/authentication failure`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				return runValidateAll(cmd, probe)
			}
			return runValidate(cmd, client, probe, verbose, project)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
	cmd.Flags().StringVarP(&project, "project", "p", "", "Verify access to specific project")
	cmd.Flags().BoolVar(&all, "all", false, "Check every profile in the registry")

	return cmd
}

func runValidate(cmd *cobra.Command, client *jira.Client, probe jira.HTTPDoer, verbose bool, project string) error {
	printer := printerFor(cmd)

	// JSON mode reports the verdict as a single document; the
	// check-by-check lines are human output.
	verbose = verbose && !printer.IsJSON()

	if verbose {
		printer.Println(strings.Repeat("=", 60))
		printer.Println("Jira Environment Validation")
		printer.Println(strings.Repeat("=", 60))
		printer.Println()
	}

	if verbose {
		printer.Println("Environment Checks:")
	}
	conn, err := checkEnvironment(cmd, printer, verbose)
	if err != nil {
		return err
	}
	if verbose {
		printer.Println()
	}

	if verbose {
		printer.Println("Connectivity Checks:")
	}
	if err := checkConnectivity(cmd.Context(), printer, conn, client, probe, project, verbose); err != nil {
		return err
	}
	if verbose {
		printer.Println()
	}

	if verbose {
		printer.Println(strings.Repeat("=", 60))
	}
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"status":  "success",
			"message": "All validation checks passed!",
		})
	}
	printer.Println("✓ All validation checks passed!")
	return nil
}

// checkEnvironment resolves the connection and reports every configuration
// problem it finds. Verbose mode echoes the resolved settings with
// credentials masked.
func checkEnvironment(cmd *cobra.Command, printer *output.Printer, verbose bool) (*config.Connection, error) {
	dir, err := os.Getwd()
	if err != nil {
		dir = ""
	}
	resolver := &config.Resolver{Warn: cmd.ErrOrStderr()}
	conn, err := resolver.Resolve(config.Hint{
		EnvFile: flagString(cmd, "env-file"),
		Profile: flagString(cmd, "profile"),
		Dir:     dir,
	})
	if err != nil {
		return nil, reportConfigError(printer, err)
	}
	if err := conn.Validate(); err != nil {
		return nil, reportConfigError(printer, err)
	}

	if verbose {
		reportSource(printer, conn)
		okLine(printer, "JIRA_URL: "+conn.URL)

		switch config.DetectMode(conn).(type) {
		case config.ServerAuth:
			okLine(printer, "Auth mode: Personal Access Token (Server/DC)")
			okLine(printer, "JIRA_PERSONAL_TOKEN: ******* (hidden)")
		case config.CloudAuth:
			okLine(printer, "Auth mode: Username + API Token (Cloud)")
			okLine(printer, "JIRA_USERNAME: "+valueOrNA(conn.Username))
			okLine(printer, "JIRA_API_TOKEN: ******* (hidden)")
		}
		if conn.CloudOverride != nil {
			okLine(printer, fmt.Sprintf("JIRA_CLOUD: %t", *conn.CloudOverride))
		}
	}

	return conn, nil
}

// checkConnectivity probes the server, authenticates, and optionally checks
// project access. Probe and auth failures exit 3; a failed project check is
// only a warning since the key itself may be wrong.
func checkConnectivity(ctx context.Context, printer *output.Printer, conn *config.Connection, client *jira.Client, probe jira.HTTPDoer, project string, verbose bool) error {
	if probe == nil {
		probe = setup.NewProbeClient()
	}
	status, err := setup.ProbeStatus(ctx, probe, conn.URL)
	if errors.Is(err, setup.ErrProbeTimeout) {
		e := &output.ExitError{
			Code:       output.ExitConnectionError,
			Message:    "Connection timeout: " + conn.URL,
			Suggestion: "The server did not respond within 10 seconds.\n  Check your network connection and JIRA_URL.",
			Cause:      err,
		}
		printer.Error(e)
		return e
	}
	if err != nil {
		e := &output.ExitError{
			Code:       output.ExitConnectionError,
			Message:    "Connection failed: " + conn.URL,
			Suggestion: fmt.Sprintf("Could not connect to the server.\n  Error: %v", err),
			Cause:      err,
		}
		printer.Error(e)
		return e
	}
	if verbose {
		okLine(printer, fmt.Sprintf("Server reachable: %s (status: %d)", conn.URL, status))
	}

	if client == nil {
		client = jira.NewClient(conn, config.DetectMode(conn))
	}
	user, err := client.Myself(ctx)
	if err != nil {
		e := &output.ExitError{
			Code:       output.ExitConnectionError,
			Message:    "Authentication failed",
			Suggestion: fmt.Sprintf("Could not authenticate with the provided credentials.\n  Error: %v", err),
			Cause:      err,
		}
		printer.Error(e)
		return e
	}
	if verbose {
		okLine(printer, fmt.Sprintf("Authenticated as: %s (%s)", displayNameOrUnknown(user), valueOrNA(user.EmailAddress)))
	} else {
		okLine(printer, "Authentication successful")
	}

	if project != "" {
		proj, err := client.GetProject(ctx, project)
		switch {
		case err != nil:
			printer.Warn("Could not access project %s: %v", project, err)
		case verbose:
			name := proj.Name
			if name == "" {
				name = "Unknown"
			}
			okLine(printer, fmt.Sprintf("Project access: %s (%s)", project, name))
		default:
			okLine(printer, "Project access verified: "+project)
		}
	}

	return nil
}

// runValidateAll checks every registry profile: configuration completeness
// and server reachability. Connectivity failures outrank configuration
// failures in the exit code.
func runValidateAll(cmd *cobra.Command, probe jira.HTTPDoer) error {
	printer := printerFor(cmd)

	reg, err := config.LoadRegistry("")
	if err != nil {
		e := output.NewConfigError(err.Error())
		printer.Error(e)
		return e
	}
	if reg == nil {
		e := output.NewConfigError("No profiles file found. Run: jira setup --profile NAME")
		printer.Error(e)
		return e
	}

	if !printer.IsJSON() {
		warnDuplicatePrefixes(printer, reg)
	}

	if probe == nil {
		probe = setup.NewProbeClient()
	}
	results := make([]profileStatus, 0, len(reg.Profiles))
	var configFailed, connectionFailed bool
	for _, name := range reg.Names() {
		p := reg.Profiles[name]
		row := profileStatus{Profile: name, URL: valueOrNA(p.URL)}
		conn, err := p.Connection()
		if err != nil {
			row.Status = "CONFIG ERROR"
			configFailed = true
			results = append(results, row)
			continue
		}
		status, err := setup.ProbeStatus(cmd.Context(), probe, conn.URL)
		switch {
		case err != nil:
			row.Status = "CONNECTION ERROR"
			connectionFailed = true
		case reachableStatus(status):
			row.Status = "OK"
		default:
			row.Status = fmt.Sprintf("HTTP %d", status)
			connectionFailed = true
		}
		results = append(results, row)
	}

	if printer.IsJSON() {
		if err := printer.WriteJSON(results); err != nil {
			return err
		}
	} else {
		rows := make([][]string, len(results))
		for i, r := range results {
			rows[i] = []string{r.Profile, r.URL, r.Status}
		}
		printer.Table([]string{"Profile", "URL", "Status"}, rows)
	}

	var failErr error
	switch {
	case connectionFailed:
		failErr = output.NewConnectionError("One or more profiles failed connectivity checks")
	case configFailed:
		failErr = output.NewConfigError("One or more profiles have configuration errors")
	}
	if failErr != nil && !printer.IsJSON() {
		printer.Error(failErr)
	}
	return failErr
}

// okLine prints one passing check in human mode.
func okLine(printer *output.Printer, msg string) {
	if printer.IsJSON() {
		return
	}
	printer.Println("✓ " + msg)
}

// reportSource names where the configuration came from. Profile-based
// resolution reports the profile, not a misleading env file path.
func reportSource(printer *output.Printer, conn *config.Connection) {
	switch {
	case strings.HasPrefix(conn.Source, "profile "):
		okLine(printer, "Configuration source: "+conn.Source)
	case conn.Source == "environment":
		okLine(printer, "Configuration source: environment variables")
	default:
		okLine(printer, "Environment file: "+conn.Source)
	}
}

// reportConfigError prints configuration failures one problem per line and
// returns the config-coded error carrying the exit status.
func reportConfigError(printer *output.Printer, err error) error {
	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Kind == config.MissingRequired && len(cfgErr.Problems) > 0 {
		var last error
		for _, p := range cfgErr.Problems {
			e := output.NewConfigError("Configuration error: " + p)
			printer.Error(e)
			last = e
		}
		return last
	}
	e := output.NewConfigError(err.Error())
	printer.Error(e)
	return e
}

// reachableStatus reports whether an HTTP status proves the server is up.
// 401 and 403 mean the server answered but wants credentials.
func reachableStatus(status int) bool {
	return status < 400 || status == 401 || status == 403
}

// warnDuplicatePrefixes flags project prefixes claimed by more than one
// profile, since issue keys under them will need --profile to disambiguate.
func warnDuplicatePrefixes(printer *output.Printer, reg *config.Registry) {
	owners := make(map[string][]string)
	for _, name := range reg.Names() {
		for _, prefix := range reg.Profiles[name].ProjectPrefixes {
			owners[prefix] = append(owners[prefix], name)
		}
	}
	prefixes := make([]string, 0, len(owners))
	for prefix, names := range owners {
		if len(names) > 1 {
			prefixes = append(prefixes, prefix)
		}
	}
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		printer.Warn("Project prefix %s is claimed by profiles: %s", prefix, strings.Join(owners[prefix], ", "))
	}
}
