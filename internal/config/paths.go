// Package config resolves Jira connection settings from credential files,
// environment variables, and the multi-instance profile registry.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvFileName is the legacy single-connection credential file, found in
	// the user's home directory.
	EnvFileName = ".env.jira"

	// MarkerName is the per-directory file that pins a profile for every
	// command run inside that directory.
	MarkerName = ".jira-profile"
)

// DefaultEnvFile returns ~/.env.jira.
func DefaultEnvFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, EnvFileName), nil
}

// DefaultRegistryPath returns ~/.jira/profiles.json.
func DefaultRegistryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".jira", "profiles.json"), nil
}
