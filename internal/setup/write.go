package setup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorewood/jira/internal/config"
)

// envFileHeader is written above the credentials. The file holds secrets in
// clear text like ~/.netrc or ~/.aws/credentials do, protected by file
// permissions.
var envFileHeader = []string{
	"# Jira CLI Configuration",
	"# Generated by jira setup",
	"# Security: This file contains credentials and is protected by 0600 permissions",
	"",
}

// WriteEnvFile saves the connection's credentials to path as KEY=VALUE
// lines, created with 0600 permissions.
func WriteEnvFile(path string, conn *config.Connection) error {
	lines := append([]string{}, envFileHeader...)
	values := conn.Keys()
	for _, key := range config.RecognizedKeys() {
		if v := values[key]; v != "" {
			lines = append(lines, key+"="+v)
		}
	}
	lines = append(lines, "")

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return f.Close()
}

// WriteProfile adds or updates a named profile in the registry at path,
// creating the registry when missing. The first profile written becomes the
// default. A corrupt registry is moved aside to <path>.bak and replaced; the
// returned warning tells the caller that happened. The registry is written
// with 0600 permissions.
func WriteProfile(path, name string, profile *config.Profile) (string, error) {
	// The "default" key holds the default profile's name, so no profile
	// can be stored under it.
	if name == "default" {
		return "", fmt.Errorf("Profile name 'default' is reserved")
	}

	raw, warning, err := loadRegistryForUpdate(path)
	if err != nil {
		return warning, err
	}

	entry, err := json.Marshal(profile)
	if err != nil {
		return warning, fmt.Errorf("encoding profile '%s': %w", name, err)
	}
	raw[name] = entry

	// First profile becomes the default.
	var current string
	if msg, ok := raw["default"]; !ok || json.Unmarshal(msg, &current) != nil || current == "" {
		def, _ := json.Marshal(name)
		raw["default"] = def
	}

	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return warning, fmt.Errorf("encoding %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return warning, fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.Write(append(out, '\n')); err != nil {
		f.Close()
		return warning, fmt.Errorf("writing %s: %w", path, err)
	}
	return warning, f.Close()
}

// loadRegistryForUpdate reads the registry as raw JSON entries, handling the
// missing and corrupt cases. A corrupt file is backed up and replaced with
// an empty registry.
func loadRegistryForUpdate(path string) (map[string]json.RawMessage, string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return nil, "", fmt.Errorf("creating %s: %w", filepath.Dir(path), mkErr)
		}
		return map[string]json.RawMessage{}, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}

	var raw map[string]json.RawMessage
	if json.Unmarshal(data, &raw) != nil {
		warning := fmt.Sprintf("%s is corrupted. Creating backup and starting fresh.", path)
		return map[string]json.RawMessage{}, warning, backupRegistry(path)
	}
	if !validRegistryShape(raw) {
		warning := fmt.Sprintf("%s has invalid structure. Creating backup and starting fresh.", path)
		return map[string]json.RawMessage{}, warning, backupRegistry(path)
	}
	return raw, "", nil
}

// validRegistryShape checks that "default" is a string and every other
// entry is an object.
func validRegistryShape(raw map[string]json.RawMessage) bool {
	for key, msg := range raw {
		if key == "default" {
			var s string
			if json.Unmarshal(msg, &s) != nil {
				return false
			}
			continue
		}
		var obj map[string]json.RawMessage
		if json.Unmarshal(msg, &obj) != nil {
			return false
		}
	}
	return true
}

func backupRegistry(path string) error {
	if err := os.Rename(path, path+".bak"); err != nil {
		return fmt.Errorf("backing up %s: %w", path, err)
	}
	return nil
}
