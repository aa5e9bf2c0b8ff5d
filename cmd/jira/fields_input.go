// Package main provides the entry point for the jira CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/jira/internal/output"
)

// parseExtraFields merges the --fields-json and --fields-file inputs into
// one field map. File values are read first, so an inline --fields-json
// entry wins when both name the same field.
func parseExtraFields(fieldsJSON, fieldsFile string) (map[string]any, error) {
	extra := map[string]any{}

	if fieldsFile != "" {
		fromFile, err := readFieldsFile(fieldsFile)
		if err != nil {
			return nil, err
		}
		for key, value := range fromFile {
			extra[key] = value
		}
	}

	if fieldsJSON != "" {
		var fromFlag map[string]any
		if err := json.Unmarshal([]byte(fieldsJSON), &fromFlag); err != nil {
			return nil, output.NewUserError(fmt.Sprintf("Invalid JSON in --fields-json: %v", err))
		}
		for key, value := range fromFlag {
			extra[key] = value
		}
	}

	if len(extra) == 0 {
		return nil, nil
	}
	return extra, nil
}

// readFieldsFile loads a field document. The extension picks the decoder:
// .json is parsed as JSON, .yaml and .yml as YAML.
func readFieldsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, output.NewUserError(fmt.Sprintf("Cannot read fields file: %v", err))
	}

	fields := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, output.NewUserError(fmt.Sprintf("Invalid JSON in %s: %v", path, err))
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fields); err != nil {
			return nil, output.NewUserError(fmt.Sprintf("Invalid YAML in %s: %v", path, err))
		}
	default:
		return nil, output.NewUserError(fmt.Sprintf("Unsupported fields file extension %q (use .json, .yaml, or .yml)", filepath.Ext(path)))
	}
	return fields, nil
}

// splitCSV splits a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
