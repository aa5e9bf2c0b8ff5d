package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	envFile, err := DefaultEnvFile()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(envFile) != EnvFileName {
		t.Errorf("DefaultEnvFile() = %q, want path ending in %q", envFile, EnvFileName)
	}

	registry, err := DefaultRegistryPath()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(registry, filepath.Join(".jira", "profiles.json")) {
		t.Errorf("DefaultRegistryPath() = %q", registry)
	}
}
