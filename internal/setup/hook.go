package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// HookMarkerBegin marks the start of jira-managed hook content.
	HookMarkerBegin = "# BEGIN jira"
	// HookMarkerEnd marks the end of jira-managed hook content.
	HookMarkerEnd = "# END jira"
)

// HookContent is the hook script section that pipes submitted prompts
// through jira detect, so referenced issue keys surface as context.
var HookContent = HookMarkerBegin + `
# Jira issue key detection for submitted prompts
if command -v jira >/dev/null 2>&1; then
  jira detect 2>/dev/null
fi
` + HookMarkerEnd

// ResolveHookPath determines the Claude Code hook path based on scope.
// If project is true, returns a project-local path; otherwise the global
// path under the user's home directory.
func ResolveHookPath(project bool) (string, string, error) {
	if project {
		cwd, err := os.Getwd()
		if err != nil {
			return "", "", fmt.Errorf("resolving working directory: %w", err)
		}
		return filepath.Join(cwd, ".claude", "hooks", "user_prompt_submit.sh"), "project", nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "hooks", "user_prompt_submit.sh"), "global", nil
}

// IsHookInstalled checks if the jira section exists in a hook file.
func IsHookInstalled(hookPath string) bool {
	content, err := os.ReadFile(hookPath)
	if err != nil {
		return false
	}
	return strings.Contains(string(content), HookMarkerBegin)
}

// InstallHook adds or updates the jira section in a hook file, preserving
// unrelated content.
func InstallHook(hookPath string) error {
	hookDir := filepath.Dir(hookPath)
	if err := os.MkdirAll(hookDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", hookDir, err)
	}

	var content string
	existing, err := os.ReadFile(hookPath)
	if err == nil {
		content = removeHookSection(string(existing))
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", hookPath, err)
	}

	if !strings.HasPrefix(content, "#!") {
		content = "#!/bin/bash\n" + content
	}

	content = strings.TrimRight(content, "\n") + "\n\n" + HookContent + "\n"

	// hook needs execute permission
	if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
		return fmt.Errorf("writing %s: %w", hookPath, err)
	}
	return nil
}

// RemoveHook removes the jira section from a hook file. A missing file is
// not an error.
func RemoveHook(hookPath string) error {
	content, err := os.ReadFile(hookPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", hookPath, err)
	}

	newContent := removeHookSection(string(content))

	cleaned := strings.TrimSpace(strings.TrimPrefix(newContent, "#!/bin/bash"))
	if cleaned == "" {
		newContent = "#!/bin/bash\n"
	}

	// hook needs execute permission
	if err := os.WriteFile(hookPath, []byte(newContent), 0o755); err != nil {
		return fmt.Errorf("writing %s: %w", hookPath, err)
	}
	return nil
}

// removeHookSection strips the jira-managed section from hook content.
func removeHookSection(content string) string {
	lines := strings.Split(content, "\n")
	var result []string
	inSection := false

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), HookMarkerBegin) {
			inSection = true
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), HookMarkerEnd) {
			inSection = false
			continue
		}
		if !inSection {
			result = append(result, line)
		}
	}

	joined := strings.Join(result, "\n")
	for strings.Contains(joined, "\n\n\n") {
		joined = strings.ReplaceAll(joined, "\n\n\n", "\n\n")
	}

	return strings.TrimRight(joined, "\n") + "\n"
}
