// Package setup provides business logic for configuring jira credentials
// and installing the agent integration.
//
// This package contains the non-interactive pieces of the setup flow:
// URL and credential probing, credential file and profile registry writing,
// legacy file migration, and the Claude Code hook installer. Command-layer
// adapters in cmd/jira/ handle CLI concerns (prompts, flags, output
// formatting, cobra wiring) and delegate to this package for the actual
// work.
//
// # Probing
//
// Reachability and authentication checks used by setup and validate:
//
//	msg, err := setup.CheckURL(ctx, doer, url)
//	who, err := setup.CheckCredentials(ctx, client)
//
// # Writing
//
// Credential persistence (both files are written with 0600 permissions):
//
//	err := setup.WriteEnvFile(path, conn)
//	warning, err := setup.WriteProfile(registryPath, name, profile)
//
// # Agent Integration
//
// Claude Code hook operations (install, remove, check):
//
//	path, scope, err := setup.ResolveHookPath(false)
//	installed := setup.IsHookInstalled(path)
//	err := setup.InstallHook(path)
//	err := setup.RemoveHook(path)
package setup
