// Package jira is a thin REST client for Jira Cloud and Server/Data Center.
//
// The client is created from a resolved connection and its detected auth
// mode:
//
//	conn, err := resolver.Resolve(hint)
//	mode := config.DetectMode(conn)
//	client := jira.NewClient(conn, mode)
//
// Cloud connections authenticate with basic auth (email + API token) and
// talk to /rest/api/3, where rich text bodies use the Atlassian Document
// Format. Server/DC connections authenticate with a bearer Personal Access
// Token and talk to /rest/api/2, where bodies are wiki-markup strings. The
// agile endpoints under /rest/agile/1.0 are identical on both.
//
// # Error Handling
//
// Failed requests return typed errors:
//
//   - *APIError for non-2xx responses, carrying the status code and any
//     messages extracted from Jira's error body
//   - *ConnectionError for transport failures, rendering the verification
//     hints for the active auth mode
//
// Use IsNotFound and IsAuthError to branch on the common cases.
package jira
