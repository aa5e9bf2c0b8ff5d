package jira

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx response from the Jira REST API.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	var reason string
	switch e.StatusCode {
	case http.StatusBadRequest:
		reason = "bad request (HTTP 400)"
	case http.StatusUnauthorized:
		reason = "authentication failed (HTTP 401)"
	case http.StatusForbidden:
		reason = "access denied (HTTP 403)"
	case http.StatusNotFound:
		reason = "not found or no permission (HTTP 404)"
	default:
		reason = fmt.Sprintf("Jira API error (HTTP %d)", e.StatusCode)
	}
	if len(e.Messages) == 0 {
		return reason
	}
	return reason + ": " + strings.Join(e.Messages, "; ")
}

// parseAPIError extracts messages from Jira's standard error body, which
// carries a top-level errorMessages array and a per-field errors map.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var parsed struct {
		ErrorMessages []string          `json:"errorMessages"`
		Errors        map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Messages = append(apiErr.Messages, parsed.ErrorMessages...)

		fields := make([]string, 0, len(parsed.Errors))
		for field := range parsed.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			apiErr.Messages = append(apiErr.Messages, field+": "+parsed.Errors[field])
		}
		return apiErr
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		if len(text) > 500 {
			text = text[:500]
		}
		apiErr.Messages = []string{text}
	}
	return apiErr
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsAuthError reports whether err is a 401 or 403 from the API.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// ConnectionError is a transport-level failure reaching the instance.
type ConnectionError struct {
	URL   string
	Cloud bool
	Cause error
}

func (e *ConnectionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Failed to connect to Jira at %s\n\n", e.URL)
	fmt.Fprintf(&b, "  Error: %v\n\n", e.Cause)
	b.WriteString("  Please verify:\n")
	b.WriteString("    - JIRA_URL is correct\n")
	if e.Cloud {
		b.WriteString("    - JIRA_USERNAME is your email (Cloud) or username (Server/DC)\n")
		b.WriteString("    - JIRA_API_TOKEN is valid\n")
	} else {
		b.WriteString("    - JIRA_PERSONAL_TOKEN is a valid Personal Access Token\n")
	}
	return b.String()
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

// IsConnectionError reports whether err is a transport failure.
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return errors.As(err, &connErr)
}
