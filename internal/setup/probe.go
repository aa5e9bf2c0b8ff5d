package setup

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorewood/jira/internal/jira"
)

// probeTimeout bounds the reachability check; credential checks use the
// REST client's own timeout.
const probeTimeout = 10 * time.Second

// ErrProbeTimeout is returned when the server does not answer the
// reachability request within probeTimeout.
var ErrProbeTimeout = errors.New("Connection timeout - server did not respond")

// NewProbeClient returns the HTTP client used for URL reachability checks.
// Redirects are followed so vanity URLs that bounce to a login page still
// count as reachable.
func NewProbeClient() *http.Client {
	return &http.Client{Timeout: probeTimeout}
}

// CheckURL probes rawURL and reports whether a Jira instance answers there.
// The returned message describes the outcome either way: on success it is a
// short reachability note, on failure the error text explains what went
// wrong.
func CheckURL(ctx context.Context, doer jira.HTTPDoer, rawURL string) (string, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "", errors.New("URL must start with http:// or https://")
	}

	status, err := ProbeStatus(ctx, doer, rawURL)
	if err != nil {
		return "", err
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Sprintf("Server reachable, authentication required (status: %d)", status), nil
	case status < 400:
		return fmt.Sprintf("Server reachable (status: %d)", status), nil
	case status < 500:
		return "", fmt.Errorf("Client error when contacting server (status: %d)", status)
	default:
		return "", fmt.Errorf("Server error (status: %d)", status)
	}
}

// ProbeStatus performs the reachability request and returns the HTTP
// status. A 405 on HEAD is retried with GET. Any answered request counts,
// error statuses included; callers decide what the status means.
func ProbeStatus(ctx context.Context, doer jira.HTTPDoer, rawURL string) (int, error) {
	status, err := probe(ctx, doer, http.MethodHead, rawURL)
	if err != nil {
		return 0, err
	}
	if status == http.StatusMethodNotAllowed {
		return probe(ctx, doer, http.MethodGet, rawURL)
	}
	return status, nil
}

func probe(ctx context.Context, doer jira.HTTPDoer, method, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("Connection failed: %v", err)
	}

	resp, err := doer.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return 0, ErrProbeTimeout
		}
		return 0, fmt.Errorf("Connection failed: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// CheckCredentials verifies the client can authenticate by fetching the
// current user. On success it returns a display string for the
// authenticated user, "Name (email)" when an email is known.
func CheckCredentials(ctx context.Context, client *jira.Client) (string, error) {
	user, err := client.Myself(ctx)
	if err != nil {
		var apiErr *jira.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case http.StatusUnauthorized:
				return "", errors.New("Authentication failed - invalid credentials")
			case http.StatusForbidden:
				return "", errors.New("Access denied - check permissions")
			}
		}
		return "", fmt.Errorf("Connection error: %v", err)
	}

	name := user.DisplayName
	if name == "" {
		name = user.Name
	}
	if name == "" {
		name = "Unknown"
	}
	if user.EmailAddress != "" {
		return fmt.Sprintf("%s (%s)", name, user.EmailAddress), nil
	}
	return name, nil
}
