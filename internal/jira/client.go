package jira

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorewood/jira/internal/config"
)

// requestTimeout bounds every REST call.
const requestTimeout = 30 * time.Second

// agileBase is the agile API root, shared by Cloud and Server/DC.
const agileBase = "/rest/agile/1.0"

// HTTPDoer defines the HTTP operations required by Client.
// This allows injection of test doubles for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to a single Jira instance.
type Client struct {
	baseURL    string
	apiBase    string
	authHeader string
	cloud      bool
	httpClient HTTPDoer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) { c.httpClient = doer }
}

// NewClient creates a client for the given connection. The auth header and
// API version are fixed by the mode: Cloud gets basic auth against
// /rest/api/3, Server/DC gets a bearer token against /rest/api/2.
func NewClient(conn *config.Connection, mode config.AuthMode, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(conn.URL, "/"),
		apiBase: "/rest/api/2",
	}

	switch m := mode.(type) {
	case config.CloudAuth:
		creds := base64.StdEncoding.EncodeToString([]byte(m.Username + ":" + m.APIToken))
		c.authHeader = "Basic " + creds
		c.cloud = true
		c.apiBase = "/rest/api/3"
	case config.ServerAuth:
		c.authHeader = "Bearer " + m.Token
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if !conn.VerifySSL {
		tlsConfig.InsecureSkipVerify = true
	}
	c.httpClient = &http.Client{
		Timeout:   requestTimeout,
		Transport: &http.Transport{TLSClientConfig: tlsConfig},
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized instance URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Cloud reports whether the client targets a Jira Cloud instance.
func (c *Client) Cloud() bool { return c.cloud }

// BrowseURL returns the web URL for an issue key.
func (c *Client) BrowseURL(key string) string {
	return c.baseURL + "/browse/" + key
}

// api prefixes a path with the versioned REST API root.
func (c *Client) api(path string) string { return c.apiBase + path }

// textBody converts plain text to the rich-text representation the API
// version expects: an ADF document on Cloud, the string itself on Server/DC.
func (c *Client) textBody(text string) any {
	if c.cloud {
		return Document(text)
	}
	return text
}

// do performs one REST call. A non-nil in is JSON-encoded as the request
// body; a non-nil out receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectionError{URL: c.baseURL, Cloud: c.cloud, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return parseAPIError(resp.StatusCode, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
