package config

import (
	"net/url"
	"strings"
)

// AuthMode selects the authentication scheme for a Jira instance. It is a
// closed set: CloudAuth or ServerAuth.
type AuthMode interface {
	// Scheme names the mode for logs and human output.
	Scheme() string

	isAuthMode()
}

// CloudAuth authenticates with email plus API token over HTTP basic auth,
// against the v3 REST API.
type CloudAuth struct {
	Username string
	APIToken string
}

func (CloudAuth) Scheme() string { return "cloud" }
func (CloudAuth) isAuthMode()    {}

// ServerAuth authenticates with a personal access token as a bearer token,
// against the v2 REST API.
type ServerAuth struct {
	Token string
}

func (ServerAuth) Scheme() string { return "server" }
func (ServerAuth) isAuthMode()    {}

// DetectMode decides how to authenticate against the connection's instance.
// The decision never fails; an incomplete connection simply produces a mode
// with empty credentials, which the server will reject.
//
// Precedence: JIRA_CLOUD override, then a personal access token, then a
// complete cloud credential pair, then an atlassian.net hostname. The
// default is server, the common case for self-hosted instances.
func DetectMode(c *Connection) AuthMode {
	cloud := false
	switch {
	case c.CloudOverride != nil:
		cloud = *c.CloudOverride
	case c.HasPersonalToken():
		cloud = false
	case c.HasCloudAuth():
		cloud = true
	default:
		cloud = IsCloudURL(c.URL)
	}
	if cloud {
		return CloudAuth{Username: c.Username, APIToken: c.APIToken}
	}
	return ServerAuth{Token: c.PersonalToken}
}

// IsCloudURL reports whether rawURL points at an Atlassian cloud instance.
// The host must be exactly atlassian.net or a subdomain of it; lookalike
// hosts such as fake-atlassian.net.evil.com do not count.
func IsCloudURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "atlassian.net" || strings.HasSuffix(host, ".atlassian.net")
}
