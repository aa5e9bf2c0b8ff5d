package config

import (
	"slices"
	"strconv"
	"strings"
)

// Credential keys recognized in env files and the process environment.
const (
	KeyURL           = "JIRA_URL"
	KeyUsername      = "JIRA_USERNAME"
	KeyAPIToken      = "JIRA_API_TOKEN"
	KeyPersonalToken = "JIRA_PERSONAL_TOKEN"
	KeyCloud         = "JIRA_CLOUD"
	KeyVerifySSL     = "JIRA_VERIFY_SSL"
)

// recognizedKeys is the set of keys the environment may contribute, in
// serialization order.
var recognizedKeys = []string{
	KeyURL,
	KeyUsername,
	KeyAPIToken,
	KeyPersonalToken,
	KeyCloud,
	KeyVerifySSL,
}

// RecognizedKeys returns the credential keys in serialization order.
func RecognizedKeys() []string {
	return slices.Clone(recognizedKeys)
}

// Connection holds everything needed to talk to one Jira instance.
type Connection struct {
	URL           string
	Username      string
	APIToken      string
	PersonalToken string

	// CloudOverride forces cloud (true) or server (false) treatment
	// regardless of credentials and hostname. Nil means auto-detect.
	CloudOverride *bool

	// VerifySSL controls TLS certificate verification. True unless
	// JIRA_VERIFY_SSL disabled it.
	VerifySSL bool

	// Source describes where the settings came from, for human output:
	// "profile 'name'", a file path, or "environment".
	Source string
}

// fromValues builds a Connection out of a merged key/value set.
func fromValues(values map[string]string) *Connection {
	c := &Connection{
		URL:           values[KeyURL],
		Username:      values[KeyUsername],
		APIToken:      values[KeyAPIToken],
		PersonalToken: values[KeyPersonalToken],
		VerifySSL:     true,
	}
	if raw, ok := values[KeyCloud]; ok {
		cloud := strings.EqualFold(strings.TrimSpace(raw), "true")
		c.CloudOverride = &cloud
	}
	if raw, ok := values[KeyVerifySSL]; ok {
		c.VerifySSL = parseVerifySSL(raw)
	}
	return c
}

// parseVerifySSL treats "false", "0" and "no" (any case) as off and every
// other value as on.
func parseVerifySSL(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "false", "0", "no":
		return false
	}
	return true
}

// HasCloudAuth reports whether username and API token are both present.
func (c *Connection) HasCloudAuth() bool {
	return c.Username != "" && c.APIToken != ""
}

// HasPersonalToken reports whether a server/DC personal access token is set.
func (c *Connection) HasPersonalToken() bool {
	return c.PersonalToken != ""
}

// Validate checks that the connection is complete enough to authenticate.
// All problems are collected into one error rather than reported one per run.
func (c *Connection) Validate() error {
	var problems []string
	if c.URL == "" {
		problems = append(problems, "Missing required variable: "+KeyURL)
	} else if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		problems = append(problems, KeyURL+" must start with http:// or https://: "+c.URL)
	}
	if !c.HasCloudAuth() && !c.HasPersonalToken() {
		problems = append(problems,
			"Missing authentication credentials. Provide either:\n"+
				"    - JIRA_USERNAME + JIRA_API_TOKEN (for Cloud)\n"+
				"    - JIRA_PERSONAL_TOKEN (for Server/DC)")
	}
	if len(problems) > 0 {
		return &ConfigError{Kind: MissingRequired, Problems: problems}
	}
	return nil
}

// Keys re-serializes the connection as its recognized KEY=VALUE set. Unset
// values and defaults (VerifySSL on, auto cloud detection) are omitted, so
// loading the result reproduces the same connection.
func (c *Connection) Keys() map[string]string {
	keys := make(map[string]string)
	if c.URL != "" {
		keys[KeyURL] = c.URL
	}
	if c.Username != "" {
		keys[KeyUsername] = c.Username
	}
	if c.APIToken != "" {
		keys[KeyAPIToken] = c.APIToken
	}
	if c.PersonalToken != "" {
		keys[KeyPersonalToken] = c.PersonalToken
	}
	if c.CloudOverride != nil {
		keys[KeyCloud] = strconv.FormatBool(*c.CloudOverride)
	}
	if !c.VerifySSL {
		keys[KeyVerifySSL] = "false"
	}
	return keys
}
