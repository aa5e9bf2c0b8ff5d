package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// defaultKey is the reserved registry key naming the default profile.
const defaultKey = "default"

// Profile is one named instance entry in the profile registry.
type Profile struct {
	Name            string   `json:"-"`
	URL             string   `json:"url" validate:"required,url"`
	Username        string   `json:"username,omitempty"`
	APIToken        string   `json:"apiToken,omitempty"`
	PersonalToken   string   `json:"personalToken,omitempty"`
	ProjectPrefixes []string `json:"projectPrefixes,omitempty"`
}

// Validate checks the structural profile fields. Credential completeness is
// checked at conversion time instead, so a half-configured profile does not
// break lookups of the others.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Connection converts the profile to connection settings. Profiles carry no
// TLS or cloud overrides; mode detection runs on credentials and hostname.
func (p *Profile) Connection() (*Connection, error) {
	if p.URL == "" {
		return nil, &ConfigError{
			Kind:     MissingRequired,
			Profile:  p.Name,
			Problems: []string{fmt.Sprintf("Profile '%s' is missing required 'url' field", p.Name)},
		}
	}
	conn := &Connection{
		URL:           p.URL,
		Username:      p.Username,
		APIToken:      p.APIToken,
		PersonalToken: p.PersonalToken,
		VerifySSL:     true,
		Source:        fmt.Sprintf("profile '%s'", p.Name),
	}
	if !conn.HasCloudAuth() && !conn.HasPersonalToken() {
		return nil, &ConfigError{
			Kind:    MissingRequired,
			Profile: p.Name,
			Problems: []string{fmt.Sprintf(
				"Profile '%s' is missing credentials: set personalToken (Server/DC) or username + apiToken (Cloud)",
				p.Name)},
		}
	}
	return conn, nil
}

// Registry is the parsed multi-instance profile registry.
type Registry struct {
	// DefaultName is the profile named by the reserved "default" key.
	DefaultName string
	// Profiles maps profile names to their entries.
	Profiles map[string]*Profile
	// Path is the file the registry was loaded from.
	Path string
}

// LoadRegistry reads the profile registry at path, or ~/.jira/profiles.json
// when path is empty. A missing file returns (nil, nil): multi-profile
// support is simply not enabled.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		var err error
		path, err = DefaultRegistryPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Kind: InvalidRegistry, Path: path, Cause: err}
	}

	reg := &Registry{Profiles: make(map[string]*Profile), Path: path}
	for name, msg := range raw {
		if name == defaultKey {
			if err := json.Unmarshal(msg, &reg.DefaultName); err != nil {
				return nil, &ConfigError{
					Kind:     InvalidRegistry,
					Path:     path,
					Problems: []string{fmt.Sprintf("The 'default' key in %s must name a profile", path)},
				}
			}
			continue
		}
		p := &Profile{}
		if err := json.Unmarshal(msg, p); err != nil {
			return nil, &ConfigError{
				Kind:     InvalidRegistry,
				Path:     path,
				Problems: []string{fmt.Sprintf("Profile '%s' in %s is not a valid profile object", name, path)},
			}
		}
		p.Name = name
		if err := p.Validate(); err != nil {
			return nil, &ConfigError{
				Kind:     InvalidRegistry,
				Path:     path,
				Problems: []string{fmt.Sprintf("Profile '%s' in %s has a missing or invalid url", name, path)},
			}
		}
		reg.Profiles[name] = p
	}

	if len(reg.Profiles) == 0 {
		return nil, &ConfigError{
			Kind:     InvalidRegistry,
			Path:     path,
			Problems: []string{"No profiles defined in " + path},
		}
	}
	if reg.DefaultName != "" {
		if _, ok := reg.Profiles[reg.DefaultName]; !ok {
			return nil, &ConfigError{
				Kind:     InvalidRegistry,
				Path:     path,
				Problems: []string{fmt.Sprintf("Default profile '%s' not found in %s", reg.DefaultName, path)},
			}
		}
	}
	return reg, nil
}

// Names returns all profile names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Profiles))
	for name := range r.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByName looks up a profile by its registry key.
func (r *Registry) ByName(name string) (*Profile, bool) {
	p, ok := r.Profiles[name]
	return p, ok
}

// Default returns the default profile, when one is configured.
func (r *Registry) Default() (*Profile, bool) {
	if r.DefaultName == "" {
		return nil, false
	}
	return r.ByName(r.DefaultName)
}

// ByHost returns the profiles whose url has the same host as rawURL. Hosts
// compare case-insensitively with default ports stripped. Results are in
// name order.
func (r *Registry) ByHost(rawURL string) []*Profile {
	want := NormalizedHost(rawURL)
	if want == "" {
		return nil
	}
	var matches []*Profile
	for _, name := range r.Names() {
		p := r.Profiles[name]
		if h := NormalizedHost(p.URL); h != "" && h == want {
			matches = append(matches, p)
		}
	}
	return matches
}

// ByPrefix returns the profiles listing prefix in projectPrefixes. The
// comparison is exact and case-sensitive. Results are in name order.
func (r *Registry) ByPrefix(prefix string) []*Profile {
	var matches []*Profile
	for _, name := range r.Names() {
		p := r.Profiles[name]
		if slices.Contains(p.ProjectPrefixes, prefix) {
			matches = append(matches, p)
		}
	}
	return matches
}

// NormalizedHost extracts a comparable host from a URL: lowercased, with the
// default port stripped for http and https. Empty when raw does not parse.
func NormalizedHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Host)
	switch strings.ToLower(u.Scheme) {
	case "https":
		host = strings.TrimSuffix(host, ":443")
	case "http":
		host = strings.TrimSuffix(host, ":80")
	}
	return host
}
