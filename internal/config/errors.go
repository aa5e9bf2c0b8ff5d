package config

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies configuration failures so callers can branch on the
// failure class without parsing messages.
type Kind int

const (
	// FileNotFound means an explicitly requested credential file is absent.
	FileNotFound Kind = iota
	// MissingRequired means the assembled connection is incomplete.
	MissingRequired
	// InvalidRegistry means the profile registry exists but cannot be used.
	InvalidRegistry
	// ProfileNotFound means no profile matched the request.
	ProfileNotFound
	// NoRegistry means a profile was requested but no registry file exists.
	NoRegistry
)

// String returns a stable name for the kind, used in debug logs.
func (k Kind) String() string {
	switch k {
	case FileNotFound:
		return "file-not-found"
	case MissingRequired:
		return "missing-required"
	case InvalidRegistry:
		return "invalid-registry"
	case ProfileNotFound:
		return "profile-not-found"
	case NoRegistry:
		return "no-registry"
	}
	return "unknown"
}

// ConfigError describes why a connection could not be assembled.
type ConfigError struct {
	Kind Kind

	// Path is the credential or registry file involved, when relevant.
	Path string
	// Profile is the requested profile name, when relevant.
	Profile string
	// Problems lists individual findings, already phrased for the user.
	Problems []string
	// Available holds the known profile names, sorted.
	Available []string
	// Cause is the underlying decode or IO error, when there is one.
	Cause error
}

func (e *ConfigError) Error() string {
	switch e.Kind {
	case FileNotFound:
		return "Environment file not found: " + e.Path
	case MissingRequired:
		return "Configuration errors:\n  " + strings.Join(e.Problems, "\n  ")
	case InvalidRegistry:
		if e.Cause != nil {
			return fmt.Sprintf("Invalid JSON in %s: %v", e.Path, e.Cause)
		}
		return strings.Join(e.Problems, "\n")
	case ProfileNotFound:
		if e.Profile != "" {
			return fmt.Sprintf("Profile '%s' not found. Available: %s",
				e.Profile, strings.Join(e.Available, ", "))
		}
		return fmt.Sprintf("Could not resolve profile. Available profiles: %s. Use --profile to specify one.",
			strings.Join(e.Available, ", "))
	case NoRegistry:
		return fmt.Sprintf("Profile '%s' requested but %s does not exist.\n  Run: jira setup --profile %s",
			e.Profile, e.Path, e.Profile)
	}
	return "configuration error"
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// IsKind reports whether err is a *ConfigError of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *ConfigError
	return errors.As(err, &ce) && ce.Kind == kind
}

// AmbiguousProfileError reports an input that matched more than one profile.
type AmbiguousProfileError struct {
	// Input is the matched project prefix or normalized host.
	Input string
	// Candidates holds the matching profile names, sorted.
	Candidates []string
}

func (e *AmbiguousProfileError) Error() string {
	return fmt.Sprintf("%s found in profiles: %s. Use --profile to disambiguate.",
		e.Input, strings.Join(e.Candidates, ", "))
}
