package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/phuslu/log"
)

// issueKeyPattern is the strict issue key shape used for prefix routing.
var issueKeyPattern = regexp.MustCompile(`^([A-Z][A-Z0-9]*)-[0-9]+$`)

// Hint carries the per-invocation signals used to pick a connection.
type Hint struct {
	// EnvFile is an explicit credential file path. When set, the profile
	// registry is ignored entirely.
	EnvFile string
	// Profile is an explicit profile name.
	Profile string
	// Input is a positional argument that may be an issue key or a URL.
	Input string
	// Dir is the directory searched for a .jira-profile marker.
	Dir string
}

// Resolver picks the connection for an invocation. The zero value uses the
// default registry path, the process environment, and stderr for notices.
type Resolver struct {
	// Loader loads credential files. Nil means a default Loader.
	Loader *Loader
	// RegistryPath overrides the profile registry location.
	RegistryPath string
	// Warn receives non-fatal notices. Nil means os.Stderr.
	Warn io.Writer
}

func (r *Resolver) loader() *Loader {
	if r.Loader != nil {
		return r.Loader
	}
	return &Loader{}
}

func (r *Resolver) warnf(format string, args ...any) {
	w := r.Warn
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Resolve applies the profile precedence rules and returns the selected
// connection:
//
//  1. Explicit credential file.
//  2. Explicit profile name.
//  3. URL input matched against profile hosts.
//  4. Issue key input matched against profile project prefixes.
//  5. .jira-profile marker in the working directory.
//  6. Registry default profile.
//  7. Legacy credential file plus environment.
//
// Once a rule selects something, its failure is returned as-is; the resolver
// never falls past a matched rule to try the next one.
func (r *Resolver) Resolve(hint Hint) (*Connection, error) {
	if hint.EnvFile != "" {
		log.Debug().Str("file", hint.EnvFile).Msg("resolve: explicit env file")
		return r.loader().Load(hint.EnvFile)
	}

	reg, err := LoadRegistry(r.RegistryPath)
	if err != nil {
		return nil, err
	}

	if hint.Profile != "" {
		if reg == nil {
			return nil, &ConfigError{Kind: NoRegistry, Profile: hint.Profile, Path: r.registryPath()}
		}
		p, ok := reg.ByName(hint.Profile)
		if !ok {
			return nil, &ConfigError{Kind: ProfileNotFound, Profile: hint.Profile, Available: reg.Names()}
		}
		log.Debug().Str("profile", p.Name).Msg("resolve: explicit profile")
		return p.Connection()
	}

	if reg == nil {
		log.Debug().Msg("resolve: no registry, using legacy credentials")
		return r.loader().Load("")
	}

	if hint.Input != "" {
		p, err := r.matchInput(reg, hint.Input)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p.Connection()
		}
	}

	if hint.Dir != "" {
		if p, ok := r.matchMarker(reg, hint.Dir); ok {
			return p.Connection()
		}
	}

	if p, ok := reg.Default(); ok {
		log.Debug().Str("profile", p.Name).Msg("resolve: registry default")
		return p.Connection()
	}

	return nil, &ConfigError{Kind: ProfileNotFound, Available: reg.Names()}
}

func (r *Resolver) registryPath() string {
	if r.RegistryPath != "" {
		return r.RegistryPath
	}
	path, err := DefaultRegistryPath()
	if err != nil {
		return "~/.jira/profiles.json"
	}
	return path
}

// matchInput routes a positional issue key or URL to a profile. A nil, nil
// return means the input selected nothing and resolution continues.
func (r *Resolver) matchInput(reg *Registry, input string) (*Profile, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		matches := reg.ByHost(input)
		switch len(matches) {
		case 0:
			return nil, nil
		case 1:
			log.Debug().Str("profile", matches[0].Name).Str("url", input).Msg("resolve: url host match")
			return matches[0], nil
		}
		return nil, &AmbiguousProfileError{Input: NormalizedHost(input), Candidates: profileNames(matches)}
	}

	if m := issueKeyPattern.FindStringSubmatch(input); m != nil {
		prefix := m[1]
		matches := reg.ByPrefix(prefix)
		switch len(matches) {
		case 0:
			return nil, nil
		case 1:
			log.Debug().Str("profile", matches[0].Name).Str("prefix", prefix).Msg("resolve: project prefix match")
			return matches[0], nil
		}
		return nil, &AmbiguousProfileError{Input: prefix, Candidates: profileNames(matches)}
	}

	return nil, nil
}

// matchMarker reads the .jira-profile marker in dir. A marker naming an
// unknown profile is skipped with a notice on the warn writer.
func (r *Resolver) matchMarker(reg *Registry, dir string) (*Profile, bool) {
	data, err := os.ReadFile(filepath.Join(dir, MarkerName))
	if err != nil {
		return nil, false
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return nil, false
	}
	p, ok := reg.ByName(name)
	if !ok {
		r.warnf("⚠ %s references unknown profile '%s', skipping", MarkerName, name)
		return nil, false
	}
	log.Debug().Str("profile", name).Str("dir", dir).Msg("resolve: directory marker")
	return p, true
}

func profileNames(profiles []*Profile) []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}
