package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorewood/jira/internal/envfile"
)

// Loader builds connections from credential files merged with the
// environment. The zero value reads the process environment and the user's
// home directory.
type Loader struct {
	// Lookup supplies environment values. Nil means os.LookupEnv.
	Lookup func(key string) (string, bool)

	// Home overrides the home directory used for the default file path.
	Home string
}

func (l *Loader) lookup(key string) (string, bool) {
	if l.Lookup != nil {
		return l.Lookup(key)
	}
	return os.LookupEnv(key)
}

func (l *Loader) envFilePath() (string, error) {
	if l.Home != "" {
		return filepath.Join(l.Home, EnvFileName), nil
	}
	return DefaultEnvFile()
}

// Load reads the credential file at path and fills missing recognized keys
// from the environment. File values always win over environment values. An
// empty path means the default ~/.env.jira, which may be absent; an explicit
// path must exist.
func (l *Loader) Load(path string) (*Connection, error) {
	explicit := path != ""
	if path == "" {
		var err error
		path, err = l.envFilePath()
		if err != nil {
			return nil, err
		}
	}

	values, err := envfile.ParseFile(path)
	switch {
	case err == nil:
	case os.IsNotExist(err):
		if explicit {
			return nil, &ConfigError{Kind: FileNotFound, Path: path}
		}
		values = map[string]string{}
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	fromFile := err == nil

	for _, key := range recognizedKeys {
		if _, ok := values[key]; ok {
			continue
		}
		if v, ok := l.lookup(key); ok {
			values[key] = v
		}
	}

	conn := fromValues(values)
	if fromFile {
		conn.Source = path
	} else {
		conn.Source = "environment"
	}
	return conn, nil
}
