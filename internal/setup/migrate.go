package setup

import (
	"fmt"
	"os"

	"github.com/gorewood/jira/internal/config"
)

// MigrateEnv converts the legacy credential file into a registry profile
// named "legacy" ("default" is the registry's pointer key, not a usable
// profile name). The environment fills in recognized keys the file omits,
// same as every other command. Returns the written profile and any registry
// warning from WriteProfile.
func MigrateEnv(loader *config.Loader, envPath, registryPath string) (*config.Profile, string, error) {
	if _, err := os.Stat(envPath); err != nil {
		return nil, "", fmt.Errorf("No env file found at %s", envPath)
	}

	conn, err := loader.Load(envPath)
	if err != nil {
		return nil, "", err
	}

	profile := &config.Profile{Name: "legacy", URL: conn.URL}
	if conn.HasPersonalToken() {
		profile.PersonalToken = conn.PersonalToken
	} else {
		profile.Username = conn.Username
		profile.APIToken = conn.APIToken
	}

	warning, err := WriteProfile(registryPath, "legacy", profile)
	if err != nil {
		return nil, warning, err
	}
	return profile, warning, nil
}
