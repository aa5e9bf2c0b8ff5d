package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// testResolver builds a resolver with an isolated home directory and an
// empty environment, so that nothing leaks in from the host running tests.
func testResolver(t *testing.T, registryPath string, env map[string]string) *Resolver {
	t.Helper()
	return &Resolver{
		Loader:       &Loader{Home: t.TempDir(), Lookup: mapLookup(env)},
		RegistryPath: registryPath,
		Warn:         &bytes.Buffer{},
	}
}

func TestResolve_ExplicitEnvFileIgnoresRegistry(t *testing.T) {
	// A broken registry must not matter when --env-file is given.
	registry := writeRegistry(t, "{not json")
	envPath := writeFile(t, t.TempDir(), "work.env",
		"JIRA_URL=https://jira.work.example\nJIRA_PERSONAL_TOKEN=work-token\n")

	r := testResolver(t, registry, nil)
	conn, err := r.Resolve(Hint{EnvFile: envPath})
	if err != nil {
		t.Fatal(err)
	}
	if conn.URL != "https://jira.work.example" {
		t.Errorf("URL = %q", conn.URL)
	}
	if conn.Source != envPath {
		t.Errorf("Source = %q, want %q", conn.Source, envPath)
	}
}

func TestResolve_ExplicitProfile(t *testing.T) {
	r := testResolver(t, writeRegistry(t, sampleRegistry), nil)

	conn, err := r.Resolve(Hint{Profile: "mkk"})
	if err != nil {
		t.Fatal(err)
	}
	if conn.PersonalToken != "mkk-token" {
		t.Errorf("PersonalToken = %q", conn.PersonalToken)
	}
	if conn.Source != "profile 'mkk'" {
		t.Errorf("Source = %q", conn.Source)
	}
}

func TestResolve_ExplicitProfileUnknown(t *testing.T) {
	r := testResolver(t, writeRegistry(t, sampleRegistry), nil)

	_, err := r.Resolve(Hint{Profile: "ghost"})
	if !IsKind(err, ProfileNotFound) {
		t.Fatalf("Resolve() = %v, want ProfileNotFound", err)
	}
	want := "Profile 'ghost' not found. Available: cloud, mkk, netresearch"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestResolve_ExplicitProfileWithoutRegistry(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "profiles.json")
	r := testResolver(t, missing, nil)

	_, err := r.Resolve(Hint{Profile: "mkk"})
	if !IsKind(err, NoRegistry) {
		t.Fatalf("Resolve() = %v, want NoRegistry", err)
	}
	if !strings.Contains(err.Error(), "jira setup --profile mkk") {
		t.Errorf("error = %q, want setup suggestion", err.Error())
	}
}

func TestResolve_URLHostMatch(t *testing.T) {
	r := testResolver(t, writeRegistry(t, sampleRegistry), nil)

	conn, err := r.Resolve(Hint{Input: "https://jira.meine-krankenkasse.de/browse/WEB-1381"})
	if err != nil {
		t.Fatal(err)
	}
	if conn.Source != "profile 'mkk'" {
		t.Errorf("Source = %q, want mkk via host match", conn.Source)
	}
}

func TestResolve_URLHostAmbiguous(t *testing.T) {
	registry := writeRegistry(t, `{
	  "prod": {"url": "https://jira.example.com", "personalToken": "a"},
	  "mirror": {"url": "https://jira.example.com:443", "personalToken": "b"}
	}`)
	r := testResolver(t, registry, nil)

	_, err := r.Resolve(Hint{Input: "https://jira.example.com/browse/X-1"})
	var ambig *AmbiguousProfileError
	if !errors.As(err, &ambig) {
		t.Fatalf("Resolve() = %v, want AmbiguousProfileError", err)
	}
	if !reflect.DeepEqual(ambig.Candidates, []string{"mirror", "prod"}) {
		t.Errorf("Candidates = %v", ambig.Candidates)
	}
}

func TestResolve_URLNoMatchFallsToDefault(t *testing.T) {
	r := testResolver(t, writeRegistry(t, sampleRegistry), nil)

	conn, err := r.Resolve(Hint{Input: "https://unrelated.example.com/browse/X-1"})
	if err != nil {
		t.Fatal(err)
	}
	if conn.Source != "profile 'netresearch'" {
		t.Errorf("Source = %q, want default profile", conn.Source)
	}
}

func TestResolve_IssueKeyPrefixMatch(t *testing.T) {
	r := testResolver(t, writeRegistry(t, sampleRegistry), nil)

	conn, err := r.Resolve(Hint{Input: "WEB-1381"})
	if err != nil {
		t.Fatal(err)
	}
	if conn.Source != "profile 'mkk'" {
		t.Errorf("Source = %q, want mkk via WEB prefix", conn.Source)
	}
}

func TestResolve_IssueKeyPrefixAmbiguous(t *testing.T) {
	registry := writeRegistry(t, `{
	  "alpha": {"url": "https://a.example.com", "personalToken": "a", "projectPrefixes": ["WEB"]},
	  "beta": {"url": "https://b.example.com", "personalToken": "b", "projectPrefixes": ["WEB"]}
	}`)
	r := testResolver(t, registry, nil)

	_, err := r.Resolve(Hint{Input: "WEB-1381"})
	var ambig *AmbiguousProfileError
	if !errors.As(err, &ambig) {
		t.Fatalf("Resolve() = %v, want AmbiguousProfileError", err)
	}
	want := "WEB found in profiles: alpha, beta. Use --profile to disambiguate."
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestResolve_InputShapesThatDoNotMatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown prefix", "ZZZ-1"},
		{"lowercase key", "web-1381"},
		{"not a key", "some words"},
		{"digit prefix", "1AB-2"},
	}
	r := testResolver(t, writeRegistry(t, sampleRegistry), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := r.Resolve(Hint{Input: tt.input})
			if err != nil {
				t.Fatal(err)
			}
			if conn.Source != "profile 'netresearch'" {
				t.Errorf("Source = %q, want fallthrough to default", conn.Source)
			}
		})
	}
}

func TestResolve_MarkerSelectsProfile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, MarkerName), []byte("mkk\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	warn := &bytes.Buffer{}
	r := testResolver(t, writeRegistry(t, sampleRegistry), nil)
	r.Warn = warn

	conn, err := r.Resolve(Hint{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if conn.Source != "profile 'mkk'" {
		t.Errorf("Source = %q, want marker profile", conn.Source)
	}
	if warn.Len() != 0 {
		t.Errorf("unexpected warning: %q", warn.String())
	}
}

func TestResolve_MarkerUnknownWarnsAndFallsThrough(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, MarkerName), []byte("ghost\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	warn := &bytes.Buffer{}
	r := testResolver(t, writeRegistry(t, sampleRegistry), nil)
	r.Warn = warn

	conn, err := r.Resolve(Hint{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if conn.Source != "profile 'netresearch'" {
		t.Errorf("Source = %q, want fallthrough to default", conn.Source)
	}
	want := "⚠ .jira-profile references unknown profile 'ghost', skipping\n"
	if warn.String() != want {
		t.Errorf("warning = %q, want %q", warn.String(), want)
	}
}

func TestResolve_DefaultProfile(t *testing.T) {
	r := testResolver(t, writeRegistry(t, sampleRegistry), nil)

	conn, err := r.Resolve(Hint{})
	if err != nil {
		t.Fatal(err)
	}
	if conn.Source != "profile 'netresearch'" {
		t.Errorf("Source = %q", conn.Source)
	}
}

func TestResolve_NoDefaultNoMatch(t *testing.T) {
	registry := writeRegistry(t, `{
	  "a": {"url": "https://a.example.com", "personalToken": "a"},
	  "b": {"url": "https://b.example.com", "personalToken": "b"}
	}`)
	r := testResolver(t, registry, nil)

	_, err := r.Resolve(Hint{})
	if !IsKind(err, ProfileNotFound) {
		t.Fatalf("Resolve() = %v, want ProfileNotFound", err)
	}
	want := "Could not resolve profile. Available profiles: a, b. Use --profile to specify one."
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestResolve_LegacyFallbackWithoutRegistry(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "profiles.json")
	r := testResolver(t, missing, map[string]string{
		"JIRA_URL":            "https://jira.corp.example",
		"JIRA_PERSONAL_TOKEN": "env-token",
	})

	conn, err := r.Resolve(Hint{Input: "WEB-1381"})
	if err != nil {
		t.Fatal(err)
	}
	if conn.URL != "https://jira.corp.example" {
		t.Errorf("URL = %q", conn.URL)
	}
	if conn.Source != "environment" {
		t.Errorf("Source = %q", conn.Source)
	}
	if _, ok := DetectMode(conn).(ServerAuth); !ok {
		t.Errorf("DetectMode = %T, want ServerAuth", DetectMode(conn))
	}
}

func TestResolve_MalformedRegistryIsFatal(t *testing.T) {
	r := testResolver(t, writeRegistry(t, "{not json"), nil)

	_, err := r.Resolve(Hint{})
	if !IsKind(err, InvalidRegistry) {
		t.Fatalf("Resolve() = %v, want InvalidRegistry", err)
	}
}

func TestResolve_ExplicitProfileBeatsInput(t *testing.T) {
	r := testResolver(t, writeRegistry(t, sampleRegistry), nil)

	conn, err := r.Resolve(Hint{
		Profile: "netresearch",
		Input:   "https://jira.meine-krankenkasse.de/browse/WEB-1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if conn.Source != "profile 'netresearch'" {
		t.Errorf("Source = %q, want explicit profile to win", conn.Source)
	}
}

func TestResolve_CommittedMatchSurfacesProfileError(t *testing.T) {
	// The BRK prefix matches a profile with no credentials. The resolver
	// must report that profile's problem instead of moving on to the
	// default.
	registry := writeRegistry(t, `{
	  "default": "good",
	  "good": {"url": "https://good.example.com", "personalToken": "g"},
	  "broken": {"url": "https://broken.example.com", "projectPrefixes": ["BRK"]}
	}`)
	r := testResolver(t, registry, nil)

	_, err := r.Resolve(Hint{Input: "BRK-7"})
	if !IsKind(err, MissingRequired) {
		t.Fatalf("Resolve() = %v, want the broken profile's error", err)
	}
	if !strings.Contains(err.Error(), "Profile 'broken' is missing credentials") {
		t.Errorf("error = %q", err.Error())
	}
}
