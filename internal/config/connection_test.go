package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		conn Connection
		want []string // substrings expected in the error, empty means valid
	}{
		{
			name: "cloud credentials",
			conn: Connection{URL: "https://company.atlassian.net", Username: "user@example.com", APIToken: "tok"},
		},
		{
			name: "personal access token",
			conn: Connection{URL: "https://jira.example.com", PersonalToken: "pat"},
		},
		{
			name: "missing url",
			conn: Connection{PersonalToken: "pat"},
			want: []string{"Missing required variable: JIRA_URL"},
		},
		{
			name: "bad scheme",
			conn: Connection{URL: "ftp://jira.example.com", PersonalToken: "pat"},
			want: []string{"JIRA_URL must start with http:// or https://: ftp://jira.example.com"},
		},
		{
			name: "missing credentials",
			conn: Connection{URL: "https://jira.example.com"},
			want: []string{"Missing authentication credentials"},
		},
		{
			name: "partial cloud credentials",
			conn: Connection{URL: "https://company.atlassian.net", Username: "user@example.com"},
			want: []string{"Missing authentication credentials"},
		},
		{
			name: "everything missing",
			conn: Connection{},
			want: []string{
				"Missing required variable: JIRA_URL",
				"Missing authentication credentials",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conn.Validate()
			if len(tt.want) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !IsKind(err, MissingRequired) {
				t.Fatalf("Validate() kind = %v, want MissingRequired", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() = %q, missing %q", err.Error(), want)
				}
			}
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	err := (&Connection{URL: "jira.example.com"}).Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("Validate() = %T, want *ConfigError", err)
	}
	if len(ce.Problems) != 2 {
		t.Errorf("Problems = %d (%v), want 2", len(ce.Problems), ce.Problems)
	}
}

func TestKeys_RoundTrip(t *testing.T) {
	cloud := true
	orig := &Connection{
		URL:           "https://jira.example.com",
		Username:      "user@example.com",
		APIToken:      "api-tok",
		PersonalToken: "pat-tok",
		CloudOverride: &cloud,
		VerifySSL:     false,
	}

	got := fromValues(orig.Keys())

	if got.URL != orig.URL || got.Username != orig.Username ||
		got.APIToken != orig.APIToken || got.PersonalToken != orig.PersonalToken {
		t.Errorf("round trip changed credentials: %+v", got)
	}
	if got.CloudOverride == nil || *got.CloudOverride != true {
		t.Errorf("CloudOverride = %v, want true", got.CloudOverride)
	}
	if got.VerifySSL {
		t.Error("VerifySSL = true, want false")
	}
}

func TestKeys_OmitsDefaults(t *testing.T) {
	conn := &Connection{URL: "https://jira.example.com", PersonalToken: "pat", VerifySSL: true}
	keys := conn.Keys()

	if len(keys) != 2 {
		t.Fatalf("Keys() = %v, want exactly JIRA_URL and JIRA_PERSONAL_TOKEN", keys)
	}
	if _, ok := keys[KeyCloud]; ok {
		t.Error("Keys() contains JIRA_CLOUD for auto-detect connection")
	}
	if _, ok := keys[KeyVerifySSL]; ok {
		t.Error("Keys() contains JIRA_VERIFY_SSL for default verification")
	}
}

func TestParseVerifySSL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"No", false},
		{"true", true},
		{"yes", true},
		{"1", true},
		{"anything", true},
	}
	for _, tt := range tests {
		if got := parseVerifySSL(tt.raw); got != tt.want {
			t.Errorf("parseVerifySSL(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
