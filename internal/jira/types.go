package jira

import "encoding/json"

// Issue is a Jira issue as returned by the issue, search, and agile
// endpoints.
type Issue struct {
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// IssueFields carries the typed fields the CLI renders. The raw response
// is kept alongside so callers can distinguish a field the API omitted
// from one that is empty, and reach custom fields by name.
type IssueFields struct {
	Summary     string       `json:"summary,omitempty"`
	Status      *Status      `json:"status,omitempty"`
	IssueType   *IssueType   `json:"issuetype,omitempty"`
	Priority    *Priority    `json:"priority,omitempty"`
	Labels      []string     `json:"labels,omitempty"`
	Assignee    *User        `json:"assignee,omitempty"`
	Reporter    *User        `json:"reporter,omitempty"`
	Description *Body        `json:"description,omitempty"`
	Comment     *CommentPage `json:"comment,omitempty"`
	Created     string       `json:"created,omitempty"`
	Updated     string       `json:"updated,omitempty"`

	raw map[string]json.RawMessage
}

func (f *IssueFields) UnmarshalJSON(data []byte) error {
	type alias IssueFields
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*f = IssueFields(a)
	return json.Unmarshal(data, &f.raw)
}

// MarshalJSON emits the raw API fields when present so JSON output keeps
// custom fields the typed struct does not model.
func (f IssueFields) MarshalJSON() ([]byte, error) {
	if f.raw != nil {
		return json.Marshal(f.raw)
	}
	type alias IssueFields
	return json.Marshal(alias(f))
}

// Has reports whether the API response included the named field.
func (f *IssueFields) Has(name string) bool {
	_, ok := f.raw[name]
	return ok
}

// Value returns the decoded value of the named field, or nil when the
// response did not include it.
func (f *IssueFields) Value(name string) any {
	data, ok := f.raw[name]
	if !ok {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}

// Status is an issue status.
type Status struct {
	Name string `json:"name"`
}

// IssueType is an issue type such as Task or Bug.
type IssueType struct {
	Name string `json:"name"`
}

// Priority is an issue priority.
type Priority struct {
	Name string `json:"name"`
}

// User is a Jira user. Cloud identifies users by accountId, Server/DC by
// name or key.
type User struct {
	AccountID    string `json:"accountId,omitempty"`
	Name         string `json:"name,omitempty"`
	Key          string `json:"key,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
	TimeZone     string `json:"timeZone,omitempty"`
	Active       *bool  `json:"active,omitempty"`
}

// IsActive treats a missing active flag as active.
func (u *User) IsActive() bool {
	return u.Active == nil || *u.Active
}

// Identifier returns the stable identifier for the user, preferring the
// Cloud accountId over the Server/DC name.
func (u *User) Identifier() string {
	if u.AccountID != "" {
		return u.AccountID
	}
	return u.Name
}

// CommentPage wraps the comments array nested in issue fields.
type CommentPage struct {
	Comments []Comment `json:"comments"`
}

// Comment is a single issue comment.
type Comment struct {
	ID      string `json:"id"`
	Author  *User  `json:"author,omitempty"`
	Body    Body   `json:"body,omitempty"`
	Created string `json:"created,omitempty"`
}
