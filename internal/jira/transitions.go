package jira

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Transition is a workflow step available from an issue's current status.
type Transition struct {
	ID   string           `json:"id"`
	Name string           `json:"name"`
	To   TransitionTarget `json:"to,omitempty"`
}

// TransitionTarget is the destination status of a transition. Cloud
// returns an object with a name, Server/DC returns a bare string.
type TransitionTarget struct {
	Name string
}

func (t *TransitionTarget) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.Name = obj.Name
	return nil
}

func (t TransitionTarget) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name string `json:"name"`
	}{Name: t.Name})
}

type transitionsResponse struct {
	Transitions []Transition `json:"transitions"`
}

// Transitions lists the workflow steps available for an issue.
func (c *Client) Transitions(ctx context.Context, key string) ([]Transition, error) {
	var resp transitionsResponse
	if err := c.do(ctx, http.MethodGet, c.api("/issue/"+key+"/transitions"), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Transitions, nil
}

// MatchTransition finds the transition whose name or target status equals
// status, case-insensitively. Returns nil when nothing matches.
func MatchTransition(transitions []Transition, status string) *Transition {
	for i := range transitions {
		if strings.EqualFold(transitions[i].Name, status) {
			return &transitions[i]
		}
		if strings.EqualFold(transitions[i].To.Name, status) {
			return &transitions[i]
		}
	}
	return nil
}

// DoTransition performs a workflow transition. resolution sets the
// resolution field, comment rides along in the update block; both are
// optional.
func (c *Client) DoTransition(ctx context.Context, key, transitionID, resolution, comment string) error {
	payload := map[string]any{
		"transition": map[string]any{"id": transitionID},
	}
	if resolution != "" {
		payload["fields"] = map[string]any{
			"resolution": map[string]any{"name": resolution},
		}
	}
	if comment != "" {
		payload["update"] = map[string]any{
			"comment": []map[string]any{
				{"add": map[string]any{"body": c.textBody(comment)}},
			},
		}
	}
	return c.do(ctx, http.MethodPost, c.api("/issue/"+key+"/transitions"), nil, payload, nil)
}
