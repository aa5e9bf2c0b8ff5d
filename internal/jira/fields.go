package jira

import (
	"context"
	"net/http"
)

// Field describes a system or custom issue field.
type Field struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Custom bool        `json:"custom"`
	Schema FieldSchema `json:"schema,omitempty"`
}

// FieldSchema is the value type of a field.
type FieldSchema struct {
	Type string `json:"type,omitempty"`
}

// Fields lists every field on the instance, custom fields included.
func (c *Client) Fields(ctx context.Context) ([]Field, error) {
	var fields []Field
	if err := c.do(ctx, http.MethodGet, c.api("/field"), nil, nil, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
