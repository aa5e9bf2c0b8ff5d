package jira

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// ErrNoUserMatch reports that a user lookup found nobody.
var ErrNoUserMatch = errors.New("no match")

// Myself returns the authenticated user.
func (c *Client) Myself(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, c.api("/myself"), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUser looks up a user by account ID, username, or email. Cloud only
// supports the query-based search; Server/DC tries a direct username
// lookup first and falls back to the search endpoint.
func (c *Client) FindUser(ctx context.Context, identifier string) (*User, error) {
	if c.cloud {
		return c.searchUser(ctx, url.Values{"query": {identifier}}, identifier)
	}

	var user User
	err := c.do(ctx, http.MethodGet, c.api("/user"), url.Values{"username": {identifier}}, nil, &user)
	if err == nil {
		return &user, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}
	return c.searchUser(ctx, url.Values{"username": {identifier}}, identifier)
}

func (c *Client) searchUser(ctx context.Context, query url.Values, identifier string) (*User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, c.api("/user/search"), query, nil, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no user matching %q: %w", identifier, ErrNoUserMatch)
	}
	return &users[0], nil
}
