package hotelapi

import (
	"context"
	"net/http"
)

type userListEnvelope struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// ListUsers fetches one page of the users collection.
func (c *Client) ListUsers(ctx context.Context, query UserQuery) (Page[User], error) {
	var resp userListEnvelope
	if err := c.do(ctx, http.MethodGet, "/users", query.Values(), nil, &resp); err != nil {
		return Page[User]{}, err
	}
	return Page[User]{Items: resp.Users, Pagination: resp.Pagination}, nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	var resp userEnvelope
	if err := c.do(ctx, http.MethodGet, "/users/"+id, nil, nil, &resp); err != nil {
		return User{}, err
	}
	return resp.Data, nil
}

// CreateUser creates a user from an already-coerced payload.
func (c *Client) CreateUser(ctx context.Context, payload map[string]any) (User, error) {
	var resp userEnvelope
	if err := c.do(ctx, http.MethodPost, "/users", nil, payload, &resp); err != nil {
		return User{}, err
	}
	return resp.Data, nil
}

// UpdateUser replaces a user's editable fields.
func (c *Client) UpdateUser(ctx context.Context, id string, payload map[string]any) (User, error) {
	var resp userEnvelope
	if err := c.do(ctx, http.MethodPut, "/users/"+id, nil, payload, &resp); err != nil {
		return User{}, err
	}
	return resp.Data, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil, nil)
}
