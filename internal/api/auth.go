package api

import (
	"context"

	"github.com/curanet/careadm/internal/forms"
)

// LoginInput is the credentials payload for the auth endpoint.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. The token is returned to
// the caller; the client itself never persists it.
func (c *Client) Login(ctx context.Context, input LoginInput) (string, error) {
	if err := forms.Validate(input); err != nil {
		return "", err
	}
	var resp loginResponse
	if err := c.post(ctx, "/v1/auth/login", input, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Profile fetches the authenticated user.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/v1/auth/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
