package hotelapi

import (
	"context"
	"errors"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialsEnvelope struct {
	Data Credentials `json:"data"`
}

type userEnvelope struct {
	Data User `json:"data"`
}

// Login exchanges email/password for a token and identity. Rejected
// credentials surface as *AuthError.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	var resp credentialsEnvelope
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp); err != nil {
		return Credentials{}, asAuthError(err)
	}
	return resp.Data, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, input RegisterInput) (Credentials, error) {
	var resp credentialsEnvelope
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, input, &resp); err != nil {
		return Credentials{}, asAuthError(err)
	}
	return resp.Data, nil
}

// Me fetches the identity behind the current token.
func (c *Client) Me(ctx context.Context) (User, error) {
	var resp userEnvelope
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &resp); err != nil {
		return User{}, err
	}
	return resp.Data, nil
}

func asAuthError(err error) error {
	var serr *StatusError
	if errors.As(err, &serr) && (serr.Status == http.StatusUnauthorized || serr.Status == http.StatusBadRequest || serr.Status == http.StatusForbidden) {
		return &AuthError{Status: serr.Status, Message: serr.Message}
	}
	return err
}
