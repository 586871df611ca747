package client

import (
	"context"
	"net/http"

	"teampulse/internal/auth"
)

// Login exchanges credentials for a session. A successful login replaces
// the stored identity, so every resource cache is dropped and refetched
// lazily for the new user.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp auth.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", auth.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp, false)
	if err != nil {
		return nil, err
	}

	session := &Session{Token: resp.Token, User: resp.User}
	if err := c.store.Save(session); err != nil {
		return nil, err
	}
	c.invalidateAll()

	return session, nil
}

func (c *Client) Logout() error {
	c.invalidateAll()
	return c.store.Clear()
}
