package archive

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// ErrEmptyToken is returned when the login response carries no access token.
var ErrEmptyToken = errors.New("login response did not include an access token")

// Login exchanges admin credentials for an access token. The token is not
// stored on the client; callers persist it and call SetToken.
func (c *Client) Login(ctx context.Context, username, password string) (Token, error) {
	if username == "" || password == "" {
		return Token{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var tok Token
	if err := c.postForm(ctx, "/auth/login", form, &tok); err != nil {
		return Token{}, fmt.Errorf("logging in as %s: %w", username, err)
	}
	if tok.AccessToken == "" {
		return Token{}, ErrEmptyToken
	}
	return tok, nil
}
