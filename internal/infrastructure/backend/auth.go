package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/threadline/storefront-api/internal/core/ports"
)

// Login exchanges email and password for a credential pair. Any non-success
// payload is a rejection; the caller converts it to the user-facing error.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	env, status, err := c.do(ctx, "auth_login", http.MethodPost, "/auth/login", nil, body, "")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || !env.Success {
		return nil, fmt.Errorf("credential exchange rejected: %s", env.Message)
	}

	var data struct {
		User         ports.BackendUser `json:"user"`
		AccessToken  string            `json:"accessToken"`
		RefreshToken string            `json:"refreshToken"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode login payload: %w", err)
	}
	if data.User.ID == "" {
		return nil, errors.New("login payload missing user")
	}

	return &ports.LoginResult{
		User:         data.User,
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
	}, nil
}

// Refresh rotates the token pair. A non-success payload is a refresh failure;
// the session service flags the credential rather than clearing it.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	body := map[string]string{"refreshToken": refreshToken}
	env, status, err := c.do(ctx, "auth_refresh", http.MethodPost, "/auth/refresh-token", nil, body, "")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || !env.Success {
		return nil, fmt.Errorf("token refresh rejected: %s", env.Message)
	}

	var data struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode refresh payload: %w", err)
	}
	if data.AccessToken == "" {
		return nil, errors.New("refresh payload missing access token")
	}

	return &ports.TokenPair{
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
	}, nil
}
